// Package vision reads a word search puzzle from a photo using Gemini on
// Vertex AI.
package vision

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"unicode"

	"google.golang.org/genai"

	"github.com/specialistvlad/wordgrid/internal/ctxlog"
	"github.com/specialistvlad/wordgrid/internal/puzzle"
	"github.com/specialistvlad/wordgrid/internal/source"
)

const (
	DefaultRegion = "europe-west1"
	DefaultModel  = "gemini-2.5-flash"
)

// ErrEmptyResponse is returned when the model answers with no text.
var ErrEmptyResponse = errors.New("empty gemini response")

const extractPrompt = `This photo shows a printed word search puzzle.

Return the puzzle as JSON in exactly this shape:
{
  "rows": ["ABCD...", "EFGH...", ...],
  "words": ["WORD", ...]
}

Rules:
- "rows" holds every grid row from top to bottom, one string per row, letters left to right with no separators.
- The grid is square: every row has as many letters as there are rows.
- "words" holds the list of words to find if it is printed next to the grid, otherwise an empty array.
- Use upper-case letters only.
- Reply with the JSON only, no commentary and no markdown.`

// Extraction is what the model read from a photo.
type Extraction struct {
	Grid  *puzzle.Grid
	Words []string
}

type response struct {
	Rows  []string `json:"rows"`
	Words []string `json:"words"`
}

// Client wraps the GenAI client.
type Client struct {
	client    *genai.Client
	modelName string
}

// NewClient creates a Vertex AI client using Application Default Credentials.
func NewClient(ctx context.Context, projectID, region string) (*Client, error) {
	if projectID == "" {
		return nil, errors.New("gcp project is required for photo extraction")
	}
	if region == "" {
		region = DefaultRegion
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		Project:  projectID,
		Location: region,
		Backend:  genai.BackendVertexAI,
	})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}
	return &Client{client: client, modelName: DefaultModel}, nil
}

// ExtractFile reads the photo at path and extracts its puzzle.
func (c *Client) ExtractFile(ctx context.Context, path string) (*Extraction, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read grid image %s: %w", path, err)
	}
	return c.Extract(ctx, data, mimeType(path, data))
}

// Extract sends the photo to the model and validates the grid it returns.
func (c *Client) Extract(ctx context.Context, image []byte, mimeType string) (*Extraction, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Sending grid image to Gemini", "model", c.modelName, "mime", mimeType, "bytes", len(image))

	resp, err := c.client.Models.GenerateContent(ctx, c.modelName,
		[]*genai.Content{{
			Role: "user",
			Parts: []*genai.Part{
				{Text: extractPrompt},
				{InlineData: &genai.Blob{MIMEType: mimeType, Data: image}},
			},
		}},
		&genai.GenerateContentConfig{
			Temperature:      genai.Ptr(float32(0.1)),
			TopP:             genai.Ptr(float32(1)),
			ResponseMIMEType: "application/json",
		},
	)
	if err != nil {
		return nil, fmt.Errorf("gemini generate: %w", err)
	}

	ext, err := parseResponse(resp.Text())
	if err != nil {
		return nil, err
	}
	logger.Info("Grid extracted from image", "size", ext.Grid.Size(), "words", len(ext.Words))
	return ext, nil
}

// parseResponse decodes the model's JSON answer into a validated grid and a
// cleaned word list.
func parseResponse(text string) (*Extraction, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, ErrEmptyResponse
	}
	// Models sometimes wrap JSON in a markdown fence despite the prompt.
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(text, "```")

	var r response
	if err := json.Unmarshal([]byte(text), &r); err != nil {
		return nil, fmt.Errorf("parse grid JSON: %w\nraw response: %s", err, text)
	}

	rows := make([]string, 0, len(r.Rows))
	for _, row := range r.Rows {
		row = normalise(row)
		if row != "" {
			rows = append(rows, row)
		}
	}
	g, err := puzzle.NewGrid(rows)
	if err != nil {
		return nil, fmt.Errorf("invalid grid in gemini response: %w", err)
	}

	var words []string
	for _, w := range r.Words {
		if w = normalise(w); w != "" {
			words = append(words, w)
		}
	}
	return &Extraction{Grid: g, Words: words}, nil
}

func normalise(s string) string {
	return strings.ToUpper(source.StripSpace(strings.Map(func(r rune) rune {
		if unicode.IsPunct(r) {
			return -1
		}
		return r
	}, s)))
}

func mimeType(path string, data []byte) string {
	if t := mime.TypeByExtension(strings.ToLower(filepath.Ext(path))); t != "" {
		return t
	}
	return http.DetectContentType(data)
}
