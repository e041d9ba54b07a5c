package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sync"

	"github.com/specialistvlad/wordgrid/internal/export"
	"github.com/specialistvlad/wordgrid/internal/publish"
	"github.com/specialistvlad/wordgrid/internal/render"
	"github.com/specialistvlad/wordgrid/internal/vision"
)

// Publisher sends finished reports to a remote consumer.
type Publisher interface {
	Publish(ctx context.Context, report *export.Report) error
	Close()
}

// Extractor reads a puzzle from a photo.
type Extractor interface {
	ExtractFile(ctx context.Context, path string) (*vision.Extraction, error)
}

// Option customises an App, mostly for tests.
type Option func(*App)

// WithRenderer replaces the renderer chosen by the render mode.
func WithRenderer(r render.Renderer) Option {
	return func(a *App) { a.renderer = r }
}

// WithPublisher replaces the Socket.IO dialer.
func WithPublisher(dial func(ctx context.Context, url, namespace string) (Publisher, error)) Option {
	return func(a *App) { a.dialPublisher = dial }
}

// WithExtractor replaces the Gemini client factory.
func WithExtractor(newExtractor func(ctx context.Context, project, region string) (Extractor, error)) Option {
	return func(a *App) { a.newExtractor = newExtractor }
}

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	outW     io.Writer
	logger   *slog.Logger
	config   *Config
	renderer render.Renderer
	closers  []func()

	dialPublisher func(ctx context.Context, url, namespace string) (Publisher, error)
	newExtractor  func(ctx context.Context, project, region string) (Extractor, error)

	mu      sync.RWMutex
	reports []*export.Report

	httpServer *http.Server
}

// NewApp is the constructor for the main application. Rendered puzzles go to
// outW and logs to logW.
func NewApp(outW, logW io.Writer, cfg *Config, opts ...Option) (*App, error) {
	logger := newLogger(cfg.LogLevel, cfg.LogFormat, logW)
	logger.Debug("Logger configured successfully.")

	a := &App{
		outW:   outW,
		logger: logger,
		config: cfg,
		dialPublisher: func(ctx context.Context, url, namespace string) (Publisher, error) {
			return publish.Dial(ctx, url, namespace, publish.DefaultConnectTimeout)
		},
		newExtractor: func(ctx context.Context, project, region string) (Extractor, error) {
			return vision.NewClient(ctx, project, region)
		},
	}
	for _, opt := range opts {
		opt(a)
	}

	if a.renderer == nil {
		r, err := a.newRenderer()
		if err != nil {
			return nil, fmt.Errorf("failed to set up renderer: %w", err)
		}
		a.renderer = r
	}
	logger.Debug("Renderer configured.", "mode", cfg.RenderMode)
	return a, nil
}

func (a *App) newRenderer() (render.Renderer, error) {
	palette := a.config.Palette()
	switch a.config.RenderMode {
	case RenderNone:
		return render.Nop{}, nil
	case RenderScreen:
		s, err := render.NewScreen(nil, palette, true)
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, s.Close)
		return s, nil
	case RenderPlain:
		return render.NewText(a.outW, palette, true)
	default:
		return render.NewText(a.outW, palette, false)
	}
}

// Reports returns the reports produced so far.
func (a *App) Reports() []*export.Report {
	a.mu.RLock()
	defer a.mu.RUnlock()
	out := make([]*export.Report, len(a.reports))
	copy(out, a.reports)
	return out
}

func (a *App) addReport(r *export.Report) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.reports = append(a.reports, r)
}

// Close releases the terminal and any other held resources.
func (a *App) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
	a.closers = nil
}
