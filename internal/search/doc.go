// Package search is the grid search engine. It finds each word of a word list
// in a square letter grid by scanning rows, then columns, then diagonals, each
// in both reading senses, and reports the coordinates the word occupies.
//
// Every scanned string is a line: the characters read along one path through
// the grid together with the coordinate each character came from. Matching is
// a substring search over the text, and coordinate recovery is a slice of the
// parallel coordinate sequence. Reverse scans are lines whose coordinates run
// backwards, so a reverse match maps straight onto the correct cells.
//
// Ties are broken by scan order: horizontal before vertical before diagonal,
// lower row, column or offset first, forward before reverse. The first match
// in that order is the one reported, even if the word occurs elsewhere too.
package search
