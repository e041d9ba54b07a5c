// Package manifest loads declarative puzzle runs from HCL files.
//
// A manifest holds one or more puzzle blocks:
//
//	puzzle "ws-1" {
//	  grid      = "${path.dir}/ws-1-puzzle.csv"
//	  words     = "ws-1-list.csv"
//	  word_list = [upper("extra")]
//	}
//
// A puzzle takes its grid from exactly one of grid (a file) or rows (inline
// strings), and its words from words (a file), word_list (inline) or both, in
// that order. Relative file paths resolve against the manifest's directory.
//
// Expressions may use path.dir and path.file (absolute location of the
// manifest), env.NAME (process environment) and the functions upper, lower
// and concat.
package manifest
