package report

import "fmt"

// Location is a single point in a source file: the file path, the 1-indexed
// line, and the 1-indexed column. Every syntactic node carries a Location;
// a diagnostic without one is a bug.
type Location struct {
	File string
	Line int
	Col  int
}

// String formats the location the way diagnostics are printed on stderr.
func (l Location) String() string {
	return fmt.Sprintf("%s:%d:%d", l.File, l.Line, l.Col)
}
