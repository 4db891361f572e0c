package briar

import "fmt"

// SrcLoc is a source position: file name plus 1-based line and column.
type SrcLoc struct {
	Filename string
	Line     int
	Col      int
}

func (l SrcLoc) String() string {
	return fmt.Sprintf("%s:%d:%d", l.Filename, l.Line, l.Col)
}
