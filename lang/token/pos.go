package token

import (
	"fmt"
	gotoken "go/token"
	"sort"
)

// Position is a full file/line/column position, resolved from a compact Pos
// by a File. It is the type consumed by error lists for reporting and
// sorting.
type Position = gotoken.Position

// Pos is a compact source position: 1 + the byte offset of the location in
// its file's source. The zero value, NoPos, means "no position".
type Pos int

// NoPos is the invalid, unknown position.
const NoPos Pos = 0

// IsValid returns true if p carries a position.
func (p Pos) IsValid() bool { return p != NoPos }

// MakePos returns the Pos for the provided byte offset.
func MakePos(offset int) Pos { return Pos(offset + 1) }

// Offset returns the byte offset encoded in p. The result is meaningless if
// p is NoPos.
func (p Pos) Offset() int { return int(p) - 1 }

// A File tracks the line structure of a single source file so that compact
// Pos values can be resolved to full Positions.
type File struct {
	name  string
	size  int
	lines []int // byte offset of the start of each line, lines[0] == 0
}

// NewFile creates a File for a source of the given name and size in bytes.
func NewFile(name string, size int) *File {
	return &File{name: name, size: size, lines: []int{0}}
}

// Name returns the file name provided to NewFile.
func (f *File) Name() string { return f.name }

// Size returns the source size provided to NewFile.
func (f *File) Size() int { return f.size }

// AddLine records that a new line starts at the provided byte offset.
// Offsets must be added in increasing order; out-of-order or out-of-range
// offsets are ignored.
func (f *File) AddLine(offset int) {
	if last := f.lines[len(f.lines)-1]; last < offset && offset <= f.size {
		f.lines = append(f.lines, offset)
	}
}

// LineCount returns the number of lines recorded so far.
func (f *File) LineCount() int { return len(f.lines) }

// Line returns the 1-based line of p in f.
func (f *File) Line(p Pos) int { return f.Position(p).Line }

// Position resolves a compact Pos to a full Position in f.
func (f *File) Position(p Pos) Position {
	pos := Position{Filename: f.name}
	if !p.IsValid() {
		return pos
	}
	off := p.Offset()
	i := sort.SearchInts(f.lines, off+1) - 1
	pos.Offset = off
	pos.Line = i + 1
	pos.Column = off - f.lines[i] + 1
	return pos
}

// A FileSet holds the Files of a processing pass, so that positions from
// multiple sources can be resolved by the same printer.
type FileSet struct {
	files []*File
}

// NewFileSet creates an empty file set.
func NewFileSet() *FileSet { return &FileSet{} }

// AddFile creates a File for the named source and adds it to the set.
func (fs *FileSet) AddFile(name string, size int) *File {
	f := NewFile(name, size)
	fs.files = append(fs.files, f)
	return f
}

// File returns the file with the provided name, or nil if the set does not
// contain it.
func (fs *FileSet) File(name string) *File {
	for _, f := range fs.files {
		if f.name == name {
			return f
		}
	}
	return nil
}

// PosMode selects how positions are rendered by printers.
type PosMode int

// List of supported position printing modes.
const (
	PosNone    PosMode = iota // no position information
	PosOffsets                // raw byte offsets
	PosLong                   // line:column
)

// FormatPos renders p in the requested mode, using f to resolve lines and
// columns. It returns the empty string for PosNone.
func FormatPos(mode PosMode, f *File, p Pos) string {
	switch mode {
	case PosOffsets:
		return fmt.Sprintf("%d", p.Offset())
	case PosLong:
		lpos := f.Position(p)
		return fmt.Sprintf("%d:%d", lpos.Line, lpos.Column)
	default:
		return ""
	}
}
