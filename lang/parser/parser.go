// Package parser implements the parser that transforms a stream of lexical
// tokens into an abstract syntax tree (AST).
package parser

import (
	"context"
	"errors"
	"os"
	"strings"

	"github.com/roxlang/rox/lang/ast"
	"github.com/roxlang/rox/lang/scanner"
	"github.com/roxlang/rox/lang/token"
)

// maxArity is the maximum number of parameters of a function declaration and
// of arguments of a call.
const maxArity = 255

// ParseFiles is a helper function that parses the source files and returns
// the file set along with the ASTs and any error encountered. The error, if
// non-nil, is guaranteed to be a scanner.ErrorList.
func ParseFiles(ctx context.Context, files ...string) (*token.FileSet, []*ast.Chunk, error) {
	if len(files) == 0 {
		return nil, nil, nil
	}

	var p parser

	res := make([]*ast.Chunk, 0, len(files))
	fs := token.NewFileSet()

	for _, file := range files {
		b, err := os.ReadFile(file)
		if err != nil {
			p.errors.Add(token.Position{Filename: file}, err.Error())
			continue
		}

		p.init(fs, file, b)
		ch := p.parseChunk()
		ch.Name = file
		res = append(res, ch)
	}
	p.errors.Sort()
	return fs, res, p.errors.Err()
}

// ParseChunk is a helper function that parses a single chunk from a slice of
// bytes and returns the AST and any error encountered. The chunk is added to
// the provided fset for position reporting under the name specified in
// filename. The error, if non-nil, is guaranteed to be a scanner.ErrorList.
func ParseChunk(ctx context.Context, fset *token.FileSet, filename string, src []byte) (*ast.Chunk, error) {
	var p parser
	p.init(fset, filename, src)
	ch := p.parseChunk()
	ch.Name = filename
	p.errors.Sort()
	return ch, p.errors.Err()
}

// parser parses source files and generates an AST.
type parser struct {
	// those fields are immutable after p.init
	scanner scanner.Scanner
	errors  scanner.ErrorList
	file    *token.File

	// current token
	tok token.Token
}

func (p *parser) init(fset *token.FileSet, filename string, src []byte) {
	p.file = fset.AddFile(filename, len(src))
	p.scanner.Init(p.file, src, p.errors.Add)

	// advance to first token
	p.advance()
}

func (p *parser) advance() {
	p.tok = p.scanner.Scan()
}

// newID returns the identity to assign to an expression node under
// construction, so that two textually identical expressions at different
// positions remain distinguishable.
func (p *parser) newID() int {
	return ast.NewID()
}

var errPanicMode = errors.New("panic")

// expect returns the current token and consumes it if it is one of the
// expected kinds, otherwise it reports an error and panics with errPanicMode
// which gets recovered at the declaration level, resulting in a BadStmt.
func (p *parser) expect(kinds ...token.Kind) token.Token {
	tok := p.tok

	var buf strings.Builder
	var ok bool
	for i, k := range kinds {
		if tok.Kind == k {
			ok = true
			break
		}
		if i > 0 {
			buf.WriteString(", ")
		}
		buf.WriteString(k.GoString())
	}

	if !ok {
		var lbl string
		if len(kinds) > 1 {
			lbl = "one of " + buf.String()
		} else {
			lbl = buf.String()
		}
		p.errorExpected(tok.Pos, lbl)
		panic(errPanicMode)
	}

	p.advance()
	return tok
}

func (p *parser) error(pos token.Pos, msg string) {
	lpos := p.file.Position(pos)
	p.errors.Add(lpos, msg)
}

func (p *parser) errorExpected(pos token.Pos, msg string) {
	msg = "expected " + msg
	if pos == p.tok.Pos {
		// the error happened at the current position;
		// make the error message more specific
		switch lit := p.tok.Literal(); lit {
		case "":
			msg += ", found " + p.tok.Kind.GoString()
		default:
			// print 123 rather than 'NUMBER', etc.
			msg += ", found " + lit
		}
	}
	p.error(pos, msg)
}

type syncMode int

const (
	syncAfter syncMode = iota
	syncAt
)

// Tokens at which the parser can resynchronize after an error: a semicolon
// ends the broken statement (sync after it), the other tokens begin a new
// declaration or statement (sync at them).
var syncToks = map[token.Kind]syncMode{
	token.SEMICOLON: syncAfter,
	token.CLASS:     syncAt,
	token.FUN:       syncAt,
	token.VAR:       syncAt,
	token.FOR:       syncAt,
	token.IF:        syncAt,
	token.WHILE:     syncAt,
	token.PRINT:     syncAt,
	token.RETURN:    syncAt,
}

func (p *parser) syncAfterError() token.Pos {
	for p.tok.Kind != token.EOF {
		if mode, ok := syncToks[p.tok.Kind]; ok {
			if mode == syncAfter {
				p.advance()
			}
			return p.tok.Pos
		}
		p.advance()
	}
	return p.tok.Pos
}
