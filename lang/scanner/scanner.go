// Some of the scanner package is adapted from the Go source code:
// https://cs.opensource.google/go/go/+/refs/tags/go1.21.0:src/go/scanner/scanner.go
//
// Copyright 2009 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package scanner implements the scanner that transforms source code into a
// stream of lexical tokens.
package scanner

import (
	"context"
	"fmt"
	"go/scanner"
	"os"
	"strconv"

	"github.com/roxlang/rox/lang/token"
)

type (
	// Error is a single scanning, parsing or resolution error.
	Error = scanner.Error
	// ErrorList is a list of errors that sorts by position and implements the
	// error interface.
	ErrorList = scanner.ErrorList
)

// PrintError prints err to w, one error per line if err is an ErrorList.
var PrintError = scanner.PrintError

// ScanFiles is a helper function that tokenizes the source files and returns
// the file set along with the list of tokens grouped by the file at the same
// index, and any error encountered. The error, if non-nil, is guaranteed to
// be an ErrorList.
func ScanFiles(ctx context.Context, files ...string) (*token.FileSet, [][]token.Token, error) {
	if len(files) == 0 {
		return nil, nil, nil
	}

	var (
		s  Scanner
		el ErrorList
	)

	fs := token.NewFileSet()
	tokensByFile := make([][]token.Token, len(files))
	for i, file := range files {
		b, err := os.ReadFile(file)
		if err != nil {
			el.Add(token.Position{Filename: file}, err.Error())
			continue
		}

		f := fs.AddFile(file, len(b))
		s.Init(f, b, el.Add)

		var toks []token.Token
		for {
			tok := s.Scan()
			toks = append(toks, tok)
			if tok.Kind == token.EOF {
				break
			}
		}
		tokensByFile[i] = toks
	}
	el.Sort()
	return fs, tokensByFile, el.Err()
}

// Scanner scans a source file and produces lexical tokens.
type Scanner struct {
	file *token.File
	src  []byte
	errh func(token.Position, string)

	off  int // offset of the next byte to read
	line int // 1-based line of the next byte to read
}

// Init prepares the scanner to tokenize src, reporting line boundaries to
// file and errors to errHandler. The same Scanner can be reused by calling
// Init again with a new file.
func (s *Scanner) Init(file *token.File, src []byte, errHandler func(token.Position, string)) {
	s.file = file
	s.src = src
	s.errh = errHandler
	s.off = 0
	s.line = 1
}

func (s *Scanner) peek() byte {
	if s.off < len(s.src) {
		return s.src[s.off]
	}
	return 0
}

func (s *Scanner) peekAt(n int) byte {
	if s.off+n < len(s.src) {
		return s.src[s.off+n]
	}
	return 0
}

func (s *Scanner) advance() byte {
	b := s.src[s.off]
	s.off++
	if b == '\n' {
		s.line++
		s.file.AddLine(s.off)
	}
	return b
}

func (s *Scanner) advanceIf(match byte) bool {
	if s.off < len(s.src) && s.src[s.off] == match {
		s.advance()
		return true
	}
	return false
}

func (s *Scanner) error(off int, msg string) {
	if s.errh != nil {
		s.errh(s.file.Position(token.MakePos(off)), msg)
	}
}

func (s *Scanner) errorf(off int, format string, args ...any) {
	s.error(off, fmt.Sprintf(format, args...))
}

// Scan returns the next token in the source. At the end of the source it
// returns a token of kind EOF; scanning errors are reported to the error
// handler provided to Init, and the offending characters are skipped.
func (s *Scanner) Scan() token.Token {
	for {
		s.skipWhitespace()

		start, line := s.off, s.line
		if s.off >= len(s.src) {
			return token.Token{Kind: token.EOF, Pos: token.MakePos(start), Line: line}
		}

		mk := func(k token.Kind) token.Token {
			return token.Token{
				Kind:   k,
				Lexeme: string(s.src[start:s.off]),
				Pos:    token.MakePos(start),
				Line:   line,
			}
		}

		b := s.advance()
		switch {
		case isLetter(b):
			for isLetter(s.peek()) || isDigit(s.peek()) {
				s.advance()
			}
			tok := mk(token.LookupIdent(string(s.src[start:s.off])))
			return tok

		case isDigit(b):
			return s.number(start, line)
		}

		switch b {
		case '(':
			return mk(token.LPAREN)
		case ')':
			return mk(token.RPAREN)
		case '{':
			return mk(token.LBRACE)
		case '}':
			return mk(token.RBRACE)
		case ',':
			return mk(token.COMMA)
		case '.':
			return mk(token.DOT)
		case '-':
			return mk(token.MINUS)
		case '+':
			return mk(token.PLUS)
		case ';':
			return mk(token.SEMICOLON)
		case '*':
			return mk(token.STAR)
		case '!':
			if s.advanceIf('=') {
				return mk(token.BANGEQ)
			}
			return mk(token.BANG)
		case '=':
			if s.advanceIf('=') {
				return mk(token.EQEQ)
			}
			return mk(token.EQ)
		case '<':
			if s.advanceIf('=') {
				return mk(token.LE)
			}
			return mk(token.LT)
		case '>':
			if s.advanceIf('=') {
				return mk(token.GE)
			}
			return mk(token.GT)
		case '/':
			if s.advanceIf('/') {
				for s.off < len(s.src) && s.peek() != '\n' {
					s.advance()
				}
				continue
			}
			if s.advanceIf('*') {
				s.blockComment(start)
				continue
			}
			return mk(token.SLASH)
		case '"':
			return s.str(start, line)
		}

		s.errorf(start, "unexpected character %q", b)
	}
}

// number scans a NUMBER token. The integer part's first digit has already
// been consumed. A trailing dot without a following digit is not part of the
// number (it scans as a DOT token).
func (s *Scanner) number(start, line int) token.Token {
	for isDigit(s.peek()) {
		s.advance()
	}
	if s.peek() == '.' && isDigit(s.peekAt(1)) {
		s.advance()
		for isDigit(s.peek()) {
			s.advance()
		}
	}

	lex := string(s.src[start:s.off])
	f, err := strconv.ParseFloat(lex, 64)
	if err != nil {
		s.errorf(start, "invalid number literal %s: %s", lex, err)
	}
	return token.Token{
		Kind:   token.NUMBER,
		Lexeme: lex,
		Num:    f,
		Pos:    token.MakePos(start),
		Line:   line,
	}
}

// str scans a STRING token. The opening quote has already been consumed.
// Strings have no escape sequences and may span multiple lines.
func (s *Scanner) str(start, line int) token.Token {
	for s.off < len(s.src) && s.peek() != '"' {
		s.advance()
	}
	if s.off >= len(s.src) {
		s.error(start, "unterminated string")
		return token.Token{
			Kind:   token.STRING,
			Lexeme: string(s.src[start:s.off]),
			Str:    string(s.src[start+1 : s.off]),
			Pos:    token.MakePos(start),
			Line:   line,
		}
	}
	s.advance() // closing quote
	return token.Token{
		Kind:   token.STRING,
		Lexeme: string(s.src[start:s.off]),
		Str:    string(s.src[start+1 : s.off-1]),
		Pos:    token.MakePos(start),
		Line:   line,
	}
}

// blockComment consumes a (possibly nested) block comment. The opening
// "/*" has already been consumed.
func (s *Scanner) blockComment(start int) {
	depth := 1
	for s.off < len(s.src) && depth > 0 {
		switch {
		case s.peek() == '/' && s.peekAt(1) == '*':
			s.advance()
			s.advance()
			depth++
		case s.peek() == '*' && s.peekAt(1) == '/':
			s.advance()
			s.advance()
			depth--
		default:
			s.advance()
		}
	}
	if depth > 0 {
		s.error(start, "unterminated block comment")
	}
}

func (s *Scanner) skipWhitespace() {
	for s.off < len(s.src) && isWhitespace(s.src[s.off]) {
		s.advance()
	}
}

func isWhitespace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\r' || b == '\n'
}

func isLetter(b byte) bool {
	return b == '_' || ('a' <= b && b <= 'z') || ('A' <= b && b <= 'Z')
}

func isDigit(b byte) bool {
	return '0' <= b && b <= '9'
}
