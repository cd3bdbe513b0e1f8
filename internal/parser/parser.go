// Package parser recovers values from truncated or malformed JSON text.
//
// Parsing first attempts a strict decode of the whole input; when that
// fails, a tolerant recursive-descent pass recovers the largest value it
// can and reports the unconsumed suffix of the input as the remainder.
// Recursion depth follows input nesting depth and is bounded only by the
// host call stack.
package parser

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mcncl/jsonmend/internal/errors"
	"github.com/mcncl/jsonmend/internal/models"
)

// NotifyFunc observes recoveries that left unparsed trailing text. It is
// called synchronously with the original input, the recovered value, and
// the trimmed remainder.
type NotifyFunc func(input string, value models.Value, remainder string)

// DefaultNotify prints a recovery diagnostic to stderr.
func DefaultNotify(input string, value models.Value, remainder string) {
	fmt.Fprintf(os.Stderr, "jsonmend: recovered a partial value; unparsed trailing text: %q\n", remainder)
}

// Parser is a tolerant JSON parser. The zero value is usable and reports
// recoveries through DefaultNotify.
type Parser struct {
	notify NotifyFunc
}

// Option configures a Parser.
type Option func(*Parser)

// WithNotify sets the hook called when a tolerant parse finishes with
// non-whitespace leftover text. Pass nil to disable notifications.
func WithNotify(fn NotifyFunc) Option {
	return func(p *Parser) {
		p.notify = fn
	}
}

// New creates a Parser.
func New(opts ...Option) *Parser {
	p := &Parser{notify: DefaultNotify}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// ParseString parses a single JSON-like text. Well-formed input decodes
// strictly; anything else goes through recovery. The returned error is
// non-nil only for the fatal cases: input that is all whitespace, or a
// keyword position whose text matches no prefix of true/false/null.
func (p *Parser) ParseString(input string) (models.Result, error) {
	if input == "" {
		return models.Result{Value: "", Remainder: "", Parsed: true}, nil
	}

	text := trimIncompleteEscape(input)

	v, err := decodeStrict(text)
	if err == nil {
		return models.Result{Value: v, Remainder: "", Parsed: true}, nil
	}

	// Tolerant pass, carrying the strict failure as fallback context.
	value, rest, perr := p.parseAny(text, err)
	if perr != nil {
		return models.Result{}, perr
	}

	if trimmed := strings.TrimSpace(rest); trimmed != "" {
		if p.notify != nil {
			p.notify(input, value, trimmed)
		}
		rest = trimmed
	}
	return models.Result{Value: value, Remainder: rest, Parsed: true}, nil
}

// Parse reads all of r and parses it. A nil reader means no input was
// supplied; the zero Result is returned and no parse is performed.
func (p *Parser) Parse(r io.Reader) (models.Result, error) {
	if r == nil {
		return models.Result{}, nil
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return models.Result{}, errors.NewInputError("failed to read input", err)
	}
	return p.ParseString(string(data))
}

// ParseFile parses JSON-like text from a file path.
func (p *Parser) ParseFile(filePath string) (models.Result, error) {
	if strings.TrimSpace(filePath) == "" {
		return models.Result{}, errors.NewInputError("file path is empty", errors.ErrInvalidFilePath)
	}
	data, err := os.ReadFile(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return models.Result{}, errors.NewInputError(
				fmt.Sprintf("file '%s' not found", filePath),
				errors.ErrFileNotFound,
			)
		}
		return models.Result{}, errors.NewInputError(
			fmt.Sprintf("failed to read file '%s'", filePath),
			err,
		)
	}
	if len(data) == 0 {
		return models.Result{}, errors.NewInputError(
			fmt.Sprintf("input file '%s' is empty", filePath),
			errors.ErrFileEmpty,
		)
	}
	return p.ParseString(string(data))
}

// ParseString parses input with a default Parser.
func ParseString(input string) (models.Result, error) {
	return New().ParseString(input)
}

// trimIncompleteEscape drops a trailing backslash left dangling by a cut-off
// escape sequence. An even run of trailing backslashes is a sequence of
// complete escaped backslashes and is kept as is.
func trimIncompleteEscape(s string) string {
	n := 0
	for n < len(s) && s[len(s)-1-n] == '\\' {
		n++
	}
	if n%2 == 1 {
		return s[:len(s)-1]
	}
	return s
}
