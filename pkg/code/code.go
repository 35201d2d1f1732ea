// Package code holds generated source text and the metadata needed to write
// it to disk.
package code

import (
	"strings"
)

// partialInfix is inserted before the extension of partial files. The ".tmp"
// segment is kept for compatibility with existing generated trees.
const partialInfix = ".partial.tmp"

// Code is one unit of generated source text. It is immutable.
//
// Two codes are equal when name and language match; the statement takes no
// part in equality.
type Code struct {
	name      string
	language  Language
	statement string
	isPartial bool
	fileName  string
}

// Empty is the sentinel for "no code".
var Empty = &Code{language: Unknown}

type Option func(*Code)

// Partial marks the code as one part of a partial type.
func Partial() Option { return func(c *Code) { c.isPartial = true } }

// WithFileName overrides the derived file name.
func WithFileName(name string) Option { return func(c *Code) { c.fileName = name } }

func New(name string, language Language, statement string, opts ...Option) *Code {
	c := &Code{
		name:      name,
		language:  language,
		statement: statement,
	}
	for _, fn := range opts {
		fn(c)
	}
	return c
}

func (c *Code) Name() string       { return c.name }
func (c *Code) Language() Language { return c.language }
func (c *Code) Statement() string  { return c.statement }
func (c *Code) IsPartial() bool    { return c.isPartial }

// IsEmpty reports whether c is nil or carries the Empty identity.
func (c *Code) IsEmpty() bool {
	return c == nil || (c.name == "" && c.language == Unknown)
}

// FileName is the explicit file name, or name[.partial.tmp].extension.
func (c *Code) FileName() string {
	if c.fileName != "" {
		return c.fileName
	}
	var sb strings.Builder
	sb.WriteString(c.name)
	if c.isPartial {
		sb.WriteString(partialInfix)
	}
	if c.language.Extension != "" {
		sb.WriteByte('.')
		sb.WriteString(c.language.Extension)
	}
	return sb.String()
}

// Equal compares name and language only.
func (c *Code) Equal(o *Code) bool {
	if c == nil || o == nil {
		return c == o
	}
	return c.name == o.name && c.language == o.language
}

// Key is a map key consistent with Equal.
func (c *Code) Key() string {
	return c.language.Name + ":" + c.name
}

// Compare orders codes by name with the operands reversed, so sorting with
// Compare yields descending names.
func (c *Code) Compare(o *Code) int {
	return strings.Compare(o.name, c.name)
}

// WithStatement returns a copy of c carrying statement.
func (c *Code) WithStatement(statement string) *Code {
	cp := *c
	cp.statement = statement
	return &cp
}

func (c *Code) String() string {
	return c.FileName()
}
