package typepath

import (
	"strings"
	"unicode"

	"github.com/cockroachdb/errors"
)

// aliases maps C# keywords to their System type names.
var aliases = map[string]string{
	"bool":    "Boolean",
	"byte":    "Byte",
	"sbyte":   "SByte",
	"char":    "Char",
	"decimal": "Decimal",
	"double":  "Double",
	"float":   "Single",
	"int":     "Int32",
	"uint":    "UInt32",
	"nint":    "IntPtr",
	"nuint":   "UIntPtr",
	"long":    "Int64",
	"ulong":   "UInt64",
	"short":   "Int16",
	"ushort":  "UInt16",
	"object":  "Object",
	"string":  "String",
	"void":    "Void",
}

var keywordFor = func() map[string]string {
	m := make(map[string]string, len(aliases))
	for kw, name := range aliases {
		m[name] = kw
	}
	return m
}()

// wellKnown maps unqualified type names to the namespace they live in.
var wellKnown = map[string]string{
	"DateTime":             systemNamespace,
	"DateTimeOffset":       systemNamespace,
	"DateOnly":             systemNamespace,
	"TimeOnly":             systemNamespace,
	"TimeSpan":             systemNamespace,
	"Guid":                 systemNamespace,
	"Uri":                  systemNamespace,
	"Nullable":             systemNamespace,
	"IEnumerable":          collectionsNamespace,
	"ICollection":          collectionsNamespace,
	"IList":                collectionsNamespace,
	"List":                 collectionsNamespace,
	"IReadOnlyList":        collectionsNamespace,
	"IReadOnlyCollection":  collectionsNamespace,
	"IDictionary":          collectionsNamespace,
	"Dictionary":           collectionsNamespace,
	"IReadOnlyDictionary":  collectionsNamespace,
	"HashSet":              collectionsNamespace,
	"ISet":                 collectionsNamespace,
	"KeyValuePair":         collectionsNamespace,
	"Collection":           "System.Collections.ObjectModel",
	"ObservableCollection": "System.Collections.ObjectModel",
	"Task":                 tasksNamespace,
	"ValueTask":            tasksNamespace,
}

// foldedWellKnown maps lower-cased well-known names to their canonical spelling.
var foldedWellKnown = make(map[string]string)

func init() {
	for _, name := range aliases {
		wellKnown[name] = systemNamespace
	}
	for name := range wellKnown {
		foldedWellKnown[strings.ToLower(name)] = name
	}
}

// Parse parses a shorthand, C#-style or CLR reflection-style type name.
func Parse(s string) (*TypePath, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, ErrEmptyTypeName
	}
	p := &parser{src: []rune(s)}
	tp, err := p.parseType()
	if err != nil {
		return nil, errors.Wrapf(err, "parse %q", s)
	}
	p.skipSpace()
	// An assembly-qualified name ("System.String, mscorlib") carries
	// trailing metadata that plays no part in the type expression.
	if !p.eof() && p.peek() != ',' {
		return nil, errors.Wrapf(ErrMalformed, "parse %q: unexpected %q at %d", s, p.peek(), p.pos)
	}
	return tp, nil
}

type parser struct {
	src []rune
	pos int
}

func (p *parser) eof() bool { return p.pos >= len(p.src) }

func (p *parser) peek() rune {
	if p.eof() {
		return 0
	}
	return p.src[p.pos]
}

func (p *parser) peekAt(offset int) rune {
	if p.pos+offset >= len(p.src) {
		return 0
	}
	return p.src[p.pos+offset]
}

func (p *parser) skipSpace() {
	for !p.eof() && unicode.IsSpace(p.peek()) {
		p.pos++
	}
}

func (p *parser) expect(r rune) error {
	p.skipSpace()
	if p.peek() != r {
		return errors.Wrapf(ErrMalformed, "expected %q at %d", r, p.pos)
	}
	p.pos++
	return nil
}

func isIdentRune(r rune) bool {
	return r == '_' || r == '.' || r == '+' || r == '@' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

// parseType := qname generic? suffix*
func (p *parser) parseType() (*TypePath, error) {
	p.skipSpace()
	start := p.pos
	for !p.eof() && isIdentRune(p.peek()) {
		p.pos++
	}
	qname := strings.Trim(string(p.src[start:p.pos]), ".")
	if qname == "" {
		return nil, errors.Wrapf(ErrMalformed, "expected type name at %d", start)
	}

	var (
		args []*TypePath
		err  error
	)
	switch p.peek() {
	case '<':
		args, err = p.parseAngleArgs()
	case '`':
		args, err = p.parseClrArgs()
	}
	if err != nil {
		return nil, err
	}

	tp := resolve(qname, args)
	return p.parseSuffixes(tp)
}

func (p *parser) parseAngleArgs() ([]*TypePath, error) {
	p.pos++ // '<'
	var args []*TypePath
	for {
		arg, err := p.parseType()
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
		p.skipSpace()
		switch p.peek() {
		case ',':
			p.pos++
		case '>':
			p.pos++
			return args, nil
		default:
			return nil, errors.Wrapf(ErrMalformed, "unterminated generic argument list at %d", p.pos)
		}
	}
}

// maxArity bounds the generic arity accepted in reflection names.
const maxArity = 64

// parseClrArgs handles `N[A,B] and `N[[A, asm],[B, asm]].
func (p *parser) parseClrArgs() ([]*TypePath, error) {
	p.pos++ // '`'
	arity := 0
	for !p.eof() && p.peek() >= '0' && p.peek() <= '9' {
		arity = arity*10 + int(p.peek()-'0')
		if arity > maxArity {
			return nil, errors.Wrapf(ErrMalformed, "generic arity exceeds %d at %d", maxArity, p.pos)
		}
		p.pos++
	}
	if arity == 0 {
		return nil, errors.Wrapf(ErrMalformed, "missing generic arity at %d", p.pos)
	}
	// Open generic definitions ("List`1") carry no argument list.
	if p.peek() != '[' || p.peekAt(1) == ']' {
		return nil, nil
	}
	p.pos++ // '['
	var args []*TypePath
	for {
		p.skipSpace()
		var (
			arg *TypePath
			err error
		)
		if p.peek() == '[' {
			p.pos++
			if arg, err = p.parseType(); err != nil {
				return nil, err
			}
			p.skipAssemblyName()
			if err = p.expect(']'); err != nil {
				return nil, err
			}
		} else if arg, err = p.parseType(); err != nil {
			return nil, err
		}
		args = append(args, arg)
		p.skipSpace()
		switch p.peek() {
		case ',':
			p.pos++
		case ']':
			p.pos++
			if len(args) != arity {
				return nil, errors.Wrapf(ErrMalformed, "expected %d generic arguments, got %d", arity, len(args))
			}
			return args, nil
		default:
			return nil, errors.Wrapf(ErrMalformed, "unterminated generic argument list at %d", p.pos)
		}
	}
}

// skipAssemblyName consumes ", mscorlib, Version=..." up to the closing bracket.
func (p *parser) skipAssemblyName() {
	p.skipSpace()
	if p.peek() != ',' {
		return
	}
	depth := 0
	for !p.eof() {
		switch p.peek() {
		case '[':
			depth++
		case ']':
			if depth == 0 {
				return
			}
			depth--
		}
		p.pos++
	}
}

func (p *parser) parseSuffixes(tp *TypePath) (*TypePath, error) {
	for {
		p.skipSpace()
		switch {
		case p.peek() == '?':
			p.pos++
			tp = tp.WithNullable()
		case p.peek() == '[' && p.peekAt(1) == ']':
			p.pos += 2
			tp = ArrayOf(tp)
		default:
			return tp, nil
		}
	}
}

// resolve splits a qualified name and applies alias and well-known lookups.
func resolve(qname string, args []*TypePath) *TypePath {
	ns, name := "", qname
	if i := strings.LastIndex(qname, "."); i >= 0 {
		ns, name = qname[:i], qname[i+1:]
	}
	if ns == "" {
		if clr, ok := aliases[name]; ok && len(args) == 0 {
			return Named(systemNamespace, clr)
		}
		if known, ok := wellKnown[name]; ok {
			ns = known
		} else if canonical, ok := foldedWellKnown[strings.ToLower(name)]; ok {
			ns, name = wellKnown[canonical], canonical
		}
	}
	if ns == systemNamespace && name == "Nullable" && len(args) == 1 {
		return args[0].WithNullable()
	}
	return Named(ns, name, args...)
}
