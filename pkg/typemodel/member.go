// Package typemodel is a language-agnostic description of type declarations:
// namespaces, classes, structs, interfaces and their members.
//
// The graph is mutable while a caller assembles it. Generators only read it.
// Validation is explicit: nothing here validates during construction beyond
// rejecting a missing name.
package typemodel

import (
	"strings"

	"github.com/cockroachdb/errors"

	"github.com/cmmoran/dtogen/pkg/result"
	"github.com/cmmoran/dtogen/pkg/typepath"
)

var (
	ErrNameRequired = errors.New("name is required")
	ErrTypeRequired = errors.New("type is required")
)

// Attribute is a declaration annotation such as [Required] or [MaxLength(50)].
type Attribute struct {
	Name string
	Args []string
}

func (a Attribute) String() string {
	if len(a.Args) == 0 {
		return a.Name
	}
	return a.Name + "(" + strings.Join(a.Args, ", ") + ")"
}

// TypeMember is anything declared inside a type.
type TypeMember interface {
	MemberName() string
	Validate() result.Result
}

// Member holds what every declaration shares.
type Member struct {
	Name        string
	Access      AccessModifier
	Inheritance InheritanceModifier
	Attributes  []Attribute
	Comment     string
}

func (m *Member) MemberName() string { return m.Name }

// AddAttribute appends a unless an identical attribute is already present.
func (m *Member) AddAttribute(a Attribute) bool {
	for _, existing := range m.Attributes {
		if existing.String() == a.String() {
			return false
		}
	}
	m.Attributes = append(m.Attributes, a)
	return true
}

// HasAttribute reports whether an attribute named name is attached.
func (m *Member) HasAttribute(name string) bool {
	for _, a := range m.Attributes {
		if a.Name == name {
			return true
		}
	}
	return false
}

func (m *Member) Validate() result.Result {
	if m == nil {
		return result.Fail("Member is nil.")
	}
	if strings.TrimSpace(m.Name) == "" {
		return result.Fail("Member name is required.")
	}
	return result.Succeed()
}

// nilMember reports whether m is nil or a typed nil pointer.
func nilMember(m TypeMember) bool {
	switch mm := m.(type) {
	case nil:
		return true
	case *Property:
		return mm == nil
	case *Method:
		return mm == nil
	case *Member:
		return mm == nil
	}
	return false
}

func requireName(kind, name string) error {
	if strings.TrimSpace(name) == "" {
		return errors.Wrap(ErrNameRequired, kind)
	}
	return nil
}

// Argument is a method parameter. Identity is structural: type and name.
type Argument struct {
	Type    *typepath.TypePath
	Name    string
	Default string
}

func (a Argument) key() string {
	if a.Type == nil {
		return " " + a.Name
	}
	return a.Type.FullName() + " " + a.Name
}

// ArgumentSet is an insertion-ordered set of arguments.
type ArgumentSet struct {
	items []Argument
	index map[string]struct{}
}

func NewArgumentSet(args ...Argument) *ArgumentSet {
	s := &ArgumentSet{index: make(map[string]struct{})}
	for _, a := range args {
		s.Add(a)
	}
	return s
}

// Add inserts a and reports whether it was not already present.
func (s *ArgumentSet) Add(a Argument) bool {
	if s.index == nil {
		s.index = make(map[string]struct{})
	}
	k := a.key()
	if _, ok := s.index[k]; ok {
		return false
	}
	s.index[k] = struct{}{}
	s.items = append(s.items, a)
	return true
}

func (s *ArgumentSet) Contains(a Argument) bool {
	if s == nil {
		return false
	}
	_, ok := s.index[a.key()]
	return ok
}

func (s *ArgumentSet) Len() int {
	if s == nil {
		return 0
	}
	return len(s.items)
}

func (s *ArgumentSet) All() []Argument {
	if s == nil {
		return nil
	}
	return append([]Argument(nil), s.items...)
}

// Method describes a method or constructor.
type Method struct {
	Member
	Arguments     *ArgumentSet
	TypeParams    []string
	Body          string
	ReturnType    *typepath.TypePath
	IsAsync       bool
	IsConstructor bool
	IsExtension   bool
}

type MethodOption func(*Method)

func WithBody(body string) MethodOption { return func(m *Method) { m.Body = body } }
func WithReturnType(tp *typepath.TypePath) MethodOption {
	return func(m *Method) { m.ReturnType = tp }
}
func WithArguments(args ...Argument) MethodOption {
	return func(m *Method) {
		for _, a := range args {
			m.Arguments.Add(a)
		}
	}
}
func WithMethodAccess(a AccessModifier) MethodOption { return func(m *Method) { m.Access = a } }
func AsConstructor() MethodOption                    { return func(m *Method) { m.IsConstructor = true } }
func AsExtension() MethodOption {
	return func(m *Method) {
		m.IsExtension = true
		m.Inheritance |= InheritStatic
	}
}
func AsAsync() MethodOption { return func(m *Method) { m.IsAsync = true } }

// NewMethod creates a public method. The name is required.
func NewMethod(name string, opts ...MethodOption) (*Method, error) {
	if err := requireName("method", name); err != nil {
		return nil, err
	}
	m := &Method{
		Member:    Member{Name: name, Access: AccessPublic},
		Arguments: NewArgumentSet(),
	}
	for _, fn := range opts {
		fn(m)
	}
	return m, nil
}

// Validate checks the extension and constructor rules.
func (m *Method) Validate() result.Result {
	if m == nil {
		return result.Fail("Method is nil.")
	}
	if r := m.Member.Validate(); r.IsFailure() {
		return r
	}
	if m.IsConstructor && m.IsExtension {
		return result.Failf("Method %s: a constructor cannot be an extension method.", m.Name)
	}
	if m.IsExtension && m.Arguments.Len() == 0 {
		return result.Failf("Method %s: an extension method requires at least one argument.", m.Name)
	}
	return result.Succeed()
}

// Accessor is a property getter or setter.
type Accessor struct {
	Access AccessModifier
	Body   string
}

// Property describes a property, optionally backed by a field.
type Property struct {
	Member
	Type             *typepath.TypePath
	BackingFieldName string
	Getter           *Accessor
	Setter           *Accessor
	Initializer      string
}

// NewProperty creates a public property. A backing field without explicit
// accessors implies a default getter and setter.
func NewProperty(name string, typ *typepath.TypePath, backingFieldName string) (*Property, error) {
	if err := requireName("property", name); err != nil {
		return nil, err
	}
	if typ == nil {
		return nil, errors.Wrapf(ErrTypeRequired, "property %s", name)
	}
	p := &Property{
		Member:           Member{Name: name, Access: AccessPublic},
		Type:             typ,
		BackingFieldName: backingFieldName,
	}
	if backingFieldName != "" {
		p.Getter = &Accessor{}
		p.Setter = &Accessor{}
	}
	return p, nil
}

func (p *Property) Validate() result.Result {
	if p == nil {
		return result.Fail("Property is nil.")
	}
	if r := p.Member.Validate(); r.IsFailure() {
		return r
	}
	if p.Type == nil {
		return result.Failf("Property %s: type is required.", p.Name)
	}
	return result.Succeed()
}
