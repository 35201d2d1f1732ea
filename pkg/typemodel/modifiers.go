package typemodel

import (
	"strings"
)

// AccessModifier is a bitset of accessibility keywords.
type AccessModifier uint8

const (
	AccessNone      AccessModifier = 0
	AccessPrivate   AccessModifier = 1 << 0
	AccessProtected AccessModifier = 1 << 1
	AccessInternal  AccessModifier = 1 << 2
	AccessPublic    AccessModifier = 1 << 3
	AccessReadOnly  AccessModifier = 1 << 4

	AccessInternalProtected = AccessProtected | AccessInternal
	AccessPrivateProtected  = AccessPrivate | AccessProtected
)

// Has reports whether every flag in f is set.
func (a AccessModifier) Has(f AccessModifier) bool { return f != 0 && a&f == f }

// Keywords renders the modifier in declaration order, e.g. "protected internal readonly".
func (a AccessModifier) Keywords() []string {
	var out []string
	if a.Has(AccessPublic) {
		out = append(out, "public")
	}
	if a.Has(AccessPrivate) {
		out = append(out, "private")
	}
	if a.Has(AccessProtected) {
		out = append(out, "protected")
	}
	if a.Has(AccessInternal) {
		out = append(out, "internal")
	}
	if a.Has(AccessReadOnly) {
		out = append(out, "readonly")
	}
	return out
}

func (a AccessModifier) String() string { return strings.Join(a.Keywords(), " ") }

// InheritanceModifier is a bitset of inheritance and storage keywords.
type InheritanceModifier uint16

const (
	InheritNone     InheritanceModifier = 0
	InheritVirtual  InheritanceModifier = 1 << 0
	InheritAbstract InheritanceModifier = 1 << 1
	InheritOverride InheritanceModifier = 1 << 2
	InheritNew      InheritanceModifier = 1 << 3
	InheritSealed   InheritanceModifier = 1 << 4
	InheritStatic   InheritanceModifier = 1 << 5
	InheritPartial  InheritanceModifier = 1 << 6
	InheritConst    InheritanceModifier = 1 << 7

	InheritSealedOverride = InheritSealed | InheritOverride
)

func (m InheritanceModifier) Has(f InheritanceModifier) bool { return f != 0 && m&f == f }

var inheritanceOrder = []struct {
	flag    InheritanceModifier
	keyword string
}{
	{InheritNew, "new"},
	{InheritStatic, "static"},
	{InheritConst, "const"},
	{InheritSealed, "sealed"},
	{InheritAbstract, "abstract"},
	{InheritVirtual, "virtual"},
	{InheritOverride, "override"},
	{InheritPartial, "partial"},
}

func (m InheritanceModifier) Keywords() []string {
	var out []string
	for _, k := range inheritanceOrder {
		if m.Has(k.flag) {
			out = append(out, k.keyword)
		}
	}
	return out
}

func (m InheritanceModifier) String() string { return strings.Join(m.Keywords(), " ") }
