package csharp

import (
	"strings"

	"github.com/cmmoran/dtogen/pkg/naming"
	"github.com/cmmoran/dtogen/pkg/typemodel"
)

const indentUnit = "    "

// writer is a line-oriented builder with an indentation level.
type writer struct {
	sb     strings.Builder
	indent int
}

func (w *writer) line(parts ...string) {
	text := strings.Join(parts, "")
	if text == "" {
		w.sb.WriteByte('\n')
		return
	}
	w.sb.WriteString(strings.Repeat(indentUnit, w.indent))
	w.sb.WriteString(text)
	w.sb.WriteByte('\n')
}

func (w *writer) open() {
	w.line("{")
	w.indent++
}

func (w *writer) close() {
	w.indent--
	w.line("}")
}

// body writes a multi-line body, re-indenting each line.
func (w *writer) body(text string) {
	for _, l := range strings.Split(strings.TrimRight(text, "\n"), "\n") {
		w.line(strings.TrimRight(l, " \t"))
	}
}

func (w *writer) String() string { return w.sb.String() }

func (w *writer) comment(text string) {
	if strings.TrimSpace(text) == "" {
		return
	}
	w.line("/// <summary>")
	for _, l := range strings.Split(strings.TrimSpace(text), "\n") {
		w.line("/// ", strings.TrimSpace(l))
	}
	w.line("/// </summary>")
}

func (w *writer) attributes(attrs []typemodel.Attribute) {
	for _, a := range attrs {
		w.line("[", a.String(), "]")
	}
}

func modifiers(access typemodel.AccessModifier, inherit typemodel.InheritanceModifier, extra ...string) string {
	parts := append(access.Keywords(), inherit.Keywords()...)
	parts = append(parts, extra...)
	if len(parts) == 0 {
		return ""
	}
	return strings.Join(parts, " ") + " "
}

func typeParams(params []string) string {
	if len(params) == 0 {
		return ""
	}
	return "<" + strings.Join(params, ", ") + ">"
}

// writeType renders one class, struct or interface declaration.
func writeType(w *writer, t typemodel.Type) {
	d := t.Decl()
	w.comment(d.Comment)
	w.attributes(d.Attributes)

	inherit := d.Inheritance
	var keyword string
	switch tt := t.(type) {
	case *typemodel.Class:
		keyword = "class"
		if tt.IsStatic {
			inherit |= typemodel.InheritStatic
		}
	case *typemodel.Struct:
		keyword = "struct"
		if tt.IsReadOnly {
			keyword = "readonly struct"
		}
	case *typemodel.Interface:
		keyword = "interface"
	}

	header := modifiers(d.Access, inherit) + keyword + " " + d.Name + typeParams(d.TypeParams)
	if len(d.BaseTypes) > 0 {
		bases := make([]string, len(d.BaseTypes))
		for i, b := range d.BaseTypes {
			bases[i] = b.CSharp()
		}
		header += " : " + strings.Join(bases, ", ")
	}
	w.line(header)
	w.open()

	isInterface := t.TypeKind() == typemodel.KindInterface
	first := true
	sep := func() {
		if !first {
			w.line()
		}
		first = false
	}

	if !isInterface {
		for _, p := range d.Properties() {
			if p.BackingFieldName == "" {
				continue
			}
			sep()
			w.line("private ", p.Type.CSharp(), " ", p.BackingFieldName, ";")
		}
	}
	for _, m := range d.Members {
		sep()
		switch mm := m.(type) {
		case *typemodel.Property:
			writeProperty(w, mm, isInterface)
		case *typemodel.Method:
			writeMethod(w, mm, d.Name, isInterface)
		}
	}
	w.close()
}

func writeProperty(w *writer, p *typemodel.Property, isInterface bool) {
	w.comment(p.Comment)
	w.attributes(p.Attributes)

	access := p.Access
	if isInterface {
		access = typemodel.AccessNone
	}
	decl := modifiers(access, p.Inheritance) + p.Type.CSharp() + " " + p.Name

	getter, setter := p.Getter, p.Setter
	if getter == nil && setter == nil {
		getter, setter = &typemodel.Accessor{}, &typemodel.Accessor{}
	}

	backed := p.BackingFieldName != "" && !isInterface
	hasBody := (getter != nil && getter.Body != "") || (setter != nil && setter.Body != "")
	if !backed && !hasBody {
		parts := []string{}
		if getter != nil {
			parts = append(parts, modifiers(getter.Access, 0)+"get;")
		}
		if setter != nil {
			parts = append(parts, modifiers(setter.Access, 0)+"set;")
		}
		line := decl + " { " + strings.Join(parts, " ") + " }"
		if p.Initializer != "" && !isInterface {
			line += " = " + p.Initializer + ";"
		}
		w.line(line)
		return
	}

	w.line(decl)
	w.open()
	if getter != nil {
		writeAccessor(w, getter, "get", "return "+p.BackingFieldName+";")
	}
	if setter != nil {
		writeAccessor(w, setter, "set", p.BackingFieldName+" = value;")
	}
	w.close()
}

func writeAccessor(w *writer, a *typemodel.Accessor, keyword, fallback string) {
	body := a.Body
	if body == "" {
		body = fallback
	}
	if !strings.Contains(body, "\n") {
		w.line(modifiers(a.Access, 0), keyword, " { ", strings.TrimSpace(body), " }")
		return
	}
	w.line(modifiers(a.Access, 0), keyword)
	w.open()
	w.body(body)
	w.close()
}

func writeMethod(w *writer, m *typemodel.Method, typeName string, isInterface bool) {
	w.comment(m.Comment)
	w.attributes(m.Attributes)

	inherit := m.Inheritance
	if m.IsExtension {
		inherit |= typemodel.InheritStatic
	}
	access := m.Access
	if isInterface {
		access = typemodel.AccessNone
	}
	var extra []string
	if m.IsAsync && !isInterface {
		extra = append(extra, "async")
	}

	var signature string
	if m.IsConstructor {
		signature = modifiers(access, inherit&^typemodel.InheritStatic) + typeName
	} else {
		signature = modifiers(access, inherit, extra...) + returnType(m) + " " + m.Name + typeParams(m.TypeParams)
	}

	args := m.Arguments.All()
	rendered := make([]string, len(args))
	for i, a := range args {
		s := a.Type.CSharp() + " " + naming.Escape(a.Name)
		if a.Default != "" {
			s += " = " + a.Default
		}
		if i == 0 && m.IsExtension {
			s = "this " + s
		}
		rendered[i] = s
	}
	signature += "(" + strings.Join(rendered, ", ") + ")"

	if isInterface || inherit.Has(typemodel.InheritAbstract) {
		w.line(signature, ";")
		return
	}
	w.line(signature)
	w.open()
	if strings.TrimSpace(m.Body) != "" {
		w.body(m.Body)
	}
	w.close()
}

// returnType wraps async return types in Task unless they already are one.
func returnType(m *typemodel.Method) string {
	rt := m.ReturnType
	if !m.IsAsync {
		if rt == nil {
			return "void"
		}
		return rt.CSharp()
	}
	switch {
	case rt == nil || rt.CSharp() == "void":
		return "Task"
	case rt.Name() == "Task" || rt.Name() == "ValueTask":
		return rt.CSharp()
	default:
		return "Task<" + rt.CSharp() + ">"
	}
}
