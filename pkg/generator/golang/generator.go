// Package golang renders DTO definitions and the type model as Go source
// using jennifer.
package golang

import (
	"bytes"
	"go/token"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/dave/jennifer/jen"

	"github.com/cmmoran/dtogen/pkg/code"
	"github.com/cmmoran/dtogen/pkg/dto"
	"github.com/cmmoran/dtogen/pkg/generator"
	"github.com/cmmoran/dtogen/pkg/naming"
	"github.com/cmmoran/dtogen/pkg/result"
	"github.com/cmmoran/dtogen/pkg/typemodel"
	"github.com/cmmoran/dtogen/pkg/typepath"
)

const (
	Name          = "go"
	HeaderComment = "Code generated by dtogen. DO NOT EDIT."
	defaultPkg    = "dto"
)

// Generator emits one Go file per type.
type Generator struct {
	pkg string
}

var (
	_ generator.NamespaceGenerator = (*Generator)(nil)
	_ generator.DtoGenerator       = (*Generator)(nil)
)

type Option func(*Generator)

// WithPackage fixes the package clause. Without it the package is derived
// from the last namespace segment.
func WithPackage(name string) Option { return func(g *Generator) { g.pkg = name } }

func New(opts ...Option) *Generator {
	g := &Generator{}
	for _, fn := range opts {
		fn(g)
	}
	return g
}

func (g *Generator) Name() string            { return Name }
func (g *Generator) Language() code.Language { return code.Go }

// GenerateDto renders def as a struct with json tags.
func (g *Generator) GenerateDto(def *dto.Definition) result.Of[*code.Code] {
	return generator.Guard(Name, func() result.Of[*code.Code] {
		if v := generator.ValidateDto(def); v.IsFailure() {
			return result.From[*code.Code](v, nil)
		}
		cls, err := def.ToClass()
		if err != nil {
			return result.FailOfErr[*code.Code](err)
		}
		c, err := g.renderType(g.packageFor(def.Namespace), cls)
		if err != nil {
			return result.FailOfErr[*code.Code](err)
		}
		return result.Ok(c)
	})
}

// GenerateNamespace returns one Code per type, in declaration order.
func (g *Generator) GenerateNamespace(ns *typemodel.Namespace) result.Of[code.Codes] {
	return generator.Guard(Name, func() result.Of[code.Codes] {
		if ns == nil {
			return result.FailOf[code.Codes](generator.MsgNilNamespace)
		}
		if len(ns.Types) == 0 {
			return result.FailOf[code.Codes](generator.MsgNoType)
		}
		if v := ns.Validate(); v.IsFailure() {
			return result.From(v, code.Codes{})
		}
		pkg := g.packageFor(ns.Name)
		var codes code.Codes
		for _, t := range ns.Types {
			c, err := g.renderType(pkg, t)
			if err != nil {
				return result.FailOfErr[code.Codes](err)
			}
			codes = codes.Append(c)
		}
		return result.Ok(codes)
	})
}

func (g *Generator) packageFor(namespace string) string {
	if g.pkg != "" {
		return g.pkg
	}
	parts := strings.Split(namespace, ".")
	last := strings.ToLower(strings.ReplaceAll(naming.Sanitize(parts[len(parts)-1]), "_", ""))
	if last == "" || token.IsKeyword(last) {
		return defaultPkg
	}
	return last
}

func (g *Generator) renderType(pkg string, t typemodel.Type) (*code.Code, error) {
	d := t.Decl()
	name := exportName(d.Name)

	f := jen.NewFile(pkg)
	f.HeaderComment(HeaderComment)
	if d.Comment != "" {
		f.Comment(d.Comment)
	}

	decl := f.Type().Id(name)
	if len(d.TypeParams) > 0 {
		params := make([]jen.Code, len(d.TypeParams))
		for i, p := range d.TypeParams {
			params[i] = jen.Id(p).Any()
		}
		decl = decl.Types(params...)
	}

	if _, ok := t.(*typemodel.Interface); ok {
		var methods []jen.Code
		for _, m := range d.Methods() {
			params, results := signature(m)
			methods = append(methods, withResults(jen.Id(exportName(m.Name)).Params(params...), results))
		}
		decl.Interface(methods...)
	} else {
		decl.Struct(structFields(d.Properties())...)
		static := false
		if c, ok := t.(*typemodel.Class); ok {
			static = c.IsStatic
		}
		for _, m := range d.Methods() {
			writeFunc(f, name, m, static)
		}
	}

	var buf bytes.Buffer
	if err := f.Render(&buf); err != nil {
		return nil, errors.Wrapf(err, "render go type %s", name)
	}
	return code.New(name, code.Go, buf.String(), code.WithFileName(naming.ToSnake(name)+".go")), nil
}

func structFields(props []*typemodel.Property) []jen.Code {
	fields := make([]jen.Code, 0, len(props))
	for _, p := range props {
		if p.Comment != "" {
			fields = append(fields, jen.Comment(p.Comment))
		}
		tr := typeRef(p.Type)
		if !p.Access.Has(typemodel.AccessPublic) {
			fields = append(fields, jen.Id(unexportName(p.Name)).Add(goType(tr)))
			continue
		}
		tag := naming.ToCamel(p.Name)
		if tr.Nilable() {
			tag += ",omitempty"
		}
		fields = append(fields, jen.Id(exportName(p.Name)).Add(goType(tr)).Tag(map[string]string{"json": tag}))
	}
	return fields
}

// writeFunc emits a method stub. Constructors become NewX functions and
// static or extension methods become plain functions.
func writeFunc(f *jen.File, typeName string, m *typemodel.Method, static bool) {
	if m.Inheritance.Has(typemodel.InheritAbstract) {
		return
	}
	params, results := signature(m)
	if m.IsConstructor {
		f.Func().Id("New"+typeName).Params(params...).Op("*").Id(typeName).Block(
			jen.Return(jen.Op("&").Id(typeName).Values()),
		)
		return
	}
	fn := f.Func()
	if !static && !m.IsExtension && !m.Inheritance.Has(typemodel.InheritStatic) {
		fn = fn.Params(jen.Id(receiverName(typeName)).Op("*").Id(typeName))
	}
	withResults(fn.Id(exportName(m.Name)).Params(params...), results).Block(
		jen.Panic(jen.Lit("not implemented")),
	)
}

func withResults(s *jen.Statement, results []jen.Code) *jen.Statement {
	switch len(results) {
	case 0:
		return s
	case 1:
		return s.Add(results[0])
	default:
		return s.Params(results...)
	}
}

// signature maps arguments and the return type. Async methods take a
// context first and return an error last.
func signature(m *typemodel.Method) (params, results []jen.Code) {
	if m.IsAsync {
		params = append(params, jen.Id("ctx").Qual("context", "Context"))
	}
	for _, a := range m.Arguments.All() {
		params = append(params, jen.Id(unexportName(a.Name)).Add(goType(typeRef(a.Type))))
	}

	ret := m.ReturnType
	if ret != nil && (ret.Name() == "Task" || ret.Name() == "ValueTask") {
		if args := ret.Args(); len(args) == 1 {
			ret = args[0]
		} else {
			ret = nil
		}
	}
	if ret != nil && !isVoid(ret) {
		results = append(results, goType(typeRef(ret)))
	}
	if m.IsAsync {
		results = append(results, jen.Error())
	}
	return params, results
}

func isVoid(tp *typepath.TypePath) bool {
	return tp.Namespace() == "System" && tp.Name() == "Void"
}

func exportName(s string) string {
	return strings.TrimPrefix(naming.ToPropName(s), naming.KeywordEscape)
}

func unexportName(s string) string {
	n := naming.ToCamel(strings.TrimLeft(s, "_"))
	if n == "" || token.IsKeyword(n) {
		return n + "_"
	}
	return n
}

func receiverName(typeName string) string {
	return strings.ToLower(typeName[:1])
}
