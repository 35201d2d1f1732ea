// Package introspect loads Go packages and turns their exported structs into
// DTO definitions.
package introspect

import (
	"context"
	"go/ast"
	"go/token"
	"go/types"
	"reflect"
	"sort"
	"strings"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"
	"golang.org/x/tools/go/packages"

	"github.com/cmmoran/dtogen/internal/model"
	"github.com/cmmoran/dtogen/pkg/dto"
)

const maxEmbedDepth = 8

const loadMode = packages.NeedName | packages.NeedFiles | packages.NeedSyntax |
	packages.NeedTypes | packages.NeedTypesInfo

// Loader holds the options of a load run.
type Loader struct {
	Opts Options
}

func New(opts ...Option) (*Loader, error) {
	o := NewOptions()
	for _, fn := range opts {
		fn(o)
	}
	return NewWithOpts(o)
}

// NewWithOpts normalizes opts, parsing excludeByTags as "key:value" filters.
func NewWithOpts(opts *Options, excludeByTags ...string) (*Loader, error) {
	if err := opts.Normalize(excludeByTags...); err != nil {
		return nil, err
	}
	return &Loader{Opts: *opts}, nil
}

// Load type-checks the configured packages and returns one definition per
// exported, non-generic struct, ordered by package path then declaration.
func (l *Loader) Load(ctx context.Context) ([]dto.Definition, error) {
	raws, err := l.Structs(ctx)
	if err != nil {
		return nil, err
	}

	modulePath := ""
	if l.Opts.Namespace == "" {
		if modulePath, err = ModulePath(l.Opts.InDir); err != nil {
			return nil, err
		}
	}

	defs := make([]dto.Definition, 0, len(raws))
	for _, raw := range raws {
		ns := l.Opts.Namespace
		if ns == "" {
			ns = NamespaceFor(modulePath, raw.PkgPath, l.Opts.RootNamespace)
		}
		def := toDefinition(raw, ns)
		if err = def.Validate(); err != nil {
			return nil, errors.Wrapf(err, "%s.%s", raw.PkgPath, raw.Name)
		}
		defs = append(defs, def)
	}
	l.Opts.Logger.Debug("introspection complete", zap.Int("definitions", len(defs)))
	return defs, nil
}

// Structs returns the filtered raw structs without mapping their types.
func (l *Loader) Structs(ctx context.Context) (model.RawStructs, error) {
	pkgs, err := packages.Load(&packages.Config{
		Context: ctx,
		Mode:    loadMode,
		Dir:     l.Opts.InDir,
		Fset:    token.NewFileSet(),
	}, l.Opts.Patterns...)
	if err != nil {
		return nil, errors.Wrapf(err, "load %s", strings.Join(l.Opts.Patterns, " "))
	}
	if len(pkgs) == 0 {
		return nil, errors.Newf("no packages matched %s in %s", strings.Join(l.Opts.Patterns, " "), l.Opts.InDir)
	}
	sort.Slice(pkgs, func(i, j int) bool { return pkgs[i].PkgPath < pkgs[j].PkgPath })

	var out model.RawStructs
	for _, pkg := range pkgs {
		if len(pkg.Errors) > 0 {
			return nil, errors.Newf("package %s: %s", pkg.PkgPath, pkg.Errors[0])
		}
		l.Opts.Logger.Debug("inspecting package", zap.String("package", pkg.PkgPath), zap.Int("files", len(pkg.Syntax)))
		comments := fieldComments(pkg.Syntax)
		for _, file := range pkg.Syntax {
			out = append(out, l.collectStructs(pkg, file, comments)...)
		}
	}
	return out, nil
}

func (l *Loader) collectStructs(pkg *packages.Package, file *ast.File, comments map[token.Pos]string) model.RawStructs {
	var out model.RawStructs
	for _, decl := range file.Decls {
		gen, ok := decl.(*ast.GenDecl)
		if !ok || gen.Tok != token.TYPE {
			continue
		}
		genComment := commentText(gen.Doc)

		for _, spec := range gen.Specs {
			ts, ok := spec.(*ast.TypeSpec)
			if !ok || ts.Assign.IsValid() || ts.TypeParams != nil || !ts.Name.IsExported() {
				continue
			}
			if _, ok = ts.Type.(*ast.StructType); !ok {
				continue
			}

			typeComment := genComment
			if doc := commentText(ts.Doc); doc != "" {
				if typeComment == "" {
					typeComment = doc
				} else {
					typeComment += "\n" + doc
				}
			}
			if l.Opts.typeExcluded(ts.Name.Name) {
				continue
			}
			if l.Opts.ExcludeDeprecated && deprecated(typeComment) {
				l.Opts.Logger.Debug("skipping deprecated type", zap.String("type", ts.Name.Name))
				continue
			}

			obj, ok := pkg.TypesInfo.Defs[ts.Name].(*types.TypeName)
			if !ok {
				continue
			}
			st, ok := obj.Type().Underlying().(*types.Struct)
			if !ok {
				continue
			}

			raw := &model.RawStruct{
				Name:    ts.Name.Name,
				Comment: typeComment,
				PkgPath: pkg.PkgPath,
				PkgName: pkg.Name,
			}
			raw.Fields = l.collectFields(st, comments, 0)
			out = append(out, raw)
		}
	}
	return out
}

// collectFields flattens embedded structs, and struct fields tagged as
// embedded, in place. An excluded embedded field drops every field it would
// contribute.
func (l *Loader) collectFields(st *types.Struct, comments map[token.Pos]string, depth int) []*model.RawField {
	var out []*model.RawField
	for i := 0; i < st.NumFields(); i++ {
		v := st.Field(i)
		tag := reflect.StructTag(st.Tag(i))
		if omitted(tag, &l.Opts) {
			continue
		}
		rf := &model.RawField{
			Name:       v.Name(),
			Comment:    comments[v.Pos()],
			Type:       v.Type(),
			Tag:        tag,
			IsExport:   v.Exported(),
			IsEmbedded: v.Embedded(),
		}
		rf.Deprecated = deprecated(rf.Comment)
		if rf.Deprecated && l.Opts.ExcludeDeprecated {
			continue
		}

		if rf.IsEmbedded || tagEmbedded(tag) {
			inner := v.Type()
			if p, ok := inner.(*types.Pointer); ok {
				inner = p.Elem()
			}
			if est, ok := inner.Underlying().(*types.Struct); ok && depth < maxEmbedDepth {
				out = appendUnique(out, l.collectFields(est, comments, depth+1)...)
				continue
			}
		}
		if !rf.IsExport {
			continue
		}
		out = appendUnique(out, rf)
	}
	return out
}

// appendUnique keeps the shallowest field when an embedded struct promotes a
// name that is already present.
func appendUnique(dst []*model.RawField, fields ...*model.RawField) []*model.RawField {
	for _, f := range fields {
		dup := false
		for _, d := range dst {
			if d.Name == f.Name {
				dup = true
				break
			}
		}
		if !dup {
			dst = append(dst, f)
		}
	}
	return dst
}

// fieldComments indexes the doc or trailing comment of every struct field
// name by its position, which matches types.Var.Pos.
func fieldComments(files []*ast.File) map[token.Pos]string {
	out := map[token.Pos]string{}
	for _, f := range files {
		ast.Inspect(f, func(n ast.Node) bool {
			st, ok := n.(*ast.StructType)
			if !ok {
				return true
			}
			for _, fld := range st.Fields.List {
				c := commentText(fld.Doc)
				if c == "" {
					c = commentText(fld.Comment)
				}
				if c == "" {
					continue
				}
				if len(fld.Names) == 0 {
					out[embeddedPos(fld.Type)] = c
				}
				for _, id := range fld.Names {
					out[id.Pos()] = c
				}
			}
			return true
		})
	}
	return out
}

// embeddedPos is the position types.Var reports for an embedded field: the
// type name identifier.
func embeddedPos(expr ast.Expr) token.Pos {
	switch e := expr.(type) {
	case *ast.StarExpr:
		return embeddedPos(e.X)
	case *ast.SelectorExpr:
		return e.Sel.Pos()
	case *ast.IndexExpr:
		return embeddedPos(e.X)
	case *ast.IndexListExpr:
		return embeddedPos(e.X)
	}
	return expr.Pos()
}

func commentText(cg *ast.CommentGroup) string {
	if cg == nil {
		return ""
	}
	var b strings.Builder
	for _, c := range cg.List {
		txt := strings.TrimSpace(strings.Trim(strings.TrimPrefix(strings.TrimPrefix(c.Text, "//"), "/*"), "*/"))
		b.WriteString(txt)
		b.WriteString("\n")
	}
	return strings.TrimSpace(b.String())
}
