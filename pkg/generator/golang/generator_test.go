package golang

import (
	"go/ast"
	"go/parser"
	"go/token"
	"go/types"
	"reflect"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cmmoran/dtogen/pkg/code"
	"github.com/cmmoran/dtogen/pkg/dto"
	"github.com/cmmoran/dtogen/pkg/generator"
	"github.com/cmmoran/dtogen/pkg/typemodel"
	"github.com/cmmoran/dtogen/pkg/typepath"
)

func parseSource(t *testing.T, src string) *ast.File {
	t.Helper()
	f, err := parser.ParseFile(token.NewFileSet(), "gen.go", src, parser.ParseComments)
	require.NoError(t, err, src)
	return f
}

type fieldInfo struct {
	Type string
	JSON string
}

func structFieldsOf(t *testing.T, f *ast.File, name string) ([]string, map[string]fieldInfo) {
	t.Helper()
	var (
		order  []string
		fields = map[string]fieldInfo{}
	)
	ast.Inspect(f, func(n ast.Node) bool {
		ts, ok := n.(*ast.TypeSpec)
		if !ok || ts.Name.Name != name {
			return true
		}
		st, ok := ts.Type.(*ast.StructType)
		require.True(t, ok, "%s is not a struct", name)
		for _, fld := range st.Fields.List {
			info := fieldInfo{Type: types.ExprString(fld.Type)}
			if fld.Tag != nil {
				raw, err := strconv.Unquote(fld.Tag.Value)
				require.NoError(t, err)
				info.JSON = reflect.StructTag(raw).Get("json")
			}
			for _, id := range fld.Names {
				order = append(order, id.Name)
				fields[id.Name] = info
			}
		}
		return false
	})
	return order, fields
}

func imports(f *ast.File) []string {
	var out []string
	for _, imp := range f.Imports {
		p, _ := strconv.Unquote(imp.Path.Value)
		out = append(out, p)
	}
	return out
}

func funcDecls(f *ast.File) map[string]*ast.FuncDecl {
	out := map[string]*ast.FuncDecl{}
	for _, d := range f.Decls {
		if fd, ok := d.(*ast.FuncDecl); ok {
			out[fd.Name.Name] = fd
		}
	}
	return out
}

func TestGenerateDto(t *testing.T) {
	def := &dto.Definition{
		Name:      "User",
		Namespace: "Acme.Dtos",
		Comment:   "User is an account holder.",
		Fields: []dto.Field{
			dto.NewField("Id", "int"),
			{Name: "Email", Type: "string", IsNullable: true, HasGetter: true, HasSetter: true},
			{Name: "Tags", Type: "string", IsList: true, HasGetter: true, HasSetter: true},
			dto.NewField("CreatedAt", "DateTime"),
			{Name: "ExternalId", Type: "Guid", IsNullable: true, HasGetter: true, HasSetter: true},
			dto.NewField("Scores", "Dictionary<string,long>"),
			dto.NewField("Avatar", "byte[]"),
		},
	}

	r := New().GenerateDto(def)
	require.True(t, r.IsSucceed(), r.Message())
	c := r.Value()
	assert.Equal(t, "User", c.Name())
	assert.Equal(t, code.Go, c.Language())
	assert.Equal(t, "user.go", c.FileName())
	assert.True(t, strings.HasPrefix(c.Statement(), "// "+HeaderComment))

	f := parseSource(t, c.Statement())
	assert.Equal(t, "dtos", f.Name.Name)
	assert.ElementsMatch(t, []string{"time", "github.com/google/uuid"}, imports(f))

	order, fields := structFieldsOf(t, f, "User")
	assert.Equal(t, []string{"Id", "Email", "Tags", "CreatedAt", "ExternalId", "Scores", "Avatar"}, order)
	assert.Equal(t, map[string]fieldInfo{
		"Id":         {Type: "int32", JSON: "id"},
		"Email":      {Type: "*string", JSON: "email,omitempty"},
		"Tags":       {Type: "[]string", JSON: "tags,omitempty"},
		"CreatedAt":  {Type: "time.Time", JSON: "createdAt"},
		"ExternalId": {Type: "*uuid.UUID", JSON: "externalId,omitempty"},
		"Scores":     {Type: "map[string]int64", JSON: "scores,omitempty"},
		"Avatar":     {Type: "[]byte", JSON: "avatar,omitempty"},
	}, fields)
	assert.Contains(t, c.Statement(), "// User is an account holder.")
}

func TestGenerateDtoPackageOverride(t *testing.T) {
	def := &dto.Definition{Name: "order_line", Namespace: "Shop", Fields: []dto.Field{dto.NewField("Qty", "int")}}
	c := New(WithPackage("api")).GenerateDto(def).Must()
	f := parseSource(t, c.Statement())
	assert.Equal(t, "api", f.Name.Name)
	assert.Equal(t, "Order_line", c.Name())
	assert.Equal(t, "order_line.go", c.FileName())
}

func TestGenerateDtoIsDeterministic(t *testing.T) {
	def := &dto.Definition{Name: "User", Namespace: "Acme", Fields: []dto.Field{
		dto.NewField("Id", "Guid"), dto.NewField("When", "DateTime"),
	}}
	a := New().GenerateDto(def).Must()
	b := New().GenerateDto(def).Must()
	assert.Equal(t, a.Statement(), b.Statement())
}

func TestGenerateNamespace(t *testing.T) {
	ns, err := typemodel.NewNamespace("Acme.Services")
	require.NoError(t, err)

	repo, err := typemodel.NewInterface("IUserRepository")
	require.NoError(t, err)
	find, err := typemodel.NewMethod("FindAsync",
		typemodel.AsAsync(),
		typemodel.WithReturnType(typepath.MustParse("Task<User?>")),
		typemodel.WithArguments(typemodel.Argument{Type: typepath.MustParse("Guid"), Name: "id"}),
	)
	require.NoError(t, err)
	count, err := typemodel.NewMethod("Count", typemodel.WithReturnType(typepath.MustParse("long")))
	require.NoError(t, err)
	repo.AddMember(find, count)

	svc, err := typemodel.NewClass("UserService")
	require.NoError(t, err)
	name, err := typemodel.NewProperty("Name", typepath.MustParse("string"), "")
	require.NoError(t, err)
	secret, err := typemodel.NewProperty("Secret", typepath.MustParse("string"), "")
	require.NoError(t, err)
	secret.Access = typemodel.AccessPrivate
	ctor, err := typemodel.NewMethod("UserService", typemodel.AsConstructor(),
		typemodel.WithArguments(typemodel.Argument{Type: typepath.MustParse("string"), Name: "type"}))
	require.NoError(t, err)
	rename, err := typemodel.NewMethod("Rename",
		typemodel.WithArguments(typemodel.Argument{Type: typepath.MustParse("string"), Name: "name"}))
	require.NoError(t, err)
	svc.AddMember(name, secret, ctor, rename)

	ns.AddType(repo).AddType(svc)

	r := New().GenerateNamespace(ns)
	require.True(t, r.IsSucceed(), r.Message())
	require.Equal(t, []string{"IUserRepository", "UserService"}, r.Value().Names())

	c, ok := r.Value().Get("IUserRepository")
	require.True(t, ok)
	assert.Equal(t, "i_user_repository.go", c.FileName())
	f := parseSource(t, c.Statement())
	assert.Equal(t, "services", f.Name.Name)
	methods := map[string]string{}
	ast.Inspect(f, func(n ast.Node) bool {
		it, ok := n.(*ast.InterfaceType)
		if !ok {
			return true
		}
		for _, m := range it.Methods.List {
			methods[m.Names[0].Name] = types.ExprString(m.Type)
		}
		return false
	})
	assert.Equal(t, map[string]string{
		"FindAsync": "func(ctx context.Context, id uuid.UUID) (*User, error)",
		"Count":     "func() int64",
	}, methods)

	c, ok = r.Value().Get("UserService")
	require.True(t, ok)
	f = parseSource(t, c.Statement())
	order, fields := structFieldsOf(t, f, "UserService")
	assert.Equal(t, []string{"Name", "secret"}, order)
	assert.Equal(t, "", fields["secret"].JSON)

	funcs := funcDecls(f)
	require.Contains(t, funcs, "NewUserService")
	assert.Nil(t, funcs["NewUserService"].Recv)
	assert.Equal(t, "func(type_ string) *UserService", types.ExprString(funcs["NewUserService"].Type))
	require.Contains(t, funcs, "Rename")
	require.NotNil(t, funcs["Rename"].Recv)
	assert.Equal(t, "*UserService", types.ExprString(funcs["Rename"].Recv.List[0].Type))
}

func TestGenerateNamespaceFailures(t *testing.T) {
	r := New().GenerateNamespace(nil)
	require.True(t, r.IsFailure())
	assert.Equal(t, generator.MsgNilNamespace, r.Message())

	ns, err := typemodel.NewNamespace("Acme")
	require.NoError(t, err)
	r = New().GenerateNamespace(ns)
	require.True(t, r.IsFailure())
	assert.Equal(t, generator.MsgNoType, r.Message())
}
