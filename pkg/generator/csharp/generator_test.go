package csharp

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cmmoran/dtogen/pkg/dto"
	"github.com/cmmoran/dtogen/pkg/generator"
	"github.com/cmmoran/dtogen/pkg/typemodel"
	"github.com/cmmoran/dtogen/pkg/typepath"
)

func userDto() *dto.Definition {
	return &dto.Definition{
		Name:      "User",
		Namespace: "Acme.Dtos",
		Fields: []dto.Field{
			dto.NewField("Id", "int"),
			{Name: "Email", Type: "string", IsNullable: true, HasGetter: true, HasSetter: true},
			{Name: "Tags", Type: "string", IsList: true, HasGetter: true, HasSetter: true},
		},
	}
}

func TestGenerateDto(t *testing.T) {
	r := New().GenerateDto(userDto())
	require.True(t, r.IsSucceed(), r.Message())

	c := r.Value()
	assert.Equal(t, "User", c.Name())
	assert.True(t, c.IsPartial())
	assert.Equal(t, "User.partial.tmp.cs", c.FileName())

	want := `using System;
using System.Collections.Generic;

namespace Acme.Dtos;

public partial class User
{
    public int Id { get; set; }

    public string? Email { get; set; }

    public List<string> Tags { get; set; } = new();
}
`
	if diff := cmp.Diff(want, c.Statement()); diff != "" {
		t.Errorf("statement mismatch (-want +got):\n%s", diff)
	}
}

func TestGenerateDtoIsDeterministic(t *testing.T) {
	g := New()
	a := g.GenerateDto(userDto()).Must()
	b := g.GenerateDto(userDto()).Must()
	assert.Equal(t, a.Statement(), b.Statement())
}

func TestGenerateDtoFailures(t *testing.T) {
	r := New().GenerateDto(nil)
	require.True(t, r.IsFailure())
	assert.Equal(t, generator.MsgNilDto, r.Message())

	r = New().GenerateDto(&dto.Definition{Name: "User"})
	require.True(t, r.IsFailure())
	assert.ErrorIs(t, r.Err(), typemodel.ErrNameRequired)
}

func TestGenerateNamespace(t *testing.T) {
	ns, err := typemodel.NewNamespace("Acme.Services")
	require.NoError(t, err)

	repo, err := typemodel.NewInterface("IUserRepository")
	require.NoError(t, err)
	find, err := typemodel.NewMethod("FindAsync",
		typemodel.AsAsync(),
		typemodel.WithReturnType(typepath.MustParse("User?")),
		typemodel.WithArguments(typemodel.Argument{Type: typepath.MustParse("Guid"), Name: "id"}),
	)
	require.NoError(t, err)
	repo.AddMember(find)

	svc, err := typemodel.NewClass("UserService")
	require.NoError(t, err)
	svc.BaseTypes = []*typepath.TypePath{typepath.MustParse("IUserRepository")}
	name, err := typemodel.NewProperty("Name", typepath.MustParse("string"), "_name")
	require.NoError(t, err)
	ctor, err := typemodel.NewMethod("UserService",
		typemodel.AsConstructor(),
		typemodel.WithArguments(typemodel.Argument{Type: typepath.MustParse("string"), Name: "name"}),
		typemodel.WithBody("_name = name;"),
	)
	require.NoError(t, err)
	svc.AddMember(name, ctor)

	ext, err := typemodel.NewClass("UserExtensions")
	require.NoError(t, err)
	ext.IsStatic = true
	isNamed, err := typemodel.NewMethod("IsNamed",
		typemodel.AsExtension(),
		typemodel.WithReturnType(typepath.MustParse("bool")),
		typemodel.WithArguments(typemodel.Argument{Type: typepath.MustParse("UserService"), Name: "service"}),
		typemodel.WithBody("return service.Name != null;"),
	)
	require.NoError(t, err)
	ext.AddMember(isNamed)

	ns.AddType(repo).AddType(svc).AddType(ext)

	r := New().GenerateNamespace(ns)
	require.True(t, r.IsSucceed(), r.Message())
	codes := r.Value()
	require.Equal(t, []string{"IUserRepository", "UserService", "UserExtensions"}, codes.Names())

	c, ok := codes.Get("IUserRepository")
	require.True(t, ok)
	assert.Equal(t, "IUserRepository.cs", c.FileName())
	assert.Contains(t, c.Statement(), "using System.Threading.Tasks;")
	assert.Contains(t, c.Statement(), "public interface IUserRepository\n{\n    Task<User?> FindAsync(Guid id);\n}")

	c, ok = codes.Get("UserService")
	require.True(t, ok)
	assert.Contains(t, c.Statement(), "public class UserService : IUserRepository\n{\n    private string _name;\n")
	assert.Contains(t, c.Statement(), "    public string Name\n    {\n        get { return _name; }\n        set { _name = value; }\n    }\n")
	assert.Contains(t, c.Statement(), "    public UserService(string name)\n    {\n        _name = name;\n    }\n")

	c, ok = codes.Get("UserExtensions")
	require.True(t, ok)
	assert.Contains(t, c.Statement(), "public static class UserExtensions")
	assert.Contains(t, c.Statement(), "public static bool IsNamed(this UserService service)")
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

	c, err := typemodel.NewClass("Broken")
	require.NoError(t, err)
	bad, err := typemodel.NewMethod("Nope", typemodel.AsExtension())
	require.NoError(t, err)
	c.AddMember(bad)
	r = New().GenerateNamespace(ns.AddType(c))
	require.True(t, r.IsFailure())
	assert.Contains(t, r.Message(), "extension method requires at least one argument")
}

func TestRenderPanicsBecomeFailures(t *testing.T) {
	ns, err := typemodel.NewNamespace("Acme")
	require.NoError(t, err)
	c, err := typemodel.NewClass("Holder")
	require.NoError(t, err)
	m, err := typemodel.NewMethod("Take", typemodel.WithArguments(typemodel.Argument{Name: "value"}))
	require.NoError(t, err)
	c.AddMember(m)

	r := New().GenerateNamespace(ns.AddType(c))
	require.True(t, r.IsFailure())
	assert.Contains(t, r.Message(), "csharp generator")
}
