package cmd

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/fatih/color"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setup(t *testing.T) (dir, cfgPath string) {
	t.Helper()
	color.NoColor = true
	dir = t.TempDir()
	cfgPath = filepath.Join(dir, "dtogen.yaml")
	cfg := "database:\n  path: " + filepath.Join(dir, "db", "dtogen.db") + "\n" +
		"output:\n  root: " + filepath.Join(dir, "out") + "\n" +
		"manifest:\n  path: " + filepath.Join(dir, "manifest.yaml") + "\n" +
		"log:\n  level: error\n"
	require.NoError(t, os.WriteFile(cfgPath, []byte(cfg), 0o644))
	return dir, cfgPath
}

func run(t *testing.T, cfgPath string, args ...string) (string, error) {
	t.Helper()
	root := NewRootCommand(afero.NewOsFs())
	var buf bytes.Buffer
	root.SetOut(&buf)
	root.SetErr(&buf)
	root.SetArgs(append([]string{"--config", cfgPath}, args...))
	err := root.ExecuteContext(context.Background())
	return buf.String(), err
}

func mustRun(t *testing.T, cfgPath string, args ...string) string {
	t.Helper()
	out, err := run(t, cfgPath, args...)
	require.NoError(t, err, out)
	return out
}

func TestModuleAndDtoLifecycle(t *testing.T) {
	_, cfg := setup(t)

	out := mustRun(t, cfg, "module", "add", "Accounts", "--namespace", "Acme.Accounts")
	assert.Contains(t, out, "module Accounts created (namespace Acme.Accounts)")
	out = mustRun(t, cfg, "module", "list")
	assert.Contains(t, out, "Accounts")
	assert.Contains(t, out, "Acme.Accounts")

	_, err := run(t, cfg, "module", "add", "Accounts")
	require.Error(t, err)

	out = mustRun(t, cfg, "dto", "add", "Accounts", "User", "--fields", "Id:int,Email:string?,Tags:string[]", "--comment", "An account holder.")
	assert.Contains(t, out, "dto Accounts.User created (3 fields)")

	_, err = run(t, cfg, "dto", "add", "Accounts", "User", "--fields", "Id:int")
	require.ErrorContains(t, err, "--replace")

	out = mustRun(t, cfg, "dto", "list", "Accounts")
	assert.Contains(t, out, "User")
	assert.Contains(t, out, "3 fields")

	out = mustRun(t, cfg, "dto", "show", "Accounts", "User")
	assert.Contains(t, out, "name: User")
	assert.Contains(t, out, "namespace: Acme.Accounts")
	assert.Contains(t, out, "is_nullable: true")

	_, err = run(t, cfg, "dto", "list", "Missing")
	require.ErrorContains(t, err, "module \"Missing\" does not exist")

	mustRun(t, cfg, "dto", "delete", "Accounts", "User")
	_, err = run(t, cfg, "dto", "show", "Accounts", "User")
	require.Error(t, err)
}

func TestDtoAddFromFile(t *testing.T) {
	dir, cfg := setup(t)
	mustRun(t, cfg, "module", "add", "Shop")

	file := filepath.Join(dir, "order.yaml")
	require.NoError(t, os.WriteFile(file, []byte(`name: Order
fields:
  - name: Id
    type: Guid
    has_getter: true
    has_setter: true
  - name: Lines
    type: OrderLine
    is_list: true
    has_getter: true
`), 0o644))

	out := mustRun(t, cfg, "dto", "add", "Shop", "--file", file)
	assert.Contains(t, out, "dto Shop.Order created (2 fields)")
	out = mustRun(t, cfg, "dto", "show", "Shop", "Order")
	assert.Contains(t, out, "namespace: Shop")
}

func TestGenerateAndSnapshot(t *testing.T) {
	dir, cfg := setup(t)
	mustRun(t, cfg, "module", "add", "Accounts", "-n", "Acme.Accounts")
	mustRun(t, cfg, "dto", "add", "Accounts", "User", "-f", "Id:int,Email:string?")

	out := mustRun(t, cfg, "generate", "Accounts", "--targets", "csharp,list", "--run-version", "v1")
	assert.Contains(t, out, "2 files written")

	b, err := os.ReadFile(filepath.Join(dir, "out", "Dtos", "User.partial.tmp.cs"))
	require.NoError(t, err)
	assert.Contains(t, string(b), "public partial class User")
	_, err = os.Stat(filepath.Join(dir, "out", "Pages", "UserList.razor"))
	require.NoError(t, err)

	_, err = run(t, cfg, "snapshot", "diff")
	require.Error(t, err)

	mustRun(t, cfg, "dto", "add", "Accounts", "User", "-f", "Id:int,Email:string?,Name:string", "--replace")
	mustRun(t, cfg, "generate", "Accounts", "User", "-t", "csharp,list", "--run-version", "v2")

	out = mustRun(t, cfg, "snapshot", "diff")
	assert.Contains(t, out, "~ Dtos/User.partial.tmp.cs")
	assert.Contains(t, out, "~ Pages/UserList.razor")

	out = mustRun(t, cfg, "snapshot", "list")
	assert.Contains(t, out, "v1 (previous)")
	assert.Contains(t, out, "v2 (current)")

	_, err = run(t, cfg, "generate", "Accounts", "-t", "cobol")
	require.ErrorContains(t, err, "unknown target")
}

func TestIntrospectDryRunAndImport(t *testing.T) {
	_, cfg := setup(t)
	fixture, err := filepath.Abs(filepath.Join("..", "pkg", "introspect", "testdata", "catalog"))
	require.NoError(t, err)

	out := mustRun(t, cfg, "introspect", "Catalog", "-i", fixture, "-p", ".", "-n", "Acme.Catalog", "--dry-run")
	assert.Contains(t, out, "name: Widget")
	assert.Contains(t, out, "namespace: Acme.Catalog")

	out = mustRun(t, cfg, "introspect", "Catalog", "-i", fixture, "-p", ".", "-n", "Acme.Catalog", "-t", "OldPart")
	assert.Contains(t, out, "5 DTOs imported into Catalog")

	out = mustRun(t, cfg, "dto", "list", "Catalog")
	assert.Contains(t, out, "Gadget")
	assert.NotContains(t, out, "OldPart")
}

func TestInvalidLevel(t *testing.T) {
	_, cfg := setup(t)
	_, err := run(t, cfg, "--level", "loud", "module", "list")
	require.ErrorContains(t, err, "invalid log level")
}
