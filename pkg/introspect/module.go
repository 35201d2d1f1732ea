package introspect

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/cockroachdb/errors"
	"golang.org/x/mod/modfile"

	"github.com/cmmoran/dtogen/pkg/naming"
)

var ErrNoModule = errors.New("no go.mod found")

// FindModuleDir walks up from dir until it finds go.mod.
func FindModuleDir(dir string) (string, error) {
	from, err := filepath.Abs(dir)
	if err != nil {
		return "", errors.Wrapf(err, "resolve %s", dir)
	}
	for {
		if _, err = os.Stat(filepath.Join(from, "go.mod")); err == nil {
			return from, nil
		}
		parent := filepath.Dir(from)
		if parent == from {
			return "", errors.Wrapf(ErrNoModule, "from %s", dir)
		}
		from = parent
	}
}

// ModulePath reads the module path of the go.mod enclosing dir.
func ModulePath(dir string) (string, error) {
	modDir, err := FindModuleDir(dir)
	if err != nil {
		return "", err
	}
	data, err := os.ReadFile(filepath.Join(modDir, "go.mod"))
	if err != nil {
		return "", errors.Wrap(err, "read go.mod")
	}
	p := modfile.ModulePath(data)
	if p == "" {
		return "", errors.Newf("%s/go.mod has no module directive", modDir)
	}
	return p, nil
}

// NamespaceFor turns a package import path into a dotted namespace.
// "github.com/acme/shop/internal/orders" under module "github.com/acme/shop"
// becomes "Acme.Shop.Internal.Orders"; root replaces the module part when set.
func NamespaceFor(modulePath, pkgPath, root string) string {
	rel := strings.TrimPrefix(strings.TrimPrefix(pkgPath, modulePath), "/")
	if pkgPath == modulePath {
		rel = ""
	} else if !strings.HasPrefix(pkgPath, modulePath+"/") {
		rel = pkgPath
	}

	var segs []string
	if root != "" {
		segs = append(segs, root)
	} else if rel != pkgPath {
		segs = append(segs, pathSegments(modulePath)...)
	}
	segs = append(segs, pathSegments(rel)...)
	return strings.Join(segs, ".")
}

func pathSegments(p string) []string {
	var out []string
	for i, s := range strings.Split(p, "/") {
		if s == "" || (i == 0 && strings.Contains(s, ".")) {
			continue
		}
		out = append(out, naming.ToPropName(s))
	}
	return out
}
