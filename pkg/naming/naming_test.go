package naming

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToArgName(t *testing.T) {
	tests := map[string]string{
		"UserService":  "userService",
		"IUserService": "userService",
		"Id":           "id",
		"Index":        "index",
		"Class":        "@class",
		"user-name":    "user_name",
		"Order Line":   "order_Line",
		"":             "",
	}
	for in, want := range tests {
		assert.Equal(t, want, ToArgName(in), in)
	}
}

func TestToFieldName(t *testing.T) {
	tests := map[string]string{
		"UserService":  "_userService",
		"IUserService": "_userService",
		"_name":        "_name",
		"Class":        "_class",
		"first.name":   "_first_name",
	}
	for in, want := range tests {
		assert.Equal(t, want, ToFieldName(in), in)
	}
}

func TestToPropName(t *testing.T) {
	tests := map[string]string{
		"email":      "Email",
		"Email":      "Email",
		"IUser":      "IUser",
		"created at": "Created_at",
		"a$b":        "A_b",
	}
	for in, want := range tests {
		assert.Equal(t, want, ToPropName(in), in)
	}
}

func TestToPropNameIsIdempotent(t *testing.T) {
	for _, in := range []string{"email", "Email", "userName", "IIUser", "_private", "x1", "createdAt", "ÜberValue"} {
		once := ToPropName(in)
		assert.Equal(t, once, ToPropName(once), in)
	}
}

func TestEscape(t *testing.T) {
	assert.Equal(t, "@string", Escape("string"))
	assert.Equal(t, "String", Escape("String"))
	assert.True(t, IsKeyword("namespace"))
	assert.False(t, IsKeyword("var"))
}

func TestCasingHelpers(t *testing.T) {
	assert.Equal(t, "users", ToSnake(Plural("User")))
	assert.Equal(t, "Categories", Plural("Category"))
	assert.Equal(t, "Category", Singular("Categories"))
	assert.Equal(t, "http_server", ToSnake("HTTPServer"))
	assert.Equal(t, "user-accounts", ToKebab("UserAccounts"))
	assert.Equal(t, "created_at", ToSnake("createdAt"))
}

func TestToCamel(t *testing.T) {
	assert.Equal(t, "emailAddress", ToCamel("EmailAddress"))
	assert.Equal(t, "iUser", ToCamel("IUser"))
	assert.Equal(t, "class", ToCamel("Class"))
	assert.Equal(t, "", ToCamel(""))
}
