// Package naming normalises identifiers into argument, field and property
// naming conventions for generated C# code.
package naming

import (
	"strings"
	"unicode"

	"github.com/jinzhu/inflection"
)

// KeywordEscape is prefixed to identifiers that collide with a keyword.
const KeywordEscape = "@"

const illegalChars = " \t\r\n-.,;:!?()[]{}<>/\\'\"`~@#$%^&*+=|"

var keywords = map[string]struct{}{}

func init() {
	for _, k := range strings.Fields(`abstract as base bool break byte case catch char checked class const
		continue decimal default delegate do double else enum event explicit extern false finally fixed
		float for foreach goto if implicit in int interface internal is lock long namespace new null
		object operator out override params private protected public readonly ref return sbyte sealed
		short sizeof stackalloc static string struct switch this throw true try typeof uint ulong
		unchecked unsafe ushort using virtual void volatile while`) {
		keywords[k] = struct{}{}
	}
}

// IsKeyword reports whether s is a reserved C# keyword.
func IsKeyword(s string) bool {
	_, ok := keywords[s]
	return ok
}

// Sanitize replaces every illegal identifier character with an underscore.
func Sanitize(s string) string {
	return strings.Map(func(r rune) rune {
		if strings.ContainsRune(illegalChars, r) {
			return '_'
		}
		return r
	}, s)
}

// Escape prefixes keyword collisions with KeywordEscape.
func Escape(s string) string {
	if IsKeyword(s) {
		return KeywordEscape + s
	}
	return s
}

// TrimInterfacePrefix drops a leading "I" when it is followed by an
// uppercase letter: IUserService -> UserService.
func TrimInterfacePrefix(s string) string {
	r := []rune(s)
	if len(r) > 1 && r[0] == 'I' && unicode.IsUpper(r[1]) {
		return string(r[1:])
	}
	return s
}

// ToArgName produces a camelCase argument name: IUserService -> userService.
func ToArgName(s string) string {
	s = TrimInterfacePrefix(Sanitize(s))
	return Escape(lowerFirst(s))
}

// ToFieldName produces a private field name: UserService -> _userService.
func ToFieldName(s string) string {
	s = TrimInterfacePrefix(Sanitize(s))
	s = strings.TrimLeft(s, "_")
	if s == "" {
		return "_"
	}
	return "_" + lowerFirst(s)
}

// ToPropName produces a PascalCase property name: user_name -> User_name,
// email -> Email.
func ToPropName(s string) string {
	return Escape(upperFirst(Sanitize(s)))
}

// ToCamel lowers the first rune without trimming or escaping, for
// serialization keys: EmailAddress -> emailAddress.
func ToCamel(s string) string {
	return lowerFirst(Sanitize(s))
}

// Plural returns the English plural of a PascalCase type name.
func Plural(s string) string {
	return inflection.Plural(s)
}

// Singular returns the English singular of a PascalCase type name.
func Singular(s string) string {
	return inflection.Singular(s)
}

// ToKebab converts PascalCase to kebab-case, e.g. for route segments:
// UserAccounts -> user-accounts.
func ToKebab(s string) string {
	return strings.ReplaceAll(ToSnake(s), "_", "-")
}

// ToSnake converts PascalCase or camelCase to snake_case, keeping acronyms
// together: HTTPServer -> http_server.
func ToSnake(s string) string {
	var sb strings.Builder
	runes := []rune(Sanitize(s))
	for i, r := range runes {
		if i > 0 && unicode.IsUpper(r) {
			prevUpper := unicode.IsUpper(runes[i-1])
			nextLower := i+1 < len(runes) && unicode.IsLower(runes[i+1])
			if (!prevUpper || nextLower) && runes[i-1] != '_' {
				sb.WriteRune('_')
			}
		}
		sb.WriteRune(r)
	}
	return strings.ToLower(sb.String())
}

func lowerFirst(s string) string {
	r := []rune(s)
	if len(r) == 0 {
		return s
	}
	r[0] = unicode.ToLower(r[0])
	return string(r)
}

func upperFirst(s string) string {
	r := []rune(s)
	if len(r) == 0 {
		return s
	}
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}
