package code

import (
	"strings"
)

// Language tags generated text with a target language and the file
// extension used when the text is written to disk.
type Language struct {
	Name      string
	Extension string
}

var (
	Unknown          = Language{Name: "unknown"}
	CSharp           = Language{Name: "csharp", Extension: "cs"}
	BlazorMarkup     = Language{Name: "blazor", Extension: "razor"}
	BlazorCodeBehind = Language{Name: "blazor-codebehind", Extension: "razor.cs"}
	Go               = Language{Name: "go", Extension: "go"}
)

var languages = map[string]Language{}

func init() {
	for _, l := range []Language{Unknown, CSharp, BlazorMarkup, BlazorCodeBehind, Go} {
		Register(l)
	}
}

// Register makes l available to LanguageByName. Registering an existing name
// replaces it.
func Register(l Language) {
	languages[strings.ToLower(l.Name)] = l
}

// LanguageByName looks a language up case-insensitively.
func LanguageByName(name string) (Language, bool) {
	l, ok := languages[strings.ToLower(name)]
	return l, ok
}

func (l Language) String() string { return l.Name }
