package codegen

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// -----------------------------------------------------------------------------
// Rust Identifier Casing
// -----------------------------------------------------------------------------
//
// Proto names are split into words at non-alphanumeric characters, at
// lower-to-upper transitions ("fooBar" -> foo, Bar) and before the last
// capital of an acronym run ("HTTPServer" -> HTTP, Server). Digits never start
// a new word, so package "v1" stays "v1".

// rawKeywords may be used as identifiers only in raw form (r#type).
var rawKeywords = map[string]bool{
	"as": true, "break": true, "const": true, "continue": true, "else": true,
	"enum": true, "false": true, "fn": true, "for": true, "if": true, "impl": true,
	"in": true, "let": true, "loop": true, "match": true, "mod": true, "move": true,
	"mut": true, "pub": true, "ref": true, "return": true, "static": true,
	"struct": true, "trait": true, "true": true, "type": true, "unsafe": true,
	"use": true, "where": true, "while": true, "dyn": true, "abstract": true,
	"become": true, "box": true, "do": true, "final": true, "macro": true,
	"override": true, "priv": true, "typeof": true, "unsized": true,
	"virtual": true, "yield": true, "async": true, "await": true, "try": true,
	"gen": true,
}

// suffixKeywords cannot be raw identifiers, so they get a trailing underscore.
var suffixKeywords = map[string]bool{
	"self": true, "super": true, "extern": true, "crate": true,
}

type wordMode int

const (
	modeBoundary wordMode = iota
	modeLower
	modeUpper
)

// splitWords segments an identifier into words.
func splitWords(s string) []string {
	var words []string
	chunks := strings.FieldsFunc(s, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	for _, chunk := range chunks {
		runes := []rune(chunk)
		start := 0
		mode := modeBoundary
		for i, c := range runes {
			if i+1 == len(runes) {
				words = append(words, string(runes[start:]))
				break
			}
			next := runes[i+1]

			nextMode := mode
			if unicode.IsLower(c) {
				nextMode = modeLower
			} else if unicode.IsUpper(c) {
				nextMode = modeUpper
			}

			switch {
			case nextMode == modeLower && unicode.IsUpper(next):
				words = append(words, string(runes[start:i+1]))
				start = i + 1
				mode = modeBoundary
			case mode == modeUpper && unicode.IsUpper(c) && unicode.IsLower(next):
				words = append(words, string(runes[start:i]))
				start = i
				mode = modeBoundary
			default:
				mode = nextMode
			}
		}
	}
	return words
}

// ToSnake converts a proto identifier to a Rust snake_case identifier,
// escaping Rust keywords.
func ToSnake(s string) string {
	return escapeSnake(snakeCase(s))
}

// snakeCase converts s to snake_case without keyword escaping, as used for
// file names.
func snakeCase(s string) string {
	lower := cases.Lower(language.Und)
	words := splitWords(s)
	for i, w := range words {
		words[i] = lower.String(w)
	}
	return strings.Join(words, "_")
}

func escapeSnake(ident string) string {
	switch {
	case rawKeywords[ident]:
		return "r#" + ident
	case suffixKeywords[ident]:
		return ident + "_"
	}
	return ident
}

// ToUpperCamel converts a proto identifier to a Rust UpperCamelCase identifier.
func ToUpperCamel(s string) string {
	title := cases.Title(language.Und)
	var b strings.Builder
	for _, w := range splitWords(s) {
		b.WriteString(title.String(w))
	}
	ident := b.String()
	if ident == "Self" {
		return ident + "_"
	}
	return ident
}

// StripEnumPrefix removes the enum's own name from the front of a variant
// name. "Foo" is not stripped from "Foobar", and a variant that would begin
// with a digit keeps its prefix.
func StripEnumPrefix(prefix, name string) string {
	stripped, ok := strings.CutPrefix(name, prefix)
	if !ok || stripped == "" {
		return name
	}
	for _, r := range stripped {
		if !unicode.IsUpper(r) {
			return name
		}
		break
	}
	return stripped
}
