package naming

import (
	"fmt"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// ToPascalCase converts a string to PascalCase.
// Separators (underscore, hyphen, dot, slash) trigger capitalization of the next letter.
// Example: "user_profile" -> "UserProfile"
func ToPascalCase(s string) string {
	if s == "" {
		return ""
	}

	var result strings.Builder
	capitalizeNext := true

	for _, r := range s {
		if isSeparator(r) {
			capitalizeNext = true
			continue
		}
		if capitalizeNext {
			result.WriteRune(unicode.ToUpper(r))
			capitalizeNext = false
		} else {
			result.WriteRune(r)
		}
	}

	return result.String()
}

// ToCamelCase converts a string to camelCase.
// Example: "user_profile" -> "userProfile"
func ToCamelCase(s string) string {
	return lowerFirst(ToPascalCase(s))
}

// ToSnakeCase converts a lowerCamel string to snake_case.
// Every uppercase letter starts a new word, so "apiKey" becomes "api_key"
// and "APIKey" becomes "a_p_i_key".
func ToSnakeCase(s string) string {
	if s == "" {
		return ""
	}

	var result strings.Builder
	for i, r := range s {
		switch {
		case unicode.IsUpper(r):
			if i > 0 {
				result.WriteRune('_')
			}
			result.WriteRune(unicode.ToLower(r))
		case isSeparator(r):
			result.WriteRune('_')
		default:
			result.WriteRune(r)
		}
	}

	return result.String()
}

// ToKebabCase converts a string to kebab-case.
// Example: "conceptTags" -> "concept-tags"
func ToKebabCase(s string) string {
	return strings.ReplaceAll(ToSnakeCase(s), "_", "-")
}

// ToScreamingSnakeCase converts a string to SCREAMING_SNAKE_CASE.
// Example: "apiKey" -> "API_KEY"
func ToScreamingSnakeCase(s string) string {
	return cases.Upper(language.Und).String(ToSnakeCase(s))
}

// ToTitleCase converts the first letter to uppercase.
// Example: "hello" -> "Hello"
func ToTitleCase(s string) string {
	if s == "" {
		return ""
	}
	runes := []rune(s)
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}

func lowerFirst(s string) string {
	if s == "" {
		return ""
	}
	runes := []rune(s)
	runes[0] = unicode.ToLower(runes[0])
	return string(runes)
}

func isSeparator(r rune) bool {
	return r == '_' || r == '-' || r == '.' || r == '/'
}

// Convention is a naming convention for wire keys.
type Convention int

const (
	// LowerCamel leaves names untouched: "apiKey".
	LowerCamel Convention = iota
	// UpperCamel capitalizes the first letter: "ApiKey".
	UpperCamel
	// LowerUnderscore produces "api_key".
	LowerUnderscore
	// UpperUnderscore produces "API_KEY".
	UpperUnderscore
	// LowerHyphen produces "api-key".
	LowerHyphen
)

var conventionNames = map[Convention]string{
	LowerCamel:      "lowerCamel",
	UpperCamel:      "upperCamel",
	LowerUnderscore: "lowerUnderscore",
	UpperUnderscore: "upperUnderscore",
	LowerHyphen:     "lowerHyphen",
}

// String returns the canonical name of the convention.
func (c Convention) String() string {
	if name, ok := conventionNames[c]; ok {
		return name
	}
	return fmt.Sprintf("Convention(%d)", int(c))
}

// Apply rewrites a lowerCamel name into the convention.
func (c Convention) Apply(name string) string {
	switch c {
	case UpperCamel:
		return ToTitleCase(name)
	case LowerUnderscore:
		return ToSnakeCase(name)
	case UpperUnderscore:
		return ToScreamingSnakeCase(name)
	case LowerHyphen:
		return ToKebabCase(name)
	default:
		return name
	}
}

// ParseConvention resolves a convention name. Matching ignores case and
// separators, so "lowerUnderscore", "LOWER_UNDERSCORE" and
// "lower-underscore" are equivalent. The empty string yields LowerCamel.
func ParseConvention(name string) (Convention, error) {
	if name == "" {
		return LowerCamel, nil
	}
	key := strings.ToLower(strings.NewReplacer("_", "", "-", "", " ", "").Replace(name))
	for c, canonical := range conventionNames {
		if strings.ToLower(canonical) == key {
			return c, nil
		}
	}
	return LowerCamel, fmt.Errorf("naming: unknown convention %q", name)
}

// Conventions returns the canonical names of all conventions in
// declaration order.
func Conventions() []string {
	return []string{
		LowerCamel.String(),
		UpperCamel.String(),
		LowerUnderscore.String(),
		UpperUnderscore.String(),
		LowerHyphen.String(),
	}
}
