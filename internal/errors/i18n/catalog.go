// Package i18n holds localized catalogs for domain error messages.
package i18n

import (
	"strings"
	"text/template"

	"golang.org/x/text/language"
)

// Code mirrors the error codes defined in internal/errors/codes.go.
// The codes are duplicated as strings to avoid an import cycle.
type Code = string

// Catalog stores the user-facing messages for one locale.
type Catalog struct {
	locale   string
	tag      language.Tag
	messages map[Code]string
}

// Locale returns the locale identifier of this catalog.
func (c *Catalog) Locale() string {
	return c.locale
}

// Format renders the message for code, templating metadata into {{.Key}}
// placeholders. Unknown codes render as the code itself so callers always
// get something presentable.
func (c *Catalog) Format(code Code, metadata map[string]string) string {
	msg, ok := c.messages[code]
	if !ok {
		return code
	}
	if len(metadata) == 0 || !strings.Contains(msg, "{{") {
		return msg
	}

	tmpl, err := template.New(code).Parse(msg)
	if err != nil {
		return msg
	}
	var sb strings.Builder
	if err := tmpl.Execute(&sb, metadata); err != nil {
		return msg
	}
	return sb.String()
}

var catalogs = []*Catalog{enUSCatalog, ptBRCatalog}

var matcher language.Matcher

func init() {
	tags := make([]language.Tag, len(catalogs))
	for i, c := range catalogs {
		c.tag = language.MustParse(c.locale)
		tags[i] = c.tag
	}
	matcher = language.NewMatcher(tags)
}

// GetCatalog returns the best catalog for the requested locale.
// Unparseable or unsupported locales fall back to the base en-US catalog.
func GetCatalog(locale string) *Catalog {
	tag, err := language.Parse(strings.TrimSpace(locale))
	if err != nil {
		return catalogs[0]
	}
	_, index, _ := matcher.Match(tag)
	return catalogs[index]
}
