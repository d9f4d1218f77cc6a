// Package i18n provides internationalization support for error messages.
package i18n

import (
	"bytes"
	"sync"
	"text/template"

	"golang.org/x/text/language"
)

// Code is a machine-readable error code (duplicated from errors package to avoid cycle).
type Code = string

// BaseLocale is the locale every lookup falls back to.
const BaseLocale = "en-US"

// Catalog maps error codes to message templates for a specific locale.
type Catalog struct {
	locale   string
	messages map[Code]string
}

var (
	catalogsMu sync.RWMutex
	catalogs   = map[string]*Catalog{
		enUSCatalog.locale: enUSCatalog,
		deDECatalog.locale: deDECatalog,
	}
	matcherTags = []language.Tag{language.AmericanEnglish, language.German}
	matcher     = language.NewMatcher(matcherTags)
)

// GetCatalog returns the catalog for the given locale.
// Exact registrations win; otherwise the closest built-in locale is chosen,
// falling back to en-US.
func GetCatalog(locale string) *Catalog {
	if c, ok := lookupCatalog(locale); ok {
		return c
	}
	tag, _, confidence := matcher.Match(language.Make(locale))
	if confidence == language.No {
		return enUSCatalog
	}
	if c, ok := lookupCatalog(resolveLocale(tag)); ok {
		return c
	}
	return enUSCatalog
}

// Tag returns the language tag of the catalog for use with message printers.
func (c *Catalog) Tag() language.Tag {
	return language.Make(c.locale)
}

// Locale returns the locale of this catalog.
func (c *Catalog) Locale() string {
	return c.locale
}

// Format renders the message template with the given metadata.
// Falls back to the error code itself if no template is found.
func (c *Catalog) Format(code Code, metadata map[string]string) string {
	tmpl, ok := c.messages[code]
	if !ok {
		return code
	}
	if metadata == nil {
		metadata = map[string]string{}
	}

	t, err := template.New("msg").Parse(tmpl)
	if err != nil {
		return tmpl
	}
	var buf bytes.Buffer
	if err := t.Execute(&buf, metadata); err != nil {
		return tmpl
	}
	return buf.String()
}

// RegisterCatalog registers a new catalog for the given locale.
func RegisterCatalog(locale string, cat *Catalog) {
	catalogsMu.Lock()
	defer catalogsMu.Unlock()
	catalogs[locale] = cat
}

// NewCatalog creates a new catalog with the given locale and messages.
func NewCatalog(locale string, messages map[Code]string) *Catalog {
	cloned := make(map[Code]string, len(messages))
	for key, value := range messages {
		cloned[key] = value
	}
	return &Catalog{
		locale:   locale,
		messages: cloned,
	}
}

func lookupCatalog(locale string) (*Catalog, bool) {
	catalogsMu.RLock()
	defer catalogsMu.RUnlock()
	cat, ok := catalogs[locale]
	return cat, ok
}

func resolveLocale(tag language.Tag) string {
	base, _ := tag.Base()
	switch base.String() {
	case "de":
		return deDECatalog.locale
	default:
		return enUSCatalog.locale
	}
}
