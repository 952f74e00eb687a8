// Package i18n resolves the request locale and exposes localized printers to
// site handlers and templates.
package i18n

import (
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/thinkinrocks/thinkin.rocks/internal/platform/i18n/catalog"
	"golang.org/x/text/message"
)

const (
	// LangParam is the query parameter used to select a language.
	LangParam = "lang"
	// LangCookieName stores the visitor's language preference.
	LangCookieName = "tr_lang"
)

// Localizer exposes translated formatting used by templates and handlers.
type Localizer interface {
	Sprintf(key message.Reference, args ...any) string
}

// LanguageOption is one entry in the language switcher.
type LanguageOption struct {
	Locale string
	Label  string
	URL    string
	Active bool
}

var labels = map[string]string{
	"en-US": "English",
	"fi-FI": "Suomi",
}

// ResolveLocale returns the best supported locale for r. The bool reports
// whether the choice came from the query parameter and should be persisted.
func ResolveLocale(r *http.Request) (string, bool) {
	bundle := catalog.Default()
	if r == nil {
		return catalog.BaseLocale, false
	}
	if value := strings.TrimSpace(r.URL.Query().Get(LangParam)); value != "" {
		if locale := bundle.Match(value); locale != catalog.BaseLocale || strings.HasPrefix(strings.ToLower(value), "en") {
			return locale, true
		}
	}
	if cookie, err := r.Cookie(LangCookieName); err == nil && bundle.HasLocale(cookie.Value) {
		return cookie.Value, false
	}
	return bundle.Match(r.Header.Get("Accept-Language")), false
}

// SetLanguageCookie persists locale on the response.
func SetLanguageCookie(w http.ResponseWriter, locale string) {
	if w == nil {
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     LangCookieName,
		Value:    locale,
		Path:     "/",
		MaxAge:   int((365 * 24 * time.Hour).Seconds()),
		SameSite: http.SameSiteLaxMode,
	})
}

// ResolveLocalizer resolves the request locale, persisting an explicit
// choice, and returns its printer.
func ResolveLocalizer(w http.ResponseWriter, r *http.Request) (*message.Printer, string) {
	locale, persist := ResolveLocale(r)
	if persist {
		SetLanguageCookie(w, locale)
	}
	return catalog.Default().Printer(locale), locale
}

// Languages lists the supported locales with switcher URLs for the current
// request path.
func Languages(r *http.Request, active string) []LanguageOption {
	path, rawQuery := "/", ""
	if r != nil && r.URL != nil {
		path, rawQuery = r.URL.Path, r.URL.RawQuery
	}
	locales := catalog.Default().Locales()
	options := make([]LanguageOption, 0, len(locales))
	for _, locale := range locales {
		label := labels[locale]
		if label == "" {
			label = locale
		}
		options = append(options, LanguageOption{
			Locale: locale,
			Label:  label,
			URL:    LanguageURL(path, rawQuery, locale),
			Active: locale == active,
		})
	}
	return options
}

// LanguageURL returns path with the language param set to locale.
func LanguageURL(path string, rawQuery string, locale string) string {
	path = strings.TrimSpace(path)
	if path == "" {
		path = "/"
	}
	query, err := url.ParseQuery(rawQuery)
	if err != nil {
		query = url.Values{}
	}
	query.Set(LangParam, locale)
	return (&url.URL{Path: path, RawQuery: query.Encode()}).String()
}
