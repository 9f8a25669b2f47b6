package prefs

import (
	"fmt"
	"net/http"
	"time"
)

// Cookie names.
const (
	CookieStyle   = "saas-style"
	CookieTheme   = "saas-theme"
	CookieFun     = "saas-fun"
	CookieConsent = "saas-cookie-consent-accepted"
)

// Lifetimes of the preference cookies.
const (
	PreferenceTTL = 365 * 24 * time.Hour
	ConsentTTL    = 30 * 24 * time.Hour
)

// Style is the page style.
type Style string

const (
	StyleUnset   Style = ""
	StyleClassic Style = "classic"
	StyleMulti   Style = "multi"
)

// Theme is the color theme.
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// Fun is the animated background toggle. It is tri-state: the consent
// prompt depends on whether it was ever set.
type Fun string

const (
	FunUnset Fun = ""
	FunOn    Fun = "true"
	FunOff   Fun = "false"
)

// Preferences are the stored UI preferences.
type Preferences struct {
	Style           Style `json:"style"`
	Theme           Theme `json:"theme"`
	Fun             Fun   `json:"fun"`
	ConsentAccepted bool  `json:"consentAccepted"`
}

// Default returns the preferences of a visitor without cookies.
func Default() Preferences {
	return Preferences{Style: StyleUnset, Theme: ThemeLight, Fun: FunUnset}
}

// Read returns the preferences stored in the request cookies. Missing or
// unrecognized values fall back to Default.
func Read(r *http.Request) Preferences {
	p := Default()
	if v := cookieValue(r, CookieStyle); v == string(StyleClassic) || v == string(StyleMulti) {
		p.Style = Style(v)
	}
	if v := cookieValue(r, CookieTheme); v == string(ThemeDark) || v == string(ThemeLight) {
		p.Theme = Theme(v)
	}
	if v := cookieValue(r, CookieFun); v == string(FunOn) || v == string(FunOff) {
		p.Fun = Fun(v)
	}
	p.ConsentAccepted = cookieValue(r, CookieConsent) == "true"
	return p
}

func cookieValue(r *http.Request, name string) string {
	c, err := r.Cookie(name)
	if err != nil {
		return ""
	}
	return c.Value
}

// Writer sets preference cookies on a response.
type Writer struct {
	w   http.ResponseWriter
	now func() time.Time

	// Secure marks the cookies Secure.
	Secure bool
}

// NewWriter returns a Writer for w.
func NewWriter(w http.ResponseWriter) *Writer {
	return &Writer{w: w, now: time.Now}
}

func (pw *Writer) set(name, value string, ttl time.Duration) {
	http.SetCookie(pw.w, &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		Expires:  pw.now().Add(ttl).UTC(),
		MaxAge:   int(ttl / time.Second),
		Secure:   pw.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// EnableDarkTheme stores the dark theme.
func (pw *Writer) EnableDarkTheme(p *Preferences) {
	pw.set(CookieTheme, string(ThemeDark), PreferenceTTL)
	p.Theme = ThemeDark
}

// EnableLightTheme stores the light theme.
func (pw *Writer) EnableLightTheme(p *Preferences) {
	pw.set(CookieTheme, string(ThemeLight), PreferenceTTL)
	p.Theme = ThemeLight
}

// EnableMultiColorTheme stores the multi-color style.
func (pw *Writer) EnableMultiColorTheme(p *Preferences) {
	pw.set(CookieStyle, string(StyleMulti), PreferenceTTL)
	p.Style = StyleMulti
}

// EnableClassicTheme stores the classic style. The animated background is
// switched off with it.
func (pw *Writer) EnableClassicTheme(p *Preferences) {
	pw.set(CookieStyle, string(StyleClassic), PreferenceTTL)
	p.Style = StyleClassic
	pw.DisableFun(p)
}

// EnableFun stores the animated background as on.
func (pw *Writer) EnableFun(p *Preferences) {
	pw.set(CookieFun, string(FunOn), PreferenceTTL)
	p.Fun = FunOn
}

// DisableFun stores the animated background as off.
func (pw *Writer) DisableFun(p *Preferences) {
	pw.set(CookieFun, string(FunOff), PreferenceTTL)
	p.Fun = FunOff
}

// AcceptConsent records cookie consent.
func (pw *Writer) AcceptConsent(p *Preferences) {
	pw.set(CookieConsent, "true", ConsentTTL)
	p.ConsentAccepted = true
}

// Apply sets one preference by cookie name and value, as sent by the
// page's toggles, and updates p.
func (pw *Writer) Apply(p *Preferences, key, value string) error {
	switch key {
	case CookieStyle, "style":
		switch Style(value) {
		case StyleClassic:
			pw.EnableClassicTheme(p)
		case StyleMulti:
			pw.EnableMultiColorTheme(p)
		default:
			return fmt.Errorf("%w: %s=%q", ErrInvalidValue, key, value)
		}
	case CookieTheme, "theme":
		switch Theme(value) {
		case ThemeDark:
			pw.EnableDarkTheme(p)
		case ThemeLight:
			pw.EnableLightTheme(p)
		default:
			return fmt.Errorf("%w: %s=%q", ErrInvalidValue, key, value)
		}
	case CookieFun, "fun":
		switch Fun(value) {
		case FunOn:
			pw.EnableFun(p)
		case FunOff:
			pw.DisableFun(p)
		default:
			return fmt.Errorf("%w: %s=%q", ErrInvalidValue, key, value)
		}
	case CookieConsent, "consent":
		if value != "true" {
			return fmt.Errorf("%w: %s=%q", ErrInvalidValue, key, value)
		}
		pw.AcceptConsent(p)
	default:
		return fmt.Errorf("%w: %s", ErrUnknownKey, key)
	}
	return nil
}
