package prefs

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"slices"
	"testing"
	"time"
)

// reload replays the cookies set on rec into a fresh request.
func reload(t *testing.T, rec *httptest.ResponseRecorder) *http.Request {
	t.Helper()
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, c := range rec.Result().Cookies() {
		r.AddCookie(&http.Cookie{Name: c.Name, Value: c.Value})
	}
	return r
}

func TestReadDefaults(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	got := Read(r)
	if got != Default() {
		t.Fatalf("Read() = %+v, want %+v", got, Default())
	}
	if got.Dark() {
		t.Error("default theme should be light")
	}
}

func TestReadUnknownValuesFallBack(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.AddCookie(&http.Cookie{Name: CookieStyle, Value: "neon"})
	r.AddCookie(&http.Cookie{Name: CookieTheme, Value: "sepia"})
	r.AddCookie(&http.Cookie{Name: CookieFun, Value: "maybe"})
	r.AddCookie(&http.Cookie{Name: CookieConsent, Value: "yes"})

	if got := Read(r); got != Default() {
		t.Fatalf("Read() = %+v, want defaults", got)
	}
}

func TestSetThenReloadRestoresState(t *testing.T) {
	tests := []struct {
		name  string
		set   func(*Writer, *Preferences)
		check func(*testing.T, Preferences)
	}{
		{
			name: "dark theme",
			set:  (*Writer).EnableDarkTheme,
			check: func(t *testing.T, p Preferences) {
				s := p.State()
				if !slices.Contains(s.BodyClasses, ClassDarkBody) {
					t.Errorf("body classes = %v, want %s", s.BodyClasses, ClassDarkBody)
				}
				if !slices.Contains(s.CardClasses, ClassDarkCard) {
					t.Errorf("card classes = %v, want %s", s.CardClasses, ClassDarkCard)
				}
				if s.ThemeToggle != "Light Theme" {
					t.Errorf("theme toggle = %q", s.ThemeToggle)
				}
			},
		},
		{
			name: "light theme",
			set:  (*Writer).EnableLightTheme,
			check: func(t *testing.T, p Preferences) {
				if p.Theme != ThemeLight {
					t.Errorf("theme = %q, want light", p.Theme)
				}
				if s := p.State(); len(s.CardClasses) != 0 {
					t.Errorf("card classes = %v, want none", s.CardClasses)
				}
			},
		},
		{
			name: "classic style",
			set:  (*Writer).EnableClassicTheme,
			check: func(t *testing.T, p Preferences) {
				if p.Style != StyleClassic || p.Fun != FunOff {
					t.Errorf("prefs = %+v, want classic without fun", p)
				}
				s := p.State()
				if !s.FunDisabled || s.FunChecked {
					t.Errorf("fun checkbox checked=%v disabled=%v", s.FunChecked, s.FunDisabled)
				}
				if s.StyleToggle != "Creativ Theme" {
					t.Errorf("style toggle = %q", s.StyleToggle)
				}
			},
		},
		{
			name: "multi style with fun",
			set: func(w *Writer, p *Preferences) {
				w.EnableMultiColorTheme(p)
				w.EnableFun(p)
			},
			check: func(t *testing.T, p Preferences) {
				s := p.State()
				want := []string{ClassGradient, ClassFunGradient}
				if !slices.Equal(s.BodyClasses, want) {
					t.Errorf("body classes = %v, want %v", s.BodyClasses, want)
				}
				if !s.FunChecked || s.ShowConsent {
					t.Errorf("state = %+v", s)
				}
			},
		},
		{
			name: "consent",
			set: func(w *Writer, p *Preferences) {
				w.EnableMultiColorTheme(p)
				w.AcceptConsent(p)
			},
			check: func(t *testing.T, p Preferences) {
				if !p.ConsentAccepted {
					t.Error("consent not restored")
				}
				if p.State().ShowConsent {
					t.Error("consent prompt shown after acceptance")
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			p := Default()
			tt.set(NewWriter(rec), &p)

			restored := Read(reload(t, rec))
			if restored != p {
				t.Fatalf("restored %+v, want %+v", restored, p)
			}
			tt.check(t, restored)
		})
	}
}

func TestCookieAttributes(t *testing.T) {
	now := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	rec := httptest.NewRecorder()
	w := NewWriter(rec)
	w.now = func() time.Time { return now }

	p := Default()
	w.EnableDarkTheme(&p)
	w.AcceptConsent(&p)

	cookies := rec.Result().Cookies()
	if len(cookies) != 2 {
		t.Fatalf("got %d cookies, want 2", len(cookies))
	}
	want := map[string]time.Duration{
		CookieTheme:   PreferenceTTL,
		CookieConsent: ConsentTTL,
	}
	for _, c := range cookies {
		ttl, ok := want[c.Name]
		if !ok {
			t.Fatalf("unexpected cookie %q", c.Name)
		}
		if c.Path != "/" {
			t.Errorf("%s path = %q, want /", c.Name, c.Path)
		}
		if !c.Expires.Equal(now.Add(ttl)) {
			t.Errorf("%s expires = %v, want %v", c.Name, c.Expires, now.Add(ttl))
		}
		if c.MaxAge != int(ttl/time.Second) {
			t.Errorf("%s max-age = %d", c.Name, c.MaxAge)
		}
	}
}

func TestConsentPrompt(t *testing.T) {
	tests := []struct {
		name string
		p    Preferences
		want bool
	}{
		{"unset style", Preferences{Theme: ThemeLight}, false},
		{"classic", Preferences{Style: StyleClassic, Theme: ThemeLight}, false},
		{"multi fresh", Preferences{Style: StyleMulti, Theme: ThemeLight}, true},
		{"multi fun off", Preferences{Style: StyleMulti, Theme: ThemeLight, Fun: FunOff}, false},
		{"multi consented", Preferences{Style: StyleMulti, Theme: ThemeLight, ConsentAccepted: true}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.p.State().ShowConsent; got != tt.want {
				t.Errorf("ShowConsent = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestApply(t *testing.T) {
	rec := httptest.NewRecorder()
	w := NewWriter(rec)
	p := Default()

	if err := w.Apply(&p, CookieTheme, "dark"); err != nil {
		t.Fatalf("Apply(theme) error = %v", err)
	}
	if err := w.Apply(&p, "style", "multi"); err != nil {
		t.Fatalf("Apply(style) error = %v", err)
	}
	if !p.Dark() || p.Style != StyleMulti {
		t.Fatalf("prefs = %+v", p)
	}

	if err := w.Apply(&p, "font", "serif"); !errors.Is(err, ErrUnknownKey) {
		t.Errorf("Apply(font) error = %v, want ErrUnknownKey", err)
	}
	if err := w.Apply(&p, CookieFun, "sometimes"); !errors.Is(err, ErrInvalidValue) {
		t.Errorf("Apply(fun) error = %v, want ErrInvalidValue", err)
	}
	if err := w.Apply(&p, "consent", "false"); !errors.Is(err, ErrInvalidValue) {
		t.Errorf("Apply(consent) error = %v, want ErrInvalidValue", err)
	}

	if got := Read(reload(t, rec)); got != p {
		t.Fatalf("restored %+v, want %+v", got, p)
	}
}
