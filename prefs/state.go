package prefs

// CSS classes toggled by the preferences.
const (
	ClassDarkBody    = "saas-dark-body"
	ClassDarkCard    = "saas-card-dark"
	ClassDarkHeading = "saas-card-heading-link-dark"
	ClassDarkImage   = "saas-card-image-top-dark"
	ClassGradient    = "boring-gradient-bg"
	ClassFunGradient = "fun-gradient-animation-bg"
)

// State is what the page applies on load.
type State struct {
	BodyClasses    []string `json:"bodyClasses"`
	CardClasses    []string `json:"cardClasses"`
	HeadingClasses []string `json:"headingClasses"`
	ImageClasses   []string `json:"imageClasses"`

	FunChecked  bool `json:"funChecked"`
	FunDisabled bool `json:"funDisabled"`

	// ThemeToggle and StyleToggle label the menu entries that switch to
	// the other theme and style.
	ThemeToggle string `json:"themeToggle"`
	StyleToggle string `json:"styleToggle"`

	// ShowConsent asks the page to prompt for cookie consent.
	ShowConsent bool `json:"showConsent"`
}

// Dark reports whether the dark theme is active.
func (p Preferences) Dark() bool {
	return p.Theme == ThemeDark
}

// NeedsConsent reports whether the consent prompt must be shown: neither
// the fun toggle nor consent has ever been stored.
func (p Preferences) NeedsConsent() bool {
	return p.Fun == FunUnset && !p.ConsentAccepted
}

// State derives the page state from the preferences.
func (p Preferences) State() State {
	s := State{
		BodyClasses:    []string{},
		CardClasses:    []string{},
		HeadingClasses: []string{},
		ImageClasses:   []string{},
		ThemeToggle:    "Dark Theme",
		StyleToggle:    "Classic Theme",
	}

	if p.Dark() {
		s.BodyClasses = append(s.BodyClasses, ClassDarkBody)
		s.CardClasses = append(s.CardClasses, ClassDarkCard)
		s.HeadingClasses = append(s.HeadingClasses, ClassDarkHeading)
		s.ImageClasses = append(s.ImageClasses, ClassDarkImage)
		s.ThemeToggle = "Light Theme"
	}

	switch p.Style {
	case StyleClassic:
		s.StyleToggle = "Creativ Theme"
		s.FunDisabled = true
	case StyleMulti:
		s.BodyClasses = append(s.BodyClasses, ClassGradient)
		if p.Fun == FunOn {
			s.BodyClasses = append(s.BodyClasses, ClassFunGradient)
			s.FunChecked = true
		} else {
			s.ShowConsent = p.NeedsConsent()
		}
	}

	return s
}
