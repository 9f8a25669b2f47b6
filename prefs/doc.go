// Package prefs persists the site's UI preferences in cookies and derives
// the page state they imply.
//
// Four keys are stored, each as a plain key=value cookie on path /:
//
//	saas-style                     classic | multi      (365 days)
//	saas-theme                     dark | light         (365 days)
//	saas-fun                       true | false         (365 days)
//	saas-cookie-consent-accepted   true                 (30 days)
//
// A missing or unrecognized cookie means the default value; it is never an
// error. [Preferences.State] maps the stored values to the CSS classes and
// control state the page applies on load, so a reload restores the theme
// and style without re-entry.
package prefs
