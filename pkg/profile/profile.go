// Package profile holds the environment profiles a front-end reads at startup:
// which backend to call and which identity provider tenant to log in against.
package profile

// EnvironmentProfile is one deployment profile. It only carries scalar fields,
// so every copy is independent of the profile it was taken from.
type EnvironmentProfile struct {
	Production   bool          `json:"production" yaml:"production"`
	APIServerURL string        `json:"apiServerUrl" yaml:"apiServerUrl"`
	Auth0        Auth0Settings `json:"auth0" yaml:"auth0"`
}

// Auth0Settings groups the identity provider settings of a profile.
type Auth0Settings struct {
	// Domain is the tenant prefix, e.g. "dev-d-and-g-udaspicelatte".
	Domain      string `json:"url" yaml:"url"`
	Audience    string `json:"audience" yaml:"audience"`
	ClientID    string `json:"clientId" yaml:"clientId"`
	CallbackURL string `json:"callbackURL" yaml:"callbackURL"`
}

// Configured reports whether the identity provider settings are filled in.
func (a Auth0Settings) Configured() bool {
	return a.Domain != "" && a.Audience != "" && a.ClientID != ""
}

// Provider exposes a single selected profile. It is built once and only read
// afterwards, so any number of goroutines may call it.
type Provider struct {
	name    string
	profile EnvironmentProfile
}

// NewProvider wraps an already selected profile.
func NewProvider(name string, p EnvironmentProfile) *Provider {
	return &Provider{name: name, profile: p}
}

// Profile returns the selected profile.
func (p *Provider) Profile() EnvironmentProfile {
	return p.profile
}

// Name returns the name the profile was selected under.
func (p *Provider) Name() string {
	return p.name
}
