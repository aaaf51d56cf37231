package profile

import (
	"fmt"
	"strings"

	"github.com/kelseyhightower/envconfig"
)

// DefaultEnvPrefix prefixes the override variables, e.g. ENVPROFILE_API_SERVER_URL.
const DefaultEnvPrefix = "ENVPROFILE"

// Overrides holds values supplied through the process environment. A nil
// field was not set and leaves the profile untouched. Variable names are
// derived from the field names (Auth0ClientID reads <PREFIX>_AUTH0_CLIENT_ID)
// and are only ever read with the prefix.
type Overrides struct {
	Production       *bool   `split_words:"true"`
	APIServerURL     *string `split_words:"true"`
	Auth0Domain      *string `split_words:"true"`
	Auth0Audience    *string `split_words:"true"`
	Auth0ClientID    *string `split_words:"true"`
	Auth0CallbackURL *string `split_words:"true"`
}

// ReadOverrides reads the override variables under prefix. An empty prefix
// reads nothing.
func ReadOverrides(prefix string) (Overrides, error) {
	var o Overrides
	if strings.TrimSpace(prefix) == "" {
		return o, nil
	}
	if err := envconfig.Process(prefix, &o); err != nil {
		return Overrides{}, fmt.Errorf("read %s overrides: %w", prefix, err)
	}
	return o, nil
}

// Apply returns p with every set override written over it.
func (o Overrides) Apply(p EnvironmentProfile) EnvironmentProfile {
	if o.Production != nil {
		p.Production = *o.Production
	}
	if o.APIServerURL != nil {
		p.APIServerURL = *o.APIServerURL
	}
	if o.Auth0Domain != nil {
		p.Auth0.Domain = *o.Auth0Domain
	}
	if o.Auth0Audience != nil {
		p.Auth0.Audience = *o.Auth0Audience
	}
	if o.Auth0ClientID != nil {
		p.Auth0.ClientID = *o.Auth0ClientID
	}
	if o.Auth0CallbackURL != nil {
		p.Auth0.CallbackURL = *o.Auth0CallbackURL
	}
	return p
}

// Options control Load.
type Options struct {
	// Registry to select from; the built-in profiles when nil.
	Registry *Registry
	Name     string
	// EnvPrefix for overrides; empty disables them.
	EnvPrefix string
	// Strict additionally runs Lint.
	Strict bool
}

// Load selects, overrides and validates a profile and returns its provider.
func Load(opts Options) (*Provider, error) {
	reg := opts.Registry
	if reg == nil {
		reg = Builtin()
	}
	name := strings.TrimSpace(opts.Name)
	p, err := reg.Select(name)
	if err != nil {
		return nil, err
	}
	if opts.EnvPrefix != "" {
		o, err := ReadOverrides(opts.EnvPrefix)
		if err != nil {
			return nil, err
		}
		p = o.Apply(p)
	}
	if err := Validate(p); err != nil {
		return nil, fmt.Errorf("profile %s: %w", name, err)
	}
	if opts.Strict {
		if err := Lint(p); err != nil {
			return nil, fmt.Errorf("profile %s: %w", name, err)
		}
	}
	return NewProvider(name, p), nil
}
