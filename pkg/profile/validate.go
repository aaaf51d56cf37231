package profile

import (
	"errors"
	"fmt"
	"net/url"
)

var (
	ErrInvalidURL = errors.New("must be an absolute URL with scheme and host")
	ErrEmptyField = errors.New("must not be empty for a production profile")
)

// FieldError reports a problem with a single profile field, named by its wire key.
type FieldError struct {
	Field string
	Err   error
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s: %v", e.Field, e.Err)
}

func (e *FieldError) Unwrap() error { return e.Err }

// Validate checks that both URLs of the profile are absolute.
func Validate(p EnvironmentProfile) error {
	var errs []error
	if err := checkAbsoluteURL(p.APIServerURL); err != nil {
		errs = append(errs, &FieldError{Field: "apiServerUrl", Err: err})
	}
	if err := checkAbsoluteURL(p.Auth0.CallbackURL); err != nil {
		errs = append(errs, &FieldError{Field: "auth0.callbackURL", Err: err})
	}
	return errors.Join(errs...)
}

// Lint checks the identity provider settings of production profiles. Empty
// settings are fine for other profiles: they mark an unconfigured provider.
func Lint(p EnvironmentProfile) error {
	if !p.Production {
		return nil
	}
	var errs []error
	for _, f := range []struct{ name, value string }{
		{"auth0.url", p.Auth0.Domain},
		{"auth0.audience", p.Auth0.Audience},
		{"auth0.clientId", p.Auth0.ClientID},
	} {
		if f.value == "" {
			errs = append(errs, &FieldError{Field: f.name, Err: ErrEmptyField})
		}
	}
	return errors.Join(errs...)
}

func checkAbsoluteURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidURL, err)
	}
	if u.Scheme == "" || u.Host == "" {
		return ErrInvalidURL
	}
	return nil
}
