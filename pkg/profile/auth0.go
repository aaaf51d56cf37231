package profile

import (
	"net/url"
	"strings"
)

// DefaultScope is requested on every login.
const DefaultScope = "openid profile email updated_at"

// DefaultAlgorithms lists the token signing algorithms accepted from the provider.
var DefaultAlgorithms = []string{"RS256"}

const auth0HostSuffix = ".auth0.com"

// Host returns the provider host. A domain that already contains a dot is
// taken as a full host, otherwise it is a tenant prefix. Scheme and path are
// dropped.
func (a Auth0Settings) Host() string {
	d := strings.TrimSpace(a.Domain)
	if strings.Contains(d, "://") {
		u, err := url.Parse(d)
		if err != nil {
			return ""
		}
		d = u.Host
	} else if i := strings.IndexByte(d, '/'); i >= 0 {
		d = d[:i]
	}
	if d == "" {
		return ""
	}
	if strings.Contains(d, ".") {
		return d
	}
	return d + auth0HostSuffix
}

// Issuer is the expected "iss" claim of tokens issued for this tenant.
func (a Auth0Settings) Issuer() string {
	return a.endpoint("")
}

func (a Auth0Settings) AuthorizeURL() string { return a.endpoint("authorize") }
func (a Auth0Settings) TokenURL() string     { return a.endpoint("oauth/token") }
func (a Auth0Settings) LogoutURL() string    { return a.endpoint("v2/logout") }
func (a Auth0Settings) JWKSURL() string      { return a.endpoint(".well-known/jwks.json") }

// LoginURL builds the implicit-flow authorize URL the front-end redirects to.
func (a Auth0Settings) LoginURL(state string) string {
	base := a.AuthorizeURL()
	if base == "" {
		return ""
	}
	q := url.Values{}
	q.Set("audience", a.Audience)
	q.Set("client_id", a.ClientID)
	q.Set("redirect_uri", a.CallbackURL)
	q.Set("response_type", "token")
	q.Set("scope", DefaultScope)
	if state != "" {
		q.Set("state", state)
	}
	return base + "?" + q.Encode()
}

// Endpoints lists every derived provider URL.
type Endpoints struct {
	Issuer    string   `json:"issuer"`
	Authorize string   `json:"authorize"`
	Token     string   `json:"token"`
	Logout    string   `json:"logout"`
	JWKS      string   `json:"jwks"`
	Scope     string   `json:"scope"`
	Algs      []string `json:"algorithms"`
}

func (a Auth0Settings) Endpoints() Endpoints {
	algs := make([]string, len(DefaultAlgorithms))
	copy(algs, DefaultAlgorithms)
	return Endpoints{
		Issuer:    a.Issuer(),
		Authorize: a.AuthorizeURL(),
		Token:     a.TokenURL(),
		Logout:    a.LogoutURL(),
		JWKS:      a.JWKSURL(),
		Scope:     DefaultScope,
		Algs:      algs,
	}
}

func (a Auth0Settings) endpoint(path string) string {
	host := a.Host()
	if host == "" {
		return ""
	}
	return "https://" + host + "/" + path
}
