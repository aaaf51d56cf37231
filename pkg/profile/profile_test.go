package profile

import (
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"
)

func TestBuiltinDockerProfile(t *testing.T) {
	reg := Builtin()
	p, err := reg.Select(NameDocker)
	if err != nil {
		t.Fatalf("Select docker: %v", err)
	}
	want := EnvironmentProfile{
		Production:   false,
		APIServerURL: "http://backend:80/",
		Auth0: Auth0Settings{
			Domain:      "",
			Audience:    "",
			ClientID:    "",
			CallbackURL: "http://0.0.0.0:8100",
		},
	}
	if p != want {
		t.Fatalf("unexpected docker profile: %+v", p)
	}
	if p.Production {
		t.Fatalf("docker profile must not be production")
	}
}

func TestBuiltinLocalProfile(t *testing.T) {
	p, err := Builtin().Select(NameLocal)
	if err != nil {
		t.Fatalf("Select local: %v", err)
	}
	want := EnvironmentProfile{
		APIServerURL: "http://localhost:50080/api/v2",
		Auth0: Auth0Settings{
			Domain:      "dev-d-and-g-udaspicelatte",
			Audience:    "drinks",
			ClientID:    "ZolXEl6eVCUQNU8N7BzIgppmdSIoLgj4",
			CallbackURL: "http://localhost:58100",
		},
	}
	if p != want {
		t.Fatalf("unexpected local profile: %+v", p)
	}
}

func TestBuiltinProfilesAreValid(t *testing.T) {
	reg := Builtin()
	for _, name := range reg.Names() {
		t.Run(name, func(t *testing.T) {
			p, err := reg.Select(name)
			if err != nil {
				t.Fatalf("Select: %v", err)
			}
			if err := Validate(p); err != nil {
				t.Fatalf("Validate: %v", err)
			}
			if err := Lint(p); err != nil {
				t.Fatalf("Lint: %v", err)
			}
		})
	}
}

func TestRegistry(t *testing.T) {
	reg := Builtin()

	t.Run("Names", func(t *testing.T) {
		names := reg.Names()
		if len(names) != 2 || names[0] != NameDocker || names[1] != NameLocal {
			t.Fatalf("unexpected names %v", names)
		}
	})

	t.Run("DuplicateDoesNotShadow", func(t *testing.T) {
		other := Local()
		other.APIServerURL = "http://elsewhere/"
		err := reg.Register(NameLocal, other)
		if !errors.Is(err, ErrDuplicateProfile) {
			t.Fatalf("expected ErrDuplicateProfile, got %v", err)
		}
		p, _ := reg.Select(NameLocal)
		if p != Local() {
			t.Fatalf("registered profile was replaced: %+v", p)
		}
	})

	t.Run("InvalidName", func(t *testing.T) {
		for _, name := range []string{"", "Prod", "has space", "a/b"} {
			if err := reg.Register(name, Docker()); !errors.Is(err, ErrInvalidName) {
				t.Errorf("Register(%q): expected ErrInvalidName, got %v", name, err)
			}
		}
	})

	t.Run("NoSelection", func(t *testing.T) {
		if _, err := reg.Select("  "); !errors.Is(err, ErrNoSelection) {
			t.Fatalf("expected ErrNoSelection, got %v", err)
		}
	})

	t.Run("Unknown", func(t *testing.T) {
		if _, err := reg.Select("staging"); !errors.Is(err, ErrUnknownProfile) {
			t.Fatalf("expected ErrUnknownProfile, got %v", err)
		}
	})
}

func TestProviderReturnsSameValue(t *testing.T) {
	prov := NewProvider(NameLocal, Local())

	first := prov.Profile()
	first.APIServerURL = "http://mutated/"
	first.Auth0.ClientID = "mutated"

	if got := prov.Profile(); got != Local() {
		t.Fatalf("provider value changed through a copy: %+v", got)
	}

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if prov.Profile() != Local() {
				t.Error("concurrent read returned a different profile")
			}
		}()
	}
	wg.Wait()
	if prov.Name() != NameLocal {
		t.Fatalf("unexpected name %s", prov.Name())
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*EnvironmentProfile)
		fields []string
	}{
		{"Valid", func(*EnvironmentProfile) {}, nil},
		{"RelativeAPI", func(p *EnvironmentProfile) { p.APIServerURL = "/api/v2" }, []string{"apiServerUrl"}},
		{"EmptyAPI", func(p *EnvironmentProfile) { p.APIServerURL = "" }, []string{"apiServerUrl"}},
		{"NoHostCallback", func(p *EnvironmentProfile) { p.Auth0.CallbackURL = "http://" }, []string{"auth0.callbackURL"}},
		{"Both", func(p *EnvironmentProfile) {
			p.APIServerURL = "localhost"
			p.Auth0.CallbackURL = "::bad"
		}, []string{"apiServerUrl", "auth0.callbackURL"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Local()
			tt.mutate(&p)
			err := Validate(p)
			if len(tt.fields) == 0 {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, ErrInvalidURL) {
				t.Fatalf("expected ErrInvalidURL, got %v", err)
			}
			got := fieldsOf(err)
			if len(got) != len(tt.fields) {
				t.Fatalf("expected fields %v, got %v", tt.fields, got)
			}
			for i := range got {
				if got[i] != tt.fields[i] {
					t.Fatalf("expected fields %v, got %v", tt.fields, got)
				}
			}
		})
	}
}

func TestLint(t *testing.T) {
	t.Run("UnconfiguredDevelopment", func(t *testing.T) {
		if err := Lint(Docker()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("UnconfiguredProduction", func(t *testing.T) {
		p := Docker()
		p.Production = true
		err := Lint(p)
		if !errors.Is(err, ErrEmptyField) {
			t.Fatalf("expected ErrEmptyField, got %v", err)
		}
		if n := len(fieldsOf(err)); n != 3 {
			t.Fatalf("expected 3 field errors, got %d", n)
		}
	})

	t.Run("ConfiguredProduction", func(t *testing.T) {
		p := Local()
		p.Production = true
		if err := Lint(p); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})
}

func TestLoad(t *testing.T) {
	t.Run("Defaults", func(t *testing.T) {
		prov, err := Load(Options{Name: NameDocker})
		if err != nil {
			t.Fatalf("Load: %v", err)
		}
		if prov.Profile() != Docker() {
			t.Fatalf("unexpected profile %+v", prov.Profile())
		}
	})

	t.Run("EnvOverrides", func(t *testing.T) {
		t.Setenv("TESTPROFILE_PRODUCTION", "true")
		t.Setenv("TESTPROFILE_API_SERVER_URL", "https://api.example.com/v2")
		t.Setenv("TESTPROFILE_AUTH0_CLIENT_ID", "from-env")
		t.Setenv("TESTPROFILE_AUTH0_AUDIENCE", "")

		prov, err := Load(Options{Name: NameLocal, EnvPrefix: "TESTPROFILE"})
		if err != nil {
			t.Fatalf("Load: %v", err)
		}
		p := prov.Profile()
		if !p.Production {
			t.Errorf("expected production override")
		}
		if p.APIServerURL != "https://api.example.com/v2" {
			t.Errorf("unexpected api url %s", p.APIServerURL)
		}
		if p.Auth0.ClientID != "from-env" {
			t.Errorf("unexpected client id %s", p.Auth0.ClientID)
		}
		if p.Auth0.Audience != "" {
			t.Errorf("expected audience cleared, got %s", p.Auth0.Audience)
		}
		if p.Auth0.Domain != Local().Auth0.Domain {
			t.Errorf("unset override changed domain to %s", p.Auth0.Domain)
		}
	})

	t.Run("InvalidOverride", func(t *testing.T) {
		t.Setenv("TESTPROFILE_API_SERVER_URL", "not a url")
		_, err := Load(Options{Name: NameLocal, EnvPrefix: "TESTPROFILE"})
		if !errors.Is(err, ErrInvalidURL) {
			t.Fatalf("expected ErrInvalidURL, got %v", err)
		}
	})

	t.Run("BadBool", func(t *testing.T) {
		t.Setenv("TESTPROFILE_PRODUCTION", "maybe")
		if _, err := Load(Options{Name: NameLocal, EnvPrefix: "TESTPROFILE"}); err == nil {
			t.Fatalf("expected error for invalid bool")
		}
	})

	t.Run("Strict", func(t *testing.T) {
		t.Setenv("TESTPROFILE_PRODUCTION", "true")
		_, err := Load(Options{Name: NameDocker, EnvPrefix: "TESTPROFILE", Strict: true})
		if !errors.Is(err, ErrEmptyField) {
			t.Fatalf("expected ErrEmptyField, got %v", err)
		}
	})

	t.Run("Unselected", func(t *testing.T) {
		if _, err := Load(Options{}); !errors.Is(err, ErrNoSelection) {
			t.Fatalf("expected ErrNoSelection, got %v", err)
		}
	})
}

func TestRegisterFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "profiles.yaml")
	content := `
profiles:
  staging:
    production: true
    apiServerUrl: https://staging.example.com/api/v2
    auth0:
      url: staging-tenant
      audience: drinks
      clientId: abc
      callbackURL: https://staging.example.com
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write profiles file: %v", err)
	}

	reg := Builtin()
	if err := RegisterFile(reg, path); err != nil {
		t.Fatalf("RegisterFile: %v", err)
	}
	p, err := reg.Select("staging")
	if err != nil {
		t.Fatalf("Select staging: %v", err)
	}
	if !p.Production || p.Auth0.Domain != "staging-tenant" {
		t.Fatalf("unexpected staging profile %+v", p)
	}

	t.Run("DuplicateBuiltin", func(t *testing.T) {
		doc := []byte(`
profiles:
  local:
    production: false
    apiServerUrl: http://x/
    auth0: {url: "", audience: "", clientId: "", callbackURL: "http://x"}
`)
		if err := RegisterYAML(Builtin(), doc); !errors.Is(err, ErrDuplicateProfile) {
			t.Fatalf("expected ErrDuplicateProfile, got %v", err)
		}
	})

	t.Run("MissingField", func(t *testing.T) {
		doc := []byte(`
profiles:
  partial:
    production: false
    apiServerUrl: http://x/
`)
		if err := RegisterYAML(Builtin(), doc); !errors.Is(err, ErrMissingField) {
			t.Fatalf("expected ErrMissingField, got %v", err)
		}
	})

	t.Run("Empty", func(t *testing.T) {
		if err := RegisterYAML(Builtin(), nil); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})
}

func fieldsOf(err error) []string {
	var fields []string
	joined, ok := err.(interface{ Unwrap() []error })
	if !ok {
		var fe *FieldError
		if errors.As(err, &fe) {
			fields = append(fields, fe.Field)
		}
		return fields
	}
	for _, e := range joined.Unwrap() {
		var fe *FieldError
		if errors.As(e, &fe) {
			fields = append(fields, fe.Field)
		}
	}
	return fields
}

func TestOverridesNeedPrefix(t *testing.T) {
	t.Setenv("AUTH0_DOMAIN", "backend-tenant")
	t.Setenv("API_SERVER_URL", "http://backend.internal/")
	t.Setenv("PRODUCTION", "true")

	prov, err := Load(Options{Name: NameLocal, EnvPrefix: "TESTPROFILE"})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if prov.Profile() != Local() {
		t.Fatalf("unprefixed variables changed the profile: %+v", prov.Profile())
	}

	t.Setenv("TESTPROFILE_AUTH0_DOMAIN", "prefixed-tenant")
	prov, err = Load(Options{Name: NameLocal, EnvPrefix: "TESTPROFILE"})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got := prov.Profile().Auth0.Domain; got != "prefixed-tenant" {
		t.Fatalf("expected prefixed override, got %s", got)
	}

	o, err := ReadOverrides("")
	if err != nil || o.Auth0Domain != nil || o.Production != nil {
		t.Fatalf("empty prefix must read nothing: %+v %v", o, err)
	}
}

func TestRegisterYAMLLeavesRegistryUntouchedOnError(t *testing.T) {
	doc := []byte(`
profiles:
  alpha:
    production: false
    apiServerUrl: http://alpha/
    auth0: {url: "", audience: "", clientId: "", callbackURL: "http://alpha"}
  Bad Name:
    production: false
    apiServerUrl: http://bad/
    auth0: {url: "", audience: "", clientId: "", callbackURL: "http://bad"}
`)
	reg := Builtin()
	if err := RegisterYAML(reg, doc); !errors.Is(err, ErrInvalidName) {
		t.Fatalf("expected ErrInvalidName, got %v", err)
	}
	if reg.Has("alpha") {
		t.Fatal("valid entry was registered from a rejected file")
	}
	if names := reg.Names(); len(names) != 2 {
		t.Fatalf("registry changed: %v", names)
	}

	broken := []byte(`
profiles:
  alpha:
    production: false
    apiServerUrl: http://alpha/
    auth0: {url: "", audience: "", clientId: "", callbackURL: "http://alpha"}
  zeta:
    production: false
`)
	if err := RegisterYAML(reg, broken); !errors.Is(err, ErrMissingField) {
		t.Fatalf("expected ErrMissingField, got %v", err)
	}
	if reg.Has("alpha") {
		t.Fatal("valid entry was registered from a file with a broken profile")
	}
}
