package profile

// Names of the profiles shipped with the package.
const (
	NameDocker = "docker"
	NameLocal  = "local"
)

// Docker targets the backend container on the compose network.
func Docker() EnvironmentProfile {
	return EnvironmentProfile{
		Production:   false,
		APIServerURL: "http://backend:80/",
		Auth0: Auth0Settings{
			CallbackURL: "http://0.0.0.0:8100",
		},
	}
}

// Local targets the backend and front-end ports published on localhost.
func Local() EnvironmentProfile {
	return EnvironmentProfile{
		Production:   false,
		APIServerURL: "http://localhost:50080/api/v2",
		Auth0: Auth0Settings{
			Domain:      "dev-d-and-g-udaspicelatte",
			Audience:    "drinks",
			ClientID:    "ZolXEl6eVCUQNU8N7BzIgppmdSIoLgj4",
			CallbackURL: "http://localhost:58100",
		},
	}
}

// IsBuiltin reports whether name is reserved by a shipped profile.
func IsBuiltin(name string) bool {
	return name == NameDocker || name == NameLocal
}

// Builtin returns a new registry holding the shipped profiles.
func Builtin() *Registry {
	r := NewRegistry()
	_ = r.Register(NameDocker, Docker())
	_ = r.Register(NameLocal, Local())
	return r
}
