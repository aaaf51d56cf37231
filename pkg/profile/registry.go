package profile

import (
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strings"
	"sync"
)

var (
	ErrNoSelection      = errors.New("no profile selected")
	ErrUnknownProfile   = errors.New("unknown profile")
	ErrDuplicateProfile = errors.New("profile already registered")
	ErrInvalidName      = errors.New("profile name must match [a-z0-9_-]{1,64}")
)

var nameRegexp = regexp.MustCompile(`^[a-z0-9_-]{1,64}$`)

// ValidName reports whether name can be used to register a profile.
func ValidName(name string) bool {
	return nameRegexp.MatchString(name)
}

// Registry maps profile names to profiles. A name can only be registered once.
type Registry struct {
	mu       sync.RWMutex
	profiles map[string]EnvironmentProfile
}

func NewRegistry() *Registry {
	return &Registry{profiles: make(map[string]EnvironmentProfile)}
}

// Register adds a profile under name.
func (r *Registry) Register(name string, p EnvironmentProfile) error {
	name = strings.TrimSpace(name)
	if !ValidName(name) {
		return fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.profiles[name]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicateProfile, name)
	}
	r.profiles[name] = p
	return nil
}

// Select returns the profile registered under name.
func (r *Registry) Select(name string) (EnvironmentProfile, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return EnvironmentProfile{}, ErrNoSelection
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.profiles[name]
	if !ok {
		return EnvironmentProfile{}, fmt.Errorf("%w: %s", ErrUnknownProfile, name)
	}
	return p, nil
}

// Has reports whether name is registered.
func (r *Registry) Has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.profiles[name]
	return ok
}

// Names returns the registered names in lexical order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	names := make([]string, 0, len(r.profiles))
	for name := range r.profiles {
		names = append(names, name)
	}
	r.mu.RUnlock()
	sort.Strings(names)
	return names
}
