package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/cloudwego/hertz/pkg/common/hlog"
)

// ErrProfileConflict means a stored profile uses a name the registry owns.
var ErrProfileConflict = errors.New("stored profiles collide with registered profiles")

// CheckConflicts makes sure no stored profile shares a name with a registered
// one. Such a row would be unreachable, so startup refuses to continue.
func (s *Service) CheckConflicts(ctx context.Context) error {
	entities, err := s.logic.profileDAO.List(ctx, s.logic.db, nil)
	if err != nil {
		return err
	}
	var clashes []string
	for _, e := range entities {
		if s.registry.Has(e.ProfileKey) {
			clashes = append(clashes, e.ProfileKey)
		}
	}
	if len(clashes) > 0 {
		return fmt.Errorf("%w: %s", ErrProfileConflict, strings.Join(clashes, ", "))
	}
	hlog.CtxInfof(ctx, "profiles ready: %d registered, %d stored, serving %q",
		len(s.registry.Names()), len(entities), s.provider.Name())
	return nil
}

// PublishSelected writes the selected profile to storage in every format.
// Storage being disabled is not an error.
func (s *Service) PublishSelected(ctx context.Context) error {
	if s.store == nil {
		return nil
	}
	for _, f := range publishFormats {
		if _, err := s.PublishProfile(ctx, s.provider.Name(), f); err != nil {
			return err
		}
	}
	return nil
}
