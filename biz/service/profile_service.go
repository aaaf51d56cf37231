package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/yi-nology/envprofile/biz/model/api"
	"github.com/yi-nology/envprofile/pkg/common"
	"github.com/yi-nology/envprofile/pkg/profile"
	"github.com/yi-nology/envprofile/pkg/validator"
	"gorm.io/gorm"
)

var (
	ErrProfileNotFound    = errors.New("profile not found")
	ErrProfileKeyRequired = errors.New("profile_key is required")
	ErrProfileKeyExists   = errors.New("profile_key already exists")
	ErrInvalidProfileKey  = errors.New("profile_key must contain only lowercase letters, digits, '_' or '-' (max 64)")
	ErrProfileReserved    = errors.New("profile_key is reserved by a built-in profile")
	ErrInvalidProfile     = errors.New("invalid profile")
)

// Active returns the profile selected at startup.
func (s *Service) Active(ctx context.Context) *api.ActiveProfile {
	p := s.provider.Profile()
	return &api.ActiveProfile{
		ProfileKey: s.provider.Name(),
		Profile:    p,
		Endpoints:  p.Auth0.Endpoints(),
	}
}

// ActiveProfile returns the selected profile value.
func (s *Service) ActiveProfile() profile.EnvironmentProfile {
	return s.provider.Profile()
}

// AddProfile stores a new profile.
func (s *Service) AddProfile(ctx context.Context, req *api.ProfileRequest) (*api.ProfileItem, error) {
	key, err := s.checkWritableKey(req)
	if err != nil {
		return nil, err
	}
	if err := checkProfile(req.Profile); err != nil {
		return nil, err
	}

	exists, err := s.logic.profileDAO.ExistsByKey(ctx, s.logic.db, key)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrProfileKeyExists
	}

	req.ProfileKey = key
	entity := requestToModel(req)
	if err := s.logic.profileDAO.Create(ctx, s.logic.db, entity); err != nil {
		return nil, err
	}
	hlog.CtxInfof(ctx, "profile %s added by %s", key, actor(ctx))
	return s.modelToItem(entity), nil
}

// UpdateProfile replaces every field of a stored profile.
func (s *Service) UpdateProfile(ctx context.Context, req *api.ProfileRequest) (*api.ProfileItem, error) {
	key, err := s.checkWritableKey(req)
	if err != nil {
		return nil, err
	}
	if err := checkProfile(req.Profile); err != nil {
		return nil, err
	}

	if _, err := s.logic.profileDAO.GetByKey(ctx, s.logic.db, key); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, err
	}

	req.ProfileKey = key
	entity := requestToModel(req)
	if err := s.logic.profileDAO.Update(ctx, s.logic.db, entity); err != nil {
		return nil, err
	}
	updated, err := s.logic.profileDAO.GetByKey(ctx, s.logic.db, key)
	if err != nil {
		return nil, err
	}
	hlog.CtxInfof(ctx, "profile %s updated by %s", key, actor(ctx))
	return s.modelToItem(updated), nil
}

// DeleteProfile removes a stored profile.
func (s *Service) DeleteProfile(ctx context.Context, profileKey string) error {
	key, err := s.checkWritableKey(&api.ProfileRequest{ProfileKey: profileKey})
	if err != nil {
		return err
	}

	if _, err := s.logic.profileDAO.GetByKey(ctx, s.logic.db, key); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrProfileNotFound
		}
		return err
	}
	if err := s.logic.profileDAO.Delete(ctx, s.logic.db, key); err != nil {
		return err
	}
	if err := s.UnpublishProfile(ctx, key); err != nil {
		hlog.CtxWarnf(ctx, "profile %s deleted but published files remain: %v", key, err)
	}
	hlog.CtxInfof(ctx, "profile %s deleted by %s", key, actor(ctx))
	return nil
}

// GetProfile resolves a key against the registry first, then storage.
func (s *Service) GetProfile(ctx context.Context, profileKey string) (*api.ProfileItem, error) {
	key := strings.TrimSpace(profileKey)
	if key == "" {
		return nil, ErrProfileKeyRequired
	}
	if key == s.provider.Name() || s.registry.Has(key) {
		return s.builtinItem(key)
	}

	entity, err := s.logic.profileDAO.GetByKey(ctx, s.logic.db, key)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, err
	}
	return s.modelToItem(entity), nil
}

// ListProfiles returns registry profiles followed by stored ones. Registry
// profiles are always active, so they are left out when isActive is false.
func (s *Service) ListProfiles(ctx context.Context, isActive *bool) ([]*api.ProfileItem, error) {
	entities, err := s.logic.profileDAO.List(ctx, s.logic.db, isActive)
	if err != nil {
		return nil, err
	}

	names := s.registry.Names()
	list := make([]*api.ProfileItem, 0, len(names)+len(entities))
	if isActive == nil || *isActive {
		for _, name := range names {
			item, err := s.builtinItem(name)
			if err != nil {
				return nil, err
			}
			list = append(list, item)
		}
	}
	for i := range entities {
		list = append(list, s.modelToItem(&entities[i]))
	}
	return list, nil
}

func (s *Service) checkWritableKey(req *api.ProfileRequest) (string, error) {
	if req == nil {
		return "", ErrProfileKeyRequired
	}
	key, ok := validator.SanitizeProfileKey(req.ProfileKey)
	if key == "" {
		return "", ErrProfileKeyRequired
	}
	if !ok {
		return "", ErrInvalidProfileKey
	}
	if s.registry.Has(key) {
		return "", ErrProfileReserved
	}
	return key, nil
}

// actor names the caller recorded by the auth middleware.
func actor(ctx context.Context) string {
	if id, ok := common.GetUserID(ctx); ok {
		return fmt.Sprintf("user %d", id)
	}
	return "anonymous"
}

// checkProfile validates a profile before it is stored. Production profiles
// must also carry identity provider settings.
func checkProfile(p profile.EnvironmentProfile) error {
	if err := profile.Validate(p); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidProfile, err)
	}
	if err := profile.Lint(p); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidProfile, err)
	}
	return nil
}
