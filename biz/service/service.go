package service

import (
	"github.com/yi-nology/envprofile/biz/dal/model"
	"github.com/yi-nology/envprofile/biz/model/api"
	"github.com/yi-nology/envprofile/pkg/profile"
	"github.com/yi-nology/envprofile/pkg/storage"

	"gorm.io/gorm"
)

// Service orchestrates profile operations. The selected profile is fixed at
// construction; stored profiles can be changed and published at runtime.
type Service struct {
	logic    *Logic
	provider *profile.Provider
	registry *profile.Registry
	store    storage.Storage
}

func NewService(db *gorm.DB, provider *profile.Provider, registry *profile.Registry, store storage.Storage) *Service {
	if registry == nil {
		registry = profile.Builtin()
	}
	return &Service{
		logic:    NewLogic(db),
		provider: provider,
		registry: registry,
		store:    store,
	}
}

// --------------------- Model conversion helpers ---------------------

func requestToModel(req *api.ProfileRequest) *model.Profile {
	p := req.Profile
	return &model.Profile{
		ProfileKey:      req.ProfileKey,
		Description:     req.Description,
		SortOrder:       int(req.SortOrder),
		IsActive:        req.GetIsActive(),
		Production:      p.Production,
		APIServerURL:    p.APIServerURL,
		AuthDomain:      p.Auth0.Domain,
		AuthAudience:    p.Auth0.Audience,
		AuthClientID:    p.Auth0.ClientID,
		AuthCallbackURL: p.Auth0.CallbackURL,
	}
}

func modelToProfile(m *model.Profile) profile.EnvironmentProfile {
	return profile.EnvironmentProfile{
		Production:   m.Production,
		APIServerURL: m.APIServerURL,
		Auth0: profile.Auth0Settings{
			Domain:      m.AuthDomain,
			Audience:    m.AuthAudience,
			ClientID:    m.AuthClientID,
			CallbackURL: m.AuthCallbackURL,
		},
	}
}

func (s *Service) modelToItem(m *model.Profile) *api.ProfileItem {
	if m == nil {
		return nil
	}
	return &api.ProfileItem{
		ProfileKey:  m.ProfileKey,
		Description: m.Description,
		SortOrder:   int32(m.SortOrder),
		IsActive:    m.IsActive,
		Profile:     modelToProfile(m),
	}
}

// registered resolves a registry profile. The selected one is served from the
// provider so environment overrides are included.
func (s *Service) registered(key string) (profile.EnvironmentProfile, error) {
	if key == s.provider.Name() {
		return s.provider.Profile(), nil
	}
	return s.registry.Select(key)
}

func (s *Service) builtinItem(key string) (*api.ProfileItem, error) {
	p, err := s.registered(key)
	if err != nil {
		return nil, err
	}
	return &api.ProfileItem{
		ProfileKey: key,
		Builtin:    true,
		Selected:   key == s.provider.Name(),
		IsActive:   true,
		Profile:    p,
	}, nil
}

func publicationToAPI(m *model.Publication) *api.Publication {
	return &api.Publication{
		RevisionID: m.RevisionID,
		ProfileKey: m.ProfileKey,
		Format:     m.Format,
		ObjectKey:  m.ObjectKey,
		URL:        m.URL,
		Storage:    m.Storage,
	}
}
