// Package api provides API request/response models for profile management.
package api

import "github.com/yi-nology/envprofile/pkg/profile"

// ProfileItem is a named profile as listed by the API.
type ProfileItem struct {
	ProfileKey  string                     `json:"profile_key"`
	Builtin     bool                       `json:"builtin"`
	Selected    bool                       `json:"selected"`
	Description string                     `json:"description,omitempty"`
	SortOrder   int32                      `json:"sort_order,omitempty"`
	IsActive    bool                       `json:"is_active"`
	Profile     profile.EnvironmentProfile `json:"profile"`
}

// GetProfileKey returns the key or "" on a nil item.
func (x *ProfileItem) GetProfileKey() string {
	if x != nil {
		return x.ProfileKey
	}
	return ""
}

// ProfileRequest creates or updates a stored profile.
type ProfileRequest struct {
	ProfileKey  string                     `json:"profile_key"`
	Description string                     `json:"description,omitempty"`
	SortOrder   int32                      `json:"sort_order,omitempty"`
	IsActive    *bool                      `json:"is_active,omitempty"`
	Profile     profile.EnvironmentProfile `json:"profile"`
}

// GetIsActive defaults to true when the flag was omitted.
func (x *ProfileRequest) GetIsActive() bool {
	if x == nil || x.IsActive == nil {
		return true
	}
	return *x.IsActive
}

// ActiveProfile is the profile the service was started with.
type ActiveProfile struct {
	ProfileKey string                     `json:"profile_key"`
	Profile    profile.EnvironmentProfile `json:"profile"`
	Endpoints  profile.Endpoints          `json:"endpoints"`
}

// Publication describes one profile written to storage.
type Publication struct {
	RevisionID string `json:"revision_id"`
	ProfileKey string `json:"profile_key"`
	Format     string `json:"format"`
	ObjectKey  string `json:"object_key"`
	URL        string `json:"url"`
	Storage    string `json:"storage"`
}
