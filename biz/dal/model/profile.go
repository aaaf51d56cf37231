package model

import (
	"time"

	"gorm.io/gorm"
)

// Profile is a stored environment profile, added at runtime next to the
// built-in ones.
type Profile struct {
	ID              uint           `gorm:"primaryKey" json:"id,omitempty"`
	CreatedAt       time.Time      `json:"created_at,omitempty"`
	UpdatedAt       time.Time      `json:"updated_at,omitempty"`
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`
	ProfileKey      string         `gorm:"column:profile_key;uniqueIndex:uk_profile_key" json:"profile_key,omitempty"`
	Description     string         `gorm:"column:description;type:varchar(512)" json:"description,omitempty"`
	SortOrder       int            `gorm:"column:sort_order;default:0" json:"sort_order,omitempty"`
	IsActive        bool           `gorm:"column:is_active" json:"is_active"`
	Production      bool           `gorm:"column:production" json:"production"`
	APIServerURL    string         `gorm:"column:api_server_url;type:varchar(1024)" json:"api_server_url"`
	AuthDomain      string         `gorm:"column:auth_domain" json:"auth_domain"`
	AuthAudience    string         `gorm:"column:auth_audience" json:"auth_audience"`
	AuthClientID    string         `gorm:"column:auth_client_id" json:"auth_client_id"`
	AuthCallbackURL string         `gorm:"column:auth_callback_url;type:varchar(1024)" json:"auth_callback_url"`
}

// TableName overrides gorm to use environment_profile table.
func (Profile) TableName() string {
	return "environment_profile"
}

// Publication records the last time a profile was written to storage.
type Publication struct {
	ID         uint      `gorm:"primaryKey" json:"id,omitempty"`
	CreatedAt  time.Time `json:"created_at,omitempty"`
	RevisionID string    `gorm:"column:revision_id;uniqueIndex" json:"revision_id"`
	ProfileKey string    `gorm:"column:profile_key;index:idx_publication_profile" json:"profile_key"`
	Format     string    `gorm:"column:format" json:"format"`
	ObjectKey  string    `gorm:"column:object_key" json:"object_key"`
	URL        string    `gorm:"column:url;type:varchar(2048)" json:"url"`
	Storage    string    `gorm:"column:storage" json:"storage"`
}

// TableName overrides gorm to use profile_publication table.
func (Publication) TableName() string {
	return "profile_publication"
}

// All lists every model that needs migrating.
func All() []any {
	return []any{&Profile{}, &Publication{}}
}
