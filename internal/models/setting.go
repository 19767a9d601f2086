package models

import "time"

// Setting keys consulted by the core flows. Absence of a key falls back to a
// caller-supplied default rather than failing.
const (
	SettingPostExpiryPremium   = "post_expiry_time_premium"
	SettingPostExpiryNormal    = "post_expiry_time_normal"
	SettingSearchRadiusPremium = "max_search_radius_premium"
	SettingSearchRadiusNormal  = "max_search_radius_normal"
)

// Setting is an operator-tunable key/value pair.
type Setting struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Key         string    `gorm:"size:120;not null;uniqueIndex" json:"key"`
	Value       string    `gorm:"size:255;not null" json:"value"`
	Description string    `gorm:"size:255" json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// TableName specifies the table name for GORM.
func (Setting) TableName() string {
	return "settings"
}
