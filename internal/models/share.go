package models

// ShareScope is the permission level granted by a share
type ShareScope string

const (
	ShareScopeView ShareScope = "view"
	ShareScopeEdit ShareScope = "edit"
)

// ShareScopeType is the data domain a share applies to
type ShareScopeType string

const (
	ShareScopeTypeMeal   ShareScopeType = "meal"
	ShareScopeTypeBudget ShareScopeType = "budget"
)

// Share grants another user read or write access to one data domain
// of the owning user.
type Share struct {
	Base
	OwnerUserID  string         `gorm:"type:uuid;not null;index" json:"owner_user_id"`
	TargetUserID string         `gorm:"type:uuid;not null;index" json:"target_user_id"`
	Scope        ShareScope     `gorm:"not null;default:'view'" json:"scope"`
	ScopeType    ShareScopeType `gorm:"not null" json:"scope_type"`
	Label        string         `json:"label"`
}
