package services

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	apperrors "kamra/internal/errors"
	"kamra/internal/models"
)

// shareService handles per-user data sharing grants.
type shareService struct {
	db *gorm.DB
}

// NewShareService creates a new ShareServicer.
func NewShareService(db *gorm.DB) ShareServicer {
	return &shareService{db: db}
}

// CreateShare grants the target user (looked up by email) access to one
// data domain of the owner.
func (s *shareService) CreateShare(ownerID, targetEmail string, scope models.ShareScope, scopeType models.ShareScopeType, label string) (*models.Share, error) {
	var target models.User
	if err := s.db.Where("email = ?", strings.ToLower(targetEmail)).First(&target).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, wrapErr(err)
	}

	if target.ID == ownerID {
		return nil, apperrors.ErrSelfShare
	}

	var count int64
	if err := s.db.Model(&models.Share{}).
		Where("owner_user_id = ? AND target_user_id = ? AND scope_type = ?", ownerID, target.ID, scopeType).
		Count(&count).Error; err != nil {
		return nil, wrapErr(err)
	}
	if count > 0 {
		return nil, apperrors.ErrDuplicateShare
	}

	share := models.Share{
		OwnerUserID:  ownerID,
		TargetUserID: target.ID,
		Scope:        scope,
		ScopeType:    scopeType,
		Label:        label,
	}
	if err := s.db.Create(&share).Error; err != nil {
		return nil, wrapErr(err)
	}
	return &share, nil
}

// GetShares returns the shares the user granted and those granted to them.
func (s *shareService) GetShares(userID string) (*ShareList, error) {
	var granted []models.Share
	if err := s.db.Where("owner_user_id = ?", userID).Find(&granted).Error; err != nil {
		return nil, wrapErr(err)
	}

	var received []models.Share
	if err := s.db.Where("target_user_id = ?", userID).Find(&received).Error; err != nil {
		return nil, wrapErr(err)
	}

	return &ShareList{Granted: granted, Received: received}, nil
}

// DeleteShare revokes a share. Only the owner may revoke.
func (s *shareService) DeleteShare(ownerID string, shareID uint) error {
	result := s.db.Where("id = ? AND owner_user_id = ?", shareID, ownerID).Delete(&models.Share{})
	if result.Error != nil {
		return wrapErr(result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrShareNotFound
	}
	return nil
}
