package services

import (
	"testing"

	apperrors "kamra/internal/errors"
	"kamra/internal/models"
	"kamra/internal/testutil"
)

func TestCreateShare(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)

	svc := NewShareService(db)
	owner := testutil.CreateTestUser(t, db)
	target := testutil.CreateTestUser(t, db)

	share, err := svc.CreateShare(owner.ID, target.Email, models.ShareScopeView, models.ShareScopeTypeMeal, "partner")
	testutil.AssertNoError(t, err)

	if share.TargetUserID != target.ID {
		t.Errorf("expected target %s, got %s", target.ID, share.TargetUserID)
	}

	t.Run("unknown target email", func(t *testing.T) {
		_, err := svc.CreateShare(owner.ID, "nobody@example.com", models.ShareScopeView, models.ShareScopeTypeMeal, "")
		testutil.AssertAppError(t, err, apperrors.ErrUserNotFound)
	})

	t.Run("self share", func(t *testing.T) {
		_, err := svc.CreateShare(owner.ID, owner.Email, models.ShareScopeView, models.ShareScopeTypeMeal, "")
		testutil.AssertAppError(t, err, apperrors.ErrSelfShare)
	})

	t.Run("duplicate domain share", func(t *testing.T) {
		_, err := svc.CreateShare(owner.ID, target.Email, models.ShareScopeEdit, models.ShareScopeTypeMeal, "")
		testutil.AssertAppError(t, err, apperrors.ErrDuplicateShare)
	})

	t.Run("different domain is allowed", func(t *testing.T) {
		_, err := svc.CreateShare(owner.ID, target.Email, models.ShareScopeView, models.ShareScopeTypeBudget, "")
		testutil.AssertNoError(t, err)
	})
}

func TestGetShares(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)

	svc := NewShareService(db)
	alice := testutil.CreateTestUser(t, db)
	bob := testutil.CreateTestUser(t, db)

	_, err := svc.CreateShare(alice.ID, bob.Email, models.ShareScopeView, models.ShareScopeTypeMeal, "")
	testutil.AssertNoError(t, err)
	_, err = svc.CreateShare(bob.ID, alice.Email, models.ShareScopeEdit, models.ShareScopeTypeBudget, "")
	testutil.AssertNoError(t, err)

	shares, err := svc.GetShares(alice.ID)
	testutil.AssertNoError(t, err)

	if len(shares.Granted) != 1 || shares.Granted[0].TargetUserID != bob.ID {
		t.Errorf("expected 1 granted share to bob, got %+v", shares.Granted)
	}
	if len(shares.Received) != 1 || shares.Received[0].OwnerUserID != bob.ID {
		t.Errorf("expected 1 received share from bob, got %+v", shares.Received)
	}
}

func TestDeleteShare(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)

	svc := NewShareService(db)
	owner := testutil.CreateTestUser(t, db)
	target := testutil.CreateTestUser(t, db)

	share, err := svc.CreateShare(owner.ID, target.Email, models.ShareScopeView, models.ShareScopeTypeMeal, "")
	testutil.AssertNoError(t, err)

	t.Run("target cannot revoke", func(t *testing.T) {
		err := svc.DeleteShare(target.ID, share.ID)
		testutil.AssertAppError(t, err, apperrors.ErrShareNotFound)
	})

	testutil.AssertNoError(t, svc.DeleteShare(owner.ID, share.ID))

	var count int64
	db.Model(&models.Share{}).Where("id = ?", share.ID).Count(&count)
	if count != 0 {
		t.Error("expected share to be removed")
	}
}
