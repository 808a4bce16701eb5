package services

import (
	"testing"

	"github.com/shopspring/decimal"

	apperrors "kamra/internal/errors"
	"kamra/internal/models"
	"kamra/internal/testutil"
)

func TestCreateSaving(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)

	svc := NewSavingService(db)
	user := testutil.CreateTestUser(t, db)

	target := decimal.NewFromInt(500000)
	saving, err := svc.CreateSaving(user.ID, "Vacation", &target)
	testutil.AssertNoError(t, err)

	if !saving.Active {
		t.Error("expected new saving to be active")
	}
	if saving.TargetAmount == nil || !saving.TargetAmount.Equal(target) {
		t.Errorf("expected target 500000, got %v", saving.TargetAmount)
	}
}

func TestAddSavingLog(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)

	svc := NewSavingService(db)
	user := testutil.CreateTestUser(t, db)
	saving := testutil.CreateTestSaving(t, db, user.ID)

	log, err := svc.AddSavingLog(user.ID, saving.ID, decimal.NewFromInt(10000), "january deposit")
	testutil.AssertNoError(t, err)
	if log.CreatedByUserID != user.ID {
		t.Errorf("expected log author %s, got %s", user.ID, log.CreatedByUserID)
	}

	// Withdrawals are negative contributions.
	_, err = svc.AddSavingLog(user.ID, saving.ID, decimal.NewFromInt(-2500), "emergency")
	testutil.AssertNoError(t, err)

	savings, err := svc.GetActiveSavings(user.ID)
	testutil.AssertNoError(t, err)
	if len(savings) != 1 {
		t.Fatalf("expected 1 saving, got %d", len(savings))
	}
	if len(savings[0].Logs) != 2 {
		t.Errorf("expected 2 logs, got %d", len(savings[0].Logs))
	}

	t.Run("other user's saving", func(t *testing.T) {
		other := testutil.CreateTestUser(t, db)
		_, err := svc.AddSavingLog(other.ID, saving.ID, decimal.NewFromInt(100), "")
		testutil.AssertAppError(t, err, apperrors.ErrSavingNotFound)
	})
}

func TestDeactivateSaving(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)

	svc := NewSavingService(db)
	user := testutil.CreateTestUser(t, db)
	saving := testutil.CreateTestSaving(t, db, user.ID)

	testutil.AssertNoError(t, svc.DeactivateSaving(user.ID, saving.ID))

	// Soft delete: the row and its logs survive.
	var stored models.Saving
	testutil.AssertNoError(t, db.First(&stored, saving.ID).Error)
	if stored.Active {
		t.Error("expected saving to be inactive")
	}

	savings, err := svc.GetActiveSavings(user.ID)
	testutil.AssertNoError(t, err)
	if len(savings) != 0 {
		t.Errorf("expected no active savings, got %d", len(savings))
	}
}
