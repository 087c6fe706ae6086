package trainerstore

import (
	"errors"
	"testing"

	userstore "github.com/fitnest/fitnest/internal/app/store/users"
	"github.com/fitnest/fitnest/internal/domain/models"
	"github.com/fitnest/fitnest/internal/testutil"
	"go.uber.org/zap"
)

// A crash between the status write and the role promotion leaves a confirmed
// application with an unpromoted user. This exercises the sequential write
// path directly, observes the documented inconsistent state, and verifies
// that ReconcilePromotions repairs it.
func TestConfirmWrites_PartialFailureThenReconcile(t *testing.T) {
	db := testutil.SetupTestDB(t)
	users := userstore.New(db)
	store := New(db, users, zap.NewNop())
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fixtures.CreateUser(ctx, "gap@example.com", models.RoleMember)
	app := fixtures.CreateApplication(ctx, "gap@example.com", models.ApplicationPending)

	boom := errors.New("crash between writes")
	store.betweenConfirmWrites = func() error { return boom }

	err := store.confirmWrites(ctx, app.ID, "gap@example.com")
	if !errors.Is(err, boom) {
		t.Fatalf("expected injected failure, got %v", err)
	}

	// the observable inconsistent state: status flipped, role did not
	got, err := store.GetByID(ctx, app.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if got.Status != models.ApplicationConfirmed {
		t.Errorf("status: got %q, want confirm", got.Status)
	}
	role, err := users.RoleByEmail(ctx, "gap@example.com")
	if err != nil {
		t.Fatalf("RoleByEmail failed: %v", err)
	}
	if role != models.RoleMember {
		t.Errorf("role: got %q, want still member", role)
	}

	// startup reconciliation closes the gap
	store.betweenConfirmWrites = nil
	repaired, err := store.ReconcilePromotions(ctx)
	if err != nil {
		t.Fatalf("ReconcilePromotions failed: %v", err)
	}
	if repaired != 1 {
		t.Errorf("repaired: got %d, want 1", repaired)
	}
	role, err = users.RoleByEmail(ctx, "gap@example.com")
	if err != nil {
		t.Fatalf("RoleByEmail failed: %v", err)
	}
	if role != models.RoleTrainer {
		t.Errorf("role: got %q, want trainer after repair", role)
	}
}
