package trainerstore_test

import (
	"testing"

	trainerstore "github.com/fitnest/fitnest/internal/app/store/trainers"
	userstore "github.com/fitnest/fitnest/internal/app/store/users"
	"github.com/fitnest/fitnest/internal/domain/models"
	"github.com/fitnest/fitnest/internal/testutil"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

func TestStore_Submit(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := trainerstore.New(db, userstore.New(db), zap.NewNop())
	ctx, cancel := testutil.TestContext()
	defer cancel()

	created, err := store.Submit(ctx, models.TrainerApplication{
		Email:      "Applicant@Example.COM",
		FullName:   "Applicant One",
		Age:        28,
		Experience: 4,
		Skills:     []string{"yoga", "pilates"},
	})
	if err != nil {
		t.Fatalf("Submit failed: %v", err)
	}

	if created.ID == primitive.NilObjectID {
		t.Error("expected ID to be assigned")
	}
	if created.Email != "applicant@example.com" {
		t.Errorf("Email: got %q, want normalized", created.Email)
	}
	if created.Status != models.ApplicationPending {
		t.Errorf("Status: got %q, want pending", created.Status)
	}
}

func TestStore_Submit_AllowsDuplicatePending(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := trainerstore.New(db, userstore.New(db), zap.NewNop())
	ctx, cancel := testutil.TestContext()
	defer cancel()

	for i := 0; i < 2; i++ {
		if _, err := store.Submit(ctx, models.TrainerApplication{
			Email: "again@example.com", FullName: "Again", Age: 30, Experience: 2,
		}); err != nil {
			t.Fatalf("Submit %d failed: %v", i, err)
		}
	}

	apps, err := store.ListByEmailAndStatus(ctx, "again@example.com", models.ApplicationPending)
	if err != nil {
		t.Fatalf("ListByEmailAndStatus failed: %v", err)
	}
	if len(apps) != 2 {
		t.Errorf("len: got %d, want 2", len(apps))
	}
}

func TestStore_SetStatus_ConfirmPromotes(t *testing.T) {
	db := testutil.SetupTestDB(t)
	users := userstore.New(db)
	store := trainerstore.New(db, users, zap.NewNop())
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fixtures.CreateUser(ctx, "promo@example.com", models.RoleMember)
	app := fixtures.CreateApplication(ctx, "promo@example.com", models.ApplicationPending)

	if err := store.SetStatus(ctx, app.ID, models.ApplicationConfirmed, "promo@example.com"); err != nil {
		t.Fatalf("SetStatus failed: %v", err)
	}

	got, err := store.GetByID(ctx, app.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if got.Status != models.ApplicationConfirmed {
		t.Errorf("status: got %q, want confirm", got.Status)
	}

	role, err := users.RoleByEmail(ctx, "promo@example.com")
	if err != nil {
		t.Fatalf("RoleByEmail failed: %v", err)
	}
	if role != models.RoleTrainer {
		t.Errorf("role: got %q, want trainer", role)
	}
}

func TestStore_SetStatus_ConfirmWithoutAccount(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := trainerstore.New(db, userstore.New(db), zap.NewNop())
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	app := fixtures.CreateApplication(ctx, "noaccount@example.com", models.ApplicationPending)

	// no user document for the applicant: the status still flips and the
	// promotion waits for reconciliation
	if err := store.SetStatus(ctx, app.ID, models.ApplicationConfirmed, "noaccount@example.com"); err != nil {
		t.Fatalf("SetStatus failed: %v", err)
	}

	got, err := store.GetByID(ctx, app.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if got.Status != models.ApplicationConfirmed {
		t.Errorf("status: got %q, want confirm", got.Status)
	}
}

func TestStore_SetStatus_UnknownID(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := trainerstore.New(db, userstore.New(db), zap.NewNop())
	ctx, cancel := testutil.TestContext()
	defer cancel()

	err := store.SetStatus(ctx, primitive.NewObjectID(), models.ApplicationConfirmed, "x@example.com")
	if err != trainerstore.ErrNotFound {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestStore_SetStatus_BadStatus(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := trainerstore.New(db, userstore.New(db), zap.NewNop())
	ctx, cancel := testutil.TestContext()
	defer cancel()

	err := store.SetStatus(ctx, primitive.NewObjectID(), "approved", "x@example.com")
	if err == nil {
		t.Fatal("expected error for unknown status")
	}
}

func TestStore_Reject_ArchivesWithoutDeleting(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := trainerstore.New(db, userstore.New(db), zap.NewNop())
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	app := fixtures.CreateApplication(ctx, "reject@example.com", models.ApplicationPending)

	rej, err := store.Reject(ctx, app.ID, "reject@example.com", "not enough experience")
	if err != nil {
		t.Fatalf("Reject failed: %v", err)
	}
	if rej.ApplicationID != app.ID {
		t.Errorf("ApplicationID: got %v, want %v", rej.ApplicationID, app.ID)
	}
	if rej.RejectedAt.IsZero() {
		t.Error("expected RejectedAt to be set")
	}

	// the application itself survives until the explicit Delete step
	if _, err := store.GetByID(ctx, app.ID); err != nil {
		t.Errorf("application should still exist: %v", err)
	}

	n, err := db.Collection("rejected_applications").CountDocuments(ctx, bson.M{"application_id": app.ID})
	if err != nil {
		t.Fatalf("count rejections: %v", err)
	}
	if n != 1 {
		t.Errorf("rejections: got %d, want 1", n)
	}
}

func TestStore_Delete(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := trainerstore.New(db, userstore.New(db), zap.NewNop())
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	app := fixtures.CreateApplication(ctx, "delete@example.com", models.ApplicationPending)

	if err := store.Delete(ctx, app.ID); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, err := store.GetByID(ctx, app.ID); err != trainerstore.ErrNotFound {
		t.Errorf("expected ErrNotFound after delete, got %v", err)
	}

	if err := store.Delete(ctx, app.ID); err != trainerstore.ErrNotFound {
		t.Errorf("expected ErrNotFound on second delete, got %v", err)
	}
}

func TestStore_ListByStatus(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := trainerstore.New(db, userstore.New(db), zap.NewNop())
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fixtures.CreateApplication(ctx, "p1@example.com", models.ApplicationPending)
	fixtures.CreateApplication(ctx, "p2@example.com", models.ApplicationPending)
	fixtures.CreateApplication(ctx, "c1@example.com", models.ApplicationConfirmed)

	pending, err := store.ListByStatus(ctx, models.ApplicationPending)
	if err != nil {
		t.Fatalf("ListByStatus failed: %v", err)
	}
	if len(pending) != 2 {
		t.Errorf("pending: got %d, want 2", len(pending))
	}

	confirmed, err := store.ListByStatus(ctx, models.ApplicationConfirmed)
	if err != nil {
		t.Fatalf("ListByStatus failed: %v", err)
	}
	if len(confirmed) != 1 {
		t.Errorf("confirmed: got %d, want 1", len(confirmed))
	}
}

func TestStore_ReconcilePromotions(t *testing.T) {
	db := testutil.SetupTestDB(t)
	users := userstore.New(db)
	store := trainerstore.New(db, users, zap.NewNop())
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	// confirmed application whose user was never promoted
	fixtures.CreateUser(ctx, "stuck@example.com", models.RoleMember)
	fixtures.CreateApplication(ctx, "stuck@example.com", models.ApplicationConfirmed)

	// already consistent: confirmed and promoted
	fixtures.CreateUser(ctx, "done@example.com", models.RoleTrainer)
	fixtures.CreateApplication(ctx, "done@example.com", models.ApplicationConfirmed)

	repaired, err := store.ReconcilePromotions(ctx)
	if err != nil {
		t.Fatalf("ReconcilePromotions failed: %v", err)
	}
	if repaired != 1 {
		t.Errorf("repaired: got %d, want 1", repaired)
	}

	role, err := users.RoleByEmail(ctx, "stuck@example.com")
	if err != nil {
		t.Fatalf("RoleByEmail failed: %v", err)
	}
	if role != models.RoleTrainer {
		t.Errorf("role: got %q, want trainer", role)
	}
}
