//go:build integration

package repositories

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/escotech/escotech-api/pkg/apperrors"
	"github.com/escotech/escotech-api/pkg/models"
	"github.com/escotech/escotech-api/pkg/testhelpers"
)

func setupMessageTest(t *testing.T) (MessageRepository, *testhelpers.TestDB) {
	t.Helper()
	testDB := testhelpers.GetTestDB(t)
	clearTable(t, testDB, "messages")
	return NewMessageRepository(testDB.DB), testDB
}

func insertMessage(t *testing.T, testDB *testhelpers.TestDB, fullName string, createdAt time.Time) {
	t.Helper()
	_, err := testDB.DB.Exec(context.Background(), `
		INSERT INTO messages (full_name, email, phone, message, is_read, created_at, updated_at)
		VALUES ($1, 'visitor@example.com', '+250788000000', 'I would like a quote', false, $2, $2)`,
		fullName, createdAt)
	if err != nil {
		t.Fatalf("failed to insert message: %v", err)
	}
}

func TestMessageRepository_Find_NewestFirst(t *testing.T) {
	repo, testDB := setupMessageTest(t)

	base := time.Now().Add(-time.Hour)
	insertMessage(t, testDB, "Oldest", base)
	insertMessage(t, testDB, "Newest", base.Add(2*time.Minute))
	insertMessage(t, testDB, "Middle", base.Add(time.Minute))

	messages, err := repo.Find(context.Background())
	if err != nil {
		t.Fatalf("Find failed: %v", err)
	}
	if len(messages) != 3 {
		t.Fatalf("expected 3 messages, got %d", len(messages))
	}
	for i, want := range []string{"Newest", "Middle", "Oldest"} {
		if messages[i].FullName != want {
			t.Errorf("position %d: expected %q, got %q", i, want, messages[i].FullName)
		}
	}
}

func TestMessageRepository_CreateStartsUnread(t *testing.T) {
	repo, _ := setupMessageTest(t)
	ctx := context.Background()

	message := &models.Message{
		FullName: "Claudine U.",
		Email:    "claudine@example.com",
		Phone:    "+250788123456",
		Message:  "Do you handle commercial builds?",
	}
	if err := repo.Create(ctx, message); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	found, err := repo.FindByID(ctx, message.ID)
	if err != nil {
		t.Fatalf("FindByID failed: %v", err)
	}
	if found.IsRead {
		t.Error("expected a new message to start unread")
	}
	if found.FullName != "Claudine U." || found.Phone != "+250788123456" {
		t.Errorf("unexpected message %+v", found)
	}
}

func TestMessageRepository_SetRead(t *testing.T) {
	repo, _ := setupMessageTest(t)
	ctx := context.Background()

	message := &models.Message{
		FullName: "Eric H.",
		Email:    "eric@example.com",
		Phone:    "+250788654321",
		Message:  "Please call me back",
	}
	if err := repo.Create(ctx, message); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	updated, err := repo.SetRead(ctx, message.ID, true)
	if err != nil {
		t.Fatalf("SetRead failed: %v", err)
	}
	if !updated.IsRead {
		t.Error("expected the returned message to be read")
	}

	reverted, err := repo.SetRead(ctx, message.ID, false)
	if err != nil {
		t.Fatalf("SetRead back failed: %v", err)
	}
	if reverted.IsRead {
		t.Error("expected the returned message to be unread again")
	}

	if _, err := repo.SetRead(ctx, message.ID+1000, true); !errors.Is(err, apperrors.ErrNotFound) {
		t.Errorf("expected ErrNotFound for unknown id, got %v", err)
	}
}

func TestMessageRepository_Delete(t *testing.T) {
	repo, _ := setupMessageTest(t)
	ctx := context.Background()

	message := &models.Message{
		FullName: "Gone Soon",
		Email:    "gone@example.com",
		Phone:    "+250788111222",
		Message:  "Spam, probably",
	}
	if err := repo.Create(ctx, message); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if err := repo.Delete(ctx, message.ID); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, err := repo.FindByID(ctx, message.ID); !errors.Is(err, apperrors.ErrNotFound) {
		t.Errorf("expected ErrNotFound after delete, got %v", err)
	}
	if err := repo.Delete(ctx, message.ID); !errors.Is(err, apperrors.ErrNotFound) {
		t.Errorf("expected ErrNotFound deleting twice, got %v", err)
	}
}
