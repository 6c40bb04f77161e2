//go:build integration

package repositories

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/escotech/escotech-api/pkg/apperrors"
	"github.com/escotech/escotech-api/pkg/models"
	"github.com/escotech/escotech-api/pkg/testhelpers"
)

func setupServiceTest(t *testing.T) (ServiceRepository, *testhelpers.TestDB) {
	t.Helper()
	testDB := testhelpers.GetTestDB(t)
	clearTable(t, testDB, "services")
	return NewServiceRepository(testDB.DB), testDB
}

func TestServiceRepository_FeaturesRoundTrip(t *testing.T) {
	repo, _ := setupServiceTest(t)
	ctx := context.Background()

	service := &models.Service{
		Title:       "Renovation",
		Description: "Full home renovation",
		Features:    []string{"Demolition", "Rebuild", "Finishing"},
		Icon:        "hammer",
		Order:       1,
	}
	if err := repo.Create(ctx, service); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	found, err := repo.FindByID(ctx, service.ID)
	if err != nil {
		t.Fatalf("FindByID failed: %v", err)
	}
	if !reflect.DeepEqual(found.Features, []string{"Demolition", "Rebuild", "Finishing"}) {
		t.Errorf("unexpected features %+v", found.Features)
	}
}

func TestServiceRepository_NilFeaturesStoredAsEmpty(t *testing.T) {
	repo, _ := setupServiceTest(t)
	ctx := context.Background()

	service := &models.Service{
		Title:       "Consulting",
		Description: "Construction consulting",
		Icon:        "clipboard",
	}
	if err := repo.Create(ctx, service); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	found, err := repo.FindByID(ctx, service.ID)
	if err != nil {
		t.Fatalf("FindByID failed: %v", err)
	}
	if found.Features == nil || len(found.Features) != 0 {
		t.Errorf("expected an empty features slice, got %#v", found.Features)
	}
}

func TestServiceRepository_Find_DisplayOrder(t *testing.T) {
	repo, _ := setupServiceTest(t)
	ctx := context.Background()

	for _, s := range []*models.Service{
		{Title: "Third", Description: "d", Icon: "i", Order: 3},
		{Title: "First", Description: "d", Icon: "i", Order: 1},
		{Title: "Second", Description: "d", Icon: "i", Order: 2},
	} {
		if err := repo.Create(ctx, s); err != nil {
			t.Fatalf("Create failed: %v", err)
		}
	}

	services, err := repo.Find(ctx)
	if err != nil {
		t.Fatalf("Find failed: %v", err)
	}
	if len(services) != 3 {
		t.Fatalf("expected 3 services, got %d", len(services))
	}
	for i, want := range []string{"First", "Second", "Third"} {
		if services[i].Title != want {
			t.Errorf("position %d: expected %q, got %q", i, want, services[i].Title)
		}
	}
}

func TestServiceRepository_UpdateReplacesFeatures(t *testing.T) {
	repo, _ := setupServiceTest(t)
	ctx := context.Background()

	service := &models.Service{
		Title:       "Roofing",
		Description: "Roof installation",
		Features:    []string{"Tiles"},
		Icon:        "roof",
	}
	if err := repo.Create(ctx, service); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	service.Features = []string{"Tiles", "Sheeting", "Gutters"}
	if err := repo.Update(ctx, service); err != nil {
		t.Fatalf("Update failed: %v", err)
	}

	found, err := repo.FindByID(ctx, service.ID)
	if err != nil {
		t.Fatalf("FindByID failed: %v", err)
	}
	if !reflect.DeepEqual(found.Features, []string{"Tiles", "Sheeting", "Gutters"}) {
		t.Errorf("unexpected features %+v", found.Features)
	}

	if err := repo.Delete(ctx, service.ID); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, err := repo.FindByID(ctx, service.ID); !errors.Is(err, apperrors.ErrNotFound) {
		t.Errorf("expected ErrNotFound after delete, got %v", err)
	}
}
