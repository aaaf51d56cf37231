package db

import (
	"context"
	"errors"
	"testing"

	"github.com/yi-nology/envprofile/biz/dal/model"
	"gorm.io/gorm"
)

func TestProfileDAO_Create(t *testing.T) {
	db := SetupTestDB(t)
	defer CleanupTestDB(t, db)
	dao := NewProfileDAO()
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		entity := &model.Profile{
			ProfileKey:      "staging",
			Description:     "Staging cluster",
			IsActive:        true,
			Production:      true,
			APIServerURL:    "https://staging.example.com/api/v2",
			AuthDomain:      "staging-tenant",
			AuthAudience:    "drinks",
			AuthClientID:    "client",
			AuthCallbackURL: "https://staging.example.com",
		}
		if err := dao.Create(ctx, db, entity); err != nil {
			t.Fatalf("Create failed: %v", err)
		}
		if entity.ID == 0 {
			t.Error("Expected ID to be set after creation")
		}

		found, err := dao.GetByKey(ctx, db, "staging")
		if err != nil {
			t.Fatalf("GetByKey failed: %v", err)
		}
		if !found.Production || found.AuthDomain != "staging-tenant" {
			t.Errorf("Unexpected stored profile: %+v", found)
		}
	})

	t.Run("NilEntity", func(t *testing.T) {
		err := dao.Create(ctx, db, nil)
		if err == nil || err.Error() != "profile must not be nil" {
			t.Errorf("Unexpected error: %v", err)
		}
	})

	t.Run("EmptyKey", func(t *testing.T) {
		if err := dao.Create(ctx, db, &model.Profile{Description: "No Key"}); err == nil {
			t.Error("Expected error for empty profile_key")
		}
	})

	t.Run("DuplicateKey", func(t *testing.T) {
		CreateTestProfile(t, db, "duplicate")
		if err := dao.Create(ctx, db, &model.Profile{ProfileKey: "duplicate"}); err == nil {
			t.Error("Expected error for duplicate profile_key")
		}
	})
}

func TestProfileDAO_UpdateWritesZeroValues(t *testing.T) {
	db := SetupTestDB(t)
	defer CleanupTestDB(t, db)
	dao := NewProfileDAO()
	ctx := context.Background()

	entity := CreateTestProfile(t, db, "update-test")
	entity.Production = true
	entity.AuthClientID = "client"
	if err := dao.Update(ctx, db, entity); err != nil {
		t.Fatalf("Update failed: %v", err)
	}

	entity.Production = false
	entity.IsActive = false
	entity.AuthClientID = ""
	entity.SortOrder = 3
	if err := dao.Update(ctx, db, entity); err != nil {
		t.Fatalf("Update failed: %v", err)
	}

	found, err := dao.GetByKey(ctx, db, "update-test")
	if err != nil {
		t.Fatalf("GetByKey failed: %v", err)
	}
	if found.Production || found.IsActive || found.AuthClientID != "" || found.SortOrder != 3 {
		t.Errorf("Zero values were not written: %+v", found)
	}

	t.Run("NilEntity", func(t *testing.T) {
		if err := dao.Update(ctx, db, nil); err == nil {
			t.Error("Expected error for nil entity")
		}
	})
}

func TestProfileDAO_Delete(t *testing.T) {
	db := SetupTestDB(t)
	defer CleanupTestDB(t, db)
	dao := NewProfileDAO()
	ctx := context.Background()

	CreateTestProfile(t, db, "delete-test")
	if err := dao.Delete(ctx, db, "delete-test"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, err := dao.GetByKey(ctx, db, "delete-test"); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Errorf("Expected ErrRecordNotFound, got: %v", err)
	}
	exists, err := dao.ExistsByKey(ctx, db, "delete-test")
	if err != nil || exists {
		t.Errorf("Expected soft-deleted profile to be hidden, got %v, %v", exists, err)
	}

	if err := dao.Delete(ctx, db, "non-existent-key"); err != nil {
		t.Errorf("Unexpected error: %v", err)
	}
}

func TestProfileDAO_List(t *testing.T) {
	db := SetupTestDB(t)
	defer CleanupTestDB(t, db)
	dao := NewProfileDAO()
	ctx := context.Background()

	for i, key := range []string{"b-env", "a-env", "c-env"} {
		entity := CreateTestProfile(t, db, key)
		entity.SortOrder = i % 2
		entity.IsActive = key != "c-env"
		if err := dao.Update(ctx, db, entity); err != nil {
			t.Fatalf("Setup failed for %s: %v", key, err)
		}
	}

	t.Run("ListAll", func(t *testing.T) {
		list, err := dao.List(ctx, db, nil)
		if err != nil {
			t.Fatalf("List failed: %v", err)
		}
		if len(list) != 3 {
			t.Fatalf("Expected 3 profiles, got %d", len(list))
		}
		// sort_order 0: b-env, c-env; sort_order 1: a-env
		want := []string{"b-env", "c-env", "a-env"}
		for i := range want {
			if list[i].ProfileKey != want[i] {
				t.Errorf("position %d: expected %s, got %s", i, want[i], list[i].ProfileKey)
			}
		}
	})

	t.Run("ListInactive", func(t *testing.T) {
		inactive := false
		list, err := dao.List(ctx, db, &inactive)
		if err != nil {
			t.Fatalf("List failed: %v", err)
		}
		if len(list) != 1 || list[0].ProfileKey != "c-env" {
			t.Errorf("Unexpected inactive list: %+v", list)
		}
	})
}

func TestPublicationDAO(t *testing.T) {
	db := SetupTestDB(t)
	defer CleanupTestDB(t, db)
	dao := NewPublicationDAO()
	ctx := context.Background()

	for i, format := range []string{"json", "yaml", "json"} {
		err := dao.Create(ctx, db, &model.Publication{
			RevisionID: string(rune('a' + i)),
			ProfileKey: "local",
			Format:     format,
			ObjectKey:  "local/environment." + format,
		})
		if err != nil {
			t.Fatalf("Create failed: %v", err)
		}
	}

	list, err := dao.ListByProfile(ctx, db, "local", 2)
	if err != nil {
		t.Fatalf("ListByProfile failed: %v", err)
	}
	if len(list) != 2 || list[0].RevisionID != "c" {
		t.Errorf("Unexpected publications: %+v", list)
	}
	if err := dao.Create(ctx, db, nil); err == nil {
		t.Error("Expected error for nil publication")
	}

	if err := dao.Create(ctx, db, &model.Publication{RevisionID: "d", ProfileKey: "docker", Format: "json", ObjectKey: "docker/environment.json"}); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if err := dao.DeleteByProfile(ctx, db, "local"); err != nil {
		t.Fatalf("DeleteByProfile failed: %v", err)
	}
	if list, _ := dao.ListByProfile(ctx, db, "local", 10); len(list) != 0 {
		t.Errorf("Publications survived DeleteByProfile: %+v", list)
	}
	if list, _ := dao.ListByProfile(ctx, db, "docker", 10); len(list) != 1 {
		t.Errorf("DeleteByProfile touched another profile: %+v", list)
	}
}
