package services

import (
	"testing"

	"clubhub/internal/testutil"
)

func TestCreateTag(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewTagService(db)

		tag, err := svc.CreateTag("Summer Camp")
		testutil.AssertNoError(t, err)

		if tag.Slug != "summer-camp" {
			t.Errorf("expected slug summer-camp, got %s", tag.Slug)
		}
	})

	t.Run("duplicate_name_case_insensitive", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewTagService(db)

		_, err := svc.CreateTag("Tournament")
		testutil.AssertNoError(t, err)
		_, err = svc.CreateTag("TOURNAMENT")
		testutil.AssertAppError(t, err, "DUPLICATE_TAG")
	})

	t.Run("slug_collision_disambiguated", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewTagService(db)

		a, err := svc.CreateTag("C++")
		testutil.AssertNoError(t, err)
		b, err := svc.CreateTag("C#")
		testutil.AssertNoError(t, err)

		if a.Slug != "c" {
			t.Errorf("expected slug c, got %s", a.Slug)
		}
		if b.Slug != "c-2" {
			t.Errorf("expected slug c-2, got %s", b.Slug)
		}
	})

	t.Run("invalid_name", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewTagService(db)

		_, err := svc.CreateTag("!")
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})
}

func TestUpdateTag(t *testing.T) {
	t.Run("rename_rederives_slug", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewTagService(db)

		tag, err := svc.CreateTag("Summer Camp")
		testutil.AssertNoError(t, err)

		updated, err := svc.UpdateTag(tag.ID, "Winter Camp")
		testutil.AssertNoError(t, err)

		if updated.Name != "Winter Camp" {
			t.Errorf("expected name Winter Camp, got %s", updated.Name)
		}
		if updated.Slug != "winter-camp" {
			t.Errorf("expected slug winter-camp, got %s", updated.Slug)
		}
	})

	t.Run("rename_to_existing_name", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewTagService(db)

		_, err := svc.CreateTag("Tournament")
		testutil.AssertNoError(t, err)
		other, err := svc.CreateTag("Training")
		testutil.AssertNoError(t, err)

		_, err = svc.UpdateTag(other.ID, "tournament")
		testutil.AssertAppError(t, err, "DUPLICATE_TAG")
	})

	t.Run("not_found", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewTagService(db)

		_, err := svc.UpdateTag("0198c8b2-0000-7000-8000-000000000000", "Ghost")
		testutil.AssertAppError(t, err, "TAG_NOT_FOUND")
	})
}

func TestDeleteTag(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := NewTagService(db)

	tag, err := svc.CreateTag("Tournament")
	testutil.AssertNoError(t, err)

	testutil.AssertNoError(t, svc.DeleteTag(tag.ID))

	_, err = svc.GetTagByID(tag.ID)
	testutil.AssertAppError(t, err, "TAG_NOT_FOUND")

	err = svc.DeleteTag(tag.ID)
	testutil.AssertAppError(t, err, "TAG_NOT_FOUND")

	// The deleted row frees its name and slug for a fresh tag.
	recreated, err := svc.CreateTag("Tournament")
	testutil.AssertNoError(t, err)
	if recreated.Slug != "tournament" {
		t.Errorf("expected freed slug tournament, got %s", recreated.Slug)
	}
}
