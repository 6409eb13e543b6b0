package services

import (
	"testing"

	"clubhub/internal/testutil"
)

func TestCreateMedia(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewMediaService(db)
		user := testutil.CreateTestUser(t, db)

		media, err := svc.CreateMedia(user.ID, CreateMediaInput{
			FileName:    "team-photo.jpg",
			StoragePath: "uploads/2026/team-photo.jpg",
			MimeType:    "image/jpeg",
			SizeBytes:   204800,
			AltText:     "The first team after the cup final",
		})
		testutil.AssertNoError(t, err)

		if media.UploadedByID != user.ID {
			t.Errorf("expected uploader %s, got %s", user.ID, media.UploadedByID)
		}
		if media.ID == "" {
			t.Error("expected generated ID")
		}
	})

	t.Run("missing_file_name", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewMediaService(db)
		user := testutil.CreateTestUser(t, db)

		_, err := svc.CreateMedia(user.ID, CreateMediaInput{
			FileName:    "   ",
			StoragePath: "uploads/x.jpg",
		})
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})

	t.Run("negative_size", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewMediaService(db)
		user := testutil.CreateTestUser(t, db)

		_, err := svc.CreateMedia(user.ID, CreateMediaInput{
			FileName:    "x.jpg",
			StoragePath: "uploads/x.jpg",
			SizeBytes:   -1,
		})
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})
}

func TestUpdateMedia(t *testing.T) {
	t.Run("rename_and_alt_text", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewMediaService(db)
		user := testutil.CreateTestUser(t, db)
		media := testutil.CreateTestMedia(t, db, user.ID)

		updated, err := svc.UpdateMedia(media.ID, strPtr("renamed.jpg"), strPtr("A caption"))
		testutil.AssertNoError(t, err)

		fetched, err := svc.GetMediaByID(updated.ID)
		testutil.AssertNoError(t, err)
		if fetched.FileName != "renamed.jpg" {
			t.Errorf("expected renamed.jpg, got %s", fetched.FileName)
		}
		if fetched.AltText != "A caption" {
			t.Errorf("expected alt text update, got %q", fetched.AltText)
		}
		if fetched.StoragePath != media.StoragePath {
			t.Error("storage path must not change on update")
		}
	})

	t.Run("empty_file_name_rejected", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewMediaService(db)
		user := testutil.CreateTestUser(t, db)
		media := testutil.CreateTestMedia(t, db, user.ID)

		_, err := svc.UpdateMedia(media.ID, strPtr("  "), nil)
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})

	t.Run("not_found", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewMediaService(db)

		_, err := svc.UpdateMedia("0198c8b2-0000-7000-8000-000000000000", strPtr("x.jpg"), nil)
		testutil.AssertAppError(t, err, "MEDIA_NOT_FOUND")
	})
}

func TestDeleteMedia(t *testing.T) {
	t.Run("deletes_record", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewMediaService(db)
		user := testutil.CreateTestUser(t, db)
		media := testutil.CreateTestMedia(t, db, user.ID)

		testutil.AssertNoError(t, svc.DeleteMedia(media.ID))

		_, err := svc.GetMediaByID(media.ID)
		testutil.AssertAppError(t, err, "MEDIA_NOT_FOUND")
	})

	t.Run("not_found", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewMediaService(db)

		err := svc.DeleteMedia("0198c8b2-0000-7000-8000-000000000000")
		testutil.AssertAppError(t, err, "MEDIA_NOT_FOUND")
	})
}
