package services

import (
	"strings"
	"testing"

	"clubhub/internal/models"
	"clubhub/internal/pagination"
	"clubhub/internal/testutil"
)

func strPtr(s string) *string { return &s }

func TestCreateCategory(t *testing.T) {
	t.Run("root", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCategoryService(db)

		cat, err := svc.CreateCategory("Sports", "All sports sections", nil)
		testutil.AssertNoError(t, err)

		if cat.ID == "" {
			t.Fatal("expected non-empty category ID")
		}
		if cat.Slug != "sports" {
			t.Errorf("expected slug sports, got %s", cat.Slug)
		}
		if cat.ParentID != nil {
			t.Errorf("expected nil parent, got %v", *cat.ParentID)
		}
	})

	t.Run("nested_slug_paths", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCategoryService(db)

		sports, err := svc.CreateCategory("Sports", "", nil)
		testutil.AssertNoError(t, err)
		football, err := svc.CreateCategory("Football", "", &sports.ID)
		testutil.AssertNoError(t, err)
		youth, err := svc.CreateCategory("Youth Teams", "", &football.ID)
		testutil.AssertNoError(t, err)

		if football.Slug != "sports/football" {
			t.Errorf("expected slug sports/football, got %s", football.Slug)
		}
		if youth.Slug != "sports/football/youth-teams" {
			t.Errorf("expected slug sports/football/youth-teams, got %s", youth.Slug)
		}
	})

	t.Run("diacritics_stripped", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCategoryService(db)

		cat, err := svc.CreateCategory("Café Évents", "", nil)
		testutil.AssertNoError(t, err)
		if cat.Slug != "cafe-events" {
			t.Errorf("expected slug cafe-events, got %s", cat.Slug)
		}
	})

	t.Run("segment_collision_disambiguated", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCategoryService(db)

		cpp, err := svc.CreateCategory("C++", "", nil)
		testutil.AssertNoError(t, err)
		csharp, err := svc.CreateCategory("C#", "", nil)
		testutil.AssertNoError(t, err)

		if cpp.Slug != "c" {
			t.Errorf("expected slug c, got %s", cpp.Slug)
		}
		if csharp.Slug != "c-2" {
			t.Errorf("expected slug c-2, got %s", csharp.Slug)
		}
	})

	t.Run("duplicate_sibling_name", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCategoryService(db)

		_, err := svc.CreateCategory("Events", "", nil)
		testutil.AssertNoError(t, err)
		_, err = svc.CreateCategory("events", "", nil)
		testutil.AssertAppError(t, err, "DUPLICATE_CATEGORY_NAME")
	})

	t.Run("same_name_under_different_parents", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCategoryService(db)

		sports, err := svc.CreateCategory("Sports", "", nil)
		testutil.AssertNoError(t, err)
		culture, err := svc.CreateCategory("Culture", "", nil)
		testutil.AssertNoError(t, err)

		a, err := svc.CreateCategory("News", "", &sports.ID)
		testutil.AssertNoError(t, err)
		b, err := svc.CreateCategory("News", "", &culture.ID)
		testutil.AssertNoError(t, err)

		if a.Slug != "sports/news" {
			t.Errorf("expected slug sports/news, got %s", a.Slug)
		}
		if b.Slug != "culture/news" {
			t.Errorf("expected slug culture/news, got %s", b.Slug)
		}
	})

	t.Run("invalid_parent", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCategoryService(db)

		nonexistent := "0198c8b2-0000-7000-8000-000000000000"
		_, err := svc.CreateCategory("Orphan", "", &nonexistent)
		testutil.AssertAppError(t, err, "CATEGORY_NOT_FOUND")
	})

	t.Run("name_without_alphanumerics", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCategoryService(db)

		_, err := svc.CreateCategory("!!!", "", nil)
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})

	t.Run("name_too_short", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCategoryService(db)

		_, err := svc.CreateCategory("A", "", nil)
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})

	t.Run("overlong_slug_path_rejected", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCategoryService(db)

		// Three nested 100-character segments join to 302 characters,
		// past the 255 limit; the third create must fail before writing.
		long := strings.Repeat("x", 100)
		a, err := svc.CreateCategory(long, "", nil)
		testutil.AssertNoError(t, err)
		b, err := svc.CreateCategory(long, "", &a.ID)
		testutil.AssertNoError(t, err)

		_, err = svc.CreateCategory(long, "", &b.ID)
		testutil.AssertAppError(t, err, "INVALID_SLUG")
	})
}

func TestUpdateCategory(t *testing.T) {
	t.Run("rename_cascades_to_descendants", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCategoryService(db)

		sports, err := svc.CreateCategory("Sports", "", nil)
		testutil.AssertNoError(t, err)
		football, err := svc.CreateCategory("Football", "", &sports.ID)
		testutil.AssertNoError(t, err)
		youth, err := svc.CreateCategory("Youth Teams", "", &football.ID)
		testutil.AssertNoError(t, err)

		renamed, err := svc.UpdateCategory(sports.ID, UpdateCategoryInput{Name: strPtr("Athletics")})
		testutil.AssertNoError(t, err)

		if renamed.Slug != "athletics" {
			t.Errorf("expected slug athletics, got %s", renamed.Slug)
		}

		reloadedFootball, err := svc.GetCategoryByID(football.ID)
		testutil.AssertNoError(t, err)
		if reloadedFootball.Slug != "athletics/football" {
			t.Errorf("expected slug athletics/football, got %s", reloadedFootball.Slug)
		}

		reloadedYouth, err := svc.GetCategoryByID(youth.ID)
		testutil.AssertNoError(t, err)
		if reloadedYouth.Slug != "athletics/football/youth-teams" {
			t.Errorf("expected slug athletics/football/youth-teams, got %s", reloadedYouth.Slug)
		}
	})

	t.Run("move_cascades_to_descendants", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCategoryService(db)

		sports, err := svc.CreateCategory("Sports", "", nil)
		testutil.AssertNoError(t, err)
		archive, err := svc.CreateCategory("Archive", "", nil)
		testutil.AssertNoError(t, err)
		football, err := svc.CreateCategory("Football", "", &sports.ID)
		testutil.AssertNoError(t, err)
		youth, err := svc.CreateCategory("Youth Teams", "", &football.ID)
		testutil.AssertNoError(t, err)

		moved, err := svc.UpdateCategory(football.ID, UpdateCategoryInput{ParentID: &archive.ID})
		testutil.AssertNoError(t, err)

		if moved.Slug != "archive/football" {
			t.Errorf("expected slug archive/football, got %s", moved.Slug)
		}
		if moved.ParentID == nil || *moved.ParentID != archive.ID {
			t.Errorf("expected parent %s, got %v", archive.ID, moved.ParentID)
		}

		reloadedYouth, err := svc.GetCategoryByID(youth.ID)
		testutil.AssertNoError(t, err)
		if reloadedYouth.Slug != "archive/football/youth-teams" {
			t.Errorf("expected slug archive/football/youth-teams, got %s", reloadedYouth.Slug)
		}
	})

	t.Run("move_to_root", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCategoryService(db)

		sports, err := svc.CreateCategory("Sports", "", nil)
		testutil.AssertNoError(t, err)
		football, err := svc.CreateCategory("Football", "", &sports.ID)
		testutil.AssertNoError(t, err)

		moved, err := svc.UpdateCategory(football.ID, UpdateCategoryInput{ParentID: strPtr("")})
		testutil.AssertNoError(t, err)

		if moved.ParentID != nil {
			t.Errorf("expected nil parent, got %v", *moved.ParentID)
		}
		if moved.Slug != "football" {
			t.Errorf("expected slug football, got %s", moved.Slug)
		}
	})

	t.Run("combined_rename_and_move", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCategoryService(db)

		sports, err := svc.CreateCategory("Sports", "", nil)
		testutil.AssertNoError(t, err)
		archive, err := svc.CreateCategory("Archive", "", nil)
		testutil.AssertNoError(t, err)
		football, err := svc.CreateCategory("Football", "", &sports.ID)
		testutil.AssertNoError(t, err)
		youth, err := svc.CreateCategory("Youth Teams", "", &football.ID)
		testutil.AssertNoError(t, err)

		moved, err := svc.UpdateCategory(football.ID, UpdateCategoryInput{
			Name:     strPtr("Soccer"),
			ParentID: &archive.ID,
		})
		testutil.AssertNoError(t, err)

		if moved.Slug != "archive/soccer" {
			t.Errorf("expected slug archive/soccer, got %s", moved.Slug)
		}

		reloadedYouth, err := svc.GetCategoryByID(youth.ID)
		testutil.AssertNoError(t, err)
		if reloadedYouth.Slug != "archive/soccer/youth-teams" {
			t.Errorf("expected slug archive/soccer/youth-teams, got %s", reloadedYouth.Slug)
		}
	})

	t.Run("self_parent_rejected", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCategoryService(db)

		sports, err := svc.CreateCategory("Sports", "", nil)
		testutil.AssertNoError(t, err)

		_, err = svc.UpdateCategory(sports.ID, UpdateCategoryInput{ParentID: &sports.ID})
		testutil.AssertAppError(t, err, "SELF_PARENT_CATEGORY")
	})

	t.Run("circular_move_rejected", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCategoryService(db)

		sports, err := svc.CreateCategory("Sports", "", nil)
		testutil.AssertNoError(t, err)
		football, err := svc.CreateCategory("Football", "", &sports.ID)
		testutil.AssertNoError(t, err)
		youth, err := svc.CreateCategory("Youth Teams", "", &football.ID)
		testutil.AssertNoError(t, err)

		_, err = svc.UpdateCategory(sports.ID, UpdateCategoryInput{ParentID: &youth.ID})
		testutil.AssertAppError(t, err, "CIRCULAR_CATEGORY_MOVE")

		// Tree must be untouched after the rejected move.
		reloaded, err := svc.GetCategoryByID(sports.ID)
		testutil.AssertNoError(t, err)
		if reloaded.ParentID != nil {
			t.Errorf("expected sports to remain a root, got parent %v", *reloaded.ParentID)
		}
		if reloaded.Slug != "sports" {
			t.Errorf("expected slug sports, got %s", reloaded.Slug)
		}
	})

	t.Run("duplicate_name_in_target_parent", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCategoryService(db)

		sports, err := svc.CreateCategory("Sports", "", nil)
		testutil.AssertNoError(t, err)
		culture, err := svc.CreateCategory("Culture", "", nil)
		testutil.AssertNoError(t, err)
		_, err = svc.CreateCategory("News", "", &culture.ID)
		testutil.AssertNoError(t, err)
		sportsNews, err := svc.CreateCategory("News", "", &sports.ID)
		testutil.AssertNoError(t, err)

		_, err = svc.UpdateCategory(sportsNews.ID, UpdateCategoryInput{ParentID: &culture.ID})
		testutil.AssertAppError(t, err, "DUPLICATE_CATEGORY_NAME")
	})

	t.Run("noop_rename_keeps_slug", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCategoryService(db)

		// "C#" collapses to "c" which collides with "C++", so it gets "c-2".
		_, err := svc.CreateCategory("C++", "", nil)
		testutil.AssertNoError(t, err)
		csharp, err := svc.CreateCategory("C#", "", nil)
		testutil.AssertNoError(t, err)
		if csharp.Slug != "c-2" {
			t.Fatalf("expected slug c-2, got %s", csharp.Slug)
		}

		// Re-submitting the same name must not re-disambiguate to c-3.
		updated, err := svc.UpdateCategory(csharp.ID, UpdateCategoryInput{Name: strPtr("C#")})
		testutil.AssertNoError(t, err)
		if updated.Slug != "c-2" {
			t.Errorf("expected slug to stay c-2, got %s", updated.Slug)
		}
	})

	t.Run("description_only_update", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCategoryService(db)

		sports, err := svc.CreateCategory("Sports", "", nil)
		testutil.AssertNoError(t, err)

		updated, err := svc.UpdateCategory(sports.ID, UpdateCategoryInput{Description: strPtr("All sports sections")})
		testutil.AssertNoError(t, err)

		if updated.Description != "All sports sections" {
			t.Errorf("expected updated description, got %s", updated.Description)
		}
		if updated.Slug != "sports" {
			t.Errorf("expected slug to stay sports, got %s", updated.Slug)
		}
	})

	t.Run("overlong_cascade_rejected", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCategoryService(db)

		// news/<100 chars>/<100 chars> fits; renaming the root to a
		// 100-character name would push the grandchild's slug to 302
		// characters, so the rename must fail with the subtree untouched.
		long := strings.Repeat("x", 100)
		root, err := svc.CreateCategory("News", "", nil)
		testutil.AssertNoError(t, err)
		mid, err := svc.CreateCategory(long, "", &root.ID)
		testutil.AssertNoError(t, err)
		leaf, err := svc.CreateCategory(long, "", &mid.ID)
		testutil.AssertNoError(t, err)

		_, err = svc.UpdateCategory(root.ID, UpdateCategoryInput{Name: strPtr(strings.Repeat("y", 100))})
		testutil.AssertAppError(t, err, "INVALID_SLUG")

		reloadedRoot, err := svc.GetCategoryByID(root.ID)
		testutil.AssertNoError(t, err)
		if reloadedRoot.Name != "News" || reloadedRoot.Slug != "news" {
			t.Errorf("expected root unchanged, got name %q slug %q", reloadedRoot.Name, reloadedRoot.Slug)
		}
		reloadedLeaf, err := svc.GetCategoryByID(leaf.ID)
		testutil.AssertNoError(t, err)
		if reloadedLeaf.Slug != "news/"+long+"/"+long {
			t.Errorf("expected leaf slug unchanged, got %q", reloadedLeaf.Slug)
		}
	})

	t.Run("not_found", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCategoryService(db)

		_, err := svc.UpdateCategory("0198c8b2-0000-7000-8000-000000000000", UpdateCategoryInput{Name: strPtr("Ghost")})
		testutil.AssertAppError(t, err, "CATEGORY_NOT_FOUND")
	})
}

func TestDeleteCategory(t *testing.T) {
	t.Run("deletes_entire_subtree", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCategoryService(db)

		sports, err := svc.CreateCategory("Sports", "", nil)
		testutil.AssertNoError(t, err)
		football, err := svc.CreateCategory("Football", "", &sports.ID)
		testutil.AssertNoError(t, err)
		youth, err := svc.CreateCategory("Youth Teams", "", &football.ID)
		testutil.AssertNoError(t, err)
		other, err := svc.CreateCategory("Culture", "", nil)
		testutil.AssertNoError(t, err)

		testutil.AssertNoError(t, svc.DeleteCategory(sports.ID))

		for _, id := range []string{sports.ID, football.ID, youth.ID} {
			if _, err := svc.GetCategoryByID(id); err == nil {
				t.Errorf("expected category %s to be deleted", id)
			}
		}

		// Unrelated subtrees survive.
		if _, err := svc.GetCategoryByID(other.ID); err != nil {
			t.Errorf("expected culture to survive, got %v", err)
		}
	})

	t.Run("frees_name_for_reuse", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCategoryService(db)

		sports, err := svc.CreateCategory("Sports", "", nil)
		testutil.AssertNoError(t, err)
		testutil.AssertNoError(t, svc.DeleteCategory(sports.ID))

		// The deleted row still carries the slug "sports"; only live rows
		// count for uniqueness, so the recreated category gets it back
		// without a suffix.
		recreated, err := svc.CreateCategory("Sports", "", nil)
		testutil.AssertNoError(t, err)
		if recreated.Slug != "sports" {
			t.Errorf("expected freed slug sports, got %s", recreated.Slug)
		}
	})

	t.Run("not_found", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCategoryService(db)

		err := svc.DeleteCategory("0198c8b2-0000-7000-8000-000000000000")
		testutil.AssertAppError(t, err, "CATEGORY_NOT_FOUND")
	})
}

func TestGetCategoryBySlug(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := NewCategoryService(db)

	sports, err := svc.CreateCategory("Sports", "", nil)
	testutil.AssertNoError(t, err)
	football, err := svc.CreateCategory("Football", "", &sports.ID)
	testutil.AssertNoError(t, err)

	found, err := svc.GetCategoryBySlug("sports/football")
	testutil.AssertNoError(t, err)
	if found.ID != football.ID {
		t.Errorf("expected %s, got %s", football.ID, found.ID)
	}

	_, err = svc.GetCategoryBySlug("sports/handball")
	testutil.AssertAppError(t, err, "CATEGORY_NOT_FOUND")
}

func TestGetCategoryTree(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := NewCategoryService(db)

	sports, err := svc.CreateCategory("Sports", "", nil)
	testutil.AssertNoError(t, err)
	volleyball, err := svc.CreateCategory("Volleyball", "", &sports.ID)
	testutil.AssertNoError(t, err)
	beach, err := svc.CreateCategory("Beach", "", &volleyball.ID)
	testutil.AssertNoError(t, err)
	_, err = svc.CreateCategory("Handball", "", &sports.ID)
	testutil.AssertNoError(t, err)
	_, err = svc.CreateCategory("Culture", "", nil)
	testutil.AssertNoError(t, err)

	roots, err := svc.GetCategoryTree()
	testutil.AssertNoError(t, err)

	if len(roots) != 2 {
		t.Fatalf("expected 2 roots, got %d", len(roots))
	}
	var sportsNode *models.Category
	for _, r := range roots {
		if r.ID == sports.ID {
			sportsNode = r
		}
	}
	if sportsNode == nil {
		t.Fatal("sports root missing from tree")
	}
	if len(sportsNode.Children) != 2 {
		t.Fatalf("expected 2 children under sports, got %d", len(sportsNode.Children))
	}

	// Grandchildren must survive assembly order: volleyball is attached to
	// sports before beach is attached to volleyball.
	var volleyballNode *models.Category
	for _, c := range sportsNode.Children {
		if c.ID == volleyball.ID {
			volleyballNode = c
		}
	}
	if volleyballNode == nil {
		t.Fatal("volleyball missing under sports")
	}
	if len(volleyballNode.Children) != 1 || volleyballNode.Children[0].ID != beach.ID {
		t.Errorf("expected beach under volleyball, got %d children", len(volleyballNode.Children))
	}
}

func TestListCategories(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := NewCategoryService(db)

	sports, err := svc.CreateCategory("Sports", "", nil)
	testutil.AssertNoError(t, err)
	_, err = svc.CreateCategory("Football", "", &sports.ID)
	testutil.AssertNoError(t, err)
	_, err = svc.CreateCategory("Culture", "", nil)
	testutil.AssertNoError(t, err)

	result, err := svc.ListCategories(pagination.PageRequest{Page: 1, PageSize: 2})
	testutil.AssertNoError(t, err)

	if result.TotalItems != 3 {
		t.Errorf("expected 3 total items, got %d", result.TotalItems)
	}
	if len(result.Data) != 2 {
		t.Errorf("expected 2 items on page, got %d", len(result.Data))
	}
	if result.TotalPages != 2 {
		t.Errorf("expected 2 total pages, got %d", result.TotalPages)
	}
	if !result.HasNext {
		t.Error("expected HasNext on first of two pages")
	}
}
