package database

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"shikkha/internal/domain"
	"shikkha/internal/domain/entities"
)

// openTestDB connects to the database named by SHIKKHA_TEST_DATABASE_URL and
// applies migrations. Tests using it are skipped when the variable is unset.
func openTestDB(t *testing.T) DB {
	t.Helper()
	dsn := os.Getenv("SHIKKHA_TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("SHIKKHA_TEST_DATABASE_URL not set")
	}
	if err := RunMigrations(dsn); err != nil {
		t.Fatalf("RunMigrations() error = %v", err)
	}
	ctx := context.Background()
	pool, err := NewPool(ctx, dsn)
	if err != nil {
		t.Fatalf("NewPool() error = %v", err)
	}
	t.Cleanup(pool.Close)
	if _, err := pool.Exec(ctx, `TRUNCATE posts, admins RESTART IDENTITY`); err != nil {
		t.Fatalf("truncate: %v", err)
	}
	return pool
}

func TestPostRepositoryLifecycle(t *testing.T) {
	db := openTestDB(t)
	repo := NewPostRepository(db)
	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Second)

	draft := &entities.Post{Slug: "hello", Locale: entities.English, Title: "Hello", Body: "Body", Author: "Rina"}
	if err := repo.Create(ctx, draft); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if draft.ID == 0 || draft.CreatedAt.IsZero() {
		t.Fatalf("Create() did not fill generated columns: %+v", draft)
	}

	dup := &entities.Post{Slug: "hello", Locale: entities.English, Title: "Again", Body: "x"}
	if err := repo.Create(ctx, dup); !errors.Is(err, domain.ErrConflict) {
		t.Fatalf("duplicate Create() error = %v", err)
	}
	sameSlugOtherLocale := &entities.Post{Slug: "hello", Locale: entities.Bengali, Title: "হ্যালো", Body: "x"}
	if err := repo.Create(ctx, sameSlugOtherLocale); err != nil {
		t.Fatalf("Create() in other locale error = %v", err)
	}

	if got, _ := repo.ListPublished(ctx, entities.English, now); len(got) != 0 {
		t.Fatalf("draft listed as published: %v", got)
	}

	draft.Published = true
	draft.PublishedAt = now.Add(-time.Minute)
	if err := repo.Update(ctx, draft); err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	got, err := repo.ListPublished(ctx, entities.English, now)
	if err != nil || len(got) != 1 || got[0].ID != draft.ID {
		t.Fatalf("ListPublished() = %v, %v", got, err)
	}

	due, err := repo.FindDueForAnnouncement(ctx, now)
	if err != nil || len(due) != 1 {
		t.Fatalf("FindDueForAnnouncement() = %v, %v", due, err)
	}
	if err := repo.MarkAnnounced(ctx, draft.ID, now); err != nil {
		t.Fatalf("MarkAnnounced() error = %v", err)
	}
	if due, _ := repo.FindDueForAnnouncement(ctx, now); len(due) != 0 {
		t.Fatalf("announced post still due: %v", due)
	}

	bySlug, err := repo.FindBySlug(ctx, entities.English, "hello")
	if err != nil || bySlug.ID != draft.ID || bySlug.AnnouncedAt.IsZero() {
		t.Fatalf("FindBySlug() = %+v, %v", bySlug, err)
	}

	if err := repo.Delete(ctx, draft.ID); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if err := repo.Delete(ctx, draft.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("second Delete() error = %v", err)
	}
	if _, err := repo.FindByID(ctx, draft.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("FindByID() after delete error = %v", err)
	}
}

func TestAdminRepositoryUpsert(t *testing.T) {
	db := openTestDB(t)
	repo := NewAdminRepository(db)
	ctx := context.Background()

	a := &entities.Admin{Email: "Admin@Example.com", Name: "Admin", Role: entities.RoleAdmin, PasswordHash: "h1"}
	if err := repo.Upsert(ctx, a); err != nil {
		t.Fatalf("Upsert() error = %v", err)
	}
	a.PasswordHash = "h2"
	if err := repo.Upsert(ctx, a); err != nil {
		t.Fatalf("second Upsert() error = %v", err)
	}
	got, err := repo.FindByEmail(ctx, "admin@example.com")
	if err != nil || got.PasswordHash != "h2" || got.ID != a.ID {
		t.Fatalf("FindByEmail() = %+v, %v", got, err)
	}
	if _, err := repo.FindByEmail(ctx, "nobody@example.com"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("FindByEmail(unknown) error = %v", err)
	}
}
