// briefly/sources/db/dao/dao.summary_test.go
package dao

import (
	"context"
	"fmt"
	"testing"
	"time"

	"briefly/briefly/sources/db/models"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDAO(t *testing.T) *SummaryDAO {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&models.Summary{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return NewSummaryDAO(db)
}

func seedSummary(t *testing.T, dao *SummaryDAO, userID, title string) *models.Summary {
	t.Helper()
	s := &models.Summary{
		UserID:  userID,
		Title:   title,
		Content: "# " + title + "\n\n• Point: detail",
		URL:     "https://example.com/" + title,
	}
	if err := dao.Create(context.Background(), s); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	return s
}

func TestCreateAssignsID(t *testing.T) {
	dao := newTestDAO(t)
	s := seedSummary(t, dao, "user-a", "first")
	if s.ID == "" {
		t.Error("Create() left ID empty")
	}
	if s.CreatedAt.IsZero() {
		t.Error("Create() left CreatedAt zero")
	}
}

func TestGetByIDScopedToOwner(t *testing.T) {
	dao := newTestDAO(t)
	s := seedSummary(t, dao, "user-a", "mine")
	ctx := context.Background()

	got, err := dao.GetByID(ctx, s.ID, "user-a")
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if got == nil || got.Title != "mine" {
		t.Fatalf("GetByID() = %+v, want title %q", got, "mine")
	}

	// Another user's id, and a missing id, look the same.
	if got, err := dao.GetByID(ctx, s.ID, "user-b"); err != nil || got != nil {
		t.Errorf("GetByID() for other user = %+v, %v, want nil, nil", got, err)
	}
	if got, err := dao.GetByID(ctx, "no-such-id", "user-a"); err != nil || got != nil {
		t.Errorf("GetByID() for missing id = %+v, %v, want nil, nil", got, err)
	}
}

func TestListByUserOrderedNewestFirst(t *testing.T) {
	dao := newTestDAO(t)
	ctx := context.Background()

	older := seedSummary(t, dao, "user-a", "older")
	dao.DB.Model(older).Update("created_at", time.Now().Add(-time.Hour))
	seedSummary(t, dao, "user-a", "newer")
	seedSummary(t, dao, "user-b", "theirs")

	list, err := dao.ListByUser(ctx, "user-a")
	if err != nil {
		t.Fatalf("ListByUser() error = %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("ListByUser() returned %d rows, want 2", len(list))
	}
	if list[0].Title != "newer" || list[1].Title != "older" {
		t.Errorf("order = [%s, %s], want [newer, older]", list[0].Title, list[1].Title)
	}

	empty, err := dao.ListByUser(ctx, "user-c")
	if err != nil {
		t.Fatalf("ListByUser() error = %v", err)
	}
	if len(empty) != 0 {
		t.Errorf("ListByUser() for unknown user returned %d rows", len(empty))
	}
}

func TestUpdateContent(t *testing.T) {
	dao := newTestDAO(t)
	ctx := context.Background()
	s := seedSummary(t, dao, "user-a", "editable")
	before := s.UpdatedAt

	time.Sleep(10 * time.Millisecond)
	updated, err := dao.UpdateContent(ctx, s.ID, "user-a", "rewritten")
	if err != nil {
		t.Fatalf("UpdateContent() error = %v", err)
	}
	if updated == nil {
		t.Fatal("UpdateContent() = nil for owned row")
	}
	if updated.Content != "rewritten" {
		t.Errorf("content = %q", updated.Content)
	}
	if updated.Title != "editable" || updated.URL != s.URL {
		t.Errorf("UpdateContent() touched immutable fields: %+v", updated)
	}
	if !updated.UpdatedAt.After(before) {
		t.Errorf("updated_at did not advance: %v -> %v", before, updated.UpdatedAt)
	}
}

func TestUpdateContentRepeated(t *testing.T) {
	dao := newTestDAO(t)
	ctx := context.Background()
	s := seedSummary(t, dao, "user-a", "stable")

	first, err := dao.UpdateContent(ctx, s.ID, "user-a", "same text")
	if err != nil || first == nil {
		t.Fatalf("first UpdateContent() = %+v, %v", first, err)
	}
	second, err := dao.UpdateContent(ctx, s.ID, "user-a", "same text")
	if err != nil || second == nil {
		t.Fatalf("second UpdateContent() = %+v, %v", second, err)
	}
	if second.Content != first.Content {
		t.Errorf("content changed across identical updates: %q -> %q", first.Content, second.Content)
	}
	if second.UpdatedAt.Before(first.UpdatedAt) {
		t.Errorf("updated_at went backwards: %v -> %v", first.UpdatedAt, second.UpdatedAt)
	}
}

func TestUpdateContentNotOwned(t *testing.T) {
	dao := newTestDAO(t)
	ctx := context.Background()
	s := seedSummary(t, dao, "user-a", "locked")

	got, err := dao.UpdateContent(ctx, s.ID, "user-b", "hijack")
	if err != nil || got != nil {
		t.Fatalf("UpdateContent() for other user = %+v, %v, want nil, nil", got, err)
	}

	kept, err := dao.GetByID(ctx, s.ID, "user-a")
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if kept.Content == "hijack" {
		t.Error("cross-user update modified the row")
	}
}

func TestDeleteScopedToOwner(t *testing.T) {
	dao := newTestDAO(t)
	ctx := context.Background()
	s := seedSummary(t, dao, "user-a", "target")

	if ok, err := dao.Delete(ctx, s.ID, "user-b"); err != nil || ok {
		t.Fatalf("Delete() for other user = %v, %v, want false, nil", ok, err)
	}
	if ok, err := dao.Delete(ctx, s.ID, "user-a"); err != nil || !ok {
		t.Fatalf("Delete() = %v, %v, want true, nil", ok, err)
	}
	// Second delete is a no-op.
	if ok, err := dao.Delete(ctx, s.ID, "user-a"); err != nil || ok {
		t.Fatalf("repeated Delete() = %v, %v, want false, nil", ok, err)
	}
	if got, _ := dao.GetByID(ctx, s.ID, "user-a"); got != nil {
		t.Errorf("row still present after delete: %+v", got)
	}
}
