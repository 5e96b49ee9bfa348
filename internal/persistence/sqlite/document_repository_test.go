package sqlite

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/TsubasaHiga/fe-xanthiccoffee-sub000/internal/persistence"
	"github.com/TsubasaHiga/fe-xanthiccoffee-sub000/internal/testfixtures"
)

func TestDocumentRepository_CreateAndGet(t *testing.T) {
	pool := newTestPool(t)
	clock := testfixtures.NewClock(time.Time{})
	repo := NewDocumentRepository(pool, clock.NowFunc())
	ctx := context.Background()

	doc := persistence.Document{
		ID:    "doc-1",
		Title: "予定リスト",
		Body:  "# 予定リスト\n\n- 2024-01-02\n",
	}
	if err := repo.CreateDocument(ctx, doc); err != nil {
		t.Fatalf("CreateDocument failed: %v", err)
	}

	got, err := repo.GetDocument(ctx, "doc-1")
	if err != nil {
		t.Fatalf("GetDocument failed: %v", err)
	}
	if got.Title != doc.Title || got.Body != doc.Body {
		t.Fatalf("unexpected document: %+v", got)
	}
	if !got.CreatedAt.Equal(testfixtures.ReferenceTime().UTC()) {
		t.Fatalf("created_at = %v", got.CreatedAt)
	}
}

func TestDocumentRepository_RejectsMissingID(t *testing.T) {
	pool := newTestPool(t)
	repo := NewDocumentRepository(pool, nil)

	err := repo.CreateDocument(context.Background(), persistence.Document{Title: "x"})
	if !errors.Is(err, persistence.ErrConstraintViolation) {
		t.Fatalf("expected ErrConstraintViolation, got %v", err)
	}
}

func TestDocumentRepository_DuplicateID(t *testing.T) {
	pool := newTestPool(t)
	repo := NewDocumentRepository(pool, nil)
	ctx := context.Background()

	doc := persistence.Document{ID: "doc-1", Title: "a", Body: "b"}
	if err := repo.CreateDocument(ctx, doc); err != nil {
		t.Fatalf("CreateDocument failed: %v", err)
	}
	if err := repo.CreateDocument(ctx, doc); !errors.Is(err, persistence.ErrConstraintViolation) {
		t.Fatalf("expected ErrConstraintViolation, got %v", err)
	}
}

func TestDocumentRepository_ListNewestFirst(t *testing.T) {
	pool := newTestPool(t)
	clock := testfixtures.NewClock(time.Time{})
	repo := NewDocumentRepository(pool, clock.NowFunc())
	ctx := context.Background()

	for _, id := range []string{"doc-1", "doc-2", "doc-3"} {
		if err := repo.CreateDocument(ctx, persistence.Document{ID: id, Title: id, Body: "-"}); err != nil {
			t.Fatalf("CreateDocument(%s) failed: %v", id, err)
		}
		clock.Advance(time.Minute)
	}

	docs, err := repo.ListDocuments(ctx, 0)
	if err != nil {
		t.Fatalf("ListDocuments failed: %v", err)
	}
	if len(docs) != 3 {
		t.Fatalf("expected 3 documents, got %d", len(docs))
	}
	if docs[0].ID != "doc-3" || docs[2].ID != "doc-1" {
		t.Fatalf("unexpected order: %s, %s, %s", docs[0].ID, docs[1].ID, docs[2].ID)
	}

	limited, err := repo.ListDocuments(ctx, 2)
	if err != nil {
		t.Fatalf("ListDocuments failed: %v", err)
	}
	if len(limited) != 2 || limited[0].ID != "doc-3" {
		t.Fatalf("unexpected limited list: %+v", limited)
	}
}

func TestDocumentRepository_Delete(t *testing.T) {
	pool := newTestPool(t)
	repo := NewDocumentRepository(pool, nil)
	ctx := context.Background()

	if err := repo.DeleteDocument(ctx, "missing"); !errors.Is(err, persistence.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	if err := repo.CreateDocument(ctx, persistence.Document{ID: "doc-1", Title: "a", Body: "b"}); err != nil {
		t.Fatalf("CreateDocument failed: %v", err)
	}
	if err := repo.DeleteDocument(ctx, "doc-1"); err != nil {
		t.Fatalf("DeleteDocument failed: %v", err)
	}
	if _, err := repo.GetDocument(ctx, "doc-1"); !errors.Is(err, persistence.ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
}
