package audit

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/prince-Sf/Corelytics/internal/data/repos/testutil"
	"github.com/prince-Sf/Corelytics/internal/domain"
	"github.com/prince-Sf/Corelytics/internal/platform/dbctx"
)

func TestGenerationAuditRepo(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	ctx := context.Background()
	repo := NewRepo(db, testutil.Logger(t))
	dbc := dbctx.Context{Ctx: ctx, Tx: tx}

	base := time.Now().UTC().Add(-time.Hour)
	older := testutil.SeedAudit(t, ctx, tx, "mock-1", base)
	newer := testutil.SeedAudit(t, ctx, tx, "mock-2", base.Add(time.Minute))

	scenario := "clarify"
	row := &domain.GenerationAudit{
		DomainID:    "sales",
		RecipientID: "marketplace",
		CategoryID:  "policy",
		ScenarioID:  &scenario,
		Model:       "mock-1",
		Success:     false,
		Error:       "generation_timeout",
		CreatedAt:   base.Add(2 * time.Minute),
	}
	if err := repo.Create(dbc, row); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if row.ID == uuid.Nil {
		t.Fatalf("expected id to be assigned")
	}
	if err := repo.Create(dbc, nil); err == nil {
		t.Fatalf("expected error for nil row")
	}

	rows, err := repo.ListRecent(dbc, 10)
	if err != nil {
		t.Fatalf("ListRecent: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("len=%d want 3", len(rows))
	}
	if rows[0].ID != row.ID || rows[1].ID != newer.ID || rows[2].ID != older.ID {
		t.Fatalf("unexpected order: %v %v %v", rows[0].ID, rows[1].ID, rows[2].ID)
	}
	if rows[0].ScenarioID == nil || *rows[0].ScenarioID != "clarify" {
		t.Fatalf("scenario not persisted: %v", rows[0].ScenarioID)
	}

	limited, err := repo.ListRecent(dbc, 1)
	if err != nil {
		t.Fatalf("ListRecent(1): %v", err)
	}
	if len(limited) != 1 {
		t.Fatalf("limit ignored: %d", len(limited))
	}
}
