package testutil

import (
	"context"
	"testing"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/prince-Sf/Corelytics/internal/domain"
)

func SeedAudit(tb testing.TB, ctx context.Context, tx *gorm.DB, model string, createdAt time.Time) *domain.GenerationAudit {
	tb.Helper()
	row := &domain.GenerationAudit{
		DomainID:         "sales",
		RecipientID:      "marketplace",
		CategoryID:       "payouts",
		Archetype:        "Professional Communication",
		Pressure:         "normal",
		Model:            model,
		Success:          true,
		LatencyMS:        12,
		BriefFingerprint: "abc123",
		Sources:          datatypes.JSON([]byte(`{"tone_hint":"baseline"}`)),
		CreatedAt:        createdAt,
	}
	if err := tx.WithContext(ctx).Create(row).Error; err != nil {
		tb.Fatalf("seed audit: %v", err)
	}
	return row
}
