package audit

import (
	"errors"

	"gorm.io/gorm"

	"github.com/prince-Sf/Corelytics/internal/domain"
	"github.com/prince-Sf/Corelytics/internal/platform/dbctx"
	"github.com/prince-Sf/Corelytics/internal/platform/logger"
)

const maxListLimit = 500

type Repo interface {
	Create(dbc dbctx.Context, row *domain.GenerationAudit) error
	ListRecent(dbc dbctx.Context, limit int) ([]*domain.GenerationAudit, error)
}

type repo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewRepo(db *gorm.DB, baseLog *logger.Logger) Repo {
	return &repo{db: db, log: baseLog.With("repo", "GenerationAuditRepo")}
}

func (r *repo) Create(dbc dbctx.Context, row *domain.GenerationAudit) error {
	if row == nil {
		return errors.New("nil audit row")
	}
	return dbc.DB(r.db).Create(row).Error
}

// ListRecent returns the newest rows first.
func (r *repo) ListRecent(dbc dbctx.Context, limit int) ([]*domain.GenerationAudit, error) {
	if limit <= 0 || limit > maxListLimit {
		limit = maxListLimit
	}
	var rows []*domain.GenerationAudit
	err := dbc.DB(r.db).
		Order("created_at DESC").
		Limit(limit).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
