package app

import (
	"gorm.io/gorm"

	"github.com/prince-Sf/Corelytics/internal/data/repos/audit"
	"github.com/prince-Sf/Corelytics/internal/platform/logger"
)

type Repos struct {
	Audit audit.Repo
}

// wireRepos returns empty repos when db is nil (audit disabled).
func wireRepos(db *gorm.DB, log *logger.Logger) Repos {
	if db == nil {
		return Repos{}
	}
	log.Info("Wiring repos...")
	return Repos{
		Audit: audit.NewRepo(db, log),
	}
}
