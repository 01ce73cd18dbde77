package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// GenerationAudit records what was requested from a provider. The generated
// text itself is never stored; the brief is kept only as a fingerprint.
type GenerationAudit struct {
	ID               uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	RequestID        string         `gorm:"column:request_id;index" json:"request_id,omitempty"`
	DomainID         string         `gorm:"column:domain_id;not null;index" json:"domain"`
	RecipientID      string         `gorm:"column:recipient_id;not null" json:"recipient"`
	CategoryID       string         `gorm:"column:category_id;not null" json:"category"`
	ScenarioID       *string        `gorm:"column:scenario_id" json:"scenario,omitempty"`
	Archetype        string         `gorm:"column:archetype" json:"archetype"`
	Pressure         string         `gorm:"column:pressure" json:"pressure"`
	Model            string         `gorm:"column:model;not null" json:"model"`
	Success          bool           `gorm:"column:success;not null" json:"success"`
	Error            string         `gorm:"column:error" json:"error,omitempty"`
	LatencyMS        int64          `gorm:"column:latency_ms" json:"latency_ms"`
	BriefFingerprint string         `gorm:"column:brief_fingerprint" json:"brief_fingerprint"`
	Sources          datatypes.JSON `gorm:"column:sources" json:"sources"`
	CreatedAt        time.Time      `gorm:"not null;index" json:"created_at"`
}

func (GenerationAudit) TableName() string {
	return "generation_audit"
}

func (a *GenerationAudit) BeforeCreate(*gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}
