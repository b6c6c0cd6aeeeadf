package models

import (
	"encoding/json"
	"time"

	"github.com/erp/orderhub/internal/domain/activity"
	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// ActivityLogModel is the persistence model for activity entries.
type ActivityLogModel struct {
	ID          uuid.UUID      `gorm:"type:uuid;primary_key"`
	ModuleName  string         `gorm:"type:varchar(50);not null;index"`
	RecordID    string         `gorm:"type:varchar(100);index"`
	ChangeLog   string         `gorm:"type:text"`
	PerformedBy datatypes.JSON `gorm:"column:performed_by"`
	CreatedAt   time.Time      `gorm:"not null;index"`
}

// TableName returns the table name for GORM
func (ActivityLogModel) TableName() string {
	return "activity_logs"
}

// FromDomain populates the persistence model from a domain activity entry.
func (m *ActivityLogModel) FromDomain(l *activity.Log) error {
	actor, err := json.Marshal(l.PerformedBy)
	if err != nil {
		return err
	}
	m.ID = l.ID
	m.ModuleName = l.ModuleName
	m.RecordID = l.RecordID
	m.ChangeLog = l.ChangeLog
	m.PerformedBy = datatypes.JSON(actor)
	m.CreatedAt = l.CreatedAt
	return nil
}

// ToDomain converts the persistence model to a domain activity entry.
func (m *ActivityLogModel) ToDomain() (*activity.Log, error) {
	var actor activity.Actor
	if len(m.PerformedBy) > 0 {
		if err := json.Unmarshal(m.PerformedBy, &actor); err != nil {
			return nil, err
		}
	}
	return &activity.Log{
		ID:          m.ID,
		ModuleName:  m.ModuleName,
		RecordID:    m.RecordID,
		ChangeLog:   m.ChangeLog,
		PerformedBy: actor,
		CreatedAt:   m.CreatedAt,
	}, nil
}
