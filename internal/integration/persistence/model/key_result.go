package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"

	"github.com/okr-bot/backend/internal/domain/entity"
)

// KeyResultModel represents the key_results table in the database.
type KeyResultModel struct {
	ID           uuid.UUID        `gorm:"type:uuid;primaryKey"`
	ObjectiveID  uuid.UUID        `gorm:"type:uuid;not null;index"`
	Title        string           `gorm:"type:varchar(200);not null"`
	Description  string           `gorm:"type:text"`
	Owner        string           `gorm:"type:varchar(100);not null;index"`
	Assignees    pq.StringArray   `gorm:"type:text"`
	Target       decimal.Decimal  `gorm:"type:numeric;not null"`
	Current      decimal.Decimal  `gorm:"column:current_value;type:numeric;not null;default:0"`
	Unit         string           `gorm:"type:varchar(20);not null;default:'percent'"`
	Status       string           `gorm:"type:varchar(20);not null;default:'active';index"`
	Priority     string           `gorm:"type:varchar(20);not null;default:'medium'"`
	TrackingType string           `gorm:"type:varchar(20);not null;default:'increase'"`
	Milestones   []MilestoneModel `gorm:"foreignKey:KeyResultID;constraint:OnDelete:CASCADE"`
	CreatedAt    time.Time        `gorm:"not null"`
	UpdatedAt    time.Time        `gorm:"not null"`
}

// TableName returns the table name for the KeyResultModel.
func (KeyResultModel) TableName() string {
	return "key_results"
}

// MilestoneModel represents the key_result_milestones table in the database.
type MilestoneModel struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey"`
	KeyResultID uuid.UUID       `gorm:"type:uuid;not null;index"`
	Description string          `gorm:"type:text"`
	Value       decimal.Decimal `gorm:"type:numeric;not null"`
	Date        *time.Time      `gorm:"type:date"`
	Position    int             `gorm:"not null;default:0"`
	CreatedAt   time.Time       `gorm:"not null"`
}

// TableName returns the table name for the MilestoneModel.
func (MilestoneModel) TableName() string {
	return "key_result_milestones"
}

// ToEntity converts a KeyResultModel to a domain KeyResult entity.
func (m *KeyResultModel) ToEntity() *entity.KeyResult {
	milestones := make([]entity.Milestone, len(m.Milestones))
	for i, mm := range m.Milestones {
		milestones[i] = mm.ToEntity()
	}
	entity.SortMilestones(milestones)

	return &entity.KeyResult{
		ID:           m.ID,
		ObjectiveID:  m.ObjectiveID,
		Title:        m.Title,
		Description:  m.Description,
		Owner:        m.Owner,
		Assignees:    append([]string{}, m.Assignees...),
		Target:       m.Target,
		Current:      m.Current,
		Unit:         m.Unit,
		Status:       entity.KeyResultStatus(m.Status),
		Priority:     entity.Priority(m.Priority),
		TrackingType: entity.TrackingType(m.TrackingType),
		Milestones:   milestones,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}

// ToEntity converts a MilestoneModel to a domain Milestone.
func (m *MilestoneModel) ToEntity() entity.Milestone {
	var date *time.Time
	if m.Date != nil {
		d := m.Date.UTC()
		date = &d
	}
	return entity.Milestone{
		ID:          m.ID,
		Description: m.Description,
		Value:       m.Value,
		Date:        date,
		CreatedAt:   m.CreatedAt,
	}
}

// KeyResultFromEntity creates a KeyResultModel from a domain KeyResult entity.
// Milestones are returned separately because they are replaced as a set.
func KeyResultFromEntity(keyResult *entity.KeyResult) (*KeyResultModel, []MilestoneModel) {
	milestones := make([]MilestoneModel, len(keyResult.Milestones))
	for i, m := range keyResult.Milestones {
		id := m.ID
		if id == uuid.Nil {
			id = uuid.New()
		}
		milestones[i] = MilestoneModel{
			ID:          id,
			KeyResultID: keyResult.ID,
			Description: m.Description,
			Value:       m.Value,
			Date:        m.Date,
			Position:    i,
			CreatedAt:   m.CreatedAt,
		}
	}

	return &KeyResultModel{
		ID:           keyResult.ID,
		ObjectiveID:  keyResult.ObjectiveID,
		Title:        keyResult.Title,
		Description:  keyResult.Description,
		Owner:        keyResult.Owner,
		Assignees:    pq.StringArray(append([]string{}, keyResult.Assignees...)),
		Target:       keyResult.Target,
		Current:      keyResult.Current,
		Unit:         keyResult.Unit,
		Status:       string(keyResult.Status),
		Priority:     string(keyResult.Priority),
		TrackingType: string(keyResult.TrackingType),
		CreatedAt:    keyResult.CreatedAt,
		UpdatedAt:    keyResult.UpdatedAt,
	}, milestones
}
