// Package model defines database models for persistence layer.
package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/okr-bot/backend/internal/domain/entity"
)

// ObjectiveModel represents the objectives table in the database.
type ObjectiveModel struct {
	ID          uuid.UUID      `gorm:"type:uuid;primaryKey"`
	Title       string         `gorm:"type:varchar(200);not null"`
	Description string         `gorm:"type:text"`
	Owner       string         `gorm:"type:varchar(100);not null;index"`
	Assignees   pq.StringArray `gorm:"type:text"`
	DueDate     *time.Time     `gorm:"type:date"`
	Status      string         `gorm:"type:varchar(20);not null;default:'active';index"`
	Progress    int            `gorm:"not null;default:0"`
	Priority    string         `gorm:"type:varchar(20);not null;default:'medium'"`
	Category    string         `gorm:"type:varchar(100);index"`
	CreatedBy   string         `gorm:"type:varchar(100)"`
	CreatedAt   time.Time      `gorm:"not null"`
	UpdatedAt   time.Time      `gorm:"not null"`
}

// TableName returns the table name for the ObjectiveModel.
func (ObjectiveModel) TableName() string {
	return "objectives"
}

// ToEntity converts an ObjectiveModel to a domain Objective entity.
func (m *ObjectiveModel) ToEntity() *entity.Objective {
	var dueDate *time.Time
	if m.DueDate != nil {
		due := m.DueDate.UTC()
		dueDate = &due
	}

	return &entity.Objective{
		ID:          m.ID,
		Title:       m.Title,
		Description: m.Description,
		Owner:       m.Owner,
		Assignees:   append([]string{}, m.Assignees...),
		DueDate:     dueDate,
		Status:      entity.ObjectiveStatus(m.Status),
		Progress:    m.Progress,
		Priority:    entity.Priority(m.Priority),
		Category:    m.Category,
		CreatedBy:   m.CreatedBy,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

// ObjectiveFromEntity creates an ObjectiveModel from a domain Objective entity.
func ObjectiveFromEntity(objective *entity.Objective) *ObjectiveModel {
	return &ObjectiveModel{
		ID:          objective.ID,
		Title:       objective.Title,
		Description: objective.Description,
		Owner:       objective.Owner,
		Assignees:   pq.StringArray(append([]string{}, objective.Assignees...)),
		DueDate:     objective.DueDate,
		Status:      string(objective.Status),
		Progress:    objective.Progress,
		Priority:    string(objective.Priority),
		Category:    objective.Category,
		CreatedBy:   objective.CreatedBy,
		CreatedAt:   objective.CreatedAt,
		UpdatedAt:   objective.UpdatedAt,
	}
}
