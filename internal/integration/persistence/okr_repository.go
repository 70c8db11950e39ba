// Package persistence implements repository interfaces for database operations.
package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/okr-bot/backend/internal/application/adapter"
	"github.com/okr-bot/backend/internal/domain/entity"
	"github.com/okr-bot/backend/internal/integration/persistence/model"
)

// okrRepository implements the adapter.OKRStorage interface on gorm.
type okrRepository struct {
	db *gorm.DB
}

// NewOKRRepository creates a new gorm-backed OKR storage.
func NewOKRRepository(db *gorm.DB) adapter.OKRStorage {
	return &okrRepository{
		db: db,
	}
}

// SaveObjective inserts or overwrites an objective.
func (r *okrRepository) SaveObjective(ctx context.Context, objective *entity.Objective) (*entity.Objective, error) {
	objectiveModel := model.ObjectiveFromEntity(objective)
	if err := r.db.WithContext(ctx).Save(objectiveModel).Error; err != nil {
		return nil, err
	}
	return objectiveModel.ToEntity(), nil
}

// GetObjective retrieves an objective by its ID.
func (r *okrRepository) GetObjective(ctx context.Context, id uuid.UUID) (*entity.Objective, error) {
	return findObjective(r.db.WithContext(ctx), id)
}

func findObjective(db *gorm.DB, id uuid.UUID) (*entity.Objective, error) {
	var objectiveModel model.ObjectiveModel
	result := db.Where("id = ?", id).First(&objectiveModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}
	return objectiveModel.ToEntity(), nil
}

// ListObjectives retrieves the objectives matching the filter, oldest first.
// Owner matching includes assignees and is done after loading.
func (r *okrRepository) ListObjectives(ctx context.Context, filter entity.ObjectiveFilter) ([]*entity.Objective, error) {
	query := r.db.WithContext(ctx).Model(&model.ObjectiveModel{})
	if filter.Status != nil {
		query = query.Where("status = ?", string(*filter.Status))
	}
	if filter.Category != "" {
		query = query.Where("category = ?", filter.Category)
	}

	var objectiveModels []model.ObjectiveModel
	if err := query.Order("created_at ASC").Find(&objectiveModels).Error; err != nil {
		return nil, err
	}

	objectives := make([]*entity.Objective, 0, len(objectiveModels))
	for i := range objectiveModels {
		if o := objectiveModels[i].ToEntity(); filter.Matches(o) {
			objectives = append(objectives, o)
		}
	}
	return objectives, nil
}

// UpdateObjective merges the update into an existing objective inside a transaction.
func (r *okrRepository) UpdateObjective(ctx context.Context, id uuid.UUID, update entity.ObjectiveUpdate) (*entity.Objective, error) {
	var updated *entity.Objective
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		objective, err := findObjective(tx, id)
		if err != nil || objective == nil {
			return err
		}
		update.ApplyTo(objective)
		objectiveModel := model.ObjectiveFromEntity(objective)
		if err := tx.Save(objectiveModel).Error; err != nil {
			return err
		}
		updated = objectiveModel.ToEntity()
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// DeleteObjective removes an objective together with its key results and their milestones.
func (r *okrRepository) DeleteObjective(ctx context.Context, id uuid.UUID) (bool, error) {
	var deleted bool
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		keyResultIDs := tx.Model(&model.KeyResultModel{}).Select("id").Where("objective_id = ?", id)
		if err := tx.Where("key_result_id IN (?)", keyResultIDs).Delete(&model.MilestoneModel{}).Error; err != nil {
			return err
		}
		if err := tx.Where("objective_id = ?", id).Delete(&model.KeyResultModel{}).Error; err != nil {
			return err
		}
		result := tx.Where("id = ?", id).Delete(&model.ObjectiveModel{})
		if result.Error != nil {
			return result.Error
		}
		deleted = result.RowsAffected > 0
		return nil
	})
	if err != nil {
		return false, err
	}
	return deleted, nil
}

// SaveKeyResult inserts or overwrites a key result and replaces its milestones.
func (r *okrRepository) SaveKeyResult(ctx context.Context, keyResult *entity.KeyResult) (*entity.KeyResult, error) {
	var saved *entity.KeyResult
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		saved, err = saveKeyResult(tx, keyResult)
		return err
	})
	if err != nil {
		return nil, err
	}
	return saved, nil
}

func saveKeyResult(tx *gorm.DB, keyResult *entity.KeyResult) (*entity.KeyResult, error) {
	keyResultModel, milestones := model.KeyResultFromEntity(keyResult)
	if err := tx.Omit("Milestones").Save(keyResultModel).Error; err != nil {
		return nil, err
	}
	if err := tx.Where("key_result_id = ?", keyResult.ID).Delete(&model.MilestoneModel{}).Error; err != nil {
		return nil, err
	}
	if len(milestones) > 0 {
		if err := tx.Create(&milestones).Error; err != nil {
			return nil, err
		}
	}
	keyResultModel.Milestones = milestones
	return keyResultModel.ToEntity(), nil
}

// GetKeyResult retrieves a key result by its ID.
func (r *okrRepository) GetKeyResult(ctx context.Context, id uuid.UUID) (*entity.KeyResult, error) {
	return findKeyResult(r.db.WithContext(ctx), id)
}

func findKeyResult(db *gorm.DB, id uuid.UUID) (*entity.KeyResult, error) {
	var keyResultModel model.KeyResultModel
	result := preloadMilestones(db).Where("id = ?", id).First(&keyResultModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}
	return keyResultModel.ToEntity(), nil
}

// ListKeyResults retrieves the key results matching the filter, oldest first.
func (r *okrRepository) ListKeyResults(ctx context.Context, filter entity.KeyResultFilter) ([]*entity.KeyResult, error) {
	query := preloadMilestones(r.db.WithContext(ctx))
	if filter.Status != nil {
		query = query.Where("status = ?", string(*filter.Status))
	}
	if filter.ObjectiveID != nil {
		query = query.Where("objective_id = ?", *filter.ObjectiveID)
	}

	var keyResultModels []model.KeyResultModel
	if err := query.Order("created_at ASC").Find(&keyResultModels).Error; err != nil {
		return nil, err
	}

	keyResults := make([]*entity.KeyResult, 0, len(keyResultModels))
	for i := range keyResultModels {
		if kr := keyResultModels[i].ToEntity(); filter.Matches(kr) {
			keyResults = append(keyResults, kr)
		}
	}
	return keyResults, nil
}

// UpdateKeyResult merges the update into an existing key result inside a transaction.
func (r *okrRepository) UpdateKeyResult(ctx context.Context, id uuid.UUID, update entity.KeyResultUpdate) (*entity.KeyResult, error) {
	var updated *entity.KeyResult
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		keyResult, err := findKeyResult(tx, id)
		if err != nil || keyResult == nil {
			return err
		}
		update.ApplyTo(keyResult)
		updated, err = saveKeyResult(tx, keyResult)
		return err
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// DeleteKeyResult removes a key result and its milestones.
func (r *okrRepository) DeleteKeyResult(ctx context.Context, id uuid.UUID) (bool, error) {
	var deleted bool
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("key_result_id = ?", id).Delete(&model.MilestoneModel{}).Error; err != nil {
			return err
		}
		result := tx.Where("id = ?", id).Delete(&model.KeyResultModel{})
		if result.Error != nil {
			return result.Error
		}
		deleted = result.RowsAffected > 0
		return nil
	})
	if err != nil {
		return false, err
	}
	return deleted, nil
}

// ObjectiveProgress computes the objective's progress from the key results currently stored.
func (r *okrRepository) ObjectiveProgress(ctx context.Context, objectiveID uuid.UUID) (int, error) {
	var keyResultModels []model.KeyResultModel
	result := r.db.WithContext(ctx).
		Select("id", "target", "current_value").
		Where("objective_id = ?", objectiveID).
		Find(&keyResultModels)
	if result.Error != nil {
		return 0, result.Error
	}

	keyResults := make([]*entity.KeyResult, len(keyResultModels))
	for i := range keyResultModels {
		keyResults[i] = &entity.KeyResult{
			Target:  keyResultModels[i].Target,
			Current: keyResultModels[i].Current,
		}
	}
	return entity.AggregateProgress(keyResults), nil
}

// Search matches the query case-insensitively against titles and descriptions.
func (r *okrRepository) Search(ctx context.Context, query string, scope entity.SearchScope) (*entity.SearchResult, error) {
	pattern := "%" + escapeLike(strings.ToLower(query)) + "%"
	condition := `LOWER(title) LIKE ? ESCAPE '\' OR LOWER(description) LIKE ? ESCAPE '\'`

	result := &entity.SearchResult{
		Objectives: []*entity.Objective{},
		KeyResults: []*entity.KeyResult{},
	}

	if scope.IncludesObjectives() {
		var objectiveModels []model.ObjectiveModel
		err := r.db.WithContext(ctx).
			Where(condition, pattern, pattern).
			Order("created_at ASC").
			Find(&objectiveModels).Error
		if err != nil {
			return nil, err
		}
		for i := range objectiveModels {
			result.Objectives = append(result.Objectives, objectiveModels[i].ToEntity())
		}
	}

	if scope.IncludesKeyResults() {
		var keyResultModels []model.KeyResultModel
		err := preloadMilestones(r.db.WithContext(ctx)).
			Where(condition, pattern, pattern).
			Order("created_at ASC").
			Find(&keyResultModels).Error
		if err != nil {
			return nil, err
		}
		for i := range keyResultModels {
			result.KeyResults = append(result.KeyResults, keyResultModels[i].ToEntity())
		}
	}

	return result, nil
}

func preloadMilestones(db *gorm.DB) *gorm.DB {
	return db.Preload("Milestones", func(db *gorm.DB) *gorm.DB {
		return db.Order("position ASC")
	})
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}
