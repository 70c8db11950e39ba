package model

// All returns every model managed by AutoMigrate, parents first.
func All() []any {
	return []any{
		&ObjectiveModel{},
		&KeyResultModel{},
		&MilestoneModel{},
	}
}
