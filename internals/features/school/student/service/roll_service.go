package service

import (
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"studentrecords_backend/internals/features/school/student/model"
)

// NextRoll reserves the next roll ordinal for the (year, class) partition and
// returns the composed roll number, e.g. year 2024 + class "5" + ordinal 1 →
// "202451". Must be called inside the transaction that creates the profile:
// the upsert takes a row lock on the counter, so a concurrent assignment to
// the same partition waits and then reads its own, strictly larger ordinal.
func NextRoll(tx *gorm.DB, year int, class string) (string, error) {
	counter := model.ClassRollCounterModel{Year: year, Class: class, Count: 1}
	if err := tx.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "year"}, {Name: "class"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"count": gorm.Expr("class_roll_counters.count + 1"),
		}),
	}).Create(&counter).Error; err != nil {
		return "", err
	}

	// Read back the reserved ordinal within the same transaction. A fresh
	// dest is required: counter carries the UUID minted for the insert
	// attempt, and gorm folds a populated primary key into the conditions,
	// which would miss the pre-existing row.
	var reserved model.ClassRollCounterModel
	if err := tx.Where("year = ? AND class = ?", year, class).
		First(&reserved).Error; err != nil {
		return "", err
	}

	return fmt.Sprintf("%d%s%d", year, class, reserved.Count), nil
}
