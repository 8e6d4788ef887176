package repository

import (
	"gorm.io/gorm"
)

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&Category{},
		&GradingParameter{},
		&Estimation{},
		&ShiftReport{},
		&ShiftGrade{},
		&User{},
	)
}
