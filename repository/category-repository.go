package repository

import (
	"carwash/metrics"

	"github.com/prometheus/client_golang/prometheus"
	"gorm.io/gorm"
)

// Category is a warehouse inventory category. OwnerCategoryID is not a foreign key:
// imported data may reference owners that were never created, the tree reports those.
type Category struct {
	ID              int     `gorm:"primaryKey"`
	Name            string  `gorm:"not null"`
	Description     *string `gorm:"null"`
	OwnerCategoryID *int    `gorm:"null;index"`
}

type CategoryRepository struct {
	DB *gorm.DB
}

func NewCategoryRepository(db *gorm.DB) *CategoryRepository {
	return &CategoryRepository{DB: db}
}

func (r *CategoryRepository) GetAllCategories() ([]*Category, error) {
	timer := prometheus.NewTimer(metrics.QueryDuration.WithLabelValues("GetAllCategories"))
	defer timer.ObserveDuration()
	categories := make([]*Category, 0)
	result := r.DB.Order("id").Find(&categories)
	if result.Error != nil {
		return nil, result.Error
	}
	return categories, nil
}

func (r *CategoryRepository) GetCategoryById(categoryId int) (*Category, error) {
	var category Category
	result := r.DB.First(&category, "id = ?", categoryId)
	if result.Error != nil {
		return nil, result.Error
	}
	return &category, nil
}

func (r *CategoryRepository) CountChildren(categoryId int) (int64, error) {
	var count int64
	result := r.DB.Model(&Category{}).Where("owner_category_id = ?", categoryId).Count(&count)
	return count, result.Error
}

func (r *CategoryRepository) SaveCategory(category *Category) (*Category, error) {
	result := r.DB.Save(category)
	if result.Error != nil {
		return nil, result.Error
	}
	return category, nil
}

func (r *CategoryRepository) DeleteCategory(categoryId int) error {
	result := r.DB.Delete(&Category{}, "id = ?", categoryId)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
