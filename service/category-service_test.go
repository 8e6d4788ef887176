package service

import (
	"carwash/repository"
	"testing"

	"github.com/stretchr/testify/assert"
)

func intPtr(i int) *int {
	return &i
}

func TestWouldCreateCycle(t *testing.T) {
	categories := []*repository.Category{
		{ID: 1, Name: "Chemicals"},
		{ID: 2, Name: "Wax", OwnerCategoryID: intPtr(1)},
		{ID: 3, Name: "Hard wax", OwnerCategoryID: intPtr(2)},
		{ID: 4, Name: "Spare parts"},
	}

	assert.True(t, wouldCreateCycle(categories, &repository.Category{ID: 1, Name: "Chemicals", OwnerCategoryID: intPtr(3)}))
	assert.True(t, wouldCreateCycle(categories, &repository.Category{ID: 2, Name: "Wax", OwnerCategoryID: intPtr(2)}))
	assert.False(t, wouldCreateCycle(categories, &repository.Category{ID: 3, Name: "Hard wax", OwnerCategoryID: intPtr(4)}))
	assert.False(t, wouldCreateCycle(categories, &repository.Category{ID: 4, Name: "Spare parts", OwnerCategoryID: intPtr(1)}))
	assert.False(t, wouldCreateCycle(categories, &repository.Category{ID: 5, Name: "New", OwnerCategoryID: intPtr(3)}))
}

func TestToInventoryCategory(t *testing.T) {
	description := "all consumables"
	category := ToInventoryCategory(&repository.Category{ID: 9, Name: "Consumables", Description: &description, OwnerCategoryID: intPtr(2)})
	assert.Equal(t, 9, category.ID)
	assert.Equal(t, &description, category.Description)
	assert.True(t, category.OwnerCategoryID.Valid)
	assert.Equal(t, 2, category.OwnerCategoryID.ID)

	root := ToInventoryCategory(&repository.Category{ID: 1, Name: "Root"})
	assert.False(t, root.OwnerCategoryID.Valid)
}
