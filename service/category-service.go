package service

import (
	"carwash/app_error"
	"carwash/config"
	"carwash/inventory"
	"carwash/metrics"
	"carwash/repository"
	"carwash/utils"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

var (
	ErrCategoryCycle       = app_error.New(409, "category cannot be placed below itself or one of its subcategories")
	ErrCategoryHasChildren = app_error.New(409, "category still has subcategories")
	ErrOwnerNotFound       = app_error.New(400, "owner category not found")
)

var issueKinds = []inventory.IssueKind{
	inventory.IssueOrphan,
	inventory.IssueCycle,
	inventory.IssueDuplicate,
	inventory.IssueDetached,
}

type CategoryService struct {
	categoryRepository *repository.CategoryRepository
	logger             *zap.Logger
}

func NewCategoryService(db *gorm.DB) *CategoryService {
	return &CategoryService{
		categoryRepository: repository.NewCategoryRepository(db),
		logger:             config.Logger(),
	}
}

func (s *CategoryService) GetCategories() ([]*repository.Category, error) {
	return s.categoryRepository.GetAllCategories()
}

func (s *CategoryService) GetCategoryTree(search string) (*inventory.Tree, error) {
	categories, err := s.categoryRepository.GetAllCategories()
	if err != nil {
		return nil, err
	}
	tree := inventory.BuildTree(utils.Map(categories, ToInventoryCategory))
	s.recordIssues(tree)
	return tree.Filter(search), nil
}

func (s *CategoryService) recordIssues(tree *inventory.Tree) {
	counts := make(map[inventory.IssueKind]int)
	for _, issue := range tree.Issues {
		counts[issue.Kind]++
	}
	for _, kind := range issueKinds {
		metrics.CategoryTreeIssues.WithLabelValues(string(kind)).Set(float64(counts[kind]))
	}
	if len(tree.Issues) > 0 {
		s.logger.Warn("category tree has categories that cannot be placed",
			zap.Int("orphans", counts[inventory.IssueOrphan]),
			zap.Int("cycles", counts[inventory.IssueCycle]),
			zap.Int("duplicates", counts[inventory.IssueDuplicate]),
			zap.Int("detached", counts[inventory.IssueDetached]),
		)
	}
}

func (s *CategoryService) SaveCategory(category *repository.Category) (*repository.Category, error) {
	if category.ID != 0 {
		if _, err := s.categoryRepository.GetCategoryById(category.ID); err != nil {
			return nil, err
		}
	}
	if category.OwnerCategoryID != nil {
		if category.ID != 0 && *category.OwnerCategoryID == category.ID {
			return nil, ErrCategoryCycle
		}
		if _, err := s.categoryRepository.GetCategoryById(*category.OwnerCategoryID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrOwnerNotFound
			}
			return nil, err
		}
		if category.ID != 0 {
			categories, err := s.categoryRepository.GetAllCategories()
			if err != nil {
				return nil, err
			}
			if wouldCreateCycle(categories, category) {
				return nil, ErrCategoryCycle
			}
		}
	}
	return s.categoryRepository.SaveCategory(category)
}

func (s *CategoryService) DeleteCategory(categoryId int) error {
	children, err := s.categoryRepository.CountChildren(categoryId)
	if err != nil {
		return err
	}
	if children > 0 {
		return ErrCategoryHasChildren
	}
	return s.categoryRepository.DeleteCategory(categoryId)
}

// wouldCreateCycle checks whether storing moved in place of its current version
// closes an owner loop.
func wouldCreateCycle(categories []*repository.Category, moved *repository.Category) bool {
	records := make([]inventory.Category, 0, len(categories)+1)
	replaced := false
	for _, category := range categories {
		if category.ID == moved.ID {
			category = moved
			replaced = true
		}
		records = append(records, ToInventoryCategory(category))
	}
	if !replaced {
		records = append(records, ToInventoryCategory(moved))
	}
	return inventory.BuildTree(records).HasIssue(inventory.IssueCycle, moved.ID)
}

func ToInventoryCategory(category *repository.Category) inventory.Category {
	return inventory.Category{
		ID:              category.ID,
		Name:            category.Name,
		Description:     category.Description,
		OwnerCategoryID: inventory.OwnerFromPtr(category.OwnerCategoryID),
	}
}
