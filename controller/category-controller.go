package controller

import (
	"carwash/app_error"
	"carwash/config"
	"carwash/inventory"
	"carwash/repository"
	"carwash/service"
	"carwash/utils"
	"errors"
	"strconv"
	"sync"
	"time"

	"github.com/gin-contrib/cache"
	"github.com/gin-contrib/cache/persistence"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type CategoryController struct {
	categoryService *service.CategoryService
	cacheStore      persistence.CacheStore
	logger          *zap.Logger

	// request uris of tree pages written to cacheStore since the last invalidation
	treePagesMu sync.Mutex
	treePages   map[string]struct{}
}

func NewCategoryController(db *gorm.DB, cacheStore persistence.CacheStore) *CategoryController {
	return &CategoryController{
		categoryService: service.NewCategoryService(db),
		cacheStore:      cacheStore,
		logger:          config.Logger(),
		treePages:       make(map[string]struct{}),
	}
}

func (e *CategoryController) rememberTreePage(c *gin.Context) {
	e.treePagesMu.Lock()
	defer e.treePagesMu.Unlock()
	e.treePages[c.Request.URL.RequestURI()] = struct{}{}
}

// invalidateTreeCache drops every cached tree page so the next read sees the change.
func (e *CategoryController) invalidateTreeCache() {
	e.treePagesMu.Lock()
	defer e.treePagesMu.Unlock()
	for uri := range e.treePages {
		err := e.cacheStore.Delete(cache.CreateKey(uri))
		if err != nil && !errors.Is(err, persistence.ErrCacheMiss) {
			e.logger.Warn("could not drop cached category tree", zap.String("uri", uri), zap.Error(err))
		}
	}
	e.treePages = make(map[string]struct{})
}

func setupCategoryController(db *gorm.DB, cacheStore persistence.CacheStore) []RouteInfo {
	e := NewCategoryController(db, cacheStore)
	warehouse := []repository.Permission{repository.PermissionWarehouse}
	return prefixRoutes("warehouse/categories", []RouteInfo{
		{Method: "GET", Path: "", HandlerFunc: e.getCategoriesHandler(), Authenticated: true},
		{Method: "GET", Path: "/tree", HandlerFunc: e.getCategoryTreeHandler(), Authenticated: true},
		{Method: "POST", Path: "/tree", HandlerFunc: e.buildCategoryTreeHandler(), Authenticated: true},
		{Method: "PUT", Path: "", HandlerFunc: e.saveCategoryHandler(), Authenticated: true, RequiredRoles: warehouse},
		{Method: "DELETE", Path: "/:category_id", HandlerFunc: e.deleteCategoryHandler(), Authenticated: true, RequiredRoles: warehouse},
	})
}

// @id GetCategories
// @Description Fetches all warehouse categories as a flat list
// @Tags warehouse
// @Produce json
// @Success 200 {array} CategoryResponse
// @Security BearerAuth
// @Router /warehouse/categories [get]
func (e *CategoryController) getCategoriesHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		categories, err := e.categoryService.GetCategories()
		if err != nil {
			app_error.Respond(c, err)
			return
		}
		c.JSON(200, utils.Map(categories, toCategoryResponse))
	}
}

// @id GetCategoryTree
// @Description Fetches the warehouse categories nested by owner. Categories that cannot be placed are listed as issues.
// @Tags warehouse
// @Produce json
// @Param search query string false "Only keep categories whose name or description contains this text"
// @Success 200 {object} CategoryTreeResponse
// @Security BearerAuth
// @Router /warehouse/categories/tree [get]
func (e *CategoryController) getCategoryTreeHandler() gin.HandlerFunc {
	ttl := time.Duration(config.Env().CacheTTLSeconds) * time.Second
	return cache.CachePage(e.cacheStore, ttl, func(c *gin.Context) {
		e.rememberTreePage(c)
		tree, err := e.categoryService.GetCategoryTree(c.Query("search"))
		if err != nil {
			app_error.Respond(c, err)
			return
		}
		c.JSON(200, toCategoryTreeResponse(tree))
	})
}

// @id BuildCategoryTree
// @Description Nests a posted flat category list without storing it
// @Tags warehouse
// @Accept json
// @Produce json
// @Param categories body []inventory.Category true "Flat category list"
// @Param search query string false "Only keep categories whose name or description contains this text"
// @Success 200 {object} CategoryTreeResponse
// @Security BearerAuth
// @Router /warehouse/categories/tree [post]
func (e *CategoryController) buildCategoryTreeHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		var categories []inventory.Category
		if err := c.BindJSON(&categories); err != nil {
			return
		}
		tree := inventory.BuildTree(categories).Filter(c.Query("search"))
		c.JSON(200, toCategoryTreeResponse(tree))
	}
}

// @id SaveCategory
// @Description Creates or updates a warehouse category
// @Tags warehouse
// @Accept json
// @Produce json
// @Param category body CategoryCreate true "Category to save"
// @Success 200 {object} CategoryResponse
// @Security BearerAuth
// @Router /warehouse/categories [put]
func (e *CategoryController) saveCategoryHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		var categoryCreate CategoryCreate
		if err := c.BindJSON(&categoryCreate); err != nil {
			return
		}
		category, err := e.categoryService.SaveCategory(categoryCreate.toModel())
		if err != nil {
			app_error.Respond(c, err)
			return
		}
		e.invalidateTreeCache()
		c.JSON(200, toCategoryResponse(category))
	}
}

// @id DeleteCategory
// @Description Deletes a warehouse category without subcategories
// @Tags warehouse
// @Param category_id path int true "Category Id"
// @Success 204
// @Security BearerAuth
// @Router /warehouse/categories/{category_id} [delete]
func (e *CategoryController) deleteCategoryHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		categoryId, err := strconv.Atoi(c.Param("category_id"))
		if err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}
		if err := e.categoryService.DeleteCategory(categoryId); err != nil {
			app_error.Respond(c, err)
			return
		}
		e.invalidateTreeCache()
		c.Status(204)
	}
}

type CategoryCreate struct {
	ID              int     `json:"id"`
	Name            string  `json:"name" binding:"required"`
	Description     *string `json:"description"`
	OwnerCategoryID *int    `json:"owner_category_id"`
}

func (c CategoryCreate) toModel() *repository.Category {
	return &repository.Category{
		ID:              c.ID,
		Name:            c.Name,
		Description:     c.Description,
		OwnerCategoryID: c.OwnerCategoryID,
	}
}

type CategoryResponse struct {
	ID              int     `json:"id" binding:"required"`
	Name            string  `json:"name" binding:"required"`
	Description     *string `json:"description"`
	OwnerCategoryID *int    `json:"owner_category_id"`
}

type CategoryTreeResponse struct {
	Roots  []*inventory.CategoryNode `json:"roots" binding:"required"`
	Issues []inventory.Issue         `json:"issues" binding:"required"`
	Total  int                       `json:"total" binding:"required"`
}

func toCategoryResponse(category *repository.Category) *CategoryResponse {
	return &CategoryResponse{
		ID:              category.ID,
		Name:            category.Name,
		Description:     category.Description,
		OwnerCategoryID: category.OwnerCategoryID,
	}
}

func toCategoryTreeResponse(tree *inventory.Tree) *CategoryTreeResponse {
	issues := tree.Issues
	if issues == nil {
		issues = make([]inventory.Issue, 0)
	}
	return &CategoryTreeResponse{
		Roots:  tree.Roots,
		Issues: issues,
		Total:  tree.Count(),
	}
}
