package services

import (
	"errors"

	"gorm.io/gorm"

	apperrors "moneyflow/internal/errors"
	"moneyflow/internal/models"
	"moneyflow/internal/pagination"
)

// categoryService handles category-related business logic.
type categoryService struct {
	db *gorm.DB
}

// NewCategoryService creates a new CategoryServicer.
func NewCategoryService(db *gorm.DB) CategoryServicer {
	return &categoryService{db: db}
}

// CreateCategory creates a new category
func (s *categoryService) CreateCategory(
	userID uint,
	name string,
	categoryType models.CategoryType,
	description string,
	color string,
) (*models.Category, error) {
	// Validate input
	if name == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "category name is required")
	}

	// Check if a category with the same name already exists for this user
	var count int64
	if err := s.db.Model(&models.Category{}).
		Where("user_id = ? AND name = ?", userID, name).
		Count(&count).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	if count > 0 {
		return nil, apperrors.ErrDuplicateCategory
	}

	category := &models.Category{
		UserID:      userID,
		Name:        name,
		Type:        categoryType,
		Description: description,
		Color:       color,
	}

	if err := s.db.Create(category).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return category, nil
}

// GetUserCategories retrieves a paginated list of categories for a user,
// optionally filtered by type.
func (s *categoryService) GetUserCategories(userID uint, categoryType *models.CategoryType, page pagination.PageRequest) (*pagination.PageResponse[models.Category], error) {
	page.Defaults()

	base := s.db.Model(&models.Category{}).Where("user_id = ?", userID)
	if categoryType != nil {
		base = base.Where("type = ?", *categoryType)
	}

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var categories []models.Category
	if err := base.Order("name ASC").Scopes(pagination.Paginate(page)).Find(&categories).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(categories, page.Page, page.PageSize, totalItems)
	return &result, nil
}

// GetCategoryByID retrieves a category by ID for a specific user
func (s *categoryService) GetCategoryByID(userID, categoryID uint) (*models.Category, error) {
	var category models.Category
	if err := s.db.Where("id = ? AND user_id = ?", categoryID, userID).First(&category).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrCategoryNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &category, nil
}

// UpdateCategory updates an existing category. Changing the type is only
// allowed while the category has no transactions, otherwise past summaries
// would silently reclassify.
func (s *categoryService) UpdateCategory(
	userID uint,
	categoryID uint,
	name string,
	description string,
	color string,
	newType *models.CategoryType,
) (*models.Category, error) {
	category, err := s.GetCategoryByID(userID, categoryID)
	if err != nil {
		return nil, err
	}

	if name != "" && name != category.Name {
		var count int64
		if err := s.db.Model(&models.Category{}).
			Where("user_id = ? AND name = ? AND id <> ?", userID, name, categoryID).
			Count(&count).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		if count > 0 {
			return nil, apperrors.ErrDuplicateCategory
		}
	}

	if newType != nil && *newType != category.Type {
		var txCount int64
		if err := s.db.Model(&models.Transaction{}).Where("category_id = ?", categoryID).Count(&txCount).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		if txCount > 0 {
			return nil, apperrors.ErrCategoryTypeChange
		}
	}

	// Update fields if provided
	updates := make(map[string]interface{})
	if name != "" {
		updates["name"] = name
	}
	if description != "" {
		updates["description"] = description
	}
	if color != "" {
		updates["color"] = color
	}
	if newType != nil {
		updates["type"] = *newType
	}

	if len(updates) > 0 {
		if err := s.db.Model(category).Updates(updates).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
	}

	return category, nil
}

// DeleteCategory soft-deletes a category that has no transactions.
func (s *categoryService) DeleteCategory(userID, categoryID uint) error {
	// Get the category to ensure it exists and belongs to the user
	category, err := s.GetCategoryByID(userID, categoryID)
	if err != nil {
		return err
	}

	var txCount int64
	if err := s.db.Model(&models.Transaction{}).Where("category_id = ?", categoryID).Count(&txCount).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if txCount > 0 {
		return apperrors.ErrCategoryInUse
	}

	if err := s.db.Delete(category).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// GetCategoriesWithCount lists all categories of a user with the number of
// transactions recorded in each.
func (s *categoryService) GetCategoriesWithCount(userID uint) ([]CategoryWithCount, error) {
	var categories []models.Category
	if err := s.db.Where("user_id = ?", userID).Order("name ASC").Find(&categories).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := make([]CategoryWithCount, 0, len(categories))
	for _, category := range categories {
		var count int64
		if err := s.db.Model(&models.Transaction{}).Where("category_id = ?", category.ID).Count(&count).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		result = append(result, CategoryWithCount{Category: category, TransactionCount: count})
	}
	return result, nil
}
