package grocer

import "context"

// CategoryService abstracts the category API operations.
// This interface allows for easy mocking in tests.
type CategoryService interface {
	// GetAllCategories fetches the full flat category list.
	GetAllCategories(ctx context.Context) ([]Category, error)

	// GetParentCategories fetches only parent-variant categories.
	GetParentCategories(ctx context.Context) ([]Category, error)

	// GetSubCategories fetches the sub-categories of one parent.
	GetSubCategories(ctx context.Context, parentID ID) ([]Category, error)

	// CreateUpdateCategory creates or updates a category.
	CreateUpdateCategory(ctx context.Context, payload CategoryPayload) (Category, error)

	// DeleteCategory soft-deletes a category or detaches it from a parent.
	DeleteCategory(ctx context.Context, categoryID, parentID ID) error
}

// Ensure Client implements CategoryService
var _ CategoryService = (*Client)(nil)
