package grocer

import (
	"context"
	"sync"
)

// MockCategoryService is a test double for CategoryService.
// Each method can be overridden with a custom function.
// If not overridden, methods return empty defaults.
// Thread-safe for use in concurrent tests.
type MockCategoryService struct {
	GetAllCategoriesFunc     func(ctx context.Context) ([]Category, error)
	GetParentCategoriesFunc  func(ctx context.Context) ([]Category, error)
	GetSubCategoriesFunc     func(ctx context.Context, parentID ID) ([]Category, error)
	CreateUpdateCategoryFunc func(ctx context.Context, payload CategoryPayload) (Category, error)
	DeleteCategoryFunc       func(ctx context.Context, categoryID, parentID ID) error

	mu sync.Mutex

	// Calls tracks all method invocations for assertions
	Calls []MockCall
}

// MockCall records a method call for test assertions.
type MockCall struct {
	Method string
	Args   []any
}

// Ensure MockCategoryService implements CategoryService
var _ CategoryService = (*MockCategoryService)(nil)

func (m *MockCategoryService) record(method string, args ...any) {
	m.mu.Lock()
	m.Calls = append(m.Calls, MockCall{Method: method, Args: args})
	m.mu.Unlock()
}

// CallCount returns the number of recorded calls to method.
func (m *MockCategoryService) CallCount(method string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, c := range m.Calls {
		if c.Method == method {
			n++
		}
	}
	return n
}

func (m *MockCategoryService) GetAllCategories(ctx context.Context) ([]Category, error) {
	m.record("GetAllCategories")
	if m.GetAllCategoriesFunc != nil {
		return m.GetAllCategoriesFunc(ctx)
	}
	return nil, nil
}

func (m *MockCategoryService) GetParentCategories(ctx context.Context) ([]Category, error) {
	m.record("GetParentCategories")
	if m.GetParentCategoriesFunc != nil {
		return m.GetParentCategoriesFunc(ctx)
	}
	return nil, nil
}

func (m *MockCategoryService) GetSubCategories(ctx context.Context, parentID ID) ([]Category, error) {
	m.record("GetSubCategories", parentID)
	if m.GetSubCategoriesFunc != nil {
		return m.GetSubCategoriesFunc(ctx, parentID)
	}
	return nil, nil
}

func (m *MockCategoryService) CreateUpdateCategory(ctx context.Context, payload CategoryPayload) (Category, error) {
	m.record("CreateUpdateCategory", payload)
	if m.CreateUpdateCategoryFunc != nil {
		return m.CreateUpdateCategoryFunc(ctx, payload)
	}
	return Category{ID: payload.ID, Name: payload.Name}, nil
}

func (m *MockCategoryService) DeleteCategory(ctx context.Context, categoryID, parentID ID) error {
	m.record("DeleteCategory", categoryID, parentID)
	if m.DeleteCategoryFunc != nil {
		return m.DeleteCategoryFunc(ctx, categoryID, parentID)
	}
	return nil
}
