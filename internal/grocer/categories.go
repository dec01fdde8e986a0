package grocer

import (
	"context"
)

// GetAllCategories fetches the full flat category list, parents and
// sub-categories mixed. Hierarchy is reconstructed client-side, see
// BuildHierarchy.
func (c *Client) GetAllCategories(ctx context.Context) ([]Category, error) {
	var categories []Category
	res, err := c.req(ctx).Get("/category/getAll")
	return categories, decodeEnvelope(res, err, &categories)
}

// GetParentCategories fetches only the parent-variant categories.
func (c *Client) GetParentCategories(ctx context.Context) ([]Category, error) {
	var categories []Category
	res, err := c.req(ctx).Get("/category/getOnlyParentCategories")
	return categories, decodeEnvelope(res, err, &categories)
}

// GetSubCategories fetches the sub-categories attached to one parent.
func (c *Client) GetSubCategories(ctx context.Context, parentID ID) ([]Category, error) {
	if parentID.IsZero() {
		return nil, validationError("parent category id is required")
	}

	var categories []Category
	res, err := c.req(ctx).
		SetPathParams(map[string]string{
			"parentId": parentID.String(),
		}).
		Get("/category/getSubCategories/{parentId}")

	return categories, decodeEnvelope(res, err, &categories)
}

// CreateUpdateCategory creates a category, or updates it when the payload
// carries an id. The payload is validated locally first; an invalid payload
// never produces a request.
func (c *Client) CreateUpdateCategory(ctx context.Context, payload CategoryPayload) (Category, error) {
	if err := payload.Validate(); err != nil {
		return Category{}, err
	}

	var category Category
	res, err := c.req(ctx).
		SetBody(payload.normalized()).
		Post("/category/createUpdateCategory")

	return category, decodeEnvelope(res, err, &category)
}

// DeleteCategory soft-deletes a category, or detaches it from one parent when
// parentID is set. Whether removing the last parent link detaches or deletes
// the record is the server's call; callers should reload either way.
func (c *Client) DeleteCategory(ctx context.Context, categoryID, parentID ID) error {
	if categoryID.IsZero() {
		return validationError("category id is required")
	}

	req := c.req(ctx).SetQueryParam("categoryId", categoryID.String())
	if !parentID.IsZero() {
		req.SetQueryParam("parentId", parentID.String())
	}
	res, err := req.Delete("/category/softDeleteOrDetach")

	return decodeEnvelope(res, err, nil)
}
