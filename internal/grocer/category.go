package grocer

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
)

const (
	// ShortDescriptionMax is the upper bound the API enforces on short
	// descriptions. Mirrored client-side so bad payloads never leave the app.
	ShortDescriptionMax = 100

	// DefaultCoverImage is shown for categories without a usable cover URL.
	DefaultCoverImage = "https://cdn.grocerhub.app/static/category-placeholder.png"
)

// ID is a category identifier. The API is inconsistent about identifier
// typing: some endpoints return numbers, others strings, for the same record.
// ID accepts both on unmarshal and compares through a canonical form, so
// "12" and 12 refer to the same category.
type ID string

// UnmarshalJSON accepts a JSON string or a JSON number.
func (id *ID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*id = ID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*id = ID(n.String())
	return nil
}

// MarshalJSON always emits the string form. The API accepts it on every
// endpoint, which the number form does not.
func (id ID) MarshalJSON() ([]byte, error) {
	return json.Marshal(string(id))
}

// Key returns the canonical comparison form of the identifier. Integer-valued
// ids normalize to their decimal representation ("007" == "7" == 7), anything
// else compares as a trimmed string.
func (id ID) Key() string {
	s := strings.TrimSpace(string(id))
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return strconv.FormatInt(n, 10)
	}
	return s
}

// Equal reports whether two identifiers refer to the same category.
func (id ID) Equal(other ID) bool {
	return id.Key() == other.Key()
}

func (id ID) String() string {
	return string(id)
}

// IsZero reports whether the identifier is unset.
func (id ID) IsZero() bool {
	return strings.TrimSpace(string(id)) == ""
}

// Category is the single domain entity of the category service. A category is
// exactly one of two variants: a parent (IsSubCategory false, no parent ids)
// or a sub-category (IsSubCategory true, one or more parent ids). A
// sub-category may hang under several parents at once.
type Category struct {
	ID                ID     `json:"id"`
	Name              string `json:"categoryName"`
	ShortDescription  string `json:"shortDescription"`
	LongDescription   string `json:"longDescription,omitempty"`
	CoverImage        string `json:"coverImage,omitempty"`
	IsSubCategory     bool   `json:"isSubCategory"`
	ParentCategoryIDs []ID   `json:"parentCategoryIds,omitempty"`

	// Display-only, passed through as the API sent them.
	CreatedAt string `json:"createdAt,omitempty"`
	UpdatedAt string `json:"updatedAt,omitempty"`
}

// categoryWire mirrors Category but carries both spellings of the name field.
// Older endpoints return "name", newer ones "categoryName".
type categoryWire struct {
	ID                ID     `json:"id"`
	Name              string `json:"categoryName"`
	AltName           string `json:"name"`
	ShortDescription  string `json:"shortDescription"`
	LongDescription   string `json:"longDescription"`
	CoverImage        string `json:"coverImage"`
	IsSubCategory     bool   `json:"isSubCategory"`
	ParentCategoryIDs []ID   `json:"parentCategoryIds"`
	CreatedAt         string `json:"createdAt"`
	UpdatedAt         string `json:"updatedAt"`
}

// UnmarshalJSON normalizes the two name spellings into Name and enforces the
// variant invariant: parent categories never carry parent ids, whatever the
// server sent.
func (c *Category) UnmarshalJSON(b []byte) error {
	var w categoryWire
	if err := json.Unmarshal(b, &w); err != nil {
		return err
	}
	name := w.Name
	if name == "" {
		name = w.AltName
	}
	*c = Category{
		ID:                w.ID,
		Name:              name,
		ShortDescription:  w.ShortDescription,
		LongDescription:   w.LongDescription,
		CoverImage:        w.CoverImage,
		IsSubCategory:     w.IsSubCategory,
		ParentCategoryIDs: w.ParentCategoryIDs,
		CreatedAt:         w.CreatedAt,
		UpdatedAt:         w.UpdatedAt,
	}
	if !c.IsSubCategory {
		c.ParentCategoryIDs = nil
	}
	return nil
}

// IsParent reports whether the category is a top-level parent.
func (c Category) IsParent() bool {
	return !c.IsSubCategory
}

// CoverImageURL returns the cover image URL, falling back to the placeholder
// for categories without one.
func (c Category) CoverImageURL() string {
	if strings.TrimSpace(c.CoverImage) == "" {
		return DefaultCoverImage
	}
	return c.CoverImage
}

// HasParent reports whether the category lists the given id among its parents.
func (c Category) HasParent(parentID ID) bool {
	for _, pid := range c.ParentCategoryIDs {
		if pid.Equal(parentID) {
			return true
		}
	}
	return false
}
