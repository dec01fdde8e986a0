package grocer

import (
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// CategoryPayload is the request body for createUpdateCategory. An empty ID
// means create, a set ID means update.
type CategoryPayload struct {
	ID                ID     `json:"id,omitempty"`
	Name              string `json:"categoryName" validate:"required"`
	ShortDescription  string `json:"shortDescription" validate:"required,max=100"`
	LongDescription   string `json:"longDescription,omitempty"`
	CoverImage        string `json:"coverImage,omitempty" validate:"omitempty,url"`
	IsSubCategory     bool   `json:"isSubCategory"`
	ParentCategoryIDs []ID   `json:"parentCategoryIds,omitempty"`
}

// Validate checks the payload against the rules the server enforces, so
// rejection happens before any request: name and short description required,
// short description capped, a sub-category must name at least one parent.
func (p *CategoryPayload) Validate() error {
	q := p.normalized()

	if err := validate.Struct(&q); err != nil {
		if fieldErrs, ok := err.(validator.ValidationErrors); ok {
			return validationError(describeFieldErrors(fieldErrs))
		}
		return validationError(err.Error())
	}
	if q.IsSubCategory && len(q.ParentCategoryIDs) == 0 {
		return validationError("a sub-category needs at least one parent category")
	}
	for _, pid := range q.ParentCategoryIDs {
		if pid.IsZero() {
			return validationError("parent category ids must not be empty")
		}
	}
	return nil
}

// normalized returns a copy with whitespace trimmed and the variant invariant
// applied: parent categories carry no parent ids.
func (p *CategoryPayload) normalized() CategoryPayload {
	q := *p
	q.Name = strings.TrimSpace(q.Name)
	q.ShortDescription = strings.TrimSpace(q.ShortDescription)
	if !q.IsSubCategory {
		q.ParentCategoryIDs = nil
	}
	return q
}

func describeFieldErrors(errs validator.ValidationErrors) string {
	var parts []string
	for _, fe := range errs {
		switch {
		case fe.Field() == "Name":
			parts = append(parts, "category name is required")
		case fe.Field() == "ShortDescription" && fe.Tag() == "max":
			parts = append(parts, "short description must be at most 100 characters")
		case fe.Field() == "ShortDescription":
			parts = append(parts, "short description is required")
		case fe.Field() == "CoverImage":
			parts = append(parts, "cover image must be a valid URL")
		default:
			parts = append(parts, fe.Field()+" is invalid")
		}
	}
	return strings.Join(parts, "; ")
}
