package grocer

import (
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// ParentGroup is one parent category together with the sub-categories
// attached to it, both in the order the API returned them.
type ParentGroup struct {
	Parent   Category
	Children []Category
}

// Hierarchy is the two-level parent/sub-category grouping reconstructed from
// a flat category list. It is a derived, read-only view; rebuilding it from
// the same input yields the same grouping.
type Hierarchy struct {
	groups *orderedmap.OrderedMap[string, *ParentGroup]
	// orphans are sub-categories none of whose parent ids matched a parent
	// in the input. They are dropped from every group but kept visible here
	// so callers can flag inconsistent server data.
	orphans []Category
}

// BuildHierarchy partitions a flat category list into parents and
// sub-categories and attaches every sub-category to each parent its
// parentCategoryIds name, using tolerant id comparison. A sub-category id
// listed twice still attaches once; a parent id that matches nothing is
// silently skipped. The input is not mutated.
func BuildHierarchy(categories []Category) *Hierarchy {
	h := &Hierarchy{groups: orderedmap.New[string, *ParentGroup]()}

	for _, cat := range categories {
		if cat.IsParent() {
			if _, exists := h.groups.Get(cat.ID.Key()); !exists {
				h.groups.Set(cat.ID.Key(), &ParentGroup{Parent: cat})
			}
		}
	}

	for _, cat := range categories {
		if cat.IsParent() {
			continue
		}
		attached := false
		for _, pid := range cat.ParentCategoryIDs {
			group, exists := h.groups.Get(pid.Key())
			if !exists {
				continue
			}
			if !containsID(group.Children, cat.ID) {
				group.Children = append(group.Children, cat)
			}
			attached = true
		}
		if !attached {
			h.orphans = append(h.orphans, cat)
		}
	}

	return h
}

func containsID(categories []Category, id ID) bool {
	for _, c := range categories {
		if c.ID.Equal(id) {
			return true
		}
	}
	return false
}

// Parents returns the parent categories in stable input order.
func (h *Hierarchy) Parents() []Category {
	parents := make([]Category, 0, h.groups.Len())
	for pair := h.groups.Oldest(); pair != nil; pair = pair.Next() {
		parents = append(parents, pair.Value.Parent)
	}
	return parents
}

// Children returns the sub-categories of one parent in stable input order,
// or nil when the parent is unknown or has none.
func (h *Hierarchy) Children(parentID ID) []Category {
	group, exists := h.groups.Get(parentID.Key())
	if !exists {
		return nil
	}
	return group.Children
}

// Groups returns every parent with its children, in stable input order.
func (h *Hierarchy) Groups() []ParentGroup {
	groups := make([]ParentGroup, 0, h.groups.Len())
	for pair := h.groups.Oldest(); pair != nil; pair = pair.Next() {
		groups = append(groups, *pair.Value)
	}
	return groups
}

// Orphans returns sub-categories that matched none of the parents.
func (h *Hierarchy) Orphans() []Category {
	return h.orphans
}

// Len returns the number of parent categories.
func (h *Hierarchy) Len() int {
	return h.groups.Len()
}
