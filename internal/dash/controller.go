// Package dash holds the view-state controller behind the admin category
// screens. It owns the last loaded category collection and everything derived
// from it (hierarchy, search filter, expanded nodes), and runs mutations
// through the API followed by a full reload. It renders nothing; a front end
// reads snapshots and calls the mutation methods.
package dash

import (
	"context"
	"strings"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/avikko/grocer-admin/internal/grocer"
)

// State is the controller's loading state.
type State int

const (
	StateIdle State = iota
	StateLoading
	StateLoaded
	StateError
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateLoading:
		return "loading"
	case StateLoaded:
		return "loaded"
	case StateError:
		return "error"
	default:
		return "unknown"
	}
}

// Controller keeps the category list and its derived views in sync with the
// server. The server is the source of truth: after any successful mutation
// the whole flat list is refetched and the hierarchy rebuilt, never patched
// incrementally.
//
// Overlapping reloads are not coordinated. Whichever response resolves last
// overwrites the collection, matching the single-user admin surface this
// backs.
type Controller struct {
	svc grocer.CategoryService

	mu         sync.Mutex
	state      State
	submitting bool
	lastErr    string
	categories []grocer.Category
	hierarchy  *grocer.Hierarchy
	filter     string
	expanded   map[string]bool
}

func NewController(svc grocer.CategoryService) *Controller {
	return &Controller{
		svc:      svc,
		state:    StateIdle,
		expanded: make(map[string]bool),
	}
}

// Reload refetches the flat category list and rebuilds the derived views. On
// failure the previous collection is kept and the state moves to StateError
// with the surfaced message.
func (c *Controller) Reload(ctx context.Context) error {
	c.mu.Lock()
	c.state = StateLoading
	c.mu.Unlock()

	categories, err := c.svc.GetAllCategories(ctx)

	c.mu.Lock()
	defer c.mu.Unlock()
	if err != nil {
		c.state = StateError
		c.lastErr = err.Error()
		log.Error().Err(err).Msg("category reload failed")
		return err
	}

	c.state = StateLoaded
	c.lastErr = ""
	c.categories = categories
	c.hierarchy = grocer.BuildHierarchy(categories)
	c.pruneExpanded()
	log.Info().Int("count", len(categories)).Msg("categories loaded")
	return nil
}

// pruneExpanded drops expanded-node entries whose ids no longer exist in the
// loaded collection. Caller holds c.mu.
func (c *Controller) pruneExpanded() {
	alive := make(map[string]bool, len(c.categories))
	for _, cat := range c.categories {
		alive[cat.ID.Key()] = true
	}
	for key := range c.expanded {
		if !alive[key] {
			delete(c.expanded, key)
		}
	}
}

// Save validates the payload, submits it, and reloads on success. Validation
// failures never reach the API. On a failed submit the previous collection
// and state are kept, with the error message surfaced.
func (c *Controller) Save(ctx context.Context, payload grocer.CategoryPayload) (grocer.Category, error) {
	if err := payload.Validate(); err != nil {
		c.setError(err)
		return grocer.Category{}, err
	}

	c.setSubmitting(true)
	defer c.setSubmitting(false)

	saved, err := c.svc.CreateUpdateCategory(ctx, payload)
	if err != nil {
		c.setError(err)
		return grocer.Category{}, err
	}

	log.Info().Str("id", saved.ID.String()).Str("name", saved.Name).Msg("category saved")
	if err := c.Reload(ctx); err != nil {
		return saved, err
	}
	return saved, nil
}

// Delete removes a category, or detaches it from one parent when parentID is
// set, then reloads. A failed delete leaves the local collection untouched.
func (c *Controller) Delete(ctx context.Context, categoryID, parentID grocer.ID) error {
	c.setSubmitting(true)
	defer c.setSubmitting(false)

	if err := c.svc.DeleteCategory(ctx, categoryID, parentID); err != nil {
		c.setError(err)
		return err
	}

	log.Info().Str("id", categoryID.String()).Msg("category deleted")
	return c.Reload(ctx)
}

func (c *Controller) setSubmitting(v bool) {
	c.mu.Lock()
	c.submitting = v
	c.mu.Unlock()
}

// setError records the message for the UI without touching the loaded
// collection or the loading state.
func (c *Controller) setError(err error) {
	c.mu.Lock()
	c.lastErr = err.Error()
	c.mu.Unlock()
}

// --- Snapshot accessors ---

func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

func (c *Controller) Submitting() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.submitting
}

// Err returns the last surfaced error message, "" when none.
func (c *Controller) Err() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastErr
}

// Categories returns a copy of the last loaded flat collection.
func (c *Controller) Categories() []grocer.Category {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]grocer.Category, len(c.categories))
	copy(out, c.categories)
	return out
}

// Hierarchy returns the parent/sub grouping derived from the last load, or
// nil before the first successful load.
func (c *Controller) Hierarchy() *grocer.Hierarchy {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.hierarchy
}

// SetFilter sets the search text. Filtering is local; no request is made.
func (c *Controller) SetFilter(text string) {
	c.mu.Lock()
	c.filter = strings.TrimSpace(text)
	c.mu.Unlock()
}

func (c *Controller) Filter() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.filter
}

// Visible returns the categories matching the current filter, in collection
// order. An empty filter matches everything. Matching is a case-insensitive
// substring check over name and both descriptions.
func (c *Controller) Visible() []grocer.Category {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.filter == "" {
		out := make([]grocer.Category, len(c.categories))
		copy(out, c.categories)
		return out
	}

	needle := strings.ToLower(c.filter)
	var out []grocer.Category
	for _, cat := range c.categories {
		if matchesFilter(cat, needle) {
			out = append(out, cat)
		}
	}
	return out
}

func matchesFilter(cat grocer.Category, needle string) bool {
	return strings.Contains(strings.ToLower(cat.Name), needle) ||
		strings.Contains(strings.ToLower(cat.ShortDescription), needle) ||
		strings.Contains(strings.ToLower(cat.LongDescription), needle)
}

// --- Expanded-node set ---

// Toggle flips the expanded state of a node and returns the new state.
func (c *Controller) Toggle(id grocer.ID) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	key := id.Key()
	if c.expanded[key] {
		delete(c.expanded, key)
		return false
	}
	c.expanded[key] = true
	return true
}

func (c *Controller) IsExpanded(id grocer.ID) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.expanded[id.Key()]
}

// ExpandedCount returns how many nodes are currently expanded.
func (c *Controller) ExpandedCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.expanded)
}
