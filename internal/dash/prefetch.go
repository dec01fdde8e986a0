package dash

import (
	"context"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/avikko/grocer-admin/internal/grocer"
)

// FetchSubCategoryIndex asks the server for each parent's sub-categories
// concurrently and returns them keyed by the parent's canonical id. This is
// the slow path used to cross-check the locally reconstructed hierarchy
// against what the getSubCategories endpoint reports.
func FetchSubCategoryIndex(ctx context.Context, svc grocer.CategoryService, parents []grocer.Category) (map[string][]grocer.Category, error) {
	results := make([][]grocer.Category, len(parents))
	g, ctx := errgroup.WithContext(ctx)

	for i := range parents {
		i := i
		g.Go(func() error {
			subs, err := svc.GetSubCategories(ctx, parents[i].ID)
			if err != nil {
				log.Error().Str("parentId", parents[i].ID.String()).Err(err).Msg("failed to fetch sub-categories")
				return err
			}
			results[i] = subs
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	index := make(map[string][]grocer.Category, len(parents))
	for i, parent := range parents {
		index[parent.ID.Key()] = results[i]
	}
	return index, nil
}
