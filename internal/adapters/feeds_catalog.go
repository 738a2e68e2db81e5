package adapters

import (
	"context"

	catalogrepo "modtok/internal/catalog/repository"
	"modtok/internal/feeds"
	"modtok/internal/shared/kinds"
)

// FeedsCatalogAdapter exposes published catalog pages to the feeds module.
type FeedsCatalogAdapter struct {
	repo catalogrepo.Repository
}

// NewFeedsCatalogAdapter creates an adapter over the catalog repository.
func NewFeedsCatalogAdapter(repo catalogrepo.Repository) *FeedsCatalogAdapter {
	return &FeedsCatalogAdapter{repo: repo}
}

// ListPublishedPages implements the feeds module's CatalogPageLister.
func (a *FeedsCatalogAdapter) ListPublishedPages(ctx context.Context, entityType kinds.EntityType) ([]feeds.EntityPage, error) {
	refs, err := a.repo.ListPublishedRefs(ctx, entityType)
	if err != nil {
		return nil, err
	}

	pages := make([]feeds.EntityPage, 0, len(refs))
	for _, ref := range refs {
		pages = append(pages, feeds.EntityPage{
			Type:      entityType,
			Slug:      ref.Slug,
			UpdatedAt: ref.UpdatedAt,
		})
	}
	return pages, nil
}
