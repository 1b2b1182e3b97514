package services

import (
	"context"
	"fmt"

	"housing-info/models"
	"housing-info/source"
	"housing-info/utils"
)

// SearchResult is the outcome of a price-range search.
type SearchResult struct {
	Range  PriceRange
	Houses []models.House
}

// Catalog runs one operation against a freshly loaded dataset. Nothing is
// cached between calls.
type Catalog struct {
	loader source.Loader
	logger *utils.Logger
}

// NewCatalog creates a Catalog reading through loader.
func NewCatalog(loader source.Loader, logger *utils.Logger) *Catalog {
	return &Catalog{loader: loader, logger: logger}
}

func (c *Catalog) load(ctx context.Context, op string) ([]models.House, error) {
	houses, err := c.loader.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	c.logger.Debug("[catalog] %s: loaded %d houses", op, len(houses))
	return houses, nil
}

// All returns every house in file order.
func (c *Catalog) All(ctx context.Context) ([]models.House, error) {
	return c.load(ctx, "display")
}

// Search validates the raw bounds before touching the dataset, then filters.
func (c *Catalog) Search(ctx context.Context, minRaw, maxRaw string) (SearchResult, error) {
	rng, err := ParsePriceRange(minRaw, maxRaw)
	if err != nil {
		return SearchResult{}, err
	}
	houses, err := c.load(ctx, "search")
	if err != nil {
		return SearchResult{}, err
	}
	matched := FilterByPrice(houses, rng)
	c.logger.Debug("[catalog] search %.0f-%.0f: %d of %d houses match", rng.Min, rng.Max, len(matched), len(houses))
	return SearchResult{Range: rng, Houses: matched}, nil
}

// CountFurnishing reports the furnishing-status breakdown.
func (c *Catalog) CountFurnishing(ctx context.Context) (models.FurnishingReport, error) {
	houses, err := c.load(ctx, "count")
	if err != nil {
		return models.FurnishingReport{}, err
	}
	return CountFurnishing(houses), nil
}

// Sort returns the dataset ordered by key.
func (c *Catalog) Sort(ctx context.Context, key SortKey) ([]models.House, error) {
	if _, err := ParseSortKey(string(key)); err != nil {
		return nil, err
	}
	houses, err := c.load(ctx, "sort")
	if err != nil {
		return nil, err
	}
	return SortBy(houses, key)
}

// Markup applies percentage to every price.
func (c *Catalog) Markup(ctx context.Context, percentage float64) (MarkupResult, error) {
	if err := ValidatePercentage(percentage); err != nil {
		return MarkupResult{}, err
	}
	houses, err := c.load(ctx, "markup")
	if err != nil {
		return MarkupResult{}, err
	}
	return ApplyMarkup(houses, percentage)
}
