package services

import (
	"context"
	"fmt"

	"housing-info/knowledge"
	"housing-info/models"
)

// TextSink receives a fully rendered document, replacing any previous one.
type TextSink interface {
	Write(content string) error
	Path() string
}

// ExportResult summarises a knowledge-base export. The file has been written
// whenever an ExportResult is returned; QueryErr reports a failure to
// evaluate the canned queries over it, in which case Matches is nil.
type ExportResult struct {
	Path     string
	Facts    int
	Matches  knowledge.Results
	QueryErr error
}

// QueryMatch is a house selected by a knowledge-base query, with its fact ID.
type QueryMatch struct {
	ID    int
	House models.House
}

// evaluate runs the canned queries; replaced in tests.
var evaluate = knowledge.Evaluate

// ExportKnowledgeBase renders the dataset as Prolog, writes it to sink, and
// evaluates the canned queries over the same facts.
func (c *Catalog) ExportKnowledgeBase(ctx context.Context, sink TextSink, opts knowledge.Options) (ExportResult, error) {
	houses, err := c.load(ctx, "export")
	if err != nil {
		return ExportResult{}, err
	}

	if err := sink.Write(knowledge.RenderProlog(houses, opts)); err != nil {
		return ExportResult{}, fmt.Errorf("export: %w", err)
	}
	c.logger.Info("[export] wrote %d facts to %s", len(houses), sink.Path())

	res := ExportResult{Path: sink.Path(), Facts: len(houses)}
	matches, err := evaluate(houses, opts)
	if err != nil {
		c.logger.Warn("[export] %s written, but its queries could not be evaluated: %v", sink.Path(), err)
		res.QueryErr = fmt.Errorf("export: %w", err)
		return res, nil
	}
	res.Matches = matches
	return res, nil
}

// Query returns the houses derived by one canned knowledge-base query.
func (c *Catalog) Query(ctx context.Context, q knowledge.Query, opts knowledge.Options) ([]QueryMatch, error) {
	houses, err := c.load(ctx, "query")
	if err != nil {
		return nil, err
	}
	results, err := evaluate(houses, opts)
	if err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}

	ids := results[q]
	matches := make([]QueryMatch, 0, len(ids))
	for _, id := range ids {
		matches = append(matches, QueryMatch{ID: id, House: houses[id-1]})
	}
	return matches, nil
}
