package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"housing-info/knowledge"
	"housing-info/models"
)

type memorySink struct {
	content string
	writes  int
	err     error
}

func (m *memorySink) Write(content string) error {
	if m.err != nil {
		return m.err
	}
	m.content = content
	m.writes++
	return nil
}

func (m *memorySink) Path() string { return "memory://housing.pl" }

func TestExportKnowledgeBase(t *testing.T) {
	c := newTestCatalog(&stubLoader{houses: sampleHouses()[:2]})
	sink := &memorySink{}

	r, err := c.ExportKnowledgeBase(context.Background(), sink, knowledge.Options{})
	if err != nil {
		t.Fatal(err)
	}
	if r.Facts != 2 {
		t.Errorf("Facts: got %d, want 2", r.Facts)
	}
	if got := strings.Count(sink.content, "\nhouse("); got != 2 {
		t.Errorf("fact lines: got %d, want 2", got)
	}
	if len(r.Matches[knowledge.QueryAffordable]) != 2 {
		t.Errorf("affordable matches: got %v", r.Matches[knowledge.QueryAffordable])
	}
}

func TestExportKnowledgeBaseSinkFailure(t *testing.T) {
	c := newTestCatalog(&stubLoader{houses: sampleHouses()})
	sinkErr := errors.New("disk full")

	_, err := c.ExportKnowledgeBase(context.Background(), &memorySink{err: sinkErr}, knowledge.Options{})
	if !errors.Is(err, sinkErr) {
		t.Errorf("expected sink error, got %v", err)
	}
}

func TestCatalogQuery(t *testing.T) {
	c := newTestCatalog(&stubLoader{houses: sampleHouses()})

	matches, err := c.Query(context.Background(), knowledge.QueryLuxury, knowledge.Options{})
	if err != nil {
		t.Fatal(err)
	}
	if len(matches) != 1 {
		t.Fatalf("matches: got %d, want 1", len(matches))
	}
	if matches[0].ID != 5 || matches[0].House.Price != models.Count(1500000) {
		t.Errorf("match: got %+v", matches[0])
	}
}

func TestExportKnowledgeBaseQueryFailureKeepsWrite(t *testing.T) {
	evalErr := errors.New("stratification failed")
	orig := evaluate
	evaluate = func([]models.House, knowledge.Options) (knowledge.Results, error) { return nil, evalErr }
	t.Cleanup(func() { evaluate = orig })

	c := newTestCatalog(&stubLoader{houses: sampleHouses()})
	sink := &memorySink{}

	r, err := c.ExportKnowledgeBase(context.Background(), sink, knowledge.Options{})
	if err != nil {
		t.Fatalf("export reported as failed after a successful write: %v", err)
	}
	if sink.writes != 1 || r.Facts != 5 || r.Path != sink.Path() {
		t.Errorf("write not reported: writes=%d facts=%d path=%q", sink.writes, r.Facts, r.Path)
	}
	if !errors.Is(r.QueryErr, evalErr) {
		t.Errorf("QueryErr: got %v, want %v", r.QueryErr, evalErr)
	}
	if r.Matches != nil {
		t.Errorf("Matches: got %v, want nil", r.Matches)
	}
}
