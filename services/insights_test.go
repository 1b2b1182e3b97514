package services

import (
	"context"
	"testing"

	"housing-info/utils"
)

func TestInsightCounts(t *testing.T) {
	svc := NewInsightService(utils.NewNopLogger())
	r := svc.Generate(sampleHouses())
	if r.TotalHouses != 5 {
		t.Errorf("TotalHouses: got %d, want 5", r.TotalHouses)
	}
	if r.PreferredArea != 1 {
		t.Errorf("PreferredArea: got %d, want 1", r.PreferredArea)
	}
}

func TestInsightPrices(t *testing.T) {
	svc := NewInsightService(utils.NewNopLogger())
	r := svc.Generate(sampleHouses())
	if r.AveragePrice != 460000 {
		t.Errorf("AveragePrice: got %d, want 460000", r.AveragePrice)
	}
	if r.MinPrice != 100000 {
		t.Errorf("MinPrice: got %d, want 100000", r.MinPrice)
	}
	if r.MaxPrice != 1500000 {
		t.Errorf("MaxPrice: got %d, want 1500000", r.MaxPrice)
	}
}

func TestInsightMostExpensive(t *testing.T) {
	svc := NewInsightService(utils.NewNopLogger())
	r := svc.Generate(sampleHouses())
	if r.MostExpensive == nil {
		t.Fatal("MostExpensive should not be nil")
	}
	if r.MostExpensive.ID != 5 {
		t.Errorf("MostExpensive: got ID %d, want 5", r.MostExpensive.ID)
	}
}

func TestInsightLargest(t *testing.T) {
	svc := NewInsightService(utils.NewNopLogger())
	r := svc.Generate(sampleHouses())
	if len(r.Largest) != 5 {
		t.Fatalf("Largest len: got %d, want 5", len(r.Largest))
	}
	wantIDs := []int{5, 1, 3, 2, 4}
	for i, want := range wantIDs {
		if r.Largest[i].ID != want {
			t.Errorf("Largest[%d]: got ID %d, want %d", i, r.Largest[i].ID, want)
		}
	}
}

func TestInsightBedroomGrouping(t *testing.T) {
	svc := NewInsightService(utils.NewNopLogger())
	r := svc.Generate(sampleHouses())
	if r.HousesByBedroom[3] != 2 {
		t.Errorf("3-bedroom count: got %d, want 2", r.HousesByBedroom[3])
	}
	if r.HousesByBedroom[5] != 1 {
		t.Errorf("5-bedroom count: got %d, want 1", r.HousesByBedroom[5])
	}
}

func TestInsightEmptyInput(t *testing.T) {
	svc := NewInsightService(utils.NewNopLogger())
	r := svc.Generate(nil)
	if r.TotalHouses != 0 || r.MostExpensive != nil {
		t.Errorf("expected an empty report for empty input, got %+v", r)
	}
}

func TestCatalogInsights(t *testing.T) {
	loader := &stubLoader{houses: sampleHouses()}
	c := NewCatalog(loader, utils.NewNopLogger())
	r, err := c.Insights(context.Background())
	if err != nil {
		t.Fatalf("Insights: %v", err)
	}
	if r.TotalHouses != 5 || loader.calls != 1 {
		t.Errorf("got %d houses after %d loads", r.TotalHouses, loader.calls)
	}
}
