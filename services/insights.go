package services

import (
	"context"
	"math"
	"sort"

	"housing-info/models"
	"housing-info/utils"
)

const largestCount = 5

type InsightService struct {
	logger *utils.Logger
}

func NewInsightService(logger *utils.Logger) *InsightService {
	return &InsightService{logger: logger}
}

// Generate computes price statistics, the largest houses by area and the
// bedroom distribution.
func (s *InsightService) Generate(houses []models.House) *models.InsightReport {
	report := &models.InsightReport{
		HousesByBedroom: make(map[int64]int),
	}

	if len(houses) == 0 {
		return report
	}

	report.TotalHouses = len(houses)
	report.MinPrice = int64(houses[0].Price)

	var total float64
	ranked := make([]models.RankedHouse, 0, len(houses))
	for i, h := range houses {
		price := int64(h.Price)
		total += float64(price)
		if price < report.MinPrice {
			report.MinPrice = price
		}
		if report.MostExpensive == nil || price > report.MaxPrice {
			report.MaxPrice = price
			report.MostExpensive = &models.RankedHouse{ID: i + 1, House: h}
		}
		if h.PrefArea {
			report.PreferredArea++
		}
		report.HousesByBedroom[int64(h.Bedrooms)]++
		ranked = append(ranked, models.RankedHouse{ID: i + 1, House: h})
	}
	report.AveragePrice = int64(math.Round(total / float64(len(houses))))

	// Largest by area; ties keep dataset order
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].House.Area > ranked[j].House.Area
	})
	if len(ranked) > largestCount {
		ranked = ranked[:largestCount]
	}
	report.Largest = ranked

	s.logger.Debug("[insights] %d houses, average price %d", report.TotalHouses, report.AveragePrice)
	return report
}

// Insights summarises the dataset.
func (c *Catalog) Insights(ctx context.Context) (*models.InsightReport, error) {
	houses, err := c.load(ctx, "stats")
	if err != nil {
		return nil, err
	}
	return NewInsightService(c.logger).Generate(houses), nil
}
