package services

import (
	"context"

	"housing-info/models"
)

func sampleHouses() []models.House {
	return []models.House{
		{Price: 300000, Area: 1200, Bedrooms: 3, Bathrooms: 2, Parking: 1, FurnishingStatus: models.Furnished},
		{Price: 100000, Area: 800, Bedrooms: 2, Bathrooms: 1, Parking: 0, FurnishingStatus: models.Unfurnished},
		{Price: 200000, Area: 950, Bedrooms: 3, Bathrooms: 1, Parking: 2, FurnishingStatus: models.SemiFurnished},
		{Price: 200000, Area: 700, Bedrooms: 1, Bathrooms: 1, Parking: 1, FurnishingStatus: models.Furnished},
		{Price: 1500000, Area: 4000, Bedrooms: 5, Bathrooms: 4, Parking: 3, PrefArea: true, FurnishingStatus: models.Unfurnished},
	}
}

type stubLoader struct {
	houses []models.House
	err    error
	calls  int
}

func (s *stubLoader) Load(context.Context) ([]models.House, error) {
	s.calls++
	return s.houses, s.err
}
