package services

import (
	"math"
	"strconv"
	"strings"

	"housing-info/models"
)

// PriceRange is a closed interval; Min <= Max always holds.
type PriceRange struct {
	Min float64
	Max float64
}

// NewPriceRange orders the bounds so that callers may pass them reversed.
func NewPriceRange(a, b float64) PriceRange {
	return PriceRange{Min: math.Min(a, b), Max: math.Max(a, b)}
}

// Contains reports whether price lies in the range, inclusive on both ends.
func (r PriceRange) Contains(price models.Count) bool {
	p := float64(price)
	return p >= r.Min && p <= r.Max
}

// ParsePriceBound validates a user-entered price: a finite, non-negative number.
func ParsePriceBound(field, raw string) (float64, error) {
	s := strings.TrimSpace(raw)
	v, err := strconv.ParseFloat(s, 64)
	if s == "" || err != nil || math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0, &ValidationError{
			Field:  field,
			Value:  raw,
			Reason: "Invalid price range. Please enter valid numbers.",
		}
	}
	return v, nil
}

// ParsePriceRange validates both bounds and normalises their order.
func ParsePriceRange(minRaw, maxRaw string) (PriceRange, error) {
	lo, err := ParsePriceBound("minimum price", minRaw)
	if err != nil {
		return PriceRange{}, err
	}
	hi, err := ParsePriceBound("maximum price", maxRaw)
	if err != nil {
		return PriceRange{}, err
	}
	return NewPriceRange(lo, hi), nil
}

// FilterByPrice returns the houses whose price lies in r, in input order.
func FilterByPrice(houses []models.House, r PriceRange) []models.House {
	return Filter(houses, func(h models.House) bool { return r.Contains(h.Price) })
}

// Filter returns a new slice with the houses matching keep.
func Filter(houses []models.House, keep func(models.House) bool) []models.House {
	result := make([]models.House, 0, len(houses))
	for _, h := range houses {
		if keep(h) {
			result = append(result, h)
		}
	}
	return result
}
