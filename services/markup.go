package services

import (
	"fmt"
	"math"
	"strconv"

	"housing-info/models"
)

// MarkupResult is the outcome of applying a percentage markup to a dataset.
type MarkupResult struct {
	Percentage  float64
	Houses      []models.MarkedUpHouse
	TotalMarkup int64
}

// maxMarkedUpPrice is the first float64 value that no longer fits in an int64.
const maxMarkedUpPrice = float64(1 << 63)

// MarkupPrice returns price increased by percentage, rounded half away from
// zero. A result that does not fit in a price is a *ValidationError.
func MarkupPrice(price models.Count, percentage float64) (models.Count, error) {
	p := float64(price)
	marked := math.Round(p + p*(percentage/100))
	if marked >= maxMarkedUpPrice {
		return 0, overflowError(price, percentage)
	}
	return models.Count(marked), nil
}

func overflowError(price models.Count, percentage float64) error {
	return &ValidationError{
		Field:  "markup percentage",
		Value:  strconv.FormatFloat(percentage, 'f', -1, 64),
		Reason: fmt.Sprintf("A %s%% markup on %d exceeds the largest supported price.", strconv.FormatFloat(percentage, 'f', -1, 64), price),
	}
}

// ValidatePercentage rejects non-finite percentages and discounts beyond 100%.
func ValidatePercentage(percentage float64) error {
	if math.IsNaN(percentage) || math.IsInf(percentage, 0) || percentage < -100 {
		return &ValidationError{
			Field:  "markup percentage",
			Value:  strconv.FormatFloat(percentage, 'f', -1, 64),
			Reason: "Markup percentage must be a number of at least -100.",
		}
	}
	return nil
}

// ApplyMarkup derives a new record for every house; the input is not modified.
func ApplyMarkup(houses []models.House, percentage float64) (MarkupResult, error) {
	if err := ValidatePercentage(percentage); err != nil {
		return MarkupResult{}, err
	}

	result := MarkupResult{
		Percentage: percentage,
		Houses:     make([]models.MarkedUpHouse, 0, len(houses)),
	}
	for _, h := range houses {
		marked := models.MarkedUpHouse{House: h, OriginalPrice: h.Price}
		price, err := MarkupPrice(h.Price, percentage)
		if err != nil {
			return MarkupResult{}, err
		}
		marked.Price = price

		diff := marked.Difference()
		if (diff > 0 && result.TotalMarkup > math.MaxInt64-diff) ||
			(diff < 0 && result.TotalMarkup < math.MinInt64-diff) {
			return MarkupResult{}, overflowError(h.Price, percentage)
		}
		result.TotalMarkup += diff
		result.Houses = append(result.Houses, marked)
	}
	return result, nil
}
