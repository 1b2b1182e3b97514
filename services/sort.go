package services

import (
	"sort"
	"strings"

	"housing-info/models"
)

// SortKey names a numeric field houses can be ordered by.
type SortKey string

const (
	SortByPrice     SortKey = "price"
	SortByParking   SortKey = "parking"
	SortByArea      SortKey = "area"
	SortByBedrooms  SortKey = "bedrooms"
	SortByBathrooms SortKey = "bathrooms"
)

// SortKeys lists the keys in sort-menu order.
var SortKeys = []SortKey{SortByPrice, SortByParking, SortByArea, SortByBedrooms, SortByBathrooms}

var sortAccessors = map[SortKey]func(models.House) models.Count{
	SortByPrice:     func(h models.House) models.Count { return h.Price },
	SortByParking:   func(h models.House) models.Count { return h.Parking },
	SortByArea:      func(h models.House) models.Count { return h.Area },
	SortByBedrooms:  func(h models.House) models.Count { return h.Bedrooms },
	SortByBathrooms: func(h models.House) models.Count { return h.Bathrooms },
}

var sortMenuLabels = map[SortKey]string{
	SortByPrice:     "Price (low to high)",
	SortByParking:   "Parking spaces",
	SortByArea:      "Area (sq ft)",
	SortByBedrooms:  "Number of bedrooms",
	SortByBathrooms: "Number of bathrooms",
}

// MenuLabel is the text shown for the key in the sort submenu.
func (k SortKey) MenuLabel() string {
	return sortMenuLabels[k]
}

// ParseSortKey matches name case-insensitively against SortKeys.
func ParseSortKey(name string) (SortKey, error) {
	key := SortKey(strings.ToLower(strings.TrimSpace(name)))
	if _, ok := sortAccessors[key]; !ok {
		return "", &ValidationError{Field: "sort key", Value: name, Reason: "Invalid sorting criteria!"}
	}
	return key, nil
}

// SortKeyFromChoice maps a sort-submenu selection ("1".."5") to its key.
func SortKeyFromChoice(choice string) (SortKey, error) {
	c := strings.TrimSpace(choice)
	if len(c) == 1 && c[0] >= '1' && int(c[0]-'1') < len(SortKeys) {
		return SortKeys[c[0]-'1'], nil
	}
	return "", &ValidationError{
		Field:  "sort choice",
		Value:  choice,
		Reason: "Invalid choice! Please select a number between 1 and 5.",
	}
}

// SortBy returns a copy of houses in ascending order of key. Equal keys keep
// their relative order.
func SortBy(houses []models.House, key SortKey) ([]models.House, error) {
	value, ok := sortAccessors[key]
	if !ok {
		return nil, &ValidationError{Field: "sort key", Value: string(key), Reason: "Invalid sorting criteria!"}
	}

	sorted := make([]models.House, len(houses))
	copy(sorted, houses)
	sort.SliceStable(sorted, func(i, j int) bool {
		return value(sorted[i]) < value(sorted[j])
	})
	return sorted, nil
}
