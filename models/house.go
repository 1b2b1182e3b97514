package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// FurnishingStatus is the furnishing level of a listing.
type FurnishingStatus string

const (
	Furnished     FurnishingStatus = "furnished"
	SemiFurnished FurnishingStatus = "semi-furnished"
	Unfurnished   FurnishingStatus = "unfurnished"
)

// FurnishingStatuses lists every valid status in display order.
var FurnishingStatuses = []FurnishingStatus{Furnished, SemiFurnished, Unfurnished}

// ParseFurnishingStatus matches s case-insensitively against the known statuses.
func ParseFurnishingStatus(s string) (FurnishingStatus, error) {
	status := FurnishingStatus(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range FurnishingStatuses {
		if status == known {
			return known, nil
		}
	}
	return "", fmt.Errorf("unknown furnishing status %q", s)
}

// Label returns the status with its first letter upper-cased, e.g. "Semi-furnished".
func (f FurnishingStatus) Label() string {
	if f == "" {
		return ""
	}
	return strings.ToUpper(string(f[:1])) + string(f[1:])
}

// Heading upper-cases every hyphen-separated word, e.g. "Semi-Furnished".
// It names the status in summaries; table cells use Label.
func (f FurnishingStatus) Heading() string {
	words := strings.Split(string(f), "-")
	for i, w := range words {
		if w != "" {
			words[i] = strings.ToUpper(w[:1]) + w[1:]
		}
	}
	return strings.Join(words, "-")
}

func (f *FurnishingStatus) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("furnishingstatus: %w", err)
	}
	status, err := ParseFurnishingStatus(s)
	if err != nil {
		return err
	}
	*f = status
	return nil
}

// Count is a non-negative integer that the dataset may encode either as a
// JSON number or as a numeric string ("500000").
type Count int64

func (c *Count) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*c = 0
		return nil
	}

	raw := string(data)
	if len(data) > 0 && data[0] == '"' {
		if err := json.Unmarshal(data, &raw); err != nil {
			return err
		}
		raw = strings.TrimSpace(raw)
	}

	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		// whole-valued floats such as 7420000.0 are accepted
		f, ferr := strconv.ParseFloat(raw, 64)
		if ferr != nil || f != float64(int64(f)) {
			return fmt.Errorf("not an integer: %q", raw)
		}
		n = int64(f)
	}
	if n < 0 {
		return fmt.Errorf("negative value: %d", n)
	}
	*c = Count(n)
	return nil
}

func (c Count) MarshalJSON() ([]byte, error) {
	return []byte(strconv.Quote(strconv.FormatInt(int64(c), 10))), nil
}

// YesNo is a boolean encoded as "yes"/"no" (any case). JSON booleans are
// accepted too.
type YesNo bool

func (y *YesNo) UnmarshalJSON(data []byte) error {
	var b bool
	if err := json.Unmarshal(data, &b); err == nil {
		*y = YesNo(b)
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("expected \"yes\" or \"no\": %s", data)
	}
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "yes":
		*y = true
	case "no", "":
		*y = false
	default:
		return fmt.Errorf("expected \"yes\" or \"no\", got %q", s)
	}
	return nil
}

func (y YesNo) MarshalJSON() ([]byte, error) {
	if y {
		return []byte(`"yes"`), nil
	}
	return []byte(`"no"`), nil
}

// House is a single listing from the housing dataset.
type House struct {
	Price            Count            `json:"price"`
	Area             Count            `json:"area"`
	Bedrooms         Count            `json:"bedrooms"`
	Bathrooms        Count            `json:"bathrooms"`
	Stories          Count            `json:"stories"`
	MainRoad         YesNo            `json:"mainroad"`
	GuestRoom        YesNo            `json:"guestroom"`
	Basement         YesNo            `json:"basement"`
	HotWaterHeating  YesNo            `json:"hotwaterheating"`
	AirConditioning  YesNo            `json:"airconditioning"`
	Parking          Count            `json:"parking"`
	PrefArea         YesNo            `json:"prefarea"`
	FurnishingStatus FurnishingStatus `json:"furnishingstatus"`
}

// Validate checks the invariants that JSON decoding alone cannot enforce.
func (h House) Validate() error {
	if h.FurnishingStatus == "" {
		return fmt.Errorf("missing furnishingstatus")
	}
	return nil
}

// MarkedUpHouse is a House whose Price has been marked up; OriginalPrice
// keeps the price before markup.
type MarkedUpHouse struct {
	House
	OriginalPrice Count `json:"originalPrice"`
}

// Difference is the amount added by the markup.
func (m MarkedUpHouse) Difference() int64 {
	return int64(m.Price) - int64(m.OriginalPrice)
}

// FurnishingReport holds per-status counts over a dataset.
type FurnishingReport struct {
	Counts map[FurnishingStatus]int
	Total  int
}

// Empty reports whether the report was computed over no records.
func (r FurnishingReport) Empty() bool {
	return r.Total == 0
}

// Percentage returns the share of status in the dataset, 0 when empty.
func (r FurnishingReport) Percentage(status FurnishingStatus) float64 {
	if r.Total == 0 {
		return 0
	}
	return float64(r.Counts[status]) / float64(r.Total) * 100
}

// PercentageLabel formats Percentage to one decimal place, e.g. "33.3%".
func (r FurnishingReport) PercentageLabel(status FurnishingStatus) string {
	return strconv.FormatFloat(r.Percentage(status), 'f', 1, 64) + "%"
}
