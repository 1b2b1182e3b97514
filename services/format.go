package services

import (
	"fmt"
	"strconv"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"housing-info/models"
)

// Formatter turns records into display strings for one locale and currency.
type Formatter struct {
	currency string
	printer  *message.Printer
}

// NewFormatter creates a Formatter. An unparsable locale falls back to English.
func NewFormatter(currencySymbol, locale string) *Formatter {
	tag, err := language.Parse(locale)
	if err != nil {
		tag = language.English
	}
	return &Formatter{currency: currencySymbol, printer: message.NewPrinter(tag)}
}

// Number groups thousands, e.g. 1234567 -> "1,234,567".
func (f *Formatter) Number(n int64) string {
	return f.printer.Sprintf("%d", n)
}

// Currency formats a whole-unit amount, e.g. "RM 500,000". Negative amounts
// put the sign before the symbol.
func (f *Formatter) Currency(amount int64) string {
	if amount < 0 {
		return "-" + f.currency + " " + f.Number(-amount)
	}
	return f.currency + " " + f.Number(amount)
}

// Bound formats a user-entered price bound, which may carry decimals.
func (f *Formatter) Bound(v float64) string {
	if v == float64(int64(v)) {
		return f.Currency(int64(v))
	}
	return f.currency + " " + f.printer.Sprintf("%.2f", v)
}

func (f *Formatter) Area(area models.Count) string {
	return f.Number(int64(area)) + " sq ft"
}

// Bool renders yes/no as a check mark or a cross.
func Bool(v models.YesNo) string {
	if v {
		return "✓"
	}
	return "✗"
}

func bedBath(h models.House) string {
	return fmt.Sprintf("%d/%d", h.Bedrooms, h.Bathrooms)
}

// HouseHeaders are the column titles matching HouseRow.
var HouseHeaders = []string{
	"#", "Price", "Area", "Bed/Bath", "Stories", "Main Road", "Guest Room", "Basement",
	"Hot Water", "Air Conditioning", "Parking", "Preferred Area", "Furnishing Status",
}

// HouseRow formats a house for the listing table; index is zero-based.
func (f *Formatter) HouseRow(index int, h models.House) []string {
	return []string{
		strconv.Itoa(index + 1),
		f.Currency(int64(h.Price)),
		f.Area(h.Area),
		bedBath(h),
		strconv.FormatInt(int64(h.Stories), 10),
		Bool(h.MainRoad),
		Bool(h.GuestRoom),
		Bool(h.Basement),
		Bool(h.HotWaterHeating),
		Bool(h.AirConditioning),
		strconv.FormatInt(int64(h.Parking), 10),
		Bool(h.PrefArea),
		h.FurnishingStatus.Label(),
	}
}

// HouseRows formats every house.
func (f *Formatter) HouseRows(houses []models.House) [][]string {
	rows := make([][]string, 0, len(houses))
	for i, h := range houses {
		rows = append(rows, f.HouseRow(i, h))
	}
	return rows
}

// MarkupHeaders are the column titles matching MarkupRow.
var MarkupHeaders = []string{
	"#", "Original Price", "Price with Markup", "Difference", "Area", "Bed/Bath", "Furnishing Status",
}

func (f *Formatter) MarkupRow(index int, m models.MarkedUpHouse) []string {
	return []string{
		strconv.Itoa(index + 1),
		f.Currency(int64(m.OriginalPrice)),
		f.Currency(int64(m.Price)),
		f.Currency(m.Difference()),
		f.Area(m.Area),
		bedBath(m.House),
		m.FurnishingStatus.Label(),
	}
}

func (f *Formatter) MarkupRows(houses []models.MarkedUpHouse) [][]string {
	rows := make([][]string, 0, len(houses))
	for i, m := range houses {
		rows = append(rows, f.MarkupRow(i, m))
	}
	return rows
}

// FurnishingLines renders the furnishing summary, one line per entry.
func FurnishingLines(r models.FurnishingReport) []string {
	lines := make([]string, 0, len(models.FurnishingStatuses)+1)
	for _, s := range models.FurnishingStatuses {
		lines = append(lines, fmt.Sprintf("%s: %d (%s)", s.Heading(), r.Counts[s], r.PercentageLabel(s)))
	}
	return append(lines, fmt.Sprintf("Total Houses: %d", r.Total))
}
