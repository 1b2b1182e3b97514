package storage

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"housing-info/models"
)

var houseColumns = []string{
	"price", "area", "bedrooms", "bathrooms", "stories", "mainroad", "guestroom", "basement",
	"hotwaterheating", "airconditioning", "parking", "prefarea", "furnishingstatus",
}

// CSVWriter writes houses to a CSV file using the dataset's field names.
type CSVWriter struct {
	file   *os.File
	writer *csv.Writer
	markup bool
}

func create(path string) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("csv: create output dir: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("csv: create file %q: %w", path, err)
	}
	return f, nil
}

// NewCSVWriter creates (or truncates) the CSV file at path and writes the
// header row. withOriginalPrice adds an original_price column for markup results.
func NewCSVWriter(path string, withOriginalPrice bool) (*CSVWriter, error) {
	f, err := create(path)
	if err != nil {
		return nil, err
	}

	header := houseColumns
	if withOriginalPrice {
		header = append(append([]string{}, houseColumns...), "original_price")
	}

	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("csv: write header: %w", err)
	}
	return &CSVWriter{file: f, writer: w, markup: withOriginalPrice}, nil
}

func yesNo(v models.YesNo) string {
	if v {
		return "yes"
	}
	return "no"
}

func count(c models.Count) string {
	return strconv.FormatInt(int64(c), 10)
}

func houseRecord(h models.House) []string {
	return []string{
		count(h.Price), count(h.Area), count(h.Bedrooms), count(h.Bathrooms), count(h.Stories),
		yesNo(h.MainRoad), yesNo(h.GuestRoom), yesNo(h.Basement), yesNo(h.HotWaterHeating),
		yesNo(h.AirConditioning), count(h.Parking), yesNo(h.PrefArea), string(h.FurnishingStatus),
	}
}

// Write appends one row per house.
func (c *CSVWriter) Write(houses []models.House) error {
	if c.markup {
		return fmt.Errorf("csv: writer expects marked-up houses")
	}
	for _, h := range houses {
		if err := c.writer.Write(houseRecord(h)); err != nil {
			return fmt.Errorf("csv: write row: %w", err)
		}
	}
	c.writer.Flush()
	return c.writer.Error()
}

// WriteMarkedUp appends one row per marked-up house, including its original price.
func (c *CSVWriter) WriteMarkedUp(houses []models.MarkedUpHouse) error {
	if !c.markup {
		return fmt.Errorf("csv: writer has no original_price column")
	}
	for _, m := range houses {
		if err := c.writer.Write(append(houseRecord(m.House), count(m.OriginalPrice))); err != nil {
			return fmt.Errorf("csv: write row: %w", err)
		}
	}
	c.writer.Flush()
	return c.writer.Error()
}

// Close flushes and closes the underlying file.
func (c *CSVWriter) Close() error {
	c.writer.Flush()
	if err := c.writer.Error(); err != nil {
		_ = c.file.Close()
		return fmt.Errorf("csv: flush: %w", err)
	}
	return c.file.Close()
}
