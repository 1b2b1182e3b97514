// Package source loads housing records from newline-delimited JSON files.
package source

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"housing-info/models"
	"housing-info/utils"
)

// ErrRead marks failures to open or read the dataset, as opposed to
// problems with individual records.
var ErrRead = errors.New("read housing data")

// maxLineBytes bounds a single record. Longer lines are skipped.
const maxLineBytes = 1 << 20

// Loader produces the full record sequence for one operation.
type Loader interface {
	Load(ctx context.Context) ([]models.House, error)
}

// NDJSONFile reads one JSON-encoded house per line from Path.
type NDJSONFile struct {
	Path   string
	logger *utils.Logger
}

// NewNDJSONFile creates a loader for the file at path.
func NewNDJSONFile(path string, logger *utils.Logger) *NDJSONFile {
	return &NDJSONFile{Path: path, logger: logger}
}

// Load reads the whole file. Lines that do not decode into a valid house are
// skipped with a warning; open and read failures are returned wrapping ErrRead.
func (f *NDJSONFile) Load(ctx context.Context) ([]models.House, error) {
	file, err := os.Open(f.Path)
	if err != nil {
		return nil, fmt.Errorf("%w: open %q: %v", ErrRead, f.Path, err)
	}
	defer file.Close()

	reader := bufio.NewReaderSize(file, 64*1024)

	var (
		houses  []models.House
		lineNo  int
		skipped int
	)
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		raw, tooLong, err := readLine(reader)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %q line %d: %v", ErrRead, f.Path, lineNo+1, err)
		}
		lineNo++

		if tooLong {
			skipped++
			f.logger.Warn("[source] %s:%d: invalid house record skipped: line exceeds %d bytes", f.Path, lineNo, maxLineBytes)
			continue
		}

		line := bytes.TrimSpace(raw)
		if len(line) == 0 {
			continue
		}

		house, err := decodeLine(line)
		if err != nil {
			skipped++
			f.logger.Warn("[source] %s:%d: invalid house record skipped: %v", f.Path, lineNo, err)
			continue
		}
		houses = append(houses, house)
	}

	f.logger.Debug("[source] loaded %d houses from %s", len(houses), f.Path)
	if skipped > 0 {
		f.logger.Warn("[source] %d invalid lines skipped in %s", skipped, f.Path)
	}
	return houses, nil
}

// readLine returns the next line without its terminator. A line longer than
// maxLineBytes is consumed in full and reported as tooLong with no content.
// io.EOF is returned only when no further line exists.
func readLine(r *bufio.Reader) (line []byte, tooLong bool, err error) {
	for {
		chunk, isPrefix, err := r.ReadLine()
		if err != nil {
			return nil, false, err
		}
		if !tooLong {
			if len(line)+len(chunk) > maxLineBytes {
				tooLong, line = true, nil
			} else {
				line = append(line, chunk...)
			}
		}
		if !isPrefix {
			return line, tooLong, nil
		}
	}
}

func decodeLine(line []byte) (models.House, error) {
	var h models.House
	if line[0] != '{' {
		return h, fmt.Errorf("not a JSON object")
	}
	if err := json.Unmarshal(line, &h); err != nil {
		return h, err
	}
	if err := h.Validate(); err != nil {
		return h, err
	}
	return h, nil
}
