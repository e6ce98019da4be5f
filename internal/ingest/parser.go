// AngelaMos | 2026
// parser.go

package ingest

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
)

// Candidate is a parsed, not-yet-persisted movie row from an upload.
type Candidate struct {
	Title       string
	Description string
	Poster      string
	VideoURL    string
	VideoType   string
	Categories  []string
	BatchNo     string
	Duration    string
	Featured    bool
	IsPremium   bool
}

// headerIndex maps trimmed header names to their column positions. Header
// names are matched case-sensitively.
type headerIndex map[string]int

func (h headerIndex) value(record []string, name string) string {
	i, ok := h[name]
	if !ok || i >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[i])
}

// ParseCSV reads the upload and returns one candidate per usable data row.
// Rows whose title is blank after trimming are dropped silently. A malformed
// stream aborts the whole parse.
func ParseCSV(r io.Reader) ([]Candidate, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("empty file")
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	idx := headerIndex{}
	for i, name := range header {
		idx[strings.TrimSpace(name)] = i
	}

	var candidates []Candidate
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row: %w", err)
		}

		title := idx.value(record, "title")
		if title == "" {
			continue
		}

		videoType := idx.value(record, "videoType")
		if videoType == "" {
			videoType = "direct"
		}

		candidates = append(candidates, Candidate{
			Title:       title,
			Description: idx.value(record, "description"),
			Poster:      idx.value(record, "poster"),
			VideoURL:    idx.value(record, "videoUrl"),
			VideoType:   videoType,
			Categories:  splitCategories(idx.value(record, "category")),
			BatchNo:     idx.value(record, "batchNo"),
			Duration:    idx.value(record, "duration"),
			Featured:    parseBoolFlag(idx.value(record, "featured")),
			IsPremium:   parseBoolFlag(idx.value(record, "isPremium")),
		})
	}

	return candidates, nil
}

// splitCategories splits on comma and trims each piece. Empty pieces are
// retained as-is; no further filtering.
func splitCategories(raw string) []string {
	if raw == "" {
		return nil
	}
	pieces := strings.Split(raw, ",")
	out := make([]string, len(pieces))
	for i, p := range pieces {
		out[i] = strings.TrimSpace(p)
	}
	return out
}

// parseBoolFlag is true only for the exact values "true", "1", and "TRUE".
// Everything else, including "false", "0", mixed case, and blank, is false.
func parseBoolFlag(raw string) bool {
	switch raw {
	case "true", "1", "TRUE":
		return true
	default:
		return false
	}
}
