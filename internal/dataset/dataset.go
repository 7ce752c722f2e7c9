// Package dataset persists the feature dataset as a flat CSV file:
// one row per accepted match, the 16 canonical feature columns first,
// then label and bookkeeping columns.
package dataset

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"

	"github.com/scoutai/predict-api/internal/features"
	"github.com/scoutai/predict-api/internal/models"
)

// Label and bookkeeping columns appended after the feature columns.
var extraColumns = []string{"winner", "red_score", "blue_score", "score_margin", "year", "event_key"}

// Header returns the full dataset column order.
func Header() []string {
	return append(append([]string{}, features.Columns...), extraColumns...)
}

// Writer streams training rows to a CSV file.
type Writer struct {
	f *os.File
	w *csv.Writer
}

// NewWriter creates the output file and writes the header.
func NewWriter(path string) (*Writer, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("create dataset: %w", err)
	}
	w := csv.NewWriter(f)
	if err := w.Write(Header()); err != nil {
		f.Close()
		return nil, fmt.Errorf("write dataset header: %w", err)
	}
	return &Writer{f: f, w: w}, nil
}

// Append writes one training row.
func (d *Writer) Append(row *models.TrainingRow) error {
	vals, err := row.Values(features.Columns)
	if err != nil {
		return err
	}

	record := make([]string, 0, len(vals)+len(extraColumns))
	for _, v := range vals {
		record = append(record, strconv.FormatFloat(v, 'g', -1, 64))
	}
	record = append(record,
		strconv.Itoa(row.Winner),
		strconv.Itoa(row.RedScore),
		strconv.Itoa(row.BlueScore),
		strconv.Itoa(row.ScoreMargin),
		strconv.Itoa(row.Year),
		row.EventKey,
	)
	return d.w.Write(record)
}

// Close flushes and closes the file.
func (d *Writer) Close() error {
	d.w.Flush()
	if err := d.w.Error(); err != nil {
		d.f.Close()
		return err
	}
	return d.f.Close()
}

// Record is one dataset row read back for training: the feature values
// in features.Columns order plus the labels.
type Record struct {
	Features  []float64
	Winner    int
	RedScore  float64
	BlueScore float64
}

// Read loads the dataset, resolving columns by header name so column
// order in the file does not matter. Rows with unparseable numbers are
// skipped, matching the trainer's drop-missing behavior.
func Read(path string) ([]Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open dataset: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read dataset: %w", err)
	}
	if len(rows) < 1 {
		return nil, fmt.Errorf("dataset %s is empty", path)
	}

	index := make(map[string]int, len(rows[0]))
	for i, name := range rows[0] {
		index[name] = i
	}
	required := append(append([]string{}, features.Columns...), "winner", "red_score", "blue_score")
	for _, name := range required {
		if _, ok := index[name]; !ok {
			return nil, fmt.Errorf("dataset %s missing column %q", path, name)
		}
	}

	var records []Record
	for _, row := range rows[1:] {
		rec := Record{Features: make([]float64, len(features.Columns))}
		ok := true
		for i, name := range features.Columns {
			v, err := strconv.ParseFloat(row[index[name]], 64)
			if err != nil {
				ok = false
				break
			}
			rec.Features[i] = v
		}
		if !ok {
			continue
		}

		winner, err := strconv.Atoi(row[index["winner"]])
		if err != nil {
			continue
		}
		rec.Winner = winner

		if rec.RedScore, err = strconv.ParseFloat(row[index["red_score"]], 64); err != nil {
			continue
		}
		if rec.BlueScore, err = strconv.ParseFloat(row[index["blue_score"]], 64); err != nil {
			continue
		}
		records = append(records, rec)
	}
	return records, nil
}
