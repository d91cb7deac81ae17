package analytics

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"time"
)

// weightsRowLabel marks the optional trailing row that carries a weight
// vector instead of a day of returns.
const weightsRowLabel = "weights"

// ParseCSV reads a tabular return panel: a header row with the date column
// first and one column per asset, then one row per trading day of fractional
// returns, optionally followed by a "Weights" row. Dates must parse as
// YYYY-MM-DD and be strictly increasing with no duplicates. The returned
// weight vector is nil when no Weights row is present; it is NOT validated
// here so the engine can report the violation in context.
func ParseCSV(r io.Reader) (ReturnMatrix, []float64, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return ReturnMatrix{}, nil, fmt.Errorf("failed to read header: %w", err)
	}
	if len(header) < 2 {
		return ReturnMatrix{}, nil, fmt.Errorf("header has %d columns, need a date column and at least one asset", len(header))
	}

	assets := make([]string, len(header)-1)
	for i, name := range header[1:] {
		name = strings.TrimSpace(name)
		if name == "" {
			return ReturnMatrix{}, nil, fmt.Errorf("asset column %d has an empty name", i+1)
		}
		assets[i] = name
	}

	matrix := ReturnMatrix{
		Assets: assets,
		Data:   make(map[string][]float64, len(assets)),
	}
	for _, asset := range assets {
		matrix.Data[asset] = []float64{}
	}

	var weights []float64
	var lastDate time.Time

	for line := 2; ; line++ {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return ReturnMatrix{}, nil, fmt.Errorf("failed to read line %d: %w", line, err)
		}
		if len(record) != len(header) {
			return ReturnMatrix{}, nil, fmt.Errorf("line %d has %d columns, expected %d", line, len(record), len(header))
		}

		label := strings.TrimSpace(record[0])

		if strings.EqualFold(label, weightsRowLabel) {
			if weights != nil {
				return ReturnMatrix{}, nil, fmt.Errorf("line %d: duplicate Weights row", line)
			}
			weights = make([]float64, len(assets))
			for i, cell := range record[1:] {
				w, err := parseFiniteFloat(cell)
				if err != nil {
					return ReturnMatrix{}, nil, fmt.Errorf("line %d: invalid weight for %s: %w", line, assets[i], err)
				}
				weights[i] = w
			}
			continue
		}

		date, err := time.Parse("2006-01-02", label)
		if err != nil {
			return ReturnMatrix{}, nil, fmt.Errorf("line %d: invalid date %q: %w", line, label, err)
		}
		if len(matrix.Dates) > 0 && !date.After(lastDate) {
			return ReturnMatrix{}, nil, fmt.Errorf("line %d: date %s is not strictly increasing", line, label)
		}
		lastDate = date

		for i, cell := range record[1:] {
			value, err := parseFiniteFloat(cell)
			if err != nil {
				return ReturnMatrix{}, nil, fmt.Errorf("line %d: invalid return for %s: %w", line, assets[i], err)
			}
			matrix.Data[assets[i]] = append(matrix.Data[assets[i]], value)
		}
		matrix.Dates = append(matrix.Dates, date.Format("2006-01-02"))
	}

	if len(matrix.Dates) == 0 {
		return ReturnMatrix{}, nil, fmt.Errorf("no return rows found")
	}

	return matrix, weights, nil
}

// parseFiniteFloat parses a cell as a float64 and rejects NaN and infinities,
// which strconv.ParseFloat would otherwise accept as literals.
func parseFiniteFloat(cell string) (float64, error) {
	value, err := strconv.ParseFloat(strings.TrimSpace(cell), 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return 0, fmt.Errorf("non-finite value %q", strings.TrimSpace(cell))
	}
	return value, nil
}
