package analytics

import (
	"math"
	"time"
)

// tradingDates generates n consecutive weekday dates starting at start
// (YYYY-MM-DD), skipping weekends.
func tradingDates(start string, n int) []string {
	t, err := time.Parse("2006-01-02", start)
	if err != nil {
		panic(err)
	}
	dates := make([]string, 0, n)
	for len(dates) < n {
		if t.Weekday() != time.Saturday && t.Weekday() != time.Sunday {
			dates = append(dates, t.Format("2006-01-02"))
		}
		t = t.AddDate(0, 0, 1)
	}
	return dates
}

// syntheticSeries generates a deterministic daily return series with the
// given drift and oscillation amplitude. The phase varies per seed so
// different assets are imperfectly correlated.
func syntheticSeries(n int, drift, amplitude float64, seed int) []float64 {
	series := make([]float64, n)
	for i := range series {
		series[i] = drift + amplitude*math.Sin(float64(i)*0.7+float64(seed)*1.3)
	}
	return series
}

// sampleMatrix builds a dense 3-asset return matrix (including the SPY
// benchmark column) over n trading days.
func sampleMatrix(n int) ReturnMatrix {
	dates := tradingDates("2023-01-02", n)
	return ReturnMatrix{
		Dates:  dates,
		Assets: []string{"AAPL", "MSFT", "SPY"},
		Data: map[string][]float64{
			"AAPL": syntheticSeries(n, 0.0008, 0.012, 1),
			"MSFT": syntheticSeries(n, 0.0005, 0.009, 2),
			"SPY":  syntheticSeries(n, 0.0004, 0.007, 3),
		},
	}
}

// constantMatrix builds a matrix where every asset returns the same constant
// every day: zero volatility everywhere.
func constantMatrix(n int, value float64) ReturnMatrix {
	dates := tradingDates("2023-01-02", n)
	column := make([]float64, n)
	for i := range column {
		column[i] = value
	}
	data := map[string][]float64{}
	assets := []string{"A", "B", "C"}
	for _, asset := range assets {
		col := make([]float64, n)
		copy(col, column)
		data[asset] = col
	}
	return ReturnMatrix{Dates: dates, Assets: assets, Data: data}
}
