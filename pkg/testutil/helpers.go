// Package testutil provides common utility functions for testing.
package testutil

import (
	"github.com/iwvelando/hotel-forecast/internal/forecast"
)

// FindForecast finds a project forecast by name in the results slice.
// Returns a pointer to the forecast if found, nil otherwise.
func FindForecast(results []forecast.Forecast, name string) *forecast.Forecast {
	for i := range results {
		if results[i].Name == name {
			return &results[i]
		}
	}
	return nil
}

// CSVValue returns the cell of the named project in the CSV record whose
// metric column equals metric. The header record names the projects.
func CSVValue(records [][]string, metric, project string) (string, bool) {
	if len(records) == 0 {
		return "", false
	}
	column := -1
	for i, name := range records[0] {
		if i >= 2 && name == project {
			column = i
			break
		}
	}
	if column < 0 {
		return "", false
	}
	for _, record := range records[1:] {
		if len(record) > column && record[1] == metric {
			return record[column], true
		}
	}
	return "", false
}
