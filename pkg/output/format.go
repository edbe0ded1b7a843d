// Package output provides utilities for formatting and displaying forecast results.
package output

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/iwvelando/hotel-forecast/internal/forecast"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// PrettyFormat writes a human-readable rather than machine-readable table.
func PrettyFormat(w io.Writer, results []forecast.Forecast, currencySymbol string) error {
	p := message.NewPrinter(language.English)
	for i, result := range results {
		if _, err := fmt.Fprintf(w, "--- Results for project %s ---\n", result.Name); err != nil {
			return err
		}

		section := ""
		for _, row := range Rows(result.Metrics, result.Inputs.IncludeFinancials) {
			if row.Section != section {
				section = row.Section
				_, _ = fmt.Fprintf(w, "\n%s\n", section)
			}
			_, _ = p.Fprintf(w, "  %-32s | %s\n", row.Label, prettyValue(p, row, currencySymbol))
		}

		if len(result.Suggestions) > 0 {
			_, _ = fmt.Fprintf(w, "\nSuggestions\n")
			for _, suggestion := range result.Suggestions {
				status := "ok"
				if !suggestion.Converged {
					status = strings.Join(suggestion.Notes, "; ")
				}
				_, _ = fmt.Fprintf(w, "  %-32s | %s (%s)\n", suggestion.Field, suggestion.ValueDisplay, status)
			}
		}

		for _, note := range result.Notes {
			_, _ = fmt.Fprintf(w, "  ! %s\n", note)
		}

		if i < len(results)-1 {
			if _, err := fmt.Fprintf(w, "\n"); err != nil {
				return err
			}
		}
	}
	return nil
}

func prettyValue(p *message.Printer, row Row, currencySymbol string) string {
	if row.Never || row.Kind != KindCurrency {
		return row.Display(currencySymbol)
	}
	if row.Value < 0 {
		return p.Sprintf("-%s%.2f", currencySymbol, -row.Value)
	}
	return p.Sprintf("%s%.2f", currencySymbol, row.Value)
}

// CsvFormat writes one row per metric and one column per project.
func CsvFormat(w io.Writer, results []forecast.Forecast) error {
	if len(results) == 0 {
		return fmt.Errorf("no results to format")
	}

	writer := csv.NewWriter(w)
	header := []string{"section", "metric"}
	for _, result := range results {
		header = append(header, result.Name)
	}
	if err := writer.Write(header); err != nil {
		return err
	}

	// Financing rows are emitted when any project uses them so columns line up.
	financing := false
	for _, result := range results {
		financing = financing || result.Inputs.IncludeFinancials
	}

	columns := make([][]Row, len(results))
	for i, result := range results {
		columns[i] = Rows(result.Metrics, financing)
	}

	for r, row := range columns[0] {
		record := []string{row.Section, row.Label}
		for i := range results {
			record = append(record, columns[i][r].Raw())
		}
		if err := writer.Write(record); err != nil {
			return err
		}
	}

	writer.Flush()
	return writer.Error()
}

// CsvString is CsvFormat into a string.
func CsvString(results []forecast.Forecast) (string, error) {
	var builder strings.Builder
	if err := CsvFormat(&builder, results); err != nil {
		return "", err
	}
	return builder.String(), nil
}
