// Package report renders a project forecast as a PDF document.
package report

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gosimple/slug"
	"github.com/iwvelando/hotel-forecast/internal/forecast"
	"github.com/iwvelando/hotel-forecast/pkg/output"
	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/props"
)

// The built-in PDF fonts only cover Latin-1.
var pdfCurrencySymbols = map[string]string{
	"₹": "Rs. ",
	"€": "EUR ",
	"₩": "KRW ",
	"₱": "PHP ",
	"₺": "TRY ",
}

func pdfSymbol(symbol string) string {
	if replacement, ok := pdfCurrencySymbols[symbol]; ok {
		return replacement
	}
	for _, r := range symbol {
		if r > 0xFF {
			return ""
		}
	}
	return symbol
}

// FileName returns a download-safe file name for a project export.
func FileName(projectName, extension string) string {
	base := slug.Make(projectName)
	if base == "" {
		base = "hotel-forecast"
	}
	return base + "." + strings.TrimPrefix(extension, ".")
}

// WriteAll renders every forecast into dir, one file per project, and returns
// the written paths.
func WriteAll(dir string, results []forecast.Forecast, currencySymbol string, generatedAt time.Time) ([]string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create report directory %s: %w", dir, err)
	}

	paths := make([]string, 0, len(results))
	used := make(map[string]int)
	for _, result := range results {
		doc, err := Generate(result, currencySymbol, generatedAt)
		if err != nil {
			return paths, fmt.Errorf("failed to render report for %s: %w", result.Name, err)
		}

		name := FileName(result.Name, "pdf")
		if n := used[name]; n > 0 {
			name = fmt.Sprintf("%s-%d.pdf", strings.TrimSuffix(name, ".pdf"), n+1)
		}
		used[FileName(result.Name, "pdf")]++

		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, doc, 0644); err != nil {
			return paths, fmt.Errorf("failed to write report %s: %w", path, err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}

// Generate renders one forecast as a PDF.
func Generate(f forecast.Forecast, currencySymbol string, generatedAt time.Time) ([]byte, error) {
	symbol := pdfSymbol(currencySymbol)

	cfg := config.NewBuilder().
		WithPageNumber(props.PageNumber{
			Pattern: "Page {current} of {total}",
			Place:   props.RightBottom,
		}).
		Build()

	m := maroto.New(cfg)

	m.AddRow(12,
		text.NewCol(12, f.Name, props.Text{
			Size:  18,
			Style: fontstyle.Bold,
			Align: align.Left,
		}),
	)
	m.AddRow(8,
		text.NewCol(12, "Generated "+generatedAt.UTC().Format("2006-01-02 15:04 MST"), props.Text{Size: 8}),
	)

	in := f.Inputs
	m.AddRow(14,
		col.New(6).Add(
			text.New(fmt.Sprintf("Rooms: %d", in.TotalRooms), props.Text{Size: 9}),
			text.New(fmt.Sprintf("Occupancy: %.2f%%", in.OccupancyPercent), props.Text{Size: 9, Top: 4}),
			text.New(fmt.Sprintf("Room price: %s", output.Row{Value: in.RoomPrice}.Display(symbol)), props.Text{Size: 9, Top: 8}),
		),
		col.New(6).Add(
			text.New(fmt.Sprintf("OTA: %.2f%%", in.OTAPercent), props.Text{Size: 9}),
			text.New(fmt.Sprintf("Minimum guarantee: %s", output.Row{Value: in.MonthlyMG}.Display(symbol)), props.Text{Size: 9, Top: 4}),
			text.New(fmt.Sprintf("Maintenance per room: %s", output.Row{Value: in.MaintenanceCostPerRoom}.Display(symbol)), props.Text{Size: 9, Top: 8}),
		),
	)

	section := ""
	for _, row := range output.Rows(f.Metrics, in.IncludeFinancials) {
		if row.Section != section {
			section = row.Section
			m.AddRow(10,
				text.NewCol(12, section, props.Text{Size: 11, Style: fontstyle.Bold, Top: 3}),
			)
			m.AddRow(1, line.NewCol(12))
		}
		m.AddRow(6,
			text.NewCol(8, row.Label, props.Text{Size: 9}),
			text.NewCol(4, row.Display(symbol), props.Text{Size: 9, Align: align.Right}),
		)
	}

	if len(f.Suggestions) > 0 {
		m.AddRow(10,
			text.NewCol(12, "Deal suggestions", props.Text{Size: 11, Style: fontstyle.Bold, Top: 3}),
		)
		m.AddRow(1, line.NewCol(12))
		for _, suggestion := range f.Suggestions {
			value := suggestion.ValueDisplay
			if !suggestion.Converged {
				value = "not reachable"
			}
			m.AddRow(6,
				text.NewCol(8, suggestion.Field, props.Text{Size: 9}),
				text.NewCol(4, pdfText(value, currencySymbol, symbol), props.Text{Size: 9, Align: align.Right}),
			)
		}
	}

	if len(f.LoanSchedule) > 0 {
		m.AddRow(10,
			text.NewCol(12, "Loan schedule", props.Text{Size: 11, Style: fontstyle.Bold, Top: 3}),
		)
		m.AddRow(1, line.NewCol(12))
		header := props.Text{Size: 8, Style: fontstyle.Bold, Align: align.Right}
		m.AddRow(6,
			text.NewCol(2, "Year", props.Text{Size: 8, Style: fontstyle.Bold}),
			text.NewCol(3, "Paid", header),
			text.NewCol(2, "Principal", header),
			text.NewCol(2, "Interest", header),
			text.NewCol(3, "Outstanding", header),
		)
		cell := props.Text{Size: 8, Align: align.Right}
		for _, year := range f.LoanSchedule {
			m.AddRow(5,
				text.NewCol(2, fmt.Sprintf("%d", year.Year), props.Text{Size: 8}),
				text.NewCol(3, output.Row{Value: year.Paid}.Display(symbol), cell),
				text.NewCol(2, output.Row{Value: year.Principal}.Display(symbol), cell),
				text.NewCol(2, output.Row{Value: year.Interest}.Display(symbol), cell),
				text.NewCol(3, output.Row{Value: year.RemainingPrincipal}.Display(symbol), cell),
			)
		}
	}

	for _, note := range f.Notes {
		m.AddRow(6,
			text.NewCol(12, "Note: "+pdfText(note, currencySymbol, symbol), props.Text{Size: 8, Style: fontstyle.Italic}),
		)
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("failed to generate pdf: %w", err)
	}
	return doc.GetBytes(), nil
}

// pdfText swaps the configured currency symbol for its printable form in
// pre-rendered text.
func pdfText(s, from, to string) string {
	if from == "" || from == to {
		return s
	}
	return strings.ReplaceAll(s, from, to)
}
