package report

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/iwvelando/hotel-forecast/internal/calculator"
	"github.com/iwvelando/hotel-forecast/internal/config"
	"github.com/iwvelando/hotel-forecast/internal/forecast"
)

func TestGenerate(t *testing.T) {
	in := calculator.InputState{
		PropertyName:           "Lakeview Residency",
		TotalRooms:             32,
		OccupancyPercent:       60,
		RoomPrice:              1200,
		RoundSRN:               true,
		MaintenanceCostPerRoom: 380,
		OTAPercent:             15,
		MonthlyMG:              150000,
		IncludeFinancials:      true,
		PropertyValue:          5000000,
		LoanAmount:             1000000,
		InterestRate:           10.5,
		LoanTermYears:          10,
	}
	f := forecast.Evaluate(nil, in, config.DefaultSettings())

	doc, err := Generate(f, "₹", time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if !bytes.HasPrefix(doc, []byte("%PDF")) {
		t.Errorf("Generate() output is not a PDF")
	}
}

func TestFileName(t *testing.T) {
	tests := []struct {
		name      string
		project   string
		extension string
		expected  string
	}{
		{"simple", "Lakeview Residency", "pdf", "lakeview-residency.pdf"},
		{"leading dot", "Hilltop Inn", ".csv", "hilltop-inn.csv"},
		{"punctuation", "  Sea View / Block 2 ", "pdf", "sea-view-block-2.pdf"},
		{"empty", "", "pdf", "hotel-forecast.pdf"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FileName(tt.project, tt.extension); got != tt.expected {
				t.Errorf("FileName(%q, %q) = %q, expected %q", tt.project, tt.extension, got, tt.expected)
			}
		})
	}
}

func TestPDFSymbol(t *testing.T) {
	tests := map[string]string{
		"₹": "Rs. ",
		"$": "$",
		"£": "£",
		"₿": "",
	}
	for symbol, expected := range tests {
		if got := pdfSymbol(symbol); got != expected {
			t.Errorf("pdfSymbol(%q) = %q, expected %q", symbol, got, expected)
		}
	}
}

func TestWriteAll(t *testing.T) {
	settings := config.DefaultSettings()
	in := calculator.InputState{PropertyName: "Hilltop Inn", TotalRooms: 12, OccupancyPercent: 20, RoomPrice: 900}
	results := []forecast.Forecast{
		forecast.Evaluate(nil, in, settings),
		forecast.Evaluate(nil, in, settings),
	}

	dir := filepath.Join(t.TempDir(), "reports")
	paths, err := WriteAll(dir, results, settings.CurrencySymbol, time.Now())
	if err != nil {
		t.Fatalf("WriteAll() error = %v", err)
	}

	expected := []string{filepath.Join(dir, "hilltop-inn.pdf"), filepath.Join(dir, "hilltop-inn-2.pdf")}
	if len(paths) != len(expected) {
		t.Fatalf("WriteAll() wrote %v, expected %v", paths, expected)
	}
	for i, path := range expected {
		if paths[i] != path {
			t.Errorf("path %d = %q, expected %q", i, paths[i], path)
		}
		data, err := os.ReadFile(path)
		if err != nil {
			t.Fatalf("failed to read %s: %v", path, err)
		}
		if !bytes.HasPrefix(data, []byte("%PDF")) {
			t.Errorf("%s is not a PDF", path)
		}
	}
}
