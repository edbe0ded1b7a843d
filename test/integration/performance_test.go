package integration

import (
	"testing"
	"time"

	"github.com/iwvelando/hotel-forecast/internal/calculator"
	"github.com/iwvelando/hotel-forecast/internal/forecast"
	"go.uber.org/zap"
)

func TestPerformance(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping performance test in short mode")
	}

	conf, _ := loadResults(t)

	const runs = 200
	start := time.Now()
	for i := 0; i < runs; i++ {
		if _, err := forecast.GetForecast(zap.NewNop(), *conf); err != nil {
			t.Fatalf("GetForecast() error = %v", err)
		}
	}
	elapsed := time.Since(start)

	t.Logf("%d forecasts in %v (%v each)", runs, elapsed, elapsed/runs)
	if elapsed > 10*time.Second {
		t.Errorf("Forecasting is too slow: %v for %d runs", elapsed, runs)
	}
}

func TestDataConsistency(t *testing.T) {
	conf, first := loadResults(t)

	for i := 0; i < 5; i++ {
		again, err := forecast.GetForecast(zap.NewNop(), *conf)
		if err != nil {
			t.Fatalf("GetForecast() error = %v", err)
		}
		for j := range first {
			if first[j].Metrics != again[j].Metrics {
				t.Fatalf("Run %d: metrics for %s differ between runs", i, first[j].Name)
			}
			if len(first[j].Suggestions) != len(again[j].Suggestions) {
				t.Fatalf("Run %d: suggestions for %s differ between runs", i, first[j].Name)
			}
			for k := range first[j].Suggestions {
				if first[j].Suggestions[k].Value != again[j].Suggestions[k].Value {
					t.Errorf("Run %d: suggestion %s for %s differs", i, first[j].Suggestions[k].Field, first[j].Name)
				}
			}
		}
	}
}

func BenchmarkGetForecast(b *testing.B) {
	conf, _ := loadResults(b)
	logger := zap.NewNop()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := forecast.GetForecast(logger, *conf); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkEvaluate(b *testing.B) {
	conf, _ := loadResults(b)
	in := conf.Projects[0].Inputs.ToInputState(conf.Projects[0].Name, conf.Settings)
	var sink calculator.CalculationMetrics

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		sink = forecast.Evaluate(nil, in, conf.Settings).Metrics
	}
	_ = sink
}
