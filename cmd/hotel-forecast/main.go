package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/iwvelando/hotel-forecast/internal/config"
	"github.com/iwvelando/hotel-forecast/internal/forecast"
	"github.com/iwvelando/hotel-forecast/internal/logging"
	"github.com/iwvelando/hotel-forecast/pkg/constants"
	"github.com/iwvelando/hotel-forecast/pkg/output"
	"github.com/iwvelando/hotel-forecast/pkg/report"
	"github.com/iwvelando/hotel-forecast/pkg/validation"
	"go.uber.org/zap"
)

func main() {
	// Process command line flags first to get config location
	configLocation := flag.String("config", constants.DefaultConfigFile, "path to configuration file")
	outputFormatFlag := flag.String("output-format", "", "type of output override: pretty, csv, pdf")
	outputFileFlag := flag.String("output-file", "", "directory for pdf reports, overrides output.file")
	logLevel := flag.String("log-level", "", "log level override (debug, info, warn, error)")
	flag.Parse()

	// Load the config file to get logging configuration
	conf, err := config.LoadConfiguration(*configLocation)
	if err != nil {
		fmt.Printf("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to load configuration at %s\", \"error\": \"%v\"}\n", *configLocation, err)
		os.Exit(1)
	}

	logger, err := logging.New(conf.Logging, *logLevel)
	if err != nil {
		fmt.Printf("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to initialize logger\", \"error\": \"%v\"}\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = logger.Sync()
	}()

	// CLI overrides take precedence over config
	if *outputFormatFlag != "" {
		conf.Output.Format = *outputFormatFlag
	}
	if *outputFileFlag != "" {
		conf.Output.File = *outputFileFlag
	}
	if conf.Output.Format == "" {
		conf.Output.Format = constants.OutputFormatPretty
	}

	if err := validation.ValidateOutputFormat(conf.Output.Format); err != nil {
		logger.Fatal(err.Error(),
			zap.String("op", "main"),
		)
	}

	for _, warning := range conf.ValidateConfiguration() {
		logger.Warn("Configuration warning: "+warning,
			zap.String("op", "main"),
		)
	}

	results, err := forecast.GetForecast(logger, *conf)
	if err != nil {
		logger.Fatal("failed to compute forecast",
			zap.String("op", "main"),
			zap.Error(err),
		)
	}

	switch conf.Output.Format {
	case constants.OutputFormatPretty:
		err = output.PrettyFormat(os.Stdout, results, conf.Settings.CurrencySymbol)
	case constants.OutputFormatCSV:
		err = output.CsvFormat(os.Stdout, results)
	case constants.OutputFormatPDF:
		if conf.Output.File == "" {
			logger.Fatal("pdf output requires output.file or -output-file",
				zap.String("op", "main"),
			)
		}
		var paths []string
		paths, err = report.WriteAll(conf.Output.File, results, conf.Settings.CurrencySymbol, time.Now())
		for _, path := range paths {
			logger.Info("wrote report",
				zap.String("op", "main"),
				zap.String("file", path),
			)
		}
	}
	if err != nil {
		logger.Fatal("failed to write output",
			zap.String("op", "main"),
			zap.String("format", conf.Output.Format),
			zap.Error(err),
		)
	}
}
