// Package constants provides shared constants for the hotel-forecast application.
package constants

// Calendar conventions. Months are a fixed 30 days and years 365 days; the
// projection is a linear extrapolation, not calendar accurate.
const (
	// DaysPerMonth is the fixed month length used by every monthly figure
	DaysPerMonth = 30

	// DaysPerYear is the fixed year length used by every yearly figure
	DaysPerYear = 365

	// MonthsPerYear is the number of months in a year
	MonthsPerYear = 12
)

// Financial constants
const (
	// GSTRate is the goods and services tax embedded in gross room revenue
	GSTRate = 0.12

	// OTACommissionRate is the flat OTA commission applied by the standard model
	OTACommissionRate = 0.18

	// CapitalizationRate converts yearly net operating income into a valuation
	CapitalizationRate = 0.10

	// NeverPaysBackYears is the numeric stand-in for a payback period that never ends
	NeverPaysBackYears = 999.0

	// ARRSensitivityStep is the room rate increase used for ARR sensitivity
	ARRSensitivityStep = 100.0

	// SweepStepPercent is the occupancy increment of the sensitivity sweep
	SweepStepPercent = 10

	// DecimalPrecision is the precision for currency rounding (2 decimal places)
	DecimalPrecision = 100

	// PercentageMultiplier is used for percentage conversions
	PercentageMultiplier = 100.0

	// CurrencyTolerance is the tolerance for currency comparisons (1 paisa)
	CurrencyTolerance = 0.01
)

// Calculator setting defaults
const (
	// DefaultCurrencySymbol prefixes formatted currency amounts
	DefaultCurrencySymbol = "₹"

	// DefaultInterestRate is the annual loan rate used when a project omits one
	DefaultInterestRate = 10.5

	// DefaultTargetCMPercent is the contribution margin target for deal suggestions
	DefaultTargetCMPercent = 20.0

	// DefaultUserID owns projects created without an explicit user
	DefaultUserID = "local"
)

// Output format constants
const (
	// OutputFormatPretty is the human-readable output format
	OutputFormatPretty = "pretty"

	// OutputFormatCSV is the CSV output format
	OutputFormatCSV = "csv"

	// OutputFormatPDF is the PDF report output format
	OutputFormatPDF = "pdf"
)

// Configuration file constants
const (
	// DefaultConfigFile is the default configuration file name
	DefaultConfigFile = "config.yaml"

	// DefaultServerConfigFile is the default server configuration file name
	DefaultServerConfigFile = "server-config.yaml"
)

// Server configuration defaults
const (
	// DefaultServerAddress is the default HTTP listen address
	DefaultServerAddress = ":8080"

	// DefaultMaxUploadSizeBytes is the default maximum upload size for YAML configs (256 KB)
	DefaultMaxUploadSizeBytes int64 = 256 * 1024

	// DefaultRateLimitPerMinute is the default request budget per client
	DefaultRateLimitPerMinute = 120

	// DefaultRateLimitBurst is the default burst per client
	DefaultRateLimitBurst = 20
)

// Store drivers
const (
	StoreDriverMemory   = "memory"
	StoreDriverSQLite   = "sqlite"
	StoreDriverPostgres = "postgres"
	StoreDriverRedis    = "redis"

	// DefaultSQLitePath is the local project database file
	DefaultSQLitePath = "hotel-forecast.db"
)
