package output

import (
	"fmt"

	"github.com/iwvelando/hotel-forecast/internal/calculator"
	"github.com/iwvelando/hotel-forecast/pkg/constants"
	"github.com/iwvelando/hotel-forecast/pkg/format"
)

// Kind tells renderers how to display a row value.
type Kind int

const (
	KindCurrency Kind = iota
	KindPercent
	KindCount
	KindRatio
	KindYears
)

// Row is one labelled metric of a report.
type Row struct {
	Section string
	Label   string
	Value   float64
	Kind    Kind
	// Never marks a payback that is never reached; Value is meaningless then.
	Never bool
}

// Sections in display order.
const (
	SectionRevenue   = "Revenue"
	SectionExpenses  = "Deductions"
	SectionNet       = "Net operating income"
	SectionFinancing = "Financing"
	SectionDeal      = "Deal sheet"
)

// Rows flattens metrics into report rows. Financing rows are included only
// when includeFinancials is set.
func Rows(m calculator.CalculationMetrics, includeFinancials bool) []Row {
	rows := []Row{
		{Section: SectionRevenue, Label: "Sold rooms per day", Value: m.SoldRooms, Kind: KindCount},
		{Section: SectionRevenue, Label: "Daily revenue", Value: m.DailyRevenue},
		{Section: SectionRevenue, Label: "Monthly revenue", Value: m.MonthlyRevenue},
		{Section: SectionRevenue, Label: "Yearly revenue", Value: m.YearlyRevenue},

		{Section: SectionExpenses, Label: "Monthly OTA commission", Value: m.MonthlyOTA},
		{Section: SectionExpenses, Label: "Monthly maintenance", Value: m.MonthlyMaintenance},
		{Section: SectionExpenses, Label: "Monthly extra deductions", Value: m.MonthlyExtraDeductions},
		{Section: SectionExpenses, Label: "Yearly OTA commission", Value: m.YearlyOTA},
		{Section: SectionExpenses, Label: "Yearly maintenance", Value: m.YearlyMaintenance},
		{Section: SectionExpenses, Label: "Yearly extra deductions", Value: m.YearlyExtraDeductions},

		{Section: SectionNet, Label: "Daily net", Value: m.DailyNet},
		{Section: SectionNet, Label: "Monthly net", Value: m.MonthlyNet},
		{Section: SectionNet, Label: "Yearly net", Value: m.YearlyNet},
		{Section: SectionNet, Label: "Valuation", Value: m.Valuation},
	}

	if includeFinancials {
		rows = append(rows,
			Row{Section: SectionFinancing, Label: "Monthly EMI", Value: m.MonthlyEMI},
			Row{Section: SectionFinancing, Label: "Monthly cash flow", Value: m.MonthlyCashFlow},
			Row{Section: SectionFinancing, Label: "Yearly cash flow", Value: m.YearlyCashFlow},
			Row{Section: SectionFinancing, Label: "DSCR", Value: m.DSCR, Kind: KindRatio},
			Row{Section: SectionFinancing, Label: "Equity", Value: m.Equity},
			Row{Section: SectionFinancing, Label: "ROI", Value: m.ROI, Kind: KindPercent},
			Row{Section: SectionFinancing, Label: "Payback period", Value: m.PaybackPeriod.Value, Kind: KindYears, Never: m.PaybackPeriod.Never()},
		)
	}

	rows = append(rows,
		Row{Section: SectionDeal, Label: "Revenue net of GST", Value: m.DealRevenueNetGST},
		Row{Section: SectionDeal, Label: "GST", Value: m.DealMonthlyGST},
		Row{Section: SectionDeal, Label: "OTA commission", Value: m.DealOTAAbs},
		Row{Section: SectionDeal, Label: "Operating expenses", Value: m.DealOpexAbs},
		Row{Section: SectionDeal, Label: "Contribution margin", Value: m.DealAbsoluteCM},
		Row{Section: SectionDeal, Label: "Contribution margin %", Value: m.DealCMPercent, Kind: KindPercent},
		Row{Section: SectionDeal, Label: "Upfront payback (% of a month)", Value: m.DealPBPPercent.Value, Kind: KindPercent, Never: m.DealPBPPercent.Never()},
		Row{Section: SectionDeal, Label: "Break-even occupancy", Value: m.BreakEvenOccupancyDeal, Kind: KindPercent, Never: !m.BreakEvenReachable},
		Row{Section: SectionDeal, Label: fmt.Sprintf("Monthly gain per +%.0f room rate", constants.ARRSensitivityStep), Value: m.ARRSensitivity},
	)
	return rows
}

// Display renders a row value for humans.
func (r Row) Display(currencySymbol string) string {
	if r.Never {
		return "never"
	}
	switch r.Kind {
	case KindPercent:
		return format.Percent(r.Value)
	case KindCount:
		return fmt.Sprintf("%.2f", r.Value)
	case KindRatio:
		return fmt.Sprintf("%.2fx", r.Value)
	case KindYears:
		return fmt.Sprintf("%.2f years", r.Value)
	default:
		return format.CurrencyWithSymbol(currencySymbol, r.Value)
	}
}

// Raw renders a row value for machines: plain numbers, "never" for paybacks
// that are never reached.
func (r Row) Raw() string {
	if r.Never {
		return "never"
	}
	return fmt.Sprintf("%.2f", r.Value)
}
