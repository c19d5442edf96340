package output

import (
	"bytes"
	"fmt"

	"github.com/retirewise/planner/internal/domain"
)

// ConsoleVerboseFormatter extends the concise summary with the year-by-year
// percentile timeline.
type ConsoleVerboseFormatter struct{}

func (c ConsoleVerboseFormatter) Name() string { return "console-verbose" }

func (c ConsoleVerboseFormatter) Format(result *domain.SimulationResult) ([]byte, error) {
	summary, err := ConsoleFormatter{}.Format(result)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	buf.Write(summary)
	fmt.Fprintln(&buf)
	fmt.Fprintf(&buf, "Expected Value: %s  Std Deviation: %s\n",
		FormatCurrency(result.ExpectedValue), FormatCurrency(result.StdDeviation))
	fmt.Fprintln(&buf)
	fmt.Fprintln(&buf, "YEAR-BY-YEAR BALANCES")
	fmt.Fprintf(&buf, "%-6s %18s %18s %18s\n", "Year", "5th Pctl", "Median", "95th Pctl")
	for i, year := range result.Timeline.Years {
		fmt.Fprintf(&buf, "%-6d %18s %18s %18s\n",
			year,
			FormatCurrency(result.Timeline.P5[i]),
			FormatCurrency(result.Timeline.Median[i]),
			FormatCurrency(result.Timeline.P95[i]),
		)
	}
	return buf.Bytes(), nil
}
