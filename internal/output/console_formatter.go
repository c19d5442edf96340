package output

import (
	"bytes"
	"fmt"

	"github.com/retirewise/planner/internal/domain"
)

// ConsoleFormatter provides a concise console style summary via the formatter interface.
type ConsoleFormatter struct{}

func (c ConsoleFormatter) Name() string { return "console" }

func (c ConsoleFormatter) Format(result *domain.SimulationResult) ([]byte, error) {
	var buf bytes.Buffer
	fmt.Fprintln(&buf, "RETIREMENT PROJECTION SUMMARY")
	fmt.Fprintln(&buf, "================================")
	fmt.Fprintf(&buf, "Simulations: %d  Seed: %d  Market: %s  Spending: %s\n",
		result.NumSimulations, result.Seed, result.MarketPreset, result.SpendingModel)
	fmt.Fprintf(&buf, "Horizon: %d-%d (%d years)\n",
		result.StartYear, result.StartYear+result.HorizonYears-1, result.HorizonYears)
	fmt.Fprintln(&buf)
	fmt.Fprintf(&buf, "Success Rate:         %s\n", FormatPercent(result.SuccessRate))
	fmt.Fprintf(&buf, "Median Final Balance: %s\n", FormatCurrency(result.MedianFinalBalance))
	fmt.Fprintf(&buf, "10th Percentile:      %s\n", FormatCurrency(result.Percentile10))
	fmt.Fprintf(&buf, "90th Percentile:      %s\n", FormatCurrency(result.Percentile90))
	drawdown, _ := result.MedianMaxDrawdown.Float64()
	fmt.Fprintf(&buf, "Median Max Drawdown:  %s\n", FormatPercent(drawdown))
	for _, warning := range Recommendations(result) {
		fmt.Fprintln(&buf)
		fmt.Fprintf(&buf, "! %s\n", warning)
	}
	return buf.Bytes(), nil
}
