package output

import (
	"fmt"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/retirewise/planner/internal/domain"
)

// Plans below these success rates earn a warning in formatted output.
const (
	attentionThreshold = 0.75
	atRiskThreshold    = 0.50
)

// Recommendations derives plain-language warnings from a simulation result.
// Extracted from embedded console logic for testability.
func Recommendations(result *domain.SimulationResult) []string {
	var out []string
	switch {
	case result.SuccessRate < atRiskThreshold:
		out = append(out, fmt.Sprintf(
			"Plan is at risk: only %s of simulations sustained spending through the horizon. Consider reducing expenses, delaying retirement, or both.",
			FormatPercent(result.SuccessRate)))
	case result.SuccessRate < attentionThreshold:
		out = append(out, fmt.Sprintf(
			"Plan needs attention: %s of simulations sustained spending through the horizon. A modest spending cut or later retirement date would improve the odds.",
			FormatPercent(result.SuccessRate)))
	}
	if result.Percentile10.IsNegative() || result.Percentile10.IsZero() {
		out = append(out, "The 10th-percentile outcome depletes the portfolio entirely; poor early returns are not survivable without adjustment.")
	}
	return out
}

// PresetRanking orders scenario comparison results by success rate, then by
// median final balance as the tiebreaker.
type PresetRanking struct {
	Name   string
	Result *domain.SimulationResult
}

// RankPresets sorts preset results best-first.
func RankPresets(results map[string]*domain.SimulationResult) []PresetRanking {
	ranked := make([]PresetRanking, 0, len(results))
	for name, r := range results {
		ranked = append(ranked, PresetRanking{Name: name, Result: r})
	}
	sort.Slice(ranked, func(i, j int) bool {
		a, b := ranked[i].Result, ranked[j].Result
		if a.SuccessRate != b.SuccessRate {
			return a.SuccessRate > b.SuccessRate
		}
		if !a.MedianFinalBalance.Equal(b.MedianFinalBalance) {
			return a.MedianFinalBalance.GreaterThan(b.MedianFinalBalance)
		}
		return ranked[i].Name < ranked[j].Name
	})
	return ranked
}

// FormatComparison renders a side-by-side table of preset results.
func FormatComparison(results map[string]*domain.SimulationResult) []byte {
	ranked := RankPresets(results)

	var buf []byte
	appendLine := func(s string) { buf = append(buf, s...); buf = append(buf, '\n') }

	appendLine("ALLOCATION COMPARISON")
	appendLine("================================")
	appendLine(fmt.Sprintf("%-14s %10s %18s %18s %12s", "Preset", "Success", "Median Final", "10th Pctl", "Drawdown"))
	for _, entry := range ranked {
		r := entry.Result
		drawdown, _ := r.MedianMaxDrawdown.Mul(decimal.NewFromInt(100)).Float64()
		appendLine(fmt.Sprintf("%-14s %10s %18s %18s %11.1f%%",
			entry.Name,
			FormatPercent(r.SuccessRate),
			FormatCurrency(r.MedianFinalBalance),
			FormatCurrency(r.Percentile10),
			drawdown,
		))
	}
	if len(ranked) > 0 {
		appendLine("")
		appendLine(fmt.Sprintf("Best by success rate: %s (%s)", ranked[0].Name, FormatPercent(ranked[0].Result.SuccessRate)))
	}
	return buf
}
