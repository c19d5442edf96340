package output

import (
	"bytes"
	"encoding/csv"
	"strconv"

	"github.com/retirewise/planner/internal/domain"
)

// CSVTimelineExporter writes the percentile timeline as CSV, one row per
// projection year, for spreadsheet follow-up analysis.
type CSVTimelineExporter struct{}

func (e CSVTimelineExporter) Name() string { return "csv" }

func (e CSVTimelineExporter) Format(result *domain.SimulationResult) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write([]string{"year", "p5", "median", "p95"}); err != nil {
		return nil, err
	}
	for i, year := range result.Timeline.Years {
		row := []string{
			strconv.Itoa(year),
			result.Timeline.P5[i].StringFixed(2),
			result.Timeline.Median[i].StringFixed(2),
			result.Timeline.P95[i].StringFixed(2),
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
