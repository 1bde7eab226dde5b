package portfolio

import (
	"bytes"
	"fmt"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/pshvarts/stockfolio/internal/models"
)

// RenderHoldingsChart renders a PNG bar chart of holding quantities.
// Bars are labeled with the stock symbol when present, the name otherwise.
// Returns raw PNG bytes.
func RenderHoldingsChart(p *models.Portfolio) ([]byte, error) {
	if len(p.Stocks) == 0 {
		return nil, fmt.Errorf("need at least 1 holding, got 0")
	}

	bars := make([]chart.Value, 0, len(p.Stocks))
	for _, h := range p.Stocks {
		label := h.Stock.Symbol
		if label == "" {
			label = h.Stock.Name
		}
		bars = append(bars, chart.Value{
			Label: label,
			Value: h.Quantity,
			Style: chart.Style{
				FillColor:   drawing.ColorFromHex("2563eb"), // blue-600
				StrokeColor: drawing.ColorFromHex("2563eb"),
			},
		})
	}

	graph := chart.BarChart{
		Title:    fmt.Sprintf("Holdings: %s", p.User),
		Width:    900,
		Height:   400,
		BarWidth: 48,
		Background: chart.Style{
			Padding: chart.Box{Top: 40, Left: 10, Right: 20, Bottom: 10},
		},
		YAxis: chart.YAxis{
			ValueFormatter: func(v interface{}) string {
				if f, ok := v.(float64); ok {
					return fmt.Sprintf("%.0f", f)
				}
				return ""
			},
		},
		Bars: bars,
	}

	var buf bytes.Buffer
	if err := graph.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("chart render failed: %w", err)
	}

	return buf.Bytes(), nil
}
