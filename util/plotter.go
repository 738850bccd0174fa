package util

import (
	"fmt"
	"io"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"pageviews-server/aggregator"
)

// RenderArticleViewsChart writes an HTML line chart of an article's daily views.
func RenderArticleViewsChart(w io.Writer, article, dateRange string, series []aggregator.DailyViews) error {
	days := make([]string, 0, len(series))
	points := make([]opts.LineData, 0, len(series))
	for _, d := range series {
		days = append(days, d.Timestamp)
		points = append(points, opts.LineData{Value: d.Views})
	}

	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			PageTitle: article + " pageviews",
			Width:     "900px",
			Height:    "500px",
		}),
		charts.WithTitleOpts(opts.Title{
			Title:    article,
			Subtitle: dateRange,
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
	)

	line.SetXAxis(days).AddSeries("Views", points)

	if err := line.Render(w); err != nil {
		return fmt.Errorf("failed to render chart: %w", err)
	}
	return nil
}
