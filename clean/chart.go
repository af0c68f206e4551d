package clean

import (
	"io"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/go-echarts/go-echarts/v2/types"
)

// RenderMissingCharts writes an HTML page with three bar charts: missing
// values before cleaning, after cleaning, and both side by side.
func RenderMissingCharts(w io.Writer, before, after []ColumnCount) error {
	labels := make([]string, len(before))
	for i, c := range before {
		labels[i] = c.Column
	}

	beforeChart := missingBar("Missing Values Before Cleaning", labels)
	beforeChart.AddSeries("Before Cleaning", barData(before, labels)).
		SetSeriesOptions(charts.WithItemStyleOpts(opts.ItemStyle{Color: "#c0392b"}))

	afterLabels := make([]string, len(after))
	for i, c := range after {
		afterLabels[i] = c.Column
	}
	afterChart := missingBar("Missing Values After Cleaning", afterLabels)
	afterChart.AddSeries("After Cleaning", barData(after, afterLabels)).
		SetSeriesOptions(charts.WithItemStyleOpts(opts.ItemStyle{Color: "#27ae60"}))

	comparison := missingBar("Comparison of Missing Values Before and After Cleaning", labels)
	comparison.AddSeries("Before Cleaning", barData(before, labels)).
		SetSeriesOptions(charts.WithItemStyleOpts(opts.ItemStyle{Color: "red"}))
	comparison.AddSeries("After Cleaning", barData(after, labels)).
		SetSeriesOptions(charts.WithItemStyleOpts(opts.ItemStyle{Color: "green"}))

	page := components.NewPage()
	page.PageTitle = "Missing values"
	page.AddCharts(beforeChart, afterChart, comparison)
	return page.Render(w)
}

func missingBar(title string, labels []string) *charts.Bar {
	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			Theme: types.ThemeWonderland,
		}),
		charts.WithTitleOpts(opts.Title{Title: title}),
		charts.WithLegendOpts(opts.Legend{Show: true, Top: "bottom"}),
		charts.WithTooltipOpts(opts.Tooltip{Show: true}),
		charts.WithYAxisOpts(opts.YAxis{Name: "Count of Missing Entries"}),
		charts.WithXAxisOpts(opts.XAxis{
			AxisLabel: &opts.AxisLabel{
				Show:     true,
				Rotate:   45,
				Interval: "0",
			},
		}),
	)
	bar.SetXAxis(labels)
	return bar
}

// barData lines counts up with labels. Columns missing from counts, such as
// ones dropped during cleaning, get zero.
func barData(counts []ColumnCount, labels []string) []opts.BarData {
	byColumn := make(map[string]int, len(counts))
	for _, c := range counts {
		byColumn[c.Column] = c.Missing
	}

	data := make([]opts.BarData, len(labels))
	for i, label := range labels {
		data[i] = opts.BarData{Value: byColumn[label]}
	}
	return data
}
