package templates

import "github.com/a-h/templ"

// MetricSample is one collected data point.
type MetricSample struct {
	CollectedAt string
	Value       string
	Source      string
}

// MetricSeriesView is one metric with its ordered samples.
type MetricSeriesView struct {
	Name    string
	Samples []MetricSample
}

// MetricsParams carries the field metric series for one project.
type MetricsParams struct {
	ProjectName string
	FieldName   string
	Series      []MetricSeriesView
}

// MetricsPage renders collected metric time series for a project field.
func MetricsPage(page PageContext, params MetricsParams) templ.Component {
	title := T(page.Loc, "public.metrics.title", params.FieldName, params.ProjectName)
	body := build(func(b *htmlBuilder) {
		b.el("h1", "", title)
		if len(params.Series) == 0 {
			b.el("p", `class="empty"`, T(page.Loc, "public.metrics.empty"))
			return
		}
		for _, series := range params.Series {
			b.raw(`<section class="metric">`)
			b.el("h2", "", series.Name)
			b.raw(`<table><tbody>`)
			for _, sample := range series.Samples {
				b.raw(`<tr><td class="when">`)
				b.text(sample.CollectedAt)
				b.raw(`</td><td class="value">`)
				b.text(sample.Value)
				b.raw(`</td><td class="source">`)
				b.text(sample.Source)
				b.raw(`</td></tr>`)
			}
			b.raw(`</tbody></table></section>`)
		}
	})
	return Layout(page, title, body)
}
