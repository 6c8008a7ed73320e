package report

import (
	"fmt"
	"strings"

	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"

	"chartadvisor/domain/chart"
	"chartadvisor/domain/dataset"
	"chartadvisor/internal/profile"
)

// Input bundles everything a dataset summary can draw on.
type Input struct {
	Title           string
	TotalRows       int
	Fields          []dataset.FieldDescriptor
	Recommendations []chart.Recommendation
	Correlations    []profile.FieldCorrelation
}

// Markdown renders the analysis summary as a markdown document.
func Markdown(in Input) string {
	var b strings.Builder

	title := in.Title
	if title == "" {
		title = "Dataset Analysis"
	}
	fmt.Fprintf(&b, "# %s\n\n", title)
	fmt.Fprintf(&b, "%d rows, %d fields.\n\n", in.TotalRows, len(in.Fields))

	b.WriteString("## Fields\n\n")
	b.WriteString("| Field | Type | Unique | Nullable | Stats |\n")
	b.WriteString("| --- | --- | --- | --- | --- |\n")
	for _, f := range in.Fields {
		stats := ""
		if s := f.NumericStats; s != nil {
			stats = fmt.Sprintf("min %.4g, max %.4g, mean %.4g, median %.4g, sum %.4g",
				s.Min, s.Max, s.Mean, s.Median, s.Sum)
		}
		fmt.Fprintf(&b, "| %s | %s | %d | %t | %s |\n",
			f.Name, f.DataType, f.UniqueCount, f.Nullable, stats)
	}
	b.WriteString("\n")

	if len(in.Recommendations) > 0 {
		b.WriteString("## Suggested Charts\n\n")
		for _, rec := range in.Recommendations {
			meta := rec.ChartType.Meta()
			fmt.Fprintf(&b, "- **%s** (confidence %d): %s\n", meta.Label, rec.Confidence, rec.Reason)
		}
		b.WriteString("\n")
	}

	if len(in.Correlations) > 0 {
		b.WriteString("## Correlations\n\n")
		for _, c := range in.Correlations {
			fmt.Fprintf(&b, "- %s and %s: r = %.3f over %d rows\n", c.FieldX, c.FieldY, c.R, c.N)
		}
		b.WriteString("\n")
	}

	return b.String()
}

// HTML renders the analysis summary to HTML for the dashboard panel.
func HTML(in Input) []byte {
	md := Markdown(in)
	p := parser.NewWithExtensions(parser.CommonExtensions | parser.NoEmptyLineBeforeBlock)
	doc := p.Parse([]byte(md))
	renderer := html.NewRenderer(html.RendererOptions{Flags: html.CommonFlags})
	return markdown.Render(doc, renderer)
}
