package cli

import (
	"bytes"
	"fmt"
	"html/template"
	"os"
	"strings"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/natasilva/task-tracker-front/internal/targets"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

// pdfBarColumns is how many grid columns the longest bar spans.
const pdfBarColumns = 8

var (
	pdfHeaderColor = props.Color{Red: 50, Green: 50, Blue: 50}
	pdfMutedColor  = props.Color{Red: 120, Green: 120, Blue: 120}
	pdfLineColor   = props.Color{Red: 200, Green: 200, Blue: 200}
	pdfTargetColor = props.Color{Red: 91, Green: 141, Blue: 239}
	pdfMetColor    = props.Color{Red: 34, Green: 197, Blue: 94}
	pdfBelowColor  = props.Color{Red: 245, Green: 158, Blue: 11}
)

// reportDocument is what both export formats render.
type reportDocument struct {
	Title  string
	Period string
	Chart  targets.Chart
}

// renderReportPDF draws the chart as a PDF and saves it to outputPath.
func renderReportPDF(doc reportDocument, outputPath string) error {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(15).
		WithTopMargin(15).
		WithRightMargin(15).
		Build()

	m := maroto.New(cfg)

	m.AddRow(14,
		text.NewCol(12, doc.Title, props.Text{
			Style: fontstyle.Bold,
			Size:  16,
			Color: &pdfHeaderColor,
		}),
	)
	m.AddRow(8,
		text.NewCol(12, doc.Period, props.Text{
			Size:  12,
			Color: &pdfMutedColor,
		}),
	)
	m.AddRow(4, line.NewCol(12, props.Line{Color: &pdfLineColor}))
	m.AddRow(4)

	if doc.Chart.Empty() {
		m.AddRow(8, text.NewCol(12, "No targets for this period.", props.Text{Size: 10, Color: &pdfMutedColor}))
	}

	for _, r := range doc.Chart.Rows {
		m.AddRow(8,
			text.NewCol(9, r.Name, props.Text{
				Style: fontstyle.Bold,
				Size:  10,
				Color: &pdfHeaderColor,
			}),
			text.NewCol(3, r.Percent.String()+"%", props.Text{
				Style: fontstyle.Bold,
				Size:  10,
				Align: align.Right,
				Color: &pdfHeaderColor,
			}),
		)
		if r.Description != "" {
			m.AddRow(5, text.NewCol(12, r.Description, props.Text{Size: 8, Color: &pdfMutedColor}))
		}

		achievedColor := pdfBelowColor
		if r.Met() {
			achievedColor = pdfMetColor
		}
		m.AddRow(6, pdfBarRow("target", r.Target.String(), doc.Chart.Bar(r.Target, pdfBarColumns), pdfTargetColor)...)
		m.AddRow(2)
		m.AddRow(6, pdfBarRow("achieved", r.Achieved.String(), doc.Chart.Bar(r.Achieved, pdfBarColumns), achievedColor)...)
		m.AddRow(6)
	}

	target, achieved := doc.Chart.Totals()
	m.AddRow(4, line.NewCol(12, props.Line{Color: &pdfLineColor}))
	m.AddRow(10,
		text.NewCol(6, "Total", props.Text{
			Style: fontstyle.Bold,
			Size:  12,
			Color: &pdfHeaderColor,
		}),
		text.NewCol(6, fmt.Sprintf("%s of %s", achieved.String(), target.String()), props.Text{
			Style: fontstyle.Bold,
			Size:  12,
			Align: align.Right,
			Color: &pdfHeaderColor,
		}),
	)

	out, err := m.Generate()
	if err != nil {
		return fmt.Errorf("generating PDF: %w", err)
	}

	return out.Save(outputPath)
}

// pdfBarRow lays out a label, a filled bar of n grid columns and the value.
func pdfBarRow(label, value string, n int, color props.Color) []core.Col {
	cols := []core.Col{
		text.NewCol(2, label, props.Text{Size: 8, Color: &pdfMutedColor}),
	}
	if n > 0 {
		cols = append(cols, col.New(n).WithStyle(&props.Cell{BackgroundColor: &color}))
	}
	if rest := pdfBarColumns - n; rest > 0 {
		cols = append(cols, col.New(rest))
	}
	cols = append(cols, text.NewCol(2, value, props.Text{Size: 8, Align: align.Right}))
	return cols
}

// reportMarkdown writes the chart as a markdown table.
func reportMarkdown(doc reportDocument) string {
	cell := strings.NewReplacer("|", `\|`, "\n", " ")

	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n%s\n\n", cell.Replace(doc.Title), doc.Period)
	if doc.Chart.Empty() {
		b.WriteString("No targets for this period.\n")
		return b.String()
	}

	b.WriteString("| Service | Target | Achieved | % | Status |\n")
	b.WriteString("| --- | ---: | ---: | ---: | --- |\n")
	for _, r := range doc.Chart.Rows {
		status := "below target"
		if r.Met() {
			status = "met"
		}
		fmt.Fprintf(&b, "| %s | %s | %s | %s | %s |\n",
			cell.Replace(r.Name), r.Target.String(), r.Achieved.String(), r.Percent.String(), status)
	}
	target, achieved := doc.Chart.Totals()
	fmt.Fprintf(&b, "| **Total** | %s | %s | | |\n", target.String(), achieved.String())
	return b.String()
}

var reportPage = template.Must(template.New("report").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>
body { font-family: sans-serif; margin: 2rem; color: #323232; }
table { border-collapse: collapse; }
th, td { padding: 0.3rem 0.8rem; border-bottom: 1px solid #c8c8c8; }
</style>
</head>
<body>
{{.Content}}
</body>
</html>
`))

// renderReportHTML converts the markdown table to a standalone HTML page.
func renderReportHTML(doc reportDocument, outputPath string) error {
	md := goldmark.New(goldmark.WithExtensions(extension.Table))

	var content bytes.Buffer
	if err := md.Convert([]byte(reportMarkdown(doc)), &content); err != nil {
		return fmt.Errorf("converting report: %w", err)
	}

	var page bytes.Buffer
	err := reportPage.Execute(&page, struct {
		Title   string
		Content template.HTML
	}{doc.Title, template.HTML(content.String())})
	if err != nil {
		return fmt.Errorf("rendering report: %w", err)
	}

	return os.WriteFile(outputPath, page.Bytes(), 0o644)
}
