// Package report renders a dataset profile as Markdown and HTML.
package report

import (
	"fmt"
	"strings"

	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"

	"gobi/domain/core"
	"gobi/domain/stats"
)

const decimals = 4

// Markdown renders every table of the profile as a Markdown document.
func Markdown(name string, p *stats.ProfileReport) string {
	var b strings.Builder
	if name == "" {
		name = "dataset"
	}
	fmt.Fprintf(&b, "# Data report: %s\n\n", escape(name))
	if p == nil {
		b.WriteString("_No data loaded._\n")
		return b.String()
	}

	b.WriteString("## Shape\n\n")
	fmt.Fprintf(&b, "- Rows: %d\n- Columns: %d\n\n", p.Info.Rows, p.Info.Columns)

	b.WriteString("## Columns\n\n")
	rows := make([][]string, 0, len(p.Info.ColumnNames))
	for _, col := range p.Info.ColumnNames {
		rows = append(rows, []string{col, p.Info.DTypes[col], string(p.Info.Kinds[col])})
	}
	writeTable(&b, []string{"Column", "Type", "Kind"}, rows)

	b.WriteString("## Numeric summary\n\n")
	if len(p.Numeric) == 0 {
		b.WriteString("_No numeric columns._\n\n")
	} else {
		rows = rows[:0]
		for _, s := range p.Numeric {
			rows = append(rows, []string{
				s.Column, fmt.Sprint(s.Count),
				num(s.Mean), num(s.Std), num(s.Min), num(s.Q25), num(s.Q50), num(s.Q75), num(s.Max),
			})
		}
		writeTable(&b, []string{"Column", "count", "mean", "std", "min", "25%", "50%", "75%", "max"}, rows)
	}

	b.WriteString("## Categorical summary\n\n")
	if len(p.Categorical) == 0 {
		b.WriteString("_No categorical columns._\n\n")
	} else {
		rows = rows[:0]
		for _, s := range p.Categorical {
			rows = append(rows, []string{s.Column, fmt.Sprint(s.Count), fmt.Sprint(s.Unique), s.Top, fmt.Sprint(s.Freq)})
		}
		writeTable(&b, []string{"Column", "count", "unique", "top", "freq"}, rows)
	}

	b.WriteString("## Missing values\n\n")
	rows = rows[:0]
	for _, m := range p.Missing {
		rows = append(rows, []string{m.Column, fmt.Sprint(m.MissingCount), fmt.Sprintf("%.2f", m.MissingPercent)})
	}
	writeTable(&b, []string{"Column", "Missing Count", "Missing %"}, rows)

	if c := p.Correlation; c != nil && c.Len() >= 2 {
		b.WriteString("## Correlation\n\n")
		header := append([]string{""}, c.Columns...)
		rows = rows[:0]
		for i, col := range c.Columns {
			row := []string{col}
			for j := range c.Columns {
				row = append(row, num(core.Float(c.At(i, j))))
			}
			rows = append(rows, row)
		}
		writeTable(&b, header, rows)
	}
	return b.String()
}

// HTML converts a Markdown document into a standalone HTML page.
func HTML(title, md string) []byte {
	p := parser.NewWithExtensions(parser.CommonExtensions | parser.AutoHeadingIDs)
	doc := p.Parse([]byte(md))
	renderer := html.NewRenderer(html.RendererOptions{
		Title: title,
		Flags: html.CommonFlags | html.CompletePage,
	})
	return markdown.Render(doc, renderer)
}

func writeTable(b *strings.Builder, header []string, rows [][]string) {
	b.WriteString("|")
	for _, h := range header {
		b.WriteString(" " + escape(h) + " |")
	}
	b.WriteString("\n|")
	for range header {
		b.WriteString(" --- |")
	}
	b.WriteString("\n")
	for _, row := range rows {
		b.WriteString("|")
		for _, cell := range row {
			b.WriteString(" " + escape(cell) + " |")
		}
		b.WriteString("\n")
	}
	b.WriteString("\n")
}

func num(f core.Float) string {
	if !f.Valid() {
		return "NaN"
	}
	return f.Format(decimals)
}

// escape keeps cell text from breaking the table layout
func escape(s string) string {
	s = strings.ReplaceAll(s, "|", `\|`)
	return strings.ReplaceAll(s, "\n", " ")
}
