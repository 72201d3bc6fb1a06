package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/rileyhilliard/healthdigest/internal/summary"
	"github.com/rileyhilliard/healthdigest/internal/util"
)

// SparklineWidth caps how many readings a preview sparkline shows.
const SparklineWidth = 24

// HeaderWidth is the width of the divider under a host title.
const HeaderWidth = 50

// RenderHostTitle renders the title line shown above one host's preview.
func RenderHostTitle(host string, records int) string {
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(ColorInfo)
	countStyle := lipgloss.NewStyle().Foreground(ColorMuted)
	dividerStyle := lipgloss.NewStyle().Foreground(ColorMuted)

	var out strings.Builder
	out.WriteString(titleStyle.Render(strings.TrimSpace(host)))
	out.WriteString(" ")
	out.WriteString(countStyle.Render("("+util.Count(records, "record", "records")+")"))
	out.WriteString("\n")
	out.WriteString(dividerStyle.Render(strings.Repeat("━", HeaderWidth)))
	out.WriteString("\n")
	return out.String()
}

// RenderPreview renders a summary for the terminal: the reduced table, the
// constants, then one statistics line per numeric component.
func RenderPreview(s *summary.Summary) string {
	sectionStyle := lipgloss.NewStyle().Bold(true).Foreground(ColorSecondary)
	nameStyle := lipgloss.NewStyle().Foreground(ColorInfo)
	constStyle := lipgloss.NewStyle().Foreground(ColorSuccess)
	mutedStyle := lipgloss.NewStyle().Foreground(ColorMuted)

	var out strings.Builder

	if len(s.Columns) > 0 {
		out.WriteString(RenderSimpleTable(FitColumns(s.Columns, s.Rows), s.Rows))
		out.WriteString("\n")
	}

	if len(s.Constants) > 0 {
		out.WriteString("\n")
		out.WriteString(sectionStyle.Render("Constants"))
		out.WriteString("\n")
		for _, c := range s.Constants {
			fmt.Fprintf(&out, "  %s %s: %s\n", constStyle.Render(SymbolConstant), nameStyle.Render(c.Name), c.Value)
		}
	}

	if len(s.Statistics) > 0 {
		out.WriteString("\n")
		out.WriteString(sectionStyle.Render("Statistics"))
		out.WriteString("\n")

		width := 0
		for _, col := range s.Statistics {
			for _, comp := range col.Components {
				width = max(width, lipgloss.Width(componentLabel(col, comp)))
			}
		}
		for _, col := range s.Statistics {
			for _, comp := range col.Components {
				fmt.Fprintf(&out, "  %s %s  %s  %s\n",
					mutedStyle.Render(SymbolStat),
					nameStyle.Render(padRight(componentLabel(col, comp), width)),
					formatStats(comp.Stats, mutedStyle),
					SeriesSparkline(comp.Series, SparklineWidth))
			}
		}
	}

	return out.String()
}

// componentLabel names a component: the column itself, or column[i] for
// multi-valued columns.
func componentLabel(col summary.ColumnStats, comp summary.ComponentStats) string {
	if !col.Multi {
		return col.Name
	}
	return fmt.Sprintf("%s[%d]", col.Name, comp.Position)
}

func formatStats(stats summary.Stats, muted lipgloss.Style) string {
	parts := make([]string, 0, len(stats))
	for _, st := range stats {
		if st.Name == summary.StatNulls {
			parts = append(parts, muted.Render(SymbolNull+" "+st.Name+" "+st.Value))
			continue
		}
		parts = append(parts, muted.Render(st.Name)+" "+st.Value)
	}
	return strings.Join(parts, "  ")
}
