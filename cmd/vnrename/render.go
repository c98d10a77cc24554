package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"vnrename/internal/matching"
)

// formatConfidence renders a confidence as a percentage, colored on the red
// to green scale when colorize is set.
func formatConfidence(confidence float64, colorize bool) string {
	text := fmt.Sprintf("%.0f%%", confidence*100)
	if !colorize {
		return text
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color(matching.ConfidenceColor(confidence))).Render(text)
}

func renderCandidateRows(candidates []matching.Candidate, colorize bool) [][]string {
	rows := make([][]string, 0, len(candidates))
	for i, c := range candidates {
		developer, _ := c.VN.FirstDeveloper()
		rows = append(rows, []string{
			fmt.Sprintf("%d", i+1),
			c.VN.Title,
			c.VN.ID,
			valueOr(c.VN.Released, "-"),
			valueOr(developer, "-"),
			formatConfidence(c.Confidence, colorize),
		})
	}
	return rows
}

func printCandidates(out io.Writer, candidates []matching.Candidate, colorize bool) {
	headers := []string{"#", "Title", "ID", "Released", "Developer", "Confidence"}
	aligns := []columnAlignment{alignRight, alignLeft, alignLeft, alignLeft, alignLeft, alignRight}
	fmt.Fprintln(out, renderTable(headers, renderCandidateRows(candidates, colorize), aligns))
}

func formatHints(parsedDate, parsedProducer string) string {
	var parts []string
	if parsedDate != "" {
		parts = append(parts, "date="+parsedDate)
	}
	if parsedProducer != "" {
		parts = append(parts, "producer="+parsedProducer)
	}
	if len(parts) == 0 {
		return "-"
	}
	return strings.Join(parts, " ")
}

func valueOr(value, fallback string) string {
	if strings.TrimSpace(value) == "" {
		return fallback
	}
	return value
}
