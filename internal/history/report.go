package history

import (
	"fmt"
	"io"
	"math"
	"os"
	"strings"
	"unicode/utf8"

	"golang.org/x/term"

	"wordquiz/internal/model"
)

const sparkChars = " .:-=+*#%@"

// RenderReport prints the history log as an aligned table with an accuracy
// trend line underneath, sized to the terminal.
func RenderReport(w io.Writer, entries []model.HistoryEntry) error {
	if len(entries) == 0 {
		_, err := fmt.Fprintln(w, "No sessions recorded yet.")
		return err
	}

	headers := []string{"When", "Mode", "Words", "Correct", "Wrong", "Accuracy", "Hints", "Timeouts"}
	rows := make([][]string, 0, len(entries))
	for _, entry := range entries {
		rows = append(rows, []string{
			entry.Timestamp.Format("2006-01-02 15:04"),
			entry.Mode.Title(),
			fmt.Sprintf("%d", entry.WordCount),
			fmt.Sprintf("%d", entry.Correct),
			fmt.Sprintf("%d", entry.Incorrect),
			fmt.Sprintf("%d%%", entry.Accuracy),
			fmt.Sprintf("%d", entry.TotalHintsUsed),
			fmt.Sprintf("%d", entry.TimeoutCount),
		})
	}
	rightAlign := map[int]bool{2: true, 3: true, 4: true, 5: true, 6: true, 7: true}
	for _, line := range formatTable(headers, rows, rightAlign) {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}

	if _, err := fmt.Fprintln(w, ""); err != nil {
		return err
	}
	trend := accuracyTrend(entries, trendWidth())
	if trend != "" {
		if _, err := fmt.Fprintf(w, "Accuracy trend (old -> new): %s\n", trend); err != nil {
			return err
		}
	}
	return nil
}

// accuracyTrend renders a sparkline of accuracy in chronological order,
// downsampled to fit the width.
func accuracyTrend(entries []model.HistoryEntry, width int) string {
	if len(entries) < 2 {
		return ""
	}
	// Entries arrive newest first.
	values := make([]float64, 0, len(entries))
	for i := len(entries) - 1; i >= 0; i-- {
		values = append(values, float64(entries[i].Accuracy))
	}
	if width > 0 && len(values) > width {
		values = downsample(values, width)
	}
	return sparkline(values)
}

func downsample(values []float64, width int) []float64 {
	out := make([]float64, width)
	for i := 0; i < width; i++ {
		start := i * len(values) / width
		end := (i + 1) * len(values) / width
		if end <= start {
			end = start + 1
		}
		sum := 0.0
		for _, v := range values[start:end] {
			sum += v
		}
		out[i] = sum / float64(end-start)
	}
	return out
}

func sparkline(values []float64) string {
	if len(values) == 0 {
		return ""
	}
	var b strings.Builder
	for _, v := range values {
		pos := v / 100
		idx := int(math.Round(pos * float64(len(sparkChars)-1)))
		if idx < 0 {
			idx = 0
		}
		if idx >= len(sparkChars) {
			idx = len(sparkChars) - 1
		}
		b.WriteByte(sparkChars[idx])
	}
	return b.String()
}

func trendWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return 50
	}
	if width > 110 {
		width = 110
	}
	return width - 30
}

func formatTable(headers []string, rows [][]string, rightAlignCols map[int]bool) []string {
	colCount := len(headers)
	for _, row := range rows {
		if len(row) > colCount {
			colCount = len(row)
		}
	}
	if colCount == 0 {
		return nil
	}

	widths := make([]int, colCount)
	for i, header := range headers {
		widths[i] = displayWidth(header)
	}
	for _, row := range rows {
		for i := 0; i < colCount; i++ {
			cell := ""
			if i < len(row) {
				cell = row[i]
			}
			if w := displayWidth(cell); w > widths[i] {
				widths[i] = w
			}
		}
	}

	lines := make([]string, 0, len(rows)+1)
	if len(headers) > 0 {
		lines = append(lines, formatRow(headers, widths, rightAlignCols))
	}
	for _, row := range rows {
		lines = append(lines, formatRow(row, widths, rightAlignCols))
	}
	return lines
}

func formatRow(row []string, widths []int, rightAlignCols map[int]bool) string {
	var b strings.Builder
	for i := 0; i < len(widths); i++ {
		cell := ""
		if i < len(row) {
			cell = row[i]
		}
		if i > 0 {
			b.WriteString("  ")
		}
		b.WriteString(padCell(cell, widths[i], rightAlignCols[i]))
	}
	return b.String()
}

func padCell(value string, width int, rightAlign bool) string {
	valueWidth := displayWidth(value)
	if valueWidth >= width {
		return value
	}
	padding := width - valueWidth
	if rightAlign {
		return strings.Repeat(" ", padding) + value
	}
	return value + strings.Repeat(" ", padding)
}

func displayWidth(value string) int {
	return utf8.RuneCountInString(value)
}
