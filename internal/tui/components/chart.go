package components

import (
	"fmt"
	"math"
	"strings"

	"flowcast/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

// Sparkline renders a unicode sparkline from values.
func Sparkline(values []float64, color lipgloss.Color) string {
	if len(values) == 0 {
		return ""
	}
	t := theme.Active

	blocks := []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

	peak := values[0]
	for _, v := range values[1:] {
		if v > peak {
			peak = v
		}
	}
	if peak == 0 {
		peak = 1
	}

	style := lipgloss.NewStyle().Foreground(color).Background(t.Surface)

	var buf strings.Builder
	buf.Grow(len(values) * 4) // UTF-8 block chars are up to 3 bytes
	for _, v := range values {
		idx := int(v / peak * float64(len(blocks)-1))
		if idx >= len(blocks) {
			idx = len(blocks) - 1
		}
		if idx < 0 {
			idx = 0
		}
		buf.WriteRune(blocks[idx])
	}

	return style.Render(buf.String())
}

// BalanceChart renders a bar chart of projected balances in minor currency
// units. Positive balances grow up from the zero line, negative balances grow
// down and are drawn red. The zero gridline is drawn whenever any value is
// negative.
func BalanceChart(values []int64, labels []string, width, height int) string {
	n := len(values)
	if n == 0 {
		return ""
	}
	t := theme.Active

	if width < 15 || height < 3 {
		minV := values[0]
		for _, v := range values[1:] {
			if v < minV {
				minV = v
			}
		}
		shifted := make([]float64, n)
		for i, v := range values {
			shifted[i] = float64(v - minV)
		}
		return Sparkline(shifted, t.Accent)
	}

	// Work in whole currency units for axis labels.
	units := make([]float64, n)
	minVal, maxVal := 0.0, 0.0
	for i, v := range values {
		units[i] = float64(v) / 100
		if units[i] < minVal {
			minVal = units[i]
		}
		if units[i] > maxVal {
			maxVal = units[i]
		}
	}

	span := maxVal
	if -minVal > span {
		span = -minVal
	}
	tickStep := chartTickStep(span)

	ceiling := 0.0
	if maxVal > 0 {
		ceiling = math.Ceil(maxVal/tickStep) * tickStep
	}
	floor := 0.0
	if minVal < 0 {
		floor = math.Floor(minVal/tickStep) * tickStep
	}
	if ceiling == floor {
		ceiling = tickStep
	}
	total := ceiling - floor

	chartH := height

	// zeroRow is the 1-based row (from the bottom) whose lower edge sits on
	// or just below zero. 0 when every value is non-negative, so the axis
	// line itself is the zero line.
	zeroRow := 0
	if floor < 0 {
		zeroRow = int(math.Round(float64(chartH) * (0 - floor) / total))
		if zeroRow < 1 {
			zeroRow = 1
		}
		if zeroRow > chartH {
			zeroRow = chartH
		}
	}

	// Y-axis tick labels: ceiling at the top, zero at the gridline, floor on
	// the axis row.
	topLabel := moneyChartLabel(ceiling)
	floorLabel := moneyChartLabel(floor)
	yLabelW := len(topLabel) + 1
	if len(floorLabel)+1 > yLabelW {
		yLabelW = len(floorLabel) + 1
	}
	if yLabelW < 4 {
		yLabelW = 4
	}
	tickLabels := map[int]string{chartH: topLabel}
	if zeroRow > 0 && zeroRow < chartH {
		tickLabels[zeroRow+1] = "0"
	}

	// Chart area width
	chartW := width - yLabelW - 1
	if chartW < 5 {
		chartW = 5
	}

	// Bar sizing
	gap := 1
	if n <= 1 {
		gap = 0
	}
	barW := 2
	if n > 1 {
		barW = (chartW - (n - 1)) / n
	} else {
		barW = chartW
	}
	if barW < 2 && n > 1 {
		maxN := (chartW + 1) / 3
		if maxN < 2 {
			maxN = 2
		}
		sampled := make([]float64, maxN)
		var sampledLabels []string
		if len(labels) == n {
			sampledLabels = make([]string, maxN)
		}
		for i := range sampled {
			srcIdx := i * (n - 1) / (maxN - 1)
			sampled[i] = units[srcIdx]
			if sampledLabels != nil {
				sampledLabels[i] = labels[srcIdx]
			}
		}
		units = sampled
		labels = sampledLabels
		n = maxN
		barW = 2
	}
	if barW > 6 {
		barW = 6
	}
	axisLen := n*barW + max(0, n-1)*gap

	blocks := []rune{' ', '▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

	axisStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)
	gapStyle := lipgloss.NewStyle().Background(t.Surface)
	zeroStyle := lipgloss.NewStyle().Foreground(t.Border).Background(t.Surface)
	posStyle := lipgloss.NewStyle().Foreground(t.Green).Background(t.Surface)
	posBrightStyle := lipgloss.NewStyle().Foreground(t.GreenBright).Background(t.Surface)
	negStyle := lipgloss.NewStyle().Foreground(t.Red).Background(t.Surface)

	var b strings.Builder

	for row := chartH; row >= 1; row-- {
		rowBottom := floor + total*float64(row-1)/float64(chartH)
		rowTop := floor + total*float64(row)/float64(chartH)
		onZeroLine := row == zeroRow

		label := tickLabels[row]
		b.WriteString(axisStyle.Render(fmt.Sprintf("%*s", yLabelW, label)))
		b.WriteString(axisStyle.Render("│"))

		for i, v := range units {
			if i > 0 && gap > 0 {
				if onZeroLine {
					b.WriteString(zeroStyle.Render(strings.Repeat("┄", gap)))
				} else {
					b.WriteString(gapStyle.Render(strings.Repeat(" ", gap)))
				}
			}

			switch {
			case v >= 0 && rowBottom >= -1e-9 && v >= rowTop:
				style := posStyle
				if rowTop > ceiling*0.75 {
					style = posBrightStyle
				}
				b.WriteString(style.Render(strings.Repeat("█", barW)))
			case v >= 0 && rowBottom >= -1e-9 && v > rowBottom:
				frac := (v - rowBottom) / (rowTop - rowBottom)
				idx := int(frac * 8)
				if idx > 8 {
					idx = 8
				}
				if idx < 1 {
					idx = 1
				}
				b.WriteString(posStyle.Render(strings.Repeat(string(blocks[idx]), barW)))
			case v < 0 && rowTop <= 1e-9 && v < rowTop:
				b.WriteString(negStyle.Render(strings.Repeat("█", barW)))
			case onZeroLine:
				b.WriteString(zeroStyle.Render(strings.Repeat("┄", barW)))
			default:
				b.WriteString(gapStyle.Render(strings.Repeat(" ", barW)))
			}
		}
		b.WriteString("\n")
	}

	// X-axis line labeled with the floor value
	b.WriteString(axisStyle.Render(fmt.Sprintf("%*s", yLabelW, floorLabel)))
	b.WriteString(axisStyle.Render("└"))
	b.WriteString(axisStyle.Render(strings.Repeat("─", axisLen)))

	// X-axis labels
	if len(labels) == n && n > 0 {
		buf := make([]byte, axisLen)
		for i := range buf {
			buf[i] = ' '
		}

		minSpacing := 8
		labelStep := max(1, (n*minSpacing)/(axisLen+1))

		lastEnd := -1
		for i := 0; i < n; i += labelStep {
			pos := i * (barW + gap)
			lbl := labels[i]
			end := pos + len(lbl)
			if pos <= lastEnd {
				continue
			}
			if end > axisLen {
				end = axisLen
				if end-pos < 3 {
					continue
				}
				lbl = lbl[:end-pos]
			}
			copy(buf[pos:end], lbl)
			lastEnd = end + 1
		}
		if n > 1 {
			lbl := labels[n-1]
			pos := (n - 1) * (barW + gap)
			end := pos + len(lbl)
			if end > axisLen {
				pos = axisLen - len(lbl)
				end = axisLen
			}
			if pos >= 0 && pos > lastEnd {
				for j := pos; j < end; j++ {
					buf[j] = ' '
				}
				copy(buf[pos:end], lbl)
			}
		}

		b.WriteString("\n")
		labelStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)
		b.WriteString(gapStyle.Render(strings.Repeat(" ", yLabelW+1)))
		b.WriteString(labelStyle.Render(strings.TrimRight(string(buf), " ")))
	}

	return b.String()
}

// chartTickStep computes a nice tick interval targeting ~5 ticks.
func chartTickStep(maxVal float64) float64 {
	if maxVal <= 0 {
		return 1
	}
	rough := maxVal / 5
	exp := math.Floor(math.Log10(rough))
	base := math.Pow(10, exp)
	frac := rough / base

	switch {
	case frac < 1.5:
		return base
	case frac < 3.5:
		return 2 * base
	default:
		return 5 * base
	}
}

// moneyChartLabel formats a whole-currency axis value compactly, keeping the
// sign for overdraft rows.
func moneyChartLabel(v float64) string {
	if v == 0 {
		return "0"
	}
	if v < 0 {
		return "-" + formatChartLabel(-v)
	}
	return formatChartLabel(v)
}

func formatChartLabel(v float64) string {
	switch {
	case v >= 1e9:
		if v == math.Trunc(v/1e9)*1e9 {
			return fmt.Sprintf("%.0fB", v/1e9)
		}
		return fmt.Sprintf("%.1fB", v/1e9)
	case v >= 1e6:
		if v == math.Trunc(v/1e6)*1e6 {
			return fmt.Sprintf("%.0fM", v/1e6)
		}
		return fmt.Sprintf("%.1fM", v/1e6)
	case v >= 1e3:
		if v == math.Trunc(v/1e3)*1e3 {
			return fmt.Sprintf("%.0fk", v/1e3)
		}
		return fmt.Sprintf("%.1fk", v/1e3)
	case v >= 1:
		return fmt.Sprintf("%.0f", v)
	default:
		return fmt.Sprintf("%.2f", v)
	}
}
