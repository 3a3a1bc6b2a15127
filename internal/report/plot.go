package report

import (
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/verte-zerg/quizboard/internal/model"
)

// Series is one team's score after each applied action.
type Series struct {
	Name   string
	Color  string
	Values []float64
}

type lineStyle struct {
	name   string
	period int
	on     int
}

const (
	defaultPlotHeight = 8
	minPlotWidth      = 10
	axisSeparator     = " │ "
)

var lineStyles = []lineStyle{
	{name: "solid", period: 1, on: 1},
	{name: "dashed", period: 6, on: 3},
	{name: "dotted", period: 4, on: 1},
	{name: "dashdot", period: 8, on: 3},
}

// ScoreSeries replays the applied part of the history into one series per
// current team. A point is taken before the first action and after each one.
func ScoreSeries(s *model.Session) []Series {
	states := make([]model.State, 0, s.HistoryIndex+2)
	for i := 0; i <= s.HistoryIndex && i < len(s.History); i++ {
		states = append(states, s.History[i].StateBefore)
	}
	states = append(states, s.State)

	out := make([]Series, 0, len(s.State.Teams))
	for _, team := range s.State.Teams {
		values := make([]float64, len(states))
		for i, st := range states {
			for _, t := range st.Teams {
				if t.ID == team.ID {
					values[i] = float64(t.Score)
					break
				}
			}
		}
		out = append(out, Series{Name: team.Name, Color: team.Color, Values: values})
	}
	return out
}

// Timeline plots every team's score on a shared scale.
func Timeline(w io.Writer, series []Series, width, height int, forceColor bool) error {
	series = filterSeries(series)
	if len(series) == 0 || maxSeriesLen(series) < 2 {
		_, err := fmt.Fprintln(w, "Not enough history for a timeline.")
		return err
	}
	if height <= 0 {
		height = defaultPlotHeight
	}

	minVal, maxVal := math.Inf(1), math.Inf(-1)
	for _, s := range series {
		lo, hi := seriesMinMax(s.Values)
		minVal, maxVal = math.Min(minVal, lo), math.Max(maxVal, hi)
	}
	if maxVal-minVal < 1e-9 {
		minVal--
		maxVal++
	}
	labels := makeAxisLabels(height, minVal, maxVal)
	axisWidth := 0
	for _, l := range labels {
		axisWidth = max(axisWidth, runewidth.StringWidth(l))
	}
	if width <= 0 {
		width = TerminalWidth() - axisWidth - runewidth.StringWidth(axisSeparator)
	}
	width = max(width, minPlotWidth)

	cells := make([][][]uint8, len(series))
	for si, s := range series {
		cells[si] = makeCells(height, width)
		style := lineStyles[si%len(lineStyles)]
		prevX, prevY := -1, -1
		for x, v := range resampleSeries(s.Values, width) {
			px, py := x*2, valueToRow(v, minVal, maxVal, height*4)
			if prevX >= 0 {
				drawLine(prevX, prevY, px, py, func(dx, dy int) {
					if style.shouldPlot(dx) {
						setBrailleDot(cells[si], dx, dy)
					}
				})
			} else if style.shouldPlot(px) {
				setBrailleDot(cells[si], px, py)
			}
			prevX, prevY = px, py
		}
	}

	useColor := shouldUseColor(w, forceColor)
	lines := make([]string, 0, height+1)
	for y := 0; y < height; y++ {
		var row strings.Builder
		row.WriteString(padCell(labels[y], axisWidth, true))
		row.WriteString(axisSeparator)
		for x := 0; x < width; x++ {
			mask, owner := composeCell(cells, x, y)
			ch := string(brailleFromMask(mask))
			if owner >= 0 {
				ch = colorize(ch, series[owner].Color, useColor)
			}
			row.WriteString(ch)
		}
		lines = append(lines, row.String())
	}
	lines = append(lines, renderLegend(series, useColor))
	return writeLines(w, lines)
}

func filterSeries(series []Series) []Series {
	out := make([]Series, 0, len(series))
	for _, s := range series {
		if len(s.Values) > 0 {
			out = append(out, s)
		}
	}
	return out
}

func maxSeriesLen(series []Series) int {
	n := 0
	for _, s := range series {
		n = max(n, len(s.Values))
	}
	return n
}

func makeAxisLabels(height int, minVal, maxVal float64) []string {
	labels := make([]string, height)
	labels[0] = Points(int(math.Round(maxVal)))
	if height > 2 {
		labels[height/2] = Points(int(math.Round((minVal + maxVal) / 2)))
	}
	if height > 1 {
		labels[height-1] = Points(int(math.Round(minVal)))
	}
	return labels
}

func renderLegend(series []Series, useColor bool) string {
	parts := make([]string, 0, len(series))
	marker := brailleFromMask(0x01)
	for i, s := range series {
		label := fmt.Sprintf("%c %s (%s)", marker, s.Name, lineStyles[i%len(lineStyles)].name)
		parts = append(parts, colorize(label, s.Color, useColor))
	}
	return "Legend: " + strings.Join(parts, "  ")
}

func makeCells(height, width int) [][]uint8 {
	cells := make([][]uint8, height)
	for y := range cells {
		cells[y] = make([]uint8, width)
	}
	return cells
}

// composeCell merges the dots of every series; the first series with a dot owns the colour.
func composeCell(seriesCells [][][]uint8, x, y int) (uint8, int) {
	var mask uint8
	owner := -1
	for i, cells := range seriesCells {
		m := cells[y][x]
		if m == 0 {
			continue
		}
		if owner == -1 {
			owner = i
		}
		mask |= m
	}
	return mask, owner
}

func (ls lineStyle) shouldPlot(x int) bool {
	if ls.period <= 1 {
		return true
	}
	if x < 0 {
		x = -x
	}
	return x%ls.period < ls.on
}

// resampleSeries stretches or averages values to exactly width points.
func resampleSeries(values []float64, width int) []float64 {
	out := make([]float64, width)
	if len(values) >= width {
		for i := range out {
			start := i * len(values) / width
			end := max((i+1)*len(values)/width, start+1)
			var sum float64
			for _, v := range values[start:end] {
				sum += v
			}
			out[i] = sum / float64(end-start)
		}
		return out
	}
	if width == 1 || len(values) == 1 {
		for i := range out {
			out[i] = values[0]
		}
		return out
	}
	for i := range out {
		pos := float64(i) * float64(len(values)-1) / float64(width-1)
		idx := int(math.Floor(pos))
		if idx >= len(values)-1 {
			out[i] = values[len(values)-1]
			continue
		}
		frac := pos - float64(idx)
		out[i] = values[idx]*(1-frac) + values[idx+1]*frac
	}
	return out
}

func seriesMinMax(values []float64) (float64, float64) {
	lo, hi := values[0], values[0]
	for _, v := range values[1:] {
		lo, hi = math.Min(lo, v), math.Max(hi, v)
	}
	return lo, hi
}

func valueToRow(v, minVal, maxVal float64, height int) int {
	pos := (v - minVal) / (maxVal - minVal)
	row := int(math.Round((1 - pos) * float64(height-1)))
	return min(max(row, 0), height-1)
}

// drawLine walks a Bresenham line between two dot coordinates.
func drawLine(x0, y0, x1, y1 int, plot func(x, y int)) {
	dx := abs(x1 - x0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	dy := -abs(y1 - y0)
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx + dy
	for {
		plot(x0, y0)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

// setBrailleDot sets one dot; each cell is 2 dots wide and 4 tall.
func setBrailleDot(cells [][]uint8, x, y int) {
	cellY, cellX := y/4, x/2
	if y < 0 || x < 0 || cellY >= len(cells) || cellX >= len(cells[cellY]) {
		return
	}
	cells[cellY][cellX] |= brailleDotMask(x%2, y%4)
}

var brailleDots = [2][4]uint8{
	{0x01, 0x02, 0x04, 0x40},
	{0x08, 0x10, 0x20, 0x80},
}

func brailleDotMask(x, y int) uint8 {
	return brailleDots[x][y]
}

func brailleFromMask(mask uint8) rune {
	return rune(0x2800 + int(mask))
}
