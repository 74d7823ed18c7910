package tui

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/auto2048/internal/core"
	"github.com/vovakirdan/auto2048/internal/grid"
)

// tileWidth is the inner width of one rendered cell.
const tileWidth = 6

// tileBackgrounds maps core.Color palette slots to terminal colours.
var tileBackgrounds = map[core.Color]lipgloss.Color{
	core.ColorDefault:       lipgloss.Color("236"),
	core.ColorGray:          lipgloss.Color("245"),
	core.ColorWhite:         lipgloss.Color("252"),
	core.ColorYellow:        lipgloss.Color("222"),
	core.ColorOrange:        lipgloss.Color("208"),
	core.ColorRed:           lipgloss.Color("203"),
	core.ColorMagenta:       lipgloss.Color("162"),
	core.ColorBlue:          lipgloss.Color("33"),
	core.ColorCyan:          lipgloss.Color("37"),
	core.ColorGreen:         lipgloss.Color("35"),
	core.ColorBrightYellow:  lipgloss.Color("226"),
	core.ColorBrightRed:     lipgloss.Color("196"),
	core.ColorBrightMagenta: lipgloss.Color("201"),
}

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("229"))

	hudStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("250"))

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	boardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240"))
)

// tileStyle returns the style of a cell holding value.
func tileStyle(value int) lipgloss.Style {
	bg, ok := tileBackgrounds[core.TileColor(value)]
	if !ok {
		bg = tileBackgrounds[core.ColorDefault]
	}
	fg := lipgloss.Color("232")
	if value == core.Empty || value >= 128 {
		fg = lipgloss.Color("255")
	}
	return lipgloss.NewStyle().
		Width(tileWidth).
		Align(lipgloss.Center).
		Bold(value >= 8).
		Foreground(fg).
		Background(bg)
}

// RenderGrid draws a grid as coloured tiles, one text line per row.
func RenderGrid(g grid.Grid) string {
	n := g.Size()
	rows := make([]string, 0, n)
	for y := range n {
		cells := make([]string, 0, n)
		for x := range n {
			v := g.At(core.Loc(x, y))
			label := "·"
			if v != core.Empty {
				label = strconv.Itoa(v)
			}
			cells = append(cells, tileStyle(v).Render(label))
		}
		rows = append(rows, strings.Join(cells, " "))
	}
	return boardStyle.Render(strings.Join(rows, "\n\n"))
}

// centerText pads text so that it is centered in width columns.
func centerText(text string, width int) string {
	w := lipgloss.Width(text)
	if w >= width {
		return text
	}
	padding := (width - w) / 2
	return strings.Repeat(" ", padding) + text
}
