package report

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

type palette struct {
	title  lipgloss.Style
	red    lipgloss.Style
	green  lipgloss.Style
	yellow lipgloss.Style
	cyan   lipgloss.Style
}

func newPalette(r *lipgloss.Renderer) palette {
	return palette{
		title:  r.NewStyle().Bold(true).Foreground(lipgloss.Color("12")),
		red:    r.NewStyle().Foreground(lipgloss.Color("1")),
		green:  r.NewStyle().Foreground(lipgloss.Color("2")),
		yellow: r.NewStyle().Foreground(lipgloss.Color("3")),
		cyan:   r.NewStyle().Foreground(lipgloss.Color("6")),
	}
}

// Title 見出し
func (p *Printer) Title(format string, a ...interface{}) string {
	return p.palette.title.Render(fmt.Sprintf(format, a...))
}

// Red 赤字
func (p *Printer) Red(format string, a ...interface{}) string {
	return p.palette.red.Render(fmt.Sprintf(format, a...))
}

// Green 緑字
func (p *Printer) Green(format string, a ...interface{}) string {
	return p.palette.green.Render(fmt.Sprintf(format, a...))
}

// Yellow 黄字
func (p *Printer) Yellow(format string, a ...interface{}) string {
	return p.palette.yellow.Render(fmt.Sprintf(format, a...))
}

// Cyan 水色
func (p *Printer) Cyan(format string, a ...interface{}) string {
	return p.palette.cyan.Render(fmt.Sprintf(format, a...))
}
