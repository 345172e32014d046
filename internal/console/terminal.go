package console

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/fatih/color"
)

var (
	infoColor    = color.New(color.FgCyan)
	dimColor     = color.New(color.Faint)
	successColor = color.New(color.FgGreen)
	warnColor    = color.New(color.FgYellow)
	errorColor   = color.New(color.FgRed, color.Bold)

	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	titleStyle  = lipgloss.NewStyle().Bold(true)

	toneColors = map[Tone]lipgloss.Color{
		ToneInfo:    lipgloss.Color("6"),
		ToneSuccess: lipgloss.Color("2"),
		ToneWarn:    lipgloss.Color("3"),
		ToneError:   lipgloss.Color("1"),
	}
)

// Terminal writes colored output to a stream
type Terminal struct {
	Out io.Writer
}

// NewTerminal creates a Terminal on stdout
func NewTerminal() *Terminal {
	return &Terminal{Out: os.Stdout}
}

func (t *Terminal) line(c *color.Color, format string, args ...interface{}) {
	_, _ = c.Fprintln(t.Out, fmt.Sprintf(format, args...))
}

func (t *Terminal) Info(format string, args ...interface{}) {
	t.line(infoColor, format, args...)
}

func (t *Terminal) Dim(format string, args ...interface{}) {
	t.line(dimColor, format, args...)
}

func (t *Terminal) Success(format string, args ...interface{}) {
	t.line(successColor, format, args...)
}

func (t *Terminal) Warn(format string, args ...interface{}) {
	t.line(warnColor, format, args...)
}

func (t *Terminal) Error(format string, args ...interface{}) {
	t.line(errorColor, format, args...)
}

// Panel draws a rounded box with a bold title line
func (t *Terminal) Panel(title, body string, tone Tone) {
	accent := toneColors[tone]
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(accent).
		Padding(0, 1)

	content := body
	if title != "" {
		content = titleStyle.Foreground(accent).Render(title) + "\n" + body
	}
	_, _ = fmt.Fprintln(t.Out, box.Render(content))
}

// Table draws rows under a header line
func (t *Terminal) Table(title string, headers []string, rows [][]string) {
	tbl := table.New().
		Border(lipgloss.NormalBorder()).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})

	if title != "" {
		_, _ = fmt.Fprintln(t.Out, titleStyle.Render(title))
	}
	_, _ = fmt.Fprintln(t.Out, tbl.Render())
}
