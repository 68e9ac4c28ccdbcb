package cli

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
)

var (
	red    = lipgloss.Color("#EF4444")
	amber  = lipgloss.Color("#F59E0B")
	green  = lipgloss.Color("#22C55E")
	dimmed = lipgloss.Color("#9CA3AF")

	errorStyle   = lipgloss.NewStyle().Foreground(red).Bold(true)
	warningStyle = lipgloss.NewStyle().Foreground(amber)
	successStyle = lipgloss.NewStyle().Foreground(green).Bold(true)
	headerStyle  = lipgloss.NewStyle().Bold(true)
	dimStyle     = lipgloss.NewStyle().Foreground(dimmed)
)

// console writes styled status lines to a command's output.
type console struct {
	w io.Writer
}

func (c console) success(format string, args ...interface{}) {
	fmt.Fprintln(c.w, successStyle.Render("✓ "+fmt.Sprintf(format, args...)))
}

func (c console) error(format string, args ...interface{}) {
	fmt.Fprintln(c.w, errorStyle.Render("✗ "+fmt.Sprintf(format, args...)))
}

func (c console) warning(format string, args ...interface{}) {
	fmt.Fprintln(c.w, warningStyle.Render("⚠ "+fmt.Sprintf(format, args...)))
}

func (c console) header(text string) {
	fmt.Fprintln(c.w, headerStyle.Render(text))
}

func (c console) hint(format string, args ...interface{}) {
	fmt.Fprintln(c.w, dimStyle.Render("   "+fmt.Sprintf(format, args...)))
}

func (c console) println(args ...interface{}) {
	fmt.Fprintln(c.w, args...)
}

func (c console) printf(format string, args ...interface{}) {
	fmt.Fprintf(c.w, format, args...)
}
