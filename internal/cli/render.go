package cli

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/charmbracelet/lipgloss"

	"teampulse/internal/stores"
)

// barWidth is the width of a full 100 point chart bar.
const barWidth = 20

// printer renders pages. Styles come from a renderer bound to the output,
// so colors are dropped when the output is not a terminal.
type printer struct {
	out     io.Writer
	title   lipgloss.Style
	muted   lipgloss.Style
	stress  lipgloss.Style
	motive  lipgloss.Style
	notices map[stores.Color]lipgloss.Style
}

func newPrinter(w io.Writer) *printer {
	r := lipgloss.NewRenderer(w)
	return &printer{
		out:    w,
		title:  r.NewStyle().Bold(true).Underline(true),
		muted:  r.NewStyle().Faint(true),
		stress: r.NewStyle().Foreground(lipgloss.Color("1")),
		motive: r.NewStyle().Foreground(lipgloss.Color("2")),
		notices: map[stores.Color]lipgloss.Style{
			stores.ColorSuccess: r.NewStyle().Foreground(lipgloss.Color("2")).Bold(true),
			stores.ColorError:   r.NewStyle().Foreground(lipgloss.Color("1")).Bold(true),
			stores.ColorWarning: r.NewStyle().Foreground(lipgloss.Color("3")).Bold(true),
			stores.ColorInfo:    r.NewStyle().Foreground(lipgloss.Color("4")),
		},
	}
}

func (p *printer) heading(text string) {
	fmt.Fprintln(p.out, p.title.Render(text))
}

func (p *printer) line(format string, args ...any) {
	fmt.Fprintf(p.out, format+"\n", args...)
}

func (p *printer) note(format string, args ...any) {
	fmt.Fprintln(p.out, p.muted.Render(fmt.Sprintf(format, args...)))
}

// notification prints the visible notification, if any.
func (p *printer) notification(n stores.Notification) {
	if !n.Visible || n.Message == "" {
		return
	}
	style, ok := p.notices[n.Color]
	if !ok {
		style = p.notices[stores.ColorInfo]
	}
	fmt.Fprintln(p.out, style.Render(n.Message))
}

// table prints rows aligned under headers. An empty table prints a note instead.
func (p *printer) table(empty string, headers []string, rows [][]string) {
	if len(rows) == 0 {
		p.note("%s", empty)
		return
	}
	tw := tabwriter.NewWriter(p.out, 2, 0, 2, ' ', 0)
	fmt.Fprintln(tw, strings.Join(headers, "\t"))
	for _, row := range rows {
		fmt.Fprintln(tw, strings.Join(row, "\t"))
	}
	_ = tw.Flush()
}

// bar draws a 0-100 value as a horizontal bar.
func (p *printer) bar(style lipgloss.Style, value int) string {
	n := max(0, min(value, 100)) * barWidth / 100
	return style.Render(strings.Repeat("█", n)) + strings.Repeat("·", barWidth-n)
}
