// Package printer writes styled, human-facing status lines for commands.
package printer

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"

	"github.com/colonyops/bounty/internal/core/styles"
)

type ctxKey struct{}

// Printer writes one status line per call.
type Printer struct {
	w io.Writer
}

// New returns a Printer writing to w.
func New(w io.Writer) *Printer {
	return &Printer{w: w}
}

// NewContext returns a copy of ctx carrying p.
func NewContext(ctx context.Context, p *Printer) context.Context {
	return context.WithValue(ctx, ctxKey{}, p)
}

// Ctx returns the Printer stored in ctx, or one writing to stderr.
func Ctx(ctx context.Context) *Printer {
	if p, ok := ctx.Value(ctxKey{}).(*Printer); ok {
		return p
	}
	return New(os.Stderr)
}

func (p *Printer) Printf(format string, args ...any) {
	_, _ = fmt.Fprintf(p.w, format+"\n", args...)
}

func (p *Printer) Infof(format string, args ...any) {
	p.prefixed(styles.MutedStyle, "•", format, args...)
}

func (p *Printer) Successf(format string, args ...any) {
	p.prefixed(styles.SuccessStyle, styles.IconCheck, format, args...)
}

func (p *Printer) Warnf(format string, args ...any) {
	p.prefixed(styles.WarningStyle, styles.IconWarning, format, args...)
}

func (p *Printer) Errorf(format string, args ...any) {
	p.prefixed(styles.ErrorStyle, "✗", format, args...)
}

// Field prints an aligned label and value.
func (p *Printer) Field(label string, value string) {
	_, _ = fmt.Fprintf(p.w, "%s %s\n", styles.LabelStyle.Render(label), value)
}

// Header prints a bold title followed by a divider.
func (p *Printer) Header(title string) {
	_, _ = fmt.Fprintln(p.w, styles.CommandHeaderStyle.Render(title))
	_, _ = fmt.Fprintln(p.w, styles.Divider(lipgloss.Width(title)))
}

func (p *Printer) prefixed(style lipgloss.Style, icon string, format string, args ...any) {
	_, _ = fmt.Fprintf(p.w, "%s %s\n", style.Render(icon), fmt.Sprintf(format, args...))
}
