package exporter

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
)

// exportProgress renders an inline page-counter bar on stderr. Disabled when
// stderr is not a terminal, so piped runs stay clean.
type exportProgress struct {
	enabled   bool
	total     int
	current   int
	lastWidth int
	label     string
	bar       progress.Model
}

func newExportProgress(total int) exportProgress {
	if total <= 0 {
		total = 1
	}
	bar := progress.New(progress.WithDefaultGradient(), progress.WithoutPercentage())
	bar.Width = barWidth()

	return exportProgress{
		enabled: isTerminal(os.Stderr),
		total:   total,
		bar:     bar,
	}
}

// barWidth sizes the bar from COLUMNS, leaving room for the counter and the
// page label next to it.
func barWidth() int {
	cols, err := strconv.Atoi(strings.TrimSpace(os.Getenv("COLUMNS")))
	if err != nil || cols <= 0 {
		return 36
	}
	return min(max(cols-40, 16), 64)
}

func (p *exportProgress) Advance(label string) {
	if !p.enabled {
		return
	}
	p.current = min(p.current+1, p.total)
	p.label = label
	p.render()
}

func (p *exportProgress) Finish(label string) {
	if !p.enabled {
		return
	}
	p.current = p.total
	p.label = label
	p.render()
	fmt.Fprint(os.Stderr, "\n")
	p.lastWidth = 0
}

// Close terminates a partially rendered line when the run ends early.
func (p *exportProgress) Close() {
	if p.enabled && p.lastWidth > 0 {
		fmt.Fprint(os.Stderr, "\n")
		p.lastWidth = 0
	}
}

func (p *exportProgress) render() {
	percent := min(max(float64(p.current)/float64(p.total), 0), 1)
	line := fmt.Sprintf("%s %3.0f%% %d/%d %s",
		p.bar.ViewAs(percent), percent*100, p.current, p.total, strings.TrimSpace(p.label))
	width := len(line)
	// Pad over whatever the previous, possibly longer, line left behind.
	if pad := p.lastWidth - width; pad > 0 {
		line += strings.Repeat(" ", pad)
	}
	fmt.Fprintf(os.Stderr, "\r%s", line)
	p.lastWidth = width
}

func isTerminal(f *os.File) bool {
	if f == nil || strings.EqualFold(strings.TrimSpace(os.Getenv("TERM")), "dumb") {
		return false
	}
	info, err := f.Stat()
	return err == nil && info.Mode()&os.ModeCharDevice != 0
}
