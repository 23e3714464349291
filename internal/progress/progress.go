// Package progress renders a terminal progress bar for multi-file writes.
// All output goes to stderr to avoid polluting stdout/pipes.
package progress

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
)

// Bar renders an ASCII progress bar.
type Bar struct {
	Total   int
	Current int
	Label   string
	Width   int
	Enabled bool

	out io.Writer
	mu  sync.Mutex
}

// New creates a progress bar writing to stderr.
// Automatically disabled if stderr is not a TTY, if --json is set, or DEVKIT_NO_PROGRESS=1.
func New(label string, total int, jsonOutput bool) *Bar {
	return &Bar{
		Total:   total,
		Label:   label,
		Width:   40,
		Enabled: !jsonOutput && shouldEnable(),
		out:     os.Stderr,
	}
}

// Set sets the bar to a specific value and total.
func (b *Bar) Set(n, total int, status string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.Total = total
	b.Current = n
	if b.Current > b.Total {
		b.Current = b.Total
	}
	b.render(status)
}

// Finish clears the bar and prints a final completion line.
func (b *Bar) Finish(summary string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.Enabled {
		return
	}
	fmt.Fprintf(b.writer(), "\r\033[K✓ %s\n", summary)
}

// Pct returns the current percentage (0-100) of the bar.
func (b *Bar) Pct() float64 {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.Total == 0 {
		return 0
	}
	return float64(b.Current) / float64(b.Total) * 100
}

func (b *Bar) render(status string) {
	if !b.Enabled {
		return
	}

	pct := 0.0
	if b.Total > 0 {
		pct = float64(b.Current) / float64(b.Total)
	}

	filled := int(pct * float64(b.Width))
	if filled > b.Width {
		filled = b.Width
	}

	bar := strings.Repeat("=", filled) + strings.Repeat(" ", b.Width-filled)
	fmt.Fprintf(b.writer(), "\r\033[K%s [%s] %d/%d  %s",
		b.Label, bar, b.Current, b.Total, status)
}

func (b *Bar) writer() io.Writer {
	if b.out == nil {
		return os.Stderr
	}
	return b.out
}

func shouldEnable() bool {
	if os.Getenv("DEVKIT_NO_PROGRESS") == "1" {
		return false
	}
	return isTTY()
}

func isTTY() bool {
	stat, err := os.Stderr.Stat()
	if err != nil {
		return false
	}
	return (stat.Mode() & os.ModeCharDevice) != 0
}
