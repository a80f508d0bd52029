package cli

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/schollz/progressbar/v3"
)

// PageProgress shows a progress bar while a paginated collection is
// fetched. It implements paperless.Progress.
type PageProgress struct {
	writer io.Writer
	bar    *progressbar.ProgressBar
}

// NewPageProgress creates a PageProgress writing to w.
func NewPageProgress(w io.Writer) *PageProgress {
	return &PageProgress{writer: w}
}

// Start begins a bar for resource. A total of zero or less shows a spinner.
func (p *PageProgress) Start(resource string, total int) {
	if total <= 0 {
		total = -1
	}
	p.bar = progressbar.NewOptions(total,
		progressbar.OptionSetWriter(p.writer),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionShowCount(),
		progressbar.OptionSetWidth(40),
		progressbar.OptionSetDescription(fmt.Sprintf("[cyan][bold]Fetching %s...[reset]", resource)),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "[green]=[reset]",
			SaucerHead:    "[green]>[reset]",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}),
		progressbar.OptionOnCompletion(func() {
			if _, err := fmt.Fprintln(p.writer); err != nil {
				slog.Warn("Failed to write newline after progress bar", "error", err)
			}
		}),
	)
}

// Add advances the bar by n records.
func (p *PageProgress) Add(n int) {
	if p.bar == nil {
		return
	}
	if err := p.bar.Add(n); err != nil {
		slog.Warn("Failed to update progress bar", "error", err)
	}
}

// Finish completes the current bar.
func (p *PageProgress) Finish() {
	if p.bar == nil {
		return
	}
	if err := p.bar.Finish(); err != nil {
		slog.Warn("Failed to finish progress bar", "error", err)
	}
	p.bar = nil
}
