package cli

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/schollz/progressbar/v3"
)

// SeedProgress renders a progress bar for transaction inserts. The bar is
// created on the first update, once the planned total is known.
type SeedProgress struct {
	writer io.Writer
	bar    *progressbar.ProgressBar
}

// NewSeedProgress creates a progress reporter writing to w.
func NewSeedProgress(w io.Writer) *SeedProgress {
	return &SeedProgress{writer: w}
}

// Update records that done of total transactions have been inserted.
func (p *SeedProgress) Update(done, total int) {
	if p.bar == nil {
		p.bar = newSeedBar(p.writer, total)
	}
	if err := p.bar.Set(done); err != nil {
		slog.Warn("Failed to update progress bar", "error", err)
	}
}

// Abort clears an unfinished bar so error output starts on a clean line.
func (p *SeedProgress) Abort() {
	if p.bar == nil || p.bar.IsFinished() {
		return
	}
	if err := p.bar.Clear(); err != nil {
		slog.Debug("Failed to clear progress bar", "error", err)
	}
}

func newSeedBar(w io.Writer, total int) *progressbar.ProgressBar {
	return progressbar.NewOptions(total,
		progressbar.OptionSetWriter(w),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionShowCount(),
		progressbar.OptionSetWidth(40),
		progressbar.OptionSetDescription("[cyan][bold]Seeding transactions...[reset]"),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "[green]=[reset]",
			SaucerHead:    "[green]>[reset]",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}),
		progressbar.OptionOnCompletion(func() {
			if _, err := fmt.Fprintln(w); err != nil {
				slog.Warn("Failed to write newline after progress bar", "error", err)
			}
		}),
	)
}
