package renderer

import (
	"os"

	"github.com/mattn/go-isatty"

	"github.com/df07/go-raytracer/pkg/core"
)

// ProgressReporter logs completion percentages at a fixed step
type ProgressReporter struct {
	logger core.Logger
	total  int
	step   int // Percent between reports
	next   int // Next percentage to report
}

// IsTerminal reports whether stdout is an interactive terminal
func IsTerminal() bool {
	fd := os.Stdout.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// NewProgressReporter creates a reporter for total units of work. Interactive
// output reports every percent, piped output every five.
func NewProgressReporter(logger core.Logger, total int, interactive bool) *ProgressReporter {
	step := 5
	if interactive {
		step = 1
	}
	return &ProgressReporter{
		logger: logger,
		total:  total,
		step:   step,
		next:   step,
	}
}

// Update records that done units are finished and logs any crossed steps
func (p *ProgressReporter) Update(done int) {
	if p.total <= 0 {
		return
	}
	percent := done * 100 / p.total
	if percent < p.next {
		return
	}
	p.logger.Printf("Progress: %3d%% (%d/%d pixels)\n", percent, done, p.total)
	p.next = (percent/p.step + 1) * p.step
}
