package tilemosaic

import (
	"bufio"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	"github.com/wbrown/tilemosaic/imageutil"
)

// Progress describes a finished iteration.
type Progress struct {
	Iteration int // 1-based within the current RunIterations call
	Of        int // iterations requested by that call
	Total     int // iterations run on the state so far
	Sweep     Sweep
	State     *State
}

// Observer is notified synchronously after every iteration. The next
// iteration does not start until Observe returns; a non-nil error ends the
// run.
type Observer interface {
	Observe(p Progress) error
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(p Progress) error

// Observe calls f(p).
func (f ObserverFunc) Observe(p Progress) error { return f(p) }

// Observers calls each observer in order and stops at the first error.
type Observers []Observer

// Observe implements Observer.
func (obs Observers) Observe(p Progress) error {
	for _, o := range obs {
		if err := o.Observe(p); err != nil {
			return err
		}
	}
	return nil
}

// ScoreLogger logs the score and accepted moves of every iteration.
type ScoreLogger struct {
	Logger *log.Logger
}

// Observe implements Observer.
func (l ScoreLogger) Observe(p Progress) error {
	logger := l.Logger
	if logger == nil {
		logger = log.Default()
	}
	logger.Printf("Iteration %3d/%d: score %.4f (replaced %d, swapped %d)",
		p.Iteration, p.Of, p.Sweep.Score, p.Sweep.Replaced, p.Sweep.Swapped)
	return nil
}

// StepGate pauses after every iteration until a line is read from its
// input. It is the interactive step-through mode.
type StepGate struct {
	out     io.Writer
	scanner *bufio.Scanner
}

// NewStepGate reads acknowledgments from in and writes prompts to out.
func NewStepGate(in io.Reader, out io.Writer) *StepGate {
	return &StepGate{out: out, scanner: bufio.NewScanner(in)}
}

// Observe prints the iteration score and blocks for one line of input.
// It returns ErrObserverClosed when the input is exhausted.
func (g *StepGate) Observe(p Progress) error {
	fmt.Fprintf(g.out, "iteration %d/%d score %.4f - press Enter to continue ",
		p.Iteration, p.Of, p.Sweep.Score)
	if !g.scanner.Scan() {
		if err := g.scanner.Err(); err != nil {
			return fmt.Errorf("%w: %w", ErrObserverClosed, err)
		}
		return ErrObserverClosed
	}
	return nil
}

// FrameWriter saves the mosaic after every iteration as
// Dir/frame-NNNN.png with the iteration and score drawn on it.
type FrameWriter struct {
	Dir      string
	FontSize float64 // points; zero means 12
}

// Observe implements Observer.
func (w FrameWriter) Observe(p Progress) error {
	if err := os.MkdirAll(w.Dir, 0755); err != nil {
		return fmt.Errorf("creating frame directory: %w", err)
	}
	img := p.State.Render().Image()
	label := fmt.Sprintf("iteration %d  score %.2f", p.Total, p.Sweep.Score)
	if err := imageutil.Annotate(img, label, w.FontSize); err != nil {
		return err
	}
	path := filepath.Join(w.Dir, fmt.Sprintf("frame-%04d.png", p.Total))
	if err := imageutil.SaveImage(img, path); err != nil {
		return fmt.Errorf("writing frame %s: %w", path, err)
	}
	return nil
}
