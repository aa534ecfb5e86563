package transfer

import (
	"encoding/json"
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
)

// Metrics is the loss breakdown at one optimization step. Content and
// Style are the raw loss terms before their weights are applied.
type Metrics struct {
	Step    int     `json:"step"`
	Content float32 `json:"content_loss"`
	Style   float32 `json:"style_loss"`
	Total   float32 `json:"total_loss"`
}

// Reporter receives progress from the optimization loop at every
// reporting interval. Reporters only observe the run; the loop never
// reads anything back from them.
type Reporter interface {
	// Report receives the loss breakdown for one step.
	Report(m Metrics)

	// Snapshot receives the denormalized target image for one step.
	Snapshot(step int, img image.Image)
}

// LogReporter writes progress to a structured logger. Scalars go to
// Info, snapshots to Debug with only their dimensions.
type LogReporter struct {
	logger *logrus.Logger
}

// NewLogReporter creates a reporter writing to logger.
func NewLogReporter(logger *logrus.Logger) *LogReporter {
	return &LogReporter{logger: logger}
}

// Report logs the loss breakdown for one step.
func (r *LogReporter) Report(m Metrics) {
	r.logger.WithFields(logrus.Fields{
		"step":         m.Step,
		"content_loss": m.Content,
		"style_loss":   m.Style,
		"total_loss":   m.Total,
	}).Info("optimization progress")
}

// Snapshot logs that a snapshot was rendered.
func (r *LogReporter) Snapshot(step int, img image.Image) {
	bounds := img.Bounds()
	r.logger.WithFields(logrus.Fields{
		"step":   step,
		"width":  bounds.Dx(),
		"height": bounds.Dy(),
	}).Debug("rendered target snapshot")
}

// HistoryWriter streams metrics as JSON Lines, one object per report.
// Snapshots are ignored. Write errors are sticky; check Err after the
// run.
type HistoryWriter struct {
	enc *json.Encoder
	err error
}

// NewHistoryWriter creates a writer streaming to w.
func NewHistoryWriter(w io.Writer) *HistoryWriter {
	return &HistoryWriter{enc: json.NewEncoder(w)}
}

// Report appends one JSON line.
func (h *HistoryWriter) Report(m Metrics) {
	if h.err != nil {
		return
	}
	h.err = h.enc.Encode(m)
}

// Snapshot is a no-op.
func (h *HistoryWriter) Snapshot(int, image.Image) {}

// Err returns the first write error, if any.
func (h *HistoryWriter) Err() error {
	return h.err
}

// SnapshotWriter saves reported snapshots as numbered PNG files in a
// directory. Scalar reports are ignored. Write errors are sticky;
// check Err after the run.
type SnapshotWriter struct {
	dir string
	err error
}

// NewSnapshotWriter creates a writer saving into dir, which must exist.
func NewSnapshotWriter(dir string) *SnapshotWriter {
	return &SnapshotWriter{dir: dir}
}

// Report is a no-op.
func (s *SnapshotWriter) Report(Metrics) {}

// Snapshot writes the image to dir as step_NNNNN.png.
func (s *SnapshotWriter) Snapshot(step int, img image.Image) {
	if s.err != nil {
		return
	}
	path := filepath.Join(s.dir, fmt.Sprintf("step_%05d.png", step))
	file, err := os.Create(path)
	if err != nil {
		s.err = fmt.Errorf("failed to create snapshot file: %w", err)
		return
	}
	if err := png.Encode(file, img); err != nil {
		file.Close()
		s.err = fmt.Errorf("failed to encode snapshot: %w", err)
		return
	}
	s.err = file.Close()
}

// Err returns the first write error, if any.
func (s *SnapshotWriter) Err() error {
	return s.err
}
