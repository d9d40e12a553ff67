package speech

import (
	"context"
	"math"
	"strings"

	"github.com/sirupsen/logrus"
)

// Metrics are the speech-timing measurements attached to a graded answer.
// Value type, immutable after Compute.
type Metrics struct {
	Text       string  `json:"text"`
	WPM        float64 `json:"wpm"`
	LongPauses int     `json:"long_pauses"`
	Duration   float64 `json:"duration"`
}

// PauseDetector counts silences longer than the configured threshold in an
// audio file. Acoustic analysis is an external concern; the pipeline only
// needs the count.
type PauseDetector interface {
	CountLongPauses(ctx context.Context, audioPath string) (int, error)
}

// ComputeWPM is words per minute over the whole answer. Zero duration
// yields zero, never a division fault.
func ComputeWPM(text string, durationSeconds float64) float64 {
	if durationSeconds <= 0 {
		return 0
	}
	words := strings.Fields(strings.TrimSpace(text))
	return round1(float64(len(words)) / durationSeconds * 60)
}

// Compute assembles the full metrics record. A pause-detection failure is
// logged and yields zero pauses; it never fails the analysis.
func Compute(ctx context.Context, det PauseDetector, text, audioPath string, durationSeconds float64, log *logrus.Logger) Metrics {
	if log == nil {
		log = logrus.StandardLogger()
	}
	pauses := 0
	if det != nil {
		n, err := det.CountLongPauses(ctx, audioPath)
		if err != nil {
			log.WithFields(logrus.Fields{"audio": audioPath, "error": err}).Warn("pause detection failed, reporting zero pauses")
		} else {
			pauses = n
		}
	}
	return Metrics{
		Text:       strings.TrimSpace(text),
		WPM:        ComputeWPM(text, durationSeconds),
		LongPauses: pauses,
		Duration:   round2(durationSeconds),
	}
}

func round1(v float64) float64 { return math.Round(v*10) / 10 }
func round2(v float64) float64 { return math.Round(v*100) / 100 }
