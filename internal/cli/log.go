package cli

import (
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// newLogger creates a logger writing to w at level, with "HH:MM:SS.ms"
// timestamps.
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// timer logs how long a step took. It is meant for sequential use by one
// goroutine.
type timer struct {
	logger *log.Logger
	start  time.Time
}

func newTimer(l *log.Logger) *timer {
	return &timer{logger: l, start: time.Now()}
}

// done logs msg with the elapsed time rounded to the millisecond, for
// example "Laid out 212 quests (14ms)".
func (t *timer) done(msg string, keyvals ...any) {
	t.logger.Info(msg+" ("+t.elapsed().String()+")", keyvals...)
}

func (t *timer) elapsed() time.Duration {
	return time.Since(t.start).Round(time.Millisecond)
}
