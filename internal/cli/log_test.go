package cli

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
)

func TestNewLoggerLevels(t *testing.T) {
	tests := []struct {
		name    string
		level   log.Level
		logFunc func(*log.Logger)
		wantLog bool
	}{
		{"info at info level", log.InfoLevel, func(l *log.Logger) { l.Info("test") }, true},
		{"debug at info level", log.InfoLevel, func(l *log.Logger) { l.Debug("test") }, false},
		{"debug at debug level", log.DebugLevel, func(l *log.Logger) { l.Debug("test") }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			tt.logFunc(newLogger(&buf, tt.level))

			if got := buf.Len() > 0; got != tt.wantLog {
				t.Errorf("got log output = %v, want %v", got, tt.wantLog)
			}
		})
	}
}

func TestTimer(t *testing.T) {
	var buf bytes.Buffer
	tm := newTimer(newLogger(&buf, log.InfoLevel))
	time.Sleep(5 * time.Millisecond)
	tm.done("Laid out quests", "columns", 3)

	got := buf.String()
	if !strings.Contains(got, "Laid out quests (") {
		t.Errorf("output %q should contain message with elapsed time", got)
	}
	if !strings.Contains(got, "columns=3") {
		t.Errorf("output %q should contain key-values", got)
	}
	if tm.elapsed() < 5*time.Millisecond {
		t.Errorf("elapsed = %v, want >= 5ms", tm.elapsed())
	}
}

func TestSetLogLevel(t *testing.T) {
	var buf bytes.Buffer
	c := New(&buf, LogInfo)
	c.Logger.Debug("hidden")
	c.SetLogLevel(LogDebug)
	c.Logger.Debug("shown")

	if strings.Contains(buf.String(), "hidden") {
		t.Error("debug message logged at info level")
	}
	if !strings.Contains(buf.String(), "shown") {
		t.Error("debug message missing after SetLogLevel")
	}
}
