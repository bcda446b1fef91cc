package log

import (
	"os"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// NewDevelopmentConsole returns a Console printing every level to stdout
// in zap's human-readable console format.
func NewDevelopmentConsole() Console {
	consoleCore := zapcore.NewCore(
		zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig()),
		zapcore.Lock(os.Stdout),
		zap.DebugLevel,
	)
	return NewZapConsole(zap.New(consoleCore))
}

var _ Console = &Recorder{}

// Recorder is a Console that keeps every entry in memory. Safe for concurrent use.
type Recorder struct {
	mu      sync.Mutex
	entries []LogPayload
}

// NewRecorder returns an empty Recorder.
func NewRecorder() *Recorder {
	return &Recorder{}
}

func (r *Recorder) Log(payload LogPayload) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, payload)
}

// Entries returns a copy of the recorded entries in arrival order.
func (r *Recorder) Entries() []LogPayload {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]LogPayload, len(r.entries))
	copy(out, r.entries)
	return out
}

// Messages returns the recorded messages in arrival order.
func (r *Recorder) Messages() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, 0, len(r.entries))
	for _, e := range r.entries {
		out = append(out, e.Message)
	}
	return out
}
