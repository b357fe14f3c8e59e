// Package logbuf keeps a bounded in-memory tail of log entries for the
// control panel while still writing everything through the standard
// logger.
package logbuf

import (
	"fmt"
	"log"
	"sync"
	"time"
)

// maxEntries is how many entries the recorder retains; older ones are
// dropped.
const maxEntries = 50

// Entry is one recorded log line.
type Entry struct {
	Timestamp time.Time `json:"timestamp"`
	Message   string    `json:"message"`
	Type      string    `json:"type"` // "info" | "success" | "error"
}

// Recorder is safe for concurrent use.
type Recorder struct {
	mu      sync.Mutex
	entries []Entry
}

func New() *Recorder {
	return &Recorder{}
}

// Infof records and logs an informational line.
func (r *Recorder) Infof(format string, args ...interface{}) {
	r.append("info", fmt.Sprintf(format, args...))
}

// Successf records and logs a success line.
func (r *Recorder) Successf(format string, args ...interface{}) {
	r.append("success", fmt.Sprintf(format, args...))
}

// Errorf records and logs an error line.
func (r *Recorder) Errorf(format string, args ...interface{}) {
	r.append("error", fmt.Sprintf(format, args...))
}

func (r *Recorder) append(kind, msg string) {
	log.Print(msg)
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, Entry{Timestamp: time.Now(), Message: msg, Type: kind})
	if len(r.entries) > maxEntries {
		r.entries = r.entries[len(r.entries)-maxEntries:]
	}
}

// Entries returns a copy of the retained tail, oldest first.
func (r *Recorder) Entries() []Entry {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Entry, len(r.entries))
	copy(out, r.entries)
	return out
}
