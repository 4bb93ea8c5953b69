// Package trace provides an opt-in diagnostic log for prompt
// lifecycles. Nothing is written unless an embedding program enables it
// explicitly, so the library stays silent by default.
package trace

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

const defaultFile = "parley-trace.log"

var (
	mu      sync.Mutex
	enabled bool
	path    = defaultFile
)

// SetEnabled toggles emission of trace entries.
func SetEnabled(on bool) {
	mu.Lock()
	enabled = on
	mu.Unlock()
}

// Configure sets the trace destination. Empty values fall back to the
// default path. Directories are created automatically when missing.
func Configure(p string) {
	mu.Lock()
	defer mu.Unlock()
	if strings.TrimSpace(p) == "" {
		path = defaultFile
		return
	}
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "unable to create trace directory: %v\n", err)
		path = defaultFile
		return
	}
	path = p
}

// Event appends a structured JSON entry to the trace log when enabled.
func Event(event string, payload interface{}) {
	mu.Lock()
	on := enabled
	dst := path
	mu.Unlock()
	if !on {
		return
	}

	entry := struct {
		Time    time.Time   `json:"time"`
		Event   string      `json:"event"`
		Payload interface{} `json:"payload,omitempty"`
	}{
		Time:    time.Now().UTC(),
		Event:   event,
		Payload: payload,
	}

	f, err := os.OpenFile(dst, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "trace logging failed: %v\n", err)
		return
	}
	defer f.Close()

	if err := json.NewEncoder(f).Encode(entry); err != nil {
		fmt.Fprintf(os.Stderr, "trace encoding failed: %v\n", err)
	}
}
