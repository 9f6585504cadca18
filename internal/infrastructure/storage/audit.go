package storage

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
)

// AuditEvent is one review lifecycle record in the JSONL audit log.
type AuditEvent struct {
	ID        string         `json:"id"`
	Action    string         `json:"action"`
	Timestamp time.Time      `json:"timestamp"`
	Metadata  map[string]any `json:"metadata,omitempty"`
}

// AuditLog appends review events to <root>/.specforge/audit.jsonl. The
// directory is created on first write so a read-only inspection never
// touches the filesystem.
type AuditLog struct {
	mu   sync.Mutex
	dir  string
	path string
}

// NewAuditLog creates an audit log under the project root.
func NewAuditLog(root string) *AuditLog {
	dir := filepath.Join(root, ".specforge")
	return &AuditLog{dir: dir, path: filepath.Join(dir, "audit.jsonl")}
}

// Log appends one event. Event IDs are fresh UUIDs.
func (l *AuditLog) Log(action string, metadata map[string]any) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if err := os.MkdirAll(l.dir, 0750); err != nil {
		return fmt.Errorf("create audit directory: %w", err)
	}

	event := AuditEvent{
		ID:        uuid.New().String(),
		Action:    action,
		Timestamp: time.Now().UTC(),
		Metadata:  metadata,
	}

	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal audit event: %w", err)
	}

	f, err := os.OpenFile(l.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0600)
	if err != nil {
		return fmt.Errorf("open audit log: %w", err)
	}
	defer f.Close() //nolint:errcheck // best-effort close after explicit flush

	w := bufio.NewWriter(f)
	if _, err := w.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("write audit event: %w", err)
	}
	return w.Flush()
}

// Recent returns up to limit events, newest last.
func (l *AuditLog) Recent(limit int) ([]AuditEvent, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	f, err := os.Open(l.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("open audit log: %w", err)
	}
	defer f.Close() //nolint:errcheck // read path

	var events []AuditEvent
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		var ev AuditEvent
		if err := json.Unmarshal(scanner.Bytes(), &ev); err != nil {
			continue // skip corrupt lines
		}
		events = append(events, ev)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan audit log: %w", err)
	}

	if limit > 0 && len(events) > limit {
		events = events[len(events)-limit:]
	}
	return events, nil
}
