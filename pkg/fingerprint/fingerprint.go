// Package fingerprint derives a stable per-device identifier for kiosk terminals.
//
// The identifier comes from a Source (host signals by default). When the source fails, a
// random id kept in a Store is used instead, and when the store fails too, a random id that
// lives only as long as the process. GetDeviceFingerprint never fails.
package fingerprint

import (
	"context"
	"encoding/json"
	"fmt"
	"slices"
	"sync"

	"github.com/google/uuid"

	"expofeedback/pkg/logger"
)

const (
	// KeyDeviceID holds the fallback random identifier.
	KeyDeviceID = "device_id"
	// KeySubmitted holds the fingerprint of the last successful submission.
	KeySubmitted = "submitted_fingerprint"
	// KeySubmittedSubjects holds a JSON array of subjects accepted from this device.
	KeySubmittedSubjects = "submitted_subjects"
)

// Source computes a device identifier from host signals.
type Source interface {
	Fingerprint(ctx context.Context) (string, error)
}

// Store is durable client-side storage.
type Store interface {
	Load(key string) (value string, ok bool, err error)
	Save(key, value string) error
}

type Generator struct {
	source Source
	store  Store
	log    logger.Interface

	mu     sync.Mutex
	cached string

	subjectsMu sync.Mutex
}

func NewGenerator(source Source, store Store, log logger.Interface) *Generator {
	return &Generator{source: source, store: store, log: log.Named("fingerprint")}
}

// GetDeviceFingerprint returns the cached identifier, computing it on first use.
func (g *Generator) GetDeviceFingerprint(ctx context.Context) string {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.cached != "" {
		return g.cached
	}

	id, err := g.fromSource(ctx)
	if err != nil || id == "" {
		g.log.Warn("primary fingerprint unavailable, using stored identifier", "error", err)
		id = g.fallback()
	}
	g.cached = id
	return id
}

// Reset drops the cached identifier so the next call recomputes it.
func (g *Generator) Reset() {
	g.mu.Lock()
	g.cached = ""
	g.mu.Unlock()
}

// StoreFingerprint remembers the fingerprint a submission was accepted under. Call it only
// after the server confirmed the submission.
func (g *Generator) StoreFingerprint(id string) {
	if g.store == nil {
		return
	}
	if err := g.store.Save(KeySubmitted, id); err != nil {
		g.log.Warn("failed to persist submitted fingerprint", "error", err)
	}
}

// SubmittedFingerprint returns what StoreFingerprint saved, if anything.
func (g *Generator) SubmittedFingerprint() (string, bool) {
	if g.store == nil {
		return "", false
	}
	id, ok, err := g.store.Load(KeySubmitted)
	if err != nil {
		return "", false
	}
	return id, ok
}

// SubmittedSubjects returns the subjects RememberSubject saved, oldest first.
func (g *Generator) SubmittedSubjects() []string {
	g.subjectsMu.Lock()
	defer g.subjectsMu.Unlock()
	return g.loadSubjects()
}

// RememberSubject adds subject to the persisted submitted set. Call it only after the
// server accepted a submission for it.
func (g *Generator) RememberSubject(subject string) {
	if g.store == nil || subject == "" {
		return
	}
	g.subjectsMu.Lock()
	defer g.subjectsMu.Unlock()

	subjects := g.loadSubjects()
	if slices.Contains(subjects, subject) {
		return
	}
	data, err := json.Marshal(append(subjects, subject))
	if err != nil {
		return
	}
	if err := g.store.Save(KeySubmittedSubjects, string(data)); err != nil {
		g.log.Warn("failed to persist submitted subjects", "error", err)
	}
}

func (g *Generator) loadSubjects() []string {
	if g.store == nil {
		return nil
	}
	raw, ok, err := g.store.Load(KeySubmittedSubjects)
	if err != nil || !ok || raw == "" {
		return nil
	}
	var subjects []string
	if err := json.Unmarshal([]byte(raw), &subjects); err != nil {
		g.log.Warn("submitted subjects unreadable, starting empty", "error", err)
		return nil
	}
	return subjects
}

func (g *Generator) fromSource(ctx context.Context) (id string, err error) {
	if g.source == nil {
		return "", fmt.Errorf("no fingerprint source")
	}
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("fingerprint source panicked: %v", r)
		}
	}()
	return g.source.Fingerprint(ctx)
}

func (g *Generator) fallback() string {
	if g.store == nil {
		return uuid.NewString()
	}

	id, ok, err := g.store.Load(KeyDeviceID)
	if err == nil && ok && id != "" {
		return id
	}

	id = uuid.NewString()
	if err != nil {
		g.log.Warn("fingerprint store unreadable, identifier is session-only", "error", err)
		return id
	}
	if err := g.store.Save(KeyDeviceID, id); err != nil {
		g.log.Warn("fingerprint store unwritable, identifier is session-only", "error", err)
	}
	return id
}
