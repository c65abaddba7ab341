package http

import (
	"encoding/json"
	"log/slog"
	"strings"
	"sync"

	"github.com/aretw0/thermoprops/pkg/domain"
)

// StreamManager fans workspace diffs out to SSE subscribers.
type StreamManager struct {
	mu          sync.RWMutex
	logger      *slog.Logger
	subscribers map[string]map[chan<- string]struct{} // workspace id -> channels
}

func NewStreamManager(logger *slog.Logger) *StreamManager {
	return &StreamManager{
		logger:      logger,
		subscribers: make(map[string]map[chan<- string]struct{}),
	}
}

// Subscribe registers a buffered channel for id. The returned func unsubscribes
// and closes the channel.
func (sm *StreamManager) Subscribe(id string) (chan string, func()) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	ch := make(chan string, 10)
	if _, ok := sm.subscribers[id]; !ok {
		sm.subscribers[id] = make(map[chan<- string]struct{})
	}
	sm.subscribers[id][ch] = struct{}{}

	return ch, func() {
		sm.mu.Lock()
		defer sm.mu.Unlock()
		if subs, ok := sm.subscribers[id]; ok {
			delete(subs, ch)
			close(ch)
			if len(subs) == 0 {
				delete(sm.subscribers, id)
			}
		}
	}
}

// Broadcast sends msg to every subscriber of id. Slow clients drop messages.
func (sm *StreamManager) Broadcast(id string, msg string) {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	for ch := range sm.subscribers[id] {
		select {
		case ch <- msg:
		default:
			sm.logger.Warn("SSE: Client buffer full, dropping message", "workspace_id", id)
		}
	}
}

// Publish serializes a diff and broadcasts it. Empty diffs are dropped.
func (sm *StreamManager) Publish(diff *domain.WorkspaceDiff) {
	if diff == nil || diff.IsEmpty() {
		return
	}
	b, err := json.Marshal(diff)
	if err != nil {
		sm.logger.Error("SSE: Diff encode failed", "err", err)
		return
	}
	sm.Broadcast(diff.WorkspaceID, string(b))
}

// matchesWatch reports whether the diff touches one of the watched groups
// (settings, view, states). An empty list matches everything.
func matchesWatch(msg string, watch []string) bool {
	if len(watch) == 0 {
		return true
	}
	var diff domain.WorkspaceDiff
	if err := json.Unmarshal([]byte(msg), &diff); err != nil {
		return true
	}
	for _, field := range watch {
		switch strings.TrimSpace(field) {
		case "settings":
			if diff.Fluid != nil || diff.Units != nil {
				return true
			}
		case "view":
			if diff.View != nil || diff.Plot != nil || diff.Isoline != nil {
				return true
			}
		case "states":
			if diff.States != nil {
				return true
			}
		}
	}
	return false
}
