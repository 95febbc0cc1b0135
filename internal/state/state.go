// Package state provides thread-safe state management for the almanac browser.
package state

import (
	"slices"
	"sync"
	"time"

	"github.com/litescript/ls-almanac/internal/astro"
	"github.com/litescript/ls-almanac/internal/ephem"
	"github.com/litescript/ls-almanac/internal/report"
)

// EventType represents the type of state change event.
type EventType string

const (
	// EventPassed marks an almanac entry whose time went by between two
	// refreshes.
	EventPassed EventType = "PASSED"
	// EventRecomputeFailed marks a refresh that returned an error.
	EventRecomputeFailed EventType = "RECOMPUTE_FAILED"
)

// Event represents a change noticed while refreshing the almanac.
type Event struct {
	Type      EventType     `json:"type"`
	Timestamp time.Time     `json:"timestamp"`
	Record    report.Record `json:"record"`
	Message   string        `json:"message,omitempty"`
}

// SkyObject is a body's place in the observer's sky.
type SkyObject struct {
	Body    ephem.Body
	Horizon astro.HorizontalCoords
}

// Almanac is one computed view of the sky for an observer.
type Almanac struct {
	Observer  astro.Observer
	At        time.Time       // instant the almanac was computed for
	MoonPhase float64         // degrees
	Upcoming  []report.Record // sorted by time
	Sky       []SkyObject
}

// Manager handles all shared application state with thread-safe access.
type Manager struct {
	mu sync.RWMutex

	// Current state
	current         *Almanac
	lastCompute     time.Time
	lastError       error
	computeDuration time.Duration

	// Event log (ring buffer)
	events       []Event
	maxEvents    int
	eventWriteAt int

	refreshInterval time.Duration
	now             func() time.Time
}

// Config holds configuration for the state manager.
type Config struct {
	MaxEvents       int
	RefreshInterval time.Duration
}

// DefaultConfig returns sensible default configuration.
func DefaultConfig() Config {
	return Config{
		MaxEvents:       50,
		RefreshInterval: time.Minute,
	}
}

// NewManager creates a new state manager.
func NewManager(cfg Config) *Manager {
	maxEvents := cfg.MaxEvents
	if maxEvents <= 0 {
		maxEvents = 50
	}
	return &Manager{
		maxEvents:       maxEvents,
		events:          make([]Event, 0, maxEvents),
		refreshInterval: cfg.RefreshInterval,
		now:             time.Now,
	}
}

// Update atomically replaces the almanac. A nil data with an error keeps
// the previous almanac and records the failure.
func (m *Manager) Update(data *Almanac, computeDuration time.Duration, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.lastCompute = m.now()
	m.lastError = err
	m.computeDuration = computeDuration

	if err != nil {
		m.addEvent(Event{Type: EventRecomputeFailed, Timestamp: m.lastCompute, Message: err.Error()})
	}
	if data == nil {
		return
	}

	m.detectEvents(data)
	m.current = data
}

// detectEvents logs the entries of the previous almanac that fell due
// before the new one was computed.
func (m *Manager) detectEvents(next *Almanac) {
	if m.current == nil || !next.At.After(m.current.At) {
		return
	}
	for _, rec := range m.current.Upcoming {
		if rec.Time.After(m.current.At) && !rec.Time.After(next.At) {
			m.addEvent(Event{Type: EventPassed, Timestamp: rec.Time, Record: rec})
		}
	}
}

// addEvent adds an event to the ring buffer.
func (m *Manager) addEvent(e Event) {
	if len(m.events) < m.maxEvents {
		m.events = append(m.events, e)
	} else {
		m.events[m.eventWriteAt] = e
		m.eventWriteAt = (m.eventWriteAt + 1) % m.maxEvents
	}
}

// Snapshot represents an immutable snapshot of current state.
type Snapshot struct {
	Data            *Almanac
	LastCompute     time.Time
	LastError       error
	ComputeDuration time.Duration
	Events          []Event
}

// Snapshot returns a consistent snapshot of current state.
func (m *Manager) Snapshot() Snapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return Snapshot{
		Data:            m.current,
		LastCompute:     m.lastCompute,
		LastError:       m.lastError,
		ComputeDuration: m.computeDuration,
		Events:          m.getEventsOrdered(),
	}
}

// Next returns up to n upcoming entries after t.
func (s Snapshot) Next(t time.Time, n int) []report.Record {
	if s.Data == nil || n <= 0 {
		return nil
	}
	i, _ := slices.BinarySearchFunc(s.Data.Upcoming, t, func(r report.Record, t time.Time) int {
		if r.Time.After(t) {
			return 1
		}
		return -1
	})
	end := min(i+n, len(s.Data.Upcoming))
	return s.Data.Upcoming[i:end]
}

// getEventsOrdered returns events in the order they were logged.
func (m *Manager) getEventsOrdered() []Event {
	if len(m.events) == 0 {
		return nil
	}

	// If buffer isn't full yet, just copy
	if len(m.events) < m.maxEvents {
		result := make([]Event, len(m.events))
		copy(result, m.events)
		return result
	}

	// Ring buffer is full, reorder from oldest to newest
	result := make([]Event, m.maxEvents)
	for i := 0; i < m.maxEvents; i++ {
		idx := (m.eventWriteAt + i) % m.maxEvents
		result[i] = m.events[idx]
	}
	return result
}

// RecentEvents returns the last n events.
func (m *Manager) RecentEvents(n int) []Event {
	m.mu.RLock()
	defer m.mu.RUnlock()

	all := m.getEventsOrdered()
	if len(all) <= n {
		return all
	}
	return all[len(all)-n:]
}

// RefreshInterval returns the configured refresh interval.
func (m *Manager) RefreshInterval() time.Duration {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.refreshInterval
}

// SetRefreshInterval updates the refresh interval.
func (m *Manager) SetRefreshInterval(d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.refreshInterval = d
}

// HasData returns true once an almanac has been computed.
func (m *Manager) HasData() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.current != nil
}
