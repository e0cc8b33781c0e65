package monitor

import (
	"log"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/fragmede/threadscity/internal/ui/messages"
)

// Source reports the current number of unread notifications.
type Source interface {
	UnreadCount() int
}

// Monitor polls for unread notifications while a user is signed in and
// sends an UnreadCountMsg whenever the count changes.
type Monitor struct {
	source   Source
	interval time.Duration

	mu     sync.Mutex
	stopCh chan struct{}
	last   int
}

// New creates a new background monitor.
func New(source Source, interval time.Duration) *Monitor {
	return &Monitor{source: source, interval: interval, last: -1}
}

// Start begins the background polling loop. It polls once immediately.
// Calling Start while running does nothing.
func (m *Monitor) Start(send func(tea.Msg)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.stopCh != nil || m.interval <= 0 {
		return
	}
	m.stopCh = make(chan struct{})
	m.last = -1
	go m.loop(send, m.stopCh)
}

// Stop halts the background polling.
func (m *Monitor) Stop() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.stopCh == nil {
		return
	}
	close(m.stopCh)
	m.stopCh = nil
}

// Running reports whether the polling loop is active.
func (m *Monitor) Running() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.stopCh != nil
}

func (m *Monitor) loop(send func(tea.Msg), stopCh chan struct{}) {
	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	m.poll(send, stopCh)
	for {
		select {
		case <-stopCh:
			return
		case <-ticker.C:
			m.poll(send, stopCh)
		}
	}
}

func (m *Monitor) poll(send func(tea.Msg), stopCh chan struct{}) {
	count := m.source.UnreadCount()

	m.mu.Lock()
	if m.stopCh != stopCh || count == m.last {
		m.mu.Unlock()
		return
	}
	m.last = count
	m.mu.Unlock()

	log.Printf("monitor: %d unread notifications", count)
	send(messages.UnreadCountMsg{Count: count})
}
