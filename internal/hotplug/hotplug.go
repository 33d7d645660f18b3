// Package hotplug implements the hot-plug monitor: multi-listener
// fan-out of device add/remove transitions, backed by a pluggable
// Discoverer. The first subscription starts the background worker and
// the last unsubscription stops it.
package hotplug

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/libimobiledevice/libirecovery/internal/identity"
	"github.com/libimobiledevice/libirecovery/internal/modes"
)

// EventKind distinguishes an arrival from a departure.
type EventKind int

const (
	EventAdd EventKind = iota
	EventRemove
)

func (k EventKind) String() string {
	if k == EventAdd {
		return "add"
	}
	return "remove"
}

// Event is delivered to every registered listener. For EventRemove,
// Mode and Info carry the values last observed for Location, not
// zero — an earlier version of this library delivered mode 0 on
// removal, which made it impossible for a listener to tell what had
// just disconnected.
type Event struct {
	Kind     EventKind
	Location string
	Mode     modes.Mode
	Info     identity.Info
}

// Presence is one USB location a Discoverer sweep found, not yet
// opened.
type Presence struct {
	Location string
	Mode     modes.Mode
	Open     func() (identity.Info, error)
}

// Discoverer enumerates currently attached candidate devices. Errors
// from Enumerate are not fatal: that sweep is skipped and the tracked
// devices are left as they were, so a transient enumeration failure
// neither tears down the monitor nor reports removals.
type Discoverer interface {
	Enumerate() ([]Presence, error)
}

// Listener is an opaque subscription handle returned by Subscribe.
type Listener struct {
	id       uint64
	callback func(Event)
}

type trackedDevice struct {
	location string
	mode     modes.Mode
	info     identity.Info
	alive    bool
}

// Monitor is the library-global hot-plug state: a listener set, a
// device set, and (while subscribed) one background worker. The two
// sets are guarded by independent mutexes that are never held
// simultaneously.
type Monitor struct {
	discoverer   Discoverer
	pollInterval time.Duration

	listenerMu sync.Mutex
	listeners  []*Listener
	nextID     uint64

	deviceMu sync.Mutex
	devices  map[string]*trackedDevice

	cancel context.CancelFunc
	group  *errgroup.Group

	retryAttempts int
	retryBackoff  time.Duration
	sleep         func(time.Duration)
}

// New creates a Monitor over discoverer, sweeping at pollInterval.
func New(discoverer Discoverer, pollInterval time.Duration) *Monitor {
	return &Monitor{
		discoverer:    discoverer,
		pollInterval:  pollInterval,
		devices:       make(map[string]*trackedDevice),
		retryAttempts: 10,
		retryBackoff:  500 * time.Millisecond,
		sleep:         time.Sleep,
	}
}

// Subscribe registers cb and, if this is the first listener, starts
// the background worker.
func (m *Monitor) Subscribe(cb func(Event)) *Listener {
	m.listenerMu.Lock()
	m.nextID++
	l := &Listener{id: m.nextID, callback: cb}
	wasEmpty := len(m.listeners) == 0
	m.listeners = append(m.listeners, l)
	m.listenerMu.Unlock()

	if wasEmpty {
		m.start()
	}
	return l
}

// Unsubscribe removes l. If it was the last listener, the worker is
// stopped and all tracked devices are freed. Unsubscribing an unknown
// or already-removed listener is a no-op.
func (m *Monitor) Unsubscribe(l *Listener) {
	m.listenerMu.Lock()
	nowEmpty := false
	for i, cur := range m.listeners {
		if cur == l {
			m.listeners = append(m.listeners[:i], m.listeners[i+1:]...)
			break
		}
	}
	nowEmpty = len(m.listeners) == 0
	m.listenerMu.Unlock()

	if nowEmpty {
		m.stop()
	}
}

func (m *Monitor) start() {
	ctx, cancel := context.WithCancel(context.Background())
	g, gctx := errgroup.WithContext(ctx)
	m.cancel = cancel
	m.group = g
	g.Go(func() error {
		return m.pollLoop(gctx)
	})
}

func (m *Monitor) stop() {
	if m.cancel == nil {
		return
	}
	m.cancel()
	m.group.Wait()
	m.cancel = nil
	m.group = nil

	m.deviceMu.Lock()
	m.devices = make(map[string]*trackedDevice)
	m.deviceMu.Unlock()
}

func (m *Monitor) pollLoop(ctx context.Context) error {
	ticker := time.NewTicker(m.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			m.sweep()
		}
	}
}

func (m *Monitor) sweep() {
	presences, err := m.discoverer.Enumerate()
	if err != nil {
		return
	}

	m.deviceMu.Lock()
	for _, d := range m.devices {
		d.alive = false
	}
	m.deviceMu.Unlock()

	for _, p := range presences {
		m.deviceMu.Lock()
		existing, known := m.devices[p.Location]
		if known {
			existing.alive = true
		}
		m.deviceMu.Unlock()

		if !known {
			m.handleAdd(p)
		}
	}

	m.deviceMu.Lock()
	var removed []*trackedDevice
	for loc, d := range m.devices {
		if !d.alive {
			removed = append(removed, d)
			delete(m.devices, loc)
		}
	}
	m.deviceMu.Unlock()

	for _, d := range removed {
		m.handleRemove(d)
	}
}

// handleAdd opens the presence just long enough to read its identity,
// retrying up to retryAttempts times with retryBackoff between tries
// (the device may still be enumerating on the bus). On success the
// device is stored and an EventAdd fans out to every listener.
func (m *Monitor) handleAdd(p Presence) {
	var info identity.Info
	var err error

	for attempt := 0; attempt < m.retryAttempts; attempt++ {
		info, err = p.Open()
		if err == nil {
			break
		}
		m.sleep(m.retryBackoff)
	}
	if err != nil {
		return
	}

	dev := &trackedDevice{location: p.Location, mode: p.Mode, info: info, alive: true}

	m.deviceMu.Lock()
	m.devices[p.Location] = dev
	m.deviceMu.Unlock()

	m.publish(Event{Kind: EventAdd, Location: p.Location, Mode: p.Mode, Info: info})
}

// handleRemove fans out an EventRemove carrying the mode and identity
// last observed for dev.
func (m *Monitor) handleRemove(dev *trackedDevice) {
	m.publish(Event{Kind: EventRemove, Location: dev.location, Mode: dev.mode, Info: dev.info})
}

func (m *Monitor) publish(ev Event) {
	m.listenerMu.Lock()
	defer m.listenerMu.Unlock()
	for _, l := range m.listeners {
		l.callback(ev)
	}
}

// Running reports whether the background worker is currently active
// (equivalently, whether any listener is subscribed).
func (m *Monitor) Running() bool {
	m.listenerMu.Lock()
	defer m.listenerMu.Unlock()
	return len(m.listeners) > 0
}
