package inspect

import (
	"log/slog"
	"net/http"
	"sort"
	"sync"

	"github.com/gorilla/websocket"
	"github.com/oklog/ulid/v2"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/vango-dev/dotrender/internal/errors"
	"github.com/vango-dev/dotrender/pkg/headless"
	"github.com/vango-dev/dotrender/pkg/render"
	"github.com/vango-dev/dotrender/pkg/snapshot"
)

// entry is the cached view of one tracked root.
type entry struct {
	id    ulid.ULID
	name  string
	snap  snapshot.Snapshot
	stats render.Stats
	stop  func()
}

// Option configures an Inspector.
type Option func(*Inspector)

// WithLogger sets the structured logger. Default: slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(in *Inspector) {
		if logger != nil {
			in.logger = logger
		}
	}
}

// WithGatherer serves g on /metrics.
func WithGatherer(g prometheus.Gatherer) Option {
	return func(in *Inspector) {
		in.gatherer = g
	}
}

// WithCheckOrigin sets the websocket origin check. Default: same host only.
func WithCheckOrigin(fn func(*http.Request) bool) Option {
	return func(in *Inspector) {
		in.upgrader.CheckOrigin = fn
	}
}

// Inspector caches snapshots of tracked roots and streams their changes.
type Inspector struct {
	logger   *slog.Logger
	gatherer prometheus.Gatherer
	upgrader websocket.Upgrader

	mu    sync.RWMutex
	roots map[ulid.ULID]*entry
	seq   uint64

	clientsMu sync.Mutex
	clients   map[*websocket.Conn]bool

	// writeMu serializes websocket writes; a conn allows one writer.
	writeMu sync.Mutex
}

// New creates an Inspector.
func New(opts ...Option) *Inspector {
	in := &Inspector{
		logger:  slog.Default(),
		roots:   make(map[ulid.ULID]*entry),
		clients: make(map[*websocket.Conn]bool),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
		},
	}
	for _, opt := range opts {
		opt(in)
	}
	return in
}

// Track starts following root, which must be mounted on doc. The root is
// captured immediately, then once after each update of the tree that
// changed a node under root. Mutations of detached nodes do not count, so
// content built during a patch is never captured half inserted. Call it
// from the goroutine that owns doc.
func (in *Inspector) Track(name string, doc *headless.Document, root *render.Root) ulid.ULID {
	e := &entry{id: ulid.Make(), name: name}
	node, _ := root.Node().(*headless.Node)

	refresh := func() {
		if node == nil || !root.Mounted() {
			return
		}
		snap := snapshot.Capture(node)
		stats := root.Stats()
		if f, ok := in.store(e, snap, stats); ok {
			in.broadcast(f)
		}
	}
	refresh()

	in.mu.Lock()
	in.roots[e.id] = e
	in.mu.Unlock()

	dirty := false
	stopObserve := doc.Observe(func(m headless.Mutation) {
		if node != nil && node.Contains(m.Target) {
			dirty = true
		}
	})
	stopSettle := root.OnSettle(func() {
		if dirty {
			dirty = false
			refresh()
		}
	})
	e.stop = func() {
		stopObserve()
		stopSettle()
	}
	in.logger.Debug("inspect: tracking root", "id", e.id.String(), "name", name)
	return e.id
}

// Untrack stops following id and tells clients it is gone.
func (in *Inspector) Untrack(id ulid.ULID) error {
	in.mu.Lock()
	e, ok := in.roots[id]
	if ok {
		delete(in.roots, id)
		in.seq++
	}
	seq := in.seq
	in.mu.Unlock()

	if !ok {
		return errors.New("I002").WithDetailf("root %s", id)
	}
	e.stop()
	in.broadcast(Frame{Seq: seq, Root: id.String(), Name: e.name, Removed: true})
	return nil
}

// store updates the cache. It reports false when the HTML is unchanged.
func (in *Inspector) store(e *entry, snap snapshot.Snapshot, stats render.Stats) (Frame, bool) {
	in.mu.Lock()
	defer in.mu.Unlock()

	if e.snap.Same(snap) && e.stats == stats {
		return Frame{}, false
	}
	e.snap = snap
	e.stats = stats
	in.seq++
	return e.frame(in.seq), true
}

func (e *entry) frame(seq uint64) Frame {
	f := Frame{
		Seq:  seq,
		Root: e.id.String(),
		Name: e.name,
		Hash: e.snap.Hash,
		HTML: e.snap.HTML,
	}
	statsFrame(&f, e.stats)
	return f
}

// Snapshot returns the cached snapshot of id.
func (in *Inspector) Snapshot(id ulid.ULID) (snapshot.Snapshot, bool) {
	in.mu.RLock()
	defer in.mu.RUnlock()
	e, ok := in.roots[id]
	if !ok {
		return snapshot.Snapshot{}, false
	}
	return e.snap, true
}

// Roots returns the tracked ids in tracking order.
func (in *Inspector) Roots() []ulid.ULID {
	in.mu.RLock()
	ids := make([]ulid.ULID, 0, len(in.roots))
	for id := range in.roots {
		ids = append(ids, id)
	}
	in.mu.RUnlock()

	sort.Slice(ids, func(i, j int) bool { return ids[i].Compare(ids[j]) < 0 })
	return ids
}

// frames returns the current frame of every root, in tracking order.
func (in *Inspector) frames() []Frame {
	ids := in.Roots()

	in.mu.RLock()
	defer in.mu.RUnlock()
	out := make([]Frame, 0, len(ids))
	for _, id := range ids {
		if e, ok := in.roots[id]; ok {
			out = append(out, e.frame(in.seq))
		}
	}
	return out
}

// Close stops tracking every root and disconnects all clients.
func (in *Inspector) Close() {
	in.mu.Lock()
	for id, e := range in.roots {
		e.stop()
		delete(in.roots, id)
	}
	in.mu.Unlock()

	in.clientsMu.Lock()
	defer in.clientsMu.Unlock()
	for c := range in.clients {
		c.Close()
		delete(in.clients, c)
	}
}
