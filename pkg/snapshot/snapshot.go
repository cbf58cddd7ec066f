package snapshot

import (
	"context"
	"fmt"
	"time"

	"github.com/cespare/xxhash/v2"

	"github.com/vango-dev/dotrender/internal/errors"
	"github.com/vango-dev/dotrender/pkg/headless"
)

// Snapshot is the serialized HTML of a node at one point in time.
type Snapshot struct {
	HTML    string
	Hash    uint64
	TakenAt time.Time
}

// Capture serializes n and its descendants.
func Capture(n *headless.Node) Snapshot {
	return FromHTML(n.OuterHTML())
}

// CaptureInner serializes the children of n, leaving out n itself.
func CaptureInner(n *headless.Node) Snapshot {
	return FromHTML(n.InnerHTML())
}

// FromHTML wraps already serialized HTML.
func FromHTML(html string) Snapshot {
	return Snapshot{
		HTML:    html,
		Hash:    xxhash.Sum64String(html),
		TakenAt: time.Now(),
	}
}

// ETag returns the fingerprint as a quoted HTTP entity tag.
func (s Snapshot) ETag() string {
	return fmt.Sprintf(`"%016x"`, s.Hash)
}

// Same reports whether s and other hold the same HTML.
func (s Snapshot) Same(other Snapshot) bool {
	return s.Hash == other.Hash && s.HTML == other.HTML
}

// Size returns the HTML length in bytes.
func (s Snapshot) Size() int {
	return len(s.HTML)
}

// Save stores the snapshot in sink as name + ".html".
func (s Snapshot) Save(ctx context.Context, sink Sink, name string) error {
	if err := sink.Put(ctx, name+".html", []byte(s.HTML)); err != nil {
		return errors.FromError(err, "S001").WithOp("Save")
	}
	return nil
}
