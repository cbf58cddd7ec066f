package render

import (
	mapset "github.com/deckarep/golang-set/v2"
	"github.com/vango-dev/dotrender/pkg/store"
	"github.com/vango-dev/dotrender/pkg/vdom"
)

// Record is the mount record of one child position.
//
// Element and Text records hold the host node they created. Absent records
// hold nothing. Dynamic records hold no node of their own; their only child
// is the record of the current content. Each record exclusively owns its
// handles and child records.
type Record struct {
	kind     vdom.ChildKind
	node     Node
	parent   *Record
	index    int
	handles  mapset.Set[store.Handle]
	children []*Record
	torn     bool
}

func newRecord(kind vdom.ChildKind, parent *Record, index int) *Record {
	return &Record{
		kind:    kind,
		parent:  parent,
		index:   index,
		handles: mapset.NewThreadUnsafeSet[store.Handle](),
	}
}

// Kind reports what the record renders.
func (r *Record) Kind() vdom.ChildKind {
	return r.kind
}

// Node returns the host node this record rendered. Dynamic records return
// the node of their current content; Absent records return nil.
func (r *Record) Node() Node {
	return r.firstNode()
}

// Handles returns the subscriptions owned by this record, not including
// those of its children.
func (r *Record) Handles() []store.Handle {
	return r.handles.ToSlice()
}

// Children returns the child records in sibling order.
func (r *Record) Children() []*Record {
	out := make([]*Record, len(r.children))
	copy(out, r.children)
	return out
}

// Content returns the current content record of a dynamic slot, or nil for
// other kinds.
func (r *Record) Content() *Record {
	if r.kind != vdom.KindDynamic || len(r.children) == 0 {
		return nil
	}
	return r.children[0]
}

// TornDown reports whether Teardown has run.
func (r *Record) TornDown() bool {
	return r.torn
}

// own records h as a subscription of this record.
func (r *Record) own(h store.Handle) {
	r.handles.Add(h)
}

// Teardown unsubscribes every handle the record owns, then tears down its
// children depth-first. It returns the number of handles released. A second
// call does nothing and returns 0.
func (r *Record) Teardown() int {
	if r == nil || r.torn {
		return 0
	}
	r.torn = true

	released := 0
	for _, h := range r.handles.ToSlice() {
		h.Unsubscribe()
		released++
	}
	r.handles.Clear()

	for _, child := range r.children {
		released += child.Teardown()
	}
	return released
}

// firstNode returns the host node currently standing for this record.
func (r *Record) firstNode() Node {
	if r.kind == vdom.KindDynamic {
		if c := r.Content(); c != nil {
			return c.firstNode()
		}
		return nil
	}
	return r.node
}

// hostParent returns the host node the record's content is attached to.
func (r *Record) hostParent() Node {
	p := r.parent
	for p != nil && p.kind == vdom.KindDynamic {
		p = p.parent
	}
	if p == nil {
		return nil
	}
	return p.node
}

// anchor returns the host node that content of this record must be inserted
// before: the first node rendered by a following sibling, looking through
// enclosing dynamic slots. Nil means append.
func (r *Record) anchor() Node {
	p := r.parent
	if p == nil {
		return nil
	}
	if p.kind == vdom.KindDynamic {
		return p.anchor()
	}
	if r.index+1 > len(p.children) {
		return nil
	}
	for _, sib := range p.children[r.index+1:] {
		if n := sib.firstNode(); n != nil {
			return n
		}
	}
	return nil
}

// Stats summarizes a record subtree.
type Stats struct {
	Records  int `json:"records"`  // Records in the subtree, including the root
	Elements int `json:"elements"` // Element records
	Texts    int `json:"texts"`    // Text records
	Absent   int `json:"absent"`   // Absent records
	Dynamic  int `json:"dynamic"`  // Dynamic slots
	Handles  int `json:"handles"`  // Live subscriptions owned by the subtree
}

// Stats walks the subtree rooted at r.
func (r *Record) Stats() Stats {
	var s Stats
	r.collect(&s)
	return s
}

func (r *Record) collect(s *Stats) {
	if r == nil {
		return
	}
	s.Records++
	s.Handles += r.handles.Cardinality()
	switch r.kind {
	case vdom.KindElement:
		s.Elements++
	case vdom.KindText:
		s.Texts++
	case vdom.KindAbsent:
		s.Absent++
	case vdom.KindDynamic:
		s.Dynamic++
	}
	for _, c := range r.children {
		c.collect(s)
	}
}
