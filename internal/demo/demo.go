// Package demo is a small reactive application used by the dotrender CLI.
package demo

import (
	"context"
	"fmt"
	"strconv"

	"github.com/dustin/go-humanize"

	"github.com/vango-dev/dotrender/el"
	"github.com/vango-dev/dotrender/pkg/headless"
	"github.com/vango-dev/dotrender/pkg/render"
	"github.com/vango-dev/dotrender/pkg/store"
	"github.com/vango-dev/dotrender/pkg/vdom"
)

// App holds the demo's state.
type App struct {
	Count   *store.Store[int]
	Details *store.Store[bool]
	Items   *store.Store[[]string]
}

// New creates an App with a zero count, hidden details and no items.
func New() *App {
	return &App{
		Count:   store.New(0),
		Details: store.New(false),
		Items:   store.New([]string(nil)),
	}
}

// Increment adds one to the counter.
func (a *App) Increment() {
	a.Count.Update(func(n int) int { return n + 1 })
}

// ToggleDetails shows or hides the details section.
func (a *App) ToggleDetails() {
	a.Details.Update(func(b bool) bool { return !b })
}

// Add appends an item to the list.
func (a *App) Add(item string) {
	a.Items.Update(func(items []string) []string {
		out := make([]string, len(items), len(items)+1)
		copy(out, items)
		return append(out, item)
	})
}

// View builds the application tree.
func (a *App) View() *vdom.Tag {
	count := store.Project[int, string](a.Count, func(n int) string {
		return humanize.Comma(int64(n))
	})
	parity := store.Project[int, string](a.Count, func(n int) string {
		if n%2 == 0 {
			return "even"
		}
		return "odd"
	})

	return el.Div(el.Class("app"),
		el.H1("dotrender demo"),
		el.P("Count: ", count),
		el.Button(el.ClassBind(parity), el.OnClick(a.Increment), "+1"),
		el.Button(el.OnClick(a.ToggleDetails), "details"),
		vdom.When(a.Details,
			vdom.Element(el.Section(el.Class("details"),
				el.P("The counter is ", el.Strong(parity), "."),
			)),
			vdom.Absent(),
		),
		store.Project[[]string, vdom.Child](a.Items, itemList),
	)
}

func itemList(items []string) vdom.Child {
	if len(items) == 0 {
		return vdom.Text("no items")
	}
	lis := make([]*vdom.Tag, len(items))
	for i, item := range items {
		lis[i] = el.Li(item)
	}
	return vdom.Element(el.Ul(lis))
}

// Step is one scripted interaction.
type Step struct {
	Name string
	Do   func(*App)
}

// Script returns the scripted session the demo command plays.
func Script() []Step {
	return []Step{
		{Name: "increment", Do: (*App).Increment},
		{Name: "show details", Do: (*App).ToggleDetails},
		{Name: "increment", Do: (*App).Increment},
		{Name: "add item", Do: func(a *App) { a.Add("first") }},
		{Name: "add item", Do: func(a *App) { a.Add("second") }},
		{Name: "hide details", Do: (*App).ToggleDetails},
	}
}

// Frame is the state of the document after a step.
type Frame struct {
	Step  string
	HTML  string
	Stats render.Stats
}

// Session is a demo app mounted on a headless document.
type Session struct {
	App  *App
	Doc  *headless.Document
	Root *render.Root
}

// Mount renders a new App into a fresh document.
func Mount(ctx context.Context, opts ...render.Option) (*Session, error) {
	app := New()
	doc := headless.NewDocument()
	root, err := render.New(doc, opts...).Mount(ctx, app.View(), doc.Body())
	if err != nil {
		return nil, err
	}
	return &Session{App: app, Doc: doc, Root: root}, nil
}

// Frame captures the current document.
func (s *Session) Frame(step string) Frame {
	return Frame{
		Step:  step,
		HTML:  s.Doc.Body().InnerHTML(),
		Stats: s.Root.Stats(),
	}
}

// Play runs steps and returns the initial frame followed by one frame per
// step.
func (s *Session) Play(steps []Step) []Frame {
	frames := []Frame{s.Frame("mount")}
	for i, step := range steps {
		step.Do(s.App)
		frames = append(frames, s.Frame(strconv.Itoa(i+1)+". "+step.Name))
	}
	return frames
}

// Rows builds a list of n rows that each render src.
func Rows(n int, src store.Readable[int]) *vdom.Tag {
	label := store.Project[int, string](src, strconv.Itoa)
	rows := make([]*vdom.Tag, n)
	for i := range rows {
		rows[i] = el.Li(el.Class(fmt.Sprintf("row-%d", i)), label)
	}
	return el.Ul(rows)
}
