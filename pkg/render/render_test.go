package render_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vango-dev/dotrender/el"
	"github.com/vango-dev/dotrender/pkg/headless"
	"github.com/vango-dev/dotrender/pkg/render"
	"github.com/vango-dev/dotrender/pkg/store"
	"github.com/vango-dev/dotrender/pkg/vdom"
)

// mount renders tag into a fresh container and returns the root element.
func mount(t *testing.T, tag *vdom.Tag, opts ...render.Option) (*headless.Node, *render.Root) {
	t.Helper()
	doc := headless.NewDocument()
	container, err := doc.CreateElement("div")
	require.NoError(t, err)

	root, err := render.Render(doc, tag, container, opts...)
	require.NoError(t, err)
	return root.Node().(*headless.Node), root
}

func showDivOrSpan(show store.Readable[bool]) store.Readable[*vdom.Tag] {
	return store.Project(show, func(b bool) *vdom.Tag {
		if b {
			return el.Div()
		}
		return el.Span()
	})
}

func showDivOrNil(show store.Readable[bool]) store.Readable[*vdom.Tag] {
	return store.Project(show, func(b bool) *vdom.Tag {
		if b {
			return el.Div()
		}
		return nil
	})
}

func TestRenderClassAndStyle(t *testing.T) {
	target, _ := mount(t, el.Div(el.Class("hello"), el.Style("height", "100px")))

	assert.Equal(t, "hello", target.ClassName())
	assert.Equal(t, "100px", target.Style("height"))
}

func TestRenderTextChild(t *testing.T) {
	target, _ := mount(t, el.Div("TextNode"))

	assert.Equal(t, "TextNode", target.InnerHTML())
}

func TestRenderTwoChildren(t *testing.T) {
	target, _ := mount(t, el.Div(el.Class("root"),
		el.Div("First"),
		el.Div("Second"),
	))

	assert.Len(t, target.Children(), 2)
	assert.Equal(t, `<div class="root"><div>First</div><div>Second</div></div>`, target.OuterHTML())
}

func TestStyleFromStore(t *testing.T) {
	height := store.New("100px")
	target, _ := mount(t, el.Div(el.StyleBind("height", height)))

	assert.Equal(t, "100px", target.Style("height"))
	assert.Equal(t, 1, height.SubscriberCount())
}

func TestStyleFollowsStore(t *testing.T) {
	height := store.New("100px")
	target, root := mount(t, el.Div(el.StyleBind("height", height)))

	height.Set("200px")

	assert.Equal(t, "200px", target.Style("height"))
	assert.Same(t, target, root.Node(), "attribute updates keep the node")
}

func TestClassAndBoolFollowStore(t *testing.T) {
	class := store.New("a")
	hidden := store.New(false)
	target, _ := mount(t, el.Div(el.ClassBind(class), el.BoolBind("hidden", hidden)))

	assert.Equal(t, "a", target.ClassName())
	assert.False(t, target.Hidden())

	class.Set("b")
	hidden.Set(true)

	assert.Equal(t, "b", target.ClassName())
	assert.True(t, target.Hidden())
}

func TestHiddenAttribute(t *testing.T) {
	target, _ := mount(t, el.Div(el.Hidden(true)))

	assert.True(t, target.Hidden())
}

func TestClickChangesHeight(t *testing.T) {
	height := store.New("100px")
	target, _ := mount(t, el.Div(
		el.StyleBind("height", height),
		el.OnClick(func() { height.Set("200px") }),
	))

	assert.Equal(t, "100px", target.Style("height"))
	target.Click()
	assert.Equal(t, "200px", target.Style("height"))
}

func TestChildInStore(t *testing.T) {
	child := store.New(el.Div())
	target, _ := mount(t, el.Div(child))

	require.NotNil(t, target.FirstElementChild())
	assert.Equal(t, "DIV", target.FirstElementChild().TagName())
}

func TestChildReplacedOnChange(t *testing.T) {
	show := store.New(true)
	target, _ := mount(t, el.Div(showDivOrSpan(show)))

	assert.Equal(t, "DIV", target.FirstElementChild().TagName())
	show.Set(false)
	assert.Equal(t, "SPAN", target.FirstElementChild().TagName())
	assert.Len(t, target.ChildNodes(), 1)
}

func TestMiddleChildReplaced(t *testing.T) {
	show := store.New(true)
	target, _ := mount(t, el.Div(el.A(), showDivOrSpan(show), el.A()))

	assert.Equal(t, "DIV", target.Children()[1].TagName())
	show.Set(false)

	children := target.Children()
	require.Len(t, children, 3)
	assert.Equal(t, "A", children[0].TagName())
	assert.Equal(t, "SPAN", children[1].TagName())
	assert.Equal(t, "A", children[2].TagName())
}

func TestReplacedChildReleasesSubscriptions(t *testing.T) {
	show := store.New(true)
	str := store.New("Hello World")
	height := store.New("100px")

	content := store.Project(show, func(b bool) *vdom.Tag {
		if b {
			return el.Div(el.StyleBind("height", height), str)
		}
		return el.Span()
	})
	mount(t, el.Div(content))

	assert.Equal(t, 1, str.SubscriberCount())
	assert.Equal(t, 1, height.SubscriberCount())

	show.Set(false)

	assert.Equal(t, 0, str.SubscriberCount())
	assert.Equal(t, 0, height.SubscriberCount())
	assert.Equal(t, 1, show.SubscriberCount())
}

func TestAbsentFirstChild(t *testing.T) {
	show := store.New(false)
	target, _ := mount(t, el.Div(showDivOrNil(show), el.A()))

	assert.Len(t, target.ChildNodes(), 1)
	show.Set(true)
	assert.Len(t, target.ChildNodes(), 2)
	assert.Equal(t, "DIV", target.Children()[0].TagName())
}

func TestAbsentMiddleChild(t *testing.T) {
	show := store.New(false)
	target, _ := mount(t, el.Div(el.A(), showDivOrNil(show), el.A()))

	assert.Len(t, target.ChildNodes(), 2)
	show.Set(true)
	assert.Len(t, target.ChildNodes(), 3)
	assert.Equal(t, "DIV", target.Children()[1].TagName())
}

func TestAbsentLastChild(t *testing.T) {
	show := store.New(false)
	target, _ := mount(t, el.Div(el.A(), el.A(), showDivOrNil(show)))

	assert.Len(t, target.ChildNodes(), 2)
	show.Set(true)
	assert.Len(t, target.ChildNodes(), 3)
	assert.Equal(t, "DIV", target.Children()[2].TagName())
}

func TestAbsentAgainRemovesNode(t *testing.T) {
	show := store.New(true)
	target, _ := mount(t, el.Div(el.A(), showDivOrNil(show), el.A()))

	show.Set(false)
	assert.Equal(t, "<div><a></a><a></a></div>", target.OuterHTML())
	show.Set(true)
	assert.Equal(t, "<div><a></a><div></div><a></a></div>", target.OuterHTML())
}

func TestTextAllowsAbsent(t *testing.T) {
	text := store.New(vdom.Absent())
	target, _ := mount(t, el.Div(
		el.Div("S", "S", "S"),
		el.Div(text, "S", "S"),
		el.Div("S", text, "S"),
		el.Div("S", "S", text),
	))

	nodes := target.ChildNodes()
	require.Len(t, nodes, 4)
	assert.Equal(t, "SSS", nodes[0].TextContent())
	assert.Equal(t, "SS", nodes[1].TextContent())
	assert.Equal(t, "SS", nodes[2].TextContent())
	assert.Equal(t, "SS", nodes[3].TextContent())

	text.Set(vdom.Text("D"))

	assert.Equal(t, "SSS", nodes[0].TextContent())
	assert.Equal(t, "DSS", nodes[1].TextContent())
	assert.Equal(t, "SDS", nodes[2].TextContent())
	assert.Equal(t, "SSD", nodes[3].TextContent())
	assert.Equal(t, 3, text.SubscriberCount())
}

func TestTextPatchedInPlace(t *testing.T) {
	text := store.New("a")
	target, _ := mount(t, el.Div(text))

	first := target.FirstChild()
	text.Set("b")

	assert.Same(t, first, target.FirstChild())
	assert.Equal(t, "b", target.TextContent())
}

// plainHost hides the TextSetter capability of a headless document.
type plainHost struct {
	render.Host
}

func TestTextReplacedWithoutTextSetter(t *testing.T) {
	doc := headless.NewDocument()
	text := store.New("a")
	root, err := render.Render(plainHost{doc}, el.Div(text, "!"), doc.Body())
	require.NoError(t, err)
	target := root.Node().(*headless.Node)

	first := target.FirstChild()
	text.Set("b")

	assert.NotSame(t, first, target.FirstChild())
	assert.Equal(t, "b!", target.TextContent())
}

func TestNestedDynamic(t *testing.T) {
	outer := store.New(true)
	inner := store.New("x")

	content := store.Project(outer, func(b bool) vdom.Child {
		if b {
			return vdom.BindText(inner)
		}
		return vdom.Element(el.Strong("off"))
	})
	target, _ := mount(t, el.Div(el.A(), content, el.A()))

	assert.Equal(t, "<div><a></a>x<a></a></div>", target.OuterHTML())

	inner.Set("y")
	assert.Equal(t, "<div><a></a>y<a></a></div>", target.OuterHTML())

	outer.Set(false)
	assert.Equal(t, "<div><a></a><strong>off</strong><a></a></div>", target.OuterHTML())
	assert.Equal(t, 0, inner.SubscriberCount())

	outer.Set(true)
	inner.Set("z")
	assert.Equal(t, "<div><a></a>z<a></a></div>", target.OuterHTML())
}

func TestNestedAbsentSlotKeepsOrder(t *testing.T) {
	outer := store.New(vdom.Absent())
	inner := store.New(vdom.Absent())
	target, _ := mount(t, el.Div(outer, el.A()))

	outer.Set(vdom.Dynamic(inner))
	assert.Equal(t, "<div><a></a></div>", target.OuterHTML())

	inner.Set(vdom.Element(el.Span()))
	assert.Equal(t, "<div><span></span><a></a></div>", target.OuterHTML())
}

func TestWhenAndSwitch(t *testing.T) {
	on := store.New(false)
	mode := store.New("a")
	target, _ := mount(t, el.Div(
		vdom.When(on, vdom.Text("on"), vdom.Text("off")),
		vdom.Switch[string](mode, map[string]vdom.Child{
			"a": vdom.Element(el.Span("A")),
		}, vdom.Absent()),
	))

	assert.Equal(t, "<div>off<span>A</span></div>", target.OuterHTML())
	on.Set(true)
	mode.Set("b")
	assert.Equal(t, "<div>on</div>", target.OuterHTML())
}

func TestUnmountReturnsToBaseline(t *testing.T) {
	show := store.New(true)
	str := store.New("s")
	class := store.New("c")

	doc := headless.NewDocument()
	root, err := render.Render(doc, el.Div(
		el.ClassBind(class),
		str,
		showDivOrSpan(show),
	), doc.Body())
	require.NoError(t, err)

	assert.Equal(t, 3, root.Stats().Handles)
	assert.True(t, root.Mounted())

	require.NoError(t, root.Unmount())

	assert.False(t, root.Mounted())
	assert.Equal(t, 0, show.SubscriberCount())
	assert.Equal(t, 0, str.SubscriberCount())
	assert.Equal(t, 0, class.SubscriberCount())
	assert.Empty(t, doc.Body().ChildNodes())

	err = root.Unmount()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "R006")
}

func TestSetAfterUnmountIsIgnored(t *testing.T) {
	show := store.New(true)
	doc := headless.NewDocument()
	root, err := render.Render(doc, el.Div(showDivOrSpan(show)), doc.Body())
	require.NoError(t, err)
	require.NoError(t, root.Unmount())

	before := doc.Mutations()
	show.Set(false)
	assert.Equal(t, before, doc.Mutations())
}

func TestRootStats(t *testing.T) {
	text := store.New("t")
	_, root := mount(t, el.Div(
		el.Span("a"),
		nil,
		text,
	))

	stats := root.Stats()
	assert.Equal(t, 2, stats.Elements)
	assert.Equal(t, 2, stats.Texts)
	assert.Equal(t, 1, stats.Absent)
	assert.Equal(t, 1, stats.Dynamic)
	assert.Equal(t, 6, stats.Records)
	assert.Equal(t, 1, stats.Handles)
}

func TestRecordTree(t *testing.T) {
	text := store.New("t")
	_, root := mount(t, el.Div("s", text))

	rec := root.Record()
	assert.Equal(t, vdom.KindElement, rec.Kind())
	children := rec.Children()
	require.Len(t, children, 2)
	assert.Equal(t, vdom.KindText, children[0].Kind())
	assert.Equal(t, vdom.KindDynamic, children[1].Kind())
	assert.Len(t, children[1].Handles(), 1)
	assert.Equal(t, vdom.KindText, children[1].Content().Kind())
	assert.Nil(t, children[0].Content())

	assert.Equal(t, 1, children[1].Teardown())
	assert.Equal(t, 0, children[1].Teardown())
	assert.True(t, children[1].TornDown())
	assert.Equal(t, 0, text.SubscriberCount())
}

func TestTextFollowsClampedSet(t *testing.T) {
	s := store.New("ok")
	s.Subscribe(func(v string) {
		if v == "bad" {
			s.Set("clamped")
		}
	})
	target, _ := mount(t, el.Div(s))

	s.Set("bad")
	assert.Equal(t, "clamped", s.Get())
	assert.Equal(t, "clamped", target.TextContent())
}

func TestClassFollowsClampedSet(t *testing.T) {
	class := store.New("a")
	class.Subscribe(func(v string) {
		if v == "" {
			class.Set("fallback")
		}
	})
	target, _ := mount(t, el.Div(el.ClassBind(class)))

	class.Set("")
	assert.Equal(t, "fallback", target.ClassName())
}
