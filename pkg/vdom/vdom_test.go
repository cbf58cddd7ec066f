package vdom

import (
	"testing"

	"github.com/vango-dev/dotrender/internal/errors"
	"github.com/vango-dev/dotrender/pkg/store"
)

func TestChildKindString(t *testing.T) {
	tests := []struct {
		kind ChildKind
		want string
	}{
		{KindAbsent, "Absent"},
		{KindText, "Text"},
		{KindElement, "Element"},
		{KindDynamic, "Dynamic"},
		{ChildKind(99), "Unknown"},
	}
	for _, tt := range tests {
		if got := tt.kind.String(); got != tt.want {
			t.Errorf("ChildKind(%d).String() = %q, want %q", tt.kind, got, tt.want)
		}
	}
}

func TestZeroChildIsAbsent(t *testing.T) {
	var c Child
	if !c.IsAbsent() || c.Kind() != KindAbsent {
		t.Errorf("zero Child kind = %v, want Absent", c.Kind())
	}
	if err := c.Validate(); err != nil {
		t.Errorf("zero Child should be valid, got %v", err)
	}
}

func TestChildValidate(t *testing.T) {
	tests := []struct {
		name  string
		child Child
		code  string
	}{
		{"text", Text("x"), ""},
		{"element", Element(H("div")), ""},
		{"dynamic", Dynamic(store.New(Absent())), ""},
		{"nil tag", Element(nil), "R002"},
		{"nil store", Dynamic(nil), "R005"},
		{"unknown kind", Child{kind: 42}, "R001"},
		{"broken nested tag", Element(H("div", 3.5)), "R001"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.child.Validate()
			if tt.code == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if !errors.HasCode(err, tt.code) {
				t.Fatalf("Validate() = %v, want code %s", err, tt.code)
			}
		})
	}
}

func TestHChildren(t *testing.T) {
	inner := H("span")
	dyn := store.New(Text("d"))
	str := store.New("s")
	tagStore := store.New[*Tag](nil)

	tag := H("div",
		"text",
		nil,
		inner,
		Text("explicit"),
		[]Child{Absent(), Text("a")},
		[]*Tag{H("b"), nil},
		dyn,
		str,
		tagStore,
	)
	if err := tag.Err(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []ChildKind{
		KindText, KindAbsent, KindElement, KindText,
		KindAbsent, KindText,
		KindElement, KindAbsent,
		KindDynamic, KindDynamic, KindDynamic,
	}
	if len(tag.Children) != len(want) {
		t.Fatalf("got %d children, want %d", len(tag.Children), len(want))
	}
	for i, k := range want {
		if tag.Children[i].Kind() != k {
			t.Errorf("child %d kind = %v, want %v", i, tag.Children[i].Kind(), k)
		}
	}
	if tag.Children[2].Tag() != inner {
		t.Error("element child should reference the given tag")
	}
	if tag.Children[0].TextValue() != "text" {
		t.Errorf("text child = %q", tag.Children[0].TextValue())
	}
}

func TestHStringStoreIsView(t *testing.T) {
	str := store.New("hello")
	tag := H("div", str)

	s := tag.Children[0].Store()
	if got := s.Get(); got.TextValue() != "hello" || got.Kind() != KindText {
		t.Errorf("view Get() = %v", got)
	}
	if str.SubscriberCount() != 0 {
		t.Errorf("constructing a tag must not subscribe, got %d", str.SubscriberCount())
	}

	h := s.Subscribe(func(Child) {})
	if str.SubscriberCount() != 1 {
		t.Errorf("subscribing to the view should subscribe the source, got %d", str.SubscriberCount())
	}
	h.Unsubscribe()
	if str.SubscriberCount() != 0 {
		t.Errorf("after unsubscribe, got %d", str.SubscriberCount())
	}
}

func TestHTagStoreNilIsAbsent(t *testing.T) {
	s := store.New[*Tag](nil)
	c := H("div", s).Children[0]
	if c.Store().Get().Kind() != KindAbsent {
		t.Error("nil tag in store should read as absent")
	}
	s.Set(H("p"))
	if got := c.Store().Get(); got.Kind() != KindElement || got.Tag().Name != "p" {
		t.Errorf("got %v, want Element(<p>)", got)
	}
}

func TestHMalformedArgument(t *testing.T) {
	tag := H("div", "ok", 42)
	err := tag.Err()
	if !errors.HasCode(err, "R001") {
		t.Fatalf("Err() = %v, want R001", err)
	}

	if _, err := NewTag("div", struct{}{}); !errors.HasCode(err, "R001") {
		t.Errorf("NewTag() error = %v, want R001", err)
	}
	if _, err := NewTag("div", "fine"); err != nil {
		t.Errorf("NewTag() unexpected error: %v", err)
	}
}

func TestHPropagatesNestedErrors(t *testing.T) {
	broken := H("span", 1)
	outer := H("div", H("section", broken))
	if !errors.HasCode(outer.Err(), "R001") {
		t.Errorf("outer Err() = %v, want nested R001", outer.Err())
	}
}

func TestHEmptyName(t *testing.T) {
	if !errors.HasCode(H("").Err(), "R001") {
		t.Error("empty tag name should be a configuration error")
	}
}

func TestNilTagErr(t *testing.T) {
	var tag *Tag
	if !errors.HasCode(tag.Err(), "R002") {
		t.Error("nil *Tag Err() should be R002")
	}
}

func TestAttributes(t *testing.T) {
	height := store.New("100px")
	hidden := store.New(false)
	clicked := 0

	tag := H("div",
		Class("hello"),
		Style("width", "10px"),
		StyleBind("height", height),
		Hidden(true),
		BoolBind("disabled", hidden),
		OnClick(func() { clicked++ }),
	)
	if err := tag.Err(); err != nil {
		t.Fatal(err)
	}

	a := tag.Attrs
	if !a.Class.IsSet() || a.Class.IsBound() || a.Class.Get() != "hello" {
		t.Errorf("class = %+v", a.Class)
	}
	if got := a.StyleKeys(); len(got) != 2 || got[0] != "height" || got[1] != "width" {
		t.Errorf("StyleKeys() = %v", got)
	}
	if !a.Style["height"].IsBound() || a.Style["height"].Get() != "100px" {
		t.Error("height should be bound to the store")
	}
	height.Set("200px")
	if a.Style["height"].Get() != "200px" {
		t.Error("bound Get should read the store")
	}
	if a.Bools["hidden"].Get() != true {
		t.Error("hidden should be true")
	}
	if a.Bools["disabled"].Store() == nil {
		t.Error("disabled should be bound")
	}
	a.Events["click"]()
	if clicked != 1 {
		t.Errorf("clicked = %d, want 1", clicked)
	}
	if a.IsZero() {
		t.Error("IsZero should be false")
	}
	if !H("p").Attrs.IsZero() {
		t.Error("IsZero should be true for a bare tag")
	}
}

func TestAttributeNilBindings(t *testing.T) {
	tests := []struct {
		name string
		attr Attr
		code string
	}{
		{"class", ClassBind(nil), "R005"},
		{"style", StyleBind("height", nil), "R005"},
		{"bool", BoolBind("hidden", nil), "R005"},
		{"event", On("click", nil), "R001"},
		{"typed nil class", ClassBind((*store.Store[string])(nil)), "R005"},
		{"typed nil style", StyleBind("height", (*store.Store[string])(nil)), "R005"},
		{"typed nil bool", BoolBind("hidden", (*store.Store[bool])(nil)), "R005"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := H("div", tt.attr).Err(); !errors.HasCode(err, tt.code) {
				t.Errorf("Err() = %v, want %s", err, tt.code)
			}
		})
	}
}

func TestValueZero(t *testing.T) {
	var v Value[string]
	if v.IsSet() || v.IsBound() || v.Store() != nil || v.Get() != "" {
		t.Errorf("zero Value = %+v", v)
	}
}

func TestWhen(t *testing.T) {
	show := store.New(true)
	c := When(show, Element(H("div")), Absent())
	if c.Store().Get().Kind() != KindElement {
		t.Error("When(true) should render then")
	}
	show.Set(false)
	if c.Store().Get().Kind() != KindAbsent {
		t.Error("When(false) should render otherwise")
	}
	if err := When(nil, Absent(), Absent()).Validate(); !errors.HasCode(err, "R005") {
		t.Errorf("When(nil) Validate() = %v", err)
	}
}

func TestSwitch(t *testing.T) {
	tab := store.New("a")
	c := Switch(tab, map[string]Child{
		"a": Text("first"),
		"b": Text("second"),
	}, Text("none"))

	if got := c.Store().Get().TextValue(); got != "first" {
		t.Errorf("got %q", got)
	}
	tab.Set("z")
	if got := c.Store().Get().TextValue(); got != "none" {
		t.Errorf("got %q", got)
	}
}

func TestChildString(t *testing.T) {
	if got := Text("x").String(); got != "Text(x)" {
		t.Errorf("got %q", got)
	}
	if got := Element(H("div")).String(); got != "Element(<div>)" {
		t.Errorf("got %q", got)
	}
	if got := Element(nil).String(); got != "Element(nil)" {
		t.Errorf("got %q", got)
	}
	if got := Absent().String(); got != "Absent" {
		t.Errorf("got %q", got)
	}
}

func TestTypedNilStoreChildren(t *testing.T) {
	var text *store.Store[string]
	var cond *store.Store[bool]
	var key *store.Store[int]
	var tag *store.Store[*Tag]

	tests := []struct {
		name string
		tag  *Tag
	}{
		{"text arg", H("div", text)},
		{"tag arg", H("div", tag)},
		{"BindText", H("div", BindText(text))},
		{"When", H("div", When(cond, Text("a"), Absent()))},
		{"Switch", H("div", Switch(key, map[int]Child{}, Absent()))},
		{"Project", H("div", Dynamic(store.Project(text, Text)))},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.tag.Err(); !errors.HasCode(err, "R005") {
				t.Errorf("Err() = %v, want R005", err)
			}
		})
	}
}
