package el

import (
	"testing"

	"github.com/vango-dev/dotrender/internal/errors"
	"github.com/vango-dev/dotrender/pkg/store"
	"github.com/vango-dev/dotrender/pkg/vdom"
)

func TestElementConstructorsMatchVDOM(t *testing.T) {
	ctors := map[string]func(...any) *Tag{
		"div":     Div,
		"span":    Span,
		"p":       P,
		"a":       A,
		"h1":      H1,
		"h2":      H2,
		"section": Section,
		"ul":      Ul,
		"li":      Li,
		"button":  Button,
		"strong":  Strong,
	}
	for name, ctor := range ctors {
		tag := ctor(Class("x"), "child")
		if tag.Name != name {
			t.Errorf("%s: Name = %q", name, tag.Name)
		}
		if tag.Attrs.Class.Get() != "x" {
			t.Errorf("%s: class = %q", name, tag.Attrs.Class.Get())
		}
		if len(tag.Children) != 1 || tag.Children[0].Kind() != vdom.KindText {
			t.Errorf("%s: children = %v", name, tag.Children)
		}
	}
	if El("custom-el").Name != "custom-el" {
		t.Error("El should use the given name")
	}
}

func TestHelpersReexport(t *testing.T) {
	show := store.New(true)
	height := store.New("1px")
	label := store.New("l")

	tag := Div(
		StyleBind("height", height),
		Style("width", "2px"),
		Hidden(false),
		BoolBind("disabled", show),
		ClassBind(label),
		OnClick(func() {}),
		On("input", func() {}),
		Text("t"),
		Absent(),
		Element(Span()),
		Dynamic(store.New(Text("d"))),
		BindText(label),
		When(show, Text("yes"), Absent()),
	)
	if err := tag.Err(); err != nil {
		t.Fatal(err)
	}
	if len(tag.Children) != 6 {
		t.Errorf("got %d children, want 6", len(tag.Children))
	}
	if len(tag.Attrs.Events) != 2 {
		t.Errorf("got %d events, want 2", len(tag.Attrs.Events))
	}
}

func TestNilStoreArguments(t *testing.T) {
	var label *store.Store[string]
	for name, tag := range map[string]*Tag{
		"child": Div(label),
		"class": Div(ClassBind(label)),
	} {
		if err := tag.Err(); !errors.HasCode(err, "R005") {
			t.Errorf("%s: Err() = %v, want R005", name, err)
		}
	}
}
