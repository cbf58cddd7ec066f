// Package headless provides an in-memory host tree for dotrender.
//
// Document implements render.Host and render.TextSetter, so trees can be
// mounted, inspected and serialized without a browser:
//
//	doc := headless.NewDocument()
//	root, _ := render.Render(doc, el.Div(el.Class("hello")), doc.Body())
//	fmt.Println(doc.Body().InnerHTML()) // <div class="hello"></div>
//
// Elements expose the DOM-like accessors tests need: TagName, ClassName,
// Style, Hidden, Children, ChildNodes, TextContent and Click. Observers
// registered with Observe see every mutation as it happens.
//
// A Document is not safe for concurrent use.
package headless
