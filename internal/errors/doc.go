// Package errors provides structured, coded errors for dotrender.
//
// Every error carries a short code (e.g., "R001") that maps to a registered
// message, a longer explanation and a category:
//   - render: mount and patch failures, malformed virtual nodes
//   - config: configuration file problems
//   - snapshot: snapshot sink failures
//   - inspect: inspector server failures
//
// # Usage
//
//	err := errors.New("R001").
//	    WithDetailf("argument 2 of <div> has type %T", arg).
//	    WithSuggestion("pass a vdom.Child, a *vdom.Tag, a string or a store")
//
//	fmt.Println(err.Format())
//	// Output:
//	// ERROR R001: Malformed child
//	//
//	//   argument 2 of <div> has type int
//	//
//	//   Hint: pass a vdom.Child, a *vdom.Tag, a string or a store
package errors
