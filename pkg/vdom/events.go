package vdom

// On attaches handler to the named event. Handlers are attached once, when
// the element is mounted, and never rebound.
func On(event string, handler EventHandler) Attr {
	return func(a *Attributes) {
		if a.Events == nil {
			a.Events = make(map[string]EventHandler)
		}
		a.Events[event] = handler
	}
}

// OnClick handles click events.
func OnClick(handler EventHandler) Attr { return On("click", handler) }

// OnInput handles input events.
func OnInput(handler EventHandler) Attr { return On("input", handler) }

// OnChange handles change events.
func OnChange(handler EventHandler) Attr { return On("change", handler) }

// OnSubmit handles form submit events.
func OnSubmit(handler EventHandler) Attr { return On("submit", handler) }
