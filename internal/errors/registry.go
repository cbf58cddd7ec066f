package errors

// Template defines a registered error type.
type Template struct {
	Category Category
	Message  string
	Detail   string
}

// registry maps error codes to their templates.
var registry = map[string]Template{
	// ============================================
	// Render Errors (R001-R099)
	// ============================================

	"R001": {
		Category: CategoryRender,
		Message:  "Malformed child",
		Detail:   "A child must be absent, text, an element or a store producing a child.",
	},
	"R002": {
		Category: CategoryRender,
		Message:  "Nil tag",
		Detail:   "An element child or the render root refers to a nil *vdom.Tag.",
	},
	"R003": {
		Category: CategoryRender,
		Message:  "Nil container",
		Detail:   "Mount needs a host node to attach the rendered tree to.",
	},
	"R004": {
		Category: CategoryRender,
		Message:  "Host operation failed",
		Detail:   "The host tree rejected a mutation. The tree is not rolled back.",
	},
	"R005": {
		Category: CategoryRender,
		Message:  "Nil store binding",
		Detail:   "A dynamic child or bound attribute refers to a nil store.",
	},
	"R006": {
		Category: CategoryRender,
		Message:  "Root already unmounted",
		Detail:   "Unmount was called on a root whose tree has already been torn down.",
	},

	// ============================================
	// Config Errors (C001-C099)
	// ============================================

	"C001": {
		Category: CategoryConfig,
		Message:  "Config file unreadable",
		Detail:   "The configuration file exists but could not be read.",
	},
	"C002": {
		Category: CategoryConfig,
		Message:  "Config file invalid",
		Detail:   "The configuration file could not be parsed.",
	},
	"C003": {
		Category: CategoryConfig,
		Message:  "Config value invalid",
		Detail:   "A configuration value is out of range or inconsistent.",
	},

	// ============================================
	// Snapshot Errors (S001-S099)
	// ============================================

	"S001": {
		Category: CategorySnapshot,
		Message:  "Snapshot write failed",
		Detail:   "The snapshot sink could not store the rendered document.",
	},
	"S002": {
		Category: CategorySnapshot,
		Message:  "Unknown snapshot sink",
		Detail:   "Supported sinks are \"file\" and \"s3\".",
	},

	// ============================================
	// Inspector Errors (I001-I099)
	// ============================================

	"I001": {
		Category: CategoryInspect,
		Message:  "Inspector failed",
		Detail:   "The inspector server stopped with an error.",
	},
	"I002": {
		Category: CategoryInspect,
		Message:  "Unknown root",
		Detail:   "No mounted root is registered under this id.",
	},
}

// Codes returns all registered error codes.
func Codes() []string {
	codes := make([]string, 0, len(registry))
	for code := range registry {
		codes = append(codes, code)
	}
	return codes
}

// Lookup returns the template for an error code.
func Lookup(code string) (Template, bool) {
	t, ok := registry[code]
	return t, ok
}
