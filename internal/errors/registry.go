package errors

// Template defines a registered error type.
type Template struct {
	Category Category
	Message  string
	Detail   string
}

// registry maps error codes to their templates.
var registry = map[string]Template{
	// Config (E100-E199)
	"E100": {
		Category: CategoryConfig,
		Message:  "Config file not found",
	},
	"E101": {
		Category: CategoryConfig,
		Message:  "Invalid config file",
	},
	"E102": {
		Category: CategoryConfig,
		Message:  "Invalid config value",
	},
	"E103": {
		Category: CategoryConfig,
		Message:  "Unsupported config file format",
		Detail:   "Config files must end in .json, .yaml or .yml.",
	},

	// Navigation (E200-E299)
	"E200": {
		Category: CategoryNavigation,
		Message:  "Navigation path must be relative",
		Detail:   "Paths must start with a single '/' and must not carry a scheme.",
	},
	"E201": {
		Category: CategoryNavigation,
		Message:  "Malformed path",
	},

	// Assets (E300-E399)
	"E300": {
		Category: CategoryAsset,
		Message:  "Logo source could not be resolved",
	},
	"E301": {
		Category: CategoryAsset,
		Message:  "Unsupported logo source",
		Detail:   "Logos may be site paths, http(s) URLs, data URIs or s3://bucket/key.",
	},
	"E302": {
		Category: CategoryAsset,
		Message:  "Asset manifest could not be loaded",
	},

	// Live protocol (E400-E499)
	"E400": {
		Category: CategoryProtocol,
		Message:  "Malformed live event frame",
	},
	"E401": {
		Category: CategoryProtocol,
		Message:  "Unknown event target",
		Detail:   "No handler is registered for this hydration id and event in the current render.",
	},
	"E402": {
		Category: CategoryProtocol,
		Message:  "Unsupported handler type",
	},
	"E403": {
		Category: CategoryProtocol,
		Message:  "Event handler panicked",
	},

	// CLI (E500-E599)
	"E500": {
		Category: CategoryCLI,
		Message:  "Command failed",
	},
}

// Lookup returns the template registered for code.
func Lookup(code string) (Template, bool) {
	t, ok := registry[code]
	return t, ok
}
