package category

import (
	"fmt"
	"strings"
)

// Category identifies a domain area that groups related log events.
type Category uint8

// Domain categories.
const (
	API Category = iota
	WebSocket
	Auth
	Storage
	Database
	Network
	Navigation
	UI
	Performance
	Payment
	Notification
	Sync
	Cache
	Analytics

	// Generic categories backing the non-categorized entry points.
	Info
	Warning
	Error
	Success

	numCategories
)

// Color is a symbolic color token a renderer maps to terminal attributes.
// An empty token means "no color".
type Color string

// Supported color tokens.
const (
	ColorNone    Color = ""
	ColorRed     Color = "red"
	ColorGreen   Color = "green"
	ColorYellow  Color = "yellow"
	ColorBlue    Color = "blue"
	ColorMagenta Color = "magenta"
	ColorCyan    Color = "cyan"
	ColorWhite   Color = "white"
	ColorGray    Color = "gray"
)

// Meta is the display metadata of a category.
type Meta struct {
	ID    string `json:"id"`
	Tag   string `json:"tag"`
	Name  string `json:"name"`
	Color Color  `json:"color,omitempty"`
}

var registry = [numCategories]Meta{
	API:          {ID: "api", Tag: "🌐", Name: "API", Color: ColorBlue},
	WebSocket:    {ID: "websocket", Tag: "🔌", Name: "WebSocket", Color: ColorMagenta},
	Auth:         {ID: "auth", Tag: "🔐", Name: "Auth", Color: ColorYellow},
	Storage:      {ID: "storage", Tag: "💾", Name: "Storage", Color: ColorCyan},
	Database:     {ID: "database", Tag: "🗄️", Name: "Database", Color: ColorCyan},
	Network:      {ID: "network", Tag: "📡", Name: "Network", Color: ColorBlue},
	Navigation:   {ID: "navigation", Tag: "🧭", Name: "Navigation", Color: ColorMagenta},
	UI:           {ID: "ui", Tag: "🎨", Name: "UI", Color: ColorMagenta},
	Performance:  {ID: "performance", Tag: "⚡", Name: "Performance", Color: ColorYellow},
	Payment:      {ID: "payment", Tag: "💳", Name: "Payment", Color: ColorGreen},
	Notification: {ID: "notification", Tag: "🔔", Name: "Notification", Color: ColorYellow},
	Sync:         {ID: "sync", Tag: "🔄", Name: "Sync", Color: ColorCyan},
	Cache:        {ID: "cache", Tag: "📦", Name: "Cache", Color: ColorGray},
	Analytics:    {ID: "analytics", Tag: "📊", Name: "Analytics", Color: ColorBlue},
	Info:         {ID: "info", Tag: "ℹ️", Name: "Info", Color: ColorWhite},
	Warning:      {ID: "warning", Tag: "⚠️", Name: "Warning", Color: ColorYellow},
	Error:        {ID: "error", Tag: "❌", Name: "Error", Color: ColorRed},
	Success:      {ID: "success", Tag: "✅", Name: "Success", Color: ColorGreen},
}

// Valid reports whether c is one of the declared categories.
func (c Category) Valid() bool {
	return c < numCategories
}

// MetaFor returns the metadata of c. It panics if c is not a declared
// category; that is a programming error, not a runtime condition.
func MetaFor(c Category) Meta {
	if !c.Valid() {
		panic(fmt.Sprintf("category: unknown category %d", uint8(c)))
	}
	return registry[c]
}

// String returns the category identifier (e.g. "api").
func (c Category) String() string {
	if !c.Valid() {
		return fmt.Sprintf("category(%d)", uint8(c))
	}
	return registry[c].ID
}

// All returns every declared category in declaration order.
func All() []Category {
	out := make([]Category, 0, numCategories)
	for c := Category(0); c < numCategories; c++ {
		out = append(out, c)
	}
	return out
}

// Parse resolves an identifier such as "api" or "WebSocket" to its category.
// Matching is case-insensitive on the identifier and the display name.
func Parse(s string) (Category, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	for c := Category(0); c < numCategories; c++ {
		if registry[c].ID == key || strings.ToLower(registry[c].Name) == key {
			return c, nil
		}
	}
	return 0, fmt.Errorf("category: unknown category %q", s)
}

// MarshalText encodes the category as its identifier.
func (c Category) MarshalText() ([]byte, error) {
	if !c.Valid() {
		return nil, fmt.Errorf("category: unknown category %d", uint8(c))
	}
	return []byte(registry[c].ID), nil
}

// UnmarshalText decodes an identifier produced by MarshalText.
func (c *Category) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}
