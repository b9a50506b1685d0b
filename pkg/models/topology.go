package models

// ObjectMap describes one modeled entity and its attributes.
type ObjectMap struct {
	ID         string         `json:"id"`
	Title      string         `json:"title"`
	Attributes map[string]any `json:"attributes,omitempty"`
}

// RelMap groups the object maps of one relationship, e.g. all monitors of a
// server.
type RelMap struct {
	RelName string      `json:"relname"`
	ModName string      `json:"modname"`
	Objects []ObjectMap `json:"objects"`
}
