package types

// Field is a structured logging key/value pair.
type Field struct {
	Key   string
	Value interface{}
}

// Notification is the payload delivered to user-facing notification sinks
// whenever a port is auto-substituted or an operation fails. The sink is
// free to render it however it likes.
type Notification struct {
	Title       string   `json:"title"`
	Message     string   `json:"message"`
	Suggestions []string `json:"suggestions,omitempty"`
}
