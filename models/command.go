package models

// CommandKind identifies the classified intent of an inbound message
type CommandKind string

const (
	CommandExplain CommandKind = "explain"
	CommandFormat  CommandKind = "format"
	CommandRun     CommandKind = "run"
	CommandUnknown CommandKind = "unknown"
)

// Command is the classified intent extracted from an inbound chat message.
// For CommandUnknown, Payload holds the original message untouched.
type Command struct {
	Kind    CommandKind
	Payload string
}

// ExecutionResult represents the text payload and error flag produced for a single request
type ExecutionResult struct {
	Text    string `json:"text"`
	IsError bool   `json:"is_error"`
}
