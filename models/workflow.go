package models

// Workflow is the orchestration platform's workflow document served at GET /workflow
type Workflow struct {
	Active           bool           `json:"active"`
	Category         string         `json:"category"`
	Description      string         `json:"description"`
	ID               string         `json:"id"`
	LongDescription  string         `json:"long_description"`
	Name             string         `json:"name"`
	Nodes            []WorkflowNode `json:"nodes"`
	PinData          map[string]any `json:"pinData"`
	Settings         map[string]any `json:"settings"`
	ShortDescription string         `json:"short_description"`
}

// WorkflowNode describes a single agent node within the workflow document
type WorkflowNode struct {
	ID          string         `json:"id"`
	Name        string         `json:"name"`
	Parameters  map[string]any `json:"parameters"`
	Position    []int          `json:"position"`
	Type        string         `json:"type"`
	TypeVersion int            `json:"typeVersion"`
	URL         string         `json:"url"`
}
