package api

// AgentMessageRequest is the inbound payload posted by the orchestration platform
type AgentMessageRequest struct {
	Message   string         `json:"message"`
	ChannelID string         `json:"channel_id"`
	UserID    string         `json:"user_id"`
	Context   map[string]any `json:"context,omitempty"`
}

// AgentMessageResponse is the payload returned for every handled command
type AgentMessageResponse struct {
	Response  string `json:"response"`
	Error     bool   `json:"error"`
	ChannelID string `json:"channel_id,omitempty"`
	UserID    string `json:"user_id,omitempty"`
	Agent     string `json:"agent"`
	Timestamp int64  `json:"timestamp"`
}

// HealthResponse is the liveness payload for GET /health
type HealthResponse struct {
	Status    string `json:"status"`
	Agent     string `json:"agent"`
	Version   string `json:"version"`
	Timestamp int64  `json:"timestamp"`
}
