package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"codehelper/appctx"
	"codehelper/core"
	"codehelper/models"
	"codehelper/models/api"
	"codehelper/services"
	"codehelper/services/commands"
)

const (
	AgentName    = "Code Helper"
	AgentVersion = "1.0.0"

	// AgentEndpointPath is the canonical agent endpoint consumed by the
	// orchestration platform; /webhook is kept as an alias.
	AgentEndpointPath = "/a2a/agent/codeHelper"
	WebhookAliasPath  = "/webhook"

	defaultRecentInteractionsLimit = 20
	maxRecentInteractionsLimit     = 100
)

type AgentHandler struct {
	commandsService     services.CommandsService
	interactionsService services.InteractionsService
	baseURL             string
}

func NewAgentHandler(
	commandsService services.CommandsService,
	interactionsService services.InteractionsService,
	baseURL string,
) *AgentHandler {
	return &AgentHandler{
		commandsService:     commandsService,
		interactionsService: interactionsService,
		baseURL:             baseURL,
	}
}

func (h *AgentHandler) SetupEndpoints(router *mux.Router) {
	log.Printf("🚀 Registering agent endpoints")

	router.HandleFunc(AgentEndpointPath, h.HandleAgentMessage).Methods("POST")
	router.HandleFunc(WebhookAliasPath, h.HandleAgentMessage).Methods("POST")
	log.Printf("✅ POST %s endpoint registered (alias: %s)", AgentEndpointPath, WebhookAliasPath)

	router.HandleFunc(AgentEndpointPath, h.HandleAgentMessageGet).Methods("GET")
	log.Printf("✅ GET %s usage endpoint registered", AgentEndpointPath)

	router.HandleFunc("/health", h.HandleHealth).Methods("GET")
	log.Printf("✅ GET /health endpoint registered")

	router.HandleFunc("/workflow", h.HandleWorkflow).Methods("GET")
	log.Printf("✅ GET /workflow endpoint registered")

	router.HandleFunc("/interactions/recent", h.HandleRecentInteractions).Methods("GET")
	router.HandleFunc("/interactions/{id}", h.HandleInteractionByID).Methods("GET")
	log.Printf("✅ GET /interactions endpoints registered")

	router.HandleFunc("/", h.HandleHome).Methods("GET")
	log.Printf("✅ GET / endpoint registered")
}

// HandleAgentMessage is the main webhook endpoint: one inbound message in,
// one text result out. Handled commands (including unknown ones) always
// respond 200; non-200 is reserved for malformed requests.
func (h *AgentHandler) HandleAgentMessage(w http.ResponseWriter, r *http.Request) {
	log.Printf("📨 Agent message received from %s", r.RemoteAddr)

	var request api.AgentMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		log.Printf("❌ Failed to parse request body: %v", err)
		h.writeJSON(w, http.StatusBadRequest, api.AgentMessageResponse{
			Response:  "Invalid request: body must be JSON with a 'message' field",
			Error:     true,
			Agent:     AgentName,
			Timestamp: time.Now().Unix(),
		})
		return
	}

	if request.Message == "" {
		log.Printf("❌ Request is missing the 'message' field")
		h.writeJSON(w, http.StatusBadRequest, api.AgentMessageResponse{
			Response:  "Please provide a 'message' in your JSON payload",
			Error:     true,
			Agent:     AgentName,
			Timestamp: time.Now().Unix(),
		})
		return
	}

	requestID := core.NewID("req")
	ctx := appctx.SetRequestID(r.Context(), requestID)

	start := time.Now()
	result := h.commandsService.ProcessMessage(ctx, request.Message)
	duration := time.Since(start)

	interaction := &models.Interaction{
		ID:           core.NewID("int"),
		CommandKind:  commandKindOf(request.Message),
		Message:      request.Message,
		ResponseText: result.Text,
		IsError:      result.IsError,
		DurationMS:   duration.Milliseconds(),
	}
	if err := h.interactionsService.RecordInteraction(ctx, interaction); err != nil {
		log.Printf("⚠️ Failed to record interaction %s: %v", interaction.ID, err)
	}

	h.writeJSON(w, http.StatusOK, api.AgentMessageResponse{
		Response:  result.Text,
		Error:     result.IsError,
		ChannelID: request.ChannelID,
		UserID:    request.UserID,
		Agent:     AgentName,
		Timestamp: time.Now().Unix(),
	})
}

// HandleAgentMessageGet answers browsers poking the agent endpoint with a
// usage hint, mirroring the platform's expectation that only POST is served
func (h *AgentHandler) HandleAgentMessageGet(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusMethodNotAllowed, map[string]any{
		"error":   "Method Not Allowed",
		"message": "This endpoint only accepts POST requests",
		"usage": map[string]any{
			"method":       "POST",
			"content-type": "application/json",
			"example_payload": map[string]any{
				"message":    "explain: def add(a, b): return a + b",
				"channel_id": "your-channel-id",
				"user_id":    "your-user-id",
			},
		},
	})
}

func (h *AgentHandler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, api.HealthResponse{
		Status:    "healthy",
		Agent:     AgentName,
		Version:   AgentVersion,
		Timestamp: time.Now().Unix(),
	})
}

func (h *AgentHandler) HandleHome(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]any{
		"message": "Code Helper Agent is running",
		"status":  "active",
		"agent":   AgentName,
		"version": AgentVersion,
		"endpoints": map[string]string{
			"GET /health":              "Health check",
			"GET /workflow":            "Workflow document",
			"GET /interactions/recent": "Recent interaction history",
			"GET /interactions/{id}":   "Interaction lookup",
			"POST " + AgentEndpointPath: "Main agent endpoint",
			"POST " + WebhookAliasPath:  "Agent endpoint alias",
			"GET " + AgentEndpointPath:  "Usage hint",
		},
		"usage": "POST a JSON payload with a 'message' like 'explain: <code>', 'format: <code>' or 'run: <code>'",
	})
}

// HandleWorkflow serves the workflow document the orchestration platform
// imports to wire this agent into a channel
func (h *AgentHandler) HandleWorkflow(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, models.Workflow{
		Active:      true,
		Category:    "development",
		Description: "AI-powered code explanation, formatting and snippet execution",
		ID:          "code_helper_v1",
		LongDescription: "You are a helpful code assistant. You explain code snippets in plain " +
			"language, format snippets into fenced code blocks, and run small snippets to show " +
			"their output. Commands: 'explain: <code>', 'format: <code>', 'run: <code>'.",
		Name: "code_helper",
		Nodes: []models.WorkflowNode{
			{
				ID:          "code_helper_agent",
				Name:        "Code Helper Agent",
				Parameters:  map[string]any{},
				Position:    []int{500, 200},
				Type:        "a2a/a2a-node",
				TypeVersion: 1,
				URL:         h.baseURL + AgentEndpointPath,
			},
		},
		PinData: map[string]any{},
		Settings: map[string]any{
			"executionOrder": "v1",
		},
		ShortDescription: "Code explanation and snippet execution",
	})
}

// HandleRecentInteractions lists the most recently handled requests for
// operational inspection. Unavailable when no interaction store is configured.
func (h *AgentHandler) HandleRecentInteractions(w http.ResponseWriter, r *http.Request) {
	limit := defaultRecentInteractionsLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			h.writeJSON(w, http.StatusBadRequest, map[string]any{
				"error": "limit must be a positive integer",
			})
			return
		}
		limit = parsed
	}
	if limit > maxRecentInteractionsLimit {
		limit = maxRecentInteractionsLimit
	}

	recent, err := h.interactionsService.GetRecentInteractions(r.Context(), limit)
	if err != nil {
		log.Printf("❌ Failed to list recent interactions: %v", err)
		h.writeJSON(w, http.StatusServiceUnavailable, map[string]any{
			"error": "interaction history is not available",
		})
		return
	}
	if recent == nil {
		recent = []*models.Interaction{}
	}

	h.writeJSON(w, http.StatusOK, map[string]any{
		"interactions": recent,
		"count":        len(recent),
	})
}

func (h *AgentHandler) HandleInteractionByID(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	if !core.IsValidID(id) {
		h.writeJSON(w, http.StatusNotFound, map[string]any{"error": "interaction not found"})
		return
	}

	maybeInteraction, err := h.interactionsService.GetInteractionByID(r.Context(), id)
	if err != nil {
		log.Printf("❌ Failed to get interaction %s: %v", id, err)
		h.writeJSON(w, http.StatusServiceUnavailable, map[string]any{
			"error": "interaction history is not available",
		})
		return
	}
	if !maybeInteraction.IsPresent() {
		h.writeJSON(w, http.StatusNotFound, map[string]any{"error": "interaction not found"})
		return
	}

	h.writeJSON(w, http.StatusOK, maybeInteraction.MustGet())
}

func (h *AgentHandler) writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Printf("❌ Failed to write response: %v", err)
	}
}

// commandKindOf reclassifies the message for the interaction record without
// re-running the command
func commandKindOf(message string) models.CommandKind {
	return commands.ParseCommand(message).Kind
}
