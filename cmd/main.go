package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/gorilla/mux"
	"github.com/rs/cors"
	"github.com/samber/mo"

	"codehelper/clients"
	anthropicclient "codehelper/clients/anthropic"
	"codehelper/clients/sandbox"
	"codehelper/config"
	"codehelper/core"
	"codehelper/db"
	"codehelper/handlers"
	"codehelper/middleware"
	"codehelper/services"
	"codehelper/services/commands"
	"codehelper/services/interactions"
	"codehelper/services/usagecost"
)

func main() {
	if err := run(); err != nil {
		log.Printf("❌ Fatal error: %v", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}

	// Initialize error alert middleware
	alertMiddleware := middleware.NewErrorAlertMiddleware(middleware.WebhookAlertConfig{
		WebhookURL:  cfg.AlertWebhookURL,
		Environment: cfg.Environment,
		AppName:     "codehelper",
	})

	// Interaction history is optional - absence of a database selects the
	// unconfigured stand-in
	var interactionsService services.InteractionsService
	if cfg.DatabaseConfig.IsConfigured() {
		dbConn, err := db.NewConnection(cfg.DatabaseConfig.URL)
		if err != nil {
			return err
		}
		defer dbConn.Close()

		interactionsRepo := db.NewPostgresInteractionsRepository(dbConn, cfg.DatabaseConfig.Schema)
		interactionsService = interactions.NewInteractionsService(interactionsRepo)
	} else {
		interactionsService = interactions.NewUnconfiguredInteractionsService()
	}

	model := core.GetDefaultModel()
	if cfg.AnthropicConfig.Model != "" {
		model = anthropic.Model(cfg.AnthropicConfig.Model)
	}
	usageCostService := usagecost.NewUsageCostService(model)

	// The explainer collaborator capability is selected once at startup;
	// mo.None switches explain to the local heuristic
	explainerClient := mo.None[clients.ExplainerClient]()
	if cfg.AnthropicConfig.IsConfigured() {
		explainerClient = mo.Some[clients.ExplainerClient](
			anthropicclient.NewAnthropicExplainerClient(cfg.AnthropicConfig.APIKey, model),
		)
	}

	sandboxClient := sandbox.NewSubprocessSandboxClient(sandbox.Config{
		Interpreter:     cfg.SandboxConfig.Interpreter,
		InterpreterArgs: cfg.SandboxConfig.InterpreterArgs,
		Timeout:         time.Duration(cfg.SandboxConfig.TimeoutSeconds) * time.Second,
		MaxOutputBytes:  cfg.SandboxConfig.MaxOutputKB * 1024,
	})

	commandsService := commands.NewCommandsService(
		explainerClient,
		sandboxClient,
		usageCostService,
		time.Duration(cfg.CollaboratorTimeoutSeconds)*time.Second,
	)

	agentHandler := handlers.NewAgentHandler(commandsService, interactionsService, cfg.BaseURL)

	// Create a new router
	router := mux.NewRouter()
	agentHandler.SetupEndpoints(router)

	// Periodically log explainer usage totals
	usageTicker := time.NewTicker(10 * time.Minute)
	usageTickerDone := make(chan struct{})
	defer close(usageTickerDone)
	defer usageTicker.Stop()
	go func() {
		for {
			select {
			case <-usageTickerDone:
				return
			case <-usageTicker.C:
				_ = alertMiddleware.WrapTask("LogUsageTotals", func() error {
					inputTokens, outputTokens := usageCostService.TotalTokens()
					log.Printf("📊 Usage totals: input=%d output=%d tokens, estimated cost $%s",
						inputTokens, outputTokens, usageCostService.TotalCost().StringFixed(6))
					return nil
				})()
			}
		}
	}()

	// Setup CORS middleware
	allowedOrigins := strings.Split(cfg.CORSAllowedOrigins, ",")
	for i, origin := range allowedOrigins {
		allowedOrigins[i] = strings.TrimSpace(origin)
	}

	c := cors.New(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
	})

	// Setup and handle graceful shutdown
	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           alertMiddleware.HTTPMiddleware(c.Handler(router)),
		ReadHeaderTimeout: 30 * time.Second,
	}

	return handleGracefulShutdown(server)
}

func handleGracefulShutdown(server *http.Server) error {
	// Channel to listen for interrupt signal
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	// Start server in a goroutine
	go func() {
		log.Printf("✅ Listening on http://localhost%s", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Printf("❌ Server error: %v", err)
		}
	}()

	// Wait for interrupt signal
	<-stop
	log.Printf("🛑 Shutdown signal received, cleaning up...")

	// Create a deadline for shutdown
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	// Shutdown server gracefully
	if err := server.Shutdown(ctx); err != nil {
		log.Printf("❌ Server shutdown error: %v", err)
		return err
	}

	log.Printf("✅ Server stopped gracefully")
	return nil
}
