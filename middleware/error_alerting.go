package middleware

import (
	"bytes"
	"crypto/md5"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"sync"
	"time"
)

type WebhookAlertConfig struct {
	WebhookURL  string
	Environment string
	AppName     string
}

type ErrorAlertMiddleware struct {
	config        WebhookAlertConfig
	httpClient    *http.Client
	alertedErrors map[string]time.Time // hash -> last alert time
	mutex         sync.RWMutex
	alertCooldown time.Duration // prevent spam
}

func NewErrorAlertMiddleware(config WebhookAlertConfig) *ErrorAlertMiddleware {
	return &ErrorAlertMiddleware{
		config:        config,
		httpClient:    &http.Client{Timeout: 10 * time.Second},
		alertedErrors: make(map[string]time.Time),
		alertCooldown: 10 * time.Minute, // Don't alert same error more than once per 10min
	}
}

// HTTPMiddleware wraps HTTP handlers with panic recovery and alerting
func (m *ErrorAlertMiddleware) HTTPMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer m.recoverAndAlert(w, fmt.Sprintf("HTTP %s %s", r.Method, r.URL.Path))
		next.ServeHTTP(w, r)
	})
}

// WrapTask wraps a named task with panic recovery and error alerting
func (m *ErrorAlertMiddleware) WrapTask(taskName string, task func() error) func() error {
	return func() error {
		defer m.recoverAndAlert(nil, "Task: "+taskName)

		if err := task(); err != nil {
			m.alertOnError(err, "Task: "+taskName)
			return err
		}
		return nil
	}
}

func (m *ErrorAlertMiddleware) alertOnError(err error, context string) {
	errorMsg := fmt.Sprintf("%s: %v", context, err)

	// Hash of the error message for deduplication
	hash := fmt.Sprintf("%x", md5.Sum([]byte(errorMsg)))

	m.mutex.Lock()
	defer m.mutex.Unlock()

	if lastAlert, exists := m.alertedErrors[hash]; exists {
		if time.Since(lastAlert) < m.alertCooldown {
			return // Skip alert - too recent
		}
	}

	go m.sendWebhookAlert(errorMsg, context)
	m.alertedErrors[hash] = time.Now()
}

func (m *ErrorAlertMiddleware) recoverAndAlert(w http.ResponseWriter, context string) {
	if r := recover(); r != nil {
		errorMsg := fmt.Sprintf("%s: PANIC - %v", context, r)
		log.Printf("❌ %s", errorMsg)
		if w != nil {
			http.Error(w, "internal server error", http.StatusInternalServerError)
		}
		go m.sendWebhookAlert(errorMsg, context+" (PANIC)")
	}
}

func (m *ErrorAlertMiddleware) sendWebhookAlert(errorMsg, context string) {
	if m.config.WebhookURL == "" {
		return // Alerts disabled
	}

	payload := map[string]any{
		"app":         m.config.AppName,
		"environment": m.config.Environment,
		"context":     context,
		"error":       errorMsg,
		"timestamp":   time.Now().UTC().Format(time.RFC3339),
	}

	body, err := json.Marshal(payload)
	if err != nil {
		log.Printf("❌ Failed to marshal alert payload: %v", err)
		return
	}

	resp, err := m.httpClient.Post(m.config.WebhookURL, "application/json", bytes.NewReader(body))
	if err != nil {
		log.Printf("❌ Failed to send alert webhook: %v", err)
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		log.Printf("❌ Alert webhook returned status %d", resp.StatusCode)
	}
}
