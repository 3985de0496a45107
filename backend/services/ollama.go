package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"qaqfplatform/backend/config"
)

// OllamaService talks to a locally hosted Ollama-compatible generation
// backend. Callers never see transport errors: every Generate* entry point
// that produces an artifact recovers into a deterministic fallback.
type OllamaService struct {
	BaseURL string
	Model   string
	Timeout time.Duration
	Client  *http.Client
	Logger  *log.Logger
}

func NewOllamaService(cfg *config.Config, logger *log.Logger) *OllamaService {
	timeout := time.Duration(cfg.OllamaTimeoutSec) * time.Second
	return &OllamaService{
		BaseURL: cfg.OllamaURL,
		Model:   cfg.OllamaModel,
		Timeout: timeout,
		Client:  &http.Client{Timeout: timeout},
		Logger:  logger,
	}
}

type generateRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
	Format string `json:"format,omitempty"`
	Stream bool   `json:"stream"`
}

type generateResponse struct {
	Response string `json:"response"`
}

// IsAvailable probes the backend's tag listing with a short timeout.
func (s *OllamaService) IsAvailable(ctx context.Context) bool {
	probeCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(probeCtx, http.MethodGet, s.BaseURL+"/api/tags", nil)
	if err != nil {
		return false
	}
	resp, err := s.Client.Do(req)
	if err != nil {
		return false
	}
	defer resp.Body.Close()
	return resp.StatusCode == http.StatusOK
}

// Generate posts a prompt and returns the single text completion.
func (s *OllamaService) Generate(ctx context.Context, prompt string) (string, error) {
	return s.generate(ctx, prompt, "")
}

// GenerateJSON asks the backend for a JSON-formatted completion.
func (s *OllamaService) GenerateJSON(ctx context.Context, prompt string) (string, error) {
	return s.generate(ctx, prompt, "json")
}

func (s *OllamaService) generate(ctx context.Context, prompt, format string) (string, error) {
	payload, err := json.Marshal(generateRequest{
		Model:  s.Model,
		Prompt: prompt,
		Format: format,
		Stream: false,
	})
	if err != nil {
		return "", err
	}

	callCtx, cancel := context.WithTimeout(ctx, s.Timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(callCtx, http.MethodPost, s.BaseURL+"/api/generate", bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.Client.Do(req)
	if err != nil {
		return "", fmt.Errorf("generation backend unreachable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("generation backend returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}

	var result generateResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return "", fmt.Errorf("malformed generation response: %w", err)
	}
	if result.Response == "" {
		return "", fmt.Errorf("empty generation response")
	}

	return result.Response, nil
}
