package embedding

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// CohereClient is a client for the Cohere embed API.
// It implements the Embedder interface.
type CohereClient struct {
	BaseURL      string
	APIKey       string
	Model        string
	ExpectedSize int // Expected vector size for validation
	client       *http.Client
}

// NewCohereClient creates a new Cohere embeddings client.
// expectedSize is the vector size the deployment is configured for; every
// vector returned by Embed is validated against it.
func NewCohereClient(baseURL, apiKey, model string, expectedSize int) *CohereClient {
	return &CohereClient{
		BaseURL:      baseURL,
		APIKey:       apiKey,
		Model:        model,
		ExpectedSize: expectedSize,
		client:       http.DefaultClient,
	}
}

// embedRequest represents the request payload for the embed API.
type embedRequest struct {
	Model     string   `json:"model"`
	Texts     []string `json:"texts"`
	InputType string   `json:"input_type"`
}

// embedResponse represents the response from the embed API.
type embedResponse struct {
	Embeddings [][]float64 `json:"embeddings"`
}

// inputType maps a Role to the Cohere input_type parameter.
func inputType(role Role) (string, error) {
	switch role {
	case RoleDocument:
		return "search_document", nil
	case RoleQuery:
		return "search_query", nil
	default:
		return "", fmt.Errorf("unknown embedding role %q", role)
	}
}

// Embed generates embeddings for the given texts.
// Returns a slice of float32 vectors, one per input text, and validates that
// all returned vectors match the expected size.
func (c *CohereClient) Embed(ctx context.Context, texts []string, role Role) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, fmt.Errorf("empty input array")
	}

	input, err := inputType(role)
	if err != nil {
		return nil, err
	}

	url := fmt.Sprintf("%s/v1/embed", c.BaseURL)

	payload := embedRequest{
		Model:     c.Model,
		Texts:     texts,
		InputType: input,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewBuffer(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", c.APIKey))
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("bad status %d: %s", resp.StatusCode, string(raw))
	}

	var embedResp embedResponse
	if err := json.NewDecoder(resp.Body).Decode(&embedResp); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	if len(embedResp.Embeddings) != len(texts) {
		return nil, fmt.Errorf("expected %d embeddings, got %d", len(texts), len(embedResp.Embeddings))
	}

	// Convert []float64 to []float32 and validate size
	result := make([][]float32, len(embedResp.Embeddings))
	for i, embedding := range embedResp.Embeddings {
		if len(embedding) != c.ExpectedSize {
			return nil, fmt.Errorf("embedding %d has size %d, expected %d", i, len(embedding), c.ExpectedSize)
		}

		vec := make([]float32, len(embedding))
		for j, v := range embedding {
			vec[j] = float32(v)
		}
		result[i] = vec
	}

	return result, nil
}
