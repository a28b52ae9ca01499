package translator

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/lingualog/core/internal/infrastructure/config"
)

// MyMemoryClient translates through the free MyMemory GET API. Used as the
// fallback when the LLM provider is unavailable or unconfigured.
type MyMemoryClient struct {
	apiURL string
	client *http.Client
}

// NewMyMemoryClient creates a new fallback translation client
func NewMyMemoryClient(cfg config.TranslatorConfig) *MyMemoryClient {
	return &MyMemoryClient{
		apiURL: cfg.FallbackURL,
		client: &http.Client{Timeout: cfg.Timeout},
	}
}

func (c *MyMemoryClient) Name() string {
	return "mymemory"
}

type myMemoryResponse struct {
	ResponseData struct {
		TranslatedText string `json:"translatedText"`
	} `json:"responseData"`
	ResponseStatus  json.Number `json:"responseStatus"`
	ResponseDetails string      `json:"responseDetails"`
}

func (c *MyMemoryClient) Translate(ctx context.Context, text, sourceLang, targetLang string) (string, error) {
	params := url.Values{}
	params.Set("q", text)
	params.Set("langpair", sourceLang+"|"+targetLang)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.apiURL+"?"+params.Encode(), nil)
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	var response myMemoryResponse
	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}

	// The API reports errors with a 200 body and a non-200 status field.
	if status, _ := response.ResponseStatus.Int64(); status != 0 && status != 200 {
		return "", fmt.Errorf("API error: %s", response.ResponseDetails)
	}

	translated := strings.TrimSpace(response.ResponseData.TranslatedText)
	if translated == "" {
		return "", fmt.Errorf("empty translation returned")
	}

	return translated, nil
}
