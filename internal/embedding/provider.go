package embedding

import (
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/arxivtools/paperembed/internal/errortypes"
)

// Options selects and configures an embedding provider.
type Options struct {
	Provider string // "auto", "ollama", "openai" or "mock"
	Model    string // provider-specific model override
	BaseURL  string // Ollama base URL override
	APIKey   string // OpenAI API key; falls back to OPENAI_API_KEY
	Dims     int    // output dimension override (ollama and mock)
}

// NewFromProvider constructs an Embedder by provider name.
// "auto" (the default) prefers a reachable local Ollama and falls back to
// OpenAI when an API key is available; with neither backend present it
// returns a dependency-missing error.
func NewFromProvider(opts Options) (Embedder, error) {
	apiKey := opts.APIKey
	if apiKey == "" {
		apiKey = os.Getenv("OPENAI_API_KEY")
	}

	switch opts.Provider {
	case "auto", "":
		if ollamaReachable(opts.BaseURL) {
			return NewOllama(opts.Model, opts.BaseURL, opts.Dims), nil
		}
		if apiKey != "" {
			return NewOpenAI(apiKey), nil
		}
		return nil, errortypes.DependencyMissing(nil,
			"no embedding backend available: install ollama or set OPENAI_API_KEY")
	case "ollama":
		return NewOllama(opts.Model, opts.BaseURL, opts.Dims), nil
	case "openai":
		if apiKey == "" {
			return nil, errortypes.DependencyMissing(nil, "OPENAI_API_KEY not set")
		}
		return NewOpenAI(apiKey), nil
	case "mock":
		return NewMock(opts.Dims), nil
	default:
		return nil, errortypes.Config(
			fmt.Errorf("unknown provider %q", opts.Provider),
			"available providers: auto, ollama, openai, mock")
	}
}

func ollamaReachable(baseURL string) bool {
	if baseURL == "" {
		baseURL = ollamaDefaultBaseURL
	}
	client := &http.Client{Timeout: 2 * time.Second}
	resp, err := client.Get(baseURL + "/api/tags")
	if err != nil {
		return false
	}
	resp.Body.Close()
	return resp.StatusCode == http.StatusOK
}
