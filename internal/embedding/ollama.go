package embedding

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/arxivtools/paperembed/internal/errortypes"
)

const (
	// all-minilm is the Ollama build of all-MiniLM-L6-v2, the sentence
	// encoder these blobs were originally generated with. 384 dimensions.
	ollamaDefaultModel   = "all-minilm"
	ollamaDefaultBaseURL = "http://localhost:11434"
	ollamaDefaultDims    = 384
)

// Ollama embeds text through a local Ollama server's /api/embed endpoint.
type Ollama struct {
	model   string
	baseURL string
	dims    int
	client  *http.Client
}

// NewOllama creates an Ollama embedder. Empty arguments select the defaults
// (model all-minilm at http://localhost:11434, 384 dimensions).
func NewOllama(model, baseURL string, dims int) *Ollama {
	if model == "" {
		model = ollamaDefaultModel
	}
	if baseURL == "" {
		baseURL = ollamaDefaultBaseURL
	}
	if dims <= 0 {
		dims = ollamaDefaultDims
	}
	return &Ollama{
		model:   model,
		baseURL: baseURL,
		dims:    dims,
		client:  &http.Client{Timeout: 120 * time.Second},
	}
}

func (o *Ollama) Dims() int    { return o.dims }
func (o *Ollama) Name() string { return "ollama-" + o.model }

// Initialize verifies the server is reachable and the model is resolvable.
// Ollama pulls missing models on first use, so this only checks the show
// endpoint; a model Ollama cannot resolve at all is a load error.
func (o *Ollama) Initialize() error {
	body, err := json.Marshal(map[string]string{"model": o.model})
	if err != nil {
		return errortypes.ModelLoad(err, "marshal model request")
	}

	resp, err := o.client.Post(o.baseURL+"/api/show", "application/json", bytes.NewReader(body))
	if err != nil {
		return errortypes.ModelLoad(err, fmt.Sprintf("ollama unreachable at %s", o.baseURL))
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	// 404 means the model is not pulled yet; /api/embed will pull it.
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusNotFound {
		return errortypes.ModelLoad(
			fmt.Errorf("ollama returned status %d", resp.StatusCode),
			fmt.Sprintf("cannot load model %q", o.model))
	}
	return nil
}

// Embed encodes texts in one Ollama call, preserving input order.
func (o *Ollama) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	body, err := json.Marshal(ollamaRequest{
		Model: o.model,
		Input: texts,
	})
	if err != nil {
		return nil, errortypes.ModelRuntime(err, "marshal embed request")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, o.baseURL+"/api/embed", bytes.NewReader(body))
	if err != nil {
		return nil, errortypes.ModelRuntime(err, "create embed request")
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := o.client.Do(req)
	if err != nil {
		return nil, errortypes.ModelRuntime(err, "embed request failed")
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errortypes.ModelRuntime(err, "read embed response")
	}
	if resp.StatusCode != http.StatusOK {
		return nil, errortypes.ModelRuntime(
			fmt.Errorf("ollama returned %d: %s", resp.StatusCode, respBody),
			"embed request rejected")
	}

	var result ollamaResponse
	if err := json.Unmarshal(respBody, &result); err != nil {
		return nil, errortypes.ModelRuntime(err, "unmarshal embed response")
	}
	if len(result.Embeddings) != len(texts) {
		return nil, errortypes.ModelRuntime(
			fmt.Errorf("got %d embeddings for %d texts", len(result.Embeddings), len(texts)),
			"embedding count mismatch")
	}
	return result.Embeddings, nil
}

type ollamaRequest struct {
	Model string   `json:"model"`
	Input []string `json:"input"`
}

type ollamaResponse struct {
	Embeddings [][]float32 `json:"embeddings"`
}
