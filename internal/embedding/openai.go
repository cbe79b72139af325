package embedding

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sort"
	"time"

	"github.com/arxivtools/paperembed/internal/errortypes"
)

const (
	openAIModel    = "text-embedding-3-small"
	openAIEndpoint = "https://api.openai.com/v1/embeddings"

	// Requested via the dimensions parameter so the stored blobs stay the
	// same width as the default local model's output.
	openAIDims = 384
)

// OpenAI embeds text through the OpenAI embeddings API, requesting vectors
// truncated to the store's standard dimension.
type OpenAI struct {
	apiKey string
	client *http.Client
}

// NewOpenAI creates an OpenAI embedder using the given API key.
func NewOpenAI(apiKey string) *OpenAI {
	return &OpenAI{
		apiKey: apiKey,
		client: &http.Client{Timeout: 60 * time.Second},
	}
}

func (o *OpenAI) Dims() int    { return openAIDims }
func (o *OpenAI) Name() string { return fmt.Sprintf("openai-3small-%d", openAIDims) }

// Initialize validates that an API key is present. The key itself is only
// proven valid by the first embed call.
func (o *OpenAI) Initialize() error {
	if o.apiKey == "" {
		return errortypes.ModelLoad(nil, "OpenAI API key not set")
	}
	return nil
}

// Embed encodes texts in one API call, reordering results by index so the
// output matches input order.
func (o *OpenAI) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	body, err := json.Marshal(openAIRequest{
		Model:      openAIModel,
		Input:      texts,
		Dimensions: openAIDims,
	})
	if err != nil {
		return nil, errortypes.ModelRuntime(err, "marshal embed request")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, openAIEndpoint, bytes.NewReader(body))
	if err != nil {
		return nil, errortypes.ModelRuntime(err, "create embed request")
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+o.apiKey)

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
			fmt.Errorf("openai returned %d: %s", resp.StatusCode, respBody),
			"embed request rejected")
	}

	var result openAIResponse
	if err := json.Unmarshal(respBody, &result); err != nil {
		return nil, errortypes.ModelRuntime(err, "unmarshal embed response")
	}
	if len(result.Data) != len(texts) {
		return nil, errortypes.ModelRuntime(
			fmt.Errorf("got %d embeddings for %d texts", len(result.Data), len(texts)),
			"embedding count mismatch")
	}

	sort.Slice(result.Data, func(i, j int) bool {
		return result.Data[i].Index < result.Data[j].Index
	})
	vecs := make([][]float32, len(result.Data))
	for i, d := range result.Data {
		vecs[i] = d.Embedding
	}
	return vecs, nil
}

type openAIRequest struct {
	Model      string   `json:"model"`
	Input      []string `json:"input"`
	Dimensions int      `json:"dimensions"`
}

type openAIResponse struct {
	Data []openAIEmbedding `json:"data"`
}

type openAIEmbedding struct {
	Index     int       `json:"index"`
	Embedding []float32 `json:"embedding"`
}
