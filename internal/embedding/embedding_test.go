package embedding

import (
	"context"
	"encoding/json"
	"math"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/arxivtools/paperembed/internal/errortypes"
)

func TestMockDeterministic(t *testing.T) {
	m := NewMock(384)
	ctx := context.Background()

	a, err := m.Embed(ctx, []string{"graph neural networks"})
	if err != nil {
		t.Fatalf("Embed error: %v", err)
	}
	b, err := m.Embed(ctx, []string{"graph neural networks"})
	if err != nil {
		t.Fatalf("Embed error: %v", err)
	}

	if len(a[0]) != 384 {
		t.Fatalf("dims = %d, want 384", len(a[0]))
	}
	for i := range a[0] {
		if a[0][i] != b[0][i] {
			t.Fatalf("component %d differs between runs: %v vs %v", i, a[0][i], b[0][i])
		}
	}
}

func TestMockDistinctTexts(t *testing.T) {
	m := NewMock(64)
	vecs, err := m.Embed(context.Background(), []string{"alpha", "beta"})
	if err != nil {
		t.Fatalf("Embed error: %v", err)
	}

	same := true
	for i := range vecs[0] {
		if vecs[0][i] != vecs[1][i] {
			same = false
			break
		}
	}
	if same {
		t.Errorf("distinct texts produced identical vectors")
	}
}

func TestMockUnitLength(t *testing.T) {
	m := NewMock(128)
	vecs, err := m.Embed(context.Background(), []string{"some abstract text", ""})
	if err != nil {
		t.Fatalf("Embed error: %v", err)
	}

	for i, vec := range vecs {
		var sum float64
		for _, v := range vec {
			sum += float64(v) * float64(v)
		}
		if math.Abs(math.Sqrt(sum)-1.0) > 1e-4 {
			t.Errorf("vector %d norm = %v, want 1.0", i, math.Sqrt(sum))
		}
	}
}

func TestMockEmptyTextStillProducesVector(t *testing.T) {
	m := NewMock(32)
	vecs, err := m.Embed(context.Background(), []string{""})
	if err != nil {
		t.Fatalf("Embed error: %v", err)
	}
	if len(vecs) != 1 || len(vecs[0]) != 32 {
		t.Fatalf("empty text vector shape = %dx%d, want 1x32", len(vecs), len(vecs[0]))
	}
}

func TestOllamaEmbed(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/embed" {
			http.NotFound(w, r)
			return
		}
		var req struct {
			Model string   `json:"model"`
			Input []string `json:"input"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		if req.Model != "all-minilm" {
			t.Errorf("model = %q, want all-minilm", req.Model)
		}
		out := make([][]float32, len(req.Input))
		for i := range out {
			out[i] = []float32{float32(i), 0.5}
		}
		json.NewEncoder(w).Encode(map[string]interface{}{"embeddings": out})
	}))
	defer srv.Close()

	o := NewOllama("", srv.URL, 2)
	vecs, err := o.Embed(context.Background(), []string{"first", "second", "third"})
	if err != nil {
		t.Fatalf("Embed error: %v", err)
	}
	if len(vecs) != 3 {
		t.Fatalf("got %d vectors, want 3", len(vecs))
	}
	for i, vec := range vecs {
		if vec[0] != float32(i) {
			t.Errorf("vector %d out of order: first component %v", i, vec[0])
		}
	}
}

func TestOllamaEmbedCountMismatch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{
			"embeddings": [][]float32{{1, 2}},
		})
	}))
	defer srv.Close()

	o := NewOllama("", srv.URL, 2)
	_, err := o.Embed(context.Background(), []string{"a", "b"})
	if !errortypes.IsModelRuntime(err) {
		t.Fatalf("error = %v, want model runtime error", err)
	}
}

func TestOllamaEmbedServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model exploded", http.StatusInternalServerError)
	}))
	defer srv.Close()

	o := NewOllama("", srv.URL, 0)
	_, err := o.Embed(context.Background(), []string{"a"})
	if !errortypes.IsModelRuntime(err) {
		t.Fatalf("error = %v, want model runtime error", err)
	}
}

func TestOllamaInitializeUnreachable(t *testing.T) {
	o := NewOllama("", "http://127.0.0.1:1", 0)
	err := o.Initialize()
	if !errortypes.IsModelLoad(err) {
		t.Fatalf("error = %v, want model load error", err)
	}
}

func TestOpenAIInitializeWithoutKey(t *testing.T) {
	o := NewOpenAI("")
	if !errortypes.IsModelLoad(o.Initialize()) {
		t.Fatalf("Initialize without key should be a model load error")
	}
}

func TestNewFromProviderMock(t *testing.T) {
	emb, err := NewFromProvider(Options{Provider: "mock", Dims: 16})
	if err != nil {
		t.Fatalf("NewFromProvider error: %v", err)
	}
	if emb.Dims() != 16 {
		t.Errorf("Dims = %d, want 16", emb.Dims())
	}
}

func TestNewFromProviderUnknown(t *testing.T) {
	_, err := NewFromProvider(Options{Provider: "tensorflow"})
	if err == nil {
		t.Fatalf("unknown provider should error")
	}
}

func TestNewFromProviderOpenAIWithoutKey(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "")
	_, err := NewFromProvider(Options{Provider: "openai"})
	if !errortypes.IsDependencyMissing(err) {
		t.Fatalf("error = %v, want dependency missing", err)
	}
}
