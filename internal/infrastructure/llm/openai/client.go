package openai

import (
	"context"
	"fmt"
	"strings"

	goopenai "github.com/sashabaranov/go-openai"

	"ragserve/internal/core/domain"
	"ragserve/internal/infrastructure/resilience"
)

// Client wraps the OpenAI API for both embeddings and chat completion.
// BaseURL is overridable so tests and OpenAI-compatible gateways can stand
// in for the real endpoint.
type Client struct {
	api        *goopenai.Client
	genModel   string
	embedModel string
	executor   *resilience.Executor
}

func New(apiKey, baseURL, genModel, embedModel string, executor *resilience.Executor) *Client {
	cfg := goopenai.DefaultConfig(apiKey)
	if strings.TrimSpace(baseURL) != "" {
		cfg.BaseURL = strings.TrimRight(baseURL, "/")
	}
	return &Client{
		api:        goopenai.NewClientWithConfig(cfg),
		genModel:   genModel,
		embedModel: embedModel,
		executor:   executor,
	}
}

func (c *Client) execute(ctx context.Context, operation string, fn func(context.Context) error) error {
	if c.executor == nil {
		return fn(ctx)
	}
	return c.executor.Execute(ctx, operation, fn, classifyOpenAIError)
}

// Embedder maps chunk and query text to fixed-dimension vectors. All vectors
// come from one embedding model; mixing models across build and query is a
// caller error the index rejects by dimension.
type Embedder struct {
	client *Client
}

func NewEmbedder(client *Client) *Embedder {
	return &Embedder{client: client}
}

func (e *Embedder) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, nil
	}

	var resp goopenai.EmbeddingResponse
	err := e.client.execute(ctx, "openai.embed", func(callCtx context.Context) error {
		var callErr error
		resp, callErr = e.client.api.CreateEmbeddings(callCtx, goopenai.EmbeddingRequest{
			Model: goopenai.EmbeddingModel(e.client.embedModel),
			Input: texts,
		})
		return callErr
	})
	if err != nil {
		return nil, wrapProviderError(domain.ErrEmbedding, "create embeddings", err)
	}
	if len(resp.Data) != len(texts) {
		return nil, wrapProviderError(domain.ErrEmbedding, "create embeddings",
			fmt.Errorf("requested %d embeddings, got %d", len(texts), len(resp.Data)))
	}

	vectors := make([][]float32, len(resp.Data))
	for _, item := range resp.Data {
		if item.Index < 0 || item.Index >= len(vectors) {
			return nil, wrapProviderError(domain.ErrEmbedding, "create embeddings",
				fmt.Errorf("embedding index %d out of range", item.Index))
		}
		vectors[item.Index] = toVector(item.Embedding)
	}
	return vectors, nil
}

func (e *Embedder) EmbedQuery(ctx context.Context, text string) ([]float32, error) {
	vectors, err := e.Embed(ctx, []string{text})
	if err != nil {
		return nil, err
	}
	if len(vectors) == 0 {
		return nil, wrapProviderError(domain.ErrEmbedding, "embed query", fmt.Errorf("empty embedding result"))
	}
	return vectors[0], nil
}

func toVector(raw []float32) []float32 {
	out := make([]float32, len(raw))
	copy(out, raw)
	return out
}
