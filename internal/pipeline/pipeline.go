// Package pipeline wires the full flow together: normalize raw sources,
// rebuild the index, answer questions over it, and debate prior answers,
// all against one shared conversation log.
package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/ppiankov/cognitia/internal/cache"
	"github.com/ppiankov/cognitia/internal/conversation"
	"github.com/ppiankov/cognitia/internal/debate"
	"github.com/ppiankov/cognitia/internal/embed"
	"github.com/ppiankov/cognitia/internal/index"
	"github.com/ppiankov/cognitia/internal/llm"
	"github.com/ppiankov/cognitia/internal/model"
	"github.com/ppiankov/cognitia/internal/normalize"
	"github.com/ppiankov/cognitia/internal/retrieve"
	"github.com/ppiankov/cognitia/internal/synth"
)

// NoKnowledgeMessage is the answer given when retrieval comes back empty.
const NoKnowledgeMessage = "No relevant knowledge was found for your query. Try a different topic or question."

// DebatePrefix marks debate turns in the conversation log.
const DebatePrefix = "**Debate Response:**\n\n"

// Pipeline owns one research session: its working set, index,
// conversation log and provider clients.
type Pipeline struct {
	cfg        *model.Config
	logger     *logrus.Logger
	fetcher    Fetcher
	normalizer *normalize.Normalizer
	store      *index.Store
	retriever  *retrieve.Retriever
	synth      *synth.Synthesizer
	debater    *debate.Agent
	log        *conversation.Log
}

// Options overrides default component wiring, mainly for tests and
// embedding the pipeline in other programs.
type Options struct {
	// Fetcher acquires raw material per topic. Nil uses the disk
	// working set as-is.
	Fetcher Fetcher

	// Embedder overrides the configured embedding provider.
	Embedder embed.Embedder

	// Provider overrides the configured completion provider.
	Provider llm.Provider
}

// New builds a pipeline from the config, constructing providers for
// anything Options leaves nil.
func New(cfg *model.Config, logger *logrus.Logger, opts Options) (*Pipeline, error) {
	embedder := opts.Embedder
	if embedder == nil {
		e, err := embed.NewEmbedder(embed.Config{
			Provider: cfg.Embedding.Provider,
			Model:    cfg.Embedding.Model,
			APIKey:   cfg.Embedding.APIKey,
			BaseURL:  cfg.Embedding.BaseURL,
			Timeout:  time.Duration(cfg.Embedding.Timeout) * time.Second,
		})
		if err != nil {
			return nil, fmt.Errorf("create embedder: %w", err)
		}
		embedder = e
	}

	if cfg.Embedding.CacheDir != "" {
		layered := cache.NewLayeredCache(30*time.Minute, cfg.Embedding.CacheDir, 30*24*time.Hour)
		embedder = embed.NewCachedEmbedder(embedder, layered, 0)
	}

	provider := opts.Provider
	if provider == nil {
		p, err := llm.NewProvider(llm.Config{
			Provider:  cfg.LLM.Provider,
			Model:     cfg.LLM.Model,
			APIKey:    cfg.LLM.APIKey,
			BaseURL:   cfg.LLM.BaseURL,
			Timeout:   cfg.LLM.Timeout,
			MaxTokens: cfg.LLM.MaxTokens,
		})
		if err != nil {
			return nil, fmt.Errorf("create completion provider: %w", err)
		}
		provider = p
	}

	store, err := index.Open(cfg.Index.Path, cfg.Index.Collection, embedder, logger)
	if err != nil {
		return nil, fmt.Errorf("open index: %w", err)
	}

	return &Pipeline{
		cfg:        cfg,
		logger:     logger,
		fetcher:    opts.Fetcher,
		normalizer: normalize.New(cfg.Data, logger),
		store:      store,
		retriever:  retrieve.New(store, cfg.Index.TopK),
		synth:      synth.New(provider, cfg.Synthesis, logger),
		debater:    debate.New(provider, cfg.Debate.ContextBudget, logger),
		log:        conversation.NewLog(),
	}, nil
}

// PrepareResult reports what a Prepare pass did.
type PrepareResult struct {
	Processed int `json:"processed"`
	Skipped   int `json:"skipped"`
	Indexed   int `json:"indexed"`
}

// Prepare builds the knowledge base: optionally fetch raw material for
// the topic, normalize everything in the raw directories, and rebuild
// the index from the processed output.
func (p *Pipeline) Prepare(ctx context.Context, topic string) (*PrepareResult, error) {
	if p.fetcher != nil {
		if err := p.fetcher.FetchTopic(ctx, topic); err != nil {
			return nil, fmt.Errorf("fetch topic: %w", err)
		}
	}

	batch, err := p.normalizer.Run(ctx)
	if err != nil {
		return nil, fmt.Errorf("normalize documents: %w", err)
	}

	stored, err := normalize.ReadDir(p.cfg.Data.ProcessedDir)
	if err != nil {
		return nil, fmt.Errorf("read processed documents: %w", err)
	}

	docs := make([]model.NormalizedDocument, len(stored))
	for i, s := range stored {
		docs[i] = s.Doc
		// The processed file name, not the raw path, identifies the
		// chunk's source from here on.
		docs[i].SourceFile = s.Name
	}

	if err := p.store.Rebuild(ctx, docs); err != nil {
		return nil, fmt.Errorf("rebuild index: %w", err)
	}

	p.logger.WithFields(logrus.Fields{
		"topic":     topic,
		"processed": batch.Processed,
		"skipped":   batch.Skipped,
		"indexed":   len(docs),
	}).Info("knowledge base prepared")

	return &PrepareResult{
		Processed: batch.Processed,
		Skipped:   batch.Skipped,
		Indexed:   len(docs),
	}, nil
}

// Answer retrieves context for the question and synthesizes a reply.
// The question and the answer are always appended to the conversation
// log, and failures are reported inside the answer text so the log
// stays consistent turn for turn.
func (p *Pipeline) Answer(ctx context.Context, question string) string {
	p.log.Append(model.RoleUser, question)

	answer := p.answerText(ctx, question)

	p.log.Append(model.RoleAssistant, answer)
	return answer
}

func (p *Pipeline) answerText(ctx context.Context, question string) string {
	chunks, err := p.retriever.Retrieve(ctx, question)
	if err != nil {
		p.logger.WithField("error", err).Error("retrieval failed")
		return fmt.Sprintf("Retrieval failed: %v", err)
	}

	if len(chunks) == 0 {
		return NoKnowledgeMessage
	}

	answer, err := p.synth.Answer(ctx, question, chunks)
	if err != nil {
		p.logger.WithField("error", err).Error("synthesis failed")
		return fmt.Sprintf("Answer generation failed: %v", err)
	}
	return answer
}

// Debate challenges the most recent assistant answer. It fails with
// conversation.ErrNoAssistantTurn unless the last turn is an assistant
// answer; otherwise the formatted debate is appended as a new turn.
func (p *Pipeline) Debate(ctx context.Context) (model.DebateResult, string, error) {
	answer, err := p.log.LastAssistantTurn()
	if err != nil {
		return model.DebateResult{}, "", err
	}

	result := p.debater.Generate(ctx, answer)
	message := DebatePrefix + debate.FormatMarkdown(result)
	p.log.Append(model.RoleAssistant, message)

	return result, message, nil
}

// History returns a snapshot of the conversation so far.
func (p *Pipeline) History() []model.Turn {
	return p.log.History()
}

// Reset clears the conversation log. The index and working set are
// untouched.
func (p *Pipeline) Reset() {
	p.log.Reset()
}

// IndexedChunks reports how many chunks are currently indexed.
func (p *Pipeline) IndexedChunks(ctx context.Context) (int, error) {
	return p.store.Count(ctx)
}

// Close releases the index store.
func (p *Pipeline) Close() error {
	return p.store.Close()
}
