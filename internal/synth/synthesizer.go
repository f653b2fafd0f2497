// Package synth turns retrieved chunks into an answer. The default mode
// summarizes each chunk separately and reduces the summaries into one
// response; a single-call mode stuffs everything into one prompt for
// small working sets.
package synth

import (
	"context"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/ppiankov/cognitia/internal/llm"
	"github.com/ppiankov/cognitia/internal/model"
	"github.com/ppiankov/cognitia/internal/worker"
)

// Synthesizer produces answers from retrieved chunks.
type Synthesizer struct {
	provider llm.Provider
	limiter  *worker.Limiter
	cfg      model.SynthesisConfig
	logger   *logrus.Logger
}

// New creates a synthesizer with the given provider and config.
func New(provider llm.Provider, cfg model.SynthesisConfig, logger *logrus.Logger) *Synthesizer {
	return &Synthesizer{
		provider: provider,
		limiter:  worker.NewLimiter(cfg.RequestsPerSecond, 1),
		cfg:      cfg,
		logger:   logger,
	}
}

// Answer synthesizes an answer to the question from the chunks. Callers
// must handle the empty-chunks case themselves; here it is an error.
func (s *Synthesizer) Answer(ctx context.Context, question string, chunks []model.ScoredChunk) (string, error) {
	if len(chunks) == 0 {
		return "", fmt.Errorf("no chunks to synthesize from")
	}

	switch s.cfg.Mode {
	case "single":
		return s.singleCall(ctx, question, chunks)
	case "", "mapreduce":
		return s.mapReduce(ctx, question, chunks)
	default:
		return "", fmt.Errorf("unknown synthesis mode: %s", s.cfg.Mode)
	}
}

func (s *Synthesizer) mapReduce(ctx context.Context, question string, chunks []model.ScoredChunk) (string, error) {
	summaries := s.mapStage(ctx, question, chunks)

	// One chunk means the map summary already is the answer.
	if len(summaries) == 1 {
		return summaries[0], nil
	}

	reply, err := s.complete(ctx, reducePrompt(question, summaries))
	if err != nil {
		return "", fmt.Errorf("reduce step failed: %w", err)
	}
	return reply, nil
}

// mapStage summarizes each chunk, preserving chunk order. A failed
// summary becomes an inline marker so one bad call does not sink the
// whole answer.
func (s *Synthesizer) mapStage(ctx context.Context, question string, chunks []model.ScoredChunk) []string {
	if s.cfg.MapWorkers <= 1 || len(chunks) == 1 {
		summaries := make([]string, len(chunks))
		for i, chunk := range chunks {
			summaries[i] = s.summarize(ctx, question, chunk)
		}
		return summaries
	}

	pool := worker.NewPool(s.cfg.MapWorkers, len(chunks))
	pool.Start()

	for i, chunk := range chunks {
		pool.Submit(&summarizeJob{synth: s, ctx: ctx, index: i, question: question, chunk: chunk})
	}

	summaries := make([]string, len(chunks))
	for _, result := range pool.Wait() {
		r := result.(*summarizeResult)
		summaries[r.index] = r.summary
	}
	return summaries
}

func (s *Synthesizer) summarize(ctx context.Context, question string, chunk model.ScoredChunk) string {
	reply, err := s.complete(ctx, mapPrompt(question, chunk.Text, s.cfg.ChunkBudget))
	if err != nil {
		s.logger.WithFields(logrus.Fields{
			"chunk": chunk.ID,
			"error": err,
		}).Warn("chunk summary failed")
		return fmt.Sprintf("[summary failed: %v]", err)
	}
	return reply
}

func (s *Synthesizer) singleCall(ctx context.Context, question string, chunks []model.ScoredChunk) (string, error) {
	texts := make([]string, len(chunks))
	for i, chunk := range chunks {
		texts[i] = chunk.Text
	}
	joined := truncate(strings.Join(texts, chunkSeparator), s.cfg.ContextBudget)

	reply, err := s.complete(ctx, singleCallPrompt(question, joined))
	if err != nil {
		return "", fmt.Errorf("synthesis failed: %w", err)
	}
	return reply, nil
}

// complete paces the call through the limiter and treats a blank reply
// as a provider failure.
func (s *Synthesizer) complete(ctx context.Context, prompt string) (string, error) {
	if err := s.limiter.Wait(ctx); err != nil {
		return "", err
	}

	reply, err := s.provider.Complete(ctx, prompt)
	if err != nil {
		return "", err
	}

	reply = strings.TrimSpace(reply)
	if reply == "" {
		return "", fmt.Errorf("provider %s returned an empty reply", s.provider.Name())
	}
	return reply, nil
}

type summarizeJob struct {
	synth    *Synthesizer
	ctx      context.Context
	index    int
	question string
	chunk    model.ScoredChunk
}

func (j *summarizeJob) Execute(_ context.Context) worker.Result {
	return &summarizeResult{
		index:   j.index,
		summary: j.synth.summarize(j.ctx, j.question, j.chunk),
	}
}

type summarizeResult struct {
	index   int
	summary string
}

func (r *summarizeResult) GetError() error { return nil }
