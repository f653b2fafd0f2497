package synth

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/ppiankov/cognitia/internal/model"
)

// scriptedProvider answers prompts by matching substrings, recording
// every prompt it sees.
type scriptedProvider struct {
	mu      sync.Mutex
	prompts []string
	answer  func(prompt string) (string, error)
}

func (p *scriptedProvider) Name() string { return "scripted" }

func (p *scriptedProvider) IsAvailable(_ context.Context) bool { return true }

func (p *scriptedProvider) Complete(_ context.Context, prompt string) (string, error) {
	p.mu.Lock()
	p.prompts = append(p.prompts, prompt)
	p.mu.Unlock()
	return p.answer(prompt)
}

func (p *scriptedProvider) seen() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]string(nil), p.prompts...)
}

func quietLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func chunk(id, text string) model.ScoredChunk {
	return model.ScoredChunk{Chunk: model.Chunk{ID: id, Text: text, Source: id}}
}

func TestAnswerRequiresChunks(t *testing.T) {
	s := New(&scriptedProvider{answer: func(string) (string, error) { return "x", nil }},
		model.SynthesisConfig{}, quietLogger())

	if _, err := s.Answer(context.Background(), "q", nil); err == nil {
		t.Error("expected error for empty chunk list")
	}
}

func TestSingleChunkSkipsReduce(t *testing.T) {
	provider := &scriptedProvider{answer: func(prompt string) (string, error) {
		if strings.Contains(prompt, "SUMMARIES:") {
			return "", fmt.Errorf("reduce should not run for one chunk")
		}
		return "the only summary", nil
	}}
	s := New(provider, model.SynthesisConfig{Mode: "mapreduce"}, quietLogger())

	got, err := s.Answer(context.Background(), "q", []model.ScoredChunk{chunk("doc_0", "text")})
	if err != nil {
		t.Fatalf("Answer failed: %v", err)
	}
	if got != "the only summary" {
		t.Errorf("Answer = %q, want the map summary unchanged", got)
	}
	if len(provider.seen()) != 1 {
		t.Errorf("expected exactly one provider call, got %d", len(provider.seen()))
	}
}

func TestMapReducePreservesChunkOrder(t *testing.T) {
	provider := &scriptedProvider{answer: func(prompt string) (string, error) {
		if strings.Contains(prompt, "SUMMARIES:") {
			return "final answer", nil
		}
		switch {
		case strings.Contains(prompt, "alpha text"):
			return "summary-alpha", nil
		case strings.Contains(prompt, "beta text"):
			return "summary-beta", nil
		default:
			return "summary-other", nil
		}
	}}
	s := New(provider, model.SynthesisConfig{Mode: "mapreduce", MapWorkers: 4}, quietLogger())

	chunks := []model.ScoredChunk{chunk("doc_0", "alpha text"), chunk("doc_1", "beta text")}
	got, err := s.Answer(context.Background(), "q", chunks)
	if err != nil {
		t.Fatalf("Answer failed: %v", err)
	}
	if got != "final answer" {
		t.Errorf("Answer = %q, want %q", got, "final answer")
	}

	var reduce string
	for _, prompt := range provider.seen() {
		if strings.Contains(prompt, "SUMMARIES:") {
			reduce = prompt
		}
	}
	if reduce == "" {
		t.Fatal("no reduce prompt observed")
	}
	alpha := strings.Index(reduce, "summary-alpha")
	beta := strings.Index(reduce, "summary-beta")
	if alpha < 0 || beta < 0 || alpha > beta {
		t.Errorf("summaries out of order in reduce prompt (alpha=%d beta=%d)", alpha, beta)
	}
}

func TestMapStageHandlesMoreChunksThanWorkers(t *testing.T) {
	provider := &scriptedProvider{answer: func(prompt string) (string, error) {
		if strings.Contains(prompt, "SUMMARIES:") {
			return "final answer", nil
		}
		return "summary", nil
	}}
	s := New(provider, model.SynthesisConfig{Mode: "mapreduce", MapWorkers: 2}, quietLogger())

	chunks := make([]model.ScoredChunk, 20)
	for i := range chunks {
		chunks[i] = chunk(fmt.Sprintf("doc_%d", i), fmt.Sprintf("text %d", i))
	}

	done := make(chan struct{})
	var got string
	var err error
	go func() {
		got, err = s.Answer(context.Background(), "q", chunks)
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(10 * time.Second):
		t.Fatal("Answer did not return with more chunks than workers")
	}
	if err != nil {
		t.Fatalf("Answer failed: %v", err)
	}
	if got != "final answer" {
		t.Errorf("Answer = %q, want %q", got, "final answer")
	}
	if calls := len(provider.seen()); calls != len(chunks)+1 {
		t.Errorf("provider calls = %d, want %d map calls plus one reduce", calls, len(chunks)+1)
	}
}

func TestMapFailureBecomesInlineMarker(t *testing.T) {
	provider := &scriptedProvider{answer: func(prompt string) (string, error) {
		if strings.Contains(prompt, "SUMMARIES:") {
			return "final answer", nil
		}
		if strings.Contains(prompt, "broken text") {
			return "", fmt.Errorf("model overloaded")
		}
		return "good summary", nil
	}}
	s := New(provider, model.SynthesisConfig{Mode: "mapreduce"}, quietLogger())

	chunks := []model.ScoredChunk{chunk("doc_0", "good text"), chunk("doc_1", "broken text")}
	got, err := s.Answer(context.Background(), "q", chunks)
	if err != nil {
		t.Fatalf("Answer failed: %v", err)
	}
	if got != "final answer" {
		t.Errorf("Answer = %q, want %q", got, "final answer")
	}

	var reduce string
	for _, prompt := range provider.seen() {
		if strings.Contains(prompt, "SUMMARIES:") {
			reduce = prompt
		}
	}
	if !strings.Contains(reduce, "[summary failed: ") {
		t.Errorf("reduce prompt should carry the inline failure marker, got: %s", reduce)
	}
}

func TestReduceFailureSurfaces(t *testing.T) {
	provider := &scriptedProvider{answer: func(prompt string) (string, error) {
		if strings.Contains(prompt, "SUMMARIES:") {
			return "", fmt.Errorf("model overloaded")
		}
		return "summary", nil
	}}
	s := New(provider, model.SynthesisConfig{Mode: "mapreduce"}, quietLogger())

	chunks := []model.ScoredChunk{chunk("doc_0", "a"), chunk("doc_1", "b")}
	if _, err := s.Answer(context.Background(), "q", chunks); err == nil {
		t.Error("expected reduce failure to surface")
	}
}

func TestSingleCallTruncatesContext(t *testing.T) {
	provider := &scriptedProvider{answer: func(string) (string, error) { return "answer", nil }}
	s := New(provider, model.SynthesisConfig{Mode: "single", ContextBudget: 10}, quietLogger())

	long := strings.Repeat("x", 100)
	if _, err := s.Answer(context.Background(), "q", []model.ScoredChunk{chunk("doc_0", long)}); err != nil {
		t.Fatalf("Answer failed: %v", err)
	}

	prompt := provider.seen()[0]
	if strings.Contains(prompt, strings.Repeat("x", 11)) {
		t.Error("context was not truncated to the budget")
	}
	if !strings.Contains(prompt, strings.Repeat("x", 10)) {
		t.Error("truncated context missing from prompt")
	}
}

func TestSingleCallEmptyReplyIsError(t *testing.T) {
	provider := &scriptedProvider{answer: func(string) (string, error) { return "   ", nil }}
	s := New(provider, model.SynthesisConfig{Mode: "single"}, quietLogger())

	if _, err := s.Answer(context.Background(), "q", []model.ScoredChunk{chunk("doc_0", "text")}); err == nil {
		t.Error("expected blank reply to be treated as a failure")
	}
}

func TestMapPromptTruncatesChunk(t *testing.T) {
	got := mapPrompt("q", strings.Repeat("y", 50), 5)
	if strings.Contains(got, strings.Repeat("y", 6)) {
		t.Error("chunk was not truncated to the budget")
	}
}
