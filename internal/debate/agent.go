// Package debate challenges a previous answer by asking the completion
// provider for a structured rebuttal and parsing it into support,
// counter and reflection sections.
package debate

import (
	"context"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/ppiankov/cognitia/internal/llm"
	"github.com/ppiankov/cognitia/internal/model"
)

// Agent generates structured debates over prior answers.
type Agent struct {
	provider llm.Provider
	budget   int
	logger   *logrus.Logger
}

// New creates a debate agent. budget caps how much of the prior answer
// goes into the prompt, in runes.
func New(provider llm.Provider, budget int, logger *logrus.Logger) *Agent {
	return &Agent{
		provider: provider,
		budget:   budget,
		logger:   logger,
	}
}

// Generate produces a debate over the given answer text. Failures never
// propagate as errors: a provider failure yields an upstream-error
// result and an unparseable reply yields a parse-error result carrying
// the raw text.
func (a *Agent) Generate(ctx context.Context, answer string) model.DebateResult {
	reply, err := a.provider.Complete(ctx, debatePrompt(truncateRunes(answer, a.budget)))
	if err != nil {
		a.logger.WithField("error", err).Warn("debate generation failed")
		return model.DebateResult{
			Status: model.DebateUpstreamError,
			Raw:    err.Error(),
		}
	}

	reply = strings.TrimSpace(reply)
	if reply == "" {
		return model.DebateResult{
			Status: model.DebateUpstreamError,
			Raw:    fmt.Sprintf("provider %s returned an empty reply", a.provider.Name()),
		}
	}

	sections, missing := Segment(reply)
	if len(missing) > 0 {
		a.logger.WithField("missing", missing).Warn("debate reply did not segment")
		return model.DebateResult{
			Status: model.DebateParseError,
			Raw:    reply,
		}
	}

	return model.DebateResult{
		Support:    sections[SectionSupport],
		Counter:    sections[SectionCounter],
		Reflection: sections[SectionReflection],
		Status:     model.DebateOK,
	}
}

// FormatMarkdown renders a debate result for display. Error results show
// what went wrong alongside any raw reply.
func FormatMarkdown(result model.DebateResult) string {
	switch result.Status {
	case model.DebateOK:
		var b strings.Builder
		fmt.Fprintf(&b, "**Support:**\n%s\n\n**Counterpoint:**\n%s", result.Support, result.Counter)
		if result.Reflection != "" {
			fmt.Fprintf(&b, "\n\n**Reflection:**\n%s", result.Reflection)
		}
		return b.String()
	case model.DebateParseError:
		return fmt.Sprintf("The debate reply could not be parsed into sections. Raw reply:\n\n%s", result.Raw)
	default:
		return fmt.Sprintf("The debate could not be generated: %s", result.Raw)
	}
}

func debatePrompt(answer string) string {
	return fmt.Sprintf(`Critically examine the following answer. Respond with exactly three sections, each starting on its own line with the section name and a colon.

Support: the strongest evidence and reasoning backing the answer.
Counterpoint: the strongest objection or alternative reading.
Reflection: what a careful reader should conclude after weighing both.

ANSWER:
%s`, answer)
}

func truncateRunes(s string, budget int) string {
	if budget <= 0 {
		return s
	}
	runes := []rune(s)
	if len(runes) <= budget {
		return s
	}
	return string(runes[:budget])
}
