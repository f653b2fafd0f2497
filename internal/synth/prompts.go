package synth

import (
	"fmt"
	"strings"
)

// chunkSeparator joins per-chunk material in prompts and in assembled
// map summaries.
const chunkSeparator = "\n\n---\n\n"

func mapPrompt(question, chunk string, budget int) string {
	return fmt.Sprintf(`Summarize the following source material, keeping only what is relevant to the question.

QUESTION:
%s

SOURCE:
%s

SUMMARY:`, question, truncate(chunk, budget))
}

func reducePrompt(question string, summaries []string) string {
	return fmt.Sprintf(`You are given summaries of several sources, separated by "---". Synthesize them into a single coherent answer to the question. Do not invent facts beyond the summaries.

QUESTION:
%s

SUMMARIES:
%s

ANSWER:`, question, strings.Join(summaries, chunkSeparator))
}

func singleCallPrompt(question, context string) string {
	return fmt.Sprintf(`Answer the question using only the context below. If the context does not contain the answer, say so.

CONTEXT:
%s

QUESTION:
%s

ANSWER:`, context, question)
}

// truncate cuts s to at most budget runes. Non-positive budgets leave s
// untouched.
func truncate(s string, budget int) string {
	if budget <= 0 {
		return s
	}
	runes := []rune(s)
	if len(runes) <= budget {
		return s
	}
	return string(runes[:budget])
}
