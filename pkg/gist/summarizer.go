package gist

import (
	"context"
	"fmt"
	"strings"

	"mentorlink-be/pkg/llm"
)

// FallbackGist is returned when the model is unreachable or errors, so session
// finalization never fails on summarization alone.
const FallbackGist = "Summary unavailable. Refer to the transcript for details."

// Summarizer produces the evolving natural-language summary of a session's
// transcript. Summarize never returns an error: on model failure it degrades
// to FallbackGist.
type Summarizer interface {
	Summarize(ctx context.Context, transcript string, previousGist string) string
}

type llmSummarizer struct {
	provider llm.LLMProvider
}

func NewSummarizer(provider llm.LLMProvider) Summarizer {
	return &llmSummarizer{provider: provider}
}

func (s *llmSummarizer) Summarize(ctx context.Context, transcript string, previousGist string) string {
	if strings.TrimSpace(transcript) == "" {
		if previousGist != "" {
			return previousGist
		}
		return FallbackGist
	}

	prompt := buildPrompt(transcript, previousGist)

	out, err := s.provider.Generate(ctx, prompt,
		llm.WithTemperature(0.3),
		llm.WithMaxTokens(300),
	)
	if err != nil || strings.TrimSpace(out) == "" {
		return FallbackGist
	}

	return strings.TrimSpace(out)
}

func buildPrompt(transcript, previousGist string) string {
	var b strings.Builder
	b.WriteString("You summarize tutoring sessions between a learner and an educator.\n")
	if previousGist != "" {
		fmt.Fprintf(&b, "Summary so far:\n%s\n\n", previousGist)
		b.WriteString("Update the summary to incorporate the new transcript below. ")
	} else {
		b.WriteString("Write a concise summary of the transcript below. ")
	}
	b.WriteString("Keep it under 120 words and in plain prose.\n\n")
	fmt.Fprintf(&b, "Transcript:\n%s\n", transcript)
	return b.String()
}
