package llm

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"golang.org/x/sync/errgroup"
)

const (
	minSummaryInput = 10
	maxBullets      = 10

	NotEnoughContent = "Not enough content to summarize."
	SummaryFailed    = "Error generating summary. Please try again later."
)

var bulletMarkers = []string{"- ", "•", "* "}

const summaryPrompt = `Summarize the following text into 5-10 concise, informative bullet points that capture the key information:

%s

Format: Return ONLY the bullet points, one per line, each starting with "- ", with no additional text.`

type Summarizer struct {
	completer Completer
}

func NewSummarizer(completer Completer) *Summarizer {
	return &Summarizer{completer: completer}
}

// Summarize turns text into at most ten bullet points. It never fails: short
// input and model errors produce a single explanatory bullet.
func (s *Summarizer) Summarize(ctx context.Context, text string) []string {
	text = strings.TrimSpace(text)
	if len(text) < minSummaryInput {
		return []string{NotEnoughContent}
	}

	reply, err := s.completer.Complete(ctx, fmt.Sprintf(summaryPrompt, text))
	if err != nil {
		slog.Error("error in AI summarization", "model", s.completer.Model(), "error", err)
		return []string{SummaryFailed}
	}

	return ParseBullets(reply)
}

// SummarizeAll summarizes texts with at most limit calls in flight. The
// result is index-aligned with texts.
func (s *Summarizer) SummarizeAll(ctx context.Context, texts []string, limit int) [][]string {
	out := make([][]string, len(texts))

	g, gctx := errgroup.WithContext(ctx)
	if limit > 0 {
		g.SetLimit(limit)
	}

	for i, text := range texts {
		g.Go(func() error {
			out[i] = s.Summarize(gctx, text)
			return nil
		})
	}
	g.Wait()

	return out
}

// ParseBullets extracts bullet points from a model reply. Marked lines win;
// otherwise every non-empty line is a point; otherwise the whole reply is.
// A dash only marks a bullet when followed by a space, so rules like "---"
// and signed figures like "-5%" are left alone.
func ParseBullets(reply string) []string {
	lines := strings.Split(reply, "\n")

	var bullets []string
	for _, line := range lines {
		line = strings.TrimSpace(line)
		for _, marker := range bulletMarkers {
			if strings.HasPrefix(line, marker) {
				if point := strings.TrimSpace(strings.TrimPrefix(line, marker)); point != "" {
					bullets = append(bullets, point)
				}
				break
			}
		}
	}

	if len(bullets) == 0 {
		for _, line := range lines {
			if line = strings.TrimSpace(line); line != "" {
				bullets = append(bullets, line)
			}
		}
	}

	if len(bullets) == 0 {
		bullets = []string{strings.TrimSpace(reply)}
	}

	if len(bullets) > maxBullets {
		bullets = bullets[:maxBullets]
	}
	return bullets
}
