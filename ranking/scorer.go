package ranking

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"regexp"
	"strings"
	"time"

	"github.com/poiesic/docsift/ai"
)

// Section-mode fusion weights. Fixed behavioral constants: semantic
// understanding dominates, exact keyword matches second, document position
// third, length normalization last.
const (
	weightSemantic = 0.65
	weightKeyword  = 0.20
	weightPosition = 0.10
	weightLength   = 0.05
)

// Sub-passage-mode fusion weights. Paragraphs within an already-selected
// section are compared on topical and lexical relevance only.
const (
	subWeightSemantic = 0.8
	subWeightKeyword  = 0.2
)

const (
	// phraseBoost is added to the keyword score for every query 2-gram or
	// 3-gram appearing verbatim in the text.
	phraseBoost = 0.1

	// optimalWordsMin and optimalWordsMax bound the word-count band that
	// earns the full length score.
	optimalWordsMin = 200
	optimalWordsMax = 500
)

// meaningfulWord matches runs of 3+ alphabetic characters.
var meaningfulWord = regexp.MustCompile(`[a-zA-Z]{3,}`)

// Scorer computes hybrid relevance scores against a persona query.
// It is stateless across ranking passes; embeddings are fetched per pass
// in a single batch.
type Scorer struct {
	embedder       ai.Embedder
	maxRetries     int
	retryBaseDelay time.Duration
	logger         *slog.Logger
}

// ScorerOption configures a Scorer.
type ScorerOption func(*Scorer) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) ScorerOption {
	return func(s *Scorer) error {
		if logger == nil {
			logger = slog.Default()
		}
		s.logger = logger
		return nil
	}
}

// WithRetry configures retry behavior for embedding calls.
// Defaults are 3 attempts with a 1s base delay.
func WithRetry(maxAttempts int, baseDelay time.Duration) ScorerOption {
	return func(s *Scorer) error {
		if maxAttempts <= 0 {
			return ErrInvalidMaxAttempts
		}
		s.maxRetries = maxAttempts
		s.retryBaseDelay = baseDelay
		return nil
	}
}

// NewScorer creates a hybrid relevance scorer.
func NewScorer(embedder ai.Embedder, opts ...ScorerOption) (*Scorer, error) {
	if embedder == nil {
		return nil, ErrEmbedderRequired
	}

	s := &Scorer{
		embedder:       embedder,
		maxRetries:     3,
		retryBaseDelay: time.Second,
		logger:         slog.Default(),
	}
	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// embedBatch embeds all candidate texts in one call plus the query in one
// call, retrying each with backoff. An exhausted retry is fatal for the
// run: the semantic signal dominates the fusion weights and has no
// heuristic substitute.
func (s *Scorer) embedBatch(ctx context.Context, query string, texts []string) (queryVec []float32, textVecs [][]float32, err error) {
	err = RetryWithBackoff(ctx, func() error {
		var embedErr error
		textVecs, embedErr = s.embedder.EmbedTexts(ctx, texts)
		return embedErr
	}, s.maxRetries, s.retryBaseDelay)
	if err != nil {
		s.logger.Error("error generating embeddings for candidates", "count", len(texts), "err", err)
		return nil, nil, fmt.Errorf("embedding candidates: %w", err)
	}
	if len(textVecs) != len(texts) {
		return nil, nil, fmt.Errorf("embedding result mismatch. expected %d, received %d", len(texts), len(textVecs))
	}

	err = RetryWithBackoff(ctx, func() error {
		var embedErr error
		queryVec, embedErr = s.embedder.EmbedText(ctx, query)
		return embedErr
	}, s.maxRetries, s.retryBaseDelay)
	if err != nil {
		s.logger.Error("error generating embedding for query", "err", err)
		return nil, nil, fmt.Errorf("embedding query: %w", err)
	}

	return queryVec, textVecs, nil
}

// sectionScore fuses all four signals for one section-mode candidate.
func sectionScore(semantic, keyword, position, length float64) float64 {
	return weightSemantic*semantic +
		weightKeyword*keyword +
		weightPosition*position +
		weightLength*length
}

// subsectionScore fuses the sub-passage-mode signals for one paragraph.
func subsectionScore(semantic, keyword float64) float64 {
	return subWeightSemantic*semantic + subWeightKeyword*keyword
}

// keywordScore computes Jaccard similarity between the meaningful-word
// sets of query and text, boosted by verbatim phrase matches and clamped
// to 1.0.
func keywordScore(query, text string) float64 {
	queryWords := keywordSet(query)
	textWords := keywordSet(text)
	if len(queryWords) == 0 || len(textWords) == 0 {
		return 0
	}

	intersection := 0
	for word := range queryWords {
		if textWords[word] {
			intersection++
		}
	}
	union := len(queryWords) + len(textWords) - intersection
	jaccard := float64(intersection) / float64(union)

	// Boost for exact phrase matches, computed from the raw lower-cased
	// query rather than the filtered keyword set.
	queryLower := strings.ToLower(query)
	textLower := strings.ToLower(text)
	boost := 0.0
	for _, phrase := range append(ngrams(queryLower, 2), ngrams(queryLower, 3)...) {
		if strings.Contains(textLower, phrase) {
			boost += phraseBoost
		}
	}

	return math.Min(1.0, jaccard+boost)
}

// keywordSet extracts the set of meaningful words from text.
func keywordSet(text string) map[string]bool {
	words := meaningfulWord.FindAllString(strings.ToLower(text), -1)
	set := make(map[string]bool, len(words))
	for _, word := range words {
		set[word] = true
	}
	return set
}

// ngrams returns the contiguous n-word phrases of text.
func ngrams(text string, n int) []string {
	words := strings.Fields(text)
	if len(words) < n {
		return nil
	}
	phrases := make([]string, 0, len(words)-n+1)
	for i := 0; i+n <= len(words); i++ {
		phrases = append(phrases, strings.Join(words[i:i+n], " "))
	}
	return phrases
}

// positionScore encodes the heuristic that earlier pages are likelier to
// carry overview content, diminishing smoothly with page number.
func positionScore(page int) float64 {
	return math.Min(1.0, 1.0/math.Sqrt(float64(page)))
}

// lengthScore prefers moderate-length text: very short sections lack
// substance, very long ones risk being whole-document dumps.
func lengthScore(text string) float64 {
	words := len(strings.Fields(text))
	switch {
	case words >= optimalWordsMin && words <= optimalWordsMax:
		return 1.0
	case words < optimalWordsMin:
		return float64(words) / optimalWordsMin
	default:
		return optimalWordsMax / float64(words)
	}
}
