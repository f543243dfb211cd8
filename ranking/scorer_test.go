package ranking

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/poiesic/docsift/ai/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewScorer(t *testing.T) {
	t.Run("requires embedder", func(t *testing.T) {
		_, err := NewScorer(nil)
		assert.ErrorIs(t, err, ErrEmbedderRequired)
	})

	t.Run("rejects non-positive retry attempts", func(t *testing.T) {
		_, err := NewScorer(mock.NewMockEmbedder(), WithRetry(0, time.Second))
		assert.ErrorIs(t, err, ErrInvalidMaxAttempts)
	})

	t.Run("applies options", func(t *testing.T) {
		s, err := NewScorer(mock.NewMockEmbedder(),
			WithRetry(5, 10*time.Millisecond), WithLogger(nil))
		require.NoError(t, err)
		assert.Equal(t, 5, s.maxRetries)
		assert.Equal(t, 10*time.Millisecond, s.retryBaseDelay)
		assert.NotNil(t, s.logger)
	})
}

func TestEmbedBatch(t *testing.T) {
	t.Run("retries transient failures", func(t *testing.T) {
		embedder := mock.NewMockEmbedder()
		failures := 2
		embedder.EmbedTextsFunc = func(ctx context.Context, texts []string) ([][]float32, error) {
			if failures > 0 {
				failures--
				return nil, errors.New("connection refused")
			}
			return [][]float32{{1, 0}, {0, 1}}, nil
		}
		embedder.EmbedTextFunc = func(ctx context.Context, text string) ([]float32, error) {
			return []float32{1, 0}, nil
		}

		s, err := NewScorer(embedder, WithRetry(3, time.Millisecond))
		require.NoError(t, err)

		queryVec, textVecs, err := s.embedBatch(context.Background(), "q", []string{"a", "b"})
		require.NoError(t, err)
		assert.Len(t, queryVec, 2)
		assert.Len(t, textVecs, 2)
	})

	t.Run("fails when retries are exhausted", func(t *testing.T) {
		embedder := mock.NewMockEmbedder()
		embedder.EmbedTextsFunc = func(ctx context.Context, texts []string) ([][]float32, error) {
			return nil, errors.New("connection refused")
		}

		s, err := NewScorer(embedder, WithRetry(2, time.Millisecond))
		require.NoError(t, err)

		_, _, err = s.embedBatch(context.Background(), "q", []string{"a"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "embedding candidates")
	})

	t.Run("detects result count mismatch", func(t *testing.T) {
		embedder := mock.NewMockEmbedder()
		embedder.EmbedTextsFunc = func(ctx context.Context, texts []string) ([][]float32, error) {
			return [][]float32{{1, 0}}, nil
		}

		s, err := NewScorer(embedder, WithRetry(1, time.Millisecond))
		require.NoError(t, err)

		_, _, err = s.embedBatch(context.Background(), "q", []string{"a", "b"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "mismatch")
	})
}

func TestKeywordScore(t *testing.T) {
	t.Run("identical text scores 1.0", func(t *testing.T) {
		text := "quarterly revenue analysis"
		assert.InDelta(t, 1.0, keywordScore(text, text), 1e-9)
	})

	t.Run("disjoint vocabularies score 0", func(t *testing.T) {
		assert.Zero(t, keywordScore("alpha beta gamma", "delta epsilon zeta"))
	})

	t.Run("empty query scores 0", func(t *testing.T) {
		assert.Zero(t, keywordScore("", "some text here"))
		assert.Zero(t, keywordScore("some text here", ""))
	})

	t.Run("short words are ignored", func(t *testing.T) {
		// "a", "of", "is" are below the meaningful-word threshold.
		assert.Zero(t, keywordScore("a of is", "a of is and the text"))
	})

	t.Run("case insensitive", func(t *testing.T) {
		assert.InDelta(t, 1.0, keywordScore("Revenue GROWTH", "revenue growth"), 1e-9)
	})

	t.Run("phrase match boosts score", func(t *testing.T) {
		query := "revenue growth analysis"
		withPhrase := "the revenue growth analysis for this quarter was strong overall"
		scrambled := "the growth for revenue was strong overall in this analysis quarter"
		assert.Greater(t, keywordScore(query, withPhrase), keywordScore(query, scrambled))
	})

	t.Run("score is clamped to 1.0", func(t *testing.T) {
		// A long query embedded verbatim produces many matching 2-grams and
		// 3-grams; each adds phraseBoost, so the raw sum far exceeds 1.
		query := "one two three four five six seven eight nine ten eleven twelve"
		text := query + " plus trailing context"
		assert.Equal(t, 1.0, keywordScore(query, text))
	})
}

func TestKeywordSet(t *testing.T) {
	set := keywordSet("The Financial analyst, aged 42, re-ran the analysis")
	assert.True(t, set["financial"])
	assert.True(t, set["analyst"])
	assert.True(t, set["analysis"])
	assert.True(t, set["the"])
	assert.False(t, set["42"])
	assert.False(t, set["re"], "two-letter fragments are not meaningful words")
}

func TestNgrams(t *testing.T) {
	assert.Equal(t, []string{"a b", "b c", "c d"}, ngrams("a b c d", 2))
	assert.Equal(t, []string{"a b c", "b c d"}, ngrams("a b c d", 3))
	assert.Nil(t, ngrams("single", 2))
	assert.Nil(t, ngrams("", 2))
}

func TestPositionScore(t *testing.T) {
	assert.Equal(t, 1.0, positionScore(1))
	assert.InDelta(t, 0.5, positionScore(4), 1e-9)

	// Strictly decreasing over increasing page numbers.
	prev := positionScore(1)
	for page := 2; page <= 20; page++ {
		current := positionScore(page)
		assert.Less(t, current, prev, "page %d", page)
		prev = current
	}
}

func TestLengthScore(t *testing.T) {
	words := func(n int) string {
		return strings.Repeat("word ", n)
	}

	t.Run("optimal band scores 1.0", func(t *testing.T) {
		assert.Equal(t, 1.0, lengthScore(words(200)))
		assert.Equal(t, 1.0, lengthScore(words(350)))
		assert.Equal(t, 1.0, lengthScore(words(500)))
	})

	t.Run("short text scales linearly", func(t *testing.T) {
		assert.InDelta(t, 0.5, lengthScore(words(100)), 1e-9)
		assert.InDelta(t, 0.25, lengthScore(words(50)), 1e-9)
		assert.Zero(t, lengthScore(""))
	})

	t.Run("long text decays", func(t *testing.T) {
		assert.InDelta(t, 0.5, lengthScore(words(1000)), 1e-9)
		assert.Greater(t, lengthScore(words(600)), lengthScore(words(1200)))
	})

	t.Run("rises toward the band from both sides", func(t *testing.T) {
		for _, n := range []int{10, 100, 199} {
			assert.Less(t, lengthScore(words(n)), 1.0, fmt.Sprintf("%d words", n))
		}
		for _, n := range []int{501, 800, 2000} {
			assert.Less(t, lengthScore(words(n)), 1.0, fmt.Sprintf("%d words", n))
		}
	})
}

func TestScoreFusion(t *testing.T) {
	t.Run("section weights sum to one", func(t *testing.T) {
		assert.InDelta(t, 1.0, sectionScore(1, 1, 1, 1), 1e-9)
	})

	t.Run("section weight ordering", func(t *testing.T) {
		semantic := sectionScore(1, 0, 0, 0)
		keyword := sectionScore(0, 1, 0, 0)
		position := sectionScore(0, 0, 1, 0)
		length := sectionScore(0, 0, 0, 1)
		assert.Greater(t, semantic, keyword)
		assert.Greater(t, keyword, position)
		assert.Greater(t, position, length)
	})

	t.Run("subsection weights sum to one", func(t *testing.T) {
		assert.InDelta(t, 1.0, subsectionScore(1, 1), 1e-9)
		assert.Greater(t, subsectionScore(1, 0), subsectionScore(0, 1))
	})
}
