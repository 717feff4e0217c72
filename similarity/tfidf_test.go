package similarity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenize(t *testing.T) {
	t.Run("lowercases and drops short tokens", func(t *testing.T) {
		assert.Equal(t, []string{"gateway", "timeout"}, Tokenize("Gateway TIMEOUT, x y!"))
	})

	t.Run("drops stop words", func(t *testing.T) {
		assert.Equal(t, []string{"timeout", "observed", "production"},
			Tokenize("the timeout was observed again in production"))
	})

	t.Run("splits on non-word characters", func(t *testing.T) {
		assert.Equal(t, []string{"high", "latency", "calls"}, Tokenize("high-latency calls"))
	})

	t.Run("empty input", func(t *testing.T) {
		assert.Empty(t, Tokenize(""))
		assert.Empty(t, Tokenize("a I at"))
	})
}

func TestNgramCounts(t *testing.T) {
	counts := ngramCounts("gateway timeout gateway")
	assert.Equal(t, map[string]int{
		"gateway":         2,
		"timeout":         1,
		"gateway timeout": 1,
		"timeout gateway": 1,
	}, counts)

	// Bigrams form after stop-word removal, so filtered-out words bridge
	// their neighbors.
	counts = ngramCounts("gateway and the timeout")
	assert.Equal(t, 1, counts["gateway timeout"])
}

func TestSimilarities(t *testing.T) {
	t.Run("empty corpus", func(t *testing.T) {
		assert.Empty(t, Similarities(nil, "anything"))
	})

	t.Run("identical document scores highest", func(t *testing.T) {
		corpus := []string{
			"gateway timeout threshold misconfigured",
			"duplicate records in import batch",
		}
		scores := Similarities(corpus, "gateway timeout threshold misconfigured")
		require.Len(t, scores, 2)
		assert.InDelta(t, 1.0, scores[0], 1e-9)
		assert.Less(t, scores[1], scores[0])
	})

	t.Run("disjoint documents score zero", func(t *testing.T) {
		scores := Similarities([]string{"payment webhook signature"}, "telemetry export stalled")
		require.Len(t, scores, 1)
		assert.InDelta(t, 0.0, scores[0], 1e-9)
	})

	t.Run("scores stay within unit range", func(t *testing.T) {
		corpus := []string{
			"timeout issue gateway",
			"gateway timeout threshold misconfigured",
			"unrelated reporting defect",
		}
		scores := Similarities(corpus, "gateway timeout in production")
		require.Len(t, scores, 3)
		for _, s := range scores {
			assert.GreaterOrEqual(t, s, 0.0)
			assert.LessOrEqual(t, s, 1.0+1e-9)
		}
		assert.Greater(t, scores[0], 0.0)
		assert.Greater(t, scores[1], 0.0)
	})

	t.Run("shared bigram outranks shared unigrams", func(t *testing.T) {
		corpus := []string{
			"gateway timeout threshold",
			"timeout retry gateway backoff",
		}
		scores := Similarities(corpus, "gateway timeout observed")
		require.Len(t, scores, 2)
		assert.Greater(t, scores[0], scores[1])
	})

	t.Run("empty query", func(t *testing.T) {
		scores := Similarities([]string{"gateway timeout"}, "")
		require.Len(t, scores, 1)
		assert.InDelta(t, 0.0, scores[0], 1e-9)
	})
}
