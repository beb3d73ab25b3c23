package rank

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testScorer() LocationScorer {
	return LocationScorer{
		Cities:    []string{"new york", "austin", "san francisco", "bengaluru"},
		States:    []string{"new york", "texas", "california", "illinois"},
		Countries: []string{"united states", "usa", "america"},
		Weights:   DefaultWeights(),
	}
}

func TestLocationScorer_Score(t *testing.T) {
	t.Parallel()

	s := testScorer()
	tests := []struct {
		text string
		want int
	}{
		{"NY", -20},
		{"New York, NY", 100 + 80 + 70 + 40},
		{"Austin, TX", 100 + 70},
		{"Remote", 60},
		{"Bengaluru, India", 100 + 50},
		{"Springfield, Illinois", 80 + 40},
		{"USA", 10 - 20},
		{"United States", 10},
	}
	for _, tt := range tests {
		got, _ := s.Score(tt.text)
		assert.Equal(t, tt.want, got, tt.text)
	}
}

func TestLocationScorer_ScoreTags(t *testing.T) {
	t.Parallel()

	_, tags := testScorer().Score("Remote - Austin, TX")
	assert.Equal(t, []string{"city", "state_code", "remote"}, tags)
}

func TestLocationScorer_BestPrefersFullerString(t *testing.T) {
	t.Parallel()

	best, ok := testScorer().Best([]string{"NY", "New York, NY"})
	require.True(t, ok)
	assert.Equal(t, "New York, NY", best.Text)
	assert.GreaterOrEqual(t, best.Score, 150)
}

func TestLocationScorer_BestStateCodeVsFullState(t *testing.T) {
	t.Parallel()

	for _, pair := range [][2]string{
		{"TX", "Houston, Texas"},
		{"CA", "Oakland, California"},
		{"IL", "Springfield, Illinois"},
	} {
		best, ok := testScorer().Best([]string{pair[0], pair[1]})
		require.True(t, ok)
		assert.Equal(t, pair[1], best.Text)
	}
}

func TestLocationScorer_TiesKeepFirstSeen(t *testing.T) {
	t.Parallel()

	best, ok := testScorer().Best([]string{"Remote - EMEA", "Remote - APAC"})
	require.True(t, ok)
	assert.Equal(t, "Remote - EMEA", best.Text)
}

func TestLocationScorer_RankDedupes(t *testing.T) {
	t.Parallel()

	ranked := testScorer().Rank([]string{"Remote", "Austin, TX", "Remote"})
	require.Len(t, ranked, 2)
	assert.Equal(t, "Remote", ranked[0].Text)
	assert.Equal(t, "Austin, TX", ranked[1].Text)

	_, ok := testScorer().Best(nil)
	assert.False(t, ok)
}
