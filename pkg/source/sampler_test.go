package source

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/japaniel/lexiquest/internal/apitest"
	"github.com/japaniel/lexiquest/pkg/api"
	"github.com/japaniel/lexiquest/pkg/wordlist"
)

// reverse is a deterministic Shuffler.
var reverse = ShuffleFunc(func(n int, swap func(i, j int)) {
	for i, j := 0, n-1; i < j; i, j = i+1, j-1 {
		swap(i, j)
	}
})

func TestSample_StaticLimits(t *testing.T) {
	src := staticFS(map[string]string{"wordlists/daily/basic.txt": words(25)})
	r := NewResolver(api.FixedProber(api.ModeStatic), nil, src, apitest.Logger())
	s := NewSampler(r, nil, apitest.Logger())

	tests := []struct {
		limit int
		want  int
	}{
		{limit: 5, want: 5},
		{limit: 0, want: DefaultLimit},
		{limit: -3, want: DefaultLimit},
		{limit: 25, want: 25},
		{limit: 100, want: 25},
	}
	for _, tt := range tests {
		got, err := s.Sample(context.Background(), daily, tt.limit)
		require.NoError(t, err)
		assert.Len(t, got, tt.want, "limit %d", tt.limit)

		seen := map[string]bool{}
		for _, e := range got {
			assert.False(t, seen[e.Word], "duplicate %s", e.Word)
			seen[e.Word] = true
		}
	}
}

func TestSample_InjectedShuffler(t *testing.T) {
	src := staticFS(map[string]string{"wordlists/daily/basic.txt": words(4)})
	r := NewResolver(api.FixedProber(api.ModeStatic), nil, src, apitest.Logger())

	got, err := NewSampler(r, reverse, apitest.Logger()).Sample(context.Background(), daily, 2)
	require.NoError(t, err)
	assert.Equal(t, []string{"d", "c"}, []string{got[0].Word, got[1].Word})
}

func TestSample_APIResultTruncated(t *testing.T) {
	remote := &fakeRemote{random: make([]wordlist.Entry, 12)}
	r := NewResolver(api.FixedProber(api.ModeAPI), remote, staticFS(nil), apitest.Logger())

	got, err := NewSampler(r, reverse, apitest.Logger()).Sample(context.Background(), daily, 0)
	require.NoError(t, err)
	assert.Len(t, got, DefaultLimit)
	assert.Equal(t, DefaultLimit, remote.lastLimit)
}

func TestSample_EmptyAPIResultFallsBackOnce(t *testing.T) {
	remote := &fakeRemote{random: []wordlist.Entry{}, wordlistErr: errors.New("down")}
	prober := &countingProber{mode: api.ModeAPI}
	src := staticFS(map[string]string{"wordlists/daily/basic.txt": words(3)})
	r := NewResolver(prober, remote, src, apitest.Logger())

	got, err := NewSampler(r, reverse, apitest.Logger()).Sample(context.Background(), daily, 10)
	require.NoError(t, err)
	assert.Len(t, got, 3)
	assert.Equal(t, 1, remote.randomCalls)
	assert.Equal(t, 1, remote.wordlistCalls)
	assert.Equal(t, 1, prober.calls)
}

func TestSample_APIErrorFallsBack(t *testing.T) {
	remote := &fakeRemote{
		randomErr: api.ErrUnreachable,
		wordlist:  []wordlist.Entry{{Word: "x"}, {Word: "y"}},
	}
	r := NewResolver(api.FixedProber(api.ModeAPI), remote, staticFS(nil), apitest.Logger())

	got, err := NewSampler(r, reverse, apitest.Logger()).Sample(context.Background(), daily, 1)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "y", got[0].Word)
	assert.Equal(t, "x", remote.wordlist[0].Word, "source slice must not be shuffled in place")
}

func TestSample_Errors(t *testing.T) {
	r := NewResolver(api.FixedProber(api.ModeStatic), nil, staticFS(nil), apitest.Logger())
	s := NewSampler(r, nil, apitest.Logger())

	_, err := s.Sample(context.Background(), daily, 5)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = s.Sample(context.Background(), wordlist.Key{Category: "daily"}, 5)
	assert.ErrorIs(t, err, ErrInvalidKey)
}
