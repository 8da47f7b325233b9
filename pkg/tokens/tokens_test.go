package tokens

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEstimate_Approximate(t *testing.T) {
	e := New(Approximate, nil)
	assert.Equal(t, Approximate, e.Encoding())
	assert.Equal(t, 0, e.Estimate(""))
	assert.Equal(t, 2, e.Estimate("12345678"))
	assert.Equal(t, 250, e.Estimate(strings.Repeat("a", 1001)))
}

func TestEstimate_DefaultEncodingOffline(t *testing.T) {
	e := New("", nil)
	require.Equal(t, DefaultEncoding, e.Encoding())
	assert.Equal(t, 2, e.Estimate("hello world"))
}

func TestNew_UnknownEncodingFallsBack(t *testing.T) {
	e := New("no_such_encoding", nil)
	assert.Equal(t, Approximate, e.Encoding())
	assert.Equal(t, 3, e.Estimate("abcdefghijkl"))
}

func TestEstimate_NilEstimator(t *testing.T) {
	var e *Estimator
	assert.Equal(t, 1, e.Estimate("abcd"))
}

func TestExceeds(t *testing.T) {
	testCases := []struct {
		n, threshold int
		want         bool
	}{
		{10, 5, true},
		{5, 5, false},
		{1, 0, false},
		{DefaultThreshold + 1, DefaultThreshold, true},
	}
	for _, tc := range testCases {
		assert.Equal(t, tc.want, Exceeds(tc.n, tc.threshold), "n=%d threshold=%d", tc.n, tc.threshold)
	}
}
