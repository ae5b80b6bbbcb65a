package threshold_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/near/threshold-signatures/pkg/threshold"
)

func TestNewDerivesCanonicalThreshold(t *testing.T) {
	p, err := threshold.New(7, 2)
	require.NoError(t, err)
	assert.Equal(t, threshold.Parameters{N: 7, F: 2, T: 3}, p)
}

func TestNewRejectsExcessiveF(t *testing.T) {
	_, err := threshold.New(7, 3)
	assert.ErrorIs(t, err, threshold.ErrFTooLargeForDkg)
}

func TestNewRejectsZeroN(t *testing.T) {
	_, err := threshold.New(0, 0)
	assert.ErrorIs(t, err, threshold.ErrNTooSmall)
}

func TestNewRejectsFNotLessThanN(t *testing.T) {
	_, err := threshold.New(3, 3)
	assert.ErrorIs(t, err, threshold.ErrFNotLessThanN)
}

func TestValidateCatchesMismatchedThreshold(t *testing.T) {
	p := threshold.Parameters{N: 7, F: 2, T: 4}
	assert.ErrorIs(t, p.Validate(), threshold.ErrThresholdMismatch)
}

func TestCheckAgainstRefreshRequiresSameShape(t *testing.T) {
	old, err := threshold.New(7, 2)
	require.NoError(t, err)

	same := old
	assert.NoError(t, same.CheckAgainst(old, true))

	changed, err := threshold.New(10, 3)
	require.NoError(t, err)
	assert.Error(t, changed.CheckAgainst(old, true))
	assert.NoError(t, changed.CheckAgainst(old, false))
}
