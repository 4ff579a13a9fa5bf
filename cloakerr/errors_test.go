package cloakerr

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBadShareErrorMatchesSentinelViaErrorsIs(t *testing.T) {
	err := &BadShareError{Index: 3}
	require.ErrorIs(t, err, ErrBadShare)
	require.Contains(t, err.Error(), "3")
}

func TestBadShareErrorDoesNotMatchUnrelatedSentinel(t *testing.T) {
	err := &BadShareError{Index: 1}
	require.False(t, errors.Is(err, ErrInvalidPoint))
}

func TestBadShareErrorUnwrapsViaErrorsAs(t *testing.T) {
	wrapped := errors.New("combine failed: " + (&BadShareError{Index: 2}).Error())
	var target *BadShareError
	require.False(t, errors.As(wrapped, &target))

	var direct error = &BadShareError{Index: 2}
	require.True(t, errors.As(direct, &target))
	require.Equal(t, 2, target.Index)
}

func TestTallyNotFoundIsDistinctFromInsufficientFunds(t *testing.T) {
	require.False(t, errors.Is(ErrTallyNotFound, ErrInsufficientFunds))
	require.False(t, errors.Is(ErrInsufficientFunds, ErrTallyNotFound))
}
