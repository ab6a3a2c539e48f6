package themelint

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "nil", err: nil, want: ExitSuccess},
		{name: "plain error", err: errors.New("boom"), want: ExitFailure},
		{name: "typed", err: newError(KindManifestMissing, "missing", nil), want: ExitFailure},
		{name: "delegate", err: DelegateFailed(2), want: 2},
		{name: "wrapped delegate", err: fmt.Errorf("lint: %w", DelegateFailed(78)), want: 78},
		{name: "delegate killed by signal", err: DelegateFailed(-1), want: ExitFailure},
		{name: "delegate out of range", err: DelegateFailed(256), want: ExitFailure},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExitCode(tt.err))
		})
	}
}

func TestErrorMessageAndUnwrap(t *testing.T) {
	cause := errors.New("unexpected token")
	err := newError(KindManifestInvalid, "package.json is not valid JSON", cause)

	assert.Equal(t, "package.json is not valid JSON: unexpected token", err.Error())
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "manifest invalid", err.Kind.String())
}

func TestIsSilent(t *testing.T) {
	assert.True(t, IsSilent(DelegateFailed(1)))
	assert.True(t, IsSilent(newError(KindToolingMissing, "SCSS linting is not set up", nil)))
	assert.False(t, IsSilent(newError(KindLayoutUndetected, "no theme", nil)))
	assert.False(t, IsSilent(errors.New("plain")))
}
