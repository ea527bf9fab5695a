package errors

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExitError_Error(t *testing.T) {
	tests := []struct {
		name string
		err  *ExitError
		want string
	}{
		{
			name: "with underlying error",
			err:  NewExitError(ErrNotFound, ExitUser),
			want: "resource not found",
		},
		{
			name: "with wrapped error",
			err:  NewExitError(Wrap(ErrInvalidConfig, "loading config"), ExitUser),
			want: "loading config: invalid configuration",
		},
		{
			name: "nil underlying error",
			err:  NewExitError(nil, ExitUser),
			want: "exit code 1",
		},
		{
			name: "success code with error",
			err:  NewExitError(New("unexpected"), ExitSuccess),
			want: "unexpected",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("ExitError.Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestExitError_Unwrap(t *testing.T) {
	tests := []struct {
		name       string
		err        *ExitError
		wantTarget error
		wantIs     bool
	}{
		{
			name:       "unwrap to sentinel error",
			err:        NewExitError(ErrNotFound, ExitUser),
			wantTarget: ErrNotFound,
			wantIs:     true,
		},
		{
			name:       "unwrap through wrapped error",
			err:        NewExitError(Wrapf(ErrUnknownChange, "decoding %s", "createView"), ExitUser),
			wantTarget: ErrUnknownChange,
			wantIs:     true,
		},
		{
			name:       "no match for different sentinel",
			err:        NewExitError(ErrNotFound, ExitUser),
			wantTarget: ErrInvalidConfig,
			wantIs:     false,
		},
		{
			name:       "nil underlying error",
			err:        NewExitError(nil, ExitUser),
			wantTarget: ErrNotFound,
			wantIs:     false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Is(tt.err, tt.wantTarget); got != tt.wantIs {
				t.Errorf("Is() = %v, want %v", got, tt.wantIs)
			}
		})
	}
}

func TestExitError_As(t *testing.T) {
	err := fmt.Errorf("command failed: %w", NewExitError(ErrValidationFailed, ExitUser))

	var exitErr *ExitError
	require.True(t, As(err, &exitErr))
	assert.Equal(t, ExitUser, exitErr.Code)
	assert.True(t, Is(err, ErrValidationFailed))
}

func TestNewConstructors(t *testing.T) {
	t.Run("NewExitErrorWithSuggestion", func(t *testing.T) {
		err := New("oops")
		e := NewExitErrorWithSuggestion(err, 123, "try this")
		assert.Equal(t, err, e.Err)
		assert.Equal(t, 123, e.Code)
		assert.Equal(t, "try this", e.Suggestion)
	})

	t.Run("NewUserError", func(t *testing.T) {
		e := NewUserError(New("user error"), "check input")
		assert.Equal(t, ExitUser, e.Code)
		assert.Equal(t, "check input", e.Suggestion)
	})

	t.Run("NewSystemError", func(t *testing.T) {
		e := NewSystemError(New("system error"), "check logs")
		assert.Equal(t, ExitSystem, e.Code)
		assert.Equal(t, "check logs", e.Suggestion)
	})

	t.Run("NewConfigError", func(t *testing.T) {
		e := NewConfigError(New("config error"))
		assert.Equal(t, ExitUser, e.Code)
		assert.Equal(t, "Run: changelint config show", e.Suggestion)
	})
}

func TestJoin(t *testing.T) {
	err := Join(ErrIncludeCycle, ErrUnsupportedFormat)
	assert.True(t, Is(err, ErrIncludeCycle))
	assert.True(t, Is(err, ErrUnsupportedFormat))
	assert.Nil(t, Join())
}

func TestExitCode(t *testing.T) {
	assert.Equal(t, ExitSuccess, ExitCode(nil))
	assert.Equal(t, ExitSystem, ExitCode(New("boom")))
	assert.Equal(t, ExitUser, ExitCode(Wrap(NewUserError(ErrValidationFailed, ""), "executing")))
	assert.Equal(t, ExitUser, ExitCode(fmt.Errorf("outer: %w", NewConfigError(ErrInvalidConfig))))
}

func TestSuggestionOf(t *testing.T) {
	assert.Empty(t, SuggestionOf(New("plain")))
	assert.Equal(t, "Run: changelint databases", SuggestionOf(Wrap(NewUserError(ErrUnknownDatabase, "Run: changelint databases"), "validate")))
}

func TestMark(t *testing.T) {
	err := Mark(New("version must be >= 1"), ErrInvalidConfig)
	assert.True(t, Is(err, ErrInvalidConfig))
	assert.Equal(t, "version must be >= 1", err.Error())
}
