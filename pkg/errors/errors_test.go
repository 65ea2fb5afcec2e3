package errors

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

type codedErr struct{ code string }

func (e *codedErr) Error() string { return "coded: " + e.code }
func (e *codedErr) Code() string  { return e.code }
func (e *codedErr) Unwrap() error { return nil }

func TestToHTTPStatus(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, ToHTTPStatus(ErrInvalidArgument))
	assert.Equal(t, http.StatusNotFound, ToHTTPStatus(ErrNotFound))
	assert.Equal(t, http.StatusInternalServerError, ToHTTPStatus("SOMETHING_ELSE"))
}

func TestWrapKeepsCode(t *testing.T) {
	base := NewAppError(ErrNotFound, "account not found", nil)
	wrapped := Wrap(fmt.Errorf("lookup: %w", base), "balance read failed")

	assert.Equal(t, ErrNotFound, CodeOf(wrapped))
	assert.Nil(t, Wrap(nil, "ignored"))
	assert.Equal(t, ErrInternal, CodeOf(Wrap(New("boom"), "x")))
}

func TestToHTTPError(t *testing.T) {
	t.Run("app error uses its message", func(t *testing.T) {
		he := ToHTTPError(NewAppError(ErrNotFound, "account not found", New("no rows")))
		assert.Equal(t, http.StatusNotFound, he.Code)
		assert.Equal(t, "account not found", he.Message)
	})

	t.Run("coded error hides detail", func(t *testing.T) {
		he := ToHTTPError(fmt.Errorf("ctx: %w", &codedErr{code: ErrInternal}))
		assert.Equal(t, http.StatusInternalServerError, he.Code)
		assert.Equal(t, http.StatusText(http.StatusInternalServerError), he.Message)
	})

	t.Run("echo error passes through", func(t *testing.T) {
		orig := echo.NewHTTPError(http.StatusTeapot, "tea")
		assert.Same(t, orig, ToHTTPError(orig))
	})

	t.Run("nil", func(t *testing.T) {
		assert.Nil(t, ToHTTPError(nil))
	})
}

func TestLogErrorAt(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	logger := zap.New(core)

	LogErrorAt(logger, zapcore.WarnLevel, fmt.Errorf("wrapped: %w", &codedErr{code: ErrInvalidArgument}), "rejected",
		zap.String("request_id", "req-1"))
	LogError(logger, New("plain"), "failed")
	LogErrorAt(logger, zapcore.DebugLevel, New("below level"), "dropped")
	LogError(logger, nil, "nothing")

	entries := logs.AllUntimed()
	require.Len(t, entries, 2)

	assert.Equal(t, zapcore.WarnLevel, entries[0].Level)
	assert.Equal(t, "rejected", entries[0].Message)
	fields := entries[0].ContextMap()
	assert.Equal(t, ErrInvalidArgument, fields["error_code"])
	assert.Equal(t, "req-1", fields["request_id"])

	assert.Equal(t, zapcore.ErrorLevel, entries[1].Level)
	assert.NotContains(t, entries[1].ContextMap(), "error_code")
	assert.Equal(t, "plain", entries[1].ContextMap()["error"])
}
