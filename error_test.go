package docdive_test

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/mwalczyk/docdive"
	"github.com/stretchr/testify/assert"
)

func TestErrorCode(t *testing.T) {
	t.Parallel()

	t.Run("returns code of application error", func(t *testing.T) {
		t.Parallel()

		err := docdive.Errorf(docdive.ENORESULTS, "no results for %q", "swift")
		assert.Equal(t, docdive.ENORESULTS, docdive.ErrorCode(err))
	})

	t.Run("unwraps wrapped application error", func(t *testing.T) {
		t.Parallel()

		err := fmt.Errorf("search: %w", docdive.Errorf(docdive.ERATELIMIT, "slow down"))
		assert.Equal(t, docdive.ERATELIMIT, docdive.ErrorCode(err))
	})

	t.Run("non-application error is internal", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, docdive.EINTERNAL, docdive.ErrorCode(errors.New("boom")))
	})

	t.Run("nil error has empty code", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, "", docdive.ErrorCode(nil))
	})
}

func TestErrorMessage(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "no results for \"swift\"", docdive.ErrorMessage(docdive.Errorf(docdive.ENORESULTS, "no results for %q", "swift")))
	assert.Equal(t, "Internal error.", docdive.ErrorMessage(errors.New("boom")))
	assert.Equal(t, "", docdive.ErrorMessage(nil))
}

func TestRetryAfter(t *testing.T) {
	t.Parallel()

	err := &docdive.Error{Code: docdive.ERATELIMIT, Message: "too many requests", RetryAfter: 30 * time.Second}
	assert.Equal(t, 30*time.Second, docdive.RetryAfter(err))
	assert.Equal(t, time.Duration(0), docdive.RetryAfter(errors.New("boom")))
}

func TestSourceErrors(t *testing.T) {
	t.Parallel()

	err := &docdive.SourceErrors{Errors: map[docdive.Source]error{
		docdive.SourceHWS:       docdive.Errorf(docdive.ENETWORK, "connection refused"),
		docdive.SourceAppleDocs: docdive.Errorf(docdive.ENORESULTS, "nothing matched"),
	}}

	msg := err.Error()
	assert.Contains(t, msg, "all sources failed")
	assert.Contains(t, msg, "apple: nothing matched")
	assert.Contains(t, msg, "hws: connection refused")
}
