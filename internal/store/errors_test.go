package store

import (
	"context"
	"errors"
	"fmt"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want Kind
	}{
		{"nil", nil, KindUnknown},
		{"plain", errors.New("boom"), KindUnknown},
		{"cancel", context.Canceled, KindCancelled},
		{"wrapped cancel", fmt.Errorf("fetch: %w", context.Canceled), KindCancelled},
		{"deadline", context.DeadlineExceeded, KindConnectivity},
		{"net", &net.OpError{Op: "dial", Err: errors.New("refused")}, KindConnectivity},
		{"classified", NewError(KindAuthorization, "op", errors.New("403")), KindAuthorization},
		{"wrapped classified", fmt.Errorf("outer: %w", NewError(KindNotFound, "op", nil)), KindNotFound},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Classify(tc.err))
		})
	}
}

func TestIsCancelled(t *testing.T) {
	assert.True(t, IsCancelled(context.Canceled))
	assert.True(t, IsCancelled(NewError(KindCancelled, "op", context.Canceled)))
	assert.False(t, IsCancelled(nil))
	assert.False(t, IsCancelled(errors.New("boom")))
}

func TestKindMessages(t *testing.T) {
	// Every surfaced kind carries distinct user-facing text; cancellation
	// carries none.
	seen := map[string]Kind{}
	for _, k := range []Kind{KindUnknown, KindConnectivity, KindAuthorization, KindNotFound, KindValidation} {
		msg := k.Message()
		assert.NotEmpty(t, msg, "kind %s", k)
		if prev, dup := seen[msg]; dup {
			t.Errorf("kinds %s and %s share message %q", prev, k, msg)
		}
		seen[msg] = k
	}
	assert.Empty(t, KindCancelled.Message())
}

func TestErrorUnwrap(t *testing.T) {
	inner := errors.New("inner")
	err := NewError(KindConnectivity, "store.list_tasks", inner)
	assert.ErrorIs(t, err, inner)
	assert.Contains(t, err.Error(), "store.list_tasks")
	assert.Contains(t, err.Error(), "connectivity")
}

func TestTaskFieldsIsEmpty(t *testing.T) {
	assert.True(t, TaskFields{}.IsEmpty())
	now := time.Now()
	assert.False(t, TaskFields{StartDate: &now}.IsEmpty())
	title := "x"
	assert.False(t, TaskFields{Title: &title}.IsEmpty())
}
