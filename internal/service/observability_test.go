package service

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLogObserverLevels(t *testing.T) {
	ctx := context.Background()

	t.Run("success logs info", func(t *testing.T) {
		var buf bytes.Buffer
		obs := NewLogUseCaseObserver(&buf)
		obs.ObserveUseCase(ctx, UseCaseEvent{Name: "tasks.list", Duration: 5 * time.Millisecond, Success: true})
		assert.Contains(t, buf.String(), "level=INFO")
		assert.Contains(t, buf.String(), "use_case=tasks.list")
	})

	t.Run("slow success logs warn", func(t *testing.T) {
		var buf bytes.Buffer
		obs := NewLogUseCaseObserver(&buf)
		obs.ObserveUseCase(ctx, UseCaseEvent{Name: "tasks.list", Duration: slowUseCaseThreshold, Success: true})
		assert.Contains(t, buf.String(), "level=WARN")
		assert.Contains(t, buf.String(), "task_use_case_slow")
	})

	t.Run("failure logs error", func(t *testing.T) {
		var buf bytes.Buffer
		obs := NewLogUseCaseObserver(&buf)
		obs.ObserveUseCase(ctx, UseCaseEvent{Name: "tasks.reschedule", Err: errors.New("boom")})
		assert.Contains(t, buf.String(), "level=ERROR")
		assert.Contains(t, buf.String(), "error=boom")
	})
}

func TestLogObserverNilWriterIsNoop(t *testing.T) {
	obs := NewLogUseCaseObserver(nil)
	assert.IsType(t, NoopUseCaseObserver{}, obs)
}
