package config_test

import (
	"sync/atomic"
	"testing"
	"testing/synctest"
	"time"

	"github.com/stretchr/testify/assert"
	"go.trai.ch/uifirst/internal/adapters/config"
)

func TestDebouncer_CoalescesBurst(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		var calls atomic.Int32
		d := config.NewDebouncer(50*time.Millisecond, func() { calls.Add(1) })

		for range 5 {
			d.Trigger()
			time.Sleep(10 * time.Millisecond)
		}
		synctest.Wait()
		assert.Equal(t, int32(0), calls.Load())

		time.Sleep(50 * time.Millisecond)
		synctest.Wait()
		assert.Equal(t, int32(1), calls.Load())
	})
}

func TestDebouncer_Stop(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		var calls atomic.Int32
		d := config.NewDebouncer(50*time.Millisecond, func() { calls.Add(1) })

		assert.False(t, d.Stop())
		d.Trigger()
		assert.True(t, d.Stop())

		time.Sleep(100 * time.Millisecond)
		synctest.Wait()
		assert.Equal(t, int32(0), calls.Load())
	})
}
