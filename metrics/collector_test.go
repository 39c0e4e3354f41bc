package metrics

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCollector(t *testing.T) {
	t.Run("counting concurrently", func(t *testing.T) {
		c := NewCollector()
		c.Start()

		var wg sync.WaitGroup
		for i := 0; i < 8; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				for j := 0; j < 100; j++ {
					c.AddApplication()
				}
				c.AddClassification()
			}()
		}
		wg.Wait()
		c.AddCacheHit()
		c.AddCycle()
		c.AddHorizonCutoff()

		got := c.Complete()
		require.Equal(t, 800, got.Applications)
		require.Equal(t, 8, got.Classifications)
		require.Equal(t, 1, got.CacheHits)
		require.Equal(t, 1, got.Cycles)
		require.Equal(t, 1, got.HorizonCutoffs)
		require.False(t, got.StartTime.IsZero(), "Start time should be recorded")
	})

	t.Run("restarting clears counters", func(t *testing.T) {
		c := NewCollector()
		c.Start()
		c.AddCycle()
		c.Start()

		require.Zero(t, c.Complete().Cycles, "Start should reset counters")
	})

	t.Run("dummy collector records nothing", func(t *testing.T) {
		c := NewDummyCollector()
		c.Start()
		c.AddApplication()

		require.Equal(t, ClassifyMetric{}, c.Complete())
	})
}
