package navigator

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/zjrosen/waypoint/internal/domain/navigation"
)

func TestJobQueue_DefaultSize(t *testing.T) {
	tests := []struct {
		name    string
		maxSize int
		want    int
	}{
		{"positive", 5, 5},
		{"zero uses default", 0, DefaultQueueSize},
		{"negative uses default", -1, DefaultQueueSize},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, newJobQueue(tt.maxSize).maxSize)
		})
	}
}

func TestJobQueue_FIFO(t *testing.T) {
	q := newJobQueue(10)
	for _, id := range []string{"1", "2", "3"} {
		require.NoError(t, q.enqueue(job{nav: navigation.NewNavigation(id)}))
	}
	require.Equal(t, 3, q.len())

	for _, want := range []string{"1", "2", "3"} {
		j, ok := q.dequeue()
		require.True(t, ok)
		require.Equal(t, want, j.nav.ID())
	}
	_, ok := q.dequeue()
	require.False(t, ok)
}

func TestJobQueue_Full(t *testing.T) {
	q := newJobQueue(2)
	require.NoError(t, q.enqueue(job{}))
	require.NoError(t, q.enqueue(job{}))

	require.ErrorIs(t, q.enqueue(job{}), ErrQueueFull)
	require.Equal(t, 2, q.len())
}

func TestJobQueue_Drain(t *testing.T) {
	q := newJobQueue(10)
	require.Empty(t, q.drain())

	require.NoError(t, q.enqueue(job{nav: navigation.NewNavigation("a")}))
	require.NoError(t, q.enqueue(job{nav: navigation.NewNavigation("b")}))

	drained := q.drain()
	require.Len(t, drained, 2)
	require.Zero(t, q.len())
}

func TestJobQueue_ConcurrentEnqueue(t *testing.T) {
	q := newJobQueue(1000)
	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = q.enqueue(job{})
		}()
	}
	wg.Wait()
	require.Equal(t, 100, q.len())
}
