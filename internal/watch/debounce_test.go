package watch

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type flushRecorder struct {
	mu      sync.Mutex
	batches [][]FileEvent
}

func (r *flushRecorder) record(events []FileEvent) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.batches = append(r.batches, events)
}

func (r *flushRecorder) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.batches)
}

func (r *flushRecorder) batch(i int) []FileEvent {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.batches[i]
}

func TestDebouncer_CoalescesSameFile(t *testing.T) {
	rec := &flushRecorder{}
	d := NewDebouncer(30*time.Millisecond, 10, rec.record)
	defer d.Stop()

	for i := 0; i < 5; i++ {
		d.Add(FileEvent{Filename: "hatch_ring.scad", At: time.Now()})
	}

	require.Eventually(t, func() bool { return rec.count() == 1 },
		2*time.Second, 10*time.Millisecond)
	assert.Len(t, rec.batch(0), 1)
	assert.Equal(t, "hatch_ring.scad", rec.batch(0)[0].Filename)
}

func TestDebouncer_SeparateFilesOneBatch(t *testing.T) {
	rec := &flushRecorder{}
	d := NewDebouncer(30*time.Millisecond, 10, rec.record)
	defer d.Stop()

	d.Add(FileEvent{Filename: "hatch_ring.scad", At: time.Now()})
	d.Add(FileEvent{Filename: "pipe_clamp.scad", At: time.Now()})

	require.Eventually(t, func() bool { return rec.count() == 1 },
		2*time.Second, 10*time.Millisecond)
	assert.Len(t, rec.batch(0), 2)
}

func TestDebouncer_MaxBatchFlushesImmediately(t *testing.T) {
	rec := &flushRecorder{}
	// A window this long only flushes if maxBatch kicks in.
	d := NewDebouncer(time.Hour, 2, rec.record)
	defer d.Stop()

	d.Add(FileEvent{Filename: "hatch_ring.scad", At: time.Now()})
	d.Add(FileEvent{Filename: "pipe_clamp.scad", At: time.Now()})

	assert.Equal(t, 1, rec.count())
	assert.Len(t, rec.batch(0), 2)
}

func TestDebouncer_StopFlushesPending(t *testing.T) {
	rec := &flushRecorder{}
	d := NewDebouncer(time.Hour, 10, rec.record)

	d.Add(FileEvent{Filename: "storage_bin.scad", At: time.Now()})
	d.Stop()

	assert.Equal(t, 1, rec.count())
	assert.Equal(t, "storage_bin.scad", rec.batch(0)[0].Filename)
}

func TestDebouncer_AddAfterStop(t *testing.T) {
	rec := &flushRecorder{}
	d := NewDebouncer(10*time.Millisecond, 10, rec.record)
	d.Stop()

	d.Add(FileEvent{Filename: "hatch_ring.scad", At: time.Now()})
	time.Sleep(50 * time.Millisecond)

	assert.Equal(t, 0, rec.count())
}

func TestDebouncer_StopTwice(t *testing.T) {
	rec := &flushRecorder{}
	d := NewDebouncer(10*time.Millisecond, 10, rec.record)
	d.Stop()
	d.Stop() // must not panic
	assert.Equal(t, 0, rec.count())
}
