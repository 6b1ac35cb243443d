package downloadmgr

import (
	"context"
	"runtime"
	"sync"
	"sync/atomic"

	"golang.org/x/sync/errgroup"
)

// DownloadManager runs a list of tasks through a fetcher using a bounded number of workers
type DownloadManager struct {
	fetcher *Fetcher
	threads int
	// OnProgress is called after every finished task. It may be called concurrently
	OnProgress func(done int, total int)
	// OnOutcome is called with the outcome of every task
	OnOutcome func(o Outcome)
}

// Stats summarizes one run of the download manager
type Stats struct {
	Skipped    int
	Downloaded int
	Failed     int
	Bytes      int64
}

// Total returns the number of tasks that were processed
func (s Stats) Total() int {
	return s.Skipped + s.Downloaded + s.Failed
}

// New creates a new downloadmgr. threads defaults to the number of CPUs if it is not positive
func New(fetcher *Fetcher, threads int) *DownloadManager {
	if threads <= 0 {
		threads = runtime.NumCPU()
	}
	return &DownloadManager{fetcher: fetcher, threads: threads}
}

// Threads returns the worker limit
func (d *DownloadManager) Threads() int {
	return d.threads
}

// Start fetches all tasks. A failing task never stops the others, the only
// error returned is the context error after a cancellation
func (d *DownloadManager) Start(ctx context.Context, tasks []Task) (Stats, error) {
	var (
		stats Stats
		mu    sync.Mutex
		done  atomic.Int64
	)

	g := new(errgroup.Group)
	g.SetLimit(d.threads)

	for _, task := range tasks {
		if ctx.Err() != nil {
			break
		}
		task := task
		g.Go(func() error {
			if ctx.Err() != nil {
				return nil
			}
			outcome := d.fetcher.Fetch(ctx, task)

			mu.Lock()
			switch outcome.Status {
			case Skipped:
				stats.Skipped++
			case Downloaded:
				stats.Downloaded++
			case Failed:
				stats.Failed++
			}
			stats.Bytes += outcome.Bytes
			if d.OnOutcome != nil {
				d.OnOutcome(outcome)
			}
			mu.Unlock()

			if d.OnProgress != nil {
				d.OnProgress(int(done.Add(1)), len(tasks))
			}
			return nil
		})
	}
	g.Wait()

	return stats, ctx.Err()
}
