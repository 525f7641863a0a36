package analysis

import (
	"context"
	"log/slog"
	"runtime"
	"sync"
	"sync/atomic"

	"github.com/cmmoran/elementgen/internal/resolve"
)

// Stats summarises a Collect run.
type Stats struct {
	Analyzed int
	Failed   int
	Items    int
}

// Collect analyzes every path on a pool of workers and appends the items of
// each file to reg as soon as that file completes. A failing file is logged
// and contributes nothing. Collect returns once every analysis has settled.
func Collect(ctx context.Context, a Analyzer, paths []string, workers int, reg *resolve.Registry, log *slog.Logger) Stats {
	if log == nil {
		log = slog.Default()
	}
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
		if workers <= 0 {
			workers = 1
		}
	}

	var (
		analyzed, failed, items atomic.Int64
		wg                      sync.WaitGroup
	)
	tasks := make(chan string, len(paths))
	for _, p := range paths {
		tasks <- p
	}
	close(tasks)

	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			for p := range tasks {
				found, err := a.Analyze(ctx, p)
				if err != nil {
					failed.Add(1)
					log.With("error", err, "file", p).Warn("analysis failed, skipping file")
					continue
				}
				reg.Add(found...)
				analyzed.Add(1)
				items.Add(int64(len(found)))
				log.With("file", p, "items", len(found)).Debug("analyzed")
			}
		}()
	}
	wg.Wait()

	return Stats{
		Analyzed: int(analyzed.Load()),
		Failed:   int(failed.Load()),
		Items:    int(items.Load()),
	}
}
