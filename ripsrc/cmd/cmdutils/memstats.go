package cmdutils

import (
	"context"
	"fmt"
	"runtime"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
)

// StartMemLogs prints heap usage every interval until ctx is done.
func StartMemLogs(ctx context.Context, interval time.Duration) {
	start := time.Now()
	log := func() {
		var m runtime.MemStats
		runtime.ReadMemStats(&m)
		fmt.Fprintf(color.Error, "[%s][%v] heap, %v total allocated\n",
			color.YellowString("%v", time.Since(start).Round(time.Second)),
			color.YellowString(humanize.IBytes(m.HeapAlloc)),
			humanize.IBytes(m.TotalAlloc))
	}
	log()
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				log()
			case <-ctx.Done():
				return
			}
		}
	}()
}
