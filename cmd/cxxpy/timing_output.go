package main

import (
	"fmt"
	"io"
	"time"

	"cxxpy/internal/observ"
	"cxxpy/internal/pipeline"
)

func printTimings(out io.Writer, timer *observ.Timer, results []pipeline.FileResult) {
	if out == nil || timer == nil {
		return
	}
	for _, r := range results {
		if _, err := fmt.Fprintf(out, "%s %.1f ms\n", r.Path, toMillis(r.Elapsed)); err != nil {
			panic(err)
		}
	}
	if _, err := io.WriteString(out, timer.Summary()); err != nil {
		panic(err)
	}
}

func toMillis(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}
