package pipeline

import (
	"fmt"
	"io"
	"time"
)

const rule = "═══════════════════════════════════════════════════════════"

// RenderSummary prints a human-readable run summary
func RenderSummary(w io.Writer, res *Result) {
	fmt.Fprintf(w, "\n")
	fmt.Fprintf(w, "%s\n", rule)
	fmt.Fprintf(w, "  Dataset Complete\n")
	fmt.Fprintf(w, "%s\n", rule)
	fmt.Fprintf(w, "\n")

	for _, src := range res.Sources {
		if !src.Found {
			fmt.Fprintf(w, "  ✗ %-16s missing (%s)\n", src.ID, src.Path)
			continue
		}
		fmt.Fprintf(w, "  ✓ %-16s %d of %d records\n", src.ID, src.Taken, src.InFile)
	}

	fmt.Fprintf(w, "\n")
	fmt.Fprintf(w, "  Total:     %d records\n", len(res.Dataset))
	fmt.Fprintf(w, "  Output:    %s\n", res.OutputPath)
	if res.CacheHits+res.CacheMisses > 0 {
		fmt.Fprintf(w, "  Cache:     %d hits / %d misses\n", res.CacheHits, res.CacheMisses)
	}
	fmt.Fprintf(w, "  Duration:  %v\n", res.Duration.Round(time.Millisecond))
	fmt.Fprintf(w, "%s\n", rule)
	fmt.Fprintf(w, "\n")
}
