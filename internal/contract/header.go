package contract

import (
	"fmt"
	"io"
)

// LogViewHeader prints a concise, 2-line header describing the query.
func LogViewHeader(w io.Writer, cfg *Config, first, last string) {
	_, _ = fmt.Fprintf(w, "%s %s (top %d)\n", HeaderColor.Sprint("Metric:"), cfg.Metric, cfg.TopK)
	_, _ = fmt.Fprintf(w, "%s %s → %s (%d months)\n", HeaderColor.Sprint("Window:"), first, last, cfg.Window)
}
