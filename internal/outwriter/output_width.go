package outwriter

import (
	"os"

	"github.com/huangsam/trendline/internal/contract"
	"golang.org/x/term"
)

// getTerminalWidth returns the width override, the detected terminal width, or 80.
func getTerminalWidth(cfg *contract.Config) int {
	// Check for absolute width override from flag/env
	if cfg.Width > 0 {
		return cfg.Width
	}
	detectedWidth, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || detectedWidth <= 0 {
		return 80 // Conservative default for narrow terminals and CI
	}
	return detectedWidth
}

// getMaxNameWidth calculates the maximum width for group names in table output
// based on terminal width and the number of auxiliary columns.
func getMaxNameWidth(cfg *contract.Config) int {
	termWidth := getTerminalWidth(cfg)

	// Rank + Key + Total + Percent + Avg with borders/padding
	baseWidth := 60
	baseWidth += 12 * len(cfg.AuxFields)

	available := termWidth - baseWidth
	if available < 12 {
		return 12
	}
	if available > 48 {
		return 48
	}
	return available
}
