// main is the entry point for the trendline CLI.
package main

import (
	"os"

	"github.com/huangsam/trendline/cmd"
	"github.com/huangsam/trendline/internal/contract"
	"github.com/huangsam/trendline/internal/iocache"
)

func main() {
	cmd.SetCacheManager(iocache.Manager)

	err := cmd.Execute()

	if perr := cmd.StopProfiling(); perr != nil {
		contract.LogWarn("Failed to stop profiling", perr)
	}
	iocache.CloseStores()

	if err != nil {
		contract.LogFatal("Error", err)
	}
	os.Exit(0)
}
