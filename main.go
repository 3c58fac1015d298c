// main is the entry point of the sprintlens CLI.
package main

import (
	"github.com/huangsam/sprintlens/cmd"
	"github.com/huangsam/sprintlens/internal/contract"
	"github.com/huangsam/sprintlens/internal/iocache"
)

func main() {
	cmd.SetCacheManager(iocache.Manager)

	err := cmd.Execute()

	iocache.CloseStores()
	if stopErr := cmd.StopProfiling(); stopErr != nil {
		contract.LogWarn("Failed to stop profiling", stopErr)
	}
	if err != nil {
		contract.LogFatal("Error starting CLI", err)
	}
}
