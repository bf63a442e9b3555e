package main

import (
	"os"

	"github.com/scicrunch/sckan-nli/cmd/sckan-nli/cmd"
	"github.com/scicrunch/sckan-nli/internal/common/logging"
)

func main() {
	logging.ConfigureCommandLineLogging()
	os.Exit(cmd.Execute())
}
