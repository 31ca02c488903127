// Command b24docs serves the Bitrix24 REST documentation over MCP.
package main

import (
	"os"

	"github.com/custodia-labs/b24docs/internal/adapters/driving/cli"
	"github.com/custodia-labs/b24docs/internal/logger"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	cli.SetVersion(version)

	err := cli.Execute()
	logger.Sync()
	if err != nil {
		os.Exit(1)
	}
}
