// Command modelshim inspects and validates SDK resource models through the
// compatibility adapter of the linked model library generation.
//
// Build with -tags modelv1 to link the first generation. The version
// string is injected with -ldflags "-X main.version=...".
package main

import (
	"os"

	"github.com/reoring/modelshim/internal/commands"
)

var version = "dev"

func main() {
	commands.Version = version
	os.Exit(commands.Execute(commands.NewRootCommand()))
}
