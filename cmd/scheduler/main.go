package main

import (
	"os"

	"github.com/dori/scheduler/internal/cli"
)

var (
	version = "0.1.0"
)

func main() {
	cli.Version = version
	os.Exit(cli.Execute())
}
