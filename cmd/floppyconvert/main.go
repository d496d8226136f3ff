package main

import (
	"os"

	"github.com/sargunv/floppyconvert/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
