package main

import (
	"os"

	"github.com/Tarunp72/SMART-SDLC/internal/cli"
)

func main() {
	os.Exit(cli.Run(os.Args[1:], os.Stdout, os.Stderr))
}
