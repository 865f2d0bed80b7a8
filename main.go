package main

import "github.com/mrlokans/advisor/internal/cli"

// Version information - set at build time via ldflags
var Version = "dev"

func main() {
	cli.Execute(Version)
}
