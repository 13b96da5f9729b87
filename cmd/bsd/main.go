package main

import (
	"flag"
	"fmt"
	"os"

	"bsd/internal/di"
	"bsd/internal/structures"
)

func main() {
	flags := &structures.CliFlags{}
	flag.StringVar(&flags.ConfigPath, "config", "config.yaml", "path to the YAML configuration file")
	flag.BoolVar(&flags.DebugMode, "debug", false, "mirror logs to stdout")
	flag.Parse()

	if _, err := di.InitApp(flags); err != nil {
		fmt.Fprintf(os.Stderr, "bsd: %s\n", err)
		os.Exit(1)
	}
}
