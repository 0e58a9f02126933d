package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	_ "time/tzdata"

	"github.com/chrissnell/skyalmanac/internal/app"
	"github.com/chrissnell/skyalmanac/internal/log"
	"github.com/chrissnell/skyalmanac/pkg/config"
)

const version = "1.0-" + runtime.GOOS + "/" + runtime.GOARCH

func main() {
	cfgFile := flag.String("config", "config.yaml", "Path to the YAML configuration file; empty uses built-in defaults")
	debug := flag.Bool("debug", false, "Turn on debugging output")
	showVersion := flag.Bool("version", false, "Show version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Printf("skyalmanac %s\n", version)
		os.Exit(0)
	}

	// Set up logging
	if err := log.Init(*debug); err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	provider := configProvider(*cfgFile)
	defer provider.Close()

	// Create and run the application
	application := app.New(provider, log.GetSugaredLogger())
	if err := application.Run(context.Background()); err != nil {
		log.Errorf("Application error: %v", err)
		os.Exit(1)
	}
}

func configProvider(cfgFile string) config.ConfigProvider {
	if cfgFile == "" {
		return config.NewStaticProvider(config.Default())
	}
	filename, _ := filepath.Abs(cfgFile)
	return config.NewYAMLProvider(filename)
}
