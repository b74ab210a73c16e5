package main

import (
	"flag"
	"log"
	"runtime"

	"terrastream/internal/config"
	"terrastream/internal/game"
	"terrastream/internal/input"

	"github.com/go-gl/glfw/v3.3/glfw"
)

func init() {
	runtime.LockOSThread()
}

func main() {
	configPath := flag.String("config", "terrastream.yaml", "settings file")
	seed := flag.Int64("seed", 0, "terrain seed, overrides the settings file when non-zero")
	statsDir := flag.String("stats", "", "directory for frame statistics, overrides the settings file")
	noAudio := flag.Bool("mute", false, "disable ambient music")
	flag.Parse()

	settings, err := config.Load(*configPath)
	if err != nil {
		log.Fatal(err)
	}
	if *seed != 0 {
		settings.WorldGen.SetSeed(*seed)
	}
	if *statsDir != "" {
		settings.SetStatsLogDir(*statsDir)
	}
	if *noAudio {
		settings.SetAudio(false)
	}

	if err := glfw.Init(); err != nil {
		log.Fatalf("glfw: %v", err)
	}
	defer glfw.Terminate()

	window, err := game.SetupWindow(settings)
	if err != nil {
		log.Fatalf("window: %v", err)
	}
	defer window.Destroy()

	app, err := game.NewApp(window, input.NewInputManager(), settings)
	if err != nil {
		log.Printf("session: %v", err)
		return
	}
	app.Run()
}
