package game

import (
	"log"
	"time"

	"terrastream/internal/config"
	"terrastream/internal/input"
	"terrastream/internal/profiling"

	"github.com/go-gl/glfw/v3.3/glfw"
)

// slowFrame is the processing time above which a frame is logged.
const slowFrame = 16 * time.Millisecond

type App struct {
	window       *glfw.Window
	inputManager *input.InputManager
	monitor      *profiling.Monitor

	session *Session

	fpsLimiter *FPSLimiter
	lastTime   time.Time
	lastReport time.Time
}

// NewApp creates the session for window and hooks up input.
func NewApp(window *glfw.Window, im *input.InputManager, settings *config.Settings) (*App, error) {
	monitor := profiling.NewMonitor()
	session, err := NewSession(window, settings, monitor)
	if err != nil {
		return nil, err
	}
	im.SetCallbacks(window)

	a := &App{
		window:       window,
		inputManager: im,
		monitor:      monitor,
		session:      session,
		fpsLimiter:   NewFPSLimiter(settings.FPSLimit),
		lastTime:     time.Now(),
	}
	window.SetRefreshCallback(func(w *glfw.Window) {
		a.session.RefreshRender()
	})
	return a, nil
}

// Run loops until the window is closed, then tears the session down.
func (a *App) Run() {
	defer a.session.Cleanup()
	for !a.window.ShouldClose() {
		a.tick()
	}
}

func (a *App) tick() {
	a.monitor.ResetFrame()
	startTick := time.Now() // Measure pure processing time
	dt := startTick.Sub(a.lastTime).Seconds()
	a.lastTime = startTick

	glfw.PollEvents()

	a.session.Update(dt, a.inputManager)
	a.session.Render()

	a.window.SwapBuffers()

	processingDuration := time.Since(startTick)
	if processingDuration > slowFrame {
		log.Printf("Slow frame: %v. Top tasks: %s", processingDuration, a.monitor.TopN(5))
	}
	if a.session.ShowProfile && time.Since(a.lastReport) >= time.Second {
		log.Printf("%s; update %v, render %v; top: %s", a.session.World,
			a.monitor.SumWithPrefix("update."), a.monitor.SumWithPrefix("render."), a.monitor.TopN(5))
		a.lastReport = time.Now()
	}

	a.inputManager.PostUpdate() // Clear "JustPressed" flags

	a.fpsLimiter.Wait(a.session.Paused)
}
