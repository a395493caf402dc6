package main

import (
	"context"
	"embed"
	"fmt"
	"os"
	"path/filepath"
	"sync/atomic"

	"github.com/wailsapp/wails/v2"
	"github.com/wailsapp/wails/v2/pkg/logger"
	"github.com/wailsapp/wails/v2/pkg/options"
	"github.com/wailsapp/wails/v2/pkg/options/assetserver"
	"github.com/wailsapp/wails/v2/pkg/options/mac"
	wailswindows "github.com/wailsapp/wails/v2/pkg/options/windows"
	wailsruntime "github.com/wailsapp/wails/v2/pkg/runtime"

	"image-overlay/internal/config"
	"image-overlay/internal/hotkey"
	"image-overlay/internal/imageinfo"
	"image-overlay/internal/overlay"
	"image-overlay/internal/penetration"
	"image-overlay/internal/window"
)

//go:embed all:frontend/dist
var assets embed.FS

// App struct
type App struct {
	ctx      context.Context
	config   *config.Service
	log      logger.Logger
	windows  *window.Wails
	overlay  *overlay.Service
	hotkey   *hotkey.Listener
	quitting atomic.Bool

	// initialImage is shown once the frontend is ready.
	initialImage string
}

// NewApp wires the services around one window runtime.
func NewApp(configSvc *config.Service, log logger.Logger) *App {
	cfg := configSvc.Get()

	windows := window.NewWails(cfg.WindowLabel, cfg.WindowTitle, log)
	pen := penetration.New(windows, cfg.WindowLabel, log)
	overlaySvc := overlay.New(windows, cfg.WindowLabel, cfg.Overlay, pen, imageinfo.New(32), log)

	return &App{
		config:  configSvc,
		log:     log,
		windows: windows,
		overlay: overlaySvc,
	}
}

// OnStartup is called when the app starts up
func (a *App) OnStartup(ctx context.Context) {
	a.ctx = ctx
	a.windows.Attach(ctx)

	binding := a.config.Get().Hotkey
	if binding == "" {
		binding = hotkey.DefaultBinding
	}
	b, err := hotkey.Parse(binding)
	if err != nil {
		a.log.Error(fmt.Sprintf("Invalid hotkey, click-through is only reachable from the overlay: %v", err))
		return
	}
	listener, err := hotkey.Listen(b, a.log, a.overlay.OnHotkey)
	if err != nil {
		// Don't exit, the overlay is still usable without the global shortcut
		a.log.Error(err.Error())
		return
	}
	a.hotkey = listener
}

// OnDomReady shows the image passed on the command line, if any.
func (a *App) OnDomReady(ctx context.Context) {
	if a.initialImage == "" {
		return
	}
	path := a.initialImage
	a.initialImage = ""
	if err := a.overlay.Show(path); err != nil {
		a.log.Error(fmt.Sprintf("Failed to show %s: %v", path, err))
	}
}

// OnBeforeClose hides the overlay instead of quitting, unless Quit was called.
func (a *App) OnBeforeClose(ctx context.Context) bool {
	if a.quitting.Load() {
		return false
	}
	if err := a.overlay.Close(); err != nil {
		a.log.Error(fmt.Sprintf("Failed to close overlay: %v", err))
	}
	return true
}

// OnShutdown is called when the app is shutting down
func (a *App) OnShutdown(ctx context.Context) {
	if a.hotkey != nil {
		if err := a.hotkey.Stop(); err != nil {
			a.log.Warning(fmt.Sprintf("Failed to unregister hotkey: %v", err))
		}
	}
	a.windows.Detach()
}

// onSecondInstance forwards the image path of a second launch.
func (a *App) onSecondInstance(data options.SecondInstanceData) {
	if len(data.Args) == 0 {
		return
	}
	path := data.Args[0]
	if !filepath.IsAbs(path) {
		path = filepath.Join(data.WorkingDirectory, path)
	}
	if err := a.overlay.Show(path); err != nil {
		a.log.Error(fmt.Sprintf("Failed to show %s: %v", path, err))
	}
}

// ShowOverlay shows imagePath in the overlay window
func (a *App) ShowOverlay(imagePath string) error {
	return a.overlay.Show(imagePath)
}

// CloseOverlay hides the overlay and makes it interactive again
func (a *App) CloseOverlay() error {
	return a.overlay.Close()
}

// TogglePenetrable toggles click-through and returns the new state
func (a *App) TogglePenetrable() (bool, error) {
	return a.overlay.TogglePenetrable()
}

// IsPenetrable returns the current click-through state
func (a *App) IsPenetrable() bool {
	return a.overlay.IsPenetrable()
}

// Opacity returns the current image opacity
func (a *App) Opacity() float64 {
	return a.overlay.Opacity()
}

// StepOpacity raises or lowers the image opacity by one step
func (a *App) StepOpacity(up bool) (float64, error) {
	return a.overlay.StepOpacity(up)
}

// Zoom grows or shrinks the overlay window by one step
func (a *App) Zoom(in bool) error {
	return a.overlay.Zoom(in)
}

// Quit exits the application
func (a *App) Quit() {
	a.quitting.Store(true)
	wailsruntime.Quit(a.ctx)
}

func newLogger(cfg *config.Config) (logger.Logger, logger.LogLevel) {
	level, err := logger.StringToLogLevel(cfg.LogLevel)
	if err != nil {
		fmt.Printf("Unknown log level %q, using info\n", cfg.LogLevel)
		level = logger.INFO
	}
	if cfg.LogFile != "" {
		return logger.NewFileLogger(cfg.LogFile), level
	}
	return logger.NewDefaultLogger(), level
}

func main() {
	configSvc, err := config.New()
	if err != nil {
		fmt.Printf("Failed to initialize config: %v\n", err)
		os.Exit(1)
	}
	cfg := configSvc.Get()
	log, level := newLogger(cfg)

	// Create an instance of the app structure
	app := NewApp(configSvc, log)
	if len(os.Args) > 1 {
		app.initialImage = os.Args[1]
	}

	// Create application with options
	err = wails.Run(&options.App{
		Title:  cfg.WindowTitle,
		Width:  800,
		Height: 600,
		AssetServer: &assetserver.Options{
			Assets:  assets,
			Handler: app.overlay,
		},
		Frameless:        true,
		AlwaysOnTop:      true,
		StartHidden:      true,
		BackgroundColour: &options.RGBA{R: 0, G: 0, B: 0, A: 0}, // Transparent
		Windows: &wailswindows.Options{
			WebviewIsTransparent: true,
			WindowIsTranslucent:  true,
		},
		Mac: &mac.Options{
			WebviewIsTransparent: true,
			WindowIsTranslucent:  true,
		},
		SingleInstanceLock: &options.SingleInstanceLock{
			UniqueId:               "image-overlay-" + cfg.WindowLabel,
			OnSecondInstanceLaunch: app.onSecondInstance,
		},
		Logger:        log,
		LogLevel:      level,
		OnStartup:     app.OnStartup,
		OnDomReady:    app.OnDomReady,
		OnBeforeClose: app.OnBeforeClose,
		OnShutdown:    app.OnShutdown,
		Bind:          []interface{}{app},
	})

	if err != nil {
		fmt.Printf("Error starting application: %v\n", err)
		os.Exit(1)
	}
}
