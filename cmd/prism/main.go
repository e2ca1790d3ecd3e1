// prism - Terminal 3D Model Viewer
// View OBJ and glTF files in your terminal, rasterized on the CPU.
//
// Controls:
//
//	Mouse drag  - Rotate model (yaw/pitch)
//	Scroll      - Zoom in/out
//	W/S         - Pitch up/down
//	A/D         - Yaw left/right
//	Q/E         - Roll left/right
//	Space       - Apply random impulse
//	R           - Reset rotation and zoom
//	X           - Toggle wireframe mode
//	L           - Toggle lighting
//	F           - Switch fill strategy
//	P           - Save a PNG screenshot
//	?           - Toggle HUD overlay
//	Esc         - Quit
package main

import (
	"context"
	"flag"
	"fmt"
	"math/rand"
	"os"
	"os/signal"
	"syscall"
	"time"

	uv "github.com/charmbracelet/ultraviolet"
	"github.com/chewxy/math32"
	"go.uber.org/zap"

	"github.com/softlit/prism/internal/config"
	"github.com/softlit/prism/internal/logger"
	"github.com/softlit/prism/internal/viewer"
	"github.com/softlit/prism/pkg/math3d"
	"github.com/softlit/prism/pkg/render"
)

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "prism - Terminal 3D Model Viewer\n\n")
		fmt.Fprintf(os.Stderr, "Usage: prism [options] [model.obj|model.glb]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nControls:\n")
		fmt.Fprintf(os.Stderr, "  Mouse drag  - Rotate model\n")
		fmt.Fprintf(os.Stderr, "  Scroll      - Zoom in/out\n")
		fmt.Fprintf(os.Stderr, "  W/S/A/D     - Pitch and yaw\n")
		fmt.Fprintf(os.Stderr, "  Q/E         - Roll left/right\n")
		fmt.Fprintf(os.Stderr, "  Space       - Random spin\n")
		fmt.Fprintf(os.Stderr, "  R           - Reset view\n")
		fmt.Fprintf(os.Stderr, "  X           - Toggle wireframe\n")
		fmt.Fprintf(os.Stderr, "  L           - Toggle lighting\n")
		fmt.Fprintf(os.Stderr, "  F           - Switch fill strategy\n")
		fmt.Fprintf(os.Stderr, "  P           - Save screenshot\n")
		fmt.Fprintf(os.Stderr, "  ?           - Toggle HUD overlay\n")
		fmt.Fprintf(os.Stderr, "  Esc         - Quit\n")
	}
	config.ParseFlags()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if flag.NArg() > 0 {
		cfg.Scene.Model = flag.Arg(0)
	}

	// Console logging would scribble over the rendered frames, so the
	// terminal viewer logs to file only.
	fileCfg := logger.FileConfig{}
	if cfg.Logging.LogFile != "" {
		fileCfg = logger.DefaultFileConfig(cfg.Logging.LogFile)
	}
	if err := logger.InitWithFileConfig(cfg.Logging.Level, fileCfg, false); err != nil {
		fmt.Fprintf(os.Stderr, "Error: init logging: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	if err := run(cfg); err != nil {
		logger.Error("viewer exited", zap.Error(err))
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// HUD renders an overlay with model info and render mode status.
type HUD struct {
	name      string
	polyCount int
	fps       float64
	fpsFrames int
	fpsTime   time.Time
}

func NewHUD(name string, polyCount int) *HUD {
	return &HUD{
		name:      name,
		polyCount: polyCount,
		fpsTime:   time.Now(),
	}
}

// UpdateFPS updates the FPS counter. Call once per frame.
func (h *HUD) UpdateFPS() {
	h.fpsFrames++
	elapsed := time.Since(h.fpsTime)
	if elapsed >= time.Second {
		h.fps = float64(h.fpsFrames) / elapsed.Seconds()
		h.fpsFrames = 0
		h.fpsTime = time.Now()
	}
}

// Render draws the HUD overlay directly to the terminal.
func (h *HUD) Render(width, height int, cfg render.Config, visible bool) {
	const (
		reset     = "\x1b[0m"
		bold      = "\x1b[1m"
		dim       = "\x1b[2m"
		bgBlack   = "\x1b[40m"
		fgWhite   = "\x1b[97m"
		fgGreen   = "\x1b[92m"
		fgCyan    = "\x1b[96m"
		fgYellow  = "\x1b[93m"
		clearLine = "\x1b[2K"
	)

	moveTo := func(row, col int) string {
		return fmt.Sprintf("\x1b[%d;%dH", row, col)
	}

	// Always clear the HUD rows so toggling off works.
	fmt.Print(moveTo(1, 1) + clearLine)
	fmt.Print(moveTo(height, 1) + clearLine)

	if !visible {
		return
	}

	fmt.Printf("%s%s%s %.0f FPS %s", moveTo(1, 1), bgBlack, fgGreen, h.fps, reset)

	titleCol := max((width-len(h.name)-2)/2, 1)
	fmt.Printf("%s%s%s%s %s %s", moveTo(1, titleCol), bold, bgBlack, fgWhite, h.name, reset)

	polyCol := max(width-12, 1)
	fmt.Printf("%s%s%s%s %d tris %s", moveTo(1, polyCol), bgBlack, fgCyan, bold, h.polyCount, reset)

	checkWire := "[ ]"
	if cfg.Wireframe {
		checkWire = "[x]"
	}
	checkLight := "[ ]"
	if cfg.Lighting {
		checkLight = "[x]"
	}
	fmt.Printf("%s%s%s %s Wireframe  %s Lighting  Fill: %s %s",
		moveTo(height, 1), bgBlack, fgWhite, checkWire, checkLight, cfg.Fill, reset)

	hintCol := max(width-22, 1)
	fmt.Printf("%s%s%s%s X/L/F: modes  P: png %s", moveTo(height, hintCol), bgBlack, dim, fgYellow, reset)
}

// buildRenderer sizes a renderer for a terminal of w x h cells. Each
// cell shows two pixel rows via the half-block glyph.
func buildRenderer(cfg *config.Config, w, h int) (*render.Renderer, error) {
	rc, err := cfg.RendererConfig(w, h*2)
	if err != nil {
		return nil, err
	}
	return render.NewRenderer(rc)
}

func run(cfg *config.Config) error {
	mesh := viewer.LoadScene(cfg)

	term := uv.DefaultTerminal()

	width, height, err := term.GetSize()
	if err != nil {
		return fmt.Errorf("get terminal size: %w", err)
	}

	if err := term.Start(); err != nil {
		return fmt.Errorf("start terminal: %w", err)
	}

	term.EnterAltScreen()
	term.HideCursor()
	term.Resize(width, height)

	// Any-event mouse tracking plus SGR extended coordinates.
	fmt.Fprint(os.Stdout, "\x1b[?1003h")
	fmt.Fprint(os.Stdout, "\x1b[?1006h")

	renderer, err := buildRenderer(cfg, width, height)
	if err != nil {
		return fmt.Errorf("build renderer: %w", err)
	}

	hud := NewHUD(mesh.Name, mesh.TriangleCount())
	showHUD := true

	targetFPS := cfg.Display.TargetFPS
	if targetFPS <= 0 {
		targetFPS = 30
	}
	rotation := viewer.NewRotationState(targetFPS)

	distance := cfg.Scene.Distance
	if distance <= 0 {
		distance = 3
	}
	camera := render.NewCamera(math3d.V3(0, 0, distance), math3d.Zero3())

	// The model spins on its own until the user takes over.
	autoSpin := cfg.Scene.SpinX != 0 || cfg.Scene.SpinY != 0

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		cancel()
	}()

	inputTorque := struct{ pitch, yaw, roll float64 }{}
	const torqueStrength = 3.0

	var mouseDown bool
	var lastMouseX, lastMouseY int
	var saveShot bool

	go func() {
		for ev := range term.Events() {
			switch ev := ev.(type) {
			case uv.WindowSizeEvent:
				width, height = ev.Width, ev.Height
				term.Erase()
				term.Resize(width, height)
				r2, err := buildRenderer(cfg, width, height)
				if err != nil {
					logger.Error("resize renderer", zap.Error(err))
					continue
				}
				renderer = r2

			case uv.KeyPressEvent:
				switch {
				case ev.MatchString("escape"), ev.MatchString("ctrl+c"):
					cancel()
					return
				case ev.MatchString("r"):
					rotation.Reset()
					autoSpin = cfg.Scene.SpinX != 0 || cfg.Scene.SpinY != 0
					distance = cfg.Scene.Distance
					camera.Eye = math3d.V3(0, 0, distance)
				case ev.MatchString("w", "up"):
					inputTorque.pitch = -torqueStrength
					autoSpin = false
				case ev.MatchString("s", "down"):
					inputTorque.pitch = torqueStrength
					autoSpin = false
				case ev.MatchString("a", "left"):
					inputTorque.yaw = -torqueStrength
					autoSpin = false
				case ev.MatchString("d", "right"):
					inputTorque.yaw = torqueStrength
					autoSpin = false
				case ev.MatchString("q"):
					inputTorque.roll = -torqueStrength
					autoSpin = false
				case ev.MatchString("e"):
					inputTorque.roll = torqueStrength
					autoSpin = false
				case ev.MatchString("space"):
					rotation.ApplyImpulse(
						(rand.Float64()-0.5)*1.5,
						(rand.Float64()-0.5)*1.5,
						(rand.Float64()-0.5)*1.5,
					)
					autoSpin = false
				case ev.MatchString("+", "="):
					distance = math32.Max(1.2, distance-0.25)
					camera.Eye = math3d.V3(0, 0, distance)
				case ev.MatchString("-", "_"):
					distance = math32.Min(4.5, distance+0.25)
					camera.Eye = math3d.V3(0, 0, distance)
				case ev.MatchString("x"):
					renderer.SetWireframe(!renderer.Config().Wireframe)
				case ev.MatchString("l"):
					renderer.SetLighting(!renderer.Config().Lighting)
				case ev.MatchString("f"):
					if renderer.Config().Fill == render.FillBarycentric {
						renderer.SetFill(render.FillScanline)
					} else {
						renderer.SetFill(render.FillBarycentric)
					}
				case ev.MatchString("p"):
					saveShot = true
				case ev.MatchString("?"), ev.MatchString("shift+/"):
					showHUD = !showHUD
				}

			case uv.KeyReleaseEvent:
				switch {
				case ev.MatchString("w"), ev.MatchString("up"), ev.MatchString("s"), ev.MatchString("down"):
					inputTorque.pitch = 0
				case ev.MatchString("a"), ev.MatchString("left"), ev.MatchString("d"), ev.MatchString("right"):
					inputTorque.yaw = 0
				case ev.MatchString("q"), ev.MatchString("e"):
					inputTorque.roll = 0
				}

			case uv.MouseClickEvent:
				mouseDown = true
				lastMouseX, lastMouseY = ev.X, ev.Y

			case uv.MouseReleaseEvent:
				mouseDown = false

			case uv.MouseMotionEvent:
				if mouseDown {
					dx := ev.X - lastMouseX
					dy := ev.Y - lastMouseY
					rotation.ApplyImpulse(float64(dy)*0.03, float64(dx)*0.03, 0)
					lastMouseX, lastMouseY = ev.X, ev.Y
					autoSpin = false
				}

			case uv.MouseWheelEvent:
				switch ev.Button {
				case uv.MouseWheelUp:
					distance = math32.Max(1.2, distance-0.25)
				case uv.MouseWheelDown:
					distance = math32.Min(4.5, distance+0.25)
				}
				camera.Eye = math3d.V3(0, 0, distance)
			}
		}
	}()

	targetDuration := time.Second / time.Duration(targetFPS)
	lastFrame := time.Now()

	cleanup := func() {
		fmt.Fprint(os.Stdout, "\x1b[?1003l")
		fmt.Fprint(os.Stdout, "\x1b[?1006l")
		term.ExitAltScreen()
		term.ShowCursor()
		term.Shutdown(context.Background())
	}

	for {
		select {
		case <-ctx.Done():
			cleanup()
			return nil
		default:
		}

		now := time.Now()
		dt := now.Sub(lastFrame).Seconds()
		lastFrame = now

		if dt > 0.1 {
			dt = 0.1
		}

		// Key release events are unreliable across terminals, so held
		// torque decays on its own.
		rotation.ApplyImpulse(
			inputTorque.pitch*dt,
			inputTorque.yaw*dt,
			inputTorque.roll*dt,
		)
		inputTorque.pitch *= 0.9
		inputTorque.yaw *= 0.9
		inputTorque.roll *= 0.9

		rotation.Update()
		if autoSpin {
			rotation.Pitch.Position += float64(cfg.Scene.SpinX) * dt
			rotation.Yaw.Position += float64(cfg.Scene.SpinY) * dt
		}
		mesh.Angle = rotation.Angles()

		renderer.Frame(camera, mesh)

		buf := renderer.Buffer()
		buf.Draw(term, uv.Rect(0, 0, width, height))
		if err := term.Display(); err != nil {
			cleanup()
			return fmt.Errorf("display: %w", err)
		}

		if saveShot {
			saveShot = false
			shot := fmt.Sprintf("prism-%s.png", time.Now().Format("20060102-150405"))
			if err := buf.SavePNG(shot); err != nil {
				logger.Error("save screenshot", zap.Error(err))
			} else {
				logger.Info("screenshot saved", zap.String("file", shot))
			}
		}

		hud.UpdateFPS()
		hud.Render(width, height, renderer.Config(), showHUD)

		elapsed := time.Since(now)
		if elapsed < targetDuration {
			time.Sleep(targetDuration - elapsed)
		}
	}
}
