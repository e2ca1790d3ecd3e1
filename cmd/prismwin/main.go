// prismwin - Desktop 3D Model Viewer
// The same CPU rasterizer as prism, presented in a window instead of
// terminal cells.
//
// Controls:
//
//	Mouse drag  - Rotate model (yaw/pitch)
//	Scroll      - Zoom in/out
//	W/S/A/D     - Pitch and yaw
//	Q/E         - Roll left/right
//	Space       - Apply random impulse
//	R           - Reset rotation and zoom
//	X           - Toggle wireframe mode
//	L           - Toggle lighting
//	F           - Switch fill strategy
//	P           - Save a PNG screenshot
//	H           - Toggle HUD overlay
//	Esc         - Quit
package main

import (
	"flag"
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/chewxy/math32"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"go.uber.org/zap"

	"github.com/softlit/prism/internal/config"
	"github.com/softlit/prism/internal/logger"
	"github.com/softlit/prism/internal/viewer"
	"github.com/softlit/prism/pkg/geom"
	"github.com/softlit/prism/pkg/math3d"
	"github.com/softlit/prism/pkg/render"
)

type game struct {
	cfg      *config.Config
	name     string
	renderer *render.Renderer
	mesh     *geom.Mesh
	camera   render.Camera
	rotation *viewer.RotationState
	distance float32
	autoSpin bool
	last     time.Time

	frame *ebiten.Image
	flip  []byte

	dragging     bool
	lastX, lastY int
	showHUD      bool
}

const torqueStrength = 3.0

func (g *game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}

	now := time.Now()
	dt := now.Sub(g.last).Seconds()
	g.last = now
	if dt > 0.1 {
		dt = 0.1
	}

	g.handleKeys(dt)
	g.handleMouse()

	g.rotation.Update()
	if g.autoSpin {
		g.rotation.Pitch.Position += float64(g.cfg.Scene.SpinX) * dt
		g.rotation.Yaw.Position += float64(g.cfg.Scene.SpinY) * dt
	}
	g.mesh.Angle = g.rotation.Angles()

	g.renderer.Frame(g.camera, g.mesh)
	return nil
}

func (g *game) handleKeys(dt float64) {
	torque := torqueStrength * dt
	if ebiten.IsKeyPressed(ebiten.KeyW) || ebiten.IsKeyPressed(ebiten.KeyArrowUp) {
		g.rotation.ApplyImpulse(-torque, 0, 0)
		g.autoSpin = false
	}
	if ebiten.IsKeyPressed(ebiten.KeyS) || ebiten.IsKeyPressed(ebiten.KeyArrowDown) {
		g.rotation.ApplyImpulse(torque, 0, 0)
		g.autoSpin = false
	}
	if ebiten.IsKeyPressed(ebiten.KeyA) || ebiten.IsKeyPressed(ebiten.KeyArrowLeft) {
		g.rotation.ApplyImpulse(0, -torque, 0)
		g.autoSpin = false
	}
	if ebiten.IsKeyPressed(ebiten.KeyD) || ebiten.IsKeyPressed(ebiten.KeyArrowRight) {
		g.rotation.ApplyImpulse(0, torque, 0)
		g.autoSpin = false
	}
	if ebiten.IsKeyPressed(ebiten.KeyQ) {
		g.rotation.ApplyImpulse(0, 0, -torque)
		g.autoSpin = false
	}
	if ebiten.IsKeyPressed(ebiten.KeyE) {
		g.rotation.ApplyImpulse(0, 0, torque)
		g.autoSpin = false
	}

	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.rotation.ApplyImpulse(
			(rand.Float64()-0.5)*1.5,
			(rand.Float64()-0.5)*1.5,
			(rand.Float64()-0.5)*1.5,
		)
		g.autoSpin = false
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.rotation.Reset()
		g.autoSpin = g.cfg.Scene.SpinX != 0 || g.cfg.Scene.SpinY != 0
		g.distance = g.cfg.Scene.Distance
		g.camera.Eye = math3d.V3(0, 0, g.distance)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyX) {
		g.renderer.SetWireframe(!g.renderer.Config().Wireframe)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyL) {
		g.renderer.SetLighting(!g.renderer.Config().Lighting)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF) {
		if g.renderer.Config().Fill == render.FillBarycentric {
			g.renderer.SetFill(render.FillScanline)
		} else {
			g.renderer.SetFill(render.FillBarycentric)
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyH) {
		g.showHUD = !g.showHUD
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyP) {
		shot := fmt.Sprintf("prism-%s.png", time.Now().Format("20060102-150405"))
		if err := g.renderer.Buffer().SavePNG(shot); err != nil {
			logger.Error("save screenshot", zap.Error(err))
		} else {
			logger.Info("screenshot saved", zap.String("file", shot))
		}
	}
}

func (g *game) handleMouse() {
	mx, my := ebiten.CursorPosition()
	if ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft) {
		if g.dragging {
			dx := mx - g.lastX
			dy := my - g.lastY
			if dx != 0 || dy != 0 {
				g.rotation.ApplyImpulse(float64(dy)*0.005, float64(dx)*0.005, 0)
				g.autoSpin = false
			}
		}
		g.dragging = true
		g.lastX, g.lastY = mx, my
	} else {
		g.dragging = false
	}

	if _, wy := ebiten.Wheel(); wy != 0 {
		g.distance = math32.Min(4.5, math32.Max(1.2, g.distance-float32(wy)*0.25))
		g.camera.Eye = math3d.V3(0, 0, g.distance)
	}
}

func (g *game) Draw(screen *ebiten.Image) {
	buf := g.renderer.Buffer()
	w, h := buf.Width(), buf.Height()

	if g.frame == nil || g.frame.Bounds().Dx() != w || g.frame.Bounds().Dy() != h {
		if g.frame != nil {
			g.frame.Deallocate()
		}
		g.frame = ebiten.NewImage(w, h)
		g.flip = make([]byte, w*h*render.BytesPerPixel)
	}

	// Raw pixel rows are stored bottom-up; the texture wants top-down.
	src := buf.Pix()
	stride := w * render.BytesPerPixel
	for y := 0; y < h; y++ {
		copy(g.flip[y*stride:(y+1)*stride], src[(h-1-y)*stride:(h-y)*stride])
	}
	g.frame.WritePixels(g.flip)
	screen.DrawImage(g.frame, nil)

	if g.showHUD {
		cfg := g.renderer.Config()
		wire := " "
		if cfg.Wireframe {
			wire = "x"
		}
		light := " "
		if cfg.Lighting {
			light = "x"
		}
		status := fmt.Sprintf("%.0f FPS  %s  %d tris\n[%s] wireframe  [%s] lighting  fill: %s",
			ebiten.ActualFPS(), g.name, g.mesh.TriangleCount(), wire, light, cfg.Fill)
		ebitenutil.DebugPrintAt(screen, status, 4, 4)
	}
}

func (g *game) Layout(outsideWidth, outsideHeight int) (int, int) {
	cfg := g.renderer.Config()
	return cfg.Width, cfg.Height
}

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "prismwin - Desktop 3D Model Viewer\n\n")
		fmt.Fprintf(os.Stderr, "Usage: prismwin [options] [model.obj|model.glb]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
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

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Error: init logging: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	mesh := viewer.LoadScene(cfg)

	rc, err := cfg.RendererConfig(0, 0)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	renderer, err := render.NewRenderer(rc)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	distance := cfg.Scene.Distance
	if distance <= 0 {
		distance = 3
	}

	targetFPS := cfg.Display.TargetFPS
	if targetFPS <= 0 {
		targetFPS = 60
	}

	g := &game{
		cfg:      cfg,
		name:     mesh.Name,
		renderer: renderer,
		mesh:     mesh,
		camera:   render.NewCamera(math3d.V3(0, 0, distance), math3d.Zero3()),
		rotation: viewer.NewRotationState(targetFPS),
		distance: distance,
		autoSpin: cfg.Scene.SpinX != 0 || cfg.Scene.SpinY != 0,
		last:     time.Now(),
		showHUD:  true,
	}

	scale := cfg.Display.Scale
	if scale <= 0 {
		scale = 1
	}
	ebiten.SetWindowTitle("prism - " + mesh.Name)
	ebiten.SetWindowSize(rc.Width*scale, rc.Height*scale)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(targetFPS)

	if err := ebiten.RunGame(g); err != nil {
		logger.Error("viewer exited", zap.Error(err))
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
