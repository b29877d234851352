package main

import (
	"flag"
	"fmt"
	"image/color"
	"log"
	"math"
	"math/rand"
	"runtime"
	"sort"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"

	"github.com/particlekit/go-particle-flock/pkg/flock"
	"github.com/particlekit/go-particle-flock/pkg/geometry"
	"github.com/particlekit/go-particle-flock/pkg/ui"
)

const (
	screenWidth  = 1024
	screenHeight = 768
	numBoids     = 300

	worldRadius = 180.0 // spawn cube half-extent
	focalLength = 520.0
	cameraDist  = 540.0 // camera offset along the view axis
	cameraSpeed = 0.15  // orbit, radians per second
)

// Game is the host side of the simulation: it owns the particle pool, the
// frame clock and the rendering, and hands the pool to the stepper once
// per tick.
type Game struct {
	pool []flock.Particle

	brute   *flock.Stepper
	gridded *flock.Stepper

	panel *ui.Panel

	wCohesionRadius    *ui.Slider
	wSeparationRadius  *ui.Slider
	wCohesionStrength  *ui.Slider
	wSeparationFactor  *ui.Slider
	wAlignmentStrength *ui.Slider
	wMaxSpeed          *ui.Slider
	wUseGrid           *ui.Checkbox

	yaw float64
}

func newGame(cfg *flock.Config) *Game {
	pool := make([]flock.Particle, numBoids)
	for i := range pool {
		pool[i] = flock.Particle{
			Pos: geometry.Vector3D{
				X: (rand.Float64() - 0.5) * 2 * worldRadius,
				Y: (rand.Float64() - 0.5) * 2 * worldRadius,
				Z: (rand.Float64() - 0.5) * 2 * worldRadius,
			},
			Vel: geometry.Vector3D{
				X: (rand.Float64() - 0.5) * cfg.MaxSpeed,
				Y: (rand.Float64() - 0.5) * cfg.MaxSpeed,
				Z: (rand.Float64() - 0.5) * cfg.MaxSpeed,
			},
		}
	}

	panel := ui.NewPanel("Configuration", 10, 10, 260)
	panel.AddSection("Interaction Radii")
	wCohesionRadius := panel.AddSlider("Cohesion Radius", 10, 150, cfg.CohesionRadius)
	wSeparationRadius := panel.AddSlider("Separation Radius", 1, 60, cfg.SeparationRadius)
	panel.AddSection("Rule Strengths")
	wCohesionStrength := panel.AddSlider("Cohesion", 0, 2, cfg.CohesionStrength)
	wSeparationFactor := panel.AddSlider("Separation", 0, 3, cfg.SeparationStrength)
	wAlignmentStrength := panel.AddSlider("Alignment", 0, 2, cfg.AlignmentStrength)
	panel.AddSection("Physics")
	wMaxSpeed := panel.AddSlider("Max Speed", 5, 200, cfg.MaxSpeed)
	panel.AddSection("Performance")
	wUseGrid := panel.AddCheckbox("Spatial Grid", false)

	// Both steppers spread the force pass across all cores; the pool is
	// large enough for that to pay off.
	workers := flock.WithWorkers(runtime.NumCPU())

	return &Game{
		pool:               pool,
		brute:              flock.NewStepper(workers),
		gridded:            flock.NewStepper(flock.WithGrid(), workers),
		panel:              panel,
		wCohesionRadius:    wCohesionRadius,
		wSeparationRadius:  wSeparationRadius,
		wCohesionStrength:  wCohesionStrength,
		wSeparationFactor:  wSeparationFactor,
		wAlignmentStrength: wAlignmentStrength,
		wMaxSpeed:          wMaxSpeed,
		wUseGrid:           wUseGrid,
	}
}

// configFromSliders builds the tick's immutable Config from the UI.
func (g *Game) configFromSliders() *flock.Config {
	cfg := &flock.Config{
		CohesionRadius:     g.wCohesionRadius.Value,
		SeparationRadius:   g.wSeparationRadius.Value,
		CohesionStrength:   g.wCohesionStrength.Value,
		SeparationStrength: g.wSeparationFactor.Value,
		AlignmentStrength:  g.wAlignmentStrength.Value,
		MaxSpeed:           g.wMaxSpeed.Value,
	}
	// The two radius sliders can cross; pin separation to the cohesion
	// radius so the config stays valid.
	if cfg.SeparationRadius > cfg.CohesionRadius {
		cfg.SeparationRadius = cfg.CohesionRadius
	}
	return cfg
}

func (g *Game) Update() error {
	g.panel.Update()

	dt := 1.0 / float64(ebiten.TPS())
	g.yaw += cameraSpeed * dt

	stepper := g.brute
	if g.wUseGrid.Value {
		stepper = g.gridded
	}
	stepper.Step(g.pool, g.configFromSliders(), dt)

	return nil
}

// project maps a world position to screen space with a yaw-orbiting
// camera, returning ok=false behind the near plane.
func project(p geometry.Vector3D, yaw float64) (sx, sy, scale float64, ok bool) {
	sinY, cosY := math.Sincos(yaw)
	x := p.X*cosY + p.Z*sinY
	z := -p.X*sinY + p.Z*cosY + cameraDist
	if z <= 10 {
		return 0, 0, 0, false
	}
	f := focalLength / z
	return x*f + screenWidth/2, screenHeight/2 - p.Y*f, f, true
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(color.RGBA{R: 10, G: 10, B: 30, A: 255})

	// Painter's order: project everything, then draw far to near.
	type drawable struct {
		sx, sy, hx, hy float64
		scale          float64
	}
	ds := make([]drawable, 0, len(g.pool))
	for i := range g.pool {
		b := &g.pool[i]
		sx, sy, scale, ok := project(b.Pos, g.yaw)
		if !ok {
			continue
		}
		head := b.Pos.Add(b.Vel.Normalize().Mul(6))
		hx, hy, _, ok := project(head, g.yaw)
		if !ok {
			continue
		}
		ds = append(ds, drawable{sx: sx, sy: sy, hx: hx, hy: hy, scale: scale})
	}
	sort.Slice(ds, func(i, j int) bool { return ds[i].scale < ds[j].scale })

	for _, d := range ds {
		drawBoid(screen, d.sx, d.sy, math.Atan2(d.hy-d.sy, d.hx-d.sx), d.scale)
	}

	g.panel.Draw(screen)

	msg := fmt.Sprintf("FPS: %.1f  TPS: %.1f  Boids: %d", ebiten.ActualFPS(), ebiten.ActualTPS(), len(g.pool))
	ebitenutil.DebugPrintAt(screen, msg, screenWidth-260, 10)
}

var whiteImage = ebiten.NewImage(3, 3)

func init() {
	whiteImage.Fill(color.RGBA{R: 100, G: 200, B: 255, A: 255})
}

// drawBoid renders one particle as a velocity-aligned triangle, sized by
// its projected depth.
func drawBoid(screen *ebiten.Image, x, y, angle, scale float64) {
	size := 6 * scale
	if size < 1.5 {
		size = 1.5
	}

	tipX := x + math.Cos(angle)*size
	tipY := y + math.Sin(angle)*size
	rightX := x + math.Cos(angle+2.5)*size*0.8
	rightY := y + math.Sin(angle+2.5)*size*0.8
	leftX := x + math.Cos(angle-2.5)*size*0.8
	leftY := y + math.Sin(angle-2.5)*size*0.8

	vertices := []ebiten.Vertex{
		{DstX: float32(tipX), DstY: float32(tipY), SrcX: 1, SrcY: 1, ColorR: 1, ColorG: 1, ColorB: 1, ColorA: 1},
		{DstX: float32(rightX), DstY: float32(rightY), SrcX: 1, SrcY: 1, ColorR: 1, ColorG: 1, ColorB: 1, ColorA: 1},
		{DstX: float32(leftX), DstY: float32(leftY), SrcX: 1, SrcY: 1, ColorR: 1, ColorG: 1, ColorB: 1, ColorA: 1},
	}
	indices := []uint16{0, 1, 2}

	screen.DrawTriangles(vertices, indices, whiteImage, &ebiten.DrawTrianglesOptions{})
}

func (g *Game) Layout(w, h int) (int, int) {
	return screenWidth, screenHeight
}

// demoConfig returns the slider defaults for an interactive run, scaled
// for speeds in world units per second.
func demoConfig() *flock.Config {
	return &flock.Config{
		CohesionRadius:     70.0,
		SeparationRadius:   18.0,
		CohesionStrength:   0.6,
		SeparationStrength: 1.0,
		AlignmentStrength:  0.5,
		MaxSpeed:           90.0,
	}
}

func main() {
	configFile := flag.String("config", "", "path to a JSON config file (defaults to built-in demo values)")
	schemaFile := flag.String("schema", "config.schema.json", "path to the JSON schema for -config")
	flag.Parse()

	cfg := demoConfig()
	if *configFile != "" {
		loaded, err := flock.LoadConfig(*configFile, *schemaFile)
		if err != nil {
			log.Fatal(err)
		}
		cfg = loaded
	}

	ebiten.SetWindowSize(screenWidth, screenHeight)
	ebiten.SetWindowTitle("Flocking Particles")
	if err := ebiten.RunGame(newGame(cfg)); err != nil {
		log.Fatal(err)
	}
}
