package main

import (
	"fmt"
	"image/color"
	"log"
	"math"
	"math/rand"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/particlekit/go-particle-flock/pkg/behavior"
	"github.com/particlekit/go-particle-flock/pkg/geometry"
	"github.com/particlekit/go-particle-flock/pkg/ui"
)

const (
	screenWidth  = 1024
	screenHeight = 768

	maxBubbles   = 400 // fixed pool capacity
	surfaceY     = 220.0
	floorY       = -220.0
	spawnSpread  = 160.0
	maxBubbleAge = 14.0 // seconds before a bubble pops on its own

	spiralSparks = 90
	spiralPeriod = 6.0 // seconds for one spark to travel the helix

	focalLength = 520.0
	cameraDist  = 560.0
)

// bubble is one slot of the host-owned pool. The behaviors only ever see
// its age and seed; emission, popping and recycling happen here.
type bubble struct {
	pos    geometry.Vector3D
	vel    geometry.Vector3D
	wobble *behavior.Wobble
	age    float64
	size   float64
}

type Game struct {
	bubbles []*bubble
	t       float64
	nextID  int64

	panel *ui.Panel

	wBuoyancy   *ui.Slider
	wMaxRise    *ui.Slider
	wWobbleAmp  *ui.Slider
	wWobbleFreq *ui.Slider
	wSpawnRate  *ui.Slider
	wShowSpiral *ui.Checkbox
}

func newGame() *Game {
	panel := ui.NewPanel("Playground", 10, 10, 260)
	panel.AddSection("Bubbles")
	wBuoyancy := panel.AddSlider("Buoyancy", 0, 120, 40)
	wMaxRise := panel.AddSlider("Max Rise Speed", 5, 150, 60)
	wWobbleAmp := panel.AddSlider("Wobble Amplitude", 0, 40, 14)
	wWobbleFreq := panel.AddSlider("Wobble Frequency", 0.1, 3, 0.8)
	wSpawnRate := panel.AddSlider("Spawn / Tick", 0, 10, 3)
	panel.AddSection("Spiral")
	wShowSpiral := panel.AddCheckbox("Show Spiral", true)

	return &Game{
		bubbles:     make([]*bubble, 0, maxBubbles),
		panel:       panel,
		wBuoyancy:   wBuoyancy,
		wMaxRise:    wMaxRise,
		wWobbleAmp:  wWobbleAmp,
		wWobbleFreq: wWobbleFreq,
		wSpawnRate:  wSpawnRate,
		wShowSpiral: wShowSpiral,
	}
}

func (g *Game) spawnBubble() {
	g.nextID++
	g.bubbles = append(g.bubbles, &bubble{
		pos: geometry.Vector3D{
			X: (rand.Float64() - 0.5) * 2 * spawnSpread,
			Y: floorY,
			Z: (rand.Float64() - 0.5) * 2 * spawnSpread,
		},
		wobble: behavior.NewWobble(g.nextID, g.wWobbleAmp.Value, g.wWobbleFreq.Value),
		size:   2 + rand.Float64()*4,
	})
}

func (g *Game) Update() error {
	g.panel.Update()

	dt := 1.0 / float64(ebiten.TPS())
	g.t += dt

	// Emission, up to pool capacity.
	for i := 0; i < int(g.wSpawnRate.Value) && len(g.bubbles) < maxBubbles; i++ {
		g.spawnBubble()
	}

	buoyancy := behavior.BuoyancyParams{
		Accel:        g.wBuoyancy.Value,
		MaxRiseSpeed: g.wMaxRise.Value,
	}

	// Advance and recycle in one pass; expiry is the host's job.
	alive := g.bubbles[:0]
	for _, b := range g.bubbles {
		b.age += dt
		b.wobble.Amplitude = g.wWobbleAmp.Value
		b.wobble.Frequency = g.wWobbleFreq.Value

		b.vel = b.vel.Add(behavior.Buoyancy(b.vel.Y, buoyancy, dt))
		b.pos = b.pos.Add(b.vel.Mul(dt))

		// Pop at the surface or of old age.
		if b.pos.Y < surfaceY && b.age < maxBubbleAge {
			alive = append(alive, b)
		}
	}
	g.bubbles = alive

	return nil
}

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
	screen.Fill(color.RGBA{R: 8, G: 14, B: 34, A: 255})

	yaw := g.t * 0.1

	// Bubbles: integrated position plus the pure lateral wobble offset.
	for _, b := range g.bubbles {
		renderPos := b.pos.Add(b.wobble.Delta(b.age))
		sx, sy, scale, ok := project(renderPos, yaw)
		if !ok {
			continue
		}
		r := float32(b.size * scale)
		if r < 1 {
			r = 1
		}
		vector.StrokeCircle(screen, float32(sx), float32(sy), r, 1,
			color.RGBA{R: 150, G: 200, B: 255, A: 200}, true)
	}

	// Spiral sparks: no state at all, each position is a closed-form
	// expression of the global clock and the spark's seed.
	if g.wShowSpiral.Value {
		params := behavior.SpiralParams{
			Radius:       30,
			RadiusGrowth: 18,
			AngularSpeed: 2.4,
			ClimbSpeed:   60,
		}
		for i := 0; i < spiralSparks; i++ {
			age := math.Mod(g.t+float64(i)*spiralPeriod/spiralSparks, spiralPeriod)
			pos := behavior.Spiral(age, int64(i), params)
			pos.Y += floorY
			sx, sy, scale, ok := project(pos, yaw)
			if !ok {
				continue
			}
			r := float32(2 * scale)
			if r < 1 {
				r = 1
			}
			vector.FillCircle(screen, float32(sx), float32(sy), r,
				color.RGBA{R: 255, G: 210, B: 120, A: 255}, true)
		}
	}

	g.panel.Draw(screen)

	msg := fmt.Sprintf("FPS: %.1f  Bubbles: %d/%d", ebiten.ActualFPS(), len(g.bubbles), maxBubbles)
	ebitenutil.DebugPrintAt(screen, msg, screenWidth-250, 10)
}

func (g *Game) Layout(w, h int) (int, int) {
	return screenWidth, screenHeight
}

func main() {
	ebiten.SetWindowSize(screenWidth, screenHeight)
	ebiten.SetWindowTitle("Particle Playground: Bubbles & Spirals")
	if err := ebiten.RunGame(newGame()); err != nil {
		log.Fatal(err)
	}
}
