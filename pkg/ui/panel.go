package ui

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// Row heights, including their bottom margins.
const (
	sectionRowHeight  = 22
	sliderRowHeight   = 34 // 16px label line + bar + margin
	checkboxRowHeight = 22
	panelPadding      = 10
	titleHeight       = 20
)

// Panel lays out sliders and checkboxes in a single column and routes
// input to them. Widgets are added once at startup; the panel owns their
// positions, the caller keeps the returned pointers to read values.
type Panel struct {
	Title string
	X, Y  float64
	Width float64

	rows []row
}

type row struct {
	// exactly one of these is set
	section  string
	slider   *Slider
	checkbox *Checkbox
}

// NewPanel creates an empty panel at the given screen position.
func NewPanel(title string, x, y, width float64) *Panel {
	return &Panel{Title: title, X: x, Y: y, Width: width}
}

// AddSection adds a header row.
func (p *Panel) AddSection(title string) {
	p.rows = append(p.rows, row{section: title})
}

// AddSlider adds a slider row and returns the slider for value reads.
func (p *Panel) AddSlider(label string, min, max, value float64) *Slider {
	s := NewSlider(label, min, max, value)
	p.rows = append(p.rows, row{slider: s})
	return s
}

// AddCheckbox adds a checkbox row and returns the checkbox for value reads.
func (p *Panel) AddCheckbox(label string, value bool) *Checkbox {
	c := NewCheckbox(label, value)
	p.rows = append(p.rows, row{checkbox: c})
	return c
}

// Height returns the panel's total rendered height.
func (p *Panel) Height() float64 {
	h := float64(titleHeight + 2*panelPadding)
	for _, r := range p.rows {
		h += r.height()
	}
	return h
}

func (r row) height() float64 {
	switch {
	case r.section != "":
		return sectionRowHeight
	case r.slider != nil:
		return sliderRowHeight
	default:
		return checkboxRowHeight
	}
}

// Update positions all widgets, then lets them handle input.
func (p *Panel) Update() {
	p.layout()
	for _, r := range p.rows {
		switch {
		case r.slider != nil:
			r.slider.Update()
		case r.checkbox != nil:
			r.checkbox.Update()
		}
	}
}

// layout assigns widget positions top to bottom.
func (p *Panel) layout() {
	y := p.Y + titleHeight + panelPadding
	for _, r := range p.rows {
		switch {
		case r.slider != nil:
			r.slider.X = p.X + panelPadding
			r.slider.Y = y + 16 // leave the label line above the bar
			r.slider.W = p.Width - 2*panelPadding
		case r.checkbox != nil:
			r.checkbox.X = p.X + panelPadding
			r.checkbox.Y = y
		}
		y += r.height()
	}
}

// Draw renders the panel background and all rows.
func (p *Panel) Draw(screen *ebiten.Image) {
	p.layout()

	vector.FillRect(screen, float32(p.X), float32(p.Y), float32(p.Width), float32(p.Height()),
		color.RGBA{R: 40, G: 40, B: 45, A: 230}, true)
	vector.StrokeRect(screen, float32(p.X), float32(p.Y), float32(p.Width), float32(p.Height()),
		2, color.RGBA{R: 100, G: 100, B: 110, A: 255}, true)

	ebitenutil.DebugPrintAt(screen, p.Title, int(p.X+panelPadding), int(p.Y+4))

	y := p.Y + titleHeight + panelPadding
	for _, r := range p.rows {
		switch {
		case r.section != "":
			vector.FillRect(screen, float32(p.X+4), float32(y), float32(p.Width-8), 16,
				color.RGBA{R: 60, G: 60, B: 70, A: 255}, true)
			ebitenutil.DebugPrintAt(screen, r.section, int(p.X+panelPadding), int(y))
		case r.slider != nil:
			r.slider.Draw(screen)
		case r.checkbox != nil:
			r.checkbox.Draw(screen)
		}
		y += r.height()
	}
}
