package clock

import (
	"math"
	"strconv"
	"strings"
	"time"
)

const (
	// MinWidth is the narrowest face Render draws.
	MinWidth = 21
	// DefaultWidth suits a regular 80-column terminal.
	DefaultWidth = 41

	rimRune    = '.'
	hourRune   = 'H'
	minuteRune = 'M'
	secondRune = '\''
	centerRune = 'O'
)

// View is everything Render needs to draw one frame.
type View struct {
	// Time is the current time in the selected zone.
	Time time.Time
	// Alarms are the pending alarms in registry order.
	Alarms []string
	// Playing is set while an alarm sound is playing.
	Playing bool
}

// canvas is a fixed-size character grid.
type canvas struct {
	width, height int
	cells         [][]rune
}

// newCanvas creates a blank grid.
func newCanvas(width, height int) *canvas {
	cells := make([][]rune, height)
	for y := range cells {
		cells[y] = []rune(strings.Repeat(" ", width))
	}

	return &canvas{width: width, height: height, cells: cells}
}

// set writes r at the nearest cell, ignoring points outside the grid.
func (c *canvas) set(x, y float64, r rune) {
	ix, iy := int(math.Round(x)), int(math.Round(y))
	if ix < 0 || iy < 0 || ix >= c.width || iy >= c.height {
		return
	}

	c.cells[iy][ix] = r
}

// text writes s centered on (x, y).
func (c *canvas) text(x, y float64, s string) {
	start := x - float64(len(s)-1)/2
	for i, r := range s {
		c.set(start+float64(i), y, r)
	}
}

// line rasterises a segment by sampling it once per cell.
func (c *canvas) line(x1, y1, x2, y2 float64, r rune) {
	steps := int(math.Ceil(math.Max(math.Abs(x2-x1), math.Abs(y2-y1))))
	if steps == 0 {
		c.set(x1, y1, r)

		return
	}

	for i := 0; i <= steps; i++ {
		t := float64(i) / float64(steps)
		c.set(x1+(x2-x1)*t, y1+(y2-y1)*t, r)
	}
}

// String joins the grid rows, trimming trailing blanks.
func (c *canvas) String() string {
	var b strings.Builder

	for _, row := range c.cells {
		b.WriteString(strings.TrimRight(string(row), " "))
		b.WriteByte('\n')
	}

	return b.String()
}

// RenderFace draws an analog face for t, width columns wide.
// Terminal cells are about twice as tall as wide, so the face is drawn as
// an ellipse half as tall as it is wide.
func RenderFace(t time.Time, width int) string {
	if width < MinWidth {
		width = MinWidth
	}

	// Odd sizes give the face a center cell.
	if width%2 == 0 {
		width++
	}

	height := width/2 + 1
	if height%2 == 0 {
		height++
	}

	var (
		c  = newCanvas(width, height)
		cx = float64(width-1) / 2
		cy = float64(height-1) / 2
		rx = cx
		ry = cy
	)

	// point maps a unit-circle direction and radius fraction onto the ellipse.
	point := func(fraction, angle float64) (float64, float64) {
		x, _ := Point(cx, cy, rx*fraction, angle)
		_, y := Point(cx, cy, ry*fraction, angle)

		return x, y
	}

	for i := range marksPerFace {
		x, y := point(1, float64(i*degreesPerMinute-topOffset))
		c.set(x, y, rimRune)
	}

	angles := Hands(t)

	for _, hand := range []struct {
		ratio float64
		angle float64
		r     rune
	}{
		{SecondHandRatio, angles.Second, secondRune},
		{MinuteHandRatio, angles.Minute, minuteRune},
		{HourHandRatio, angles.Hour, hourRune},
	} {
		x, y := point(hand.ratio, hand.angle)
		c.line(cx, cy, x, y, hand.r)
	}

	// Labels go last so they stay readable over the hands.
	for hour := 1; hour <= hoursPerFace; hour++ {
		x, y := point(0.8, float64(hour*degreesPerHour-topOffset))
		c.text(x, y, strconv.Itoa(hour))
	}

	c.set(cx, cy, centerRune)

	return c.String()
}

// Render draws the face followed by the digital time and the alarm list.
func Render(v View, width int) string {
	var b strings.Builder

	b.WriteString(RenderFace(v.Time, width))
	b.WriteString(Digital(v.Time))
	b.WriteString(" ")
	b.WriteString(v.Time.Location().String())
	b.WriteByte('\n')

	if v.Playing {
		b.WriteString("ALARM! It's time!\n")
	}

	if len(v.Alarms) == 0 {
		b.WriteString("No pending alarms\n")

		return b.String()
	}

	b.WriteString("Pending alarms:\n")

	for _, alarm := range v.Alarms {
		b.WriteString("  ")
		b.WriteString(alarm)
		b.WriteByte('\n')
	}

	return b.String()
}
