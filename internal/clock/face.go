package clock

import (
	"math"
	"strconv"
	"time"
)

const (
	// degreesPerHour is the hour hand sweep per hour.
	degreesPerHour = 30
	// degreesPerMinute is the minute and second hand sweep per unit.
	degreesPerMinute = 6
	// topOffset rotates angle zero from 3 o'clock to 12 o'clock.
	topOffset = 90

	minutesPerHour = 60
	marksPerFace   = 60
	marksPerHour   = 5
	hoursPerFace   = 12
)

// Hand lengths as a fraction of the face radius.
const (
	HourHandRatio   = 0.5
	MinuteHandRatio = 0.7
	SecondHandRatio = 0.9
)

// Angles holds hand directions in degrees, measured clockwise from
// 3 o'clock with y growing downwards (screen coordinates).
type Angles struct {
	Hour   float64
	Minute float64
	Second float64
}

// Hands returns the hand angles for t.
func Hands(t time.Time) Angles {
	var (
		hour   = float64(t.Hour() % hoursPerFace)
		minute = float64(t.Minute())
		second = float64(t.Second())
	)

	return Angles{
		Hour:   (hour+minute/minutesPerHour)*degreesPerHour - topOffset,
		Minute: (minute+second/minutesPerHour)*degreesPerMinute - topOffset,
		Second: second*degreesPerMinute - topOffset,
	}
}

// Point returns the end of a segment of the given length leaving (cx, cy) at angle degrees.
func Point(cx, cy, length, angle float64) (float64, float64) {
	rad := angle * math.Pi / 180

	return cx + length*math.Cos(rad), cy + length*math.Sin(rad)
}

// Label is an hour number placed on the face.
type Label struct {
	Text string  `json:"text"`
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
}

// Tick is a minute mark on the rim. Major ticks sit on the hours.
type Tick struct {
	X1    float64 `json:"x1"`
	Y1    float64 `json:"y1"`
	X2    float64 `json:"x2"`
	Y2    float64 `json:"y2"`
	Major bool    `json:"major"`
}

// Hand is a segment from the face center.
type Hand struct {
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	Angle float64 `json:"angle"`
}

// Face is the static geometry of a round clock of a given size.
type Face struct {
	CenterX float64 `json:"center_x"`
	CenterY float64 `json:"center_y"`
	Radius  float64 `json:"radius"`

	Labels []Label `json:"labels"`
	Ticks  []Tick  `json:"ticks"`
}

// NewFace lays out a face that fits a size x size square.
func NewFace(size float64) *Face {
	f := &Face{
		CenterX: size / 2,
		CenterY: size / 2,
		Radius:  size / 3,
		Labels:  make([]Label, 0, hoursPerFace),
		Ticks:   make([]Tick, 0, marksPerFace),
	}

	var (
		majorLength = f.Radius * 0.15
		minorLength = f.Radius * 0.05
		labelInset  = f.Radius * 0.3
	)

	for i := range marksPerFace {
		var (
			angle  = float64(i*degreesPerMinute - topOffset)
			major  = i%marksPerHour == 0
			length = minorLength
		)

		if major {
			length = majorLength
		}

		x1, y1 := Point(f.CenterX, f.CenterY, f.Radius-length, angle)
		x2, y2 := Point(f.CenterX, f.CenterY, f.Radius, angle)
		f.Ticks = append(f.Ticks, Tick{X1: x1, Y1: y1, X2: x2, Y2: y2, Major: major})

		if !major {
			continue
		}

		hour := i / marksPerHour
		if hour == 0 {
			hour = hoursPerFace
		}

		x, y := Point(f.CenterX, f.CenterY, f.Radius-labelInset, angle)
		f.Labels = append(f.Labels, Label{Text: strconv.Itoa(hour), X: x, Y: y})
	}

	return f
}

// Hands returns the hour, minute and second hand end points for t.
func (f *Face) Hands(t time.Time) (Hand, Hand, Hand) {
	angles := Hands(t)

	hand := func(ratio, angle float64) Hand {
		x, y := Point(f.CenterX, f.CenterY, f.Radius*ratio, angle)

		return Hand{X: x, Y: y, Angle: angle}
	}

	return hand(HourHandRatio, angles.Hour),
		hand(MinuteHandRatio, angles.Minute),
		hand(SecondHandRatio, angles.Second)
}

// Digital formats t as "YYYY-MM-DD HH:MM:SS".
func Digital(t time.Time) string {
	return t.Format(time.DateTime)
}
