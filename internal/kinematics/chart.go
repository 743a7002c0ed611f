package kinematics

import "fmt"

// Field selects which sample value a projection maps onto the y axis. The
// set is closed: exactly position and velocity exist.
type Field string

const (
	FieldPosition Field = "position"
	FieldVelocity Field = "velocity"
)

// Kind is the rendering hint the presentation layer pairs with a field.
// It never changes the projected data shape.
type Kind string

const (
	KindLine Kind = "line"
	KindBar  Kind = "bar"
)

// ParseField maps a request string onto the closed field set.
func ParseField(s string) (Field, error) {
	switch Field(s) {
	case FieldPosition, FieldVelocity:
		return Field(s), nil
	}
	return "", ErrInvalidField
}

// Unit returns the value-axis unit suffix for the field.
func (f Field) Unit() string {
	if f == FieldVelocity {
		return "m/s"
	}
	return "m"
}

// DefaultKind is the chart kind the dashboard renders for the field:
// a continuous line for position, discrete bars for velocity.
func (f Field) DefaultKind() Kind {
	if f == FieldVelocity {
		return KindBar
	}
	return KindLine
}

// ChartPoint is one renderable (x, y) pair: x is sample time, y the
// selected field value.
type ChartPoint struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Project maps a series onto chart points for one field, one point per
// sample in series order.
func Project(series Series, field Field) ([]ChartPoint, error) {
	if field != FieldPosition && field != FieldVelocity {
		return nil, ErrInvalidField
	}
	if len(series) == 0 {
		return nil, ErrEmptySeries
	}

	points := make([]ChartPoint, len(series))
	for i, s := range series {
		y := s.Position
		if field == FieldVelocity {
			y = s.Velocity
		}
		points[i] = ChartPoint{X: s.Time, Y: y}
	}
	return points, nil
}

// TimeLabel formats a time-axis label with its unit suffix.
func TimeLabel(t float64) string {
	return fmt.Sprintf("%gs", t)
}

// ValueLabel formats a value-axis label with the field's unit suffix.
func ValueLabel(v float64, field Field) string {
	return fmt.Sprintf("%g%s", v, field.Unit())
}

// TooltipValue formats a tooltip value to exactly three decimal places
// with the field's unit suffix.
func TooltipValue(v float64, field Field) string {
	return fmt.Sprintf("%.3f%s", v, field.Unit())
}

// TooltipTime formats a tooltip timestamp to three decimal places with the
// seconds suffix.
func TooltipTime(t float64) string {
	return fmt.Sprintf("%.3fs", t)
}
