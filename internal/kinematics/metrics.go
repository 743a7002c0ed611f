package kinematics

// Metrics are the scalar summary statistics of one series. Values are full
// float64 precision; rounding happens at the presentation edge.
type Metrics struct {
	MaxVelocity   float64 `json:"max_velocity"`
	AvgVelocity   float64 `json:"avg_velocity"`
	TotalDistance float64 `json:"total_distance"`
	Duration      float64 `json:"duration"`
}

// ComputeMetrics derives Metrics from a series. The average includes every
// sample, a leading v=0 start sample too. Duration is the elapsed time
// within the series (last minus first), so segment files that start mid-run
// report their own elapsed time rather than the absolute clock.
func ComputeMetrics(series Series) (Metrics, error) {
	if len(series) == 0 {
		return Metrics{}, ErrEmptySeries
	}

	m := Metrics{
		MaxVelocity:   series[0].Velocity,
		TotalDistance: series[0].Position,
	}
	sum := 0.0
	for _, s := range series {
		if s.Velocity > m.MaxVelocity {
			m.MaxVelocity = s.Velocity
		}
		if s.Position > m.TotalDistance {
			m.TotalDistance = s.Position
		}
		sum += s.Velocity
	}
	m.AvgVelocity = sum / float64(len(series))
	m.Duration = series[len(series)-1].Time - series[0].Time
	return m, nil
}
