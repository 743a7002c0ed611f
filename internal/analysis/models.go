package analysis

import (
	"time"

	"backend-sprintlab/internal/kinematics"
)

// SegmentResult carries one segment's series, its derived metrics, and the
// two chart projections the dashboard renders.
type SegmentResult struct {
	Segment  string                  `json:"segment"`
	Samples  kinematics.Series       `json:"samples"`
	Metrics  kinematics.Metrics      `json:"metrics"`
	Position []kinematics.ChartPoint `json:"position_points"`
	Velocity []kinematics.ChartPoint `json:"velocity_points"`
}

// Run is one full sprint analysis: per-segment results plus the overall
// aggregates persisted for the report pages.
type Run struct {
	ID          string          `json:"id"`
	RunnerID    string          `json:"runner_id"`
	TestDate    time.Time       `json:"test_date"`
	MaxVelocity float64         `json:"max_velocity"`
	AvgVelocity float64         `json:"avg_velocity"`
	TotalTime   float64         `json:"total_time"`
	Segments    []SegmentResult `json:"segments"`
	CreatedAt   time.Time       `json:"created_at"`
}

type RunRequest struct {
	RunnerID string                       `json:"runner_id"`
	Segments map[string]kinematics.Series `json:"segments"`
}

// Record is the report-list row: run aggregates joined with the runner name.
type Record struct {
	ID          string    `json:"id"`
	RunnerID    string    `json:"runner_id"`
	RunnerName  string    `json:"runner_name"`
	TestDate    time.Time `json:"test_date"`
	MaxVelocity float64   `json:"max_velocity"`
	AvgVelocity float64   `json:"avg_velocity"`
	TotalTime   float64   `json:"total_time"`
}

// Summary is the report-page headline block.
type Summary struct {
	TotalRuns      int     `json:"total_runs"`
	AvgMaxVelocity float64 `json:"avg_max_velocity"`
	BestVelocity   float64 `json:"best_velocity"`
	AvgTotalTime   float64 `json:"avg_total_time"`
}
