package runner

import "time"

type Runner struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CoachID   string    `json:"coach_id"`
	CreatedAt time.Time `json:"created_at"`
}

// Stats is the coach-dashboard aggregate for one runner.
type Stats struct {
	RunnerID     string  `json:"runner_id"`
	Name         string  `json:"name"`
	TotalRuns    int     `json:"total_runs"`
	BestVelocity float64 `json:"best_velocity"`
	AvgVelocity  float64 `json:"avg_velocity"`
}
