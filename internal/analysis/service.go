package analysis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"backend-sprintlab/internal/db"
	"backend-sprintlab/internal/kinematics"
	"backend-sprintlab/internal/segment"
	"backend-sprintlab/internal/stream"

	"github.com/google/uuid"
)

var errRunnerRequired = errors.New("runner_id required")

type Service struct {
	db  db.Querier
	hub *stream.Hub
}

func NewService(db db.Querier, hub *stream.Hub) *Service {
	return &Service{db: db, hub: hub}
}

// CreateRun validates and analyzes the uploaded series, persists the run,
// and broadcasts the result on the runner's channel.
func (s *Service) CreateRun(ctx context.Context, req RunRequest) (Run, error) {
	if req.RunnerID == "" {
		return Run{}, errRunnerRequired
	}
	if len(req.Segments) == 0 {
		return Run{}, kinematics.ErrEmptySeries
	}

	run := Run{
		ID:       uuid.NewString(),
		RunnerID: req.RunnerID,
		TestDate: time.Now(),
	}

	// Overall aggregates pool every sample of every segment; the leading
	// standstill sample counts toward the average like any other.
	var pooledSum float64
	var pooledCount int
	for _, key := range segment.Keys() {
		series, ok := req.Segments[key]
		if !ok {
			continue
		}
		if err := series.Validate(); err != nil {
			return Run{}, fmt.Errorf("segment %s: %w", key, err)
		}

		metrics, err := kinematics.ComputeMetrics(series)
		if err != nil {
			return Run{}, err
		}
		position, err := kinematics.Project(series, kinematics.FieldPosition)
		if err != nil {
			return Run{}, err
		}
		velocity, err := kinematics.Project(series, kinematics.FieldVelocity)
		if err != nil {
			return Run{}, err
		}

		run.Segments = append(run.Segments, SegmentResult{
			Segment:  key,
			Samples:  series,
			Metrics:  metrics,
			Position: position,
			Velocity: velocity,
		})

		if metrics.MaxVelocity > run.MaxVelocity {
			run.MaxVelocity = metrics.MaxVelocity
		}
		run.TotalTime += metrics.Duration
		for _, sample := range series {
			pooledSum += sample.Velocity
		}
		pooledCount += len(series)
	}

	if len(run.Segments) == 0 {
		return Run{}, segment.ErrUnknownSegment
	}
	run.AvgVelocity = pooledSum / float64(pooledCount)

	row := s.db.QueryRow(ctx, `
		INSERT INTO analysis_runs (id, runner_id, test_date, max_velocity, avg_velocity, total_time)
		VALUES ($1,$2,$3,$4,$5,$6)
		RETURNING created_at
	`, run.ID, run.RunnerID, run.TestDate, run.MaxVelocity, run.AvgVelocity, run.TotalTime)
	if err := row.Scan(&run.CreatedAt); err != nil {
		return Run{}, err
	}

	for _, seg := range run.Segments {
		samples, err := json.Marshal(seg.Samples)
		if err != nil {
			return Run{}, err
		}
		_, err = s.db.Exec(ctx, `
			INSERT INTO analysis_segments (run_id, segment, samples, max_velocity, avg_velocity, total_distance, duration)
			VALUES ($1,$2,$3,$4,$5,$6,$7)
		`, run.ID, seg.Segment, samples, seg.Metrics.MaxVelocity, seg.Metrics.AvgVelocity,
			seg.Metrics.TotalDistance, seg.Metrics.Duration)
		if err != nil {
			return Run{}, err
		}
	}

	if s.hub != nil {
		payload, _ := json.Marshal(run)
		s.hub.Broadcast(run.RunnerID, payload)
	}
	return run, nil
}

// ListRuns returns report rows newest first, restricted to one coach's
// runners when coachID is set.
func (s *Service) ListRuns(ctx context.Context, coachID string) ([]Record, error) {
	query := `
		SELECT a.id, a.runner_id, r.name, a.test_date, a.max_velocity, a.avg_velocity, a.total_time
		FROM analysis_runs a
		JOIN runners r ON r.id = a.runner_id
		ORDER BY a.test_date DESC`
	args := []any{}
	if coachID != "" {
		query = `
		SELECT a.id, a.runner_id, r.name, a.test_date, a.max_velocity, a.avg_velocity, a.total_time
		FROM analysis_runs a
		JOIN runners r ON r.id = a.runner_id
		WHERE r.coach_id = $1
		ORDER BY a.test_date DESC`
		args = append(args, coachID)
	}

	rows, err := s.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		var rec Record
		if err := rows.Scan(&rec.ID, &rec.RunnerID, &rec.RunnerName, &rec.TestDate,
			&rec.MaxVelocity, &rec.AvgVelocity, &rec.TotalTime); err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, nil
}

// GetRun loads one run with its per-segment series and metrics.
func (s *Service) GetRun(ctx context.Context, id string) (Run, error) {
	var run Run
	row := s.db.QueryRow(ctx, `
		SELECT id, runner_id, test_date, max_velocity, avg_velocity, total_time, created_at
		FROM analysis_runs WHERE id=$1
	`, id)
	if err := row.Scan(&run.ID, &run.RunnerID, &run.TestDate, &run.MaxVelocity,
		&run.AvgVelocity, &run.TotalTime, &run.CreatedAt); err != nil {
		return Run{}, err
	}

	rows, err := s.db.Query(ctx, `
		SELECT segment, samples, max_velocity, avg_velocity, total_distance, duration
		FROM analysis_segments WHERE run_id=$1
		ORDER BY segment
	`, id)
	if err != nil {
		return Run{}, err
	}
	defer rows.Close()

	for rows.Next() {
		var seg SegmentResult
		var samples []byte
		if err := rows.Scan(&seg.Segment, &samples, &seg.Metrics.MaxVelocity,
			&seg.Metrics.AvgVelocity, &seg.Metrics.TotalDistance, &seg.Metrics.Duration); err != nil {
			return Run{}, err
		}
		if err := json.Unmarshal(samples, &seg.Samples); err != nil {
			return Run{}, err
		}
		run.Segments = append(run.Segments, seg)
	}
	return run, nil
}

// ProjectSegment projects one stored segment of a run onto chart points.
func (s *Service) ProjectSegment(ctx context.Context, runID, segmentKey string, field kinematics.Field) ([]kinematics.ChartPoint, error) {
	run, err := s.GetRun(ctx, runID)
	if err != nil {
		return nil, err
	}
	for _, seg := range run.Segments {
		if seg.Segment == segmentKey {
			return kinematics.Project(seg.Samples, field)
		}
	}
	return nil, segment.ErrUnknownSegment
}

// Summarize computes the report-page headline stats, coach-scoped when
// coachID is set.
func (s *Service) Summarize(ctx context.Context, coachID string) (Summary, error) {
	query := `
		SELECT COUNT(*), COALESCE(AVG(a.max_velocity),0), COALESCE(MAX(a.max_velocity),0), COALESCE(AVG(a.total_time),0)
		FROM analysis_runs a`
	args := []any{}
	if coachID != "" {
		query += `
		JOIN runners r ON r.id = a.runner_id
		WHERE r.coach_id = $1`
		args = append(args, coachID)
	}

	var sum Summary
	row := s.db.QueryRow(ctx, query, args...)
	if err := row.Scan(&sum.TotalRuns, &sum.AvgMaxVelocity, &sum.BestVelocity, &sum.AvgTotalTime); err != nil {
		return Summary{}, err
	}
	return sum, nil
}
