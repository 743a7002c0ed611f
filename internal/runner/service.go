package runner

import (
	"context"
	"errors"

	"backend-sprintlab/internal/db"

	"github.com/google/uuid"
)

type Service struct {
	db db.Querier
}

func NewService(db db.Querier) *Service {
	return &Service{db: db}
}

func (s *Service) CreateRunner(ctx context.Context, input Runner) (Runner, error) {
	if input.Name == "" {
		return Runner{}, errors.New("runner name required")
	}
	input.ID = uuid.NewString()
	row := s.db.QueryRow(ctx, `
		INSERT INTO runners (id, name, coach_id)
		VALUES ($1,$2,$3)
		RETURNING created_at
	`, input.ID, input.Name, input.CoachID)
	if err := row.Scan(&input.CreatedAt); err != nil {
		return Runner{}, err
	}
	return input, nil
}

// ListRunners returns every runner, or only a coach's roster when coachID
// is set.
func (s *Service) ListRunners(ctx context.Context, coachID string) ([]Runner, error) {
	query := `SELECT id, name, coach_id, created_at FROM runners ORDER BY created_at`
	args := []any{}
	if coachID != "" {
		query = `SELECT id, name, coach_id, created_at FROM runners WHERE coach_id=$1 ORDER BY created_at`
		args = append(args, coachID)
	}

	rows, err := s.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runners []Runner
	for rows.Next() {
		var r Runner
		if err := rows.Scan(&r.ID, &r.Name, &r.CoachID, &r.CreatedAt); err != nil {
			return nil, err
		}
		runners = append(runners, r)
	}
	return runners, nil
}

func (s *Service) DeleteRunner(ctx context.Context, id string) error {
	_, err := s.db.Exec(ctx, `DELETE FROM runners WHERE id=$1`, id)
	return err
}

// CoachStats aggregates analysis runs per runner for one coach: run count,
// best max velocity, mean of run averages.
func (s *Service) CoachStats(ctx context.Context, coachID string) ([]Stats, error) {
	rows, err := s.db.Query(ctx, `
		SELECT r.id, r.name, COUNT(a.id),
		       COALESCE(MAX(a.max_velocity), 0),
		       COALESCE(AVG(a.avg_velocity), 0)
		FROM runners r
		LEFT JOIN analysis_runs a ON a.runner_id = r.id
		WHERE r.coach_id = $1
		GROUP BY r.id, r.name
		ORDER BY r.name
	`, coachID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var stats []Stats
	for rows.Next() {
		var st Stats
		if err := rows.Scan(&st.RunnerID, &st.Name, &st.TotalRuns, &st.BestVelocity, &st.AvgVelocity); err != nil {
			return nil, err
		}
		stats = append(stats, st)
	}
	return stats, nil
}
