package report

import (
	"bytes"
	"context"
	"fmt"

	"backend-sprintlab/internal/analysis"
	"backend-sprintlab/internal/db"
)

// RunSource loads a stored run with its segments. *analysis.Service
// satisfies it.
type RunSource interface {
	GetRun(ctx context.Context, id string) (analysis.Run, error)
}

type Service struct {
	db   db.Querier
	runs RunSource
}

func NewService(querier db.Querier, runs RunSource) *Service {
	return &Service{db: querier, runs: runs}
}

// Export builds the xlsx report for one run and returns the file bytes
// together with a download filename.
func (s *Service) Export(ctx context.Context, runID string) ([]byte, string, error) {
	run, err := s.runs.GetRun(ctx, runID)
	if err != nil {
		return nil, "", err
	}

	var runnerName string
	row := s.db.QueryRow(ctx, `SELECT name FROM runners WHERE id=$1`, run.RunnerID)
	if err := row.Scan(&runnerName); err != nil {
		return nil, "", err
	}

	f, err := BuildWorkbook(run, runnerName)
	if err != nil {
		return nil, "", err
	}
	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, "", err
	}

	filename := fmt.Sprintf("sprint-report-%s-%s.xlsx", runnerName, run.TestDate.Format("2006-01-02"))
	return buf.Bytes(), filename, nil
}
