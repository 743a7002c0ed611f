package report

import (
	"fmt"

	"backend-sprintlab/internal/analysis"

	"github.com/xuri/excelize/v2"
)

const sheetName = "Report"

// BuildWorkbook renders one analyzed run as a spreadsheet: a headline
// block, a per-segment summary table, and side-by-side detail columns
// with every sample of every segment.
func BuildWorkbook(run analysis.Run, runnerName string) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return nil, err
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, err
	}

	setCell := func(col, row int, value any) {
		cell, _ := excelize.CoordinatesToCellName(col, row)
		_ = f.SetCellValue(sheetName, cell, value)
	}
	setBold := func(col, row int, value any) {
		cell, _ := excelize.CoordinatesToCellName(col, row)
		_ = f.SetCellValue(sheetName, cell, value)
		_ = f.SetCellStyle(sheetName, cell, cell, bold)
	}

	setBold(1, 1, "Sprint Analysis Report")
	setCell(1, 2, fmt.Sprintf("Runner: %s", runnerName))
	setCell(1, 3, fmt.Sprintf("Test date: %s", run.TestDate.Format("2006-01-02")))

	// Summary table.
	row := 5
	setBold(1, row, "Segment")
	setBold(2, row, "Max Velocity (m/s)")
	setBold(3, row, "Avg Velocity (m/s)")
	setBold(4, row, "Time (s)")
	for _, seg := range run.Segments {
		row++
		setCell(1, row, seg.Segment)
		setCell(2, row, fmt.Sprintf("%.2f", seg.Metrics.MaxVelocity))
		setCell(3, row, fmt.Sprintf("%.2f", seg.Metrics.AvgVelocity))
		setCell(4, row, fmt.Sprintf("%.2f", seg.Metrics.Duration))
	}
	row++
	setBold(1, row, "Overall")
	setCell(2, row, fmt.Sprintf("%.2f", run.MaxVelocity))
	setCell(3, row, fmt.Sprintf("%.2f", run.AvgVelocity))
	setCell(4, row, fmt.Sprintf("%.2f", run.TotalTime))

	// Detail columns, two per segment.
	detailHeader := row + 2
	for i, seg := range run.Segments {
		timeCol := i*2 + 1
		speedCol := timeCol + 1
		setBold(timeCol, detailHeader, fmt.Sprintf("%s Time (s)", seg.Segment))
		setBold(speedCol, detailHeader, fmt.Sprintf("%s Speed (m/s)", seg.Segment))
		for j, sample := range seg.Samples {
			setCell(timeCol, detailHeader+1+j, fmt.Sprintf("%.3f", sample.Time))
			setCell(speedCol, detailHeader+1+j, fmt.Sprintf("%.2f", sample.Velocity))
		}
	}

	lastCol, _ := excelize.ColumnNumberToName(max(4, len(run.Segments)*2))
	if err := f.SetColWidth(sheetName, "A", lastCol, 20); err != nil {
		return nil, err
	}
	return f, nil
}
