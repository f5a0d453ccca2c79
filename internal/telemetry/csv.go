package telemetry

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"
)

// ValidationError 입력 검증 실패 (프로그램 중단)
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// timestampLayouts are tried in order when parsing the timestamp column.
var timestampLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// LoadCSV reads a telemetry table from CSV.
// 필수 컬럼: timestamp. 나머지 컬럼은 선택 - 없는 컬럼에 의존하는
// 계산은 하위 단계에서 건너뜀. 빈 셀은 NaN으로 적재.
func LoadCSV(r io.Reader) (*Dataset, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("read csv header: %w", err)
	}

	tsIdx := -1
	colIdx := make(map[int]Column)
	var columns []Column

	for i, name := range header {
		name = strings.TrimSpace(strings.ToLower(name))
		if name == "timestamp" {
			tsIdx = i
			continue
		}
		col := Column(name)
		if col.IsValid() {
			colIdx[i] = col
			columns = append(columns, col)
		}
		// 알 수 없는 컬럼은 무시 (fail하지 않음)
	}

	if tsIdx < 0 {
		return nil, ValidationError{"timestamp", "required column missing"}
	}

	var rows []Row
	line := 1
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read csv line %d: %w", line+1, err)
		}
		line++

		ts, err := parseTimestamp(record[tsIdx])
		if err != nil {
			return nil, ValidationError{
				Field:   "timestamp",
				Message: fmt.Sprintf("line %d: %v", line, err),
			}
		}

		row := NewRow(ts)
		for i, col := range colIdx {
			if i >= len(record) {
				continue
			}
			cell := strings.TrimSpace(record[i])
			if cell == "" {
				continue // missing cell stays NaN
			}
			v, err := strconv.ParseFloat(cell, 64)
			if err != nil {
				continue // unparseable cell treated as missing
			}
			row.SetValue(col, v)
		}
		rows = append(rows, row)
	}

	return &Dataset{Rows: rows, Columns: columns}, nil
}

func parseTimestamp(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range timestampLayouts {
		if ts, err := time.Parse(layout, s); err == nil {
			return ts, nil
		}
	}
	return time.Time{}, fmt.Errorf("unparseable timestamp %q", s)
}
