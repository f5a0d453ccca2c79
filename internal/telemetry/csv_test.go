package telemetry

import (
	"math"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadCSV(t *testing.T) {
	input := `timestamp,temperature,humidity,energy_consumption,site_name
2025-03-03T00:00:00Z,20.5,55,120,A동
2025-03-03 01:00:00,,60,0.8,A동
2025-03-03T02:00:00Z,21.0,not-a-number,130,B동
`

	ds, err := LoadCSV(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, ds.Rows, 3)

	// site_name은 알 수 없는 컬럼 - 무시
	assert.Equal(t, []Column{ColTemperature, ColHumidity, ColEnergyConsumption}, ds.Columns)
	assert.True(t, ds.Has(ColTemperature))
	assert.False(t, ds.Has(ColVibrationLevel))

	assert.Equal(t, time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC), ds.Rows[0].Timestamp)
	assert.Equal(t, 20.5, ds.Rows[0].Temperature)
	assert.Equal(t, 55.0, ds.Rows[0].Humidity)

	// 빈 셀은 NaN으로 적재
	assert.True(t, math.IsNaN(ds.Rows[1].Temperature))
	assert.Equal(t, 60.0, ds.Rows[1].Humidity)

	// 파싱 불가 셀도 결측 처리
	assert.True(t, math.IsNaN(ds.Rows[2].Humidity))

	// 적재하지 않은 컬럼은 전부 NaN
	assert.True(t, math.IsNaN(ds.Rows[0].VibrationLevel))
}

func TestLoadCSV_MissingTimestampColumn(t *testing.T) {
	input := "temperature,humidity\n20.5,55\n"

	_, err := LoadCSV(strings.NewReader(input))
	require.Error(t, err)

	var verr ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "timestamp", verr.Field)
}

func TestLoadCSV_UnparseableTimestamp(t *testing.T) {
	input := "timestamp,temperature\nnot-a-date,20.5\n"

	_, err := LoadCSV(strings.NewReader(input))
	require.Error(t, err)

	var verr ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "timestamp", verr.Field)
}

func TestLoadCSV_DateOnlyLayout(t *testing.T) {
	input := "timestamp,worker_count\n2025-03-03,42\n"

	ds, err := LoadCSV(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, ds.Rows, 1)
	assert.Equal(t, time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC), ds.Rows[0].Timestamp)
	assert.Equal(t, 42.0, ds.Rows[0].WorkerCount)
}
