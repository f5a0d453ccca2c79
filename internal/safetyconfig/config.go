package safetyconfig

import "fmt"

// Config는 안전 룰 엔진의 전체 설정 artifact
// 외부 YAML 파일로 관리되며, 없으면 Default() 사용.
type Config struct {
	Thresholds  Thresholds             `yaml:"thresholds" json:"thresholds"`
	Performance *ValidationPerformance `yaml:"validation_performance,omitempty" json:"validation_performance,omitempty"`
}

// Thresholds 3개 선행 지표의 임계값
// 각 검사는 독립적 - 하나라도 초과하면 HIGH_RISK (순수 OR 로직)
type Thresholds struct {
	VibrationLevel float64 `yaml:"vibration_level" json:"vibration_level"`
	HeatIndex      float64 `yaml:"heat_index" json:"heat_index"`
	WorkerDensity  float64 `yaml:"worker_density" json:"worker_density"`
}

// ValidationPerformance 임계값 검증 성능 메타데이터
// 표시용으로만 전달 - 분류 로직에는 사용하지 않음.
type ValidationPerformance struct {
	Recall    float64 `yaml:"recall" json:"recall"`
	Precision float64 `yaml:"precision" json:"precision"`
	F1Score   float64 `yaml:"f1_score" json:"f1_score"`
}

// Default returns the documented fallback thresholds used when no
// artifact is configured.
func Default() Config {
	return Config{
		Thresholds: Thresholds{
			VibrationLevel: 35.0,
			HeatIndex:      35.0,
			WorkerDensity:  100.0,
		},
	}
}

// ValidationError 검증 실패 (프로그램 중단)
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Validate checks all required constraints
// 실패 시 error 반환 (프로그램 중단)
func Validate(cfg *Config) error {
	if cfg.Thresholds.VibrationLevel <= 0 {
		return ValidationError{"thresholds.vibration_level", "must be > 0"}
	}
	if cfg.Thresholds.HeatIndex <= 0 {
		return ValidationError{"thresholds.heat_index", "must be > 0"}
	}
	if cfg.Thresholds.WorkerDensity <= 0 {
		return ValidationError{"thresholds.worker_density", "must be > 0"}
	}

	if p := cfg.Performance; p != nil {
		if p.Recall < 0 || p.Recall > 1 {
			return ValidationError{"validation_performance.recall", "must be in range [0, 1]"}
		}
		if p.Precision < 0 || p.Precision > 1 {
			return ValidationError{"validation_performance.precision", "must be in range [0, 1]"}
		}
		if p.F1Score < 0 || p.F1Score > 1 {
			return ValidationError{"validation_performance.f1_score", "must be in range [0, 1]"}
		}
	}

	return nil
}
