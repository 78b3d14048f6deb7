package nutrition

import (
	"fmt"
	"math"
)

// ProgressRatio expresses actual as a percentage of target, clamped to
// [0, 100]. A target <= 0 yields 0.
func ProgressRatio(actual, target float64) float64 {
	if target <= 0 || math.IsNaN(target) {
		return 0
	}
	pct := actual / target * 100
	if pct > 100 {
		return 100
	}
	if pct < 0 || math.IsNaN(pct) {
		return 0
	}
	return pct
}

// Ratio is a progress percentage that may be unknown because the target
// has not been loaded.
type Ratio struct {
	Percent float64
	Known   bool
}

func Progress(actual, target float64, known bool) Ratio {
	if !known {
		return Ratio{}
	}
	return Ratio{Percent: ProgressRatio(actual, target), Known: true}
}

func (r Ratio) String() string {
	if !r.Known {
		return "—"
	}
	return fmt.Sprintf("%.1f%%", r.Percent)
}
