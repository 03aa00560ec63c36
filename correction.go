package msdf

import "math"

// Error correction for multi-channel fields. Where the three channels
// disagree more than a sampling step can justify, the median-of-three
// reconstruction in the consuming shader produces visible artifacts
// (clashes between unrelated edges). This pass detects such pixels and
// clamps the deviating channel toward the median. It is a best-effort
// artifact suppressor, not a re-evaluation of true edge distances.

// ErrorCorrectionMode selects which pixels are examined.
type ErrorCorrectionMode int

const (
	// CorrectionDisabled skips the pass entirely.
	CorrectionDisabled ErrorCorrectionMode = iota

	// CorrectionIndiscriminate checks every pixel.
	CorrectionIndiscriminate

	// CorrectionEdgePriority checks pixels near the 0.5 crossing and
	// clamps elsewhere only when the deviation is extreme.
	CorrectionEdgePriority

	// CorrectionEdgeOnly checks only pixels near the 0.5 crossing.
	CorrectionEdgeOnly
)

// ErrorCorrectionConfig configures the correction pass.
type ErrorCorrectionConfig struct {
	// Mode selects the pixel classification strategy.
	Mode ErrorCorrectionMode

	// MinDeviationRatio scales the deviation threshold: a channel
	// deviating from the median by more than this many encoded pixel
	// steps is considered an artifact.
	MinDeviationRatio float64

	// MinImproveRatio scales the edge-proximity window in edge modes.
	MinImproveRatio float64
}

// Default error-correction ratios.
const (
	defaultMinDeviationRatio = 1.11111111111111111
	defaultMinImproveRatio   = 1.11111111111111111
)

// DefaultErrorCorrection returns the default correction configuration.
func DefaultErrorCorrection() ErrorCorrectionConfig {
	return ErrorCorrectionConfig{
		Mode:              CorrectionEdgePriority,
		MinDeviationRatio: defaultMinDeviationRatio,
		MinImproveRatio:   defaultMinImproveRatio,
	}
}

// CorrectErrors runs the correction pass over a 3- or 4-channel field.
// Bitmaps with fewer than 3 channels are left untouched (plain SDFs
// have no channel disagreement to correct); the alpha channel of a
// 4-channel field is never modified.
func CorrectErrors(bmp *Bitmap, pixelRange float64, cfg ErrorCorrectionConfig) {
	if bmp == nil || bmp.Channels() < 3 || cfg.Mode == CorrectionDisabled {
		return
	}
	if pixelRange <= 0 {
		return
	}
	if cfg.MinDeviationRatio <= 0 {
		cfg.MinDeviationRatio = defaultMinDeviationRatio
	}
	if cfg.MinImproveRatio <= 0 {
		cfg.MinImproveRatio = defaultMinImproveRatio
	}

	// One encoded pixel step spans 1/pixelRange of the [0, 1] range.
	step := 1 / pixelRange
	deviation := float32(cfg.MinDeviationRatio * step)
	edgeWindow := float32(0.5 * cfg.MinImproveRatio * step)

	for y := 0; y < bmp.Height(); y++ {
		for x := 0; x < bmp.Width(); x++ {
			r := bmp.Get(x, y, 0)
			g := bmp.Get(x, y, 1)
			b := bmp.Get(x, y, 2)
			med := median3(r, g, b)

			nearEdge := float32(math.Abs(float64(med-0.5))) <= edgeWindow
			threshold := deviation
			switch cfg.Mode {
			case CorrectionEdgeOnly:
				if !nearEdge {
					continue
				}
			case CorrectionEdgePriority:
				if !nearEdge {
					// Away from the crossing only extreme outliers are
					// clamped, preserving legitimate channel spread.
					threshold = 2 * deviation
				}
			}

			for ch, v := range [3]float32{r, g, b} {
				if float32(math.Abs(float64(v-med))) > threshold {
					bmp.Set(x, y, ch, med)
				}
			}
		}
	}
}
