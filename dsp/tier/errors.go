package tier

import "errors"

var (
	// ErrUnsorted is returned when point times are not strictly increasing.
	ErrUnsorted = errors.New("tier: point times must be strictly increasing")
	// ErrNonFinite is returned for NaN or infinite times or values.
	ErrNonFinite = errors.New("tier: point values must be finite")
	// ErrOutOfBand is returned for pitch points outside the floor/ceiling band.
	ErrOutOfBand = errors.New("tier: pitch point outside band")
	// ErrNonPositiveRatio is returned for duration ratios <= 0.
	ErrNonPositiveRatio = errors.New("tier: duration ratio must be > 0")
	// ErrSpeedFactor is returned for speed factors <= 0.
	ErrSpeedFactor = errors.New("tier: speed factor must be > 0")
	// ErrBand is returned when floor and ceiling do not form a valid band.
	ErrBand = errors.New("tier: floor must be > 0 and below ceiling")
)
