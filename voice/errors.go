package voice

import (
	"errors"
	"fmt"

	"github.com/minnie121311/voice-adjuster/dsp/pitch"
	"github.com/minnie121311/voice-adjuster/dsp/psola"
	"github.com/minnie121311/voice-adjuster/dsp/signal"
	"github.com/minnie121311/voice-adjuster/dsp/tier"
)

// Kind categorizes engine errors.
type Kind int

const (
	// KindUnknown is an unclassified failure.
	KindUnknown Kind = iota
	// KindInvalidParameter covers bad speed factors, bands and tiers.
	KindInvalidParameter
	// KindUnsupportedSignal covers empty, non-finite or rate-less input.
	KindUnsupportedSignal
	// KindInsufficientVoicing marks input without voiced frames. It is
	// logged, never returned.
	KindInsufficientVoicing
	// KindResynthesisFailure is an internal invariant violation.
	KindResynthesisFailure
)

func (k Kind) String() string {
	switch k {
	case KindInvalidParameter:
		return "invalid parameter"
	case KindUnsupportedSignal:
		return "unsupported signal"
	case KindInsufficientVoicing:
		return "insufficient voicing"
	case KindResynthesisFailure:
		return "resynthesis failure"
	default:
		return "unknown"
	}
}

// Error is returned by every engine operation.
type Error struct {
	Kind Kind
	Op   string
	Err  error
}

// Sentinels for errors.Is. They match any *Error of the same Kind.
var (
	ErrInvalidParameter    = &Error{Kind: KindInvalidParameter}
	ErrUnsupportedSignal   = &Error{Kind: KindUnsupportedSignal}
	ErrInsufficientVoicing = &Error{Kind: KindInsufficientVoicing}
	ErrResynthesis         = &Error{Kind: KindResynthesisFailure}
)

func (e *Error) Error() string {
	switch {
	case e.Op == "" && e.Err == nil:
		return "voice: " + e.Kind.String()
	case e.Err == nil:
		return fmt.Sprintf("voice: %s: %s", e.Op, e.Kind)
	default:
		return fmt.Sprintf("voice: %s: %s: %v", e.Op, e.Kind, e.Err)
	}
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error { return e.Err }

// Is matches a bare sentinel of the same Kind.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Op == "" && t.Err == nil && t.Kind == e.Kind
}

func newError(kind Kind, op string, err error) *Error {
	return &Error{Kind: kind, Op: op, Err: err}
}

// classify maps errors from the DSP packages onto engine kinds.
func classify(op string, err error) error {
	if err == nil {
		return nil
	}
	var ve *Error
	if errors.As(err, &ve) {
		return err
	}

	switch {
	case errors.Is(err, signal.ErrEmpty),
		errors.Is(err, signal.ErrNonFinite),
		errors.Is(err, signal.ErrSampleRate):
		return newError(KindUnsupportedSignal, op, err)
	case errors.Is(err, pitch.ErrInvalidConfig),
		errors.Is(err, tier.ErrUnsorted),
		errors.Is(err, tier.ErrNonFinite),
		errors.Is(err, tier.ErrOutOfBand),
		errors.Is(err, tier.ErrNonPositiveRatio),
		errors.Is(err, tier.ErrSpeedFactor),
		errors.Is(err, tier.ErrBand):
		return newError(KindInvalidParameter, op, err)
	case errors.Is(err, psola.ErrResynthesis):
		return newError(KindResynthesisFailure, op, err)
	default:
		return newError(KindUnknown, op, err)
	}
}
