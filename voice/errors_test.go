package voice

import (
	"errors"
	"fmt"
	"testing"

	"github.com/minnie121311/voice-adjuster/dsp/pitch"
	"github.com/minnie121311/voice-adjuster/dsp/psola"
	"github.com/minnie121311/voice-adjuster/dsp/signal"
	"github.com/minnie121311/voice-adjuster/dsp/tier"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		err  error
		want error
	}{
		{signal.ErrEmpty, ErrUnsupportedSignal},
		{fmt.Errorf("%w: index 3", signal.ErrNonFinite), ErrUnsupportedSignal},
		{pitch.ErrInvalidConfig, ErrInvalidParameter},
		{tier.ErrUnsorted, ErrInvalidParameter},
		{tier.ErrNonPositiveRatio, ErrInvalidParameter},
		{psola.ErrResynthesis, ErrResynthesis},
	}
	for _, tc := range tests {
		got := classify("op", tc.err)
		if !errors.Is(got, tc.want) {
			t.Fatalf("classify(%v) = %v, want %v", tc.err, got, tc.want)
		}
		if !errors.Is(got, tc.err) {
			t.Fatalf("classify(%v) lost the cause", tc.err)
		}
	}
	if classify("op", nil) != nil {
		t.Fatal("nil should stay nil")
	}
}

func TestErrorKindsDoNotCrossMatch(t *testing.T) {
	err := newError(KindInvalidParameter, "adjust", errors.New("boom"))
	if errors.Is(err, ErrUnsupportedSignal) {
		t.Fatal("invalid parameter matched unsupported signal")
	}
	if got, want := err.Error(), "voice: adjust: invalid parameter: boom"; got != want {
		t.Fatalf("Error() = %q, want %q", got, want)
	}
	var ve *Error
	if !errors.As(err, &ve) || ve.Kind != KindInvalidParameter {
		t.Fatalf("errors.As failed: %v", err)
	}
}
