package dialog

import "time"

// Phase of the enter/exit presentation effect.
type Phase uint8

const (
	PhaseHidden Phase = iota
	PhaseEntering
	PhaseShown
	PhaseLeaving
)

const (
	DefaultEnterDuration = 300 * time.Millisecond
	DefaultLeaveDuration = 200 * time.Millisecond
)

// Transition is a purely cosmetic enter/exit effect. It follows dialog
// visibility through Sync and never feeds anything back into it.
type Transition struct {
	Enter time.Duration
	Leave time.Duration

	phase   Phase
	started time.Time
}

func NewTransition() *Transition {
	return &Transition{
		Enter: DefaultEnterDuration,
		Leave: DefaultLeaveDuration,
	}
}

// Sync starts an enter or leave effect when visibility differs from what is being shown.
// It reports whether a new effect started.
func (t *Transition) Sync(open bool, now time.Time) bool {
	switch {
	case open && (t.phase == PhaseHidden || t.phase == PhaseLeaving):
		t.phase, t.started = PhaseEntering, now
		return true
	case !open && (t.phase == PhaseShown || t.phase == PhaseEntering):
		t.phase, t.started = PhaseLeaving, now
		return true
	}
	return false
}

// Progress advances the effect to now and returns the phase and opacity in [0,1].
func (t *Transition) Progress(now time.Time) (Phase, float64) {
	elapsed := now.Sub(t.started)

	switch t.phase {
	case PhaseEntering:
		if elapsed >= t.Enter {
			t.phase = PhaseShown
			return t.phase, 1
		}
		return t.phase, ratio(elapsed, t.Enter)
	case PhaseLeaving:
		if elapsed >= t.Leave {
			t.phase = PhaseHidden
			return t.phase, 0
		}
		return t.phase, 1 - ratio(elapsed, t.Leave)
	case PhaseShown:
		return t.phase, 1
	default:
		return t.phase, 0
	}
}

// Animating reports whether an effect is still running.
func (t *Transition) Animating() bool {
	return t.phase == PhaseEntering || t.phase == PhaseLeaving
}

func ratio(elapsed, total time.Duration) float64 {
	if total <= 0 {
		return 1
	}
	return float64(elapsed) / float64(total)
}
