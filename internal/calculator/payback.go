package calculator

import (
	"bytes"
	"encoding/json"
	"math"
)

// PaybackState distinguishes how a payback figure came about.
type PaybackState int

const (
	// PaybackNotApplicable means the figure was not computed, e.g. financing is off.
	PaybackNotApplicable PaybackState = iota
	// PaybackFinite means the investment is recovered after Value.
	PaybackFinite
	// PaybackNever means the investment is never recovered.
	PaybackNever
)

// Payback is a tagged payback result. It replaces magic sentinels at call
// sites; Or recovers the numeric form where one is required.
type Payback struct {
	Value float64
	State PaybackState
}

// Finite returns a payback recovered after value.
func Finite(value float64) Payback {
	return Payback{Value: value, State: PaybackFinite}
}

// NeverPaysBack returns a payback that is never reached.
func NeverPaysBack() Payback {
	return Payback{State: PaybackNever}
}

// IsFinite reports whether the payback is reached.
func (p Payback) IsFinite() bool {
	return p.State == PaybackFinite
}

// Never reports whether the payback is never reached.
func (p Payback) Never() bool {
	return p.State == PaybackNever
}

// Or returns the numeric value, substituting sentinel when the payback is
// never reached. Not applicable paybacks are 0.
func (p Payback) Or(sentinel float64) float64 {
	switch p.State {
	case PaybackFinite:
		return p.Value
	case PaybackNever:
		return sentinel
	default:
		return 0
	}
}

// finite demotes a finite payback whose value overflowed. +Inf never pays
// back and NaN has no meaningful figure.
func (p Payback) finite() Payback {
	if p.State != PaybackFinite {
		return p
	}
	switch {
	case math.IsInf(p.Value, 1):
		return NeverPaysBack()
	case math.IsNaN(p.Value) || math.IsInf(p.Value, -1):
		return Payback{}
	}
	return p
}

// MarshalJSON encodes a never reached payback as null and anything else as a
// number. Not applicable encodes as 0, so the round trip through JSON keeps
// the Or value but not the state: 0 decodes as Finite(0).
func (p Payback) MarshalJSON() ([]byte, error) {
	if p.Never() {
		return []byte("null"), nil
	}
	return json.Marshal(p.Or(0))
}

// UnmarshalJSON is the inverse of MarshalJSON; numbers decode as finite.
func (p *Payback) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*p = NeverPaysBack()
		return nil
	}
	var value float64
	if err := json.Unmarshal(data, &value); err != nil {
		return err
	}
	*p = Finite(value)
	return nil
}
