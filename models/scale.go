package models

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ErrInvalidScale is returned for strings that are not a finite number
var ErrInvalidScale = errors.New("invalid scale value")

// Scale is a self-reported numeric value. Web forms often post numbers as
// strings, so "5" decodes the same as 5.
type Scale float64

func (s *Scale) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '"' {
		var raw string
		if err := json.Unmarshal(data, &raw); err != nil {
			return err
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
		if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: %q", ErrInvalidScale, raw)
		}
		*s = Scale(v)
		return nil
	}

	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*s = Scale(v)
	return nil
}

// Float64 returns nil for an absent scale
func (s *Scale) Float64() *float64 {
	if s == nil {
		return nil
	}
	v := float64(*s)
	return &v
}
