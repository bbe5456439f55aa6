package types

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	errorsmod "cosmossdk.io/errors"
)

// MaxVoteWeight is the upper bound of the implicit last bag.
const MaxVoteWeight uint64 = math.MaxUint64

// Thresholds are the upper bounds of the voter bags, in strictly increasing order.
//
// A voter's bag is the smallest bag whose upper bound is greater than or equal to the voter's weight.
// There is an implied last bag with upper bound MaxVoteWeight which does not need to be listed: two
// lists which differ only by a trailing MaxVoteWeight behave identically. An empty list puts every
// voter into that single bag, so iteration is in insertion order.
type Thresholds []uint64

// Validate checks that the thresholds are strictly increasing.
func (t Thresholds) Validate() error {
	for i := 1; i < len(t); i++ {
		if t[i] <= t[i-1] {
			return errorsmod.Wrapf(ErrInvalidThresholds,
				"threshold %d (%d) must be greater than threshold %d (%d)", i, t[i], i-1, t[i-1])
		}
	}
	return nil
}

// NotionalBagFor returns the upper bound of the bag a voter of the given weight belongs to.
func (t Thresholds) NotionalBagFor(weight uint64) uint64 {
	idx := sort.Search(len(t), func(i int) bool { return t[i] >= weight })
	if idx < len(t) {
		return t[idx]
	}
	return MaxVoteWeight
}

// Uppers returns the upper bound of every bag in ascending order, including the implicit last bag.
func (t Thresholds) Uppers() []uint64 {
	uppers := make([]uint64, 0, len(t)+1)
	uppers = append(uppers, t...)
	if len(t) == 0 || t[len(t)-1] != MaxVoteWeight {
		uppers = append(uppers, MaxVoteWeight)
	}
	return uppers
}

// IsBagUpper reports whether upper identifies one of the bags defined by t.
func (t Thresholds) IsBagUpper(upper uint64) bool {
	return t.NotionalBagFor(upper) == upper
}

// Equal reports whether both lists define the same bags.
func (t Thresholds) Equal(other Thresholds) bool {
	a, b := t.Uppers(), other.Uppers()
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func (t Thresholds) String() string {
	parts := make([]string, len(t))
	for i, v := range t {
		parts[i] = strconv.FormatUint(v, 10)
	}
	return strings.Join(parts, ",")
}

// ParseThresholds parses a comma separated list of thresholds, e.g. "10,20,40".
func ParseThresholds(s string) (Thresholds, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Thresholds{}, nil
	}

	parts := strings.Split(s, ",")
	t := make(Thresholds, 0, len(parts))
	for _, p := range parts {
		v, err := strconv.ParseUint(strings.TrimSpace(p), 10, 64)
		if err != nil {
			return nil, errorsmod.Wrapf(ErrInvalidThresholds, "invalid threshold %q: %s", p, err)
		}
		t = append(t, v)
	}

	if err := t.Validate(); err != nil {
		return nil, err
	}
	return t, nil
}

// GeometricThresholds generates count thresholds from existentialWeight up to maxWeight such that
// t[k+1] == max(t[k] * ratio, t[k] + 1) for a constant ratio. The last threshold is maxWeight.
func GeometricThresholds(existentialWeight, maxWeight uint64, count int) (Thresholds, error) {
	switch {
	case count < 2:
		return nil, errorsmod.Wrapf(ErrInvalidThresholds, "need at least 2 bags, got %d", count)
	case existentialWeight == 0:
		return nil, errorsmod.Wrap(ErrInvalidThresholds, "existential weight must be positive")
	case maxWeight <= existentialWeight:
		return nil, errorsmod.Wrapf(ErrInvalidThresholds,
			"max weight %d must exceed existential weight %d", maxWeight, existentialWeight)
	}

	ratio := math.Pow(float64(maxWeight)/float64(existentialWeight), 1/float64(count-1))

	t := Thresholds{existentialWeight}
	for len(t) < count-1 {
		last := t[len(t)-1]
		next := last + 1
		if scaled := float64(last) * ratio; scaled > float64(next) {
			if scaled >= float64(maxWeight) {
				break
			}
			next = uint64(scaled)
		}
		if next >= maxWeight {
			break
		}
		t = append(t, next)
	}
	t = append(t, maxWeight)

	if err := t.Validate(); err != nil {
		return nil, fmt.Errorf("generated thresholds are not increasing: %w", err)
	}
	return t, nil
}
