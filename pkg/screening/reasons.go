package screening

import (
	"slices"
	"strings"
)

// Reason names one rule that contributed to a non-ALLOWED verdict.
type Reason string

const (
	ReasonAmount            Reason = "amount"
	ReasonCardNumber        Reason = "card-number"
	ReasonIP                Reason = "ip"
	ReasonIPCorrelation     Reason = "ip-correlation"
	ReasonRegionCorrelation Reason = "region-correlation"
)

// NoReasons is the info text of an ALLOWED verdict.
const NoReasons = "none"

// Reasons is a sorted set of reasons. The zero value is empty and ready to use.
type Reasons struct {
	items []Reason
}

// NewReasons returns the sorted, deduplicated set of rs.
func NewReasons(rs ...Reason) Reasons {
	items := slices.Clone(rs)
	slices.Sort(items)
	return Reasons{items: slices.Compact(items)}
}

// With returns a new set that also contains r.
func (r Reasons) With(add Reason) Reasons {
	return NewReasons(append(slices.Clone(r.items), add)...)
}

func (r Reasons) Contains(x Reason) bool {
	_, found := slices.BinarySearch(r.items, x)
	return found
}

func (r Reasons) Len() int { return len(r.items) }

func (r Reasons) Empty() bool { return len(r.items) == 0 }

// Items returns a copy of the reasons in lexicographic order.
func (r Reasons) Items() []Reason { return slices.Clone(r.items) }

// Info renders the reasons joined by ", ", or "none".
func (r Reasons) Info() string {
	if r.Empty() {
		return NoReasons
	}
	parts := make([]string, len(r.items))
	for i, item := range r.items {
		parts[i] = string(item)
	}
	return strings.Join(parts, ", ")
}
