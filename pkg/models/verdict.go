package models

import (
	"encoding/json"
	"fmt"
)

// Verdict is the outcome assigned to a transaction. Only the three constants below are valid.
type Verdict string

const (
	VerdictAllowed          Verdict = "ALLOWED"
	VerdictManualProcessing Verdict = "MANUAL_PROCESSING"
	VerdictProhibited       Verdict = "PROHIBITED"
)

// ParseVerdict converts s into a Verdict, rejecting anything outside the enumeration.
func ParseVerdict(s string) (Verdict, error) {
	switch v := Verdict(s); v {
	case VerdictAllowed, VerdictManualProcessing, VerdictProhibited:
		return v, nil
	default:
		return "", fmt.Errorf("unknown verdict %q", s)
	}
}

func (v Verdict) String() string { return string(v) }

// Valid reports whether v is one of the known verdicts.
func (v Verdict) Valid() bool {
	_, err := ParseVerdict(string(v))
	return err == nil
}

func (v *Verdict) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	parsed, err := ParseVerdict(s)
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}

// Region is one of the fixed World Bank region codes a transaction can originate from.
type Region string

const (
	RegionEAP  Region = "EAP"  // East Asia and Pacific
	RegionECA  Region = "ECA"  // Europe and Central Asia
	RegionHIC  Region = "HIC"  // High-Income countries
	RegionLAC  Region = "LAC"  // Latin America and the Caribbean
	RegionMENA Region = "MENA" // The Middle East and North Africa
	RegionSA   Region = "SA"   // South Asia
	RegionSSA  Region = "SSA"  // Sub-Saharan Africa
)

var regions = map[Region]struct{}{
	RegionEAP: {}, RegionECA: {}, RegionHIC: {}, RegionLAC: {},
	RegionMENA: {}, RegionSA: {}, RegionSSA: {},
}

// Valid reports whether r is in the fixed region set.
func (r Region) Valid() bool {
	_, ok := regions[r]
	return ok
}
