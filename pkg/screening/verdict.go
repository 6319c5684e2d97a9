package screening

import (
	"time"

	"github.com/nimeshabuddhika/resilient-antifraud/pkg/models"
)

// CorrelationWindow is how far back the same card's history is inspected.
const CorrelationWindow = time.Hour

// correlationThreshold is the distinct-count at which a correlation reason fires.
const correlationThreshold = 2

// Signals are the facts gathered for one candidate before a verdict is derived.
type Signals struct {
	Amount      int64
	Limits      models.FraudLimits
	IPListed    bool
	CardListed  bool
	RegionCount int // distinct regions other than the candidate's in the window
	IPCount     int // distinct IPs other than the candidate's in the window
}

// CountCorrelations counts distinct regions and IPs of history that differ from the candidate's own.
func CountCorrelations(c Candidate, history []models.Transaction) (regionCount, ipCount int) {
	regions := make(map[models.Region]struct{})
	ips := make(map[string]struct{})
	for _, h := range history {
		if h.Region != c.Region {
			regions[h.Region] = struct{}{}
		}
		if h.IP != c.IP {
			ips[h.IP] = struct{}{}
		}
	}
	return len(regions), len(ips)
}

// CollectReasons applies the rule set to s.
func CollectReasons(s Signals) Reasons {
	var r Reasons
	if s.IPListed {
		r = r.With(ReasonIP)
	}
	if s.CardListed {
		r = r.With(ReasonCardNumber)
	}
	if s.Amount > s.Limits.MaxManualProcessing || (s.Amount > s.Limits.MaxAllowed && r.Empty()) {
		r = r.With(ReasonAmount)
	}
	if s.RegionCount >= correlationThreshold {
		r = r.With(ReasonRegionCorrelation)
	}
	if s.IPCount >= correlationThreshold {
		r = r.With(ReasonIPCorrelation)
	}
	return r
}

// DeriveVerdict maps reasons and signals to a verdict. It has no side effects.
func DeriveVerdict(s Signals, r Reasons) models.Verdict {
	if r.Empty() {
		return models.VerdictAllowed
	}
	if s.Amount <= s.Limits.MaxManualProcessing {
		switch {
		case r.Contains(ReasonRegionCorrelation) && s.RegionCount == correlationThreshold,
			r.Contains(ReasonIPCorrelation) && s.IPCount == correlationThreshold,
			r.Len() == 1 && r.Contains(ReasonAmount):
			return models.VerdictManualProcessing
		}
	}
	return models.VerdictProhibited
}
