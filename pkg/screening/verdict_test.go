package screening

import (
	"testing"
	"time"

	"github.com/nimeshabuddhika/resilient-antifraud/pkg/models"
	"github.com/stretchr/testify/assert"
)

func TestCollectReasonsAndDeriveVerdict(t *testing.T) {
	limits := models.DefaultFraudLimits()

	tests := []struct {
		name     string
		signals  Signals
		wantInfo string
		want     models.Verdict
	}{
		{
			name:     "clean",
			signals:  Signals{Amount: 150},
			wantInfo: "none",
			want:     models.VerdictAllowed,
		},
		{
			name:     "amount equal to max allowed",
			signals:  Signals{Amount: 200},
			wantInfo: "none",
			want:     models.VerdictAllowed,
		},
		{
			name:     "amount above max allowed only",
			signals:  Signals{Amount: 250},
			wantInfo: "amount",
			want:     models.VerdictManualProcessing,
		},
		{
			name:     "amount equal to max manual",
			signals:  Signals{Amount: 1500},
			wantInfo: "amount",
			want:     models.VerdictManualProcessing,
		},
		{
			name:     "amount above max manual",
			signals:  Signals{Amount: 1800},
			wantInfo: "amount",
			want:     models.VerdictProhibited,
		},
		{
			name:     "blacklisted ip suppresses low amount reason",
			signals:  Signals{Amount: 250, IPListed: true},
			wantInfo: "ip",
			want:     models.VerdictProhibited,
		},
		{
			name:     "blacklisted card with high amount",
			signals:  Signals{Amount: 1800, CardListed: true},
			wantInfo: "amount, card-number",
			want:     models.VerdictProhibited,
		},
		{
			name:     "both blacklists",
			signals:  Signals{Amount: 10, IPListed: true, CardListed: true},
			wantInfo: "card-number, ip",
			want:     models.VerdictProhibited,
		},
		{
			name:     "region correlation of two",
			signals:  Signals{Amount: 100, RegionCount: 2},
			wantInfo: "region-correlation",
			want:     models.VerdictManualProcessing,
		},
		{
			name:     "region correlation of three",
			signals:  Signals{Amount: 100, RegionCount: 3},
			wantInfo: "region-correlation",
			want:     models.VerdictProhibited,
		},
		{
			name:     "ip correlation of two with amount reason",
			signals:  Signals{Amount: 250, IPCount: 2},
			wantInfo: "amount, ip-correlation",
			want:     models.VerdictManualProcessing,
		},
		{
			name:     "ip correlation of two but amount above max manual",
			signals:  Signals{Amount: 1600, IPCount: 2},
			wantInfo: "amount, ip-correlation",
			want:     models.VerdictProhibited,
		},
		{
			name:     "correlation of one is ignored",
			signals:  Signals{Amount: 100, RegionCount: 1, IPCount: 1},
			wantInfo: "none",
			want:     models.VerdictAllowed,
		},
		{
			name:     "blacklisted ip with region correlation of two",
			signals:  Signals{Amount: 100, IPListed: true, RegionCount: 2},
			wantInfo: "ip, region-correlation",
			want:     models.VerdictManualProcessing,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.signals.Limits = limits
			reasons := CollectReasons(tt.signals)
			assert.Equal(t, tt.wantInfo, reasons.Info())
			assert.Equal(t, tt.want, DeriveVerdict(tt.signals, reasons))
		})
	}
}

func TestCountCorrelations(t *testing.T) {
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	c := Candidate{Amount: 10, IP: "10.0.0.1", Number: "4000008449433403", Region: models.RegionEAP, Date: now}
	history := []models.Transaction{
		{IP: "10.0.0.1", Region: models.RegionEAP},
		{IP: "10.0.0.2", Region: models.RegionECA},
		{IP: "10.0.0.2", Region: models.RegionECA},
		{IP: "10.0.0.3", Region: models.RegionHIC},
		{IP: "10.0.0.4", Region: models.RegionEAP},
	}

	regionCount, ipCount := CountCorrelations(c, history)

	assert.Equal(t, 2, regionCount)
	assert.Equal(t, 3, ipCount)
}
