package main

import (
	"testing"

	"github.com/nimeshabuddhika/resilient-antifraud/pkg/screening"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestLuhnComplete(t *testing.T) {
	assert.Equal(t, "4000008449433403", luhnComplete("400000844943340"))
	assert.Equal(t, "4111111111111111", luhnComplete("411111111111111"))
}

func TestNewLoadGenerator_ProducesValidPools(t *testing.T) {
	g := newLoadGenerator(zap.NewNop(), loadOptions{rps: 1, burst: 1, workers: 1, cards: 5, ips: 5})

	assert.Len(t, g.cards, 5)
	for _, c := range g.cards {
		assert.True(t, screening.IsValidCardNumber(c), c)
	}
	for _, ip := range g.ips {
		assert.True(t, screening.IsValidIPv4(ip), ip)
	}
}
