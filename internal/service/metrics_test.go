package service

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDeriveRatios(t *testing.T) {
	m := deriveRatios(1000, 50, 25.0, 5, 200)

	require.InDelta(t, 5.0, m.CTR, 0.0001)
	require.InDelta(t, 0.5, m.AvgCPC, 0.0001)
	require.InDelta(t, 10.0, m.ConversionRate, 0.0001)
	require.InDelta(t, 5.0, m.CPA, 0.0001)
	require.InDelta(t, 8.0, m.ROAS, 0.0001)
}

func TestDeriveRatiosGuardsZeroDenominators(t *testing.T) {
	m := deriveRatios(0, 0, 0, 0, 0)

	require.Zero(t, m.CTR)
	require.Zero(t, m.AvgCPC)
	require.Zero(t, m.ConversionRate)
	require.Zero(t, m.CPA)
	require.Zero(t, m.ROAS)
}

func TestAccumulatorDerivesFromSums(t *testing.T) {
	acc := &accumulator{}
	acc.add(metricsRow(1000, 100, 50_000_000, 10, 500))
	acc.add(metricsRow(9000, 100, 150_000_000, 0, 0))

	m := acc.metrics()
	require.Equal(t, int64(10000), m.Impressions)
	require.Equal(t, int64(200), m.Clicks)
	require.InDelta(t, 200.0, m.Cost, 0.0001)
	// 200 clicks / 10000 impressions, not the mean of 10% and ~1.1%.
	require.InDelta(t, 2.0, m.CTR, 0.0001)
	require.InDelta(t, 1.0, m.AvgCPC, 0.0001)
}

func TestWeightedShare(t *testing.T) {
	var share weightedShare
	share.add(0.8, 9000)
	share.add(0.2, 1000)

	require.InDelta(t, 0.74, share.value(), 0.0001)

	var empty weightedShare
	require.Zero(t, empty.value())
}

func TestDelta(t *testing.T) {
	d := delta(120, 100)
	require.InDelta(t, 100.0, d.Previous, 0.0001)
	require.InDelta(t, 20.0, d.Change, 0.0001)

	d = delta(80, 100)
	require.InDelta(t, -20.0, d.Change, 0.0001)

	d = delta(50, 0)
	require.Zero(t, d.Change)
	require.Zero(t, d.Previous)
}
