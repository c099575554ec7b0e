package tracker

import (
	"testing"

	"btc-tracker-go/internal/models"
	"github.com/stretchr/testify/assert"
)

func f64(v float64) *float64 { return &v }

func testConfig(deltaBuy, deltaSell float64) *models.Config {
	return &models.Config{
		DeltaBuy:   f64(deltaBuy),
		DeltaSell:  f64(deltaSell),
		AmountBuy:  100,
		AmountSell: 100,
	}
}

func TestEvaluate(t *testing.T) {
	cfg := testConfig(-2.5, 3.0)

	tests := []struct {
		name     string
		delta    float64
		delta48h *float64
		want     Decision
	}{
		{"BuyOn24hDelta", -2.52, nil, DecisionBuy},
		{"BuyExactlyAtThreshold", -2.5, nil, DecisionBuy},
		{"BuyOn48hDelta", -0.5, f64(-3.1), DecisionBuy},
		{"SellOn24hDelta", 3.5, nil, DecisionSell},
		{"SellExactlyAtThreshold", 3.0, nil, DecisionSell},
		{"SellOn48hDelta", 0.5, f64(3.5), DecisionSell},
		{"OpportunityInsideBand", 1.9, nil, DecisionOpportunity},
		{"OpportunityAtLowerEdge", 1.8, nil, DecisionOpportunity},
		{"BelowOpportunityBand", 1.7, nil, DecisionNone},
		{"NegativeDeltaNeverOpportunity", -1.0, nil, DecisionNone},
		{"QuietMarket", 0.5, f64(1.0), DecisionNone},
		{"Missing48hIgnored", 0.5, nil, DecisionNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			snapshot := &models.Snapshot{Price: 60000, Delta: tt.delta, Delta48h: tt.delta48h}
			assert.Equal(t, tt.want, Evaluate(snapshot, cfg))
		})
	}
}

func TestEvaluate_BuyWinsOverSell(t *testing.T) {
	// Contradictory thresholds where both rules match: buy takes priority.
	cfg := testConfig(1.0, -1.0)
	snapshot := &models.Snapshot{Price: 60000, Delta: 0.0}

	assert.Equal(t, DecisionBuy, Evaluate(snapshot, cfg))
}

func TestEvaluate_OpportunityUsesOnly24hDelta(t *testing.T) {
	cfg := testConfig(-2.5, 3.0)
	// 48h delta sits inside the opportunity band but the 24h delta does not;
	// opportunity is a near-term signal and must not fire.
	snapshot := &models.Snapshot{Price: 60000, Delta: 0.1, Delta48h: f64(2.0)}

	assert.Equal(t, DecisionNone, Evaluate(snapshot, cfg))
}

func TestEvaluate_IsDeterministic(t *testing.T) {
	cfg := testConfig(-2.5, 3.0)
	snapshot := &models.Snapshot{Price: 60000, Delta: 1.9}

	first := Evaluate(snapshot, cfg)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, Evaluate(snapshot, cfg))
	}
}

func TestEvaluate_UnsetThresholds(t *testing.T) {
	snapshot := &models.Snapshot{Price: 60000, Delta: -50}

	assert.Equal(t, DecisionNone, Evaluate(snapshot, &models.Config{}))
	assert.Equal(t, DecisionNone, Evaluate(snapshot, nil))
}
