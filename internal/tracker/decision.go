package tracker

import "btc-tracker-go/internal/models"

// Decision classifies one sampling tick.
type Decision int

const (
	DecisionNone Decision = iota
	DecisionBuy
	DecisionSell
	DecisionOpportunity
)

func (d Decision) String() string {
	switch d {
	case DecisionBuy:
		return "buy"
	case DecisionSell:
		return "sell"
	case DecisionOpportunity:
		return "opportunity"
	default:
		return "none"
	}
}

// opportunityBand is the fraction of the sell threshold at which a rising
// 24h delta starts counting as a near-miss opportunity.
const opportunityBand = 0.6

// Evaluate classifies a snapshot against the active config. It is a pure
// function; rule order is buy > sell > opportunity > none, and the first
// matching rule wins.
//
// Buy and sell consider both the 24h and the 48h window, so a crash or rally
// visible only on the longer window still triggers. Opportunity deliberately
// uses only the 24h delta: it is a near-term signal.
func Evaluate(snapshot *models.Snapshot, cfg *models.Config) Decision {
	if cfg == nil || cfg.DeltaBuy == nil || cfg.DeltaSell == nil {
		return DecisionNone
	}
	deltaBuy := *cfg.DeltaBuy
	deltaSell := *cfg.DeltaSell

	if snapshot.Delta <= deltaBuy {
		return DecisionBuy
	}
	if snapshot.Delta48h != nil && *snapshot.Delta48h <= deltaBuy {
		return DecisionBuy
	}

	if snapshot.Delta >= deltaSell {
		return DecisionSell
	}
	if snapshot.Delta48h != nil && *snapshot.Delta48h >= deltaSell {
		return DecisionSell
	}

	if snapshot.Delta > 0 &&
		snapshot.Delta >= opportunityBand*deltaSell &&
		snapshot.Delta <= deltaSell {
		return DecisionOpportunity
	}

	return DecisionNone
}
