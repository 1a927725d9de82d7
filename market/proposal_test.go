package market

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func validProposal() Proposal {
	return Proposal{
		Symbol:       "GER40",
		Strategy:     StrategyBreakout,
		Direction:    Long,
		Product:      CFD,
		EntryPrice:   19500,
		StopLoss:     19450,
		CurrentPrice: 19505,
		PriceTime:    time.Now().UTC(),
		DataOrigin:   "feed",
	}
}

func TestProposalValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		mutate func(*Proposal)
		valid  bool
	}{
		{"clean", func(p *Proposal) {}, true},
		{"missing symbol", func(p *Proposal) { p.Symbol = "" }, false},
		{"unknown direction", func(p *Proposal) { p.Direction = "sideways" }, false},
		{"unknown product", func(p *Proposal) { p.Product = "OPTION" }, false},
		{"entry equals stop", func(p *Proposal) { p.StopLoss = p.EntryPrice }, false},
		{"zero entry", func(p *Proposal) { p.EntryPrice = 0 }, false},
		{"negative stop", func(p *Proposal) { p.StopLoss = -1 }, false},
		{"unresolved current price", func(p *Proposal) { p.CurrentPrice = 0 }, false},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			p := validProposal()
			tt.mutate(&p)
			err := p.Validate()
			if tt.valid {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, ErrInvalidProposal)
			}
		})
	}
}

func TestStrategyPriority(t *testing.T) {
	t.Parallel()

	assert.True(t, StrategyBreakout.IsPriority())
	assert.True(t, StrategyNewsSpike.IsPriority())
	assert.False(t, StrategyPullback.IsPriority())
	assert.False(t, StrategyMomentum.IsPriority())
	assert.False(t, Strategy("made-up").IsPriority())
}

func TestDirectionSign(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 1.0, Long.Sign())
	assert.Equal(t, -1.0, Short.Sign())
}
