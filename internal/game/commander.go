package game

import (
	"fmt"

	"melite/internal/galaxy"
	"melite/internal/market"
)

// Commander is the persistent state of a game. RandSeed and RandDraws position
// the native generator, RandState the portable one.
type Commander struct {
	Name       string
	Galaxy     int
	System     int
	Cash       int32
	Fuel       uint
	CargoBay   uint
	Cargo      [market.NumGoods]uint
	Market     market.Market
	NativeRand bool
	RandState  uint32
	RandSeed   uint32
	RandDraws  uint64
}

// Snapshot captures the game as a commander named name
func (g *Game) Snapshot(name string) Commander {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return Commander{
		Name:       name,
		Galaxy:     g.galaxyNum,
		System:     g.current,
		Cash:       g.cash,
		Fuel:       g.fuel,
		CargoBay:   g.tonnesHeldLocked() + g.holdSpace,
		Cargo:      g.hold,
		Market:     g.market,
		NativeRand: g.rng.native,
		RandState:  g.rng.last,
		RandSeed:   g.seed,
		RandDraws:  g.rng.draws,
	}
}

// Validate checks that c describes a reachable game state
func (c Commander) Validate(catalog *market.Catalog) error {
	if c.Galaxy < 1 || c.Galaxy > galaxy.Count {
		return fmt.Errorf("%w: galaxy %d", ErrInvalidSave, c.Galaxy)
	}
	if c.System < 0 || c.System >= galaxy.Size {
		return fmt.Errorf("%w: system %d", ErrInvalidSave, c.System)
	}
	if c.RandDraws > maxRandDraws {
		return fmt.Errorf("%w: %d random draws", ErrInvalidSave, c.RandDraws)
	}
	if c.Fuel > MaxFuel {
		return fmt.Errorf("%w: fuel %d", ErrInvalidSave, c.Fuel)
	}
	var tonnes uint
	for i, q := range c.Cargo {
		if catalog[i].Unit == market.Tonnes {
			tonnes += q
		}
	}
	if tonnes > c.CargoBay {
		return fmt.Errorf("%w: %dt cargo in a %dt bay", ErrInvalidSave, tonnes, c.CargoBay)
	}
	return nil
}

// Restore replaces the game state with c
func (g *Game) Restore(c Commander) error {
	if err := c.Validate(&g.catalog); err != nil {
		return err
	}

	g.mu.Lock()
	if c.Galaxy != g.galaxyNum {
		if err := g.buildGalaxy(c.Galaxy); err != nil {
			g.mu.Unlock()
			return err
		}
	}
	g.current = c.System
	g.cash = c.Cash
	g.fuel = c.Fuel
	g.hold = c.Cargo
	g.market = c.Market
	if c.RandSeed != 0 {
		g.seed = c.RandSeed
	}
	g.rng.native = c.NativeRand
	g.rng.replay(g.seed, c.RandDraws)
	g.rng.last = c.RandState
	g.holdSpace = c.CargoBay - g.tonnesHeldLocked()
	g.mu.Unlock()

	g.notifyArrival()
	return nil
}
