package game

import (
	"melite/internal/log"
	"melite/internal/market"
)

// Receipt describes a completed trade. When Amount is less than Requested,
// Limit names what stopped the rest of the order.
type Receipt struct {
	Good      int
	Name      string
	Unit      market.Unit
	Requested uint
	Amount    uint
	Price     uint // per unit, tenths of a credit
	Total     uint // tenths of a credit
	Limit     error
}

// Partial reports whether less than the requested amount was traded
func (r Receipt) Partial() bool {
	return r.Amount < r.Requested
}

// FuelReceipt describes a fuel purchase, in tenths of a light year
type FuelReceipt struct {
	Requested uint
	Amount    uint
	Cost      uint // tenths of a credit
	Limit     error
}

// Partial reports whether less fuel than requested was bought
func (r FuelReceipt) Partial() bool {
	return r.Amount < r.Requested
}

func (g *Game) receipt(good int, requested uint) Receipt {
	return Receipt{
		Good:      good,
		Name:      g.catalog[good].Name,
		Unit:      g.catalog[good].Unit,
		Requested: requested,
		Price:     g.market.Price[good],
	}
}

// Buy purchases up to amount units of good. The order is cut down to what
// the commander can afford, what the market has, and what fits in the hold.
func (g *Game) Buy(good int, amount uint) (Receipt, error) {
	if good < 0 || good >= market.NumGoods {
		return Receipt{}, ErrInvalidCommodity
	}
	if amount == 0 {
		return Receipt{}, ErrNothingRequested
	}

	g.mu.Lock()
	r := g.receipt(good, amount)
	if g.cash <= 0 {
		g.mu.Unlock()
		return r, ErrNoCash
	}

	t := amount
	if r.Price > 0 {
		if afford := uint(g.cash) / r.Price; afford < t {
			t = afford
			r.Limit = ErrInsufficientCash
		}
	}
	if t == 0 {
		g.mu.Unlock()
		return r, ErrInsufficientCash
	}

	stock := g.market.Quantity[good]
	if stock == 0 {
		g.mu.Unlock()
		return r, ErrNotAvailable
	}
	if stock < t {
		t = stock
		r.Limit = ErrNotAvailable
	}

	tonnes := g.catalog[good].Unit == market.Tonnes
	if tonnes {
		if g.holdSpace == 0 {
			g.mu.Unlock()
			return r, ErrHoldFull
		}
		if g.holdSpace < t {
			t = g.holdSpace
			r.Limit = ErrHoldFull
		}
	}

	g.hold[good] += t
	g.market.Quantity[good] -= t
	g.cash -= int32(t * r.Price)
	if tonnes {
		g.holdSpace -= t
	}
	r.Amount = t
	r.Total = t * r.Price
	g.mu.Unlock()

	log.Debug("bought", "good", r.Name, "amount", t, "requested", amount, "price", r.Price)
	g.notifyStatus()
	return r, nil
}

// Sell sells up to amount units of good, limited to what is in the hold
func (g *Game) Sell(good int, amount uint) (Receipt, error) {
	if good < 0 || good >= market.NumGoods {
		return Receipt{}, ErrInvalidCommodity
	}
	if amount == 0 {
		return Receipt{}, ErrNothingRequested
	}

	g.mu.Lock()
	r := g.receipt(good, amount)
	held := g.hold[good]
	if held == 0 {
		g.mu.Unlock()
		return r, ErrNothingToSell
	}

	// asking for more than is held sells everything held
	t := min(amount, held)

	g.hold[good] -= t
	g.market.Quantity[good] += t
	if g.catalog[good].Unit == market.Tonnes {
		g.holdSpace += t
	}
	g.cash += int32(t * r.Price)
	r.Amount = t
	r.Total = t * r.Price
	g.mu.Unlock()

	log.Debug("sold", "good", r.Name, "amount", t, "requested", amount, "price", r.Price)
	g.notifyStatus()
	return r, nil
}

// BuyFuel fills the tank by up to tenths of a light year, limited by the
// tank size and the cash available.
func (g *Game) BuyFuel(tenths uint) (FuelReceipt, error) {
	r := FuelReceipt{Requested: tenths}

	g.mu.Lock()
	if g.fuel >= MaxFuel {
		g.mu.Unlock()
		return r, ErrTankFull
	}
	if tenths == 0 {
		g.mu.Unlock()
		return r, ErrNothingRequested
	}

	f := tenths
	if f+g.fuel > MaxFuel {
		f = MaxFuel - g.fuel
		r.Limit = ErrTankFull
	}
	if int64(f)*FuelCost > int64(g.cash) {
		f = 0
		if g.cash > 0 {
			f = uint(g.cash) / FuelCost
		}
		r.Limit = ErrInsufficientCash
	}
	if f == 0 {
		g.mu.Unlock()
		return r, ErrInsufficientCash
	}

	g.fuel += f
	g.cash -= int32(f * FuelCost)
	r.Amount = f
	r.Cost = f * FuelCost
	g.mu.Unlock()

	log.Debug("bought fuel", "tenths", f, "requested", tenths)
	g.notifyStatus()
	return r, nil
}
