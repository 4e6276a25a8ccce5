package api

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"melite/internal/galaxy"
	"melite/internal/game"
	"melite/internal/market"
)

const (
	lave = 7
	diso = 147
)

func newWrapper(t *testing.T) *Wrapper {
	t.Helper()
	w, err := New(game.Options{Seed: game.DefaultSeed})
	require.NoError(t, err)
	return w
}

type fakeListener struct {
	mu       sync.Mutex
	systems  []SystemInfo
	statuses []Status
	markets  [][]MarketplaceItem
	messages []string
}

func (f *fakeListener) OnSystemChanged(info SystemInfo) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.systems = append(f.systems, info)
}

func (f *fakeListener) OnStatusChanged(status Status) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.statuses = append(f.statuses, status)
}

func (f *fakeListener) OnMarketChanged(items []MarketplaceItem) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.markets = append(f.markets, items)
}

func (f *fakeListener) OnMessage(msg string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.messages = append(f.messages, msg)
}

func TestSystemInfoHalvesY(t *testing.T) {
	w := newWrapper(t)

	info, err := w.SystemInfo(lave)
	require.NoError(t, err)
	assert.Equal(t, "Lave", info.Name)
	assert.Equal(t, uint(20), info.X)
	assert.Equal(t, uint(86), info.Y)
	assert.Equal(t, galaxy.RichAgricultural, info.Economy)
	assert.Equal(t, "Dictatorship", GovernmentName(info.Government))
	assert.Equal(t, "Rich agricultural", EconomyName(info.Economy))
	assert.Equal(t, "Lave is most famous for its vast rain forests and the Lavian tree grub.", info.Description)

	_, err = w.SystemInfo(256)
	assert.ErrorIs(t, err, galaxy.ErrInvalidSystem)
}

func TestUnitsAreConverted(t *testing.T) {
	w := newWrapper(t)

	assert.Equal(t, 100.0, w.Cash())
	assert.Equal(t, 7.0, w.Fuel())
	assert.Equal(t, 7.0, w.MaxFuel())
	assert.Equal(t, PlayerStatus{Fuel: 7, Cash: 100}, w.PlayerStatus())
	assert.Equal(t, 3.6, w.Distance(diso))

	items := w.Marketplace()
	require.Len(t, items, market.NumGoods)
	assert.Equal(t, MarketplaceItem{Price: 3.6, Amount: 16}, items[market.Food])
	assert.Equal(t, MarketplaceItem{Price: 94.4, Amount: 14}, items[market.Luxuries])
}

func TestFuelKeepsTenths(t *testing.T) {
	w := newWrapper(t)
	_, err := w.Jump(diso)
	require.NoError(t, err)
	assert.Equal(t, 3.4, w.Fuel())
}

func TestSystemsInRectangleUsesHalvedY(t *testing.T) {
	w := newWrapper(t)
	assert.Equal(t, []int{7, 147}, w.SystemsInRectangle(10, 20, 85, 87))
	assert.Len(t, w.SystemsInRectangle(-5, 255, -5, 127), galaxy.Size)
}

func TestSystemLists(t *testing.T) {
	w := newWrapper(t)

	names := func(infos []SystemInfo) []int {
		var out []int
		for _, s := range infos {
			out = append(out, s.Number)
		}
		return out
	}

	assert.Equal(t, []int{7, 39, 46, 55, 129, 147, 255}, names(w.Systems(MaximalReachable)))
	assert.Equal(t, []int{7, 39, 46, 55, 129, 147, 155, 255}, names(w.Systems(NearSystems)))
	assert.Len(t, w.Systems(AllSystems), galaxy.Size)

	require.NoError(t, w.SetFuel(4))
	assert.Equal(t, []int{7, 55, 147}, names(w.Systems(Reachable)))
}

func TestTradegoods(t *testing.T) {
	w := newWrapper(t)

	assert.Equal(t, 17, w.NumberOfTradegoods())
	goods := w.Tradegoods()
	require.Len(t, goods, 17)
	assert.Equal(t, Tradegood{Name: "Gem-Stones", Unit: "g"}, goods[market.GemStones])

	g, err := w.Tradegood(market.Gold)
	require.NoError(t, err)
	assert.Equal(t, Tradegood{Name: "Gold", Unit: "kg"}, g)

	_, err = w.Tradegood(17)
	assert.ErrorIs(t, err, ErrInvalidTradegood)

	n, ok := w.MatchTradegood("furs")
	assert.True(t, ok)
	assert.Equal(t, market.Furs, n)

	assert.True(t, w.TradegoodIsInTons(market.Food))
	assert.True(t, w.TradegoodIsInTons(market.AlienItems))
	assert.False(t, w.TradegoodIsInTons(market.Gold))
	assert.False(t, w.TradegoodIsInTons(market.GemStones))
	assert.False(t, w.TradegoodIsInTons(-1))
	assert.False(t, w.TradegoodIsInTons(17))
}

func TestPurchaseAndSaleReports(t *testing.T) {
	w := newWrapper(t)
	l := &fakeListener{}
	w.AddListener(l)

	report, err := w.Purchase(market.Food, 3)
	require.NoError(t, err)
	assert.Equal(t, "Bought 3t of Food.", report)
	assert.Equal(t, 89.2, w.Cash())

	report, err = w.Purchase(market.Gold, 1)
	require.NoError(t, err)
	assert.Equal(t, "Bought 1kg of Gold.", report)

	report, err = w.Sale(market.Food, 10)
	require.NoError(t, err)
	assert.Equal(t, "Sold 3t of Food.", report)

	_, err = w.Sale(market.Food, 1)
	assert.ErrorIs(t, err, game.ErrNothingToSell)

	_, err = w.Purchase(market.Food, -1)
	assert.ErrorIs(t, err, game.ErrInvalidAmount)

	assert.Contains(t, l.messages, "Bought 3t of Food.")
	assert.Contains(t, l.messages, "Sold 3t of Food.")
	// a sale capped at the hold is not explained as a failure
	assert.NotContains(t, l.messages, "You don't have any of these.")
	require.NotEmpty(t, l.statuses)
	last := l.statuses[len(l.statuses)-1]
	assert.Equal(t, "Lave", last.Name)
	assert.Equal(t, uint(1), last.Cargo[market.Gold])
	assert.Equal(t, uint(20), last.CargoBay)
}

func TestJumpNotifiesListeners(t *testing.T) {
	w := newWrapper(t)
	l := &fakeListener{}
	w.AddListener(l)

	report, err := w.Jump(diso)
	require.NoError(t, err)
	assert.Equal(t, "Jumped to Diso.", report)

	require.Len(t, l.systems, 1)
	assert.Equal(t, "Diso", l.systems[0].Name)
	assert.Equal(t, uint(87), l.systems[0].Y)
	require.NotEmpty(t, l.markets)
	assert.Len(t, l.markets[0], market.NumGoods)

	_, err = w.Jump(diso)
	assert.ErrorIs(t, err, game.ErrAlreadyThere)

	w.RemoveListener(l)
	_, err = w.Sneak(lave)
	require.NoError(t, err)
	assert.Len(t, l.systems, 1)
}

func TestGalacticHyperspaceReport(t *testing.T) {
	w := newWrapper(t)
	report, err := w.GalacticHyperspace()
	require.NoError(t, err)
	assert.Equal(t, "Jumped to galaxy 2.", report)
	assert.Equal(t, 2, w.GalaxyNumber())
}

func TestBuyFuel(t *testing.T) {
	w := newWrapper(t)
	l := &fakeListener{}
	w.AddListener(l)

	_, err := w.BuyFuel(1)
	assert.ErrorIs(t, err, game.ErrTankFull)

	require.NoError(t, w.SetFuel(4.7))
	report, err := w.BuyFuel(2.3)
	require.NoError(t, err)
	assert.Equal(t, "Bought 2.3 LY fuel.", report)
	assert.Equal(t, 7.0, w.Fuel())

	require.NoError(t, w.SetFuel(5))
	report, err = w.BuyFuel(5)
	require.NoError(t, err)
	assert.Equal(t, "Bought 2 LY fuel.", report)
	assert.Contains(t, l.messages, "Buying less fuel (otherwise it doesn't fit into the tank).")

	_, err = w.BuyFuel(-1)
	assert.ErrorIs(t, err, game.ErrInvalidAmount)
}

func TestControlFunctions(t *testing.T) {
	w := newWrapper(t)

	assert.ErrorIs(t, w.SetCash(100001), game.ErrInvalidAmount)
	assert.ErrorIs(t, w.SetCash(-100001), game.ErrInvalidAmount)
	require.NoError(t, w.SetCash(-50.5))
	assert.Equal(t, -50.5, w.Cash())

	require.NoError(t, w.AddCash(60.5))
	assert.Equal(t, 10.0, w.Cash())

	assert.ErrorIs(t, w.SetFuel(7.1), game.ErrInvalidAmount)
	assert.ErrorIs(t, w.SetFuel(-0.1), game.ErrInvalidAmount)
	require.NoError(t, w.SetFuel(2.5))
	assert.Equal(t, 2.5, w.Fuel())

	require.NoError(t, w.AddFuel(6))
	assert.Equal(t, 7.0, w.Fuel(), "added fuel is clamped to the tank")
	assert.ErrorIs(t, w.AddFuel(8), game.ErrInvalidAmount)

	require.NoError(t, w.AddCargoSpace(15))
	assert.Equal(t, uint(35), w.CargoBaySize())
	require.NoError(t, w.SetCargoBay(10))
	assert.Equal(t, uint(10), w.FreeHoldSpace())
}

func TestCommanderRoundTrip(t *testing.T) {
	w := newWrapper(t)
	_, err := w.Purchase(market.Minerals, 4)
	require.NoError(t, err)

	c := w.Commander("Jameson")

	other := newWrapper(t)
	require.NoError(t, other.Restore(c))
	assert.Equal(t, w.Status(), other.Status())
	assert.Equal(t, w.Cargo(), other.Cargo())
}
