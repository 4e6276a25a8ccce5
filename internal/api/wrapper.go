package api

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"sync"

	"melite/internal/galaxy"
	"melite/internal/game"
	"melite/internal/log"
	"melite/internal/market"
)

const (
	cashLimit = 100000
	maxFuelLY = float64(game.MaxFuel) / 10
)

// ErrInvalidTradegood is returned for tradegood numbers outside the catalog
var ErrInvalidTradegood = errors.New("invalid tradegood")

// Wrapper implements GameAPI on top of a game, converting the game's tenths
// into credits and light years.
type Wrapper struct {
	game    *game.Game
	catalog market.Catalog

	mu        sync.RWMutex
	listeners []Listener
}

// NewWrapper wraps g. The wrapper registers itself as an observer of g.
func NewWrapper(g *game.Game) *Wrapper {
	w := &Wrapper{game: g, catalog: g.Catalog()}
	g.AddObserver(w)
	return w
}

// New starts a fresh game and wraps it
func New(opts game.Options) (*Wrapper, error) {
	g, err := game.New(opts)
	if err != nil {
		return nil, fmt.Errorf("start game: %w", err)
	}
	return NewWrapper(g), nil
}

// Game returns the wrapped game
func (w *Wrapper) Game() *game.Game {
	return w.game
}

// AddListener registers l for game notifications
func (w *Wrapper) AddListener(l Listener) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.listeners = append(w.listeners, l)
}

// RemoveListener unregisters l
func (w *Wrapper) RemoveListener(l Listener) {
	w.mu.Lock()
	defer w.mu.Unlock()
	for i, existing := range w.listeners {
		if existing == l {
			w.listeners = append(w.listeners[:i], w.listeners[i+1:]...)
			return
		}
	}
}

func (w *Wrapper) eachListener(fn func(Listener)) {
	w.mu.RLock()
	ls := append([]Listener(nil), w.listeners...)
	w.mu.RUnlock()
	for _, l := range ls {
		fn(l)
	}
}

func (w *Wrapper) message(msg string) {
	w.eachListener(func(l Listener) { l.OnMessage(msg) })
}

// OnSystemChanged implements game.Observer
func (w *Wrapper) OnSystemChanged(sys galaxy.PlanetSystem) {
	info := systemInfo(sys)
	w.eachListener(func(l Listener) { l.OnSystemChanged(info) })
}

// OnStatusChanged implements game.Observer
func (w *Wrapper) OnStatusChanged(st game.Status) {
	status := w.convertStatus(st)
	w.eachListener(func(l Listener) { l.OnStatusChanged(status) })
}

// OnMarketChanged implements game.Observer
func (w *Wrapper) OnMarketChanged(m market.Market) {
	items := marketplaceItems(m)
	w.eachListener(func(l Listener) { l.OnMarketChanged(items) })
}

func (w *Wrapper) convertStatus(st game.Status) Status {
	name := ""
	if sys, err := w.game.System(st.System); err == nil {
		name = sys.Name
	}
	var tonnes uint
	for i, q := range st.Cargo {
		if w.catalog[i].Unit == market.Tonnes {
			tonnes += q
		}
	}
	return Status{
		Galaxy:    st.Galaxy,
		System:    st.System,
		Name:      name,
		Fuel:      float64(st.Fuel) / 10,
		Cash:      float64(st.Cash) / 10,
		HoldSpace: st.HoldSpace,
		CargoBay:  tonnes + st.HoldSpace,
		Cargo:     append([]uint(nil), st.Cargo[:]...),
	}
}

func systemInfo(sys galaxy.PlanetSystem) SystemInfo {
	return SystemInfo{
		Number:       sys.Number,
		Name:         sys.Name,
		X:            sys.X,
		Y:            sys.Y / 2,
		Economy:      sys.Economy,
		Government:   sys.Government,
		TechLevel:    sys.TechLevel,
		Population:   sys.Population,
		Productivity: sys.Productivity,
		Radius:       sys.Radius,
		Description:  galaxy.Describe(sys),
	}
}

func marketplaceItems(m market.Market) []MarketplaceItem {
	items := make([]MarketplaceItem, market.NumGoods)
	for i := range items {
		items[i] = MarketplaceItem{
			Price:  float64(m.Price[i]) / 10,
			Amount: m.Quantity[i],
		}
	}
	return items
}

// SystemInfo returns display data for system number of the current galaxy
func (w *Wrapper) SystemInfo(number int) (SystemInfo, error) {
	sys, err := w.game.System(number)
	if err != nil {
		return SystemInfo{}, err
	}
	return systemInfo(sys), nil
}

func (w *Wrapper) CurrentSystem() int          { return w.game.CurrentSystem() }
func (w *Wrapper) GalaxyNumber() int           { return w.game.GalaxyNumber() }
func (w *Wrapper) Galaxy() *galaxy.Galaxy      { return w.game.Galaxy() }
func (w *Wrapper) LocalSystems() []int         { return w.game.LocalSystems() }
func (w *Wrapper) IsReachable(number int) bool { return w.game.IsReachable(number) }
func (w *Wrapper) IsInLocalRange(n int) bool   { return w.game.IsInLocalRange(n) }
func (w *Wrapper) CargoBaySize() uint          { return w.game.CargoBaySize() }
func (w *Wrapper) FreeHoldSpace() uint         { return w.game.FreeHoldSpace() }
func (w *Wrapper) MaxFuel() float64            { return maxFuelLY }
func (w *Wrapper) NumberOfTradegoods() int     { return market.NumGoods }

// TradegoodIsInTons reports whether number is a valid good that takes up
// cargo space
func (w *Wrapper) TradegoodIsInTons(number int) bool { return w.game.IsInTons(number) }

// Distance from the current system in light years
func (w *Wrapper) Distance(number int) float64 {
	return float64(w.game.Distance(number)) / 10
}

// MatchSystem finds the nearest system whose name starts with prefix
func (w *Wrapper) MatchSystem(prefix string) (int, bool) {
	return w.game.Match(prefix)
}

// MatchTradegood finds a good by name prefix
func (w *Wrapper) MatchTradegood(prefix string) (int, bool) {
	return w.catalog.Lookup(prefix)
}

// SystemsInRectangle takes halved y coordinates. The bounds are widened by
// one on each side so odd raw coordinates are never lost.
func (w *Wrapper) SystemsInRectangle(left, right, bottom, top int) []int {
	clamp := func(v int) uint {
		if v < 0 {
			return 0
		}
		return uint(v)
	}
	return w.game.SystemsInRectangle(clamp(left), clamp(right), clamp((bottom-1)*2), clamp((top+1)*2))
}

// Fuel in light years
func (w *Wrapper) Fuel() float64 {
	return float64(w.game.Fuel()) / 10
}

// Cash in credits
func (w *Wrapper) Cash() float64 {
	return float64(w.game.Cash()) / 10
}

// PlayerStatus returns fuel and cash together
func (w *Wrapper) PlayerStatus() PlayerStatus {
	st := w.game.Status()
	return PlayerStatus{Fuel: float64(st.Fuel) / 10, Cash: float64(st.Cash) / 10}
}

// Status returns the full ship state
func (w *Wrapper) Status() Status {
	return w.convertStatus(w.game.Status())
}

// Cargo returns the amount held of every good
func (w *Wrapper) Cargo() []uint {
	c := w.game.Cargo()
	return append([]uint(nil), c[:]...)
}

// Marketplace returns price and stock of every good at the current system
func (w *Wrapper) Marketplace() []MarketplaceItem {
	return marketplaceItems(w.game.Marketplace())
}

// Tradegoods lists names and units of all goods
func (w *Wrapper) Tradegoods() []Tradegood {
	goods := make([]Tradegood, market.NumGoods)
	for i, c := range w.catalog {
		goods[i] = Tradegood{Name: c.Name, Unit: c.Unit.String()}
	}
	return goods
}

// Tradegood returns the name and unit of one good
func (w *Wrapper) Tradegood(number int) (Tradegood, error) {
	if number < 0 || number >= market.NumGoods {
		return Tradegood{}, ErrInvalidTradegood
	}
	c := w.catalog[number]
	return Tradegood{Name: c.Name, Unit: c.Unit.String()}, nil
}

// Jump hyperspaces to system number
func (w *Wrapper) Jump(number int) (string, error) {
	if err := w.game.Jump(number); err != nil {
		return "", err
	}
	return w.arrived()
}

// Sneak moves to system number without using fuel
func (w *Wrapper) Sneak(number int) (string, error) {
	if err := w.game.Sneak(number); err != nil {
		return "", err
	}
	return w.arrived()
}

func (w *Wrapper) arrived() (string, error) {
	sys, err := w.game.System(w.game.CurrentSystem())
	if err != nil {
		return "", err
	}
	report := "Jumped to " + sys.Name + "."
	w.message(report)
	return report, nil
}

// GalacticHyperspace jumps to the next galaxy
func (w *Wrapper) GalacticHyperspace() (string, error) {
	if err := w.game.GalacticHyperspace(); err != nil {
		return "", err
	}
	report := fmt.Sprintf("Jumped to galaxy %d.", w.game.GalaxyNumber())
	w.message(report)
	return report, nil
}

// Purchase buys up to amount units of good and reports what was bought
func (w *Wrapper) Purchase(good, amount int) (string, error) {
	if amount < 0 {
		return "", fmt.Errorf("purchase %d: %w", amount, game.ErrInvalidAmount)
	}
	r, err := w.game.Buy(good, uint(amount))
	if err != nil {
		return "", err
	}
	return w.tradeReport("Bought", r), nil
}

// Sale sells up to amount units of good and reports what was sold
func (w *Wrapper) Sale(good, amount int) (string, error) {
	if amount < 0 {
		return "", fmt.Errorf("sale %d: %w", amount, game.ErrInvalidAmount)
	}
	r, err := w.game.Sell(good, uint(amount))
	if err != nil {
		return "", err
	}
	return w.tradeReport("Sold", r), nil
}

func (w *Wrapper) tradeReport(verb string, r game.Receipt) string {
	if r.Limit != nil {
		w.message(capitalize(r.Limit.Error()) + ".")
	}
	report := finish(fmt.Sprintf("%s %d%s of %s ", verb, r.Amount, r.Unit, r.Name))
	w.message(report)
	return report
}

// BuyFuel buys up to ly light years of fuel
func (w *Wrapper) BuyFuel(ly float64) (string, error) {
	if ly < 0 || math.IsNaN(ly) {
		return "", fmt.Errorf("fuel %v: %w", ly, game.ErrInvalidAmount)
	}
	// tolerate binary rounding such as 2.3*10 = 22.999...
	tenths := uint(math.Floor(ly*10 + 1e-9))
	r, err := w.game.BuyFuel(tenths)
	if err != nil {
		return "", err
	}
	switch {
	case errors.Is(r.Limit, game.ErrTankFull):
		w.message("Buying less fuel (otherwise it doesn't fit into the tank).")
	case errors.Is(r.Limit, game.ErrInsufficientCash):
		w.message("Buying less fuel (not enough cash available to buy whole amount).")
	}
	report := "Bought " + strconv.FormatFloat(float64(r.Amount)/10, 'f', -1, 64) + " LY fuel."
	w.message(report)
	return report, nil
}

// SetCash sets the cash; it must lie in -100000..100000 CR
func (w *Wrapper) SetCash(cr float64) error {
	if cr < -cashLimit || cr > cashLimit || math.IsNaN(cr) {
		return fmt.Errorf("cash %v: %w", cr, game.ErrInvalidAmount)
	}
	w.game.SetCash(int32(math.Round(cr * 10)))
	return nil
}

// SetFuel sets the fuel; it must lie in 0..7 LY
func (w *Wrapper) SetFuel(ly float64) error {
	if ly < 0 || ly > maxFuelLY || math.IsNaN(ly) {
		return fmt.Errorf("fuel %v: %w", ly, game.ErrInvalidAmount)
	}
	return w.game.SetFuel(uint(math.Round(ly * 10)))
}

// SetCargoBay resizes the hold
func (w *Wrapper) SetCargoBay(size uint) error {
	return w.game.SetCargoBay(size)
}

// AddCash adds cr to the current cash
func (w *Wrapper) AddCash(cr float64) error {
	return w.SetCash(w.Cash() + cr)
}

// AddFuel adds ly (0..7) to the tank, clamping at a full tank
func (w *Wrapper) AddFuel(ly float64) error {
	if ly < 0 || ly > maxFuelLY || math.IsNaN(ly) {
		return fmt.Errorf("fuel %v: %w", ly, game.ErrInvalidAmount)
	}
	v := w.Fuel() + ly
	if v > maxFuelLY {
		log.Debug("added fuel clamped to tank", "requested", ly)
		v = maxFuelLY
	}
	return w.SetFuel(v)
}

// AddCargoSpace enlarges the hold by size tonnes
func (w *Wrapper) AddCargoSpace(size uint) error {
	return w.game.SetCargoBay(w.game.CargoBaySize() + size)
}

// ToggleRandom switches the random generator and reports whether the native
// one is now active
func (w *Wrapper) ToggleRandom() bool {
	return w.game.ToggleRandom()
}

// Commander captures the game for saving
func (w *Wrapper) Commander(name string) game.Commander {
	return w.game.Snapshot(name)
}

// Restore loads a saved commander
func (w *Wrapper) Restore(c game.Commander) error {
	return w.game.Restore(c)
}

// finish trims trailing spaces and ends the sentence
func finish(report string) string {
	return strings.TrimRight(report, " ") + "."
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
