package game

import (
	"sync"

	"melite/internal/galaxy"
	"melite/internal/log"
	"melite/internal/market"
)

const (
	// FuelCost is the price of 0.1 LY in tenths of a credit
	FuelCost = 2
	// MaxFuel is the tank size in tenths of a light year
	MaxFuel = 70

	startSystem   = 7 // Lave
	startCash     = 1000
	startCargoBay = 20
)

// Options configure a new game
type Options struct {
	Seed               uint32
	NativeRand         bool
	PoliticallyCorrect bool
}

// DefaultOptions mirror the classic start
func DefaultOptions() Options {
	return Options{Seed: DefaultSeed, NativeRand: true}
}

// Status is the commander's ship state as seen by observers
type Status struct {
	Galaxy    int
	System    int
	Cash      int32 // tenths of a credit
	Fuel      uint  // tenths of a light year
	HoldSpace uint
	Cargo     [market.NumGoods]uint
}

// Observer receives game updates. Callbacks run after the game lock is
// released and must return quickly.
type Observer interface {
	OnSystemChanged(sys galaxy.PlanetSystem)
	OnStatusChanged(st Status)
	OnMarketChanged(m market.Market)
}

// Game is one commander's trading session. All methods are safe for
// concurrent use.
type Game struct {
	mu sync.RWMutex

	catalog   market.Catalog
	seed      uint32
	galaxyNum int
	galaxy    *galaxy.Galaxy
	current   int
	cash      int32
	fuel      uint
	hold      [market.NumGoods]uint
	holdSpace uint
	market    market.Market
	rng       *generator

	obsMu     sync.RWMutex
	observers []Observer
}

// New starts a commander at Lave with a full tank, 100 CR and a 20t bay
func New(opts Options) (*Game, error) {
	g := &Game{
		catalog: market.Classic(opts.PoliticallyCorrect),
		seed:    opts.Seed,
		rng:     newGenerator(opts.Seed, opts.NativeRand),
	}
	if err := g.buildGalaxy(1); err != nil {
		return nil, err
	}
	g.current = startSystem
	g.market = market.Generate(&g.catalog, 0x00, g.galaxy.Systems[startSystem].Economy)
	g.fuel = MaxFuel
	g.holdSpace = startCargoBay
	g.cash = startCash

	log.Debug("game started", "seed", opts.Seed, "native_rand", opts.NativeRand)
	return g, nil
}

func (g *Game) buildGalaxy(n int) error {
	gal, err := galaxy.Build(n)
	if err != nil {
		return err
	}
	g.galaxyNum = n
	g.galaxy = gal
	return nil
}

// AddObserver registers o for updates
func (g *Game) AddObserver(o Observer) {
	g.obsMu.Lock()
	defer g.obsMu.Unlock()
	g.observers = append(g.observers, o)
}

// RemoveObserver unregisters o
func (g *Game) RemoveObserver(o Observer) {
	g.obsMu.Lock()
	defer g.obsMu.Unlock()
	for i, existing := range g.observers {
		if existing == o {
			g.observers = append(g.observers[:i], g.observers[i+1:]...)
			return
		}
	}
}

func (g *Game) snapshotObservers() []Observer {
	g.obsMu.RLock()
	defer g.obsMu.RUnlock()
	return append([]Observer(nil), g.observers...)
}

// statusLocked must be called with g.mu held
func (g *Game) statusLocked() Status {
	return Status{
		Galaxy:    g.galaxyNum,
		System:    g.current,
		Cash:      g.cash,
		Fuel:      g.fuel,
		HoldSpace: g.holdSpace,
		Cargo:     g.hold,
	}
}

func (g *Game) notifyStatus() {
	g.mu.RLock()
	st := g.statusLocked()
	m := g.market
	g.mu.RUnlock()

	for _, o := range g.snapshotObservers() {
		o.OnStatusChanged(st)
		o.OnMarketChanged(m)
	}
}

func (g *Game) notifyArrival() {
	g.mu.RLock()
	sys := g.galaxy.Systems[g.current]
	g.mu.RUnlock()

	for _, o := range g.snapshotObservers() {
		o.OnSystemChanged(sys)
	}
	g.notifyStatus()
}

// Catalog returns the trade goods table in use
func (g *Game) Catalog() market.Catalog {
	return g.catalog
}

// GalaxyNumber returns the current galaxy (1..8)
func (g *Game) GalaxyNumber() int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.galaxyNum
}

// CurrentSystem returns the number of the system the commander is docked at
func (g *Game) CurrentSystem() int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.current
}

// System returns generated data for system n of the current galaxy
func (g *Game) System(n int) (galaxy.PlanetSystem, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.galaxy.System(n)
}

// Galaxy returns the current galaxy. The returned value is shared and must
// not be modified.
func (g *Game) Galaxy() *galaxy.Galaxy {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.galaxy
}

// Distance from the current system to system n
func (g *Game) Distance(n int) uint {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.galaxy.Distance(g.current, n)
}

// LocalSystems lists the systems reachable with a full tank
func (g *Game) LocalSystems() []int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.galaxy.Local(g.current, MaxFuel)
}

// SystemsInRectangle lists systems inside the inclusive raw coordinate box
func (g *Game) SystemsInRectangle(left, right, bottom, top uint) []int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.galaxy.InRectangle(left, right, bottom, top)
}

// IsReachable reports whether n is within the fuel currently in the tank
func (g *Game) IsReachable(n int) bool {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.galaxy.Distance(g.current, n) <= g.fuel
}

// IsInLocalRange reports whether n is within a full tank
func (g *Game) IsInLocalRange(n int) bool {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.galaxy.Distance(g.current, n) <= MaxFuel
}

// Match looks up a system by name prefix, nearest first
func (g *Game) Match(prefix string) (int, bool) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.galaxy.Match(prefix, g.current)
}

// Fuel in tenths of a light year
func (g *Game) Fuel() uint {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.fuel
}

// Cash in tenths of a credit
func (g *Game) Cash() int32 {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.cash
}

// Marketplace returns the local market
func (g *Game) Marketplace() market.Market {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.market
}

// Cargo returns the amount held of every good
func (g *Game) Cargo() [market.NumGoods]uint {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.hold
}

// FreeHoldSpace is the free cargo space in tonnes
func (g *Game) FreeHoldSpace() uint {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.holdSpace
}

// CargoBaySize is the tonnage held plus the free space
func (g *Game) CargoBaySize() uint {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.tonnesHeldLocked() + g.holdSpace
}

func (g *Game) tonnesHeldLocked() uint {
	var t uint
	for i, c := range g.catalog {
		if c.Unit == market.Tonnes {
			t += g.hold[i]
		}
	}
	return t
}

// IsInTons reports whether good takes up cargo space
func (g *Game) IsInTons(good int) bool {
	if good < 0 || good >= market.NumGoods {
		return false
	}
	return g.catalog[good].Unit == market.Tonnes
}

// Status returns the current ship state
func (g *Game) Status() Status {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.statusLocked()
}

// NativeRand reports which generator is in use
func (g *Game) NativeRand() bool {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.rng.native
}

// Jump hyperspaces to system n, paying for the distance with fuel. The
// market of the new system is generated from a fresh random byte.
func (g *Game) Jump(n int) error {
	g.mu.Lock()
	if n < 0 || n >= galaxy.Size {
		g.mu.Unlock()
		return ErrInvalidSystem
	}
	d := g.galaxy.Distance(g.current, n)
	switch {
	case d > MaxFuel:
		g.mu.Unlock()
		return ErrOutOfRange
	case d > g.fuel:
		g.mu.Unlock()
		return ErrNotEnoughFuel
	case n == g.current:
		g.mu.Unlock()
		return ErrAlreadyThere
	}
	g.fuel -= d
	g.arriveLocked(n)
	g.mu.Unlock()

	log.Debug("jump", "system", n, "distance", d)
	g.notifyArrival()
	return nil
}

// Sneak moves to system n without using fuel, whatever the distance
func (g *Game) Sneak(n int) error {
	g.mu.Lock()
	if n < 0 || n >= galaxy.Size {
		g.mu.Unlock()
		return ErrInvalidSystem
	}
	if n == g.current {
		g.mu.Unlock()
		return ErrAlreadyThere
	}
	g.arriveLocked(n)
	g.mu.Unlock()

	log.Debug("sneak", "system", n)
	g.notifyArrival()
	return nil
}

func (g *Game) arriveLocked(n int) {
	g.current = n
	g.market = market.Generate(&g.catalog, g.rng.byte(), g.galaxy.Systems[n].Economy)
}

// GalacticHyperspace moves to the next galaxy, keeping the system number
// and the local market. Galaxy 8 wraps to galaxy 1.
func (g *Game) GalacticHyperspace() error {
	g.mu.Lock()
	next := g.galaxyNum + 1
	if next > galaxy.Count {
		next = 1
	}
	if err := g.buildGalaxy(next); err != nil {
		g.mu.Unlock()
		return err
	}
	g.mu.Unlock()

	log.Debug("galactic hyperspace", "galaxy", next)
	g.notifyArrival()
	return nil
}

// SetFuel sets the fuel in tenths of a light year
func (g *Game) SetFuel(tenths uint) error {
	if tenths > MaxFuel {
		return ErrInvalidAmount
	}
	g.mu.Lock()
	g.fuel = tenths
	g.mu.Unlock()
	g.notifyStatus()
	return nil
}

// SetCash sets the cash in tenths of a credit
func (g *Game) SetCash(tenths int32) {
	g.mu.Lock()
	g.cash = tenths
	g.mu.Unlock()
	g.notifyStatus()
}

// SetCargoBay resizes the hold. It fails when the goods already carried
// would not fit.
func (g *Game) SetCargoBay(size uint) error {
	g.mu.Lock()
	held := g.tonnesHeldLocked()
	if held > size {
		g.mu.Unlock()
		return ErrCargoTooLarge
	}
	g.holdSpace = size - held
	g.mu.Unlock()
	g.notifyStatus()
	return nil
}

// ToggleRandom switches between the native and the portable generator and
// reseeds. It returns true when the native generator is now active.
func (g *Game) ToggleRandom() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.rng.native = !g.rng.native
	g.rng.seed(g.seed)
	log.Debug("random generator toggled", "native", g.rng.native)
	return g.rng.native
}
