package api

import (
	"melite/internal/galaxy"
	"melite/internal/game"
)

// GameAPI defines commands from a user interface to the game. Amounts of
// cash are credits and fuel is light years.
type GameAPI interface {
	// Systems
	SystemInfo(number int) (SystemInfo, error)
	CurrentSystem() int
	GalaxyNumber() int
	Galaxy() *galaxy.Galaxy
	LocalSystems() []int
	SystemsInRectangle(left, right, bottom, top int) []int
	Systems(list SystemList) []SystemInfo
	IsReachable(number int) bool
	IsInLocalRange(number int) bool
	Distance(number int) float64
	MatchSystem(prefix string) (int, bool)

	// Ship and market
	Fuel() float64
	MaxFuel() float64
	Cash() float64
	PlayerStatus() PlayerStatus
	Status() Status
	CargoBaySize() uint
	FreeHoldSpace() uint
	Cargo() []uint
	Marketplace() []MarketplaceItem
	NumberOfTradegoods() int
	TradegoodIsInTons(number int) bool
	Tradegoods() []Tradegood
	Tradegood(number int) (Tradegood, error)
	MatchTradegood(prefix string) (int, bool)

	// Actions; the returned string is a report for the player
	Jump(number int) (string, error)
	Sneak(number int) (string, error)
	GalacticHyperspace() (string, error)
	Purchase(good, amount int) (string, error)
	Sale(good, amount int) (string, error)
	BuyFuel(ly float64) (string, error)

	// Control functions
	SetCash(cr float64) error
	SetFuel(ly float64) error
	SetCargoBay(size uint) error
	AddCash(cr float64) error
	AddFuel(ly float64) error
	AddCargoSpace(size uint) error
	ToggleRandom() bool

	// Persistence
	Commander(name string) game.Commander
	Restore(c game.Commander) error

	AddListener(l Listener)
	RemoveListener(l Listener)
}

// Listener defines notifications from the game to a user interface.
//
// All methods must return immediately. Queue UI work through the toolkit's
// own mechanism (tview's QueueUpdateDraw) instead of doing it inline.
type Listener interface {
	OnSystemChanged(info SystemInfo)
	OnStatusChanged(status Status)
	OnMarketChanged(items []MarketplaceItem)
	OnMessage(msg string)
}

// SystemList selects a group of systems for World style queries
type SystemList int

const (
	// Reachable systems can be reached with the fuel in the tank
	Reachable SystemList = iota
	// MaximalReachable systems can be reached with a full tank
	MaximalReachable
	AllSystems
	// NearSystems covers the bounding box of the maximal reachable systems
	NearSystems
)

func (l SystemList) String() string {
	switch l {
	case Reachable:
		return "reachable"
	case MaximalReachable:
		return "maximal reachable"
	case AllSystems:
		return "all"
	case NearSystems:
		return "near"
	default:
		return "unknown"
	}
}

// SystemInfo describes a system for display. Y is half the raw coordinate
// so distances on screen look like distances in the game.
type SystemInfo struct {
	Number       int
	Name         string
	X            uint
	Y            uint
	Economy      galaxy.Economy
	Government   galaxy.Government
	TechLevel    uint
	Population   uint
	Productivity uint
	Radius       uint
	Description  string
}

// MarketplaceItem is the local price in credits and the stock of one good
type MarketplaceItem struct {
	Price  float64
	Amount uint
}

// Tradegood names a good and its unit
type Tradegood struct {
	Name string
	Unit string
}

// PlayerStatus is the fuel (LY) and cash (CR) of the commander
type PlayerStatus struct {
	Fuel float64
	Cash float64
}

// Status is the full ship state pushed to listeners
type Status struct {
	Galaxy    int
	System    int
	Name      string
	Fuel      float64
	Cash      float64
	HoldSpace uint
	CargoBay  uint
	Cargo     []uint
}
