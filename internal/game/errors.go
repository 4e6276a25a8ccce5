package game

import (
	"errors"

	"melite/internal/galaxy"
)

var (
	ErrInvalidSystem = galaxy.ErrInvalidSystem
	ErrOutOfRange    = errors.New("jump too far (system not in range, even with full fuel)")
	ErrNotEnoughFuel = errors.New("jump too far (system in range, but not enough fuel)")
	ErrAlreadyThere  = errors.New("already there")

	ErrInvalidCommodity = errors.New("no such commodity")
	ErrNothingRequested = errors.New("nothing requested")
	ErrNoCash           = errors.New("you don't have any cash")
	ErrInsufficientCash = errors.New("not enough cash")
	ErrNotAvailable     = errors.New("the market does not sell this at the moment")
	ErrHoldFull         = errors.New("cargo bay is full")
	ErrNothingToSell    = errors.New("you don't have any of these")

	ErrTankFull      = errors.New("tank is full")
	ErrInvalidAmount = errors.New("amount out of range")
	ErrCargoTooLarge = errors.New("too much cargo for a bay of that size")
	ErrInvalidSave   = errors.New("invalid commander data")
)
