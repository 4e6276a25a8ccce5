package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	_ "modernc.org/sqlite"

	"melite/internal/game"
	"melite/internal/log"
	"melite/internal/market"
)

var (
	ErrCommanderNotFound = errors.New("commander not found")
	ErrCorruptSave       = errors.New("corrupt save")
)

// MemoryPath opens a private in-memory database
const MemoryPath = ":memory:"

// DB is the SQLite save-game store
type DB struct {
	db   *sql.DB
	path string
}

// Open opens or creates the database at path and brings its schema up to date
func Open(ctx context.Context, path string) (*DB, error) {
	db, err := sql.Open("sqlite", path+"?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// sqlite allows a single writer, and every :memory: connection is a separate database
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	d := &DB{db: db, path: path}
	if err := d.runMigrations(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	log.Info("database opened", "path", path)
	return d, nil
}

// Close closes the database connection
func (d *DB) Close() error {
	if err := d.db.Close(); err != nil {
		return fmt.Errorf("failed to close database: %w", err)
	}
	return nil
}

// SaveCommander stores c, replacing any earlier save with the same name
func (d *DB) SaveCommander(ctx context.Context, c game.Commander) error {
	if c.Name == "" {
		return fmt.Errorf("%w: empty commander name", ErrCorruptSave)
	}

	tx, err := d.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to start transaction: %w", err)
	}
	defer tx.Rollback()

	upsert := squirrel.Insert("commanders").
		Columns("name", "galaxy", "system", "cash", "fuel", "cargo_bay",
			"native_rand", "rand_state", "rand_seed", "rand_draws").
		Values(c.Name, c.Galaxy, c.System, c.Cash, c.Fuel, c.CargoBay,
			c.NativeRand, c.RandState, c.RandSeed, c.RandDraws).
		Suffix(`ON CONFLICT(name) DO UPDATE SET
			galaxy = excluded.galaxy,
			system = excluded.system,
			cash = excluded.cash,
			fuel = excluded.fuel,
			cargo_bay = excluded.cargo_bay,
			native_rand = excluded.native_rand,
			rand_state = excluded.rand_state,
			rand_seed = excluded.rand_seed,
			rand_draws = excluded.rand_draws,
			saved_at = CURRENT_TIMESTAMP`)
	if err := execBuilder(ctx, tx, upsert); err != nil {
		return fmt.Errorf("failed to save commander: %w", err)
	}

	for _, table := range []string{"commander_cargo", "commander_market"} {
		del := squirrel.Delete(table).Where(squirrel.Eq{"commander": c.Name})
		if err := execBuilder(ctx, tx, del); err != nil {
			return fmt.Errorf("failed to clear %s: %w", table, err)
		}
	}

	cargo := squirrel.Insert("commander_cargo").Columns("commander", "good", "quantity")
	held := 0
	for good, q := range c.Cargo {
		if q == 0 {
			continue
		}
		cargo = cargo.Values(c.Name, good, q)
		held++
	}
	if held > 0 {
		if err := execBuilder(ctx, tx, cargo); err != nil {
			return fmt.Errorf("failed to save cargo: %w", err)
		}
	}

	mkt := squirrel.Insert("commander_market").Columns("commander", "good", "price", "quantity")
	for good := range market.NumGoods {
		mkt = mkt.Values(c.Name, good, c.Market.Price[good], c.Market.Quantity[good])
	}
	if err := execBuilder(ctx, tx, mkt); err != nil {
		return fmt.Errorf("failed to save market: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit save: %w", err)
	}
	log.Debug("commander saved", "name", c.Name, "galaxy", c.Galaxy, "system", c.System)
	return nil
}

// LoadCommander reads the save called name
func (d *DB) LoadCommander(ctx context.Context, name string) (game.Commander, error) {
	c := game.Commander{Name: name}

	query, args, err := squirrel.Select("galaxy", "system", "cash", "fuel", "cargo_bay",
		"native_rand", "rand_state", "rand_seed", "rand_draws").
		From("commanders").
		Where(squirrel.Eq{"name": name}).
		ToSql()
	if err != nil {
		return c, err
	}
	err = d.db.QueryRowContext(ctx, query, args...).
		Scan(&c.Galaxy, &c.System, &c.Cash, &c.Fuel, &c.CargoBay,
			&c.NativeRand, &c.RandState, &c.RandSeed, &c.RandDraws)
	if errors.Is(err, sql.ErrNoRows) {
		return c, fmt.Errorf("%w: %s", ErrCommanderNotFound, name)
	}
	if err != nil {
		return c, fmt.Errorf("failed to load commander %s: %w", name, err)
	}

	err = d.eachGood(ctx, squirrel.Select("good", "quantity").From("commander_cargo"), name, func(good int, vals ...uint) {
		c.Cargo[good] = vals[0]
	}, 1)
	if err != nil {
		return c, fmt.Errorf("failed to load cargo: %w", err)
	}

	err = d.eachGood(ctx, squirrel.Select("good", "price", "quantity").From("commander_market"), name, func(good int, vals ...uint) {
		c.Market.Price[good] = vals[0]
		c.Market.Quantity[good] = vals[1]
	}, 2)
	if err != nil {
		return c, fmt.Errorf("failed to load market: %w", err)
	}

	return c, nil
}

// eachGood runs a per-good query for one commander and hands every row to fn
func (d *DB) eachGood(ctx context.Context, sel squirrel.SelectBuilder, name string, fn func(good int, vals ...uint), width int) error {
	query, args, err := sel.Where(squirrel.Eq{"commander": name}).OrderBy("good").ToSql()
	if err != nil {
		return err
	}
	rows, err := d.db.QueryContext(ctx, query, args...)
	if err != nil {
		return err
	}
	defer rows.Close()

	vals := make([]uint, width)
	dest := make([]any, width+1)
	var good int
	dest[0] = &good
	for i := range vals {
		dest[i+1] = &vals[i]
	}
	for rows.Next() {
		if err := rows.Scan(dest...); err != nil {
			return err
		}
		if good < 0 || good >= market.NumGoods {
			return fmt.Errorf("%w: good %d", ErrCorruptSave, good)
		}
		fn(good, vals...)
	}
	return rows.Err()
}

// ListCommanders returns the saved commander names in alphabetical order
func (d *DB) ListCommanders(ctx context.Context) ([]string, error) {
	query, args, err := squirrel.Select("name").From("commanders").OrderBy("name").ToSql()
	if err != nil {
		return nil, err
	}
	rows, err := d.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list commanders: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

// DeleteCommander removes a save together with its cargo and market
func (d *DB) DeleteCommander(ctx context.Context, name string) error {
	query, args, err := squirrel.Delete("commanders").Where(squirrel.Eq{"name": name}).ToSql()
	if err != nil {
		return err
	}
	res, err := d.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to delete commander %s: %w", name, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", ErrCommanderNotFound, name)
	}
	log.Debug("commander deleted", "name", name)
	return nil
}

func execBuilder(ctx context.Context, tx *sql.Tx, b squirrel.Sqlizer) error {
	query, args, err := b.ToSql()
	if err != nil {
		return err
	}
	_, err = tx.ExecContext(ctx, query, args...)
	return err
}
