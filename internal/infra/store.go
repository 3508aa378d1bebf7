package infra

import (
	"context"
	"database/sql"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/pgdriver"
	"github.com/uptrace/bun/extra/bundebug"
	"github.com/uptrace/bun/extra/bunotel"
	_ "modernc.org/sqlite"

	"exusiai.dev/forecast-next/internal/app/appconfig"
)

const (
	DriverPostgres = "pg"
	DriverSQLite   = "sqlite"
)

// Store opens the relational store holding the census and poll tables.
func Store(conf *appconfig.Config) (*bun.DB, error) {
	db, err := OpenStore(conf.StoreDriver, conf.StoreDSN)
	if err != nil {
		return nil, err
	}

	if conf.StoreDriver == DriverPostgres {
		db.SetMaxOpenConns(conf.StoreMaxOpenConns)
		db.SetMaxIdleConns(conf.StoreMaxIdleConns)
		db.SetConnMaxLifetime(conf.StoreConnMaxLifeTime)
		db.SetConnMaxIdleTime(conf.StoreConnMaxIdleTime)
	}

	if conf.DevMode {
		db.AddQueryHook(bundebug.NewQueryHook(
			bundebug.WithVerbose(conf.BunDebugVerbose),
		))
	}
	if conf.TracingEnabled {
		db.AddQueryHook(bunotel.NewQueryHook(bunotel.WithDBName("forecast")))
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Second*5)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		log.Error().Err(err).Str("driver", conf.StoreDriver).Msg("infra: store: failed to ping database")
		return nil, err
	}

	return db, nil
}

// OpenStore opens a bun.DB over driver without checking connectivity.
func OpenStore(driver, dsn string) (*bun.DB, error) {
	switch driver {
	case DriverPostgres:
		sqldb := sql.OpenDB(pgdriver.NewConnector(pgdriver.WithDSN(dsn)))
		return bun.NewDB(sqldb, pgdialect.New()), nil
	case DriverSQLite:
		sqldb, err := sql.Open("sqlite", dsn)
		if err != nil {
			return nil, errors.Wrap(err, "infra: store: failed to open sqlite database")
		}
		// a single connection keeps in-memory databases alive and serializes writers
		sqldb.SetMaxOpenConns(1)
		return bun.NewDB(sqldb, sqlitedialect.New()), nil
	default:
		return nil, errors.Errorf("infra: store: unknown driver %q, expected %q or %q", driver, DriverPostgres, DriverSQLite)
	}
}
