package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresStorage is the pgx-backed storage used when DATABASE_URL is set.
type PostgresStorage struct {
	pool        *pgxpool.Pool
	catalog     *catalogStorage
	dailyLogs   *dailyLogsStorage
	weeklyPlans *weeklyPlansStorage
}

// New connects to the database and verifies the connection with a ping.
func New(ctx context.Context, databaseURL string) (*PostgresStorage, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, err
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	return &PostgresStorage{
		pool:        pool,
		catalog:     newCatalogStorage(pool),
		dailyLogs:   newDailyLogsStorage(pool),
		weeklyPlans: newWeeklyPlansStorage(pool),
	}, nil
}

// GetCatalogStorage returns the food catalog storage.
func (p *PostgresStorage) GetCatalogStorage() *catalogStorage {
	return p.catalog
}

// GetDailyLogsStorage returns the daily food logs storage.
func (p *PostgresStorage) GetDailyLogsStorage() *dailyLogsStorage {
	return p.dailyLogs
}

// GetWeeklyPlansStorage returns the weekly plans storage.
func (p *PostgresStorage) GetWeeklyPlansStorage() *weeklyPlansStorage {
	return p.weeklyPlans
}

func (p *PostgresStorage) Close() error {
	p.pool.Close()
	return nil
}
