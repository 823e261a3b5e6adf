package loaders

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/yeeun-luckymealky/seller-proto-sub000/internal/types"
	"github.com/yeeun-luckymealky/seller-proto-sub000/internal/utils"
)

// ErrPlaceNotFound is returned when no place matches the requested id.
var ErrPlaceNotFound = errors.New("place not found")

// PostgresClient reads place and order snapshots from the marketplace database.
// It never writes.
type PostgresClient struct {
	dsn  string
	pool *pgxpool.Pool
}

const placeInfoQuery = `
SELECT id, name, COALESCE(category, ''), COALESCE(address, ''),
       to_char(pickup_start, 'HH24:MI'), to_char(pickup_end, 'HH24:MI'),
       item_name, COALESCE(price, 0), COALESCE(original_price, 0), COALESCE(quantity, 0)
FROM places
WHERE id = $1`

const orderStatsQuery = `
SELECT
    COUNT(*) FILTER (WHERE status = 'PAID'      AND created_at >= date_trunc('day', now())),
    COUNT(*) FILTER (WHERE status = 'CONFIRMED' AND created_at >= date_trunc('day', now())),
    COUNT(*) FILTER (WHERE status = 'PICKED_UP' AND created_at >= date_trunc('day', now())),
    COUNT(*) FILTER (WHERE status = 'CANCELLED' AND created_at >= date_trunc('day', now())),
    COUNT(*) FILTER (WHERE created_at >= now() - make_interval(days => $2)),
    COUNT(*) FILTER (WHERE status = 'PICKED_UP' AND created_at >= now() - make_interval(days => $2)),
    COALESCE((SELECT quantity FROM places WHERE id = $1), 0)
FROM orders
WHERE place_id = $1`

func NewPostgresClient(dsn string, maxConns int) (*PostgresClient, error) {
	client := &PostgresClient{
		dsn: dsn,
	}

	pool, err := client.createConnectionPool(maxConns)
	if err != nil {
		return nil, err
	}

	client.pool = pool
	utils.Zlog.Info("Connected to PostgreSQL", zap.Int("max_conns", maxConns))
	return client, nil
}

func (c *PostgresClient) createConnectionPool(maxConns int) (*pgxpool.Pool, error) {
	cfg, err := pgxpool.ParseConfig(c.dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Postgres DSN: %w", err)
	}

	if maxConns > 0 {
		cfg.MaxConns = int32(maxConns)
	}
	cfg.MinConns = 1
	cfg.HealthCheckPeriod = 30 * time.Second
	cfg.MaxConnLifetime = 60 * time.Minute
	cfg.MaxConnIdleTime = 15 * time.Minute

	pool, err := pgxpool.NewWithConfig(context.Background(), cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create pgx pool: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping Postgres: %w", err)
	}

	return pool, nil
}

func (c *PostgresClient) Ping(ctx context.Context) error {
	return c.pool.Ping(ctx)
}

func (c *PostgresClient) Close() error {
	if c.pool != nil {
		c.pool.Close()
	}
	return nil
}

// GetPlaceInfo loads the place snapshot used by the message and description prompts.
func (c *PostgresClient) GetPlaceInfo(ctx context.Context, placeID string) (*types.PlaceInfo, error) {
	var p types.PlaceInfo
	err := c.pool.QueryRow(ctx, placeInfoQuery, placeID).Scan(
		&p.ID, &p.Name, &p.Category, &p.Address,
		&p.PickupStart, &p.PickupEnd,
		&p.ItemName, &p.Price, &p.OriginalPrice, &p.Quantity,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrPlaceNotFound, placeID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load place %s: %w", placeID, err)
	}
	return &p, nil
}

// GetOrderStats aggregates today's orders and the totals of the last historyDays.
func (c *PostgresClient) GetOrderStats(ctx context.Context, placeID string, historyDays int) (*types.StatsData, error) {
	stats := types.StatsData{HistoryDays: historyDays}
	err := c.pool.QueryRow(ctx, orderStatsQuery, placeID, historyDays).Scan(
		&stats.PaidCount, &stats.ConfirmedCount, &stats.PickedUpCount, &stats.CancelledCount,
		&stats.TotalOrders, &stats.TotalPickedUp, &stats.CurrentQuantity,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load order stats for place %s: %w", placeID, err)
	}

	utils.Zlog.Debug("Loaded order stats",
		zap.String("place_id", placeID),
		zap.Int("total_orders", stats.TotalOrders),
		zap.Int("history_days", historyDays))

	return &stats, nil
}
