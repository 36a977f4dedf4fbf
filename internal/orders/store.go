package orders

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
)

// ErrNotFound is returned when an order has no delivery record.
var ErrNotFound = errors.New("order delivery not found")

// CustomerLocation is the resolved shipping destination.
type CustomerLocation struct {
	State    string `json:"state"`
	City     string `json:"city"`
	Distance int    `json:"distance"`
}

// Record is the delivery section of an order.
type Record struct {
	ID                    string           `json:"id"`
	OrderID               string           `json:"orderId"`
	SpeedOption           string           `json:"speedOption"`
	DeliveryCost          int64            `json:"deliveryCost"`
	OriginalCost          int64            `json:"originalCost"`
	IsFreeShipping        bool             `json:"isFreeShipping"`
	DeliveryTime          string           `json:"deliveryTime"`
	EstimatedDeliveryDate time.Time        `json:"estimatedDeliveryDate"`
	CustomerLocation      CustomerLocation `json:"customerLocation"`
	CreatedAt             time.Time        `json:"createdAt"`
	UpdatedAt             time.Time        `json:"updatedAt"`
}

// Store persists delivery records keyed by order id.
type Store interface {
	Save(ctx context.Context, r Record) (Record, error)
	Get(ctx context.Context, orderID string) (Record, error)
}

// MemoryStore keeps records in process. Used when no database is configured.
type MemoryStore struct {
	mu      sync.RWMutex
	byOrder map[string]Record
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{byOrder: make(map[string]Record)}
}

// Save inserts or replaces the record for r.OrderID. An existing record keeps
// its id and creation time.
func (m *MemoryStore) Save(_ context.Context, r Record) (Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if prev, ok := m.byOrder[r.OrderID]; ok {
		r.ID = prev.ID
		r.CreatedAt = prev.CreatedAt
	}
	m.byOrder[r.OrderID] = r
	return r, nil
}

func (m *MemoryStore) Get(_ context.Context, orderID string) (Record, error) {
	m.mu.RLock()
	r, ok := m.byOrder[orderID]
	m.mu.RUnlock()
	if !ok {
		return Record{}, ErrNotFound
	}
	return r, nil
}

// DBOptions tunes the connection pool.
type DBOptions struct {
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

// Connect opens postgres through the pgx stdlib driver and pings it.
func Connect(ctx context.Context, dsn string, opts DBOptions) (*sql.DB, error) {
	if dsn == "" {
		return nil, errors.New("missing DATABASE_URL")
	}
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, err
	}
	if opts.MaxOpenConns > 0 {
		db.SetMaxOpenConns(opts.MaxOpenConns)
	}
	if opts.MaxIdleConns > 0 {
		db.SetMaxIdleConns(opts.MaxIdleConns)
	}
	if opts.ConnMaxLifetime > 0 {
		db.SetConnMaxLifetime(opts.ConnMaxLifetime)
	}
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

// SQLStore keeps records in the order_deliveries table.
type SQLStore struct {
	db *sql.DB
}

// NewSQLStore creates the table if needed.
func NewSQLStore(ctx context.Context, db *sql.DB) (*SQLStore, error) {
	s := &SQLStore{db: db}
	if err := s.ensureSchema(ctx); err != nil {
		return nil, fmt.Errorf("order_deliveries schema: %w", err)
	}
	return s, nil
}

func (s *SQLStore) ensureSchema(ctx context.Context) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS order_deliveries (
			id TEXT PRIMARY KEY,
			order_id TEXT NOT NULL UNIQUE,
			speed_option TEXT NOT NULL,
			delivery_cost BIGINT NOT NULL,
			original_cost BIGINT NOT NULL,
			is_free_shipping BOOLEAN NOT NULL,
			delivery_time TEXT NOT NULL,
			estimated_delivery_date TIMESTAMPTZ NOT NULL,
			customer_state TEXT NOT NULL,
			customer_city TEXT,
			customer_distance INTEGER NOT NULL,
			created_at TIMESTAMPTZ NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_order_deliveries_state ON order_deliveries (customer_state)`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}

// Save upserts by order id, keeping the original id and created_at.
func (s *SQLStore) Save(ctx context.Context, r Record) (Record, error) {
	q := `INSERT INTO order_deliveries (id, order_id, speed_option, delivery_cost, original_cost, is_free_shipping, delivery_time, estimated_delivery_date, customer_state, customer_city, customer_distance, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13)
		ON CONFLICT (order_id) DO UPDATE SET
			speed_option = EXCLUDED.speed_option,
			delivery_cost = EXCLUDED.delivery_cost,
			original_cost = EXCLUDED.original_cost,
			is_free_shipping = EXCLUDED.is_free_shipping,
			delivery_time = EXCLUDED.delivery_time,
			estimated_delivery_date = EXCLUDED.estimated_delivery_date,
			customer_state = EXCLUDED.customer_state,
			customer_city = EXCLUDED.customer_city,
			customer_distance = EXCLUDED.customer_distance,
			updated_at = EXCLUDED.updated_at
		RETURNING id, created_at`
	err := s.db.QueryRowContext(ctx, q,
		r.ID, r.OrderID, r.SpeedOption, r.DeliveryCost, r.OriginalCost, r.IsFreeShipping,
		r.DeliveryTime, r.EstimatedDeliveryDate, r.CustomerLocation.State,
		nilIfEmpty(r.CustomerLocation.City), r.CustomerLocation.Distance, r.CreatedAt, r.UpdatedAt,
	).Scan(&r.ID, &r.CreatedAt)
	if err != nil {
		return Record{}, err
	}
	return r, nil
}

func (s *SQLStore) Get(ctx context.Context, orderID string) (Record, error) {
	q := `SELECT id, order_id, speed_option, delivery_cost, original_cost, is_free_shipping, delivery_time, estimated_delivery_date, customer_state, customer_city, customer_distance, created_at, updated_at
		FROM order_deliveries WHERE order_id = $1`
	var r Record
	var city sql.NullString
	err := s.db.QueryRowContext(ctx, q, orderID).Scan(
		&r.ID, &r.OrderID, &r.SpeedOption, &r.DeliveryCost, &r.OriginalCost, &r.IsFreeShipping,
		&r.DeliveryTime, &r.EstimatedDeliveryDate, &r.CustomerLocation.State, &city,
		&r.CustomerLocation.Distance, &r.CreatedAt, &r.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return Record{}, ErrNotFound
	}
	if err != nil {
		return Record{}, err
	}
	r.CustomerLocation.City = city.String
	return r, nil
}

func nilIfEmpty(s string) any {
	if s == "" {
		return nil
	}
	return s
}
