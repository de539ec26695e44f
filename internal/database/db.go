// Package database persists signal decisions, price alerts and the entry
// watchlist in PostgreSQL.
package database

import (
	"database/sql"
	"errors"
	"fmt"
	"math"
	"time"

	_ "github.com/lib/pq"

	"github.com/Alias1177/Advisor/models"
)

// DB represents a database connection.
type DB struct {
	*sql.DB
}

// ConnectionParams holds PostgreSQL connection parameters.
type ConnectionParams struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// New creates a new database connection and ensures the schema exists.
func New(params ConnectionParams) (*DB, error) {
	connStr := fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		params.Host, params.Port, params.User, params.Password, params.DBName, params.SSLMode,
	)

	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, err
	}

	if err := db.Ping(); err != nil {
		return nil, err
	}

	if err := createTables(db); err != nil {
		return nil, err
	}

	return &DB{db}, nil
}

// createTables creates the necessary tables if they don't exist.
func createTables(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS signals (
			id SERIAL PRIMARY KEY,
			symbol TEXT NOT NULL,
			signal TEXT NOT NULL,
			confidence INT NOT NULL,
			price DOUBLE PRECISION NOT NULL,
			stop_loss DOUBLE PRECISION,
			take_profit DOUBLE PRECISION,
			risk_reward DOUBLE PRECISION,
			override_reason TEXT,
			created_at TIMESTAMP NOT NULL DEFAULT NOW()
		)
	`)
	if err != nil {
		return err
	}

	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS price_alerts (
			id SERIAL PRIMARY KEY,
			symbol TEXT NOT NULL,
			alert_type TEXT NOT NULL,
			target_price DOUBLE PRECISION NOT NULL,
			status TEXT NOT NULL DEFAULT 'active',
			created_at TIMESTAMP NOT NULL DEFAULT NOW(),
			triggered_at TIMESTAMP
		)
	`)
	if err != nil {
		return err
	}

	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS watchlist (
			id SERIAL PRIMARY KEY,
			symbol TEXT NOT NULL UNIQUE,
			ideal_entry DOUBLE PRECISION NOT NULL,
			status TEXT NOT NULL DEFAULT 'pending',
			created_at TIMESTAMP NOT NULL DEFAULT NOW(),
			triggered_at TIMESTAMP
		)
	`)
	return err
}

// SaveSignal records one decision for later review.
func (db *DB) SaveSignal(symbol string, decision *models.SignalDecision, risk *models.RiskProfile) error {
	_, err := db.Exec(`
		INSERT INTO signals (
			symbol, signal, confidence, price, stop_loss, take_profit, risk_reward, override_reason
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`,
		symbol, decision.Signal, decision.Confidence,
		risk.EntryPrice, risk.StopLoss, risk.TakeProfit, risk.RiskReward,
		decision.OverrideReason)

	return err
}

// PriceAlert is one persisted level watch.
type PriceAlert struct {
	ID          int64
	Symbol      string
	AlertType   string // "take_profit", "stop_loss" or "ideal_entry"
	TargetPrice float64
	Status      string // "active" or "triggered"
	CreatedAt   time.Time
	TriggeredAt *time.Time
}

// CreateAlert registers a new active price alert.
func (db *DB) CreateAlert(symbol, alertType string, targetPrice float64) (int64, error) {
	var id int64
	err := db.QueryRow(`
		INSERT INTO price_alerts (symbol, alert_type, target_price)
		VALUES ($1, $2, $3)
		RETURNING id
	`, symbol, alertType, targetPrice).Scan(&id)

	return id, err
}

// ActiveAlerts lists the active alerts for a symbol.
func (db *DB) ActiveAlerts(symbol string) ([]PriceAlert, error) {
	rows, err := db.Query(`
		SELECT id, symbol, alert_type, target_price, status, created_at
		FROM price_alerts
		WHERE symbol = $1 AND status = 'active'
		ORDER BY created_at
	`, symbol)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var alerts []PriceAlert
	for rows.Next() {
		var a PriceAlert
		if err := rows.Scan(&a.ID, &a.Symbol, &a.AlertType, &a.TargetPrice, &a.Status, &a.CreatedAt); err != nil {
			return nil, err
		}
		alerts = append(alerts, a)
	}
	return alerts, rows.Err()
}

// DeleteAlert removes an alert regardless of status.
func (db *DB) DeleteAlert(id int64) error {
	_, err := db.Exec(`DELETE FROM price_alerts WHERE id = $1`, id)
	return err
}

// CheckAndTriggerAlerts marks alerts reached by the current price as
// triggered and returns them. Take-profit fires at or above the target,
// stop-loss at or below, ideal-entry within 0.5% of it.
func (db *DB) CheckAndTriggerAlerts(symbol string, currentPrice float64) ([]PriceAlert, error) {
	active, err := db.ActiveAlerts(symbol)
	if err != nil {
		return nil, err
	}

	var triggered []PriceAlert
	for _, a := range active {
		if !alertReached(a, currentPrice) {
			continue
		}

		now := time.Now()
		if _, err := db.Exec(`
			UPDATE price_alerts
			SET status = 'triggered', triggered_at = $1
			WHERE id = $2
		`, now, a.ID); err != nil {
			return triggered, err
		}

		a.Status = "triggered"
		a.TriggeredAt = &now
		triggered = append(triggered, a)
	}

	return triggered, nil
}

func alertReached(a PriceAlert, currentPrice float64) bool {
	switch a.AlertType {
	case "take_profit":
		return currentPrice >= a.TargetPrice
	case "stop_loss":
		return currentPrice <= a.TargetPrice
	case "ideal_entry":
		if a.TargetPrice <= 0 {
			return false
		}
		return math.Abs(currentPrice-a.TargetPrice)/a.TargetPrice <= 0.005
	default:
		return false
	}
}

// WatchlistEntry is one symbol waiting for a pullback entry.
type WatchlistEntry struct {
	ID         int64
	Symbol     string
	IdealEntry float64
	Status     string // "pending" or "triggered"
	CreatedAt  time.Time
}

// AddToWatchlist registers (or refreshes) a pullback target for a symbol.
func (db *DB) AddToWatchlist(symbol string, idealEntry float64) error {
	_, err := db.Exec(`
		INSERT INTO watchlist (symbol, ideal_entry)
		VALUES ($1, $2)
		ON CONFLICT (symbol)
		DO UPDATE SET
			ideal_entry = EXCLUDED.ideal_entry,
			status = 'pending',
			created_at = NOW(),
			triggered_at = NULL
	`, symbol, idealEntry)

	return err
}

// PendingWatchlist lists symbols still waiting for their entry.
func (db *DB) PendingWatchlist() ([]WatchlistEntry, error) {
	rows, err := db.Query(`
		SELECT id, symbol, ideal_entry, status, created_at
		FROM watchlist
		WHERE status = 'pending'
		ORDER BY created_at
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []WatchlistEntry
	for rows.Next() {
		var e WatchlistEntry
		if err := rows.Scan(&e.ID, &e.Symbol, &e.IdealEntry, &e.Status, &e.CreatedAt); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// CheckWatchlistEntry marks a pending entry as triggered once the price
// pulls back to within 1% above the ideal entry. Returns true when it
// fired.
func (db *DB) CheckWatchlistEntry(symbol string, currentPrice float64) (bool, error) {
	var idealEntry float64
	err := db.QueryRow(`
		SELECT ideal_entry FROM watchlist
		WHERE symbol = $1 AND status = 'pending'
	`, symbol).Scan(&idealEntry)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, err
	}

	if currentPrice > idealEntry*1.01 {
		return false, nil
	}

	_, err = db.Exec(`
		UPDATE watchlist
		SET status = 'triggered', triggered_at = NOW()
		WHERE symbol = $1
	`, symbol)
	return err == nil, err
}
