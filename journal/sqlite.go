package journal

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

type SQLite struct {
	db *sql.DB
}

func NewSQLite(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}

	if _, err := db.Exec(Schema); err != nil {
		db.Close()
		return nil, err
	}

	return &SQLite{db: db}, nil
}

func (j *SQLite) RecordOrder(o OrderRecord) error {
	_, err := j.db.Exec(`
		INSERT INTO orders
		(order_id, run_id, symbol, side, quantity, price, date, executed, reason)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		o.OrderID, o.RunID, o.Symbol, o.Side, o.Quantity,
		o.Price, o.Date, o.Executed, o.Reason,
	)
	return err
}

func (j *SQLite) RecordEquity(e EquityRecord) error {
	_, err := j.db.Exec(`
		INSERT INTO equity
		(run_id, date, cash, total_value, positions)
		VALUES (?, ?, ?, ?, ?)`,
		e.RunID, e.Date, e.Cash, e.TotalValue, e.Positions,
	)
	return err
}

// ListOrders returns every order recorded for a run, in insertion order
// (order IDs are ULIDs, so ID order is time order).
func (j *SQLite) ListOrders(runID string) ([]OrderRecord, error) {
	rows, err := j.db.Query(`
		SELECT order_id, run_id, symbol, side, quantity, price, date, executed, reason
		FROM orders
		WHERE run_id = ?
		ORDER BY order_id ASC`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []OrderRecord
	for rows.Next() {
		var rec OrderRecord
		if err := rows.Scan(
			&rec.OrderID,
			&rec.RunID,
			&rec.Symbol,
			&rec.Side,
			&rec.Quantity,
			&rec.Price,
			&rec.Date,
			&rec.Executed,
			&rec.Reason,
		); err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

// GetOrder returns a single order record by ID.
func (j *SQLite) GetOrder(orderID string) (OrderRecord, error) {
	var rec OrderRecord

	row := j.db.QueryRow(`
		SELECT order_id, run_id, symbol, side, quantity, price, date, executed, reason
		FROM orders
		WHERE order_id = ?`, orderID)

	err := row.Scan(
		&rec.OrderID,
		&rec.RunID,
		&rec.Symbol,
		&rec.Side,
		&rec.Quantity,
		&rec.Price,
		&rec.Date,
		&rec.Executed,
		&rec.Reason,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return OrderRecord{}, fmt.Errorf("order %q not found", orderID)
		}
		return OrderRecord{}, err
	}
	return rec, nil
}

func (j *SQLite) Close() error {
	return j.db.Close()
}
