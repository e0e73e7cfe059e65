package repo

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/geekyathlete/poster-shop/internal/order"
)

// Orders is the postgres-backed order store.
type Orders struct {
	Pool *pgxpool.Pool
}

var _ order.Store = (*Orders)(nil)

// Save inserts one finalized order.
func (r *Orders) Save(ctx context.Context, rec order.Record) error {
	const q = `
		INSERT INTO orders (
			id, first_name, last_name, address, city, province, phoneno,
			email, postcode, deliverytime,
			poster1_price, poster1_qty, poster1_total,
			poster2_price, poster2_qty, poster2_total,
			poster3_price, poster3_qty, poster3_total,
			subtotal, tax_rate_bps, tax, total, created_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10,
			$11, $12, $13, $14, $15, $16, $17, $18, $19,
			$20, $21, $22, $23, $24
		)`
	_, err := r.Pool.Exec(ctx, q,
		rec.ID, rec.FirstName, rec.LastName, rec.Address, rec.City, rec.Province, rec.PhoneNo,
		rec.Email, rec.Postcode, rec.DeliveryTime,
		rec.Posters[0].Price, rec.Posters[0].Qty, rec.Posters[0].Total,
		rec.Posters[1].Price, rec.Posters[1].Qty, rec.Posters[1].Total,
		rec.Posters[2].Price, rec.Posters[2].Qty, rec.Posters[2].Total,
		rec.Subtotal, rec.TaxRateBps, rec.Tax, rec.Total, rec.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert order: %w", err)
	}
	return nil
}

// ListAll returns every stored order in insertion order.
func (r *Orders) ListAll(ctx context.Context) ([]order.Record, error) {
	const q = `
		SELECT id, first_name, last_name, address, city, province, phoneno,
			email, postcode, deliverytime,
			poster1_price, poster1_qty, poster1_total,
			poster2_price, poster2_qty, poster2_total,
			poster3_price, poster3_qty, poster3_total,
			subtotal, tax_rate_bps, tax, total, created_at
		FROM orders
		ORDER BY seq`
	rows, err := r.Pool.Query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	defer rows.Close()

	var out []order.Record
	for rows.Next() {
		rec, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	return out, nil
}

func scanOrder(row pgx.Row) (order.Record, error) {
	var rec order.Record
	var id uuid.UUID
	err := row.Scan(
		&id, &rec.FirstName, &rec.LastName, &rec.Address, &rec.City, &rec.Province, &rec.PhoneNo,
		&rec.Email, &rec.Postcode, &rec.DeliveryTime,
		&rec.Posters[0].Price, &rec.Posters[0].Qty, &rec.Posters[0].Total,
		&rec.Posters[1].Price, &rec.Posters[1].Qty, &rec.Posters[1].Total,
		&rec.Posters[2].Price, &rec.Posters[2].Qty, &rec.Posters[2].Total,
		&rec.Subtotal, &rec.TaxRateBps, &rec.Tax, &rec.Total, &rec.CreatedAt,
	)
	if err != nil {
		return order.Record{}, fmt.Errorf("scan order: %w", err)
	}
	rec.ID = id
	return rec, nil
}
