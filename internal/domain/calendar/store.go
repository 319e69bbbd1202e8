package calendar

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Store struct {
	DB *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{DB: db}
}

func (s *Store) ListInRange(ctx context.Context, from, to time.Time, region string) ([]Holiday, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT id, date, name, recurring, COALESCE(region, ''), created_at
    FROM holidays
    WHERE recurring = FALSE
      AND date >= $1 AND date <= $2
      AND ($3 = '' OR region IS NULL OR region = $3)
    ORDER BY date
  `, from, to, region)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanHolidays(rows)
}

func (s *Store) ListRecurring(ctx context.Context, region string) ([]Holiday, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT id, date, name, recurring, COALESCE(region, ''), created_at
    FROM holidays
    WHERE recurring = TRUE
      AND ($1 = '' OR region IS NULL OR region = $1)
    ORDER BY date
  `, region)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanHolidays(rows)
}

func (s *Store) Create(ctx context.Context, h Holiday) (string, error) {
	var id string
	err := s.DB.QueryRow(ctx, `
    INSERT INTO holidays (date, name, recurring, region)
    VALUES ($1,$2,$3,NULLIF($4,''))
    RETURNING id
  `, h.Date, h.Name, h.Recurring, h.Region).Scan(&id)
	if err != nil {
		return "", err
	}
	return id, nil
}

func scanHolidays(rows pgx.Rows) ([]Holiday, error) {
	var holidays []Holiday
	for rows.Next() {
		var h Holiday
		if err := rows.Scan(&h.ID, &h.Date, &h.Name, &h.Recurring, &h.Region, &h.CreatedAt); err != nil {
			return nil, err
		}
		holidays = append(holidays, h)
	}
	return holidays, rows.Err()
}
