package payrolls

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Store struct {
	DB *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{DB: db}
}

func (s *Store) List(ctx context.Context, status string, limit, offset int) ([]Payroll, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT id, client_name, cycle, date_type, date_value, processing_days_before_eft, status, created_at, updated_at
    FROM payrolls
    WHERE ($1 = '' OR status = $1)
    ORDER BY client_name, created_at
    LIMIT $2 OFFSET $3
  `, status, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var payrolls []Payroll
	for rows.Next() {
		var p Payroll
		if err := rows.Scan(&p.ID, &p.ClientName, &p.Cycle, &p.DateType, &p.DateValue, &p.ProcessingDaysBeforeEFT, &p.Status, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, err
		}
		payrolls = append(payrolls, p)
	}
	return payrolls, rows.Err()
}

func (s *Store) Count(ctx context.Context, status string) (int, error) {
	var total int
	err := s.DB.QueryRow(ctx, "SELECT COUNT(1) FROM payrolls WHERE ($1 = '' OR status = $1)", status).Scan(&total)
	if err != nil {
		return 0, err
	}
	return total, nil
}

func (s *Store) Get(ctx context.Context, id string) (Payroll, error) {
	var p Payroll
	err := s.DB.QueryRow(ctx, `
    SELECT id, client_name, cycle, date_type, date_value, processing_days_before_eft, status, created_at, updated_at
    FROM payrolls
    WHERE id = $1
  `, id).Scan(&p.ID, &p.ClientName, &p.Cycle, &p.DateType, &p.DateValue, &p.ProcessingDaysBeforeEFT, &p.Status, &p.CreatedAt, &p.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return Payroll{}, ErrNotFound
	}
	if err != nil {
		return Payroll{}, err
	}
	return p, nil
}

func (s *Store) Create(ctx context.Context, p Payroll) (string, error) {
	var id string
	err := s.DB.QueryRow(ctx, `
    INSERT INTO payrolls (client_name, cycle, date_type, date_value, processing_days_before_eft, status)
    VALUES ($1,$2,$3,$4,$5,$6)
    RETURNING id
  `, p.ClientName, p.Cycle, p.DateType, p.DateValue, p.ProcessingDaysBeforeEFT, p.Status).Scan(&id)
	if err != nil {
		return "", err
	}
	return id, nil
}

func (s *Store) Update(ctx context.Context, p Payroll) error {
	tag, err := s.DB.Exec(ctx, `
    UPDATE payrolls
    SET client_name = $1, cycle = $2, date_type = $3, date_value = $4,
        processing_days_before_eft = $5, status = $6, updated_at = now()
    WHERE id = $7
  `, p.ClientName, p.Cycle, p.DateType, p.DateValue, p.ProcessingDaysBeforeEFT, p.Status, p.ID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
