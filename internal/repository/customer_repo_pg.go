package repository

import (
	"context"
	"errors"

	"github.com/DERICHRIS/immantravels/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type CustomerRepository interface {
	GetByEmail(ctx context.Context, email string) (*domain.Customer, error)
	Create(ctx context.Context, customer *domain.Customer) error
}

type PGCustomerRepository struct {
	db *pgxpool.Pool
}

func NewCustomerRepository(db *pgxpool.Pool) CustomerRepository {
	return &PGCustomerRepository{db: db}
}

// GetByEmail returns (nil, nil) when no customer exists for the address.
func (r *PGCustomerRepository) GetByEmail(ctx context.Context, email string) (*domain.Customer, error) {
	row := r.db.QueryRow(ctx, `SELECT id, name, gender, age, phone, email, created_at FROM customers WHERE email=$1`, email)
	var c domain.Customer
	if err := row.Scan(&c.ID, &c.Name, &c.Gender, &c.Age, &c.Phone, &c.Email, &c.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &c, nil
}

func (r *PGCustomerRepository) Create(ctx context.Context, customer *domain.Customer) error {
	return r.db.QueryRow(ctx, `INSERT INTO customers (name, gender, age, phone, email)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (email) DO UPDATE SET email = EXCLUDED.email
		RETURNING id, created_at`,
		customer.Name, customer.Gender, customer.Age, customer.Phone, customer.Email).
		Scan(&customer.ID, &customer.CreatedAt)
}

var _ CustomerRepository = (*PGCustomerRepository)(nil)
