package repositories

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/nimeshabuddhika/resilient-antifraud/pkg/models"
)

// SuspiciousIPRepository defines the interface for the suspicious_ips table.
type SuspiciousIPRepository interface {
	Create(ctx context.Context, tx pgx.Tx, ip string) (models.SuspiciousIP, error)
	// Delete returns the number of removed rows.
	Delete(ctx context.Context, tx pgx.Tx, ip string) (int64, error)
	Exists(ctx context.Context, q Querier, ip string) (bool, error)
	FindAll(ctx context.Context, q Querier) ([]models.SuspiciousIP, error)
}

type SuspiciousIPRepositoryImpl struct {
}

func NewSuspiciousIPRepository() SuspiciousIPRepository {
	return &SuspiciousIPRepositoryImpl{}
}

func (r SuspiciousIPRepositoryImpl) Create(ctx context.Context, tx pgx.Tx, ip string) (models.SuspiciousIP, error) {
	entry := models.SuspiciousIP{IP: ip}
	err := tx.QueryRow(ctx, `INSERT INTO suspicious_ips (ip) VALUES ($1) RETURNING id`, ip).Scan(&entry.ID)
	return entry, err
}

func (r SuspiciousIPRepositoryImpl) Delete(ctx context.Context, tx pgx.Tx, ip string) (int64, error) {
	tag, err := tx.Exec(ctx, `DELETE FROM suspicious_ips WHERE ip = $1`, ip)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

func (r SuspiciousIPRepositoryImpl) Exists(ctx context.Context, q Querier, ip string) (bool, error) {
	var exists bool
	err := q.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM suspicious_ips WHERE ip = $1)`, ip).Scan(&exists)
	return exists, err
}

func (r SuspiciousIPRepositoryImpl) FindAll(ctx context.Context, q Querier) ([]models.SuspiciousIP, error) {
	rows, err := q.Query(ctx, `SELECT id, ip FROM suspicious_ips ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	entries := make([]models.SuspiciousIP, 0)
	for rows.Next() {
		var e models.SuspiciousIP
		if err = rows.Scan(&e.ID, &e.IP); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// StolenCardRepository defines the interface for the stolen_cards table.
type StolenCardRepository interface {
	Create(ctx context.Context, tx pgx.Tx, number string) (models.StolenCard, error)
	Delete(ctx context.Context, tx pgx.Tx, number string) (int64, error)
	Exists(ctx context.Context, q Querier, number string) (bool, error)
	FindAll(ctx context.Context, q Querier) ([]models.StolenCard, error)
}

type StolenCardRepositoryImpl struct {
}

func NewStolenCardRepository() StolenCardRepository {
	return &StolenCardRepositoryImpl{}
}

func (r StolenCardRepositoryImpl) Create(ctx context.Context, tx pgx.Tx, number string) (models.StolenCard, error) {
	entry := models.StolenCard{Number: number}
	err := tx.QueryRow(ctx, `INSERT INTO stolen_cards (number) VALUES ($1) RETURNING id`, number).Scan(&entry.ID)
	return entry, err
}

func (r StolenCardRepositoryImpl) Delete(ctx context.Context, tx pgx.Tx, number string) (int64, error) {
	tag, err := tx.Exec(ctx, `DELETE FROM stolen_cards WHERE number = $1`, number)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

func (r StolenCardRepositoryImpl) Exists(ctx context.Context, q Querier, number string) (bool, error) {
	var exists bool
	err := q.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM stolen_cards WHERE number = $1)`, number).Scan(&exists)
	return exists, err
}

func (r StolenCardRepositoryImpl) FindAll(ctx context.Context, q Querier) ([]models.StolenCard, error) {
	rows, err := q.Query(ctx, `SELECT id, number FROM stolen_cards ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	entries := make([]models.StolenCard, 0)
	for rows.Next() {
		var e models.StolenCard
		if err = rows.Scan(&e.ID, &e.Number); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
