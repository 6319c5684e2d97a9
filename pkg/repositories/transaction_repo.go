package repositories

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/nimeshabuddhika/resilient-antifraud/pkg/models"
)

const transactionColumns = `id, amount, ip, number, region, date, result, feedback`

// TransactionRepository defines the interface for the transaction ledger.
type TransactionRepository interface {
	// Create inserts txn and returns the generated id.
	Create(ctx context.Context, tx pgx.Tx, txn models.Transaction) (int64, error)
	// FindByIDForUpdate locks the row until tx ends.
	FindByIDForUpdate(ctx context.Context, tx pgx.Tx, id int64) (models.Transaction, error)
	FindByID(ctx context.Context, q Querier, id int64) (models.Transaction, error)
	// FindByNumberBetween returns rows for number with since < date <= until.
	FindByNumberBetween(ctx context.Context, q Querier, number string, since, until time.Time) ([]models.Transaction, error)
	FindByNumber(ctx context.Context, q Querier, number string) ([]models.Transaction, error)
	FindAll(ctx context.Context, q Querier) ([]models.Transaction, error)
	UpdateFeedback(ctx context.Context, tx pgx.Tx, id int64, feedback models.Verdict) error
}

type TransactionRepositoryImpl struct {
}

func NewTransactionRepository() TransactionRepository {
	return &TransactionRepositoryImpl{}
}

func (r TransactionRepositoryImpl) Create(ctx context.Context, tx pgx.Tx, txn models.Transaction) (int64, error) {
	var id int64
	err := tx.QueryRow(ctx, `
		INSERT INTO transactions (amount, ip, number, region, date, result, feedback)
		VALUES ($1, $2, $3, $4, $5, $6, NULL)
		RETURNING id`,
		txn.Amount,
		txn.IP,
		txn.Number,
		string(txn.Region),
		txn.Date,
		string(txn.Result),
	).Scan(&id)
	return id, err
}

func (r TransactionRepositoryImpl) FindByIDForUpdate(ctx context.Context, tx pgx.Tx, id int64) (models.Transaction, error) {
	return scanTransaction(tx.QueryRow(ctx, `SELECT `+transactionColumns+` FROM transactions WHERE id = $1 FOR UPDATE`, id))
}

func (r TransactionRepositoryImpl) FindByID(ctx context.Context, q Querier, id int64) (models.Transaction, error) {
	return scanTransaction(q.QueryRow(ctx, `SELECT `+transactionColumns+` FROM transactions WHERE id = $1`, id))
}

func (r TransactionRepositoryImpl) FindByNumberBetween(ctx context.Context, q Querier, number string, since, until time.Time) ([]models.Transaction, error) {
	rows, err := q.Query(ctx, `
		SELECT `+transactionColumns+`
		FROM transactions
		WHERE number = $1 AND date > $2 AND date <= $3
		ORDER BY id`, number, since, until)
	if err != nil {
		return nil, err
	}
	return collectTransactions(rows)
}

func (r TransactionRepositoryImpl) FindByNumber(ctx context.Context, q Querier, number string) ([]models.Transaction, error) {
	rows, err := q.Query(ctx, `SELECT `+transactionColumns+` FROM transactions WHERE number = $1 ORDER BY id`, number)
	if err != nil {
		return nil, err
	}
	return collectTransactions(rows)
}

func (r TransactionRepositoryImpl) FindAll(ctx context.Context, q Querier) ([]models.Transaction, error) {
	rows, err := q.Query(ctx, `SELECT `+transactionColumns+` FROM transactions ORDER BY id`)
	if err != nil {
		return nil, err
	}
	return collectTransactions(rows)
}

func (r TransactionRepositoryImpl) UpdateFeedback(ctx context.Context, tx pgx.Tx, id int64, feedback models.Verdict) error {
	_, err := tx.Exec(ctx, `UPDATE transactions SET feedback = $1 WHERE id = $2`, string(feedback), id)
	return err
}

func collectTransactions(rows pgx.Rows) ([]models.Transaction, error) {
	defer rows.Close()
	txns := make([]models.Transaction, 0)
	for rows.Next() {
		txn, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		txns = append(txns, txn)
	}
	return txns, rows.Err()
}

func scanTransaction(row pgx.Row) (models.Transaction, error) {
	var (
		txn      models.Transaction
		region   string
		result   string
		feedback *string
	)
	if err := row.Scan(&txn.ID, &txn.Amount, &txn.IP, &txn.Number, &region, &txn.Date, &result, &feedback); err != nil {
		return models.Transaction{}, err
	}
	txn.Region = models.Region(region)
	txn.Result = models.Verdict(result)
	if feedback != nil {
		v := models.Verdict(*feedback)
		txn.Feedback = &v
	}
	return txn, nil
}
