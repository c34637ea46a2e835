package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/rmazouri/bankcore/internal/apperrors"
	"github.com/rmazouri/bankcore/internal/models"
	"github.com/rmazouri/bankcore/internal/repository"
)

type OperationRepo struct {
	DB DBTX
}

const operationColumns = `id, created_at, type, amount, status, source_account_id, destination_account_id, created_by, approved_by, approved_at, executed_at, note`

const createOperation = `-- name: CreateOperation
INSERT INTO operations (id, created_at, type, amount, status, source_account_id, destination_account_id, created_by, executed_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
RETURNING ` + operationColumns

func (r *OperationRepo) CreateOperation(ctx context.Context, arg repository.CreateOperationParams) (models.Operation, error) {
	rows, _ := r.DB.Query(ctx, createOperation,
		uuid.New(),
		time.Now(),
		arg.Type,
		arg.Amount,
		arg.Status,
		arg.SourceAccountID,
		arg.DestinationAccountID,
		arg.CreatedByID,
		arg.ExecutedAt,
	)

	op, err := pgx.CollectOneRow(rows, rowToOperation)
	if err != nil {
		return op, fmt.Errorf("db error: %w", err)
	}
	return op, nil
}

const getOperationByID = `-- name: GetOperationByID
SELECT ` + operationColumns + ` FROM operations
WHERE id = $1
`

func (r *OperationRepo) GetOperationByID(ctx context.Context, id uuid.UUID) (models.Operation, error) {
	rows, _ := r.DB.Query(ctx, getOperationByID, id)
	return collectOperation(rows)
}

const listOperationsByCreator = `-- name: ListOperationsByCreator
SELECT ` + operationColumns + ` FROM operations
WHERE created_by = $1
ORDER BY created_at DESC
`

func (r *OperationRepo) ListOperationsByCreator(ctx context.Context, userID uuid.UUID) ([]models.Operation, error) {
	rows, _ := r.DB.Query(ctx, listOperationsByCreator, userID)
	return collectOperations(rows)
}

const listOperationsByStatus = `-- name: ListOperationsByStatus
SELECT ` + operationColumns + ` FROM operations
WHERE status = $1
ORDER BY created_at
`

func (r *OperationRepo) ListOperationsByStatus(ctx context.Context, status string) ([]models.Operation, error) {
	rows, _ := r.DB.Query(ctx, listOperationsByStatus, status)
	return collectOperations(rows)
}

const listOperations = `-- name: ListOperations
SELECT ` + operationColumns + ` FROM operations
ORDER BY created_at DESC
`

func (r *OperationRepo) ListOperations(ctx context.Context) ([]models.Operation, error) {
	rows, _ := r.DB.Query(ctx, listOperations)
	return collectOperations(rows)
}

// The WHERE clause is the whole point: the terminal status lands only if the
// operation is still PENDING, so two concurrent agents can not both win
const resolvePending = `-- name: ResolvePending
UPDATE operations
SET status = $2, approved_by = $3, approved_at = $4, executed_at = $5, note = COALESCE($6, note)
WHERE id = $1 AND status = 'PENDING'
RETURNING ` + operationColumns

func (r *OperationRepo) ResolvePending(ctx context.Context, id uuid.UUID, arg repository.ResolveOperationParams) (models.Operation, error) {
	rows, _ := r.DB.Query(ctx, resolvePending, id, arg.Status, arg.ApprovedByID, arg.ApprovedAt, arg.ExecutedAt, arg.Note)
	op, err := pgx.CollectOneRow(rows, rowToOperation)

	switch {
	case err == nil:
		return op, nil
	case errors.Is(err, pgx.ErrNoRows):
		// Lost the race or the id is unknown, look again to say which
		if _, getErr := r.GetOperationByID(ctx, id); getErr != nil {
			return op, getErr
		}
		return op, apperrors.ErrOperationNotPending
	default:
		return op, fmt.Errorf("db error: %w", err)
	}
}

func collectOperation(rows pgx.Rows) (models.Operation, error) {
	op, err := pgx.CollectOneRow(rows, rowToOperation)

	switch {
	case err == nil:
		return op, nil
	case errors.Is(err, pgx.ErrNoRows):
		return op, apperrors.ErrOperationNotFound
	default:
		return op, fmt.Errorf("db error: %w", err)
	}
}

func collectOperations(rows pgx.Rows) ([]models.Operation, error) {
	ops, err := pgx.CollectRows(rows, rowToOperation)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return ops, nil
}

func rowToOperation(row pgx.CollectableRow) (models.Operation, error) {
	var o models.Operation
	err := row.Scan(
		&o.ID, &o.CreatedAt, &o.Type, &o.Amount, &o.Status,
		&o.SourceAccountID, &o.DestinationAccountID,
		&o.CreatedByID, &o.ApprovedByID, &o.ApprovedAt, &o.ExecutedAt, &o.Note,
	)
	return o, err
}
