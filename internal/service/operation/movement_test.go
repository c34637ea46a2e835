package operation

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rmazouri/bankcore/internal/apperrors"
	"github.com/rmazouri/bankcore/internal/models"
)

func TestNewMovement(t *testing.T) {
	t.Parallel()

	source := uuid.New()
	destination := uuid.New()

	tests := []struct {
		name          string
		opType        string
		sourceID      *uuid.UUID
		destinationID *uuid.UUID
		wantIDs       []uuid.UUID
		wantErr       error
	}{
		{
			name:          "deposit",
			opType:        models.OperationTypeDeposit,
			destinationID: &destination,
			wantIDs:       []uuid.UUID{destination},
		},
		{
			name:    "deposit without destination",
			opType:  models.OperationTypeDeposit,
			wantErr: apperrors.ErrOperationAccountRequired,
		},
		{
			name:     "withdrawal",
			opType:   models.OperationTypeWithdrawal,
			sourceID: &source,
			wantIDs:  []uuid.UUID{source},
		},
		{
			name:    "withdrawal without source",
			opType:  models.OperationTypeWithdrawal,
			wantErr: apperrors.ErrOperationAccountRequired,
		},
		{
			name:          "transfer",
			opType:        models.OperationTypeTransfer,
			sourceID:      &source,
			destinationID: &destination,
			wantIDs:       []uuid.UUID{source, destination},
		},
		{
			name:     "transfer without destination",
			opType:   models.OperationTypeTransfer,
			sourceID: &source,
			wantErr:  apperrors.ErrOperationAccountRequired,
		},
		{
			name:          "transfer without source",
			opType:        models.OperationTypeTransfer,
			destinationID: &destination,
			wantErr:       apperrors.ErrOperationAccountRequired,
		},
		{
			name:    "unknown type",
			opType:  "LOAN",
			wantErr: apperrors.ErrOperationTypeInvalid,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mv, err := newMovement(tt.opType, tt.sourceID, tt.destinationID)

			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.wantIDs, mv.accountIDs())
		})
	}
}

func TestMovementOf(t *testing.T) {
	t.Parallel()

	source := uuid.New()
	destination := uuid.New()

	mv, err := movementOf(models.Operation{
		Type:                 models.OperationTypeTransfer,
		SourceAccountID:      &source,
		DestinationAccountID: &destination,
	})

	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{source, destination}, mv.accountIDs())
}
