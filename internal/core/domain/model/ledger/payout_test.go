package ledger_test

import (
	"testing"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/ledger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPendingRequest(t *testing.T) *ledger.PayoutRequest {
	t.Helper()
	request, err := ledger.NewPayoutRequest(kernel.NewUUID(), kernel.NewUUID(), 60)
	require.NoError(t, err)
	return request
}

func TestNewPayoutRequest(t *testing.T) {
	id := kernel.NewUUID()
	courierID := kernel.NewUUID()

	t.Run("should start pending", func(t *testing.T) {
		request, err := ledger.NewPayoutRequest(id, courierID, 60)

		require.NoError(t, err)
		require.NoError(t, request.Validate())
		assert.Equal(t, ledger.PayoutPending, request.Status())
		assert.Equal(t, int64(60), request.Amount())
		assert.True(t, request.CourierID().IsEqual(courierID))
		assert.False(t, request.RequestedAt().IsZero())
		assert.Nil(t, request.ResolvedAt())
	})

	t.Run("should fail with non-positive amount", func(t *testing.T) {
		_, err := ledger.NewPayoutRequest(id, courierID, 0)
		require.Error(t, err)

		_, err = ledger.NewPayoutRequest(id, courierID, -10)
		require.Error(t, err)
	})

	t.Run("should fail with invalid courier id", func(t *testing.T) {
		var invalidID kernel.UUID

		_, err := ledger.NewPayoutRequest(id, invalidID, 60)

		require.Error(t, err)
	})
}

func TestPayoutRequest_ApprovalFlow(t *testing.T) {
	request := newPendingRequest(t)

	require.NoError(t, request.Approve())
	assert.Equal(t, ledger.PayoutApproved, request.Status())
	assert.Nil(t, request.ResolvedAt())

	require.NoError(t, request.Complete())
	assert.Equal(t, ledger.PayoutCompleted, request.Status())
	require.NotNil(t, request.ResolvedAt())
}

func TestPayoutRequest_Reject(t *testing.T) {
	request := newPendingRequest(t)

	require.NoError(t, request.Reject())
	assert.Equal(t, ledger.PayoutRejected, request.Status())
	require.NotNil(t, request.ResolvedAt())
}

func TestPayoutRequest_IllegalMoves(t *testing.T) {
	t.Run("complete without approval", func(t *testing.T) {
		request := newPendingRequest(t)

		err := request.Complete()

		require.Error(t, err)
		require.ErrorIs(t, err, ledger.ErrInvalidPayoutTransition)
		assert.Equal(t, ledger.PayoutPending, request.Status())
	})

	t.Run("approve twice", func(t *testing.T) {
		request := newPendingRequest(t)
		require.NoError(t, request.Approve())

		err := request.Approve()

		require.Error(t, err)
		require.ErrorIs(t, err, ledger.ErrInvalidPayoutTransition)
	})

	t.Run("reject after approval", func(t *testing.T) {
		request := newPendingRequest(t)
		require.NoError(t, request.Approve())

		err := request.Reject()

		require.Error(t, err)
		require.ErrorIs(t, err, ledger.ErrInvalidPayoutTransition)
	})

	t.Run("complete twice", func(t *testing.T) {
		request := newPendingRequest(t)
		require.NoError(t, request.Approve())
		require.NoError(t, request.Complete())

		err := request.Complete()

		require.Error(t, err)
		require.ErrorIs(t, err, ledger.ErrInvalidPayoutTransition)
	})
}

func TestRestorePayoutRequest(t *testing.T) {
	requestedAt := time.Now().UTC().Add(-time.Hour)
	resolvedAt := requestedAt.Add(10 * time.Minute)

	t.Run("should restore a terminal request", func(t *testing.T) {
		request, err := ledger.RestorePayoutRequest(
			kernel.NewUUID(), kernel.NewUUID(), 60,
			ledger.PayoutCompleted, requestedAt, &resolvedAt,
		)

		require.NoError(t, err)
		assert.Equal(t, ledger.PayoutCompleted, request.Status())
		assert.Equal(t, resolvedAt, *request.ResolvedAt())
	})

	t.Run("should fail on invalid status", func(t *testing.T) {
		_, err := ledger.RestorePayoutRequest(
			kernel.NewUUID(), kernel.NewUUID(), 60,
			ledger.PayoutUnknown, requestedAt, nil,
		)

		require.Error(t, err)
	})
}

func TestPayoutRequest_Validate_NotConstructed(t *testing.T) {
	var request ledger.PayoutRequest

	err := request.Validate()

	require.Error(t, err)
	require.ErrorIs(t, err, ledger.ErrPayoutIsNotConstructed)
}

func TestPayoutStatus_String(t *testing.T) {
	assert.Equal(t, "pending", ledger.PayoutPending.String())
	assert.Equal(t, "approved", ledger.PayoutApproved.String())
	assert.Equal(t, "completed", ledger.PayoutCompleted.String())
	assert.Equal(t, "rejected", ledger.PayoutRejected.String())
	assert.Equal(t, "unknown", ledger.PayoutUnknown.String())
}
