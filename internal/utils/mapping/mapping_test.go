package mapping_test

import (
	"testing"
	"time"

	"github.com/SscSPs/neobank_backend/internal/core/domain"
	"github.com/SscSPs/neobank_backend/internal/utils/mapping"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransactionMapping_OptionalFields(t *testing.T) {
	t.Run("unset optionals stay NULL", func(t *testing.T) {
		m := mapping.ToModelTransaction(domain.Transaction{
			TransactionID: "TXN_1",
			OwnerUserID:   "u1",
			Amount:        decimal.NewFromInt(10),
		})

		assert.False(t, m.CounterpartyUserID.Valid)
		assert.False(t, m.SourceAccountID.Valid)
		assert.False(t, m.ScheduledDate.Valid)
		assert.False(t, m.RecurringFrequency.Valid)
		assert.False(t, m.TransferReference.Valid)
	})

	t.Run("set optionals survive", func(t *testing.T) {
		src := "acc-1"
		ref := "ref-1"
		freq := domain.FrequencyMonthly
		when := time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)

		back := mapping.ToDomainTransaction(mapping.ToModelTransaction(domain.Transaction{
			TransactionID:      "TXN_2",
			CounterpartyUserID: "u2",
			SourceAccountID:    &src,
			TransferReference:  &ref,
			RecurringFrequency: &freq,
			ScheduledDate:      &when,
		}))

		assert.Equal(t, "u2", back.CounterpartyUserID)
		require.NotNil(t, back.SourceAccountID)
		assert.Equal(t, src, *back.SourceAccountID)
		require.NotNil(t, back.RecurringFrequency)
		assert.Equal(t, freq, *back.RecurringFrequency)
		require.NotNil(t, back.ScheduledDate)
		assert.True(t, when.Equal(*back.ScheduledDate))
		assert.Nil(t, back.RecurringEndDate)
	})
}

func TestUserMapping_EmptyPINIsNull(t *testing.T) {
	empty := ""
	m := mapping.ToModelUser(domain.User{UserID: "u1", PINHash: &empty})

	assert.False(t, m.PINHash.Valid)
	assert.False(t, mapping.ToDomainUser(m).HasPIN())
}
