package accounting

import (
	"fmt"

	"github.com/SscSPs/neobank_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

type feeSchedule struct {
	rate decimal.Decimal
	cap  decimal.Decimal
}

var feeSchedules = map[domain.Priority]feeSchedule{
	domain.PriorityUrgent: {rate: decimal.RequireFromString("0.02"), cap: decimal.NewFromInt(100)},
	domain.PriorityHigh:   {rate: decimal.RequireFromString("0.01"), cap: decimal.NewFromInt(50)},
}

// ProcessingFee returns min(amount*rate, cap) for the priority. Priorities
// without a schedule are free.
func ProcessingFee(amount decimal.Decimal, priority domain.Priority) decimal.Decimal {
	schedule, ok := feeSchedules[priority]
	if !ok {
		return decimal.Zero
	}
	return decimal.Min(amount.Mul(schedule.rate), schedule.cap)
}

// CalculateSignedAmount returns the entry amount as seen from its owner's
// balance: negative for sent, positive for received.
func CalculateSignedAmount(txn domain.Transaction) (decimal.Decimal, error) {
	switch txn.Direction {
	case domain.DirectionSent:
		return txn.Amount.Neg(), nil
	case domain.DirectionReceived:
		return txn.Amount, nil
	default:
		return decimal.Zero, fmt.Errorf("unknown direction '%s' for transaction %s", txn.Direction, txn.TransactionID)
	}
}

// ValidateTransferBalance checks that a transfer's two entries mirror each
// other and net to zero across both owners.
func ValidateTransferBalance(sender, recipient domain.Transaction) error {
	if sender.Direction != domain.DirectionSent || recipient.Direction != domain.DirectionReceived {
		return fmt.Errorf("transfer needs one sent and one received entry")
	}
	if sender.OwnerUserID != recipient.CounterpartyUserID || recipient.OwnerUserID != sender.CounterpartyUserID {
		return fmt.Errorf("transfer entries do not reference each other")
	}
	if sender.OwnerUserID == recipient.OwnerUserID {
		return fmt.Errorf("transfer entries belong to the same user")
	}

	debit, err := CalculateSignedAmount(sender)
	if err != nil {
		return err
	}
	credit, err := CalculateSignedAmount(recipient)
	if err != nil {
		return err
	}
	if !debit.Add(credit).IsZero() {
		return fmt.Errorf("transfer entries are unbalanced: debit %s, credit %s", debit.String(), credit.String())
	}
	return nil
}
