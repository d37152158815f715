package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func cashflowPayments() []*Payment {
	date := func(month, day int) time.Time {
		return time.Date(2026, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	}
	return []*Payment{
		{TransactionID: "p1", PropertyID: "A", TenantID: "t1", UnitID: "u1", AmountPaid: 10000, DatePaid: date(1, 5), IsSuccessful: true},
		{TransactionID: "p2", PropertyID: "A", TenantID: "t2", UnitID: "u2", AmountPaid: 20000, DatePaid: date(1, 20), IsSuccessful: true},
		{TransactionID: "p3", PropertyID: "B", TenantID: "t3", UnitID: "u3", AmountPaid: 5000, DatePaid: date(2, 3), IsSuccessful: true},
		{TransactionID: "p4", PropertyID: "B", TenantID: "t3", UnitID: "u3", AmountPaid: 7000, DatePaid: date(2, 10), IsSuccessful: false},
	}
}

func TestCashFlowMonthly(t *testing.T) {
	flow := &CashFlow{Payments: cashflowPayments()}
	monthly := flow.Monthly()

	require.Len(t, monthly, 2)
	assert.Equal(t, int64(30000), monthly[1].Cashflow)
	assert.Equal(t, int64(5000), monthly[2].Cashflow)

	// Identity fields come from the first payment in the bucket.
	assert.Equal(t, "t1", monthly[1].TenantID)
	assert.Equal(t, "u1", monthly[1].UnitID)
}

func TestCashFlowByProperty(t *testing.T) {
	flow := &CashFlow{Payments: cashflowPayments()}
	byProperty := flow.ByProperty()

	require.Len(t, byProperty, 2)
	assert.Equal(t, int64(30000), byProperty["A"].Cashflow)
	assert.Equal(t, int64(5000), byProperty["B"].Cashflow)
}

func TestCashFlowByMonthAndProperty(t *testing.T) {
	flow := &CashFlow{Payments: cashflowPayments()}
	buckets := flow.ByMonthAndProperty()

	assert.Equal(t, int64(30000), buckets["A"][1])
	assert.Equal(t, int64(5000), buckets["B"][2])
	_, ok := buckets["A"][2]
	assert.False(t, ok)
}

// The grand total must not depend on how payments are partitioned.
func TestCashFlowTotalPartitionInvariant(t *testing.T) {
	flow := &CashFlow{Payments: cashflowPayments()}

	var byPropertyTotal int64
	for _, bucket := range flow.ByProperty() {
		byPropertyTotal += bucket.Cashflow
	}
	var twoDTotal int64
	for _, months := range flow.ByMonthAndProperty() {
		for _, amount := range months {
			twoDTotal += amount
		}
	}

	assert.Equal(t, int64(35000), flow.Total())
	assert.Equal(t, flow.Total(), byPropertyTotal)
	assert.Equal(t, flow.Total(), twoDTotal)
}

func TestCashFlowExcludesFailedPayments(t *testing.T) {
	flow := &CashFlow{Payments: []*Payment{
		{PropertyID: "A", AmountPaid: 9999, DatePaid: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), IsSuccessful: false},
	}}
	assert.Empty(t, flow.Monthly())
	assert.Equal(t, int64(0), flow.Total())
}
