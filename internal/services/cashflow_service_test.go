package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rental-backend/internal/models"
)

func cashflowFixture(t *testing.T) (*CashFlowService, *fakePaymentStore) {
	t.Helper()
	directory := newFakeDirectory()
	directory.companies["c1"] = &models.Company{CompanyID: "c1", CompanyName: "Oak Lettings"}
	directory.properties["p1"] = &models.Property{PropertyID: "p1", CompanyID: "c1"}
	directory.properties["p2"] = &models.Property{PropertyID: "p2", CompanyID: "c1"}
	directory.properties["p9"] = &models.Property{PropertyID: "p9", CompanyID: "c2"}

	payments := newFakePaymentStore()
	ctx := context.Background()
	pay := func(id, property string, month int, amount int64, ok bool) {
		require.NoError(t, payments.Create(ctx, &models.Payment{
			TransactionID: id, PropertyID: property, TenantID: "t1", UnitID: "u1",
			AmountPaid: amount, IsSuccessful: ok,
			DatePaid: time.Date(2026, time.Month(month), 10, 0, 0, 0, 0, time.UTC),
		}))
	}
	pay("tx1", "p1", 1, 10000, true)
	pay("tx2", "p1", 2, 20000, true)
	pay("tx3", "p2", 1, 5000, true)
	pay("tx4", "p2", 1, 9999, false)
	pay("tx5", "p9", 1, 77777, true) // other company, never counted

	return NewCashFlowService(payments, directory), payments
}

func TestMonthlyCashflowForProperty(t *testing.T) {
	svc, _ := cashflowFixture(t)

	flow, err := svc.MonthlyCashflow(context.Background(), "p1")
	require.NoError(t, err)
	require.Len(t, flow, 2)
	assert.Equal(t, int64(10000), flow[1].Cashflow)
	assert.Equal(t, int64(20000), flow[2].Cashflow)
}

func TestCompanyMonthlyCashflowSpansAllProperties(t *testing.T) {
	svc, _ := cashflowFixture(t)

	flow, err := svc.CompanyMonthlyCashflow(context.Background(), "c1")
	require.NoError(t, err)
	require.Len(t, flow, 2)
	assert.Equal(t, int64(15000), flow[1].Cashflow)
	assert.Equal(t, int64(20000), flow[2].Cashflow)
}

func TestCashflowByPropertyScopedToCompany(t *testing.T) {
	svc, _ := cashflowFixture(t)

	flow, err := svc.CashflowByProperty(context.Background(), "c1")
	require.NoError(t, err)
	require.Len(t, flow, 2)
	assert.Equal(t, int64(30000), flow["p1"].Cashflow)
	assert.Equal(t, int64(5000), flow["p2"].Cashflow)
	assert.NotContains(t, flow, "p9")
}

func TestCashflowByMonthAndPropertyKeepsDimensions(t *testing.T) {
	svc, _ := cashflowFixture(t)

	flow, err := svc.CashflowByMonthAndProperty(context.Background(), "c1")
	require.NoError(t, err)
	assert.Equal(t, int64(10000), flow["p1"][1])
	assert.Equal(t, int64(20000), flow["p1"][2])
	assert.Equal(t, int64(5000), flow["p2"][1])
}

func TestTotalCashflowMatchesPartitions(t *testing.T) {
	svc, _ := cashflowFixture(t)
	ctx := context.Background()

	total, err := svc.TotalCashflow(ctx, "c1")
	require.NoError(t, err)
	assert.Equal(t, int64(35000), total)

	byProperty, err := svc.CashflowByProperty(ctx, "c1")
	require.NoError(t, err)
	var sum int64
	for _, bucket := range byProperty {
		sum += bucket.Cashflow
	}
	assert.Equal(t, total, sum)
}
