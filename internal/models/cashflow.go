package models

// MonthlyCashFlow accumulates successful payment amounts into one bucket.
// PropertyID, TenantID and UnitID carry the first payment seen in the bucket
// only; they are informational and must not be used as lookup keys.
type MonthlyCashFlow struct {
	Month      int    `json:"month"`
	Cashflow   int64  `json:"cashflow"`
	PropertyID string `json:"property_id"`
	TenantID   string `json:"tenant_id"`
	UnitID     string `json:"unit_id"`
}

// CashFlow aggregates a set of payments along a chosen dimension. Only
// successful payments count.
type CashFlow struct {
	Payments []*Payment
}

// Monthly buckets cashflow by calendar month of the payment date.
func (c *CashFlow) Monthly() map[int]*MonthlyCashFlow {
	buckets := make(map[int]*MonthlyCashFlow)
	for _, p := range c.Payments {
		if !p.IsSuccessful {
			continue
		}
		month := int(p.DatePaid.Month())
		if bucket, ok := buckets[month]; ok {
			bucket.Cashflow += p.AmountPaid
		} else {
			buckets[month] = &MonthlyCashFlow{
				Month:      month,
				Cashflow:   p.AmountPaid,
				PropertyID: p.PropertyID,
				TenantID:   p.TenantID,
				UnitID:     p.UnitID,
			}
		}
	}
	return buckets
}

// ByProperty buckets cashflow by property instead of month.
func (c *CashFlow) ByProperty() map[string]*MonthlyCashFlow {
	buckets := make(map[string]*MonthlyCashFlow)
	for _, p := range c.Payments {
		if !p.IsSuccessful {
			continue
		}
		if bucket, ok := buckets[p.PropertyID]; ok {
			bucket.Cashflow += p.AmountPaid
		} else {
			buckets[p.PropertyID] = &MonthlyCashFlow{
				Month:      int(p.DatePaid.Month()),
				Cashflow:   p.AmountPaid,
				PropertyID: p.PropertyID,
				TenantID:   p.TenantID,
				UnitID:     p.UnitID,
			}
		}
	}
	return buckets
}

// ByMonthAndProperty keeps both dimensions distinct: property id to month to
// accumulated cashflow. Unlike the single-dimension buckets there is no
// first-payment identity collapsing here.
func (c *CashFlow) ByMonthAndProperty() map[string]map[int]int64 {
	buckets := make(map[string]map[int]int64)
	for _, p := range c.Payments {
		if !p.IsSuccessful {
			continue
		}
		months, ok := buckets[p.PropertyID]
		if !ok {
			months = make(map[int]int64)
			buckets[p.PropertyID] = months
		}
		months[int(p.DatePaid.Month())] += p.AmountPaid
	}
	return buckets
}

// Total is the grand total across all successful payments. It is invariant
// under the choice of partition.
func (c *CashFlow) Total() int64 {
	var total int64
	for _, bucket := range c.Monthly() {
		total += bucket.Cashflow
	}
	return total
}
