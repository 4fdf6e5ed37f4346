// internal/models/staff.go
package models

type StaffMetric struct {
	Name               string  `json:"name"`
	Shift              string  `json:"shift"`
	RiskScore          int     `json:"risk_score"`
	VoidedTransactions int     `json:"voided_transactions"`
	CashDiscrepancy    float64 `json:"cash_discrepancy"`
}

func (s StaffMetric) IsHighRisk() bool {
	return s.RiskScore > HighRiskThreshold
}
