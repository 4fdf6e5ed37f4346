// internal/models/common.go
package models

// Enums
type PaymentMethod string

const (
	PaymentMethodCash        PaymentMethod = "Cash"
	PaymentMethodMobileMoney PaymentMethod = "Mobile Money"
	PaymentMethodCard        PaymentMethod = "Card"
)

// PaymentMethods lists the accepted payment methods in display order.
var PaymentMethods = []PaymentMethod{PaymentMethodCash, PaymentMethodMobileMoney, PaymentMethodCard}

func (m PaymentMethod) Valid() bool {
	for _, pm := range PaymentMethods {
		if pm == m {
			return true
		}
	}
	return false
}

type SaleStatus string

const (
	SaleStatusCompleted SaleStatus = "completed"
)

type AlertType string

const (
	AlertTypeCritical AlertType = "CRITICAL"
	AlertTypeWarning  AlertType = "WARNING"
	AlertTypeInfo     AlertType = "INFO"
)

type AlertCategory string

const (
	AlertCategoryInventory AlertCategory = "INVENTORY"
	AlertCategoryStaff     AlertCategory = "STAFF"
	AlertCategoryFinance   AlertCategory = "FINANCE"
)

// HighRiskThreshold is the risk score above which a staff member is high risk.
const HighRiskThreshold = 50
