// internal/models/settings.go
package models

type StoreSettings struct {
	IsEnterprise              bool   `json:"is_enterprise"`
	QuickBooksConnected       bool   `json:"quick_books_connected"`
	PaymentProcessorConnected bool   `json:"payment_processor_connected"`
	Currency                  string `json:"currency"`
	StoreName                 string `json:"store_name"`
}

// SettingsUpdate is a partial StoreSettings; nil fields are left untouched.
type SettingsUpdate struct {
	IsEnterprise              *bool   `json:"is_enterprise,omitempty"`
	QuickBooksConnected       *bool   `json:"quick_books_connected,omitempty"`
	PaymentProcessorConnected *bool   `json:"payment_processor_connected,omitempty"`
	Currency                  *string `json:"currency,omitempty" validate:"omitempty,len=3,alpha"`
	StoreName                 *string `json:"store_name,omitempty" validate:"omitempty,min=1,max=100"`
}

func DefaultSettings() StoreSettings {
	return StoreSettings{
		Currency:  "USD",
		StoreName: "My Store",
	}
}

// Merge returns s with every field present in u applied.
func (s StoreSettings) Merge(u SettingsUpdate) StoreSettings {
	if u.IsEnterprise != nil {
		s.IsEnterprise = *u.IsEnterprise
	}
	if u.QuickBooksConnected != nil {
		s.QuickBooksConnected = *u.QuickBooksConnected
	}
	if u.PaymentProcessorConnected != nil {
		s.PaymentProcessorConnected = *u.PaymentProcessorConnected
	}
	if u.Currency != nil {
		s.Currency = *u.Currency
	}
	if u.StoreName != nil {
		s.StoreName = *u.StoreName
	}
	return s
}
