// internal/models/state.go
package models

import "time"

// StoreState is the full set of collections owned by the store.
type StoreState struct {
	Products []Product     `json:"products"`
	Sales    []Sale        `json:"sales"`
	Alerts   []Alert       `json:"alerts"`
	Staff    []StaffMetric `json:"staff"`
	Settings StoreSettings `json:"settings"`
}

// Clone returns a copy that shares no slices with s.
func (s StoreState) Clone() StoreState {
	out := StoreState{Settings: s.Settings}
	if s.Products != nil {
		out.Products = append([]Product{}, s.Products...)
	}
	if s.Sales != nil {
		out.Sales = make([]Sale, len(s.Sales))
		for i, sale := range s.Sales {
			out.Sales[i] = sale.clone()
		}
	}
	if s.Alerts != nil {
		out.Alerts = append([]Alert{}, s.Alerts...)
	}
	if s.Staff != nil {
		out.Staff = append([]StaffMetric{}, s.Staff...)
	}
	return out
}

// StoreSnapshot is one persisted key of the store state.
type StoreSnapshot struct {
	Key       string    `json:"key" gorm:"primaryKey;size:64"`
	Value     string    `json:"value" gorm:"type:text;not null"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (StoreSnapshot) TableName() string {
	return "store_snapshots"
}
