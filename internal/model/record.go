package model

import "time"

// MergedRecord is one reconciled site observation. Date is the zero time for
// undated data, which is kept but excluded from any date-filtered view.
// Within one reconciliation run the set is unique on (SiteCode, Date).
type MergedRecord struct {
	SiteCode        string    `json:"siteCode"`
	Date            time.Time `json:"date"`
	DeviceStatus    string    `json:"deviceStatus"`
	EquipmentSwitch string    `json:"equipmentSwitch"`
	RTUSwitch       string    `json:"rtuSwitch"`
	DaysOffline     string    `json:"daysOffline"`
	Circle          string    `json:"circle"`
	Division        string    `json:"division"`
	SubDivision     string    `json:"subDivision"`
	Source          Row       `json:"source,omitempty"`
}

// Undated reports whether no calendar date could be resolved for this record.
func (r MergedRecord) Undated() bool {
	return r.Date.IsZero()
}
