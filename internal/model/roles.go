package model

import "time"

// HeaderRole is the semantic column role recognized by the header resolver.
type HeaderRole string

const (
	RoleSiteCode        HeaderRole = "site_code"
	RoleDeviceStatus    HeaderRole = "device_status"
	RoleSwitchEquipment HeaderRole = "switch_status_equipment" // equipment L/R switch status
	RoleSwitchRTU       HeaderRole = "switch_status_rtu"       // RTU L/R switch status
	RoleDaysOffline     HeaderRole = "days_offline"
	RoleDivision        HeaderRole = "division"
	RoleSubDivision     HeaderRole = "sub_division"
	RoleCircle          HeaderRole = "circle"
	RoleDateSingle      HeaderRole = "date_single"
	RoleDatePerColumn   HeaderRole = "date_per_column"
)

// DateColumn binds one header to the calendar date it encodes, for datasets
// that store historical snapshots as parallel columns.
type DateColumn struct {
	Column string    `json:"column"`
	Date   time.Time `json:"date"`
}

// ResolvedHeaders is the best-effort semantic binding of a dataset's headers.
// Empty string means the role was not found, which is routine, not an error.
type ResolvedHeaders struct {
	SiteCode        string       `json:"siteCode"`
	DeviceStatus    string       `json:"deviceStatus"`
	SwitchEquipment string       `json:"switchEquipment"`
	SwitchRTU       string       `json:"switchRtu"`
	DaysOffline     string       `json:"daysOffline"`
	Division        string       `json:"division"`
	SubDivision     string       `json:"subDivision"`
	Circle          string       `json:"circle"`
	DateSingle      string       `json:"dateSingle"`
	DateColumns     []DateColumn `json:"dateColumns,omitempty"`
}

// HasSiteCode reports whether merging on this dataset is possible at all.
func (h ResolvedHeaders) HasSiteCode() bool {
	return h.SiteCode != ""
}
