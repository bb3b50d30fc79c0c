package parser

import (
	"time"

	"gridops/internal/dateparse"
	"gridops/internal/model"
)

// defaultSampleRows is how many data rows the date-column fallback scan
// inspects per column when no header itself parses as a date.
const defaultSampleRows = 10

// HeaderResolver binds a dataset's column names to semantic roles with
// tolerant, best-effort matching. A role with no matching column is routine
// and simply left unbound.
type HeaderResolver struct {
	sampleRows int
}

// NewHeaderResolver creates a resolver with the default sampling depth.
func NewHeaderResolver() *HeaderResolver {
	return &HeaderResolver{sampleRows: defaultSampleRows}
}

// Resolve walks the dataset's headers once. For every role the first
// matching header wins; date columns are collected one binding per header.
func (r *HeaderResolver) Resolve(ds model.Dataset) model.ResolvedHeaders {
	var resolved model.ResolvedHeaders

	normalized := make([]string, len(ds.Headers))
	for i, h := range ds.Headers {
		normalized[i] = Normalize(h)
	}

	for i, header := range ds.Headers {
		col := normalized[i]
		if col == "" {
			continue
		}

		// a header that is itself a literal date is a snapshot column
		if date, ok := dateparse.Parse(header); ok {
			resolved.DateColumns = append(resolved.DateColumns, model.DateColumn{
				Column: header,
				Date:   date,
			})
			continue
		}

		r.bindRole(&resolved, col, header)
	}

	if len(resolved.DateColumns) == 0 {
		r.scanCellDates(ds, normalized, &resolved)
	}

	return resolved
}

// bindRole tries each role's predicates in order of specificity. More
// specific roles go first so "rtu l/r switch status" never lands on the
// equipment switch column.
func (r *HeaderResolver) bindRole(resolved *model.ResolvedHeaders, col, header string) {
	switch {
	case resolved.SiteCode == "" && matchSiteCode(col):
		resolved.SiteCode = header
	case resolved.SwitchRTU == "" && matchSwitchRTU(col):
		resolved.SwitchRTU = header
	case resolved.SwitchEquipment == "" && matchSwitchEquipment(col):
		resolved.SwitchEquipment = header
	case resolved.DeviceStatus == "" && matchDeviceStatus(col):
		resolved.DeviceStatus = header
	case resolved.DaysOffline == "" && matchDaysOffline(col):
		resolved.DaysOffline = header
	case resolved.SubDivision == "" && matchSubDivision(col):
		resolved.SubDivision = header
	case resolved.Division == "" && matchDivision(col):
		resolved.Division = header
	case resolved.Circle == "" && matchCircle(col):
		resolved.Circle = header
	case resolved.DateSingle == "" && matchDateSingle(col):
		resolved.DateSingle = header
	}
}

func matchSiteCode(col string) bool {
	switch col {
	case "site code", "sitecode", "site id", "siteid":
		return true
	}
	return ContainsAll(col, "site", "code")
}

func matchDeviceStatus(col string) bool {
	switch col {
	case "device status", "devicestatus", "rmu status", "status":
		return true
	}
	return ContainsAll(col, "device", "status")
}

func matchSwitchEquipment(col string) bool {
	if !ContainsAll(col, "switch", "status") {
		return false
	}
	return ContainsAny(col, "l/r", "lr", "equipment")
}

func matchSwitchRTU(col string) bool {
	return ContainsAll(col, "rtu", "switch", "status")
}

func matchDaysOffline(col string) bool {
	return ContainsAll(col, "days", "offline")
}

func matchDivision(col string) bool {
	return ContainsAll(col, "division") && !ContainsAny(col, "sub")
}

func matchSubDivision(col string) bool {
	return ContainsAll(col, "sub", "division")
}

func matchCircle(col string) bool {
	return ContainsAll(col, "circle")
}

func matchDateSingle(col string) bool {
	switch col {
	case "date", "snapshot date", "status date", "as on date", "reported date":
		return true
	}
	return ContainsAny(col, "date") && !ContainsAny(col, "update", "validate")
}

// scanCellDates is the fallback for datasets whose snapshot columns carry an
// opaque header but date-valued cells: sample the first rows of each unbound
// column, and where a majority of the sampled values parse to one dominant
// date, bind that column to it retroactively.
func (r *HeaderResolver) scanCellDates(ds model.Dataset, normalized []string, resolved *model.ResolvedHeaders) {
	bound := map[string]bool{
		resolved.SiteCode:        true,
		resolved.DeviceStatus:    true,
		resolved.SwitchEquipment: true,
		resolved.SwitchRTU:       true,
		resolved.DaysOffline:     true,
		resolved.Division:        true,
		resolved.SubDivision:     true,
		resolved.Circle:          true,
		resolved.DateSingle:      true,
	}

	limit := r.sampleRows
	if limit > len(ds.Rows) {
		limit = len(ds.Rows)
	}

	for i, header := range ds.Headers {
		if normalized[i] == "" || bound[header] {
			continue
		}

		sampled := 0
		byDate := map[string]int{}
		var dates map[string]time.Time // lazily filled per distinct ISO key
		for _, row := range ds.Rows[:limit] {
			val := row.Get(header)
			if val == "" {
				continue
			}
			sampled++
			if date, ok := dateparse.Parse(val); ok {
				key := dateparse.FormatISO(date)
				byDate[key]++
				if dates == nil {
					dates = map[string]time.Time{}
				}
				dates[key] = date
			}
		}
		if sampled == 0 {
			continue
		}

		dominantKey, dominant := "", 0
		for key, n := range byDate {
			if n > dominant || (n == dominant && key < dominantKey) {
				dominantKey, dominant = key, n
			}
		}
		if dominant*2 > sampled {
			resolved.DateColumns = append(resolved.DateColumns, model.DateColumn{
				Column: header,
				Date:   dates[dominantKey],
			})
		}
	}
}
