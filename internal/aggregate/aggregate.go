package aggregate

import (
	"sort"
	"strings"

	"gridops/internal/dateparse"
	"gridops/internal/model"
)

// Category is a dashboard count bucket. Categories are substring tallies,
// not a partition: one record may contribute to several at once.
type Category string

const (
	DeviceOnline    Category = "DEVICE_ONLINE"
	DeviceOffline   Category = "DEVICE_OFFLINE"
	EquipmentLocal  Category = "EQUIPMENT_LOCAL"
	EquipmentRemote Category = "EQUIPMENT_REMOTE"
	RTULocal        Category = "RTU_LOCAL"
	RTURemote       Category = "RTU_REMOTE"
	SwitchIssue     Category = "SWITCH_ISSUE"
)

// Filters are the dashboard's active constraints. Empty fields do not
// constrain; all supplied fields must match (conjunctive). Date is an ISO
// YYYY-MM-DD string compared exactly.
type Filters struct {
	Circle      string `json:"circle,omitempty"`
	Division    string `json:"division,omitempty"`
	SubDivision string `json:"subDivision,omitempty"`
	Date        string `json:"date,omitempty"`
}

// TrendPoint is one day's category tallies.
type TrendPoint struct {
	Date   string           `json:"date"`
	Counts map[Category]int `json:"counts"`
}

// Options are the distinct grouping values available for filtering,
// sorted ascending.
type Options struct {
	Circles      []string `json:"circles"`
	Divisions    []string `json:"divisions"`
	SubDivisions []string `json:"subDivisions"`
}

// Counts tallies the filtered records into categories. Linear in records;
// recomputed from scratch on every filter change.
func Counts(records []model.MergedRecord, f Filters) map[Category]int {
	counts := map[Category]int{}
	for _, rec := range records {
		if !matches(rec, f, true) {
			continue
		}
		tally(counts, rec)
	}
	return counts
}

// Trend buckets records by day, re-filtering by the grouping constraints
// only: the date filter deliberately does not apply, and undated records
// are skipped. Output is sorted ascending by ISO date string.
func Trend(records []model.MergedRecord, f Filters) []TrendPoint {
	byDate := map[string]map[Category]int{}
	for _, rec := range records {
		if rec.Undated() || !matches(rec, f, false) {
			continue
		}
		key := dateparse.FormatISO(rec.Date)
		bucket := byDate[key]
		if bucket == nil {
			bucket = map[Category]int{}
			byDate[key] = bucket
		}
		tally(bucket, rec)
	}

	points := make([]TrendPoint, 0, len(byDate))
	for date, counts := range byDate {
		points = append(points, TrendPoint{Date: date, Counts: counts})
	}
	sort.Slice(points, func(i, j int) bool { return points[i].Date < points[j].Date })
	return points
}

// FilterRecords returns the records passing all active filters, preserving
// input order.
func FilterRecords(records []model.MergedRecord, f Filters) []model.MergedRecord {
	out := make([]model.MergedRecord, 0, len(records))
	for _, rec := range records {
		if matches(rec, f, true) {
			out = append(out, rec)
		}
	}
	return out
}

// GroupingOptions collects the distinct grouping values over the whole
// record set, unfiltered, sorted ascending.
func GroupingOptions(records []model.MergedRecord) Options {
	circles := map[string]bool{}
	divisions := map[string]bool{}
	subDivisions := map[string]bool{}
	for _, rec := range records {
		if rec.Circle != "" {
			circles[rec.Circle] = true
		}
		if rec.Division != "" {
			divisions[rec.Division] = true
		}
		if rec.SubDivision != "" {
			subDivisions[rec.SubDivision] = true
		}
	}
	return Options{
		Circles:      sortedKeys(circles),
		Divisions:    sortedKeys(divisions),
		SubDivisions: sortedKeys(subDivisions),
	}
}

func matches(rec model.MergedRecord, f Filters, withDate bool) bool {
	if !groupEqual(rec.Circle, f.Circle) {
		return false
	}
	if !groupEqual(rec.Division, f.Division) {
		return false
	}
	if !groupEqual(rec.SubDivision, f.SubDivision) {
		return false
	}
	if withDate && f.Date != "" && dateparse.FormatISO(rec.Date) != f.Date {
		return false
	}
	return true
}

// groupEqual is the grouping-filter comparison: trimmed, case-insensitive.
func groupEqual(value, filter string) bool {
	if filter == "" {
		return true
	}
	return strings.EqualFold(strings.TrimSpace(value), strings.TrimSpace(filter))
}

// tally applies the substring category tests. A status like
// "Remote - Switch Issue" counts toward both EQUIPMENT_REMOTE and
// SWITCH_ISSUE; that ambiguity is accepted source behavior.
func tally(counts map[Category]int, rec model.MergedRecord) {
	device := strings.ToLower(rec.DeviceStatus)
	if strings.Contains(device, "offline") {
		counts[DeviceOffline]++
	} else if strings.Contains(device, "online") {
		counts[DeviceOnline]++
	}

	equipment := strings.ToLower(rec.EquipmentSwitch)
	if strings.Contains(equipment, "local") {
		counts[EquipmentLocal]++
	}
	if strings.Contains(equipment, "remote") {
		counts[EquipmentRemote]++
	}
	if hasSwitchIssue(equipment) {
		counts[SwitchIssue]++
	}

	rtu := strings.ToLower(rec.RTUSwitch)
	if strings.Contains(rtu, "local") {
		counts[RTULocal]++
	}
	if strings.Contains(rtu, "remote") {
		counts[RTURemote]++
	}
	if hasSwitchIssue(rtu) {
		counts[SwitchIssue]++
	}
}

func hasSwitchIssue(status string) bool {
	if strings.Contains(status, "switchissue") {
		return true
	}
	return strings.Contains(status, "switch") && strings.Contains(status, "issue")
}

func sortedKeys(set map[string]bool) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
