package reconcile

import (
	"strings"
	"time"

	"gridops/internal/dateparse"
	"gridops/internal/model"
)

// Source is one secondary dataset entering a merge, with its resolved
// headers and enough identity for the run report.
type Source struct {
	Role    model.DatasetRole
	File    model.FileInfo
	Dataset model.Dataset
	Headers model.ResolvedHeaders
}

// Merger joins a primary device-status dataset with secondary snapshot
// datasets by site code. Each call to Merge produces a fresh record set;
// nothing is mutated across runs.
type Merger struct{}

// NewMerger creates a merger.
func NewMerger() *Merger {
	return &Merger{}
}

// Merge reconciles the primary dataset with the given secondaries.
//
// Secondary rows are unpacked into candidate records, one per bound date
// column (snapshot-per-column model), or one per row for single-date and
// undated datasets. Candidates dedup first-wins on (site code, ISO date).
// The primary's device-status row then joins in by site code: its non-empty
// deviceStatus and equipmentSwitch values override the secondary's, and its
// remaining resolved columns fill whatever the secondary left blank.
// Primary rows no candidate matched are emitted as undated records so a run
// with no usable secondary still reflects the primary file.
func (m *Merger) Merge(primary model.Dataset, primaryHeaders model.ResolvedHeaders, secondaries []Source) ([]model.MergedRecord, *model.ReconcileReport) {
	start := time.Now()
	report := &model.ReconcileReport{}

	primaryIndex, primaryOrder := indexPrimary(primary, primaryHeaders)

	seen := map[mergeKey]bool{}
	matched := map[string]bool{}
	var records []model.MergedRecord

	for _, sec := range secondaries {
		result := model.SourceResult{
			Role:        sec.Role,
			FileID:      sec.File.ID,
			FileName:    sec.File.Name,
			RowsRead:    len(sec.Dataset.Rows),
			DateColumns: len(sec.Headers.DateColumns),
		}

		if !sec.Headers.HasSiteCode() {
			result.Status = "skipped"
			result.Reason = "no site-code column resolved"
			report.Sources = append(report.Sources, result)
			continue
		}

		for _, row := range sec.Dataset.Rows {
			for _, cand := range candidates(row, sec.Headers) {
				if cand.SiteCode == "" {
					report.BlankSiteRows++
					continue
				}
				key := mergeKey{site: cand.SiteCode, date: dateparse.FormatISO(cand.Date)}
				if seen[key] {
					report.DuplicateRows++
					continue
				}
				seen[key] = true
				matched[cand.SiteCode] = true

				overlayPrimary(&cand, primaryIndex[cand.SiteCode], primaryHeaders)
				records = append(records, cand)
				result.RowsEmitted++
			}
		}

		result.Status = "merged"
		report.Sources = append(report.Sources, result)
	}

	// leftover primary rows, in file order
	primaryEmitted := 0
	for _, site := range primaryOrder {
		if matched[site] {
			continue
		}
		key := mergeKey{site: site}
		if seen[key] {
			report.DuplicateRows++
			continue
		}
		seen[key] = true
		rec := model.MergedRecord{SiteCode: site, Source: primaryIndex[site]}
		overlayPrimary(&rec, primaryIndex[site], primaryHeaders)
		records = append(records, rec)
		primaryEmitted++
	}
	primaryResult := model.SourceResult{
		Role:        model.DatasetDeviceStatus,
		Status:      "merged",
		RowsRead:    len(primary.Rows),
		RowsEmitted: primaryEmitted,
	}
	if !primaryHeaders.HasSiteCode() {
		primaryResult.Status = "skipped"
		primaryResult.Reason = "no site-code column resolved"
	}
	report.Sources = append(report.Sources, primaryResult)

	for _, rec := range records {
		if rec.Undated() {
			report.UndatedRows++
		}
	}
	report.Records = len(records)
	report.Duration = time.Since(start)

	return records, report
}

type mergeKey struct {
	site string
	date string // ISO date, empty for undated
}

// candidates unpacks one secondary row into merge candidates. A row of a
// snapshot-per-column dataset yields one candidate per bound date column,
// all reading their status fields from the same row.
func candidates(row model.Row, headers model.ResolvedHeaders) []model.MergedRecord {
	base := model.MergedRecord{
		SiteCode:        strings.TrimSpace(row.Get(headers.SiteCode)),
		DeviceStatus:    strings.TrimSpace(row.Get(headers.DeviceStatus)),
		EquipmentSwitch: strings.TrimSpace(row.Get(headers.SwitchEquipment)),
		RTUSwitch:       strings.TrimSpace(row.Get(headers.SwitchRTU)),
		DaysOffline:     strings.TrimSpace(row.Get(headers.DaysOffline)),
		Circle:          strings.TrimSpace(row.Get(headers.Circle)),
		Division:        strings.TrimSpace(row.Get(headers.Division)),
		SubDivision:     strings.TrimSpace(row.Get(headers.SubDivision)),
		Source:          row,
	}

	if len(headers.DateColumns) > 0 {
		out := make([]model.MergedRecord, 0, len(headers.DateColumns))
		for _, dc := range headers.DateColumns {
			cand := base
			cand.Date = dc.Date
			out = append(out, cand)
		}
		return out
	}

	if headers.DateSingle != "" {
		if date, ok := dateparse.Parse(row.Get(headers.DateSingle)); ok {
			base.Date = date
		}
	}
	return []model.MergedRecord{base}
}

// indexPrimary builds the site-code lookup map for the primary dataset once
// per run, keeping the merge linear in rows. First row wins a duplicated
// site code; order preserves the file's row order for leftover emission.
func indexPrimary(primary model.Dataset, headers model.ResolvedHeaders) (map[string]model.Row, []string) {
	index := make(map[string]model.Row, len(primary.Rows))
	var order []string
	if !headers.HasSiteCode() {
		return index, order
	}
	for _, row := range primary.Rows {
		site := strings.TrimSpace(row.Get(headers.SiteCode))
		if site == "" {
			continue
		}
		if _, ok := index[site]; ok {
			continue
		}
		index[site] = row
		order = append(order, site)
	}
	return index, order
}

// overlayPrimary applies the field-level override policy: the primary's
// non-empty deviceStatus and equipmentSwitch win, and its other resolved
// columns fill in only where the candidate is still blank.
func overlayPrimary(rec *model.MergedRecord, primaryRow model.Row, headers model.ResolvedHeaders) {
	if primaryRow == nil {
		return
	}

	if v := strings.TrimSpace(primaryRow.Get(headers.DeviceStatus)); v != "" {
		rec.DeviceStatus = v
	}
	if v := strings.TrimSpace(primaryRow.Get(headers.SwitchEquipment)); v != "" {
		rec.EquipmentSwitch = v
	}

	fill(&rec.RTUSwitch, primaryRow, headers.SwitchRTU)
	fill(&rec.DaysOffline, primaryRow, headers.DaysOffline)
	fill(&rec.Circle, primaryRow, headers.Circle)
	fill(&rec.Division, primaryRow, headers.Division)
	fill(&rec.SubDivision, primaryRow, headers.SubDivision)
}

func fill(dst *string, row model.Row, header string) {
	if *dst != "" || header == "" {
		return
	}
	*dst = strings.TrimSpace(row.Get(header))
}
