package parser

import (
	"testing"

	"gridops/internal/dateparse"
	"gridops/internal/model"
)

func TestNormalize(t *testing.T) {
	t.Parallel()

	cases := map[string]string{
		"  Site Code ":            "site code",
		"SITE_CODE":               "site code",
		"site-code":               "site code",
		" rtu l/r  switch_status": "rtu l/r switch status",
		"":                        "",
	}
	for in, want := range cases {
		if got := Normalize(in); got != want {
			t.Fatalf("Normalize(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestResolve_IrregularSwitchStatusHeader(t *testing.T) {
	t.Parallel()

	ds := model.Dataset{Headers: []string{" rtu l/r  switch_status "}}
	resolved := NewHeaderResolver().Resolve(ds)
	if resolved.SwitchRTU != " rtu l/r  switch_status " {
		t.Fatalf("irregular RTU switch header not resolved: %+v", resolved)
	}
}

func TestResolve_CommonRoles(t *testing.T) {
	t.Parallel()

	ds := model.Dataset{Headers: []string{
		"SITE CODE",
		"DEVICE STATUS",
		"EQUIPMENT L/R SWITCH STATUS",
		"RTU L/R SWITCH STATUS",
		"NO OF DAYS OFFLINE",
		"CIRCLE",
		"DIVISION",
		"SUB DIVISION",
	}}
	resolved := NewHeaderResolver().Resolve(ds)

	if resolved.SiteCode != "SITE CODE" {
		t.Errorf("SiteCode = %q", resolved.SiteCode)
	}
	if resolved.DeviceStatus != "DEVICE STATUS" {
		t.Errorf("DeviceStatus = %q", resolved.DeviceStatus)
	}
	if resolved.SwitchEquipment != "EQUIPMENT L/R SWITCH STATUS" {
		t.Errorf("SwitchEquipment = %q", resolved.SwitchEquipment)
	}
	if resolved.SwitchRTU != "RTU L/R SWITCH STATUS" {
		t.Errorf("SwitchRTU = %q", resolved.SwitchRTU)
	}
	if resolved.DaysOffline != "NO OF DAYS OFFLINE" {
		t.Errorf("DaysOffline = %q", resolved.DaysOffline)
	}
	if resolved.Circle != "CIRCLE" {
		t.Errorf("Circle = %q", resolved.Circle)
	}
	if resolved.Division != "DIVISION" {
		t.Errorf("Division = %q", resolved.Division)
	}
	if resolved.SubDivision != "SUB DIVISION" {
		t.Errorf("SubDivision = %q", resolved.SubDivision)
	}
}

func TestResolve_SubDivisionBeforeDivision(t *testing.T) {
	t.Parallel()

	ds := model.Dataset{Headers: []string{"SUB-DIVISION", "DIVISION"}}
	resolved := NewHeaderResolver().Resolve(ds)
	if resolved.SubDivision != "SUB-DIVISION" || resolved.Division != "DIVISION" {
		t.Fatalf("division split wrong: %+v", resolved)
	}
}

func TestResolve_DatePerColumnHeaders(t *testing.T) {
	t.Parallel()

	ds := model.Dataset{Headers: []string{"SITE CODE", "17-11-2025", "18-11-2025"}}
	resolved := NewHeaderResolver().Resolve(ds)

	if len(resolved.DateColumns) != 2 {
		t.Fatalf("want 2 date columns, got %d", len(resolved.DateColumns))
	}
	if dateparse.FormatISO(resolved.DateColumns[0].Date) != "2025-11-17" {
		t.Errorf("first date column = %v", resolved.DateColumns[0])
	}
	if dateparse.FormatISO(resolved.DateColumns[1].Date) != "2025-11-18" {
		t.Errorf("second date column = %v", resolved.DateColumns[1])
	}
}

func TestResolve_MissingRolesAreRoutine(t *testing.T) {
	t.Parallel()

	ds := model.Dataset{Headers: []string{"REMARKS", "FEEDER NAME"}}
	resolved := NewHeaderResolver().Resolve(ds)
	if resolved.HasSiteCode() {
		t.Fatalf("unexpected site code binding: %+v", resolved)
	}
	if len(resolved.DateColumns) != 0 {
		t.Fatalf("unexpected date columns: %+v", resolved.DateColumns)
	}
}

func TestResolve_CellDateFallbackScan(t *testing.T) {
	t.Parallel()

	// no header parses as a date, but the SNAPSHOT column's cells converge
	// on one dominant date value
	ds := model.Dataset{
		Headers: []string{"SITE CODE", "SNAPSHOT"},
		Rows: []model.Row{
			{"SITE CODE": "S1", "SNAPSHOT": "17-11-2025"},
			{"SITE CODE": "S2", "SNAPSHOT": "17-11-2025"},
			{"SITE CODE": "S3", "SNAPSHOT": "18-11-2025"},
		},
	}
	resolved := NewHeaderResolver().Resolve(ds)

	if len(resolved.DateColumns) != 1 {
		t.Fatalf("want 1 fallback date column, got %+v", resolved.DateColumns)
	}
	dc := resolved.DateColumns[0]
	if dc.Column != "SNAPSHOT" || dateparse.FormatISO(dc.Date) != "2025-11-17" {
		t.Fatalf("fallback binding wrong: %+v", dc)
	}
}

func TestResolve_FallbackScanRejectsMinority(t *testing.T) {
	t.Parallel()

	ds := model.Dataset{
		Headers: []string{"SITE CODE", "REMARKS"},
		Rows: []model.Row{
			{"SITE CODE": "S1", "REMARKS": "17-11-2025"},
			{"SITE CODE": "S2", "REMARKS": "ok"},
			{"SITE CODE": "S3", "REMARKS": "pending"},
		},
	}
	resolved := NewHeaderResolver().Resolve(ds)
	if len(resolved.DateColumns) != 0 {
		t.Fatalf("minority date cells must not bind a column: %+v", resolved.DateColumns)
	}
}
