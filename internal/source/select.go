package source

import (
	"sort"

	"gridops/internal/model"
	"gridops/internal/parser"
)

// roleTokens are the name/type keywords identifying which uploaded file
// serves which dataset role, matched with the same tolerant normalization
// the header resolver uses.
var roleTokens = map[model.DatasetRole][][]string{
	model.DatasetDeviceStatus:  {{"device", "status"}, {"rmu", "status"}, {"device status"}},
	model.DatasetOnlineOffline: {{"online"}, {"offline"}},
	model.DatasetRTUTracker:    {{"rtu", "tracker"}, {"rtu tracker"}},
}

// SelectLatest picks, among the files matching the role, the one with the
// latest upload time (falling back to creation time). Ties break by id so
// the choice is deterministic across runs.
func SelectLatest(files []model.FileInfo, role model.DatasetRole) (model.FileInfo, bool) {
	var candidates []model.FileInfo
	for _, f := range files {
		if matchesRole(f, role) {
			candidates = append(candidates, f)
		}
	}
	if len(candidates) == 0 {
		return model.FileInfo{}, false
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		ti, tj := candidates[i].When(), candidates[j].When()
		if !ti.Equal(tj) {
			return ti.After(tj)
		}
		return candidates[i].ID < candidates[j].ID
	})
	return candidates[0], true
}

func matchesRole(f model.FileInfo, role model.DatasetRole) bool {
	// an explicitly declared upload type wins over name heuristics
	if f.UploadType != "" {
		return parser.Normalize(f.UploadType) == parser.Normalize(string(role))
	}

	name := parser.Normalize(f.Name)
	for _, tokens := range roleTokens[role] {
		if parser.ContainsAll(name, tokens...) {
			return true
		}
	}
	return false
}
