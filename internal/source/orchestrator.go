package source

import (
	"errors"
	"fmt"
	"log"
	"sync"
	"sync/atomic"
	"time"

	"gridops/internal/model"
	"gridops/internal/parser"
	"gridops/internal/reconcile"
)

// ErrPrimaryMissing is the one hard failure of a reconciliation run: the
// primary device-status dataset could not be selected or fetched. Every
// secondary-dataset problem degrades the run instead.
var ErrPrimaryMissing = errors.New("primary device-status dataset unavailable")

// Storage is the upload-storage collaborator the pipeline fetches from.
type Storage interface {
	ListFiles() ([]model.FileInfo, error)
	GetDataset(id string) (model.Dataset, error)
}

// Result is one published reconciliation run. Runs are immutable once
// published; a new run replaces the whole value.
type Result struct {
	Generation uint64                               `json:"generation"`
	Files      map[model.DatasetRole]model.FileInfo `json:"files"`
	Records    []model.MergedRecord                 `json:"-"`
	Report     *model.ReconcileReport               `json:"report"`
	RanAt      time.Time                            `json:"ranAt"`
}

// Orchestrator runs the fetch, resolve and merge pipeline and publishes the
// latest completed result. Concurrent runs are uncoordinated by design; a
// monotonic generation discards results a newer run has already superseded.
type Orchestrator struct {
	storage  Storage
	resolver *parser.HeaderResolver
	merger   *reconcile.Merger

	gen atomic.Uint64

	mu      sync.Mutex
	current *Result
}

// NewOrchestrator creates an orchestrator over the given storage.
func NewOrchestrator(storage Storage) *Orchestrator {
	return &Orchestrator{
		storage:  storage,
		resolver: parser.NewHeaderResolver(),
		merger:   reconcile.NewMerger(),
	}
}

// Run executes one full pipeline pass over freshly fetched datasets and
// publishes the result unless a newer run finished first.
func (o *Orchestrator) Run() (*Result, error) {
	generation := o.gen.Add(1)

	files, err := o.storage.ListFiles()
	if err != nil {
		return nil, fmt.Errorf("failed to list uploads: %w", err)
	}

	primaryFile, ok := SelectLatest(files, model.DatasetDeviceStatus)
	if !ok {
		return nil, fmt.Errorf("%w: no matching upload", ErrPrimaryMissing)
	}
	primary, err := o.storage.GetDataset(primaryFile.ID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPrimaryMissing, err)
	}
	primaryHeaders := o.resolver.Resolve(primary)
	if !primaryHeaders.HasSiteCode() {
		log.Printf("primary upload %s has no site-code column, merge degraded", primaryFile.Name)
	}

	used := map[model.DatasetRole]model.FileInfo{model.DatasetDeviceStatus: primaryFile}
	var secondaries []reconcile.Source
	var absent []model.SourceResult

	for _, role := range []model.DatasetRole{model.DatasetOnlineOffline, model.DatasetRTUTracker} {
		file, ok := SelectLatest(files, role)
		if !ok {
			absent = append(absent, model.SourceResult{Role: role, Status: "missing", Reason: "no matching upload"})
			continue
		}
		ds, err := o.storage.GetDataset(file.ID)
		if err != nil {
			log.Printf("fetch of %s upload %s failed, proceeding without it: %v", role, file.Name, err)
			absent = append(absent, model.SourceResult{
				Role: role, FileID: file.ID, FileName: file.Name,
				Status: "missing", Reason: err.Error(),
			})
			continue
		}
		used[role] = file
		secondaries = append(secondaries, reconcile.Source{
			Role:    role,
			File:    file,
			Dataset: ds,
			Headers: o.resolver.Resolve(ds),
		})
	}

	records, report := o.merger.Merge(primary, primaryHeaders, secondaries)
	report.Sources = append(report.Sources, absent...)

	result := &Result{
		Generation: generation,
		Files:      used,
		Records:    records,
		Report:     report,
		RanAt:      time.Now(),
	}
	o.publish(result)
	return result, nil
}

// Current returns the latest published result, if any run has completed.
func (o *Orchestrator) Current() (*Result, bool) {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.current, o.current != nil
}

func (o *Orchestrator) publish(result *Result) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.current != nil && o.current.Generation > result.Generation {
		// a newer run already published; this one is stale
		return
	}
	o.current = result
}

// Poll re-runs the pipeline on the given interval until stop is closed,
// picking up file-list changes made outside the upload endpoint.
func (o *Orchestrator) Poll(interval time.Duration, stop <-chan struct{}) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			if _, err := o.Run(); err != nil && !errors.Is(err, ErrPrimaryMissing) {
				log.Printf("scheduled reconciliation failed: %v", err)
			}
		case <-stop:
			return
		}
	}
}
