package excel2csv

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/JonMrowczynski/Excel-2-CSV-Exporter/pkg/excel2csv/models"
)

// PlanEntry maps one sheet to its CSV target.
type PlanEntry struct {
	Workbook string
	Sheet    string
	Target   string
}

// Planner derives export targets and settles existing files.
// It is safe for concurrent use when its DecideFunc is.
type Planner struct {
	Root         string
	PreserveTree bool
	Decide       DecideFunc

	mu      sync.Mutex
	claimed map[string]string
}

// NewPlanner creates a Planner rooted at root.
func NewPlanner(root string, preserveTree bool, decide DecideFunc) *Planner {
	if decide == nil {
		decide = NeverOverwrite
	}
	return &Planner{
		Root:         root,
		PreserveTree: preserveTree,
		Decide:       decide,
		claimed:      make(map[string]string),
	}
}

// Target returns root/<workbook stem>/<sheet title>.csv. With PreserveTree
// the stem is replaced by the workbook path relative to the input root.
func (p *Planner) Target(wb *models.Workbook, title string) string {
	return filepath.Join(p.Dir(wb.Stem, wb.Rel), title+".csv")
}

// Dir returns the directory that receives a workbook's CSV files.
func (p *Planner) Dir(stem, rel string) string {
	if p.PreserveTree && rel != "" {
		return filepath.Join(p.Root, rel)
	}
	return filepath.Join(p.Root, stem)
}

// Plan returns the path to write for a sheet. An existing target is
// handed to Decide; anything but Overwrite returns ErrSheetWriteSkipped.
// A target already written by another workbook during this run is refused.
// The parent directory is created when missing.
func (p *Planner) Plan(wb *models.Workbook, title string) (PlanEntry, error) {
	entry := PlanEntry{
		Workbook: wb.Path,
		Sheet:    title,
		Target:   p.Target(wb, title),
	}

	if err := p.claim(entry); err != nil {
		return entry, err
	}

	_, err := os.Stat(entry.Target)
	switch {
	case err == nil:
		if p.Decide(entry.Target) != Overwrite {
			return entry, fmt.Errorf("%w: %q already exists", ErrSheetWriteSkipped, entry.Target)
		}
	case !errors.Is(err, fs.ErrNotExist):
		return entry, fmt.Errorf("stat %q: %w", entry.Target, err)
	}

	if err := os.MkdirAll(filepath.Dir(entry.Target), 0o755); err != nil {
		return entry, fmt.Errorf("create directory for %q: %w", entry.Target, err)
	}
	return entry, nil
}

func (p *Planner) claim(entry PlanEntry) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.claimed == nil {
		p.claimed = make(map[string]string)
	}
	if owner, ok := p.claimed[entry.Target]; ok && owner != entry.Workbook {
		return fmt.Errorf("target %q already planned for workbook %q", entry.Target, owner)
	}
	p.claimed[entry.Target] = entry.Workbook
	return nil
}
