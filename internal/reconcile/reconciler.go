// Package reconcile repairs bookkeeping drift left behind by partially
// failed document generations. The documents table is the source of truth;
// the organization counter and remediation items are derived bookkeeping
// that generation updates best-effort. When those writes are missed, this
// job brings the rows back in line.
//
// Every repair is idempotent, so running the reconciler concurrently with
// live generations is safe: at worst a row is rewritten to the value it
// already has.
package reconcile

import (
	"context"
	"fmt"
	"time"

	"github.com/dbartell/employarmor-sub001/internal/repository"
	"github.com/dbartell/employarmor-sub001/internal/security"
)

// DefaultInterval is how often the reconciler sweeps when no interval is
// configured.
const DefaultInterval = 5 * time.Minute

// Reconciler periodically repairs remediation items and document counters.
type Reconciler struct {
	orgRepo   *repository.OrgRepository
	remedRepo *repository.RemediationRepository
	logger    *security.Logger
	interval  time.Duration
}

// New creates a Reconciler sweeping at the given interval (DefaultInterval
// when zero).
func New(logger *security.Logger, interval time.Duration) *Reconciler {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Reconciler{
		orgRepo:   repository.NewOrgRepository(),
		remedRepo: repository.NewRemediationRepository(),
		logger:    logger,
		interval:  interval,
	}
}

// Run sweeps repeatedly until the context is canceled. One sweep runs
// immediately on start so a restart repairs promptly.
func (r *Reconciler) Run(ctx context.Context) {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	r.sweep(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			r.sweep(ctx)
		}
	}
}

// Sweep runs one repair pass and returns how many rows were fixed. Exposed
// for tests and for an operator-triggered run.
func (r *Reconciler) Sweep(ctx context.Context) (int64, error) {
	var repaired int64

	drifted, err := r.remedRepo.FindDrifted(ctx)
	if err != nil {
		return 0, fmt.Errorf("finding drifted remediation items: %w", err)
	}
	for _, d := range drifted {
		n, err := r.remedRepo.ResolveByKey(ctx, d.OrgID, d.ItemKey, d.DocumentID)
		if err != nil {
			return repaired, fmt.Errorf("resolving %s for org %s: %w", d.ItemKey, d.OrgID, err)
		}
		repaired += n
	}

	n, err := r.orgRepo.SyncDocumentCounters(ctx)
	if err != nil {
		return repaired, fmt.Errorf("syncing document counters: %w", err)
	}
	repaired += n

	return repaired, nil
}

func (r *Reconciler) sweep(ctx context.Context) {
	repaired, err := r.Sweep(ctx)
	if err != nil {
		r.logger.Error("reconciler sweep", err)
		return
	}
	if repaired > 0 {
		r.logger.SecurityEvent(security.EventPartialWriteDrift, nil, "", "", "",
			map[string]interface{}{
				"repaired_rows": repaired,
			})
	}
}
