package jobs

import (
	"context"
	"log"
	"time"

	"github.com/dryack/gDiceTable/core/store"
	"github.com/dryack/gDiceTable/core/table"
)

const (
	refreshLockKey  = "table_refresh_lock"
	defaultInterval = 5 * time.Minute
)

// RegistryRefreshJob periodically reloads the random tables from the
// database into the live registry. When several replicas share a cache only
// the one holding the lock reloads in a given interval; the others pick the
// change up on their own next successful turn.
type RegistryRefreshJob struct {
	cache    store.Cache
	tables   store.TableStore
	holder   *table.Holder
	interval time.Duration
}

func NewRegistryRefreshJob(cache store.Cache, tables store.TableStore, holder *table.Holder, interval time.Duration) *RegistryRefreshJob {
	if interval <= 0 {
		interval = defaultInterval
	}
	return &RegistryRefreshJob{
		cache:    cache,
		tables:   tables,
		holder:   holder,
		interval: interval,
	}
}

// Start runs until ctx is done.
func (j *RegistryRefreshJob) Start(ctx context.Context) {
	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if j.shouldRefresh(ctx) {
				if err := j.Refresh(ctx); err != nil {
					log.Printf("Table refresh failed: %v", err)
				}
			} else {
				log.Println("Skipping table refresh run.")
			}
		}
	}
}

func (j *RegistryRefreshJob) shouldRefresh(ctx context.Context) bool {
	if j.cache == nil {
		return true
	}
	// Held for slightly less than the interval so the next tick can take it
	acquired, err := j.cache.TryLock(ctx, refreshLockKey, j.interval*9/10)
	if err != nil {
		log.Printf("Error acquiring lock: %v", err)
		return true
	}
	return acquired
}

// Refresh loads every table and publishes them as the new registry.
func (j *RegistryRefreshJob) Refresh(ctx context.Context) error {
	reg, err := j.tables.LoadAll(ctx)
	if err != nil {
		return err
	}
	j.holder.Store(reg)
	log.Printf("Loaded %d tables", len(reg))
	return nil
}
