package main

import (
	"fmt"
	"time"
)

// GCResult reports what one cleanup run removed.
type GCResult struct {
	DeletedByAge  int64
	DeletedBySize int64
	SizeBytes     int64
}

// GarbageCollector enforces the retention policy and database size cap.
type GarbageCollector struct {
	store         *CommandStore
	retentionDays int
	maxSizeMB     int64
}

// NewGarbageCollector creates a collector over the store. A retention of 0
// disables age-based cleanup; a max size of 0 disables the size cap.
func NewGarbageCollector(store *CommandStore, retentionDays int, maxSizeMB int64) *GarbageCollector {
	return &GarbageCollector{
		store:         store,
		retentionDays: retentionDays,
		maxSizeMB:     maxSizeMB,
	}
}

// Run applies the retention policy, then the size cap, vacuuming afterwards
// if anything was deleted.
func (gc *GarbageCollector) Run() (GCResult, error) {
	var result GCResult

	if gc.retentionDays > 0 {
		cutoff := time.Now().AddDate(0, 0, -gc.retentionDays)
		deleted, err := gc.store.DeleteBefore(cutoff)
		if err != nil {
			return result, err
		}
		result.DeletedByAge = deleted
	}

	size, err := gc.store.SizeBytes()
	if err != nil {
		return result, err
	}
	sizeMB := size / (1024 * 1024)

	if gc.maxSizeMB > 0 && sizeMB > gc.maxSizeMB {
		toDelete := recordsToDelete(sizeMB, gc.maxSizeMB)
		deleted, err := gc.store.DeleteOldest(toDelete)
		if err != nil {
			return result, err
		}
		result.DeletedBySize = deleted
	}

	if result.DeletedByAge+result.DeletedBySize > 0 {
		if err := gc.store.Vacuum(); err != nil {
			return result, fmt.Errorf("cleanup succeeded but vacuum failed: %w", err)
		}
	}

	result.SizeBytes, err = gc.store.SizeBytes()
	if err != nil {
		return result, err
	}
	return result, nil
}

// recordsToDelete estimates how many of the oldest records to drop to bring
// the database back to 80% of its cap, assuming roughly 1KB per record.
func recordsToDelete(currentSizeMB, maxSizeMB int64) int {
	targetMB := int64(float64(maxSizeMB) * 0.8)
	reduceMB := currentSizeMB - targetMB
	if reduceMB <= 0 {
		return 0
	}
	return int(reduceMB * 1024)
}
