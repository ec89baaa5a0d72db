package datastore

import (
	"database/sql"
	"sync"
	"time"

	"github.com/jellyfish/api/models"
)

// MemoryHistory keeps match history in process. It backs HISTORY_STORE=memory
// and the handler tests. Records are lost on restart.
type MemoryHistory struct {
	mu      sync.RWMutex
	records []models.MatchRecord
}

func NewMemoryHistory() *MemoryHistory {
	return &MemoryHistory{}
}

func (mh *MemoryHistory) Create(records []models.MatchRecord) error {
	mh.mu.Lock()
	defer mh.mu.Unlock()
	mh.records = append(mh.records, records...)
	return nil
}

func (mh *MemoryHistory) Get(id string) (models.MatchRecord, error) {
	mh.mu.RLock()
	defer mh.mu.RUnlock()
	for _, record := range mh.records {
		if record.ID == id {
			return record, nil
		}
	}
	return models.MatchRecord{}, NoRowsError{true, sql.ErrNoRows}
}

// GetRecent returns up to limit records, newest first
func (mh *MemoryHistory) GetRecent(limit int) ([]models.MatchRecord, error) {
	mh.mu.RLock()
	defer mh.mu.RUnlock()

	records := []models.MatchRecord{}
	for i := len(mh.records) - 1; i >= 0 && len(records) < limit; i-- {
		records = append(records, mh.records[i])
	}
	return records, nil
}

func (mh *MemoryHistory) DeleteBefore(cutoff time.Time) (int64, error) {
	mh.mu.Lock()
	defer mh.mu.Unlock()

	kept := mh.records[:0]
	var deleted int64
	for _, record := range mh.records {
		if record.CreatedAt.Before(cutoff) {
			deleted++
			continue
		}
		kept = append(kept, record)
	}
	mh.records = kept
	return deleted, nil
}
