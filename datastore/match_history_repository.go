package datastore

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/jellyfish/api/models"
	_ "github.com/lib/pq"
)

type MatchHistoryRepository interface {
	Create(records []models.MatchRecord) error
	Get(id string) (models.MatchRecord, error)
	GetRecent(limit int) ([]models.MatchRecord, error)
	DeleteBefore(cutoff time.Time) (int64, error)
}

type MatchHistoryDatabase struct {
	database *sql.DB
}

func NewMatchHistoryDatabase(db *sql.DB) (MatchHistoryDatabase, error) {
	var historyDB MatchHistoryDatabase
	historyDB.database = db
	return historyDB, nil
}

// Create inserts every record of one request in a single transaction
func (mhdb MatchHistoryDatabase) Create(records []models.MatchRecord) error {
	tx, err := mhdb.database.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin match history insert: %v", err)
	}
	defer tx.Rollback()

	sqlStatement := `
		INSERT INTO match_history (id, request_id, background_color, original_hex, r, g, b, a, rgba, position, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`

	for _, record := range records {
		_, err := tx.Exec(
			sqlStatement,
			record.ID,
			record.RequestID,
			record.BackgroundColor,
			record.OriginalHex,
			record.R,
			record.G,
			record.B,
			record.A,
			record.RGBA,
			record.Position,
			record.CreatedAt,
		)
		if err != nil {
			return fmt.Errorf("failed to create match record: %v", err)
		}
	}

	return tx.Commit()
}

// Get retrieves a single record by ID
func (mhdb MatchHistoryDatabase) Get(id string) (models.MatchRecord, error) {
	db := mhdb.database

	sqlStatement := `
		SELECT id, request_id, background_color, original_hex, r, g, b, a, rgba, position, created_at
		FROM match_history
		WHERE id = $1`

	var record models.MatchRecord
	err := scanRecord(db.QueryRow(sqlStatement, id), &record)

	switch err {
	case sql.ErrNoRows:
		return models.MatchRecord{}, NoRowsError{true, err}
	case nil:
		return record, nil
	default:
		return models.MatchRecord{}, err
	}
}

// Records of one request share created_at, so position breaks the tie in
// reverse request order.
const recentMatchesQuery = `
	SELECT id, request_id, background_color, original_hex, r, g, b, a, rgba, position, created_at
	FROM match_history
	ORDER BY created_at DESC, position DESC
	LIMIT $1`

// GetRecent retrieves the newest records first
func (mhdb MatchHistoryDatabase) GetRecent(limit int) ([]models.MatchRecord, error) {
	db := mhdb.database

	rows, err := db.Query(recentMatchesQuery, limit)
	if err != nil {
		return []models.MatchRecord{}, err
	}
	defer rows.Close()

	records := []models.MatchRecord{}
	for rows.Next() {
		var record models.MatchRecord
		if err := scanRecord(rows, &record); err != nil {
			return []models.MatchRecord{}, err
		}
		records = append(records, record)
	}

	if err = rows.Err(); err != nil {
		return []models.MatchRecord{}, err
	}

	return records, nil
}

// DeleteBefore removes records created before cutoff
func (mhdb MatchHistoryDatabase) DeleteBefore(cutoff time.Time) (int64, error) {
	db := mhdb.database

	sqlStatement := `DELETE FROM match_history WHERE created_at < $1`
	result, err := db.Exec(sqlStatement, cutoff)
	if err != nil {
		return 0, err
	}

	return result.RowsAffected()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRecord(row scanner, record *models.MatchRecord) error {
	return row.Scan(
		&record.ID,
		&record.RequestID,
		&record.BackgroundColor,
		&record.OriginalHex,
		&record.R,
		&record.G,
		&record.B,
		&record.A,
		&record.RGBA,
		&record.Position,
		&record.CreatedAt,
	)
}
