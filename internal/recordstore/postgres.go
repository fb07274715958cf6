package recordstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"covid-booking/pkg/database"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

// PostgresStore persists records in a single jsonb table, keyed by
// collection and id.
type PostgresStore struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewPostgresStore(db database.PgxIface, log *zap.Logger) *PostgresStore {
	return &PostgresStore{
		db:  db,
		log: log.With(zap.String("store", "postgres")),
	}
}

// Init creates the records table when it does not exist yet.
func (s *PostgresStore) Init(ctx context.Context) error {
	query := `
		CREATE TABLE IF NOT EXISTS records (
			collection TEXT NOT NULL,
			id TEXT NOT NULL,
			doc JSONB NOT NULL,
			PRIMARY KEY (collection, id)
		)
	`

	if _, err := s.db.Exec(ctx, query); err != nil {
		return fmt.Errorf("create records table: %w", err)
	}
	return nil
}

func (s *PostgresStore) List(ctx context.Context, collection string) ([]Record, error) {
	query := `SELECT doc FROM records WHERE collection = $1`

	rows, err := s.db.Query(ctx, query, collection)
	if err != nil {
		return nil, fmt.Errorf("list %s records: %w", collection, err)
	}
	defer rows.Close()

	var docs []Record
	for rows.Next() {
		var raw []byte
		if err := rows.Scan(&raw); err != nil {
			return nil, fmt.Errorf("scan %s record: %w", collection, err)
		}

		var record Record
		if err := json.Unmarshal(raw, &record); err != nil {
			s.log.Warn("Skipping undecodable record", zap.String("collection", collection), zap.Error(err))
			continue
		}
		docs = append(docs, record)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list %s records: %w", collection, err)
	}
	return docs, nil
}

func (s *PostgresStore) Get(ctx context.Context, collection, id string) (Record, error) {
	query := `SELECT doc FROM records WHERE collection = $1 AND id = $2`

	var raw []byte
	err := s.db.QueryRow(ctx, query, collection, id).Scan(&raw)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get %s record %s: %w", collection, id, err)
	}

	var record Record
	if err := json.Unmarshal(raw, &record); err != nil {
		return nil, fmt.Errorf("decode %s record %s: %w", collection, id, err)
	}
	return record, nil
}

func (s *PostgresStore) Put(ctx context.Context, collection, id string, record Record) error {
	query := `
		INSERT INTO records (collection, id, doc)
		VALUES ($1, $2, $3)
		ON CONFLICT (collection, id) DO UPDATE SET doc = EXCLUDED.doc
	`

	raw, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("encode %s record %s: %w", collection, id, err)
	}

	if _, err := s.db.Exec(ctx, query, collection, id, raw); err != nil {
		return fmt.Errorf("put %s record %s: %w", collection, id, err)
	}
	return nil
}

func (s *PostgresStore) Delete(ctx context.Context, collection, id string) error {
	query := `DELETE FROM records WHERE collection = $1 AND id = $2`

	tag, err := s.db.Exec(ctx, query, collection, id)
	if err != nil {
		return fmt.Errorf("delete %s record %s: %w", collection, id, err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
