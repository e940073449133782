package storage

import (
	"database/sql"
	"fmt"
	"strconv"
	"strings"
	"time"

	_ "github.com/lib/pq"

	"github.com/masarusaitou/fudousan/models"
)

// PostgresStore snapshots the canonical listing set and can serve as a
// row source on later runs. Coordinates are stored as the raw strings the
// source supplied, so the lazy parse at filter time sees the same values.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgresStore opens a connection, runs schema migration and returns
// a ready-to-use store.
func NewPostgresStore(dsn string) (*PostgresStore, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("postgres: open: %w", err)
	}

	for i := 0; i < 10; i++ {
		if err = db.Ping(); err == nil {
			break
		}
		time.Sleep(2 * time.Second)
	}
	if err != nil {
		return nil, fmt.Errorf("postgres: ping failed after retries: %w", err)
	}

	st := &PostgresStore{db: db}
	if err := st.migrate(); err != nil {
		return nil, fmt.Errorf("postgres: migrate: %w", err)
	}
	return st, nil
}

func (st *PostgresStore) migrate() error {
	_, err := st.db.Exec(`
		CREATE TABLE IF NOT EXISTS listings (
			id          SERIAL PRIMARY KEY,
			name        TEXT          NOT NULL,
			address     TEXT          NOT NULL DEFAULT '',
			floor_level TEXT          NOT NULL DEFAULT '',
			rent        NUMERIC(10,2) NOT NULL,
			area        TEXT          NOT NULL DEFAULT '',
			floor_plan  TEXT          NOT NULL DEFAULT '',
			detail_url  TEXT          NOT NULL DEFAULT '',
			latitude    TEXT          NOT NULL DEFAULT '',
			longitude   TEXT          NOT NULL DEFAULT '',
			loaded_at   TIMESTAMPTZ   NOT NULL DEFAULT NOW()
		);

		CREATE INDEX IF NOT EXISTS idx_listings_area ON listings(area);
		CREATE INDEX IF NOT EXISTS idx_listings_rent ON listings(rent);
	`)
	return err
}

// SaveSnapshot replaces the stored set with the given canonical listings.
func (st *PostgresStore) SaveSnapshot(listings []*models.Listing) error {
	if len(listings) == 0 {
		return nil
	}

	if _, err := st.db.Exec("DELETE FROM listings"); err != nil {
		return fmt.Errorf("postgres: clear: %w", err)
	}

	const batchSize = 50
	for i := 0; i < len(listings); i += batchSize {
		end := i + batchSize
		if end > len(listings) {
			end = len(listings)
		}
		if err := st.insertBatch(listings[i:end]); err != nil {
			return err
		}
	}
	return nil
}

func (st *PostgresStore) insertBatch(batch []*models.Listing) error {
	valueStrings := make([]string, 0, len(batch))
	valueArgs := make([]interface{}, 0, len(batch)*9)

	for idx, l := range batch {
		base := idx * 9
		valueStrings = append(valueStrings,
			fmt.Sprintf("($%d,$%d,$%d,$%d,$%d,$%d,$%d,$%d,$%d)",
				base+1, base+2, base+3, base+4, base+5, base+6, base+7, base+8, base+9))
		valueArgs = append(valueArgs,
			l.Name, l.Address, l.FloorLevel, l.RentFee, l.Area,
			l.FloorPlan, l.DetailURL, l.RawLatitude, l.RawLongitude)
	}

	query := fmt.Sprintf(`
		INSERT INTO listings (name, address, floor_level, rent, area, floor_plan, detail_url, latitude, longitude)
		VALUES %s
	`, strings.Join(valueStrings, ","))

	_, err := st.db.Exec(query, valueArgs...)
	return err
}

// Load returns the stored listings as raw rows, in insertion order, so
// they pass through the same normalization as spreadsheet rows.
func (st *PostgresStore) Load() ([]models.RawRow, error) {
	rows, err := st.db.Query(`
		SELECT name, address, floor_level, rent, area, floor_plan, detail_url, latitude, longitude
		FROM listings
		ORDER BY id
	`)
	if err != nil {
		return nil, fmt.Errorf("postgres: load: %w", err)
	}
	defer rows.Close()

	var out []models.RawRow
	for rows.Next() {
		var name, address, floor, area, plan, url, lat, lon string
		var rent float64
		if err := rows.Scan(&name, &address, &floor, &rent, &area, &plan, &url, &lat, &lon); err != nil {
			return nil, fmt.Errorf("postgres: scan row: %w", err)
		}
		out = append(out, models.RawRow{
			models.ColName:      name,
			models.ColAddress:   address,
			models.ColFloor:     floor,
			models.ColRent:      strconv.FormatFloat(rent, 'f', -1, 64),
			models.ColArea:      area,
			models.ColFloorPlan: plan,
			models.ColDetailURL: url,
			models.ColLatitude:  lat,
			models.ColLongitude: lon,
		})
	}
	return out, rows.Err()
}

// Close closes the underlying connection pool.
func (st *PostgresStore) Close() error {
	return st.db.Close()
}
