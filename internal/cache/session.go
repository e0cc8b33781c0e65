package cache

import (
	"database/sql"
	"errors"
)

// GetSessionValue returns the stored value for key, or "" when absent.
func (d *DB) GetSessionValue(key string) (string, error) {
	var v string
	err := d.db.QueryRow(`SELECT value FROM session WHERE key = ?`, key).Scan(&v)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	return v, err
}

// PutSessionValue stores value under key.
func (d *DB) PutSessionValue(key, value string) error {
	_, err := d.db.Exec(`INSERT OR REPLACE INTO session (key, value) VALUES (?, ?)`, key, value)
	return err
}

// DeleteSessionValue removes key.
func (d *DB) DeleteSessionValue(key string) error {
	_, err := d.db.Exec(`DELETE FROM session WHERE key = ?`, key)
	return err
}
