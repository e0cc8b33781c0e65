package cache

import (
	"database/sql"
	"errors"
	"time"
)

const themeKey = "theme"

// Theme is the persisted color scheme preference.
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// Toggle returns the opposite theme.
func (t Theme) Toggle() Theme {
	if t == ThemeDark {
		return ThemeLight
	}
	return ThemeDark
}

// GetTheme returns the saved theme. Missing or unrecognized values read
// as ThemeLight.
func (d *DB) GetTheme() (Theme, error) {
	v, err := d.getPref(themeKey)
	if err != nil {
		return ThemeLight, err
	}
	switch Theme(v) {
	case ThemeDark:
		return ThemeDark, nil
	default:
		return ThemeLight, nil
	}
}

// PutTheme saves the theme preference.
func (d *DB) PutTheme(t Theme) error {
	return d.putPref(themeKey, string(t))
}

func (d *DB) getPref(key string) (string, error) {
	var v string
	err := d.db.QueryRow(`SELECT value FROM prefs WHERE key = ?`, key).Scan(&v)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	return v, err
}

func (d *DB) putPref(key, value string) error {
	_, err := d.db.Exec(`INSERT OR REPLACE INTO prefs (key, value, updated_at) VALUES (?, ?, ?)`,
		key, value, time.Now().Unix())
	return err
}
