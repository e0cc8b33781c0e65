package cache

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestTheme(t *testing.T) {
	db := openTestDB(t)

	theme, err := db.GetTheme()
	require.NoError(t, err)
	assert.Equal(t, ThemeLight, theme, "missing key defaults to light")

	require.NoError(t, db.PutTheme(ThemeDark))
	theme, err = db.GetTheme()
	require.NoError(t, err)
	assert.Equal(t, ThemeDark, theme)

	require.NoError(t, db.putPref(themeKey, "purple"))
	theme, err = db.GetTheme()
	require.NoError(t, err)
	assert.Equal(t, ThemeLight, theme, "unknown value reads as light")
}

func TestThemeToggle(t *testing.T) {
	assert.Equal(t, ThemeDark, ThemeLight.Toggle())
	assert.Equal(t, ThemeLight, ThemeDark.Toggle())
}

func TestThemeSurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.db")
	db, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, db.PutTheme(ThemeDark))
	require.NoError(t, db.Close())

	db, err = Open(path)
	require.NoError(t, err)
	defer db.Close()
	theme, err := db.GetTheme()
	require.NoError(t, err)
	assert.Equal(t, ThemeDark, theme)
}

func TestSessionValues(t *testing.T) {
	db := openTestDB(t)

	v, err := db.GetSessionValue("cookies")
	require.NoError(t, err)
	assert.Empty(t, v)

	require.NoError(t, db.PutSessionValue("cookies", `[{"name":"session"}]`))
	v, err = db.GetSessionValue("cookies")
	require.NoError(t, err)
	assert.Equal(t, `[{"name":"session"}]`, v)

	require.NoError(t, db.DeleteSessionValue("cookies"))
	v, err = db.GetSessionValue("cookies")
	require.NoError(t, err)
	assert.Empty(t, v)
}
