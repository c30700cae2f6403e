package database

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T) Config {
	t.Helper()
	return Config{Path: filepath.Join(t.TempDir(), "nested", "crowdmap.db")}
}

func TestOpenCreatesDirectoryAndMigrates(t *testing.T) {
	conn, err := Open(openTestDB(t))
	require.NoError(t, err)
	defer conn.Close()

	version, dirty, err := MigrateVersion(conn)
	require.NoError(t, err)
	assert.Equal(t, uint(0), version)
	assert.False(t, dirty)

	require.NoError(t, MigrateUp(conn))
	// running again is a no-op
	require.NoError(t, MigrateUp(conn))

	version, dirty, err = MigrateVersion(conn)
	require.NoError(t, err)
	assert.Equal(t, uint(1), version)
	assert.False(t, dirty)

	var name string
	err = conn.QueryRow(`SELECT name FROM sqlite_master WHERE type='table' AND name='business_profiles'`).Scan(&name)
	require.NoError(t, err)
	assert.Equal(t, "business_profiles", name)
}

func TestMigrateDown(t *testing.T) {
	conn, err := Open(openTestDB(t))
	require.NoError(t, err)
	defer conn.Close()

	require.NoError(t, MigrateUp(conn))
	require.NoError(t, MigrateDown(conn))

	var count int
	err = conn.QueryRow(`SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name='business_profiles'`).Scan(&count)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestCheckConstraintRejectsUnknownIntensity(t *testing.T) {
	conn, err := Open(openTestDB(t))
	require.NoError(t, err)
	defer conn.Close()
	require.NoError(t, MigrateUp(conn))

	_, err = conn.Exec(`INSERT INTO business_profiles (name, email, phone, business_type, crowd_intensity, created_at)
		VALUES ('a', 'a@b.co', '1', 'cafe', 'extreme', 0)`)
	assert.Error(t, err)
}

func TestTransaction(t *testing.T) {
	conn, err := Open(openTestDB(t))
	require.NoError(t, err)
	defer conn.Close()
	require.NoError(t, MigrateUp(conn))

	insert := `INSERT INTO business_profiles (name, email, phone, business_type, crowd_intensity, created_at)
		VALUES ('a', 'a@b.co', '1', 'cafe', 'low', 0)`

	boom := errors.New("boom")
	err = Transaction(context.Background(), conn, func(tx *sql.Tx) error {
		if _, err := tx.Exec(insert); err != nil {
			return err
		}
		return boom
	})
	require.ErrorIs(t, err, boom)

	require.NoError(t, Transaction(context.Background(), conn, func(tx *sql.Tx) error {
		_, err := tx.Exec(insert)
		return err
	}))

	var count int
	require.NoError(t, conn.QueryRow(`SELECT COUNT(*) FROM business_profiles`).Scan(&count))
	assert.Equal(t, 1, count)
}

func TestBusyTimeoutOnEveryConnection(t *testing.T) {
	conn, err := Open(openTestDB(t))
	require.NoError(t, err)
	defer conn.Close()

	// hold two connections so the second comes fresh from the pool
	ctx := context.Background()
	c1, err := conn.Conn(ctx)
	require.NoError(t, err)
	defer c1.Close()
	c2, err := conn.Conn(ctx)
	require.NoError(t, err)
	defer c2.Close()

	for _, c := range []*sql.Conn{c1, c2} {
		var timeout int
		require.NoError(t, c.QueryRowContext(ctx, "PRAGMA busy_timeout").Scan(&timeout))
		assert.Equal(t, 5000, timeout)
	}
}
