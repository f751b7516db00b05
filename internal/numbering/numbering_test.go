package numbering

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/buchfink-dev/buchfink/internal/database"
)

func TestNext_Sequential(t *testing.T) {
	db, err := database.OpenMemory()
	require.NoError(t, err)
	require.NoError(t, database.AutoMigrate(db))
	svc := NewService(db)

	for want := 1; want <= 5; want++ {
		got, err := svc.Next(BereichRechnung)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
}

func TestNext_GetrennteBereiche(t *testing.T) {
	db, err := database.OpenMemory()
	require.NoError(t, err)
	require.NoError(t, database.AutoMigrate(db))
	svc := NewService(db)

	_, err = svc.Next(BereichRechnung)
	require.NoError(t, err)
	_, err = svc.Next(BereichRechnung)
	require.NoError(t, err)

	kunde, err := svc.Next(BereichKunde)
	require.NoError(t, err)
	assert.Equal(t, 1, kunde, "scopes count independently")
}

func TestFormatted(t *testing.T) {
	db, err := database.OpenMemory()
	require.NoError(t, err)
	require.NoError(t, database.AutoMigrate(db))
	svc := NewService(db)

	got, err := svc.Formatted(BereichRechnung, "RE-", 6)
	require.NoError(t, err)
	assert.Equal(t, "RE-000001", got)

	got, err = svc.Formatted(BereichRechnung, "RE-", 6)
	require.NoError(t, err)
	assert.Equal(t, "RE-000002", got)
}
