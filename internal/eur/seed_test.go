package eur

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/buchfink-dev/buchfink/internal/database"
	"github.com/buchfink-dev/buchfink/internal/model"
)

func TestSeedOfficialMappings(t *testing.T) {
	db, err := database.OpenMemory()
	require.NoError(t, err)
	require.NoError(t, database.AutoMigrate(db))

	first, err := SeedOfficialMappings(db, false)
	require.NoError(t, err)
	assert.Equal(t, len(OfficialMappings()), first)

	// Idempotent without force.
	second, err := SeedOfficialMappings(db, false)
	require.NoError(t, err)
	assert.Zero(t, second)

	// Local edits survive a plain reseed and get reset by force.
	var zeile14 model.EURMapping
	require.NoError(t, db.Where("zeile = ?", "14").First(&zeile14).Error)
	zeile14.Bezeichnung = "lokal geaendert"
	require.NoError(t, db.Save(&zeile14).Error)

	_, err = SeedOfficialMappings(db, false)
	require.NoError(t, err)
	require.NoError(t, db.Where("zeile = ?", "14").First(&zeile14).Error)
	assert.Equal(t, "lokal geaendert", zeile14.Bezeichnung)

	forced, err := SeedOfficialMappings(db, true)
	require.NoError(t, err)
	assert.Equal(t, len(OfficialMappings()), forced)
	require.NoError(t, db.Where("zeile = ?", "14").First(&zeile14).Error)
	assert.Equal(t, "Umsatzsteuerpflichtige Betriebseinnahmen", zeile14.Bezeichnung)
}

func TestOfficialMappings_AktiveHabenKonten(t *testing.T) {
	for _, m := range OfficialMappings() {
		if m.Aktiv {
			assert.NotEmpty(t, m.Kontonummern, "zeile %s", m.Zeile)
		}
	}
}
