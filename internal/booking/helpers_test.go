package booking

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/buchfink-dev/buchfink/internal/database"
	"github.com/buchfink-dev/buchfink/internal/model"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// testDB opens an in-memory database with the default test accounts.
func testDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.OpenMemory()
	require.NoError(t, err)
	require.NoError(t, database.AutoMigrate(db))

	konten := []model.Konto{
		{Nummer: "1200", Name: "Bank", Kategorie: model.KategorieAktiv, Typ: model.TypBank, Aktiv: true},
		{Nummer: "1800", Name: "Privatentnahmen", Kategorie: model.KategorieEigenkapital, Typ: model.TypPrivat, Aktiv: true},
		{Nummer: "1890", Name: "Privateinlagen", Kategorie: model.KategorieEigenkapital, Typ: model.TypPrivat, Aktiv: true},
		{Nummer: "4980", Name: "Sonstige betriebliche Aufwendungen", Kategorie: model.KategorieAufwand, Typ: model.TypBetriebsausgabe, Aktiv: true},
		{Nummer: "8400", Name: "Erloese 19% USt", Kategorie: model.KategorieErloes, Typ: model.TypBetriebseinnahme, Aktiv: true},
	}
	for i := range konten {
		require.NoError(t, db.Create(&konten[i]).Error)
	}
	return db
}
