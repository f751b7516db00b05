package eur

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/buchfink-dev/buchfink/internal/booking"
	"github.com/buchfink-dev/buchfink/internal/database"
	"github.com/buchfink-dev/buchfink/internal/model"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func testDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.OpenMemory()
	require.NoError(t, err)
	require.NoError(t, database.AutoMigrate(db))

	konten := []model.Konto{
		{Nummer: "1200", Name: "Bank", Kategorie: model.KategorieAktiv, Typ: model.TypBank, Aktiv: true},
		{Nummer: "4980", Name: "Sonstige betriebliche Aufwendungen", Kategorie: model.KategorieAufwand, Typ: model.TypBetriebsausgabe, Aktiv: true},
		{Nummer: "8400", Name: "Erloese 19% USt", Kategorie: model.KategorieErloes, Typ: model.TypBetriebseinnahme, Aktiv: true},
	}
	for i := range konten {
		require.NoError(t, db.Create(&konten[i]).Error)
	}

	mappings := []model.EURMapping{
		{Zeile: "15", Bezeichnung: "Betriebseinnahmen", Kategorie: model.EURKategorieEinnahmen, Kontonummern: model.Kontonummern{"8400"}, Aktiv: true, Sortierung: 10},
		{Zeile: "31", Bezeichnung: "Uebrige Betriebsausgaben", Kategorie: model.EURKategorieAusgaben, Kontonummern: model.Kontonummern{"4980"}, Aktiv: true, Sortierung: 20},
	}
	for i := range mappings {
		require.NoError(t, db.Create(&mappings[i]).Error)
	}
	return db
}

func buche(t *testing.T, db *gorm.DB, datum time.Time, betrag, soll, haben, text string) {
	t.Helper()
	svc := booking.NewService(db, booking.MissingAccountFail)
	_, err := svc.Create(booking.CreateParams{
		Datum:        datum,
		Buchungstext: text,
		Betrag:       dec(betrag),
		Sollkonto:    soll,
		Habenkonto:   haben,
	})
	require.NoError(t, err)
}

func TestCompute_EinnahmenUndAusgaben(t *testing.T) {
	db := testDB(t)

	// Scenario A: income booked bank-against-revenue.
	buche(t, db, date(2025, time.January, 15), "1000.00", "1200", "8400", "Rechnung 1")
	// Scenario B: expense booked expense-against-bank.
	buche(t, db, date(2025, time.February, 1), "200.00", "4980", "1200", "Hosting")

	b, err := NewService(db, 2025).Compute()
	require.NoError(t, err)

	assert.True(t, b.SummeEinnahmen.Equal(dec("1000.00")), "einnahmen %s", b.SummeEinnahmen)
	assert.True(t, b.SummeAusgaben.Equal(dec("200.00")), "ausgaben %s", b.SummeAusgaben)
	assert.True(t, b.Ergebnis.Equal(dec("800.00")), "ergebnis %s", b.Ergebnis)
	assert.True(t, b.IsGewinn)
	assert.False(t, b.IsVerlust)
}

func TestCompute_SonderzeilenNachrichtlich(t *testing.T) {
	db := testDB(t)

	require.NoError(t, db.Create(&model.Konto{
		Nummer: "1800", Name: "Privatentnahmen", Kategorie: model.KategorieAktiv, Typ: model.TypPrivat, Aktiv: true,
	}).Error)
	require.NoError(t, db.Create(&model.EURMapping{
		Zeile: "96", Bezeichnung: "Entnahmen", Kategorie: model.EURKategorieSonder,
		Kontonummern: model.Kontonummern{"1800"}, Aktiv: true, Sortierung: 90,
	}).Error)

	buche(t, db, date(2025, time.January, 15), "1000.00", "1200", "8400", "Rechnung 1")
	buche(t, db, date(2025, time.April, 2), "300.00", "1800", "1200", "Privatentnahme")

	b, err := NewService(db, 2025).Compute()
	require.NoError(t, err)

	// Sonder lines are listed but never enter the totals.
	require.Len(t, b.Sonder, 1)
	assert.Equal(t, "96", b.Sonder[0].Zeile)
	assert.True(t, b.Sonder[0].Betrag.Equal(dec("300.00")), "sonder %s", b.Sonder[0].Betrag)
	assert.True(t, b.SummeEinnahmen.Equal(dec("1000.00")))
	assert.True(t, b.SummeAusgaben.IsZero())
	assert.True(t, b.Ergebnis.Equal(dec("1000.00")))
}

func TestCompute_SeiteNachMappingKategorie(t *testing.T) {
	db := testDB(t)

	// The booking touches 8400 on the credit side only; an expense
	// mapping over 8400 must not pick it up.
	require.NoError(t, db.Create(&model.EURMapping{
		Zeile: "99", Bezeichnung: "Falsche Seite", Kategorie: model.EURKategorieAusgaben,
		Kontonummern: model.Kontonummern{"8400"}, Aktiv: true, Sortierung: 90,
	}).Error)
	buche(t, db, date(2025, time.March, 1), "100.00", "1200", "8400", "Einnahme")

	b, err := NewService(db, 2025).Compute()
	require.NoError(t, err)

	assert.True(t, b.SummeEinnahmen.Equal(dec("100.00")))
	assert.True(t, b.SummeAusgaben.IsZero(), "credit-side booking leaked into an expense line")
}

func TestCompute_Jahresfenster(t *testing.T) {
	db := testDB(t)

	buche(t, db, date(2024, time.December, 31), "50.00", "1200", "8400", "Vorjahr")
	buche(t, db, date(2025, time.January, 1), "60.00", "1200", "8400", "Jahresanfang")
	buche(t, db, date(2025, time.December, 31), "70.00", "1200", "8400", "Jahresende")
	buche(t, db, date(2026, time.January, 1), "80.00", "1200", "8400", "Folgejahr")

	b, err := NewService(db, 2025).Compute()
	require.NoError(t, err)
	assert.True(t, b.SummeEinnahmen.Equal(dec("130.00")), "got %s", b.SummeEinnahmen)
}

func TestCompute_Additivitaet(t *testing.T) {
	db := testDB(t)

	buche(t, db, date(2025, time.April, 1), "100.00", "1200", "8400", "a")
	buche(t, db, date(2025, time.April, 2), "250.50", "1200", "8400", "b")
	buche(t, db, date(2025, time.April, 3), "33.33", "4980", "1200", "c")
	buche(t, db, date(2025, time.April, 4), "66.67", "4980", "1200", "d")

	b, err := NewService(db, 2025).Compute()
	require.NoError(t, err)

	einnahmen := decimal.Zero
	for _, z := range b.Einnahmen {
		einnahmen = einnahmen.Add(z.Betrag)
	}
	ausgaben := decimal.Zero
	for _, z := range b.Ausgaben {
		ausgaben = ausgaben.Add(z.Betrag)
	}
	assert.True(t, b.SummeEinnahmen.Equal(einnahmen))
	assert.True(t, b.SummeAusgaben.Equal(ausgaben))
	assert.True(t, b.Ergebnis.Equal(b.SummeEinnahmen.Sub(b.SummeAusgaben)))
}

func TestCompute_Idempotent(t *testing.T) {
	db := testDB(t)

	buche(t, db, date(2025, time.May, 1), "123.45", "1200", "8400", "x")
	buche(t, db, date(2025, time.May, 2), "67.89", "4980", "1200", "y")

	svc := NewService(db, 2025)
	first, err := svc.Compute()
	require.NoError(t, err)
	second, err := svc.Compute()
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestCompute_Verlust(t *testing.T) {
	db := testDB(t)

	buche(t, db, date(2025, time.June, 1), "500.00", "4980", "1200", "nur ausgaben")

	b, err := NewService(db, 2025).Compute()
	require.NoError(t, err)
	assert.True(t, b.Ergebnis.Equal(dec("-500.00")))
	assert.False(t, b.IsGewinn)
	assert.True(t, b.IsVerlust)
}

func TestPersist_UpsertByJahr(t *testing.T) {
	db := testDB(t)
	svc := NewService(db, 2025)

	buche(t, db, date(2025, time.July, 1), "100.00", "1200", "8400", "x")
	b, err := svc.Compute()
	require.NoError(t, err)

	saved, err := svc.Persist(b, false, false)
	require.NoError(t, err)
	assert.True(t, saved.Ergebnis.Equal(dec("100.00")))
	assert.NotEmpty(t, saved.EinnahmenDetails)

	buche(t, db, date(2025, time.July, 2), "50.00", "1200", "8400", "y")
	b, err = svc.Compute()
	require.NoError(t, err)
	again, err := svc.Persist(b, false, false)
	require.NoError(t, err)
	assert.Equal(t, saved.ID, again.ID, "upsert keyed by jahr")
	assert.True(t, again.Ergebnis.Equal(dec("150.00")))

	var n int64
	db.Model(&model.EURBerechnung{}).Count(&n)
	assert.EqualValues(t, 1, n)
}

func TestPersist_FinalGuard(t *testing.T) {
	db := testDB(t)
	svc := NewService(db, 2025)

	buche(t, db, date(2025, time.August, 1), "100.00", "1200", "8400", "x")
	b, err := svc.Compute()
	require.NoError(t, err)

	_, err = svc.Persist(b, true, false)
	require.NoError(t, err)

	// A later non-final persist must not silently overwrite.
	_, err = svc.Persist(b, false, false)
	require.ErrorIs(t, err, ErrBerechnungFinal)

	// Force replaces the snapshot.
	saved, err := svc.Persist(b, false, true)
	require.NoError(t, err)
	assert.False(t, saved.Final)
}

func TestAvailableYears(t *testing.T) {
	db := testDB(t)

	years, err := AvailableYears(db)
	require.NoError(t, err)
	assert.Equal(t, []int{time.Now().Year()}, years)

	buche(t, db, date(2023, time.January, 5), "10.00", "1200", "8400", "alt")
	years, err = AvailableYears(db)
	require.NoError(t, err)
	require.NotEmpty(t, years)
	assert.Equal(t, 2023, years[0])
	assert.Equal(t, time.Now().Year(), years[len(years)-1])
}

func TestLineItemDetail(t *testing.T) {
	db := testDB(t)

	buche(t, db, date(2025, time.September, 1), "100.00", "1200", "8400", "Rechnung 7")
	buche(t, db, date(2025, time.September, 2), "40.00", "4980", "1200", "Hosting")

	var mapping model.EURMapping
	require.NoError(t, db.Where("zeile = ?", "15").First(&mapping).Error)

	svc := NewService(db, 2025)
	posten, err := svc.LineItemDetail(mapping.ID)
	require.NoError(t, err)
	require.Len(t, posten, 1)
	assert.Equal(t, "Rechnung 7", posten[0].Text)
	assert.True(t, posten[0].Betrag.Equal(dec("100.00")))
	assert.Contains(t, posten[0].Habenkonto, "8400")

	_, err = svc.LineItemDetail(99999)
	require.ErrorIs(t, err, model.ErrNotFound)
}
