package model

// Kontenpaar is a debit/credit account-number pair.
type Kontenpaar struct {
	Soll  string
	Haben string
}

// Standardkontierungen holds a user's configured default account pair
// per booking type. Passed explicitly to every operation that needs
// it; there is no ambient user state.
type Standardkontierungen map[Buchungstyp]Kontenpaar

// FallbackKontierung is the fixed account pair per booking type, used
// by quick bookings and the kontierung advisor when the caller has no
// configured default.
var FallbackKontierung = Standardkontierungen{
	TypEinnahme:       {Soll: "1200", Haben: "8400"},
	TypAusgabe:        {Soll: "4980", Haben: "1200"},
	TypPrivatentnahme: {Soll: "1800", Haben: "1200"},
	TypPrivateinlage:  {Soll: "1200", Haben: "1890"},
}
