package model

// Identifiers the parser and the query service depend on directly.
const (
	AttrNumber          = "nr"
	AttrName            = "Namn"
	AttrPrice           = "Prisinklmoms"
	AttrVolume          = "Volymiml"
	AttrAlcohol         = "Alkoholhalt"
	AttrGroup           = "Varugrupp"
	AttrAlcoholPerKrona = "AlkoholPerKrona"
)

// Unspecified is the label at index 0 of every category label set.
const Unspecified = "Ospecificerad"

var catalogAttributes = []Attribute{
	{Identifier: AttrNumber, Type: Integer, Name: "Nummer", Search: SearchExact},
	{Identifier: "Artikelid", Type: Integer, Name: "Artikelnummer", Search: SearchExact},
	{Identifier: "Varnummer", Type: Integer, Name: "Varnummer", Search: SearchExact},
	{Identifier: AttrName, Type: Text, Name: "Namn", Visible: true, Search: SearchSubstring},
	{Identifier: "Namn2", Type: Text, Name: "Namn2", Visible: true, Search: SearchSubstring},
	{Identifier: AttrPrice, Type: Price, Name: "Pris inkl. moms", Visible: true},
	{Identifier: "Pant", Type: Price, Name: "Pant"},
	{Identifier: AttrVolume, Type: Volume, Name: "Volym", Visible: true},
	{Identifier: "PrisPerLiter", Type: PricePerLiter, Name: "Pris per liter", Visible: true},
	{Identifier: "Saljstart", Type: Date, Name: "Säljstart"},
	{Identifier: "Utgått", Type: Boolean, Name: "Utgått"},
	{Identifier: AttrGroup, Type: Category, Name: "Varugrupp", Visible: true},
	{Identifier: "Typ", Type: Category, Name: "Typ", Visible: true},
	{Identifier: "Stil", Type: Category, Name: "Stil", Visible: true},
	{Identifier: "Forpackning", Type: Category, Name: "Förpackning"},
	{Identifier: "Forslutning", Type: Category, Name: "Förslutning"},
	{Identifier: "Ursprung", Type: Category, Name: "Ursprung", Visible: true},
	{Identifier: "Ursprunglandnamn", Type: Category, Name: "Ursprungsland", Visible: true},
	{Identifier: "Producent", Type: Category, Name: "Producent", Visible: true},
	{Identifier: "Leverantor", Type: Category, Name: "Leverantör"},
	{Identifier: "Argang", Type: Integer, Name: "Årgång"},
	{Identifier: "Provadargang", Type: Text, Name: "Provad årgang"},
	{Identifier: AttrAlcohol, Type: Percentage, Name: "Alkoholhalt", Visible: true},
	{Identifier: "Sortiment", Type: Category, Name: "Sortiment"},
	{Identifier: "SortimentText", Type: Category, Name: "Sortiment text"},
	{Identifier: "Ekologisk", Type: Boolean, Name: "Ekologisk"},
	{Identifier: "Etiskt", Type: Boolean, Name: "Etiskt"},
	{Identifier: "EtisktEtikett", Type: Category, Name: "Etiskt etikett"},
	{Identifier: "Koscher", Type: Boolean, Name: "Koscher"},
	{Identifier: "RavarorBeskrivning", Type: Text, Name: "Råvaror beskrivning"},
	{Identifier: AttrAlcoholPerKrona, Type: AlcoholRatio, Name: "Alkohol per krona"},
}

var defaultRegistry = mustRegistry(catalogAttributes)

// DefaultRegistry returns the catalog's attribute table. The registry is
// shared and read-only.
func DefaultRegistry() *Registry {
	return defaultRegistry
}

func mustRegistry(attrs []Attribute) *Registry {
	r, err := NewRegistry(attrs)
	if err != nil {
		panic(err)
	}
	return r
}
