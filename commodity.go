package gnucash

// CommodityID identifies a commodity by its namespace and symbol, for
// example {"CURRENCY", "EUR"}. It is a value type and usable as a map key.
type CommodityID struct {
	Space  string
	Symbol string
}

func (id CommodityID) String() string { return id.Space + ":" + id.Symbol }

// Commodity represents a tradeable unit: a currency or a security. Its price
// history records the value of one unit in the book's base currency.
type Commodity struct {
	id     CommodityID
	name   string
	prices *ValueHistory
	book   *Book // non-owning, set by Book.AddCommodity
}

// NewCommodity creates a commodity with an empty price history.
func NewCommodity(id CommodityID, name string) *Commodity {
	return &Commodity{id: id, name: name, prices: NewValueHistory()}
}

// ID returns the commodity's identifier.
func (c *Commodity) ID() CommodityID { return c.id }

// Name returns the commodity's display name.
func (c *Commodity) Name() string { return c.name }

// Prices returns the commodity's price history in the book's base currency.
func (c *Commodity) Prices() *ValueHistory { return c.prices }

func (c *Commodity) String() string { return "Commodity " + c.id.String() + ", " + c.name }
