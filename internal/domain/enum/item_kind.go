package enum

// ItemKind distinguishes inventory items sold by volume from plain stock items.
// Oil items carry volume price tiers; simple items never do.
type ItemKind string

const (
	ItemKindSimple ItemKind = "simple"
	ItemKindOil    ItemKind = "oil"
)
