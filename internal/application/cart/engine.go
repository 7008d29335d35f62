// Package cart implements the POS cart: a staging area for multi-step picks
// (oil volumes, filters of one brand and type) and the cart of lines they are
// committed into. An Engine has a single owner and is not safe for concurrent use.
package cart

import (
	"errors"

	"github.com/sangkips/lubepos-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

var (
	// ErrVariantRequired is returned when a product sold by volume is added without one
	ErrVariantRequired = errors.New("product must be sold through a volume selection")
	// ErrUnknownSelection is returned when a variant does not exist on the product
	ErrUnknownSelection = errors.New("unknown variant for product")
)

// Engine holds one cart and its staging area
type Engine struct {
	scope  string
	staged []entity.Selection
	lines  []entity.CartLine
}

// New returns an empty engine
func New() *Engine {
	return &Engine{}
}

// stagingScope groups the picks made in one modal: every volume of an oil
// product, or every product sharing a category, brand and type.
func stagingScope(p *entity.Product) string {
	if p.HasVolumes() {
		return p.ID
	}
	return p.Category + "/" + p.Brand + "/" + p.Type
}

func selectionFor(p *entity.Product, variant string) (entity.Selection, error) {
	if !p.HasVolumes() {
		if variant != "" {
			return entity.Selection{}, ErrUnknownSelection
		}
		return entity.Selection{
			Key:       entity.CartKey(p.ID, ""),
			ProductID: p.ID,
			Name:      p.DisplayName(),
			Category:  p.Category,
			Price:     p.Price,
		}, nil
	}

	vol, ok := p.VolumeBySize(variant)
	if !ok {
		if variant == "" {
			return entity.Selection{}, ErrVariantRequired
		}
		return entity.Selection{}, ErrUnknownSelection
	}
	return entity.Selection{
		Key:       entity.CartKey(p.ID, vol.Size),
		ProductID: p.ID,
		Variant:   vol.Size,
		Name:      p.DisplayName() + " " + vol.Size,
		Category:  p.Category,
		Price:     vol.Price,
	}, nil
}

// SelectVariant stages one unit of the product's variant. Picking the same
// variant again increments its staged quantity. A pick outside the current
// staging scope discards what was staged before.
func (e *Engine) SelectVariant(p *entity.Product, variant string) (entity.Selection, error) {
	sel, err := selectionFor(p, variant)
	if err != nil {
		return entity.Selection{}, err
	}

	if scope := stagingScope(p); scope != e.scope {
		e.scope = scope
		e.staged = nil
	}

	for i := range e.staged {
		if e.staged[i].Key == sel.Key {
			e.staged[i].Quantity++
			return e.staged[i], nil
		}
	}
	sel.Quantity = 1
	e.staged = append(e.staged, sel)
	return sel, nil
}

// AdjustStaged adds delta to a staged entry and returns its new quantity.
// The quantity never drops below zero, and an entry reaching zero is dropped.
// Unknown keys are ignored.
func (e *Engine) AdjustStaged(key string, delta int) int {
	for i := range e.staged {
		if e.staged[i].Key != key {
			continue
		}
		q := e.staged[i].Quantity + delta
		if q <= 0 {
			e.staged = append(e.staged[:i], e.staged[i+1:]...)
			return 0
		}
		e.staged[i].Quantity = q
		return q
	}
	return 0
}

// Commit folds every staged entry into the cart and clears staging.
// It returns the number of entries committed.
func (e *Engine) Commit() int {
	n := len(e.staged)
	for _, sel := range e.staged {
		e.upsert(entity.CartLine{
			Key:       sel.Key,
			ProductID: sel.ProductID,
			Variant:   sel.Variant,
			Name:      sel.Name,
			Category:  sel.Category,
			UnitPrice: sel.Price,
		}, sel.Quantity)
	}
	e.ClearStaging()
	return n
}

// AddDirect adds a product that needs no variant straight to the cart.
// A quantity below one changes nothing.
func (e *Engine) AddDirect(p *entity.Product, quantity int) (entity.CartLine, error) {
	if p.HasVolumes() {
		return entity.CartLine{}, ErrVariantRequired
	}
	sel, err := selectionFor(p, "")
	if err != nil {
		return entity.CartLine{}, err
	}

	line := entity.CartLine{
		Key:       sel.Key,
		ProductID: sel.ProductID,
		Name:      sel.Name,
		Category:  sel.Category,
		UnitPrice: sel.Price,
	}
	if quantity < 1 {
		if existing, ok := e.Line(line.Key); ok {
			return existing, nil
		}
		return line, nil
	}
	return e.upsert(line, quantity), nil
}

// upsert adds quantity to the line with the same key, inserting it when absent
func (e *Engine) upsert(line entity.CartLine, quantity int) entity.CartLine {
	for i := range e.lines {
		if e.lines[i].Key == line.Key {
			e.lines[i].Quantity += quantity
			return e.lines[i]
		}
	}
	line.Quantity = quantity
	e.lines = append(e.lines, line)
	return line
}

// SetLineQuantity sets a line's quantity exactly. Anything below one removes
// the line. It reports whether a line with that key existed.
func (e *Engine) SetLineQuantity(key string, quantity int) bool {
	for i := range e.lines {
		if e.lines[i].Key != key {
			continue
		}
		if quantity < 1 {
			e.lines = append(e.lines[:i], e.lines[i+1:]...)
		} else {
			e.lines[i].Quantity = quantity
		}
		return true
	}
	return false
}

// RemoveLine removes the line if present
func (e *Engine) RemoveLine(key string) {
	e.SetLineQuantity(key, 0)
}

// Clear empties the cart. Staging is left alone.
func (e *Engine) Clear() {
	e.lines = nil
}

// ClearStaging discards every staged entry
func (e *Engine) ClearStaging() {
	e.scope = ""
	e.staged = nil
}

// Line returns the cart line with the given key
func (e *Engine) Line(key string) (entity.CartLine, bool) {
	for _, l := range e.lines {
		if l.Key == key {
			return l, true
		}
	}
	return entity.CartLine{}, false
}

// Lines returns a copy of the cart lines in insertion order
func (e *Engine) Lines() []entity.CartLine {
	out := make([]entity.CartLine, len(e.lines))
	copy(out, e.lines)
	return out
}

// IsEmpty reports whether the cart has no lines
func (e *Engine) IsEmpty() bool {
	return len(e.lines) == 0
}

// Total is the sum of unit price x quantity over all lines, computed on every call
func (e *Engine) Total() decimal.Decimal {
	total := decimal.Zero
	for _, l := range e.lines {
		total = total.Add(l.Subtotal())
	}
	return total
}

// ItemCount is the number of units across all lines
func (e *Engine) ItemCount() int {
	n := 0
	for _, l := range e.lines {
		n += l.Quantity
	}
	return n
}

// Cart builds the cart read model
func (e *Engine) Cart() entity.CartSummary {
	return entity.CartSummary{
		Lines:     e.Lines(),
		Total:     e.Total(),
		ItemCount: e.ItemCount(),
	}
}

// Staging builds the staging read model
func (e *Engine) Staging() entity.StagingSummary {
	out := entity.StagingSummary{
		Scope:      e.scope,
		Selections: make([]entity.Selection, len(e.staged)),
		Total:      decimal.Zero,
	}
	copy(out.Selections, e.staged)
	for _, s := range e.staged {
		out.Total = out.Total.Add(s.Subtotal())
	}
	return out
}
