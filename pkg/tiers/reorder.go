package tiers

import (
	"errors"
	"fmt"
)

// ErrTierNotFound indicates a requested tier is absent from the source document.
var ErrTierNotFound = errors.New("tiers: tier not found")

// TierNotFoundError names the missing tier.
type TierNotFoundError struct {
	Name string
	// Available lists the tiers the document does have.
	Available []string
}

// Error returns the missing name and the names that exist.
func (e *TierNotFoundError) Error() string {
	return fmt.Sprintf("tiers: tier %q not found (document has %s)", e.Name, FormatOrder(e.Available))
}

// Is reports whether target is ErrTierNotFound.
func (e *TierNotFoundError) Is(target error) bool {
	return target == ErrTierNotFound
}

// ListTierNames returns doc's tier names in native file order.
func ListTierNames(doc Document) []string {
	return doc.TierNames()
}

// Reorder builds a new document holding doc's tiers in the given order.
//
// For each name the first tier with that name is used; a name listed twice
// appends that tier twice. Tiers not named in order are dropped. If any name
// is missing, Reorder returns a *TierNotFoundError and no document.
func Reorder(doc Document, order []string) (Document, error) {
	picked := make([]Tier, 0, len(order))
	for _, name := range order {
		t, ok := doc.TierByName(name)
		if !ok {
			return nil, &TierNotFoundError{Name: name, Available: doc.TierNames()}
		}
		picked = append(picked, t)
	}

	out := doc.NewEmpty()
	for _, t := range picked {
		if err := out.AppendTier(t); err != nil {
			return nil, err
		}
	}
	return out, nil
}
