package domain

import (
	"fmt"
	"strings"
)

// Collision is an identifier claimed by more than one catalog entry
type Collision struct {
	Identifier string
	Names      []string
}

func (c Collision) String() string {
	quoted := make([]string, len(c.Names))
	for i, name := range c.Names {
		quoted[i] = fmt.Sprintf("%q", name)
	}
	return fmt.Sprintf("%s <- %s", c.Identifier, strings.Join(quoted, ", "))
}

// FindCollisions returns the identifiers shared by several symbols,
// ordered by the first symbol that claimed them
func FindCollisions(symbols []AssetSymbol) []Collision {
	names := make(map[string][]string, len(symbols))
	var order []string

	for _, sym := range symbols {
		if _, ok := names[sym.Identifier]; !ok {
			order = append(order, sym.Identifier)
		}
		names[sym.Identifier] = append(names[sym.Identifier], sym.SourceName)
	}

	var collisions []Collision
	for _, id := range order {
		if len(names[id]) > 1 {
			collisions = append(collisions, Collision{Identifier: id, Names: names[id]})
		}
	}
	return collisions
}

// CheckUnique returns a *CollisionError when identifiers are not unique
func CheckUnique(symbols []AssetSymbol) error {
	if collisions := FindCollisions(symbols); len(collisions) > 0 {
		return &CollisionError{Collisions: collisions}
	}
	return nil
}
