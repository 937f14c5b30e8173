package catalog

import (
	"fmt"
)

// Collection names one raw collection held by the store.
type Collection string

const (
	Products      Collection = "products"
	Categories    Collection = "categories"
	SkinTypes     Collection = "skin_types"
	ProductImages Collection = "product_images"
)

// Graph declares which collections must be loaded before another can be joined.
// Sibling order is significant: it is the order dependencies are fetched in.
type Graph struct {
	deps map[Collection][]Collection
}

// DefaultGraph is the catalog's dependency graph: products are joined
// against skin types, categories and product images.
func DefaultGraph() Graph {
	return Graph{deps: map[Collection][]Collection{
		Products: {SkinTypes, Categories, ProductImages},
	}}
}

// NewGraph builds a graph from an adjacency list.
func NewGraph(deps map[Collection][]Collection) Graph {
	copied := make(map[Collection][]Collection, len(deps))
	for k, v := range deps {
		copied[k] = append([]Collection(nil), v...)
	}
	return Graph{deps: copied}
}

// DependenciesOf returns the direct dependencies of c in declared order.
func (g Graph) DependenciesOf(c Collection) []Collection {
	return append([]Collection(nil), g.deps[c]...)
}

// Plan returns the fetch order that loads every dependency of root before root itself.
// Each collection appears once. A cycle is an error.
func (g Graph) Plan(root Collection) ([]Collection, error) {
	const (
		unvisited = iota
		visiting
		done
	)
	state := make(map[Collection]int)
	var plan []Collection

	var visit func(c Collection) error
	visit = func(c Collection) error {
		switch state[c] {
		case done:
			return nil
		case visiting:
			return fmt.Errorf("catalog: dependency cycle through %q", c)
		}
		state[c] = visiting
		for _, dep := range g.deps[c] {
			if err := visit(dep); err != nil {
				return err
			}
		}
		state[c] = done
		plan = append(plan, c)
		return nil
	}

	if err := visit(root); err != nil {
		return nil, err
	}
	return plan, nil
}
