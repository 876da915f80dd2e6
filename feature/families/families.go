package families

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"catalog-sync/core/reconcile"
	"catalog-sync/feature/menu"
	"catalog-sync/feature/openplay"
	"catalog-sync/feature/payforplay"
	"catalog-sync/feature/store"
)

// ErrUnknownFamily is returned by Lookup for an unregistered name.
var ErrUnknownFamily = errors.New("unknown catalog family")

// All returns a fresh adapter for every family, in a stable order.
func All() []reconcile.Adapter {
	return []reconcile.Adapter{
		menu.NewAdapter(),
		openplay.NewAdapter(),
		payforplay.NewAdapter(),
		store.NewAdapter(),
	}
}

// Names returns the sorted family names.
func Names() []string {
	var names []string
	for _, a := range All() {
		names = append(names, a.Name())
	}
	sort.Strings(names)
	return names
}

// Lookup returns the adapter of the named family.
func Lookup(name string) (reconcile.Adapter, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	for _, a := range All() {
		if a.Name() == key {
			return a, nil
		}
	}
	return nil, fmt.Errorf("%q (expected one of %s): %w", name, strings.Join(Names(), ", "), ErrUnknownFamily)
}
