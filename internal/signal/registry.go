package signal

import (
	"fmt"
	"ixbacktest/internal/repository"
	"sort"
	"strings"
)

// DefaultKey is the signal a strategy trades when none is named
const DefaultKey = "rogg"

type Constructor func(priceFieldRepository repository.PriceFieldRepository) Signal

var constructors = map[string]Constructor{
	"rogg":   func(r repository.PriceFieldRepository) Signal { return NewOecdCliRoGG(r) },
	"rog":    func(r repository.PriceFieldRepository) Signal { return NewOecdCliRoG(r) },
	"rocc":   func(r repository.PriceFieldRepository) Signal { return NewOecdCliRoCC(r) },
	"audcad": func(r repository.PriceFieldRepository) Signal { return AudCadMom{PriceFieldRepository: r} },
	"isc":    func(r repository.PriceFieldRepository) Signal { return NewISC(r) },
}

// ParseKey normalizes a signal key. Empty means DefaultKey.
func ParseKey(key string) (string, error) {
	key = strings.ToLower(strings.TrimSpace(key))
	if key == "" {
		return DefaultKey, nil
	}
	if _, ok := constructors[key]; !ok {
		return "", fmt.Errorf("unknown signal %q, expected one of %s", key, strings.Join(Keys(), ", "))
	}
	return key, nil
}

func Keys() []string {
	out := make([]string, 0, len(constructors))
	for k := range constructors {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// New builds the signal registered under key
func New(key string, priceFieldRepository repository.PriceFieldRepository) (Signal, error) {
	key, err := ParseKey(key)
	if err != nil {
		return nil, err
	}
	return constructors[key](priceFieldRepository), nil
}
