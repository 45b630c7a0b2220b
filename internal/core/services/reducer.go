package services

import (
	"sort"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/custodia-labs/placemap/internal/core/domain"
)

// accumulator is the state threaded through the merge fold.
type accumulator struct {
	order  []domain.PlaceIdentity
	places map[domain.PlaceIdentity]domain.Place
	errors []domain.RowError
}

// Reduce folds row outcomes, in the given order, into the terminal artifact.
// The first row for an identity fixes the place's location; later rows
// append their reviews and union their types. Failed rows only add errors.
// The input outcomes are not modified.
func Reduce(outcomes []domain.RowOutcome) *domain.Dataset {
	acc := accumulator{places: make(map[domain.PlaceIdentity]domain.Place)}
	for _, o := range outcomes {
		acc = mergeStep(acc, o)
	}

	ds := domain.EmptyDataset()
	for _, id := range acc.order {
		ds.Places = append(ds.Places, acc.places[id])
	}
	ds.Errors = append(ds.Errors, acc.errors...)
	ds.Uniques = ComputeUniques(ds.Places)
	return ds
}

// mergeStep applies one outcome to the accumulator.
func mergeStep(acc accumulator, o domain.RowOutcome) accumulator {
	if o.Err != nil {
		acc.errors = append(acc.errors, *o.Err)
		return acc
	}
	if o.Place == nil {
		return acc
	}

	id := o.Identity
	if id == "" {
		id = o.Place.Identity()
	}

	existing, ok := acc.places[id]
	if !ok {
		acc.places[id] = domain.Place{
			Types:    unionTypes(nil, o.Place.Types),
			Location: o.Place.Location,
			Reviews:  append([]domain.Review{}, o.Place.Reviews...),
		}
		acc.order = append(acc.order, id)
		return acc
	}

	existing.Reviews = append(existing.Reviews, o.Place.Reviews...)
	existing.Types = unionTypes(existing.Types, o.Place.Types)
	acc.places[id] = existing
	return acc
}

// unionTypes appends the values of add missing from base, keeping first-seen order.
func unionTypes(base, add []string) []string {
	out := make([]string, 0, len(base)+len(add))
	seen := make(map[string]bool, len(base)+len(add))
	for _, list := range [][]string{base, add} {
		for _, t := range list {
			if seen[t] {
				continue
			}
			seen[t] = true
			out = append(out, t)
		}
	}
	return out
}

// ComputeUniques derives the distinct types, users and cities of a place set.
// Values are sorted with Portuguese collation so the result depends only on
// the set of values, never on place order.
func ComputeUniques(places []domain.Place) domain.Uniques {
	types := make(map[string]struct{})
	users := make(map[string]struct{})
	cities := make(map[string]struct{})

	for _, p := range places {
		for _, t := range p.Types {
			addNonEmpty(types, t)
		}
		for _, r := range p.Reviews {
			addNonEmpty(users, r.User)
		}
		addNonEmpty(cities, p.Location.City)
	}

	return domain.Uniques{
		Types:  sortedValues(types),
		Users:  sortedValues(users),
		Cities: sortedValues(cities),
	}
}

func addNonEmpty(set map[string]struct{}, v string) {
	if v != "" {
		set[v] = struct{}{}
	}
}

// sortedValues returns the set's values in collation order, breaking
// collation ties by byte order so the ordering is total.
func sortedValues(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for v := range set {
		out = append(out, v)
	}

	c := collate.New(language.BrazilianPortuguese)
	sort.Slice(out, func(i, j int) bool {
		if r := c.CompareString(out[i], out[j]); r != 0 {
			return r < 0
		}
		return out[i] < out[j]
	})
	return out
}
