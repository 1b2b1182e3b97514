package knowledge

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/google/mangle/analysis"
	"github.com/google/mangle/ast"
	_ "github.com/google/mangle/builtin"
	"github.com/google/mangle/engine"
	"github.com/google/mangle/factstore"
	"github.com/google/mangle/parse"

	"housing-info/models"
)

// Query names one of the canned knowledge-base queries.
type Query string

const (
	QueryAffordable Query = "affordable"
	QueryLuxury     Query = "luxury"
	QueryPreferred  Query = "preferred"
)

// Queries lists the canned queries in display order.
var Queries = []Query{QueryAffordable, QueryLuxury, QueryPreferred}

var queryPredicates = map[Query]string{
	QueryAffordable: "affordable_house",
	QueryLuxury:     "luxury_house",
	QueryPreferred:  "preferred_area_house",
}

// ParseQuery matches name case-insensitively against Queries.
func ParseQuery(name string) (Query, error) {
	q := Query(strings.ToLower(strings.TrimSpace(name)))
	if _, ok := queryPredicates[q]; !ok {
		return "", fmt.Errorf("unknown query %q (want affordable, luxury or preferred)", name)
	}
	return q, nil
}

// Predicate is the name of the rule that answers q.
func (q Query) Predicate() string {
	return queryPredicates[q]
}

// Results maps each query to the one-based IDs of matching houses, ascending.
type Results map[Query][]int

func datalogBool(v models.YesNo) string {
	if v {
		return "/true"
	}
	return "/false"
}

// RenderDatalog expresses the same facts and rules as RenderProlog in the
// Datalog dialect evaluated by Evaluate.
func RenderDatalog(houses []models.House, opts Options) string {
	var b strings.Builder
	threshold := opts.threshold()

	for i, h := range houses {
		fmt.Fprintf(&b, "house(%d, %d, %d, %d, %d, %d, %s, %s, %s, %s, %s, %d, %s, %s).\n",
			i+1, h.Price, h.Area, h.Bedrooms, h.Bathrooms, h.Stories,
			datalogBool(h.MainRoad), datalogBool(h.GuestRoom), datalogBool(h.Basement),
			datalogBool(h.HotWaterHeating), datalogBool(h.AirConditioning),
			h.Parking, datalogBool(h.PrefArea), strconv.Quote(string(h.FurnishingStatus)))
	}

	fmt.Fprintf(&b, "affordable_house(ID, Price, Area, Bedrooms, Bathrooms, Stories, FurnishStatus) :-\n"+
		"    house(ID, Price, Area, Bedrooms, Bathrooms, Stories, _, _, _, _, _, _, _, FurnishStatus),\n"+
		"    Price < %d.\n", threshold)
	fmt.Fprintf(&b, "luxury_house(ID, Price, Area, Bedrooms, Bathrooms, Stories, FurnishStatus) :-\n"+
		"    house(ID, Price, Area, Bedrooms, Bathrooms, Stories, _, _, _, _, _, _, _, FurnishStatus),\n"+
		"    Price > %d.\n", threshold)
	b.WriteString("preferred_area_house(ID, Price, Area, Bedrooms, Bathrooms, Stories, FurnishStatus) :-\n" +
		"    house(ID, Price, Area, Bedrooms, Bathrooms, Stories, _, _, _, _, _, _, /true, FurnishStatus).\n")

	return b.String()
}

// Evaluate runs the canned queries over houses and returns the IDs each one
// derives. IDs match the fact numbering of RenderProlog.
func Evaluate(houses []models.House, opts Options) (Results, error) {
	results := make(Results, len(Queries))
	if len(houses) == 0 {
		// house/14 would be undefined; every query is trivially empty
		for _, q := range Queries {
			results[q] = []int{}
		}
		return results, nil
	}

	unit, err := parse.Unit(strings.NewReader(RenderDatalog(houses, opts)))
	if err != nil {
		return nil, fmt.Errorf("knowledge: parse program: %w", err)
	}

	programInfo, err := analysis.AnalyzeOneUnit(unit, nil)
	if err != nil {
		return nil, fmt.Errorf("knowledge: analyze program: %w", err)
	}

	store := factstore.NewSimpleInMemoryStore()
	if _, err := engine.EvalProgramWithStats(programInfo, store); err != nil {
		return nil, fmt.Errorf("knowledge: evaluate program: %w", err)
	}

	for _, q := range Queries {
		ids := []int{}
		sym := ast.PredicateSym{Symbol: q.Predicate(), Arity: 7}
		err := store.GetFacts(ast.NewQuery(sym), func(atom ast.Atom) error {
			id, ok := atom.Args[0].(ast.Constant)
			if !ok || id.Type != ast.NumberType {
				return fmt.Errorf("unexpected ID term %v in %s", atom.Args[0], sym.Symbol)
			}
			ids = append(ids, int(id.NumValue))
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("knowledge: query %s: %w", q, err)
		}
		sort.Ints(ids)
		results[q] = ids
	}
	return results, nil
}
