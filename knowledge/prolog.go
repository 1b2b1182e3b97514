// Package knowledge renders the housing dataset as a logic-programming fact
// base and evaluates its canned queries.
package knowledge

import (
	"fmt"
	"strings"

	"housing-info/models"
)

// DefaultPriceThreshold separates affordable from luxury houses.
const DefaultPriceThreshold = 1000000

// Options controls the generated rules.
type Options struct {
	PriceThreshold int64
}

func (o Options) threshold() int64 {
	if o.PriceThreshold <= 0 {
		return DefaultPriceThreshold
	}
	return o.PriceThreshold
}

func prologBool(v models.YesNo) string {
	if v {
		return "true"
	}
	return "false"
}

// PrologFact renders one house/14 fact. id is the one-based record position.
func PrologFact(id int, h models.House) string {
	return fmt.Sprintf("house(%d, %d, %d, %d, %d, %d, %s, %s, %s, %s, %s, %d, %s, '%s').",
		id, h.Price, h.Area, h.Bedrooms, h.Bathrooms, h.Stories,
		prologBool(h.MainRoad), prologBool(h.GuestRoom), prologBool(h.Basement),
		prologBool(h.HotWaterHeating), prologBool(h.AirConditioning),
		h.Parking, prologBool(h.PrefArea), h.FurnishingStatus)
}

// RenderProlog builds the complete knowledge base: facts in dataset order
// followed by helper and query predicates.
func RenderProlog(houses []models.House, opts Options) string {
	var b strings.Builder
	threshold := opts.threshold()

	b.WriteString("% Housing Knowledge Base\n\n")
	b.WriteString("% house(ID, Price, Area, Bedrooms, Bathrooms, Stories, MainRoad, GuestRoom, \n")
	b.WriteString("%       Basement, HotWater, AirConditioning, Parking, PrefArea, FurnishStatus).\n\n")

	for i, h := range houses {
		b.WriteString(PrologFact(i+1, h))
		b.WriteByte('\n')
	}

	b.WriteString("\n% Helper predicates\n")
	b.WriteString("price_less_than(Price, Threshold) :- number(Price), number(Threshold), Price < Threshold.\n")
	b.WriteString("price_greater_than(Price, Threshold) :- number(Price), number(Threshold), Price > Threshold.\n\n")

	b.WriteString("% Query predicates\n")
	fmt.Fprintf(&b, "affordable_house(ID, Price, Area, Bedrooms, Bathrooms, Stories, FurnishStatus) :-\n"+
		"    house(ID, Price, Area, Bedrooms, Bathrooms, Stories, _, _, _, _, _, _, _, FurnishStatus),\n"+
		"    price_less_than(Price, %d).\n\n", threshold)
	fmt.Fprintf(&b, "luxury_house(ID, Price, Area, Bedrooms, Bathrooms, Stories, FurnishStatus) :-\n"+
		"    house(ID, Price, Area, Bedrooms, Bathrooms, Stories, _, _, _, _, _, _, _, FurnishStatus),\n"+
		"    price_greater_than(Price, %d).\n\n", threshold)
	b.WriteString("preferred_area_house(ID, Price, Area, Bedrooms, Bathrooms, Stories, FurnishStatus) :-\n" +
		"    house(ID, Price, Area, Bedrooms, Bathrooms, Stories, _, _, _, _, _, _, true, FurnishStatus).\n")

	return b.String()
}
