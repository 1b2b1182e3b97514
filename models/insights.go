package models

// RankedHouse is a house together with its one-based position in the dataset.
type RankedHouse struct {
	ID    int
	House House
}

// InsightReport holds summary statistics over the dataset.
type InsightReport struct {
	TotalHouses     int
	PreferredArea   int
	AveragePrice    int64
	MinPrice        int64
	MaxPrice        int64
	MostExpensive   *RankedHouse
	Largest         []RankedHouse
	HousesByBedroom map[int64]int
}
