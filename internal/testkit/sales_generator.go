// Package testkit generates deterministic sales data for tests, demos and the CLI sample command.
package testkit

import (
	"fmt"
	"math"
	"math/rand"
	"strconv"
	"time"

	"gobi/domain/dataset"
)

// SalesColumns is the header row of generated sales data
var SalesColumns = []string{
	"order_id", "order_date", "region", "product", "channel",
	"units", "unit_price", "discount", "revenue",
}

// SalesGeneratorConfig configures the sales data generator
type SalesGeneratorConfig struct {
	Rows        int       `json:"rows"`
	StartDate   time.Time `json:"start_date"`
	EndDate     time.Time `json:"end_date"`
	MissingRate float64   `json:"missing_rate"`
	OutlierRate float64   `json:"outlier_rate"`
	Seed        int64     `json:"seed"`
}

// DefaultSalesConfig returns sensible defaults for sales data generation
func DefaultSalesConfig() SalesGeneratorConfig {
	return SalesGeneratorConfig{
		Rows:        500,
		StartDate:   time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		EndDate:     time.Date(2024, 3, 31, 23, 59, 59, 0, time.UTC),
		MissingRate: 0.03,
		OutlierRate: 0.01,
		Seed:        42,
	}
}

// SalesDataGenerator generates order lines with regional and seasonal structure
type SalesDataGenerator struct {
	config SalesGeneratorConfig
	rng    *rand.Rand
}

// NewSalesDataGenerator creates a new sales data generator
func NewSalesDataGenerator(config SalesGeneratorConfig) *SalesDataGenerator {
	return &SalesDataGenerator{
		config: config,
		rng:    rand.New(rand.NewSource(config.Seed)),
	}
}

var (
	regions       = []string{"north", "south", "east", "west"}
	regionWeights = []float64{0.3, 0.2, 0.35, 0.15}
	regionDemand  = map[string]float64{"north": 1.0, "south": 0.8, "east": 1.3, "west": 0.9}

	channels       = []string{"online", "retail", "partner"}
	channelWeights = []float64{0.55, 0.35, 0.1}

	products = map[string]float64{
		"widget":    12.5,
		"gadget":    49.0,
		"gizmo":     7.25,
		"doohickey": 120.0,
	}
	productNames = []string{"widget", "gadget", "gizmo", "doohickey"}
)

// Records generates the header plus one row per order line
func (g *SalesDataGenerator) Records() [][]string {
	records := make([][]string, 0, g.config.Rows+1)
	records = append(records, append([]string(nil), SalesColumns...))

	for i := 0; i < g.config.Rows; i++ {
		orderTime := g.randomTimeInRange(g.config.StartDate, g.config.EndDate)
		region := g.weighted(regions, regionWeights)
		product := productNames[g.rng.Intn(len(productNames))]
		channel := g.weighted(channels, channelWeights)

		// Demand picks up towards the end of the window
		season := 1.0 + 0.5*progress(g.config.StartDate, g.config.EndDate, orderTime)
		mean := 4 * regionDemand[region] * season
		units := int(math.Max(1, math.Round(mean+g.rng.NormFloat64()*1.5)))

		price := products[product]
		discount := 0.0
		if channel == "partner" {
			discount = 0.1
		} else if g.rng.Float64() < 0.2 {
			discount = 0.05
		}
		revenue := float64(units) * price * (1 - discount)
		if g.rng.Float64() < g.config.OutlierRate {
			revenue *= 25
		}

		discountCell := money(discount)
		if g.rng.Float64() < g.config.MissingRate {
			discountCell = ""
		}
		regionCell := region
		if g.rng.Float64() < g.config.MissingRate {
			regionCell = ""
		}

		records = append(records, []string{
			fmt.Sprintf("ORD-%05d", i+1),
			orderTime.Format("2006-01-02"),
			regionCell,
			product,
			channel,
			strconv.Itoa(units),
			money(price),
			discountCell,
			money(revenue),
		})
	}
	return records
}

// Dataset generates the records and loads them as a dataset
func (g *SalesDataGenerator) Dataset(name string) (*dataset.Dataset, error) {
	return dataset.FromRecords(name, g.Records())
}

// SalesDataset is a convenience wrapper around the default generator
func SalesDataset() (*dataset.Dataset, error) {
	return NewSalesDataGenerator(DefaultSalesConfig()).Dataset("sales.csv")
}

func (g *SalesDataGenerator) randomTimeInRange(start, end time.Time) time.Time {
	if start.After(end) {
		start, end = end, start
	}
	duration := end.Sub(start)
	if duration <= 0 {
		return start
	}
	return start.Add(time.Duration(g.rng.Int63n(int64(duration))))
}

func (g *SalesDataGenerator) weighted(values []string, weights []float64) string {
	r := g.rng.Float64()
	cumulative := 0.0
	for i, weight := range weights {
		cumulative += weight
		if r <= cumulative {
			return values[i]
		}
	}
	return values[0]
}

func progress(start, end, t time.Time) float64 {
	total := end.Sub(start)
	if total <= 0 {
		return 0
	}
	return float64(t.Sub(start)) / float64(total)
}

// money always carries two decimals so the column is detected as float
func money(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}
