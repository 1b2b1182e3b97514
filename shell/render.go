package shell

import (
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"housing-info/knowledge"
	"housing-info/models"
	"housing-info/services"
)

// Renderer writes operation results to the console. The interactive shell
// and the one-shot subcommands share it.
type Renderer struct {
	out    io.Writer
	format *services.Formatter
	color  bool

	title  lipgloss.Style
	header lipgloss.Style
	cell   lipgloss.Style
	warn   lipgloss.Style
	good   lipgloss.Style
}

// NewRenderer creates a Renderer. color enables ANSI styling.
func NewRenderer(out io.Writer, format *services.Formatter, color bool) *Renderer {
	r := lipgloss.NewRenderer(out)
	rd := &Renderer{
		out:    out,
		format: format,
		color:  color,
		title:  r.NewStyle(),
		header: r.NewStyle().Padding(0, 1),
		cell:   r.NewStyle().Padding(0, 1),
		warn:   r.NewStyle(),
		good:   r.NewStyle(),
	}
	if color {
		rd.title = rd.title.Bold(true).Foreground(lipgloss.Color("5"))
		rd.header = rd.header.Bold(true).Foreground(lipgloss.Color("3"))
		rd.warn = rd.warn.Foreground(lipgloss.Color("1"))
		rd.good = rd.good.Foreground(lipgloss.Color("2"))
	}
	return rd
}

func (r *Renderer) Println(a ...any) {
	fmt.Fprintln(r.out, a...)
}

func (r *Renderer) Printf(format string, a ...any) {
	fmt.Fprintf(r.out, format, a...)
}

// Title prints a section banner such as "=== Sort Housing Information ===".
func (r *Renderer) Title(text string) {
	fmt.Fprintf(r.out, "\n%s\n\n", r.title.Render("=== "+text+" ==="))
}

// Warn prints a user-facing problem.
func (r *Renderer) Warn(format string, a ...any) {
	fmt.Fprintln(r.out, r.warn.Render(fmt.Sprintf(format, a...)))
}

// Table prints rows under headers with a normal border.
func (r *Renderer) Table(headers []string, rows [][]string) {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return r.header
			}
			return r.cell
		})
	fmt.Fprintln(r.out, t.Render())
}

// Houses prints the full listing table.
func (r *Renderer) Houses(houses []models.House) {
	r.Table(services.HouseHeaders, r.format.HouseRows(houses))
}

// Listing prints the "display all" view.
func (r *Renderer) Listing(houses []models.House) {
	r.Printf("There are currently %d houses listed.\n", len(houses))
	r.Houses(houses)
}

// SearchResult prints a price-range search outcome.
func (r *Renderer) SearchResult(res services.SearchResult) {
	if len(res.Houses) == 0 {
		r.Println("\nNo houses found in this price range.")
		return
	}
	r.Printf("\nFound %d houses in price range %s - %s:\n",
		len(res.Houses), r.format.Bound(res.Range.Min), r.format.Bound(res.Range.Max))
	r.Houses(res.Houses)
}

// Furnishing prints the furnishing-status breakdown.
func (r *Renderer) Furnishing(report models.FurnishingReport) {
	const rule = "------------------------"
	lines := services.FurnishingLines(report)

	r.Println(r.header.UnsetPadding().Render("Furnishing Status Counts:"))
	r.Println(rule)
	for _, line := range lines[:len(lines)-1] {
		r.Println(line)
	}
	r.Println(rule)
	r.Println(lines[len(lines)-1])
	if report.Empty() {
		r.Warn("No housing data available.")
	}
}

// Sorted prints houses ordered by key.
func (r *Renderer) Sorted(key services.SortKey, houses []models.House) {
	r.Printf("\nHouses sorted by %s (low to high):\n", key)
	r.Houses(houses)
}

func percentLabel(p float64) string {
	return strconv.FormatFloat(p, 'f', -1, 64) + "%"
}

// Markup prints marked-up prices followed by the summary.
func (r *Renderer) Markup(res services.MarkupResult) {
	r.Printf("\nHousing Prices with %s Markup:\n", percentLabel(res.Percentage))
	r.Println("--------------------------------")
	r.Table(services.MarkupHeaders, r.format.MarkupRows(res.Houses))

	r.Println("\nSummary:")
	r.Println("--------")
	r.Printf("Total Houses: %d\n", len(res.Houses))
	r.Printf("Total Markup: %s\n", r.format.Currency(res.TotalMarkup))
}

// Export prints the outcome of a knowledge-base export.
func (r *Renderer) Export(res services.ExportResult) {
	r.Println(r.good.Render("Successfully generated Prolog facts!"))
	r.Printf("Knowledge base written to %s (%d facts)\n", res.Path, res.Facts)
	if res.QueryErr != nil {
		r.Warn("Queries could not be evaluated: %v", res.QueryErr)
		return
	}
	for _, q := range knowledge.Queries {
		r.Printf("  %-22s %d matches\n", q.Predicate()+":", len(res.Matches[q]))
	}
}

// QueryMatches prints the houses selected by a knowledge-base query.
func (r *Renderer) QueryMatches(q knowledge.Query, matches []services.QueryMatch) {
	if len(matches) == 0 {
		r.Printf("\nNo houses satisfy %s.\n", q.Predicate())
		return
	}
	r.Printf("\n%d houses satisfy %s:\n", len(matches), q.Predicate())

	rows := make([][]string, 0, len(matches))
	for _, m := range matches {
		row := r.format.HouseRow(m.ID-1, m.House)
		rows = append(rows, row)
	}
	r.Table(services.HouseHeaders, rows)
}

// Insights prints the dataset summary.
func (r *Renderer) Insights(rep *models.InsightReport) {
	thin := strings.Repeat("-", 40)

	r.Println(r.header.UnsetPadding().Render("Overview"))
	r.Println(thin)
	r.Printf("Total houses          : %d\n", rep.TotalHouses)
	r.Printf("In a preferred area   : %d\n", rep.PreferredArea)
	if rep.TotalHouses == 0 {
		r.Warn("No housing data available.")
		return
	}

	r.Println()
	r.Println(r.header.UnsetPadding().Render("Price Statistics"))
	r.Println(thin)
	r.Printf("Average price : %s\n", r.format.Currency(rep.AveragePrice))
	r.Printf("Minimum price : %s\n", r.format.Currency(rep.MinPrice))
	r.Printf("Maximum price : %s (house #%d)\n", r.format.Currency(rep.MaxPrice), rep.MostExpensive.ID)

	r.Println()
	r.Println(r.header.UnsetPadding().Render("Largest Houses"))
	rows := make([][]string, 0, len(rep.Largest))
	for _, h := range rep.Largest {
		rows = append(rows, r.format.HouseRow(h.ID-1, h.House))
	}
	r.Table(services.HouseHeaders, rows)

	r.Println()
	r.Println(r.header.UnsetPadding().Render("Houses by Bedrooms"))
	r.Println(thin)
	bedrooms := make([]int64, 0, len(rep.HousesByBedroom))
	for n := range rep.HousesByBedroom {
		bedrooms = append(bedrooms, n)
	}
	sort.Slice(bedrooms, func(i, j int) bool { return bedrooms[i] < bedrooms[j] })
	for _, n := range bedrooms {
		count := rep.HousesByBedroom[n]
		r.Printf("%2d bedrooms  %s (%d)\n", n, r.good.Render(strings.Repeat("#", count)), count)
	}
}
