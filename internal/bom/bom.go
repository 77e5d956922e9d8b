package bom

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"solarbom/internal/classify"
	"solarbom/internal/grid"
	"solarbom/internal/pricing"
)

// BOM is a complete priced bill of materials.
type BOM struct {
	PanelType string          `json:"panelType"`
	Strings   int             `json:"strings"`
	Rules     Rules           `json:"rules"`
	Stats     grid.Stats      `json:"stats"`
	Counts    classify.Counts `json:"counts"`
	Lines     []Line          `json:"lines"`
	Total     pricing.Money   `json:"total"`
	QuoteID   string          `json:"quoteId"`
}

// Line is one component of a BOM.
type Line struct {
	Component   pricing.Component `json:"-"`
	Name        string            `json:"component"`
	Quantity    int               `json:"quantity"`
	Price       pricing.Money     `json:"price"`
	Total       pricing.Money     `json:"total"`
	Explanation string            `json:"explanation"`
}

// Explain formats the audit string "{qty} x £{price} = £{total} ({derivation})".
func Explain(qty int, price, total pricing.Money, derivation string) string {
	return fmt.Sprintf("%d x %s = %s (%s)", qty, price.Pound(), total.Pound(), derivation)
}

func (b *BOM) add(c pricing.Component, qty int, price pricing.Money, derivation string) {
	total := price.Mul(qty)
	b.Lines = append(b.Lines, Line{
		Component:   c,
		Name:        c.Name(),
		Quantity:    qty,
		Price:       price,
		Total:       total,
		Explanation: Explain(qty, price, total, derivation),
	})
	b.Total = b.Total.Add(total)
}

// Get returns the line for c.
func (b *BOM) Get(c pricing.Component) (Line, bool) {
	for _, l := range b.Lines {
		if l.Component == c {
			return l, true
		}
	}
	return Line{}, false
}

// Quantity returns the quantity of c, or 0 when absent.
func (b *BOM) Quantity(c pricing.Component) int {
	l, _ := b.Get(c)
	return l.Quantity
}

// NonZero returns the lines with a positive quantity, in line order.
func (b *BOM) NonZero() []Line {
	out := make([]Line, 0, len(b.Lines))
	for _, l := range b.Lines {
		if l.Quantity > 0 {
			out = append(out, l)
		}
	}
	return out
}

// quoteNamespace scopes quote IDs so they never collide with other v5 UUIDs.
var quoteNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://solarbom/quote"))

// quoteID fingerprints the inputs and priced result of a calculation as a
// name-based UUID, so identical inputs always produce the same ID.
func quoteID(g grid.Grid, b *BOM) string {
	var sb strings.Builder
	sb.WriteString(g.String())
	sb.WriteString("\npanel=")
	sb.WriteString(b.PanelType)
	sb.WriteString("\nstrings=")
	sb.WriteString(strconv.Itoa(b.Strings))
	sb.WriteString("\nrules=")
	sb.WriteString(string(b.Rules.SealRoll) + "," + string(b.Rules.CableTies) + "," + string(b.Rules.DeepLead))
	for _, l := range b.Lines {
		sb.WriteString("\n")
		sb.WriteString(l.Name)
		sb.WriteString("=")
		sb.WriteString(strconv.Itoa(l.Quantity))
		sb.WriteString("@")
		sb.WriteString(l.Price.String())
	}
	return uuid.NewSHA1(quoteNamespace, []byte(sb.String())).String()
}
