// Package whatsapp builds wa.me deep links for catalog inquiries. There
// is no messaging client here; the "integration" is a URL the storefront
// opens on the customer's phone.
package whatsapp

import (
	"fmt"
	"net/url"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// pricePrinter groups thousands with commas, matching the storefront
// price rendering (22000 -> "22,000").
var pricePrinter = message.NewPrinter(language.English)

// LinkBuilder generates https://wa.me/<number>?text=<message> links for
// a single configured contact number.
type LinkBuilder struct {
	phone string
}

// NewLinkBuilder keeps the number as configured; the leading "+" is
// stripped only at link-build time since wa.me wants bare digits.
func NewLinkBuilder(phone string) *LinkBuilder {
	return &LinkBuilder{phone: strings.TrimSpace(phone)}
}

// Phone returns the configured contact number, "+" included.
func (b *LinkBuilder) Phone() string {
	return b.phone
}

// ProductLink builds an inquiry link for a product.
func (b *LinkBuilder) ProductLink(name string, price float64) string {
	msg := fmt.Sprintf("Hola! Me interesa el producto: *%s*\nPrecio: %s", name, FormatPrice(price))
	return b.link(msg)
}

// TreatmentLink builds an inquiry link for a treatment.
func (b *LinkBuilder) TreatmentLink(name string, price float64) string {
	msg := fmt.Sprintf("Hola! Me interesa el tratamiento: *%s*\nPrecio: %s", name, FormatPrice(price))
	return b.link(msg)
}

// FormatPrice renders a colón amount with grouped thousands and no
// fraction digits, e.g. "₡22,000".
func FormatPrice(price float64) string {
	return pricePrinter.Sprintf("₡%v", number.Decimal(price, number.MaxFractionDigits(0)))
}

func (b *LinkBuilder) link(text string) string {
	q := url.Values{}
	q.Set("text", text)
	return fmt.Sprintf("https://wa.me/%s?%s", strings.TrimPrefix(b.phone, "+"), q.Encode())
}
