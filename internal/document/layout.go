package document

import (
	"fmt"
	"slices"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/daybillhq/daybill/internal/client"
	"github.com/daybillhq/daybill/internal/invoice"
	"github.com/daybillhq/daybill/internal/project"
	"github.com/daybillhq/daybill/internal/workday"
)

const dateLayout = "January 2, 2006"

const defaultNotes = "Thank you for your business. Payment is due by the date above."

// Business is the issuer identity printed at the top of every invoice.
// It is injected configuration, never ambient state.
type Business struct {
	Name    string
	Address string
	Email   string
	Phone   string
}

// Payment is the static payment-instruction block at the bottom of every
// invoice.
type Payment struct {
	BankName      string
	AccountName   string
	AccountNumber string
}

type LabelValue struct {
	Label string
	Value string
}

type LineItem struct {
	Description string
	Rate        string
	Quantity    string
	Amount      string
}

// Layout is the full content of an invoice document as ordered strings,
// independent of any PDF backend. Identical inputs produce an identical
// Layout, which is what the rendering tests assert against.
type Layout struct {
	Title        string
	Number       string
	Issuer       []string
	BillTo       []string
	Meta         []LabelValue
	Items        []LineItem
	Subtotal     string
	Tax          string
	Total        string
	Notes        string
	PaymentLines []string
}

var printer = message.NewPrinter(language.English)

// FormatAmount renders minor currency units as a display string with a
// currency symbol, thousands separators and two decimals. The split into
// major and fractional parts happens here and nowhere earlier: all sums
// stay in integer minor units.
func FormatAmount(minor int64) string {
	return printer.Sprintf("$%d.%02d", minor/100, minor%100)
}

// BuildLayout lays an invoice out as pure data. The workdays are the days
// covered by the invoice; they are re-sorted ascending by date so the item
// order never depends on storage order.
func BuildLayout(inv *invoice.Invoice, cl *client.Client, pr *project.Project, days []*workday.Workday, business Business, payment Payment) Layout {
	l := Layout{
		Title:  "INVOICE",
		Number: inv.Number,
	}

	l.Issuer = append(l.Issuer, business.Name)

	for _, line := range []string{business.Address, business.Email, business.Phone} {
		if line != "" {
			l.Issuer = append(l.Issuer, line)
		}
	}

	l.BillTo = append(l.BillTo, cl.CompanyName)

	if cl.ContactName != "" {
		l.BillTo = append(l.BillTo, cl.ContactName)
	}

	if cl.Address != "" {
		l.BillTo = append(l.BillTo, cl.Address)
	}

	l.BillTo = append(l.BillTo, cl.BillingEmail)

	l.Meta = []LabelValue{
		{Label: "Invoice Date", Value: inv.InvoiceDate.Format(dateLayout)},
		{Label: "Due Date", Value: inv.DueDate.Format(dateLayout)},
		{Label: "Project", Value: pr.Name},
		{Label: "Amount Due", Value: FormatAmount(inv.Amount)},
	}

	switch pr.Billing {
	case project.BillingFixedPrice:
		l.Items = []LineItem{{
			Description: fmt.Sprintf("%s - Fixed Price", pr.Name),
			Rate:        FormatAmount(pr.Rate),
			Quantity:    "1",
			Amount:      FormatAmount(pr.Rate),
		}}

	case project.BillingDailyRate:
		sorted := slices.Clone(days)
		slices.SortFunc(sorted, func(a, b *workday.Workday) int {
			return a.Day.Compare(b.Day)
		})

		for _, d := range sorted {
			l.Items = append(l.Items, LineItem{
				Description: fmt.Sprintf("Daily Rate - %s", d.Day.Format(dateLayout)),
				Rate:        FormatAmount(pr.Rate),
				Quantity:    "1",
				Amount:      FormatAmount(pr.Rate),
			})
		}
	}

	l.Subtotal = FormatAmount(inv.Amount)
	l.Tax = FormatAmount(0)
	l.Total = FormatAmount(inv.Amount)

	l.Notes = inv.Notes
	if l.Notes == "" {
		l.Notes = defaultNotes
	}

	if payment.BankName != "" {
		l.PaymentLines = append(l.PaymentLines, fmt.Sprintf("Bank: %s", payment.BankName))
	}

	if payment.AccountName != "" {
		l.PaymentLines = append(l.PaymentLines, fmt.Sprintf("Account Name: %s", payment.AccountName))
	}

	if payment.AccountNumber != "" {
		l.PaymentLines = append(l.PaymentLines, fmt.Sprintf("Account Number: %s", payment.AccountNumber))
	}

	return l
}
