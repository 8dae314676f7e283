package document

import (
	"fmt"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/daybillhq/daybill/internal/client"
	"github.com/daybillhq/daybill/internal/invoice"
	"github.com/daybillhq/daybill/internal/project"
	"github.com/daybillhq/daybill/internal/workday"
)

// Renderer turns invoice data into PDF bytes. All layout decisions live in
// BuildLayout; this type only encodes a Layout with maroto.
type Renderer struct {
	business Business
	payment  Payment
}

func NewRenderer(business Business, payment Payment) *Renderer {
	return &Renderer{business: business, payment: payment}
}

func (r *Renderer) Render(inv *invoice.Invoice, cl *client.Client, pr *project.Project, days []*workday.Workday) ([]byte, error) {
	layout := BuildLayout(inv, cl, pr, days, r.business, r.payment)

	m := maroto.New(config.NewBuilder().Build())

	// Header: issuer identity left, title and number right.
	m.AddRow(10,
		col.New(8).Add(
			text.New(layout.Issuer[0], props.Text{Size: 16, Style: fontstyle.Bold}),
		),
		col.New(4).Add(
			text.New(layout.Title, props.Text{Size: 20, Style: fontstyle.Bold, Align: align.Right}),
		),
	)

	m.AddRow(6,
		col.New(8),
		col.New(4).Add(
			text.New(layout.Number, props.Text{Size: 10, Style: fontstyle.Bold, Align: align.Right}),
		),
	)

	for _, line := range layout.Issuer[1:] {
		m.AddRow(5,
			col.New(12).Add(text.New(line, props.Text{Size: 9})),
		)
	}

	m.AddRow(8)

	m.AddRow(8,
		col.New(12).Add(
			text.New("Bill To", props.Text{Size: 11, Style: fontstyle.Bold}),
		),
	)

	for _, line := range layout.BillTo {
		m.AddRow(5,
			col.New(12).Add(text.New(line, props.Text{Size: 9})),
		)
	}

	m.AddRow(8)

	for _, lv := range layout.Meta {
		m.AddRow(5,
			col.New(3).Add(
				text.New(lv.Label, props.Text{Size: 9, Style: fontstyle.Bold}),
			),
			col.New(9).Add(
				text.New(lv.Value, props.Text{Size: 9}),
			),
		)
	}

	m.AddRow(8)

	m.AddRow(8,
		col.New(6).Add(text.New("Description", props.Text{Size: 9, Style: fontstyle.Bold})),
		col.New(2).Add(text.New("Rate", props.Text{Size: 9, Style: fontstyle.Bold, Align: align.Right})),
		col.New(1).Add(text.New("Qty", props.Text{Size: 9, Style: fontstyle.Bold, Align: align.Right})),
		col.New(3).Add(text.New("Amount", props.Text{Size: 9, Style: fontstyle.Bold, Align: align.Right})),
	)

	for _, item := range layout.Items {
		m.AddRow(6,
			col.New(6).Add(text.New(item.Description, props.Text{Size: 8})),
			col.New(2).Add(text.New(item.Rate, props.Text{Size: 8, Align: align.Right})),
			col.New(1).Add(text.New(item.Quantity, props.Text{Size: 8, Align: align.Right})),
			col.New(3).Add(text.New(item.Amount, props.Text{Size: 8, Align: align.Right})),
		)
	}

	m.AddRow(8)

	totals := []struct {
		label string
		value string
		style fontstyle.Type
	}{
		{"Subtotal:", layout.Subtotal, fontstyle.Normal},
		{"Tax (0%):", layout.Tax, fontstyle.Normal},
		{"Total:", layout.Total, fontstyle.Bold},
	}

	for _, t := range totals {
		m.AddRow(6,
			col.New(7),
			col.New(2).Add(
				text.New(t.label, props.Text{Size: 9, Style: fontstyle.Bold, Align: align.Right}),
			),
			col.New(3).Add(
				text.New(t.value, props.Text{Size: 9, Style: t.style, Align: align.Right}),
			),
		)
	}

	m.AddRow(10)

	m.AddRow(6,
		col.New(12).Add(
			text.New("Notes", props.Text{Size: 10, Style: fontstyle.Bold}),
		),
	)

	m.AddRow(6,
		col.New(12).Add(text.New(layout.Notes, props.Text{Size: 8})),
	)

	if len(layout.PaymentLines) > 0 {
		m.AddRow(8,
			col.New(12).Add(
				text.New("Payment Information", props.Text{Size: 10, Style: fontstyle.Bold}),
			),
		)

		for _, line := range layout.PaymentLines {
			m.AddRow(5,
				col.New(12).Add(text.New(line, props.Text{Size: 8})),
			)
		}
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("generating pdf: %w", err)
	}

	return doc.GetBytes(), nil
}
