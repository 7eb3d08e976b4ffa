package pdf

import (
	"fmt"
	"strings"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"recibo/internal/domain"
	"recibo/internal/port"
)

type renderer struct{}

// NewRenderer creates a maroto-backed PDFRenderer.
func NewRenderer() port.PDFRenderer {
	return &renderer{}
}

func newMaroto() core.Maroto {
	cfg := config.NewBuilder().
		WithLeftMargin(10).
		WithTopMargin(15).
		WithRightMargin(10).
		Build()
	return maroto.New(cfg)
}

func (r *renderer) RenderReceipt(view *domain.ReceiptView) ([]byte, error) {
	m := newMaroto()

	addDocumentHeader(m, "RECEIPT", view.ReceiptID, view.FreelancerInfo)
	addPartyBlock(m, "Billed To", view.ClientInfo)

	m.AddRow(12,
		col.New(6).Add(
			text.New("Date: "+view.Date.Format("Jan 02, 2006"), props.Text{Size: 10, Align: align.Left}),
		),
		col.New(6).Add(
			text.New("Status: "+strings.ToUpper(string(view.PaymentInfo.Status)), props.Text{Size: 10, Align: align.Right}),
		),
	)

	m.AddRow(5, line.NewCol(12))
	m.AddRow(18,
		col.New(12).Add(
			text.New(view.ProjectDetails.Title, props.Text{Size: 12, Style: fontstyle.Bold, Align: align.Left}),
			text.New(view.ProjectDetails.Description, props.Text{Size: 9, Top: 6, Align: align.Left}),
		),
	)

	if len(view.ProjectDetails.Deliverables) > 0 {
		m.AddRow(8,
			col.New(12).Add(
				text.New("Deliverables: "+strings.Join(view.ProjectDetails.Deliverables, ", "), props.Text{Size: 9, Align: align.Left}),
			),
		)
	}

	m.AddRow(5, line.NewCol(12))
	m.AddRow(12,
		col.New(6).Add(
			text.New("Payment Method: "+view.PaymentInfo.Method, props.Text{Size: 10, Align: align.Left}),
		),
		col.New(6).Add(
			text.New(fmt.Sprintf("Total: %s %.2f", view.PaymentInfo.Currency, view.PaymentInfo.Amount), props.Text{
				Size:  14,
				Style: fontstyle.Bold,
				Align: align.Right,
			}),
		),
	)

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("generating receipt pdf: %w", err)
	}
	return doc.GetBytes(), nil
}

func (r *renderer) RenderInvoice(view *domain.InvoiceView) ([]byte, error) {
	m := newMaroto()

	addDocumentHeader(m, "INVOICE", view.InvoiceID, view.FreelancerInfo)
	addPartyBlock(m, "Billed To", view.ClientInfo)

	m.AddRow(12,
		col.New(6).Add(
			text.New("Date: "+view.Date.Format("Jan 02, 2006"), props.Text{Size: 10, Align: align.Left}),
			text.New("Due: "+view.DueDate.Format("Jan 02, 2006"), props.Text{Size: 10, Top: 5, Align: align.Left}),
		),
		col.New(6).Add(
			text.New("Status: "+strings.ToUpper(string(view.Status)), props.Text{Size: 10, Align: align.Right}),
		),
	)

	m.AddRow(5, line.NewCol(12))
	m.AddRow(8,
		col.New(6).Add(text.New("Description", props.Text{Size: 9, Style: fontstyle.Bold})),
		col.New(2).Add(text.New("Qty", props.Text{Size: 9, Style: fontstyle.Bold, Align: align.Right})),
		col.New(2).Add(text.New("Rate", props.Text{Size: 9, Style: fontstyle.Bold, Align: align.Right})),
		col.New(2).Add(text.New("Amount", props.Text{Size: 9, Style: fontstyle.Bold, Align: align.Right})),
	)
	m.AddRow(2, line.NewCol(12))

	for _, item := range view.Items {
		m.AddRow(7,
			col.New(6).Add(text.New(item.Description, props.Text{Size: 9})),
			col.New(2).Add(text.New(fmt.Sprintf("%.2f", item.Quantity), props.Text{Size: 9, Align: align.Right})),
			col.New(2).Add(text.New(fmt.Sprintf("%.2f", item.Rate), props.Text{Size: 9, Align: align.Right})),
			col.New(2).Add(text.New(fmt.Sprintf("%.2f", item.Amount), props.Text{Size: 9, Align: align.Right})),
		)
	}

	m.AddRow(3, line.NewCol(12))
	m.AddRow(6,
		col.New(8),
		col.New(2).Add(text.New("Subtotal", props.Text{Size: 9, Align: align.Right})),
		col.New(2).Add(text.New(fmt.Sprintf("%s %.2f", view.Currency, view.Subtotal), props.Text{Size: 9, Align: align.Right})),
	)
	m.AddRow(6,
		col.New(8),
		col.New(2).Add(text.New("Tax", props.Text{Size: 9, Align: align.Right})),
		col.New(2).Add(text.New(fmt.Sprintf("%s %.2f", view.Currency, view.TaxTotal), props.Text{Size: 9, Align: align.Right})),
	)
	m.AddRow(8,
		col.New(8),
		col.New(2).Add(text.New("Total", props.Text{Size: 11, Style: fontstyle.Bold, Align: align.Right})),
		col.New(2).Add(text.New(fmt.Sprintf("%s %.2f", view.Currency, view.Total), props.Text{Size: 11, Style: fontstyle.Bold, Align: align.Right})),
	)

	if view.PaymentTerms != "" {
		m.AddRow(8,
			col.New(12).Add(text.New("Payment Terms: "+view.PaymentTerms, props.Text{Size: 9, Align: align.Left})),
		)
	}
	if view.Notes != "" {
		m.AddRow(8,
			col.New(12).Add(text.New("Notes: "+view.Notes, props.Text{Size: 9, Align: align.Left})),
		)
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("generating invoice pdf: %w", err)
	}
	return doc.GetBytes(), nil
}

func addDocumentHeader(m core.Maroto, title, documentID string, issuer domain.FreelancerInfo) {
	m.AddRow(30,
		col.New(6).Add(
			text.New(issuer.Name, props.Text{Size: 16, Style: fontstyle.Bold, Align: align.Left}),
			text.New(issuer.Address, props.Text{Size: 9, Top: 8, Align: align.Left}),
			text.New(issuer.Email, props.Text{Size: 9, Top: 13, Align: align.Left}),
		),
		col.New(6).Add(
			text.New(title, props.Text{Size: 20, Style: fontstyle.Bold, Align: align.Right}),
			text.New("# "+documentID, props.Text{Size: 10, Top: 8, Align: align.Right}),
		),
	)
	m.AddRow(5, line.NewCol(12))
}

func addPartyBlock(m core.Maroto, label string, client domain.ClientInfo) {
	m.AddRow(20,
		col.New(12).Add(
			text.New(label, props.Text{Size: 9, Style: fontstyle.Bold, Align: align.Left}),
			text.New(client.Name, props.Text{Size: 10, Top: 5, Align: align.Left}),
			text.New(client.Address, props.Text{Size: 9, Top: 10, Align: align.Left}),
			text.New(client.Email, props.Text{Size: 9, Top: 15, Align: align.Left}),
		),
	)
}
