package receipt

import (
	"bytes"
	"fmt"

	"github.com/dojolanza/cuotas/go-api-server/internal/model"
	"github.com/go-pdf/fpdf"
)

// Renderer turns a payment and its member into a downloadable receipt.
// The member must already carry plaintext fields.
type Renderer interface {
	Render(payment *model.Payment, member *model.Member) ([]byte, error)
}

// PDFRenderer produces the front-desk receipt layout.
type PDFRenderer struct{}

// Ensure PDFRenderer implements Renderer
var _ Renderer = (*PDFRenderer)(nil)

func NewPDFRenderer() *PDFRenderer {
	return &PDFRenderer{}
}

func (r *PDFRenderer) Render(payment *model.Payment, member *model.Member) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("") // core fonts are cp1252
	pdf.AddPage()

	pageWidth, _ := pdf.GetPageSize()
	left, _, right, _ := pdf.GetMargins()
	usable := pageWidth - left - right

	pdf.SetFont("Helvetica", "B", 20)
	pdf.CellFormat(usable, 10, tr("DOJO LANZA MEXICANA"), "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 12)
	pdf.CellFormat(usable, 8, tr("Sistema de Gestión de Cuotas"), "", 1, "C", false, 0, "")

	pdf.Ln(4)
	y := pdf.GetY()
	pdf.Line(left, y, pageWidth-right, y)
	pdf.Ln(8)

	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(usable, 10, tr("RECIBO DE PAGO"), "", 1, "C", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "", 12)
	pdf.CellFormat(usable, 8, tr(fmt.Sprintf("Recibo No: %s", payment.ReceiptNumber)), "", 1, "L", false, 0, "")
	pdf.CellFormat(usable, 8, tr(fmt.Sprintf("Fecha: %s", payment.PaymentDate.Format("02/01/2006"))), "", 1, "L", false, 0, "")
	pdf.Ln(6)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(usable, 8, tr("DATOS DEL MIEMBRO:"), "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 12)
	pdf.CellFormat(usable, 7, tr(fmt.Sprintf("Nombre: %s %s", member.FirstName, member.LastName)), "", 1, "L", false, 0, "")
	pdf.CellFormat(usable, 7, tr(fmt.Sprintf("Cinturón: %s", member.Belt)), "", 1, "L", false, 0, "")
	if member.Email != "" {
		pdf.CellFormat(usable, 7, tr(fmt.Sprintf("Correo: %s", member.Email)), "", 1, "L", false, 0, "")
	}
	pdf.Ln(6)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(usable, 8, tr("DETALLE DEL PAGO:"), "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 12)
	pdf.CellFormat(usable, 7, tr(fmt.Sprintf("Período: %s", payment.MonthYear)), "", 1, "L", false, 0, "")
	pdf.CellFormat(usable, 7, tr(fmt.Sprintf("Método de pago: %s", payment.PaymentMethod)), "", 1, "L", false, 0, "")
	if payment.Notes != "" {
		pdf.CellFormat(usable, 7, tr(fmt.Sprintf("Notas: %s", payment.Notes)), "", 1, "L", false, 0, "")
	}
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "B", 14)
	pdf.CellFormat(usable, 10, tr(fmt.Sprintf("TOTAL: $%.2f MXN", payment.Amount)), "", 1, "R", false, 0, "")

	pdf.Ln(10)
	pdf.SetFont("Helvetica", "I", 10)
	pdf.CellFormat(usable, 6, tr("Gracias por ser parte de nuestra comunidad de karate"), "", 1, "C", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render receipt pdf: %w", err)
	}
	return buf.Bytes(), nil
}
