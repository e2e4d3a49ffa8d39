// Package pdf genera la agenda diaria de un salón en PDF.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Empresa + Salón     │  AGENDA + Fecha              │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Hora | Cliente | Servicio | Profesional | Precio    │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALES: Citas / Total reservado                            │
//	│  FOOTER: QR de WhatsApp (si la empresa lo tiene)             │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"fmt"
	"time"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/code"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/fedrita-api/internal/application/ports"
	"github.com/jhoicas/fedrita-api/internal/domain/entity"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 124, Green: 58, Blue: 237}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

var _ ports.AgendaPDFGenerator = (*MarotoAgendaGenerator)(nil)

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoAgendaGenerator implementa ports.AgendaPDFGenerator usando Maroto v2.
type MarotoAgendaGenerator struct{}

// NewMarotoAgendaGenerator construye el generador.
func NewMarotoAgendaGenerator() *MarotoAgendaGenerator { return &MarotoAgendaGenerator{} }

// Generate arma la agenda de day con appts (ya ordenadas) y devuelve los bytes del PDF.
// company puede ser nil.
func (g *MarotoAgendaGenerator) Generate(
	salon *entity.Salon,
	company *entity.Company,
	day time.Time,
	appts []*entity.Appointment,
) ([]byte, error) {
	if salon == nil {
		return nil, fmt.Errorf("pdf: salón requerido")
	}
	author := salon.Name
	if company != nil {
		author = company.Name
	}
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Agenda "+salon.Name, true).
		WithAuthor(author, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(salon, company, day))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	m.AddRows(tableHeaderRow())
	if len(appts) == 0 {
		m.AddRows(row.New(10).Add(col.New(12).Add(
			text.New("Sin citas para este día.", props.Text{
				Size: 9, Align: align.Center, Top: 3, Color: colorGray,
			}),
		)))
	}
	for _, r := range appointmentRows(appts) {
		m.AddRows(r)
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRow(appts))

	if company != nil && company.WhatsAppURL != "" {
		m.AddRows(line.NewRow(3))
		m.AddRows(whatsappRow(company.WhatsAppURL))
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: empresa y salón (izq), título y fecha (der).
func headerRow(salon *entity.Salon, company *entity.Company, day time.Time) core.Row {
	title := salon.Name
	subtitle := nonEmpty(salon.Address, "—")
	if company != nil {
		title = company.Name
		subtitle = salon.Name + " · " + nonEmpty(salon.Address, "—")
	}
	return row.New(18).Add(
		col.New(7).Add(
			text.New(title, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New(subtitle, props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("AGENDA DEL DÍA", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right,
				Color: colorPrimary, Top: 1,
			}),
			text.New(longDate(day), props.Text{
				Style: fontstyle.Bold, Size: 11, Align: align.Right, Top: 7,
			}),
		),
	)
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Hora", 1, align.Center),
		h("Cliente", 3, align.Left),
		h("Servicio", 3, align.Left),
		h("Profesional", 3, align.Left),
		h("Precio", 2, align.Right),
	)
}

// appointmentRows: una fila por cita.
func appointmentRows(appts []*entity.Appointment) []core.Row {
	result := make([]core.Row, 0, len(appts))
	for _, a := range appts {
		client := a.ClientName
		if a.ClientPhone != "" {
			client += " (" + a.ClientPhone + ")"
		}
		result = append(result, row.New(7).Add(
			col.New(1).Add(text.New(a.AppointmentTime.Format("15:04"),
				props.Text{Size: 8, Align: align.Center, Top: 1})),
			col.New(3).Add(text.New(client,
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1})),
			col.New(3).Add(text.New(a.Service,
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1})),
			col.New(3).Add(text.New(nonEmpty(a.EmployeeName, "Sin preferencia"),
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1})),
			col.New(2).Add(text.New("$"+formatMoney(a.Price),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
		))
	}
	return result
}

// totalsRow: número de citas y total reservado.
func totalsRow(appts []*entity.Appointment) core.Row {
	total := decimal.Zero
	for _, a := range appts {
		total = total.Add(a.Price)
	}
	return row.New(14).Add(
		col.New(6).Add(text.New(fmt.Sprintf("Citas: %d", len(appts)), props.Text{
			Style: fontstyle.Bold, Size: 9, Top: 2,
		})),
		col.New(6).Add(text.New("TOTAL RESERVADO: $"+formatMoney(total), props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right,
			Color: colorPrimary, Top: 2, Right: 1,
		})),
	)
}

// whatsappRow: QR con el enlace de WhatsApp de la empresa.
func whatsappRow(link string) core.Row {
	return row.New(40).Add(
		col.New(3).Add(code.NewQr(link, props.Rect{Percent: 95, Center: true})),
		col.New(9).Add(
			text.New("Reservas y cambios por WhatsApp", props.Text{
				Style: fontstyle.Bold, Size: 10, Top: 8, Left: 3, Color: colorPrimary,
			}),
			text.New(link, props.Text{Size: 8, Top: 16, Left: 3, Color: colorGray}),
		),
	)
}

// ── helpers ───────────────────────────────────────────────────────────────────

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

var weekdaysES = [...]string{"Domingo", "Lunes", "Martes", "Miércoles", "Jueves", "Viernes", "Sábado"}

var monthsES = [...]string{
	"enero", "febrero", "marzo", "abril", "mayo", "junio",
	"julio", "agosto", "septiembre", "octubre", "noviembre", "diciembre",
}

// longDate "Jueves 12 de marzo de 2026".
func longDate(t time.Time) string {
	return fmt.Sprintf("%s %d de %s de %d", weekdaysES[t.Weekday()], t.Day(), monthsES[t.Month()-1], t.Year())
}

// formatMoney redondea a pesos e inserta puntos de miles.
// Ej: 25000 → "25.000", 1000000 → "1.000.000"
func formatMoney(d decimal.Decimal) string {
	s := d.Round(0).StringFixed(0)
	neg := false
	if len(s) > 0 && s[0] == '-' {
		neg, s = true, s[1:]
	}
	n := len(s)
	buf := make([]byte, 0, n+n/3+1)
	if neg {
		buf = append(buf, '-')
	}
	for i, c := range []byte(s) {
		if i > 0 && (n-i)%3 == 0 {
			buf = append(buf, '.')
		}
		buf = append(buf, c)
	}
	return string(buf)
}
