// Package pdf genera el reporte del dashboard de inventario en PDF.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Título + fecha de generación                       │
//	│  ─────────────────────────────────────────────────────────  │
//	│  KPIs: Productos | Valor total | Stock bajo | Agotados      │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Categoría | Productos | Cantidad total              │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Recientes (Nombre | Categoría | Cant. | Creador)    │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	maroto "github.com/johnfercher/maroto/v2"
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

	"github.com/jhoicas/commodities-api/internal/application/analytics"
	"github.com/jhoicas/commodities-api/internal/application/dto"
)

var _ analytics.StatsReportGenerator = (*StatsReportGenerator)(nil)

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorAlert   = &props.Color{Red: 170, Green: 30, Blue: 30}
)

// StatsReportGenerator implementa analytics.StatsReportGenerator usando Maroto v2.
type StatsReportGenerator struct {
	title string
}

// NewStatsReportGenerator construye el generador. title aparece en la cabecera y en los metadatos.
func NewStatsReportGenerator(title string) *StatsReportGenerator {
	if strings.TrimSpace(title) == "" {
		title = "Reporte de inventario"
	}
	return &StatsReportGenerator{title: title}
}

// GenerateStatsPDF genera el PDF y devuelve sus bytes.
func (g *StatsReportGenerator) GenerateStatsPDF(
	_ context.Context,
	stats *dto.DashboardStatsResponse,
	generatedAt time.Time,
) ([]byte, error) {
	if stats == nil {
		return nil, fmt.Errorf("pdf: estadísticas vacías")
	}
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle(g.title, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(g.headerRow(generatedAt))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(kpiRow(stats))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(sectionTitle("Productos por categoría"))
	m.AddRows(categoryHeaderRow())
	m.AddRows(categoryRows(stats.ProductsByCategory)...)

	m.AddRows(line.NewRow(3))
	m.AddRows(sectionTitle("Actualizados recientemente"))
	m.AddRows(recentHeaderRow())
	m.AddRows(recentRows(stats.RecentProducts)...)

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

func (g *StatsReportGenerator) headerRow(generatedAt time.Time) core.Row {
	return row.New(16).Add(
		col.New(8).Add(
			text.New(g.title, props.Text{
				Style: fontstyle.Bold, Size: 14, Color: colorPrimary, Top: 2,
			}),
		),
		col.New(4).Add(
			text.New("Generado: "+generatedAt.Format("02/01/2006 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 4, Color: colorGray,
			}),
		),
	)
}

// kpiRow: cuatro indicadores en una fila.
func kpiRow(stats *dto.DashboardStatsResponse) core.Row {
	kpi := func(label, value string, c *props.Color) core.Col {
		return col.New(3).Add(
			text.New(label, props.Text{Size: 8, Align: align.Center, Color: colorGray, Top: 2}),
			text.New(value, props.Text{
				Style: fontstyle.Bold, Size: 13, Align: align.Center, Color: c, Top: 8,
			}),
		)
	}
	return row.New(18).Add(
		kpi("Productos", strconv.FormatInt(stats.TotalProducts, 10), colorPrimary),
		kpi("Valor total", "$"+formatAmount(stats.TotalValue), colorPrimary),
		kpi("Stock bajo", strconv.FormatInt(stats.Summary.LowStock, 10), colorAlert),
		kpi("Agotados", strconv.FormatInt(stats.Summary.OutOfStock, 10), colorAlert),
	)
}

func sectionTitle(s string) core.Row {
	return row.New(8).Add(col.New(12).Add(
		text.New(s, props.Text{Style: fontstyle.Bold, Size: 10, Color: colorPrimary, Top: 2}),
	))
}

func headerCol(label string, size int, a align.Type) core.Col {
	return col.New(size).Add(text.New(label, props.Text{
		Style: fontstyle.Bold, Size: 8, Align: a, Top: 1, Left: 1, Right: 1,
	}))
}

func cellCol(value string, size int, a align.Type) core.Col {
	return col.New(size).Add(text.New(value, props.Text{
		Size: 8, Align: a, Top: 1, Left: 1, Right: 1,
	}))
}

func categoryHeaderRow() core.Row {
	return row.New(6).Add(
		headerCol("Categoría", 6, align.Left),
		headerCol("Productos", 3, align.Right),
		headerCol("Cantidad total", 3, align.Right),
	)
}

func categoryRows(cats []dto.CategoryStatsDTO) []core.Row {
	if len(cats) == 0 {
		return []core.Row{emptyRow()}
	}
	rows := make([]core.Row, 0, len(cats))
	for _, c := range cats {
		rows = append(rows, row.New(6).Add(
			cellCol(c.ID, 6, align.Left),
			cellCol(strconv.FormatInt(c.Count, 10), 3, align.Right),
			cellCol(formatAmount(c.TotalQuantity), 3, align.Right),
		))
	}
	return rows
}

func recentHeaderRow() core.Row {
	return row.New(6).Add(
		headerCol("Nombre", 4, align.Left),
		headerCol("Categoría", 2, align.Left),
		headerCol("Cantidad", 2, align.Right),
		headerCol("Creado por", 2, align.Left),
		headerCol("Actualizado", 2, align.Right),
	)
}

func recentRows(products []dto.ProductResponse) []core.Row {
	if len(products) == 0 {
		return []core.Row{emptyRow()}
	}
	rows := make([]core.Row, 0, len(products))
	for _, p := range products {
		creator := "—"
		if p.CreatedBy != nil && p.CreatedBy.Name != "" {
			creator = p.CreatedBy.Name
		}
		rows = append(rows, row.New(6).Add(
			cellCol(p.Name, 4, align.Left),
			cellCol(p.Category, 2, align.Left),
			cellCol(formatAmount(p.Quantity)+" "+p.Unit, 2, align.Right),
			cellCol(creator, 2, align.Left),
			cellCol(p.LastUpdated.Format("02/01/2006"), 2, align.Right),
		))
	}
	return rows
}

func emptyRow() core.Row {
	return row.New(6).Add(col.New(12).Add(
		text.New("Sin datos", props.Text{Size: 8, Color: colorGray, Top: 1, Align: align.Center}),
	))
}

// formatAmount dos decimales con puntos de miles y coma decimal.
// Ej: 1234567.5 → "1.234.567,50"
func formatAmount(d decimal.Decimal) string {
	s := d.StringFixed(2)
	sign := ""
	if strings.HasPrefix(s, "-") {
		sign, s = "-", s[1:]
	}
	intPart, frac, _ := strings.Cut(s, ".")
	return sign + groupThousands(intPart) + "," + frac
}

// groupThousands inserta puntos de miles en un string numérico sin decimales.
func groupThousands(s string) string {
	n := len(s)
	if n <= 3 {
		return s
	}
	buf := make([]byte, 0, n+n/3)
	for i, c := range []byte(s) {
		if i > 0 && (n-i)%3 == 0 {
			buf = append(buf, '.')
		}
		buf = append(buf, c)
	}
	return string(buf)
}
