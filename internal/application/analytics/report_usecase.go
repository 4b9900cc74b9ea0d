package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/commodities-api/internal/application/dto"
)

// StatsReportGenerator renderiza las métricas del dashboard como documento descargable.
type StatsReportGenerator interface {
	GenerateStatsPDF(ctx context.Context, stats *dto.DashboardStatsResponse, generatedAt time.Time) ([]byte, error)
}

// ReportUseCase genera el reporte PDF del dashboard a partir de la misma agregación que /stats.
type ReportUseCase struct {
	dashboard *DashboardUseCase
	generator StatsReportGenerator
	now       func() time.Time
}

// NewReportUseCase construye el caso de uso.
func NewReportUseCase(dashboard *DashboardUseCase, generator StatsReportGenerator) *ReportUseCase {
	return &ReportUseCase{dashboard: dashboard, generator: generator, now: time.Now}
}

// DownloadStatsReport devuelve los bytes del PDF y un nombre de archivo sugerido.
func (uc *ReportUseCase) DownloadStatsReport(ctx context.Context) (pdfBytes []byte, filename string, err error) {
	stats, err := uc.dashboard.GetStats(ctx)
	if err != nil {
		return nil, "", err
	}
	now := uc.now()
	pdfBytes, err = uc.generator.GenerateStatsPDF(ctx, stats, now)
	if err != nil {
		return nil, "", fmt.Errorf("reporte: %w", err)
	}
	return pdfBytes, fmt.Sprintf("inventario-%s.pdf", now.Format("20060102-1504")), nil
}
