package services

import (
	"context"

	"go.uber.org/zap"

	"checksheet-system/internal/dto"
	"checksheet-system/internal/repositories"
)

type ReportServiceInterface interface {
	GetChecksheetReport(ctx context.Context, filter repositories.ReportFilter) ([]dto.ReportRowDTO, error)
	GetDashboardSummary(ctx context.Context) (*dto.DashboardSummaryDTO, error)
}

type ReportService struct {
	reportRepository repositories.ReportRepositoryInterface
	logger           *zap.Logger
}

func NewReportService(reportRepository repositories.ReportRepositoryInterface, logger *zap.Logger) ReportServiceInterface {
	return &ReportService{
		reportRepository: reportRepository,
		logger:           logger,
	}
}

func (s *ReportService) GetChecksheetReport(ctx context.Context, filter repositories.ReportFilter) ([]dto.ReportRowDTO, error) {
	rows, err := s.reportRepository.GetChecksheetReport(ctx, filter)
	if err != nil {
		s.logger.Error("failed to build checksheet report", zap.Error(err))
		return nil, err
	}
	return rows, nil
}

func (s *ReportService) GetDashboardSummary(ctx context.Context) (*dto.DashboardSummaryDTO, error) {
	summary, err := s.reportRepository.GetDashboardSummary(ctx)
	if err != nil {
		s.logger.Error("failed to build dashboard summary", zap.Error(err))
		return nil, err
	}
	return summary, nil
}
