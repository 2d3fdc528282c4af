package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/ERINGRYD/spartano-71e509fa-sub000/internal/domain/repository"
	"github.com/ERINGRYD/spartano-71e509fa-sub000/internal/service/analytics"
)

const (
	analyticsSummaryCacheKey = "analytics:summary"
	analyticsSummaryCacheTTL = 5 * time.Minute
)

// AnalyticsSummary объединяет все аналитические отчеты в один снимок
type AnalyticsSummary struct {
	Difficulty    []analytics.DifficultyStats `json:"difficulty"`
	Pareto        []analytics.ParetoRow       `json:"pareto"`
	LearningCurve []analytics.CurvePoint      `json:"learningCurve"`
	Quadrant      analytics.QuadrantReport    `json:"quadrant"`
	GeneratedAt   time.Time                   `json:"generatedAt"`
}

// AnalyticsService строит отчеты по журналу результатов.
// Отчеты чистые и детерминированные, поэтому сводка кешируется;
// кеш сбрасывается по TTL, а не по событиям.
type AnalyticsService struct {
	resultRepo     repository.QuizResultRepository
	enemyRepo      repository.EnemyRepository
	subjectService *SubjectService
	cacheRepo      repository.CacheRepository
}

// NewAnalyticsService создает новый сервис аналитики
func NewAnalyticsService(
	resultRepo repository.QuizResultRepository,
	enemyRepo repository.EnemyRepository,
	subjectService *SubjectService,
	cacheRepo repository.CacheRepository,
) *AnalyticsService {
	return &AnalyticsService{
		resultRepo:     resultRepo,
		enemyRepo:      enemyRepo,
		subjectService: subjectService,
		cacheRepo:      cacheRepo,
	}
}

// GetSummary возвращает полную аналитическую сводку
func (s *AnalyticsService) GetSummary(ctx context.Context) (*AnalyticsSummary, error) {
	var cached AnalyticsSummary
	if err := s.cacheRepo.GetJSON(analyticsSummaryCacheKey, &cached); err == nil {
		return &cached, nil
	}

	summary, err := s.buildSummary()
	if err != nil {
		return nil, err
	}

	if err := s.cacheRepo.SetJSON(analyticsSummaryCacheKey, summary, analyticsSummaryCacheTTL); err != nil {
		log.Printf("[AnalyticsService] WARNING: не удалось закешировать сводку: %v", err)
	}
	return summary, nil
}

func (s *AnalyticsService) buildSummary() (*AnalyticsSummary, error) {
	results, err := s.resultRepo.GetAll()
	if err != nil {
		return nil, fmt.Errorf("failed to load quiz results: %w", err)
	}
	enemies, err := s.enemyRepo.GetAll()
	if err != nil {
		return nil, fmt.Errorf("failed to load enemies: %w", err)
	}
	questions, err := s.subjectService.QuestionIndex()
	if err != nil {
		return nil, fmt.Errorf("failed to build question index: %w", err)
	}

	return &AnalyticsSummary{
		Difficulty:    analytics.DifficultyBreakdown(results, questions),
		Pareto:        analytics.ErrorPareto(results, enemies),
		LearningCurve: analytics.LearningCurve(results),
		Quadrant:      analytics.StrategyQuadrant(results),
		GeneratedAt:   time.Now(),
	}, nil
}

// ExportSummaryXLSX выгружает сводку в xlsx: по листу на отчет.
// Возвращает содержимое файла.
func (s *AnalyticsService) ExportSummaryXLSX(ctx context.Context) ([]byte, error) {
	summary, err := s.GetSummary(ctx)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			log.Printf("[AnalyticsService] WARNING: ошибка закрытия xlsx: %v", err)
		}
	}()

	if err := s.writeDifficultySheet(f, summary.Difficulty); err != nil {
		return nil, err
	}
	if err := s.writeParetoSheet(f, summary.Pareto); err != nil {
		return nil, err
	}
	if err := s.writeCurveSheet(f, summary.LearningCurve); err != nil {
		return nil, err
	}

	// Лист по умолчанию больше не нужен
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, fmt.Errorf("failed to finalize workbook: %w", err)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to serialize workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func (s *AnalyticsService) writeDifficultySheet(f *excelize.File, stats []analytics.DifficultyStats) error {
	const sheet = "Difficulty"
	if _, err := f.NewSheet(sheet); err != nil {
		return fmt.Errorf("failed to create sheet %s: %w", sheet, err)
	}
	header := []interface{}{"Difficulty", "Attempted", "Correct", "Accuracy %", "Avg time, ms"}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return err
	}
	for i, row := range stats {
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		values := []interface{}{string(row.Difficulty), row.Attempted, row.Correct, row.AccuracyPercent, row.AvgTimeMs}
		if err := f.SetSheetRow(sheet, cell, &values); err != nil {
			return err
		}
	}
	return nil
}

func (s *AnalyticsService) writeParetoSheet(f *excelize.File, rows []analytics.ParetoRow) error {
	const sheet = "Pareto"
	if _, err := f.NewSheet(sheet); err != nil {
		return fmt.Errorf("failed to create sheet %s: %w", sheet, err)
	}
	header := []interface{}{"Topic", "Errors", "Attempted", "Error rate %", "Cumulative %"}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return err
	}
	for i, row := range rows {
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		values := []interface{}{row.TopicName, row.Errors, row.Attempted, row.ErrorRatePercent, row.CumulativePercent}
		if err := f.SetSheetRow(sheet, cell, &values); err != nil {
			return err
		}
	}
	return nil
}

func (s *AnalyticsService) writeCurveSheet(f *excelize.File, points []analytics.CurvePoint) error {
	const sheet = "LearningCurve"
	if _, err := f.NewSheet(sheet); err != nil {
		return fmt.Errorf("failed to create sheet %s: %w", sheet, err)
	}
	header := []interface{}{"Date", "Accuracy %", "Cumulative %", "Rolling avg %"}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return err
	}
	for i, p := range points {
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		rolling := interface{}(nil)
		if p.HasRollingAverage {
			rolling = p.RollingAvgPercent
		}
		values := []interface{}{p.Date.Format("2006-01-02 15:04"), p.AccuracyPercent, p.CumulativePercent, rolling}
		if err := f.SetSheetRow(sheet, cell, &values); err != nil {
			return err
		}
	}
	return nil
}
