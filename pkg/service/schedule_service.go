package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/samber/lo"
	"go.uber.org/zap"

	"github.com/limaJavier/classcomposer/pkg/config"
	"github.com/limaJavier/classcomposer/pkg/model"
)

var ErrInvalidRequest = errors.New("invalid request")

// ComposeRequest selects the desired lectures and how to search for their schedules.
// Zero values fall back to the service defaults.
type ComposeRequest struct {
	LectureIds []uint64 `json:"lectureIds" validate:"required,min=1"`
	Mode       string   `json:"mode" validate:"omitempty,oneof=all first besteffort"`
	Limit      int      `json:"limit" validate:"gte=0"`
	StepBudget uint64   `json:"stepBudget"`
}

type Stats struct {
	Mode      string        `json:"mode"`
	Courses   int           `json:"courses"`
	PoolSize  int           `json:"poolSize"`
	Checks    uint64        `json:"checks"`
	Exhausted bool          `json:"exhausted"`
	Elapsed   time.Duration `json:"elapsed"`
}

type ComposeResult struct {
	Schedules   []model.Schedule   `json:"schedules"`
	Diagnostics []model.Diagnostic `json:"diagnostics"`
	Stats       Stats              `json:"stats"`
}

// ScheduleService runs a request through normalization, indexing and composition
type ScheduleService struct {
	validator *validator.Validate
	logger    *zap.Logger
	defaults  config.ComposerConfig
}

func NewScheduleService(validate *validator.Validate, logger *zap.Logger, defaults config.ComposerConfig) *ScheduleService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if defaults.Mode == "" {
		defaults.Mode = config.ModeAll
	}
	return &ScheduleService{validator: validate, logger: logger, defaults: defaults}
}

func (s *ScheduleService) Compose(catalog model.Catalog, request ComposeRequest) (*ComposeResult, error) {
	if err := s.validator.Struct(request); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRequest, err)
	}

	mode := lo.CoalesceOrEmpty(request.Mode, s.defaults.Mode)
	limit := lo.CoalesceOrEmpty(request.Limit, s.defaults.Limit)
	stepBudget := lo.CoalesceOrEmpty(request.StepBudget, s.defaults.StepBudget)

	pool, err := model.Normalize(catalog, request.LectureIds)
	if err != nil {
		s.logger.Warn("catalog rejected", zap.Uint64s("lecture_ids", request.LectureIds), zap.Error(err))
		return nil, err
	}

	index := model.BuildPreferenceIndex(request.LectureIds, pool)
	for _, diagnostic := range index.Diagnostics {
		s.logger.Warn("meeting excluded from search",
			zap.String("kind", diagnostic.Kind.String()),
			zap.Uint64("section_id", diagnostic.Meeting.SectionId),
			zap.Uint64("lecture_id", diagnostic.Meeting.LectureId),
			zap.String("message", diagnostic.Message),
		)
	}

	composer := model.NewComposer(model.WithLimit(limit), model.WithStepBudget(stepBudget))

	start := time.Now()
	var result model.Result
	switch mode {
	case config.ModeFirst:
		result = composer.SolveFirst(index)
	case config.ModeBestEffort:
		result = composer.SolveBestEffort(index)
	default:
		result = composer.Solve(index)
	}

	stats := Stats{
		Mode:      mode,
		Courses:   len(index.Courses),
		PoolSize:  len(index.Pool),
		Checks:    result.Checks,
		Exhausted: result.Exhausted,
		Elapsed:   time.Since(start),
	}

	s.logger.Info("schedules composed",
		zap.String("mode", stats.Mode),
		zap.Int("courses", stats.Courses),
		zap.Int("pool_size", stats.PoolSize),
		zap.Int("schedules", len(result.Schedules)),
		zap.Uint64("checks", stats.Checks),
		zap.Bool("exhausted", stats.Exhausted),
		zap.Duration("elapsed", stats.Elapsed),
	)
	if stats.Exhausted {
		s.logger.Warn("step budget exhausted before the search completed", zap.Uint64("step_budget", stepBudget))
	}

	return &ComposeResult{
		Schedules:   result.Schedules,
		Diagnostics: index.Diagnostics,
		Stats:       stats,
	}, nil
}
