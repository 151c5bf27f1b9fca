package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/riskibarqy/fantasy-projections/internal/domain/scoringconfig"
	"github.com/riskibarqy/fantasy-projections/internal/platform/logging"
)

type ScoringConfigService struct {
	repo   scoringconfig.Repository
	logger *logging.Logger
}

func NewScoringConfigService(repo scoringconfig.Repository, logger *logging.Logger) *ScoringConfigService {
	if logger == nil {
		logger = logging.Default()
	}
	return &ScoringConfigService{repo: repo, logger: logger}
}

func (s *ScoringConfigService) List(ctx context.Context) ([]scoringconfig.Config, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ScoringConfigService.List")
	defer span.End()

	items, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list scoring configs: %w", err)
	}
	sort.SliceStable(items, func(i, j int) bool {
		if items[i].IsDefault != items[j].IsDefault {
			return items[i].IsDefault
		}
		return items[i].Name < items[j].Name
	})
	return items, nil
}

// Get resolves a config by name. An empty name resolves to the default.
func (s *ScoringConfigService) Get(ctx context.Context, name string) (scoringconfig.Config, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ScoringConfigService.Get")
	defer span.End()

	name = strings.TrimSpace(name)
	if name == "" {
		return s.Default(ctx)
	}

	cfg, ok, err := s.repo.GetByName(ctx, name)
	if err != nil {
		return scoringconfig.Config{}, fmt.Errorf("get scoring config %q: %w", name, err)
	}
	if !ok {
		return scoringconfig.Config{}, fmt.Errorf("%w: scoring config %q", ErrNotFound, name)
	}
	return cfg, nil
}

// Default returns the stored default config, falling back to the PPR preset
// when the catalog is empty.
func (s *ScoringConfigService) Default(ctx context.Context) (scoringconfig.Config, error) {
	items, err := s.repo.List(ctx)
	if err != nil {
		return scoringconfig.Config{}, fmt.Errorf("list scoring configs: %w", err)
	}
	for _, item := range items {
		if item.IsDefault {
			return item, nil
		}
	}
	for _, item := range items {
		if strings.EqualFold(item.Name, scoringconfig.NamePPR) {
			return item, nil
		}
	}
	cfg, _ := scoringconfig.Preset(scoringconfig.NamePPR)
	return cfg, nil
}

// Upsert validates and stores a config under name. Degenerate coefficients
// fail with scoringconfig.ErrInvalidScoringConfig.
func (s *ScoringConfigService) Upsert(ctx context.Context, name string, cfg scoringconfig.Config) (scoringconfig.Config, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ScoringConfigService.Upsert")
	defer span.End()

	cfg.Name = strings.TrimSpace(name)
	if err := cfg.Validate(); err != nil {
		return scoringconfig.Config{}, err
	}

	stored, err := s.repo.Upsert(ctx, cfg)
	if err != nil {
		return scoringconfig.Config{}, fmt.Errorf("upsert scoring config %q: %w", cfg.Name, err)
	}
	s.logger.InfoContext(ctx, "scoring config saved", "name", stored.Name, "is_default", stored.IsDefault)
	return stored, nil
}

// SeedPresets writes the PPR, Half-PPR and Standard presets.
func (s *ScoringConfigService) SeedPresets(ctx context.Context) ([]scoringconfig.Config, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ScoringConfigService.SeedPresets")
	defer span.End()

	presets := scoringconfig.Presets()
	out := make([]scoringconfig.Config, 0, len(presets))
	for _, cfg := range presets {
		stored, err := s.repo.Upsert(ctx, cfg)
		if err != nil {
			return out, fmt.Errorf("seed scoring config %q: %w", cfg.Name, err)
		}
		out = append(out, stored)
	}
	s.logger.InfoContext(ctx, "scoring presets seeded", "count", len(out))
	return out, nil
}
