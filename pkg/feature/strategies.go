package feature

import (
	"context"
	"errors"
	"hash/fnv"
	"slices"

	"github.com/dmitrymomot/entitlements/pkg/environment"
)

// PercentageStrategy enables a flag for a stable share of users, keyed by
// the user id in the context. Contexts without a user id are excluded unless
// the percentage is 100.
type PercentageStrategy struct {
	Percentage int
}

// NewPercentageStrategy creates a PercentageStrategy.
func NewPercentageStrategy(percentage int) Strategy {
	return &PercentageStrategy{Percentage: percentage}
}

func (s *PercentageStrategy) Evaluate(ctx context.Context) (bool, error) {
	switch {
	case s.Percentage < 0 || s.Percentage > 100:
		return false, errors.Join(ErrInvalidStrategy, errors.New("percentage must be between 0 and 100"))
	case s.Percentage == 0:
		return false, nil
	case s.Percentage == 100:
		return true, nil
	}

	userID := UserIDFromContext(ctx)
	if userID == "" {
		return false, nil
	}
	h := fnv.New32a()
	_, _ = h.Write([]byte(userID))
	return int(h.Sum32()%100) < s.Percentage, nil
}

// EnvironmentStrategy enables a flag only in the listed environments, read
// from the context with environment.FromContext.
type EnvironmentStrategy struct {
	Environments []environment.Environment
}

// NewEnvironmentStrategy creates an EnvironmentStrategy.
func NewEnvironmentStrategy(envs ...environment.Environment) Strategy {
	return &EnvironmentStrategy{Environments: envs}
}

func (s *EnvironmentStrategy) Evaluate(ctx context.Context) (bool, error) {
	if len(s.Environments) == 0 {
		return false, ErrInvalidStrategy
	}
	env := environment.FromContext(ctx)
	if env == "" {
		return false, nil
	}
	return slices.Contains(s.Environments, env), nil
}

// AllStrategy requires every child strategy to pass.
type AllStrategy struct {
	Strategies []Strategy
}

// NewAllStrategy combines strategies with AND. Nil entries are skipped.
func NewAllStrategy(strategies ...Strategy) Strategy {
	var nonNil []Strategy
	for _, s := range strategies {
		if s != nil {
			nonNil = append(nonNil, s)
		}
	}
	return &AllStrategy{Strategies: nonNil}
}

func (s *AllStrategy) Evaluate(ctx context.Context) (bool, error) {
	if len(s.Strategies) == 0 {
		return false, ErrInvalidStrategy
	}
	for _, strategy := range s.Strategies {
		ok, err := strategy.Evaluate(ctx)
		if err != nil || !ok {
			return false, err
		}
	}
	return true, nil
}
