package plans_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/entitlements/pkg/errs"
	"github.com/dmitrymomot/entitlements/pkg/plans"
)

func TestNewCatalog(t *testing.T) {
	t.Parallel()

	t.Run("valid plans", func(t *testing.T) {
		t.Parallel()

		catalog, err := plans.NewCatalog(testPlans()...)
		require.NoError(t, err)
		assert.Len(t, catalog.All(), len(testPlans()))
		assert.Equal(t, "personal", catalog.All()[0].Code)
	})

	t.Run("missing price is a configuration error", func(t *testing.T) {
		t.Parallel()

		list := testPlans()
		list = append(list, plans.Plan{Code: "broken", Name: "Broken"})

		_, err := plans.NewCatalog(list...)
		require.Error(t, err)
		assert.ErrorIs(t, err, plans.ErrInvalidPlanConfiguration)
		assert.Equal(t, errs.KindConfigurationInvalid, errs.KindOf(err))

		var e *errs.Error
		require.True(t, errors.As(err, &e))
		assert.Equal(t, "broken", e.Info["plan_code"])
		assert.Contains(t, e.Info["fields"], "price_in_cents")
	})

	t.Run("zero price is valid", func(t *testing.T) {
		t.Parallel()

		catalog, err := plans.NewCatalog(plans.Plan{Code: "free", Name: "Free", PriceInCents: price(0)})
		require.NoError(t, err)
		p, ok := catalog.Find("free")
		require.True(t, ok)
		assert.True(t, p.IsFree())
	})

	t.Run("duplicate codes", func(t *testing.T) {
		t.Parallel()

		_, err := plans.NewCatalog(
			plans.Plan{Code: "a", Name: "A", PriceInCents: price(1)},
			plans.Plan{Code: "a", Name: "A again", PriceInCents: price(2)},
		)
		assert.ErrorIs(t, err, plans.ErrDuplicatePlanCode)
	})

	t.Run("empty catalog", func(t *testing.T) {
		t.Parallel()

		_, err := plans.NewCatalog()
		assert.ErrorIs(t, err, plans.ErrEmptyCatalog)
	})

	t.Run("must panics on invalid configuration", func(t *testing.T) {
		t.Parallel()

		assert.Panics(t, func() {
			plans.MustNewCatalog(plans.Plan{Code: "broken", Name: "Broken"})
		})
	})
}

func TestCatalog_Find(t *testing.T) {
	t.Parallel()

	catalog := plans.MustNewCatalog(testPlans()...)

	t.Run("exact match", func(t *testing.T) {
		t.Parallel()

		p, ok := catalog.Find("professional")
		require.True(t, ok)
		assert.Equal(t, "Professional", p.Name)
		assert.Equal(t, int64(3000), p.Price())
	})

	t.Run("no prefix or case folding", func(t *testing.T) {
		t.Parallel()

		for _, code := range []string{"Professional", "prof", "professional ", ""} {
			_, ok := catalog.Find(code)
			assert.False(t, ok, code)
		}
	})

	t.Run("returned plan is a copy", func(t *testing.T) {
		t.Parallel()

		p, ok := catalog.Find("collaborator")
		require.True(t, ok)
		p.Features["collaborators"] = 999
		*p.PriceInCents = 1

		again, _ := catalog.Find("collaborator")
		assert.Equal(t, 10, again.Features["collaborators"])
		assert.Equal(t, int64(1500), again.Price())
	})

	t.Run("group plan codes", func(t *testing.T) {
		t.Parallel()

		assert.True(t, catalog.IsGroupPlanCode("group_professional_10_educational"))
		assert.False(t, catalog.IsGroupPlanCode("professional"))
		assert.False(t, catalog.IsGroupPlanCode("unknown"))
	})
}

func TestLoadCatalog(t *testing.T) {
	t.Parallel()

	t.Run("in-memory source", func(t *testing.T) {
		t.Parallel()

		src := plans.NewInMemSource(featureSets(), testPlans()...)
		catalog, matcher, err := plans.LoadCatalog(context.Background(), src)
		require.NoError(t, err)

		p, ok := catalog.Find("professional")
		require.True(t, ok)
		label, ok := matcher.Classify(p.Features)
		require.True(t, ok)
		assert.Equal(t, plans.TierProfessional, label)
	})

	t.Run("yaml file source", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "plans.yaml")
		content := `
feature_sets:
  professional:
    collaborators: -1
    compileTimeout: 240
    compileGroup: priority
plans:
  - plan_code: professional
    name: Professional
    price_in_cents: 3000
    features:
      collaborators: -1
      compileTimeout: 240
      compileGroup: priority
  - plan_code: group_professional_5
    name: Group Professional
    price_in_cents: 50000
    group_plan: true
    members_limit: 5
    features:
      collaborators: -1
      compileTimeout: 240
      compileGroup: priority
`
		require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

		catalog, matcher, err := plans.LoadCatalog(context.Background(), plans.NewFileSource(path))
		require.NoError(t, err)

		classifier := plans.NewClassifier(catalog, matcher)
		assert.True(t, classifier.IsProfessionalPlan("professional"))
		assert.True(t, catalog.IsGroupPlanCode("group_professional_5"))
	})

	t.Run("yaml plan without price", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "plans.yaml")
		content := "plans:\n  - plan_code: student\n    name: Student\n"
		require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

		_, _, err := plans.LoadCatalog(context.Background(), plans.NewFileSource(path))
		assert.ErrorIs(t, err, plans.ErrInvalidPlanConfiguration)
	})

	t.Run("missing file", func(t *testing.T) {
		t.Parallel()

		_, _, err := plans.LoadCatalog(context.Background(), plans.NewFileSource(filepath.Join(t.TempDir(), "nope.yaml")))
		assert.ErrorIs(t, err, plans.ErrFailedToLoadPlans)
		assert.ErrorIs(t, err, os.ErrNotExist)
	})
}
