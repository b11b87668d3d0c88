package plans

import (
	"context"
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/dmitrymomot/entitlements/pkg/errs"
)

// Catalog is the immutable, validated set of plans known to the process.
// It is safe for concurrent use.
type Catalog struct {
	plans map[string]Plan
	order []string
}

// NewCatalog validates plans and builds a catalog from them.
// Every plan must carry a code, a name and a numeric price; codes must be unique.
func NewCatalog(plans ...Plan) (*Catalog, error) {
	if len(plans) == 0 {
		return nil, ErrEmptyCatalog
	}

	v := newValidator()
	c := &Catalog{
		plans: make(map[string]Plan, len(plans)),
		order: make([]string, 0, len(plans)),
	}

	var errList []error
	for i, p := range plans {
		if err := v.Struct(p); err != nil {
			errList = append(errList, planValidationError(i, p, err))
			continue
		}
		if _, exists := c.plans[p.Code]; exists {
			errList = append(errList, errs.WithInfo(ErrDuplicatePlanCode, map[string]any{"plan_code": p.Code}))
			continue
		}
		c.plans[p.Code] = p.clone()
		c.order = append(c.order, p.Code)
	}

	if len(errList) > 0 {
		return nil, errors.Join(errList...)
	}
	return c, nil
}

// MustNewCatalog is like NewCatalog but panics on invalid configuration.
// Use it at process startup where an invalid catalog must stop the process.
func MustNewCatalog(plans ...Plan) *Catalog {
	c, err := NewCatalog(plans...)
	if err != nil {
		panic(err)
	}
	return c
}

// LoadCatalog reads definitions from src and returns the validated catalog
// together with the feature-set matcher built from the same definitions.
func LoadCatalog(ctx context.Context, src Source) (*Catalog, *FeatureSetMatcher, error) {
	defs, err := src.Load(ctx)
	if err != nil {
		return nil, nil, err
	}
	catalog, err := NewCatalog(defs.Plans...)
	if err != nil {
		return nil, nil, err
	}
	return catalog, NewFeatureSetMatcher(defs.FeatureSets), nil
}

// Find looks up a plan by exact code. A missing plan is not an error.
func (c *Catalog) Find(code string) (Plan, bool) {
	p, ok := c.plans[code]
	if !ok {
		return Plan{}, false
	}
	return p.clone(), true
}

// All returns the plans in definition order.
func (c *Catalog) All() []Plan {
	out := make([]Plan, 0, len(c.order))
	for _, code := range c.order {
		out = append(out, c.plans[code].clone())
	}
	return out
}

// IsGroupPlanCode reports whether code names a known group plan.
func (c *Catalog) IsGroupPlanCode(code string) bool {
	p, ok := c.plans[code]
	return ok && p.GroupPlan
}

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("yaml"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

func planValidationError(index int, p Plan, err error) error {
	info := map[string]any{"plan_code": p.Code, "index": index}

	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) {
		fields := make([]string, 0, len(fieldErrs))
		for _, fe := range fieldErrs {
			fields = append(fields, fe.Field())
		}
		info["fields"] = fields
	}
	return errs.Wrap(ErrInvalidPlanConfiguration, err, info)
}
