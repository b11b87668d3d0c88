package plans

// TierLabel is a coarse classification derived from a feature bundle's shape.
type TierLabel string

const (
	TierPersonal     TierLabel = "personal"
	TierCollaborator TierLabel = "collaborator"
	TierProfessional TierLabel = "professional"
)

// Plan is a priced subscription tier. Plans are immutable once loaded into a Catalog.
type Plan struct {
	Code         string   `yaml:"plan_code" validate:"required"`
	Name         string   `yaml:"name" validate:"required"`
	PriceInCents *int64   `yaml:"price_in_cents" validate:"required,gte=0"` // nil means the price is missing
	Features     Features `yaml:"features"`
	GroupPlan    bool     `yaml:"group_plan"`
	MembersLimit int      `yaml:"members_limit" validate:"gte=0"`
	AnnualPlan   bool     `yaml:"annual"`
	Hidden       bool     `yaml:"hidden"`
	TrialDays    int      `yaml:"trial_days" validate:"gte=0"`
}

// Price returns the plan price in cents; zero when the price is missing.
func (p Plan) Price() int64 {
	if p.PriceInCents == nil {
		return 0
	}
	return *p.PriceInCents
}

// IsFree reports whether the plan costs nothing.
func (p Plan) IsFree() bool {
	return p.PriceInCents != nil && *p.PriceInCents == 0
}

func (p Plan) clone() Plan {
	c := p
	c.Features = p.Features.Clone()
	if p.PriceInCents != nil {
		price := *p.PriceInCents
		c.PriceInCents = &price
	}
	return c
}

// Definitions is the raw content of a plan catalog source.
type Definitions struct {
	FeatureSets map[TierLabel]Features `yaml:"feature_sets"`
	Plans       []Plan                 `yaml:"plans"`
}
