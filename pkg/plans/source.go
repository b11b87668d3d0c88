package plans

import (
	"context"
	"maps"
	"os"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/dmitrymomot/entitlements/pkg/errs"
)

// Source provides raw plan definitions to build a Catalog from.
type Source interface {
	Load(ctx context.Context) (*Definitions, error)
}

type inMemSource struct {
	mu   sync.RWMutex
	defs Definitions
}

// NewInMemSource returns an in-memory Source holding a deep copy of the given definitions.
func NewInMemSource(featureSets map[TierLabel]Features, plans ...Plan) Source {
	return &inMemSource{defs: copyDefinitions(Definitions{FeatureSets: featureSets, Plans: plans})}
}

// Load returns a copy so callers can't modify the source's internal state.
func (s *inMemSource) Load(ctx context.Context) (*Definitions, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	defs := copyDefinitions(s.defs)
	return &defs, nil
}

type fileSource struct {
	path string
}

// NewFileSource returns a Source reading a YAML document with a `plans` list
// and a `feature_sets` map from path. The file is re-read on every Load.
func NewFileSource(path string) Source {
	return &fileSource{path: path}
}

func (s *fileSource) Load(ctx context.Context) (*Definitions, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, errs.Wrap(ErrFailedToLoadPlans, err, map[string]any{"path": s.path})
	}

	var defs Definitions
	if err := yaml.Unmarshal(data, &defs); err != nil {
		return nil, errs.Wrap(ErrFailedToLoadPlans, err, map[string]any{"path": s.path})
	}
	return &defs, nil
}

func copyDefinitions(in Definitions) Definitions {
	out := Definitions{
		Plans: make([]Plan, 0, len(in.Plans)),
	}
	if in.FeatureSets != nil {
		out.FeatureSets = make(map[TierLabel]Features, len(in.FeatureSets))
		for label, set := range in.FeatureSets {
			out.FeatureSets[label] = maps.Clone(set)
		}
	}
	for _, p := range in.Plans {
		out.Plans = append(out.Plans, p.clone())
	}
	return out
}
