package plans

import "slices"

// FeatureSetMatcher classifies feature bundles by exact structural equality
// against the configured canonical feature sets.
type FeatureSetMatcher struct {
	sets   map[TierLabel]Features
	labels []TierLabel
}

// NewFeatureSetMatcher copies the canonical sets. Labels are checked in sorted
// order so classification is deterministic if two sets ever coincide.
func NewFeatureSetMatcher(sets map[TierLabel]Features) *FeatureSetMatcher {
	m := &FeatureSetMatcher{
		sets:   make(map[TierLabel]Features, len(sets)),
		labels: make([]TierLabel, 0, len(sets)),
	}
	for label, set := range sets {
		m.sets[label] = set.Clone()
		m.labels = append(m.labels, label)
	}
	slices.Sort(m.labels)
	return m
}

// Classify returns the label whose canonical set equals features exactly.
// Bundles that differ in any key or value, legacy ones included, are unmatched.
func (m *FeatureSetMatcher) Classify(features Features) (TierLabel, bool) {
	if len(features) == 0 {
		return "", false
	}
	for _, label := range m.labels {
		if m.sets[label].Equal(features) {
			return label, true
		}
	}
	return "", false
}
