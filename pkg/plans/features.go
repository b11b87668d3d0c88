package plans

import (
	"maps"
	"reflect"
)

// Well-known feature keys with non-boolean merge semantics.
const (
	FeatureCollaborators  = "collaborators"
	FeatureCompileTimeout = "compileTimeout"
	FeatureCompileGroup   = "compileGroup"
)

// Compile groups, ordered from worst to best.
const (
	CompileGroupStandard = "standard"
	CompileGroupPriority = "priority"
)

// UnlimitedCollaborators is the collaborators value that means "no limit".
const UnlimitedCollaborators = -1

// Features maps entitlement keys to boolean, numeric or enum-like string values.
type Features map[string]any

// Clone returns a shallow copy. Feature values are scalars, so this is
// sufficient to isolate callers from each other.
func (f Features) Clone() Features {
	if f == nil {
		return nil
	}
	return maps.Clone(f)
}

// Equal reports whether both bundles hold the same keys with equal values.
// Numbers compare by value, so 180 decoded as int32 from BSON equals 180
// decoded as int from YAML.
func (f Features) Equal(other Features) bool {
	if len(f) != len(other) {
		return false
	}
	for key, value := range f {
		otherValue, ok := other[key]
		if !ok || !ValuesEqual(value, otherValue) {
			return false
		}
	}
	return true
}

// ValuesEqual compares two feature values with numeric normalisation.
func ValuesEqual(a, b any) bool {
	if an, ok := toFloat(a); ok {
		bn, ok := toFloat(b)
		return ok && an == bn
	}
	switch av := a.(type) {
	case nil:
		return b == nil
	case bool:
		bv, ok := b.(bool)
		return ok && av == bv
	case string:
		bv, ok := b.(string)
		return ok && av == bv
	case map[string]any:
		bv, ok := b.(map[string]any)
		return ok && Features(av).Equal(Features(bv))
	case Features:
		bv, ok := b.(Features)
		return ok && av.Equal(bv)
	case []any:
		bv, ok := b.([]any)
		if !ok || len(av) != len(bv) {
			return false
		}
		for i := range av {
			if !ValuesEqual(av[i], bv[i]) {
				return false
			}
		}
		return true
	}
	return reflect.DeepEqual(a, b)
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int8:
		return float64(n), true
	case int16:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint8:
		return float64(n), true
	case uint16:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	case float32:
		return float64(n), true
	case float64:
		return n, true
	}
	return 0, false
}

func truthy(v any) bool {
	switch x := v.(type) {
	case nil:
		return false
	case bool:
		return x
	case string:
		return x != ""
	}
	if n, ok := toFloat(v); ok {
		return n != 0
	}
	return true
}
