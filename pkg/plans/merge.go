package plans

// MergeFeatures combines two bundles keeping the better value of each key.
// Neither input is modified.
func MergeFeatures(a, b Features) Features {
	out := make(Features, len(a)+len(b))
	for key, value := range a {
		out[key] = value
	}
	for key, bv := range b {
		av, ok := out[key]
		if !ok {
			out[key] = bv
			continue
		}
		out[key] = mergeValue(key, av, bv)
	}
	return out
}

// IsFeatureSetBetter reports whether a is at least as good as b on every key.
func IsFeatureSetBetter(a, b Features) bool {
	return MergeFeatures(a, b).Equal(a)
}

func mergeValue(key string, a, b any) any {
	switch key {
	case FeatureCollaborators:
		an, aok := toFloat(a)
		bn, bok := toFloat(b)
		switch {
		case aok && an == UnlimitedCollaborators:
			return a
		case bok && bn == UnlimitedCollaborators:
			return b
		}
		return maxValue(a, b)
	case FeatureCompileTimeout:
		return maxValue(a, b)
	case FeatureCompileGroup:
		if a == CompileGroupPriority || b == CompileGroupPriority {
			return CompileGroupPriority
		}
		return CompileGroupStandard
	}

	if _, ok := a.(bool); ok {
		return truthy(a) || truthy(b)
	}
	if truthy(a) {
		return a
	}
	return b
}

func maxValue(a, b any) any {
	an, aok := toFloat(a)
	bn, bok := toFloat(b)
	switch {
	case !aok:
		return b
	case !bok:
		return a
	case bn > an:
		return b
	}
	return a
}
