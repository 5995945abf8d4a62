package services

// ScoreExperience grades the candidate's years of experience against the
// job's requirement. Fully deterministic, no provider involvement.
//
// Rules:
//   - no requirement stated: 100 (nothing to fall short of)
//   - requirement stated but candidate years unknown: 50
//   - candidate meets or exceeds the requirement: 100
//   - otherwise 10 points off per missing year, floored at 0
func ScoreExperience(requiredYears, actualYears *float64) float64 {
	if requiredYears == nil {
		return 100
	}

	if actualYears == nil {
		return 50
	}

	if *actualYears >= *requiredYears {
		return 100
	}

	gap := *requiredYears - *actualYears
	score := 100 - 10*gap
	if score < 0 {
		return 0
	}

	return score
}
