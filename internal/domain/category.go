package domain

// Category is the derived clinical severity bucket for a systolic/diastolic
// pair. It is computed on demand and never persisted.
type Category string

const (
	CategoryNormal   Category = "Normal"
	CategoryElevated Category = "Elevated"
	CategoryStage1   Category = "Stage 1"
	CategoryStage2   Category = "Stage 2"
	CategoryCrisis   Category = "Crisis"
	CategoryUnknown  Category = "Unknown"
)

// String returns the display label.
func (c Category) String() string {
	return string(c)
}

// Classify maps a blood-pressure pair to its clinical category. The checks
// run in priority order; the first match wins. Total over all integer pairs.
func Classify(systolic, diastolic int) Category {
	if systolic < 120 && diastolic < 80 {
		return CategoryNormal
	}
	if systolic >= 120 && systolic < 130 && diastolic < 80 {
		return CategoryElevated
	}
	if (systolic >= 130 && systolic < 140) || (diastolic >= 80 && diastolic < 90) {
		return CategoryStage1
	}
	if systolic >= 140 || diastolic >= 90 {
		return CategoryStage2
	}
	// Unreachable: the stage 2 condition above already covers every
	// crisis-range pair. Kept to preserve the published threshold table.
	if systolic >= 180 || diastolic >= 120 {
		return CategoryCrisis
	}
	return CategoryUnknown
}
