package utils

import (
	"fmt"

	"github.com/stitch-n-style/stitch-n-style-api/models"
)

// measurementRange is an inclusive range in inches
type measurementRange struct {
	min, max float64
}

// Accepted ranges for each of the six body measurements, in inches
var measurementRanges = map[string]measurementRange{
	"chest":     {20, 60},
	"waist":     {20, 60},
	"hips":      {20, 60},
	"length":    {20, 72},
	"shoulders": {12, 30},
	"sleeves":   {15, 40},
}

// ValidateMeasurements checks all six measurement fields against their
// accepted ranges. It returns a map of field name to error message; an empty
// map means the measurements are valid. It never mutates its input.
func ValidateMeasurements(m models.Measurements) map[string]string {
	values := map[string]float64{
		"chest":     m.Chest,
		"waist":     m.Waist,
		"hips":      m.Hips,
		"length":    m.Length,
		"shoulders": m.Shoulders,
		"sleeves":   m.Sleeves,
	}

	errors := make(map[string]string)
	for field, r := range measurementRanges {
		value := values[field]
		if value == 0 {
			errors[field] = fmt.Sprintf("%s measurement is required", field)
			continue
		}
		if value < r.min || value > r.max {
			errors[field] = fmt.Sprintf("%s must be between %g and %g inches", field, r.min, r.max)
		}
	}

	return errors
}
