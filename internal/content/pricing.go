package content

import "github.com/Freeeeeet/tuition_site/internal/model"

// RateBand is the indicative hourly rate range in SGD.
type RateBand struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

func (b RateBand) Contains(rate int) bool {
	return rate >= b.Min && rate <= b.Max
}

// RateGuide is the market rate table shown on the pricing page:
// level band -> tutor type -> range.
type RateGuide map[string]map[model.TutorType]RateBand

var rateGuide = RateGuide{
	model.BandPrimary: {
		model.TutorTypePartTime: {25, 40},
		model.TutorTypeFullTime: {40, 60},
		model.TutorTypeExMOE:    {60, 80},
		model.TutorTypeMOE:      {80, 110},
	},
	model.BandSecondary: {
		model.TutorTypePartTime: {35, 50},
		model.TutorTypeFullTime: {50, 75},
		model.TutorTypeExMOE:    {75, 100},
		model.TutorTypeMOE:      {90, 120},
	},
	model.BandJC: {
		model.TutorTypePartTime: {50, 70},
		model.TutorTypeFullTime: {70, 100},
		model.TutorTypeExMOE:    {100, 130},
		model.TutorTypeMOE:      {120, 150},
	},
	model.BandOther: {
		model.TutorTypePartTime: {50, 80},
		model.TutorTypeFullTime: {80, 120},
		model.TutorTypeExMOE:    {100, 140},
		model.TutorTypeMOE:      {120, 160},
	},
}

// Rates returns the rate table.
func Rates() RateGuide {
	return rateGuide
}

// BandFor returns the overall range for a level, across tutor types.
func BandFor(level string) RateBand {
	byType := rateGuide[model.LevelBand(level)]
	band := RateBand{}
	for _, r := range byType {
		if band.Min == 0 || r.Min < band.Min {
			band.Min = r.Min
		}
		if r.Max > band.Max {
			band.Max = r.Max
		}
	}
	return band
}
