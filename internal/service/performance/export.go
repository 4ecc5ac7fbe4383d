package performance

import (
	"github.com/granjasoft/avicore/internal/domain/models"
)

const exportDateLayout = "2006-01-02"

// exportRow flattens one weekly indicator row for the spreadsheet. Values go
// out exactly as computed; the sheet applies its own display formatting.
func exportRow(lot models.Lot, week models.WeeklyIndicator) []interface{} {
	row := []interface{}{
		lot.ID,
		lot.FarmName,
		lot.HouseName,
		string(lot.Phase),
		week.Week,
		week.PeriodStart.Format(exportDateLayout),
		week.Females.PopulationStart,
		week.Females.PopulationEnd,
		week.Females.Mortality,
		week.Females.MortalityPct,
		week.Females.Selected,
		week.Females.FeedKg,
		week.Females.FeedConversion,
		week.Males.PopulationEnd,
		week.Males.Mortality,
		optional(week.Females.Weight),
		optional(week.Females.Uniformity),
	}

	if week.PopulationAnomaly {
		row = append(row, "ANOMALY")
	} else {
		row = append(row, "")
	}

	return row
}

func optional(v *float64) interface{} {
	if v == nil {
		return ""
	}
	return *v
}
