package progress

import (
	"github.com/shopspring/decimal"

	"lifeprogress/internal/model"
)

// DaysPerYear converts expectancy years to days. Leap years are ignored.
const DaysPerYear = 365

var hundred = decimal.NewFromInt(100)

// Compute derives life progress from the days already spent and the record
// that applies. The fraction spent/total is rounded to four decimal places
// before it is scaled to a percentage. Rest is floored and may be negative
// once the expectancy has been outlived.
func Compute(spentDays int, gender model.Gender, record model.LifespanRecord) model.ProgressInfo {
	total := decimal.NewFromFloat(record.Years(gender)).Mul(decimal.NewFromInt(DaysPerYear))
	spent := decimal.NewFromInt(int64(spentDays))

	pct, _ := spent.Div(total).Round(4).Mul(hundred).Float64()

	return model.ProgressInfo{
		Spent:        spentDays,
		Progress:     pct,
		Rest:         int(total.Sub(spent).Floor().IntPart()),
		RestProgress: 100 - pct,
	}
}
