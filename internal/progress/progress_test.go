package progress

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"lifeprogress/internal/model"
)

var record = model.LifespanRecord{All: 73.4, Female: 80.0, Male: 75.0}

func TestComputeMale(t *testing.T) {
	info := Compute(10958, model.GenderMale, record)

	assert.Equal(t, 10958, info.Spent)
	assert.Equal(t, 40.03, info.Progress)
	assert.InDelta(t, 59.97, info.RestProgress, 1e-9)
	assert.Equal(t, 27375-10958, info.Rest)
}

func TestComputeSelectsGender(t *testing.T) {
	assert.Equal(t, 80*365, Compute(0, model.GenderFemale, record).Rest)
	assert.Equal(t, 75*365, Compute(0, model.GenderMale, record).Rest)
	// 73.4 * 365 = 26791
	assert.Equal(t, 26791, Compute(0, model.GenderUnspecified, record).Rest)
}

func TestComputeRoundsFractionFirst(t *testing.T) {
	// 1/3 rounds to 0.3333, so the percentage is 33.33 and not 33.3333.
	r := model.LifespanRecord{All: 3.0 / 365, Female: 1, Male: 1}
	info := Compute(1, model.GenderUnspecified, r)
	assert.InDelta(t, 33.33, info.Progress, 1e-9)

	// 10/27375 = 0.000365... rounds to 0.0004.
	info = Compute(10, model.GenderMale, record)
	assert.Equal(t, 0.04, info.Progress)
}

func TestComputeZeroDays(t *testing.T) {
	info := Compute(0, model.GenderMale, record)
	assert.Equal(t, 0, info.Spent)
	assert.Equal(t, 0.0, info.Progress)
	assert.Equal(t, 100.0, info.RestProgress)
}

func TestComputeOutlived(t *testing.T) {
	info := Compute(30000, model.GenderMale, record)
	assert.Equal(t, 27375-30000, info.Rest)
	assert.Equal(t, 109.59, info.Progress)
	assert.Equal(t, 100.0, info.Progress+info.RestProgress)
}

func TestComputeRestFloorsFractionalDays(t *testing.T) {
	// 70.5 * 365 = 25732.5
	r := model.LifespanRecord{All: 70.5, Female: 70.5, Male: 70.5}
	assert.Equal(t, 25732, Compute(0, model.GenderUnspecified, r).Rest)
	assert.Equal(t, -1, Compute(25733, model.GenderUnspecified, r).Rest)
}

func TestComputePercentagesSumToHundred(t *testing.T) {
	for _, years := range []float64{1, 42.7, 73.4, 84.56, 120} {
		r := model.LifespanRecord{All: years, Female: years, Male: years}
		for spent := 0; spent < 50000; spent += 137 {
			info := Compute(spent, model.GenderUnspecified, r)
			if info.Progress+info.RestProgress != 100 {
				t.Fatalf("years=%v spent=%d: %v + %v != 100", years, spent, info.Progress, info.RestProgress)
			}
		}
	}
}

func TestComputeIsDeterministic(t *testing.T) {
	assert.Equal(t, Compute(12345, model.GenderFemale, record), Compute(12345, model.GenderFemale, record))
}
