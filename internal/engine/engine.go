package engine

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"lifeprogress/internal/birthday"
	"lifeprogress/internal/dataset"
	"lifeprogress/internal/lifespan"
	"lifeprogress/internal/model"
	"lifeprogress/internal/nation"
	"lifeprogress/internal/progress"
)

// ErrFutureBirthday is returned when the birthday lies after today.
var ErrFutureBirthday = errors.New("birthday is in the future")

const dateLayout = "2006-01-02"

// Clock supplies the current time. Only its calendar date in its own
// location is used.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the local wall clock.
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }

// ClockFunc adapts a function to Clock.
type ClockFunc func() time.Time

func (f ClockFunc) Now() time.Time { return f() }

type Option func(*Engine)

// WithClock replaces the system clock.
func WithClock(c Clock) Option {
	return func(e *Engine) { e.clock = c }
}

// Engine ties the birthday parser, dataset, resolver and calculator
// together. It holds no mutable state and is safe for concurrent use.
type Engine struct {
	source dataset.Source
	clock  Clock
}

func New(src dataset.Source, opts ...Option) *Engine {
	e := &Engine{source: src, clock: SystemClock{}}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Init computes the life progress of someone born on bday. A nil gender uses
// the population-wide figure; a nil or unknown nation uses the "Common"
// record.
func (e *Engine) Init(bday string, gender *model.Gender, nationName *string) (model.ProgressInfo, error) {
	c, err := e.calculate(bday, gender, nationName)
	if err != nil {
		return model.ProgressInfo{}, err
	}
	return c.info, nil
}

type calculation struct {
	born, today time.Time
	gender      model.Gender
	nation      string
	record      model.LifespanRecord
	info        model.ProgressInfo
	ds          model.Dataset
}

func (e *Engine) calculate(bday string, gender *model.Gender, nationName *string) (*calculation, error) {
	born, err := birthday.Parse(bday)
	if err != nil {
		return nil, err
	}

	today := birthday.Date(e.clock.Now())
	elapsed := birthday.DaysBetween(born, today)
	if elapsed < 0 {
		return nil, fmt.Errorf("%w: %s is after %s", ErrFutureBirthday,
			born.Format(dateLayout), today.Format(dateLayout))
	}

	ds, err := e.fetch()
	if err != nil {
		return nil, err
	}

	rec, resolved, err := lifespan.ResolveNamed(nationName, ds)
	if err != nil {
		return nil, err
	}

	g := model.GenderUnspecified
	if gender != nil {
		g = *gender
	}

	return &calculation{
		born:   born,
		today:  today,
		gender: g,
		nation: resolved,
		record: rec,
		info:   progress.Compute(elapsed, g, rec),
		ds:     ds,
	}, nil
}

// Process runs Init for req and wraps the result with calculation metadata
// and warnings.
func (e *Engine) Process(req *model.ProgressRequest) (*model.ProgressResponse, error) {
	start := time.Now()

	c, err := e.calculate(req.Birthday, req.Gender, req.Nation)
	if err != nil {
		return nil, err
	}

	messages := []model.CalculationMessage{}
	if req.Nation != nil && c.nation != *req.Nation {
		msg := fmt.Sprintf("Nation %q not found, using %q", *req.Nation, model.CommonNation)
		if s, ok := nation.Suggest(*req.Nation, c.ds); ok {
			msg += fmt.Sprintf(" (did you mean %q?)", s)
		}
		messages = append(messages, model.CalculationMessage{
			ID:      len(messages),
			Level:   model.LevelWarning,
			Code:    "NATION_NOT_FOUND",
			Message: msg,
		})
	}

	elapsed := time.Since(start)
	now := time.Now().UTC()

	return &model.ProgressResponse{
		CalculationMetadata: model.CalculationMetadata{
			CalculationID:          uuid.New().String(),
			CalculationStartedAt:   now.Add(-elapsed).Format(time.RFC3339),
			CalculationCompletedAt: now.Format(time.RFC3339),
			CalculationDurationMs:  elapsed.Milliseconds(),
		},
		CalculationResult: model.CalculationResult{
			Birthday: c.born.Format(dateLayout),
			Today:    c.today.Format(dateLayout),
			Gender:   c.gender,
			Nation:   c.nation,
			Record:   c.record,
			Progress: c.info,
			Messages: messages,
		},
	}, nil
}

// SearchNation fuzzy-matches query against the current dataset.
func (e *Engine) SearchNation(query string) ([]model.SearchMatch, error) {
	ds, err := e.fetch()
	if err != nil {
		return nil, err
	}
	return nation.Search(query, ds), nil
}

// ViewNation looks up the record stored under name exactly.
func (e *Engine) ViewNation(name string) (model.LifespanRecord, bool, error) {
	ds, err := e.fetch()
	if err != nil {
		return model.LifespanRecord{}, false, err
	}
	rec, ok := lifespan.View(name, ds)
	return rec, ok, nil
}

func (e *Engine) fetch() (model.Dataset, error) {
	ds, err := e.source.Fetch()
	if err == nil {
		return ds, nil
	}
	if errors.Is(err, dataset.ErrUnavailable) {
		return nil, err
	}
	return nil, fmt.Errorf("%w: %v", dataset.ErrUnavailable, err)
}
