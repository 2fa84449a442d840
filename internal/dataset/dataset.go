package dataset

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"time"

	json "github.com/goccy/go-json"
	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/rs/zerolog"
	"github.com/valyala/fasthttp"

	"lifeprogress/internal/model"
)

// ErrUnavailable wraps every failure to produce a dataset.
var ErrUnavailable = errors.New("lifespan dataset unavailable")

// Source produces a lifespan dataset. Implementations must return a dataset
// the caller may keep; it is never modified afterwards.
type Source interface {
	Fetch() (model.Dataset, error)
}

//go:embed lifespan.json
var embedded []byte

// Embedded serves the snapshot compiled into the binary.
type Embedded struct{}

func (Embedded) Fetch() (model.Dataset, error) {
	return decode(embedded)
}

func (Embedded) String() string { return "embedded" }

// FileSource reads a JSON dataset from a local file on every Fetch.
type FileSource struct {
	Path string
}

func (s FileSource) Fetch() (model.Dataset, error) {
	b, err := os.ReadFile(s.Path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return decode(b)
}

func (s FileSource) String() string { return "file:" + s.Path }

// HTTPSource downloads a JSON dataset with a GET request on every Fetch.
type HTTPSource struct {
	URL     string
	Timeout time.Duration
	Client  *fasthttp.Client
	Log     zerolog.Logger
}

// NewHTTPSource returns an HTTPSource with a pooled client.
func NewHTTPSource(url string, timeout time.Duration, log zerolog.Logger) *HTTPSource {
	return &HTTPSource{
		URL:     url,
		Timeout: timeout,
		Client: &fasthttp.Client{
			MaxConnsPerHost:     100,
			MaxIdleConnDuration: 90 * time.Second,
			ReadTimeout:         timeout,
			WriteTimeout:        timeout,
		},
		Log: log,
	}
}

func (s *HTTPSource) Fetch() (model.Dataset, error) {
	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(s.URL)
	req.Header.SetMethod(fasthttp.MethodGet)
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	if err := s.Client.DoTimeout(req, resp, s.Timeout); err != nil {
		return nil, fmt.Errorf("%w: GET %s: %v", ErrUnavailable, s.URL, err)
	}
	s.Log.Debug().
		Str("url", s.URL).
		Int("status", resp.StatusCode()).
		Dur("took", time.Since(start)).
		Msg("fetched lifespan dataset")

	if resp.StatusCode() != fasthttp.StatusOK {
		return nil, fmt.Errorf("%w: GET %s: status %d", ErrUnavailable, s.URL, resp.StatusCode())
	}
	return decode(resp.Body())
}

func (s *HTTPSource) String() string { return s.URL }

// Cached keeps the dataset of Source for TTL.
type Cached struct {
	Source Source
	key    string
	cache  *expirable.LRU[string, model.Dataset]
}

// NewCached wraps src. A non-positive ttl returns src unchanged.
func NewCached(src Source, ttl time.Duration) Source {
	if ttl <= 0 {
		return src
	}
	return &Cached{
		Source: src,
		key:    fmt.Sprint(src),
		cache:  expirable.NewLRU[string, model.Dataset](1, nil, ttl),
	}
}

func (c *Cached) Fetch() (model.Dataset, error) {
	if ds, ok := c.cache.Get(c.key); ok {
		return ds, nil
	}
	ds, err := c.Source.Fetch()
	if err != nil {
		return nil, err
	}
	c.cache.Add(c.key, ds)
	return ds, nil
}

func decode(b []byte) (model.Dataset, error) {
	var ds model.Dataset
	if err := json.Unmarshal(b, &ds); err != nil {
		return nil, fmt.Errorf("%w: decode: %v", ErrUnavailable, err)
	}
	if err := ds.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return ds, nil
}
