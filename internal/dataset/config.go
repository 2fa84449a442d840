package dataset

import (
	"fmt"

	"github.com/rs/zerolog"

	"lifeprogress/internal/config"
)

// FromConfig picks the dataset URL, then the dataset file, then the embedded
// snapshot, and caches it for the configured TTL.
func FromConfig(cfg config.Dataset, log zerolog.Logger) Source {
	var src Source
	switch {
	case cfg.URL != "":
		src = NewHTTPSource(cfg.URL, cfg.Timeout, log)
	case cfg.File != "":
		src = FileSource{Path: cfg.File}
	default:
		src = Embedded{}
	}
	log.Debug().Str("source", fmt.Sprint(src)).Dur("ttl", cfg.CacheTTL).Msg("lifespan dataset source")
	return NewCached(src, cfg.CacheTTL)
}
