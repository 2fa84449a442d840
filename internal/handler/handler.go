package handler

import (
	"errors"
	"strings"
	"time"

	json "github.com/goccy/go-json"
	"github.com/rs/zerolog"
	"github.com/valyala/fasthttp"

	"lifeprogress/internal/birthday"
	"lifeprogress/internal/dataset"
	"lifeprogress/internal/engine"
	"lifeprogress/internal/lifespan"
	"lifeprogress/internal/model"
	"lifeprogress/internal/nation"
)

const nationsPrefix = "/nations/"

type Handler struct {
	engine *engine.Engine
	log    zerolog.Logger
}

func New(e *engine.Engine, log zerolog.Logger) *Handler {
	return &Handler{engine: e, log: log}
}

// Handle is the fasthttp request handler for the whole API.
func (h *Handler) Handle(ctx *fasthttp.RequestCtx) {
	start := time.Now()
	path := string(ctx.Path())

	switch {
	case path == "/progress":
		if h.allow(ctx, fasthttp.MethodPost) {
			h.handleProgress(ctx)
		}
	case path == "/nations":
		if h.allow(ctx, fasthttp.MethodGet) {
			h.handleSearch(ctx)
		}
	case strings.HasPrefix(path, nationsPrefix):
		if h.allow(ctx, fasthttp.MethodGet) {
			h.handleView(ctx)
		}
	case path == "/healthz":
		writeJSON(ctx, fasthttp.StatusOK, map[string]string{"status": "ok"})
	default:
		writeError(ctx, fasthttp.StatusNotFound, "NOT_FOUND", "No route for "+path)
	}

	status := ctx.Response.StatusCode()
	ev := h.log.Info()
	switch {
	case status >= 500:
		ev = h.log.Error()
	case status >= 400:
		ev = h.log.Warn()
	}
	ev.Str("method", string(ctx.Method())).
		Str("path", path).
		Int("status", status).
		Dur("took", time.Since(start)).
		Msg("request")
}

func (h *Handler) allow(ctx *fasthttp.RequestCtx, method string) bool {
	if string(ctx.Method()) == method {
		return true
	}
	ctx.Response.Header.Set("Allow", method)
	writeError(ctx, fasthttp.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "Method not allowed")
	return false
}

type progressBody struct {
	Birthday string  `json:"birthday"`
	Gender   string  `json:"gender"`
	Nation   *string `json:"nation"`
}

func (h *Handler) handleProgress(ctx *fasthttp.RequestCtx) {
	var body progressBody
	if err := json.Unmarshal(ctx.PostBody(), &body); err != nil {
		writeError(ctx, fasthttp.StatusBadRequest, "INVALID_REQUEST", "Invalid request body: "+err.Error())
		return
	}

	req := model.ProgressRequest{Birthday: body.Birthday, Nation: body.Nation}
	if body.Gender != "" {
		g, err := model.ParseGender(body.Gender)
		if err != nil {
			h.fail(ctx, err)
			return
		}
		req.Gender = &g
	}

	resp, err := h.engine.Process(&req)
	if err != nil {
		h.fail(ctx, err)
		return
	}
	writeJSON(ctx, fasthttp.StatusOK, resp)
}

func (h *Handler) handleSearch(ctx *fasthttp.RequestCtx) {
	query := string(ctx.QueryArgs().Peek("q"))
	matches, err := h.engine.SearchNation(query)
	if err != nil {
		h.fail(ctx, err)
		return
	}
	writeJSON(ctx, fasthttp.StatusOK, model.SearchResponse{Query: query, Matches: matches})
}

func (h *Handler) handleView(ctx *fasthttp.RequestCtx) {
	// ctx.Path is already percent-decoded.
	name := strings.TrimPrefix(string(ctx.Path()), nationsPrefix)

	rec, ok, err := h.engine.ViewNation(name)
	if err != nil {
		h.fail(ctx, err)
		return
	}
	if !ok {
		writeError(ctx, fasthttp.StatusNotFound, "NATION_NOT_FOUND", "Unknown nation: "+name)
		return
	}
	writeJSON(ctx, fasthttp.StatusOK, model.NationResponse{Nation: name, Code: nation.Code(name), Record: rec})
}

func (h *Handler) fail(ctx *fasthttp.RequestCtx, err error) {
	status, code := Classify(err)
	if status >= 500 {
		h.log.Error().Err(err).Str("code", code).Msg("calculation failed")
	}
	writeError(ctx, status, code, err.Error())
}

// Classify maps an error to an HTTP status and a stable error code.
func Classify(err error) (int, string) {
	switch {
	case errors.Is(err, birthday.ErrInvalidFormat):
		return fasthttp.StatusBadRequest, "INVALID_BIRTHDAY"
	case errors.Is(err, model.ErrInvalidGender):
		return fasthttp.StatusBadRequest, "INVALID_GENDER"
	case errors.Is(err, engine.ErrFutureBirthday):
		return fasthttp.StatusUnprocessableEntity, "FUTURE_BIRTHDAY"
	case errors.Is(err, lifespan.ErrConfiguration):
		return fasthttp.StatusInternalServerError, "CONFIGURATION_ERROR"
	case errors.Is(err, dataset.ErrUnavailable):
		return fasthttp.StatusBadGateway, "DATA_UNAVAILABLE"
	default:
		return fasthttp.StatusInternalServerError, "INTERNAL"
	}
}

func writeJSON(ctx *fasthttp.RequestCtx, status int, v any) {
	b, err := json.Marshal(v)
	if err != nil {
		writeError(ctx, fasthttp.StatusInternalServerError, "INTERNAL", err.Error())
		return
	}
	ctx.SetContentType("application/json")
	ctx.SetStatusCode(status)
	ctx.SetBody(b)
}

func writeError(ctx *fasthttp.RequestCtx, status int, code, message string) {
	b, _ := json.Marshal(model.ErrorResponse{
		Status:  status,
		Code:    code,
		Message: message,
	})
	ctx.SetContentType("application/json")
	ctx.SetStatusCode(status)
	ctx.SetBody(b)
}
