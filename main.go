package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
	flag "github.com/spf13/pflag"
	"github.com/valyala/fasthttp"

	"lifeprogress/internal/birthday"
	"lifeprogress/internal/config"
	"lifeprogress/internal/dataset"
	"lifeprogress/internal/engine"
	"lifeprogress/internal/handler"
	"lifeprogress/internal/logger"
	"lifeprogress/internal/model"
	"lifeprogress/internal/nation"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	fs := config.NewFlagSet("lifeprogress")
	fs.SetOutput(stderr)
	cfg, err := config.Load(fs, args)
	if errors.Is(err, flag.ErrHelp) {
		return 0
	}
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 2
	}

	log, err := logger.New(cfg.Log.Level, cfg.Log.Format, stderr)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 2
	}

	e := engine.New(dataset.FromConfig(cfg.Dataset, log))

	switch {
	case cfg.Serve:
		return serve(cfg, e, log)
	case cfg.Search != "":
		err = search(stdout, e, cfg.Search)
	case cfg.View != "":
		err = view(stdout, e, cfg.View)
	case cfg.Birthday != "":
		err = compute(stdout, e, cfg)
	default:
		fmt.Fprintln(stderr, "one of --birthday, --search, --view or --serve is required")
		fs.PrintDefaults()
		return 2
	}
	if err != nil {
		log.Error().Err(err).Msg("lifeprogress failed")
		return exitCode(err)
	}
	return 0
}

func serve(cfg config.Config, e *engine.Engine, log zerolog.Logger) int {
	addr := ":" + strconv.Itoa(cfg.Port)
	log.Info().Str("addr", addr).Msg("lifeprogress API starting")
	if err := fasthttp.ListenAndServe(addr, handler.New(e, log).Handle); err != nil {
		log.Error().Err(err).Msg("server failed")
		return 1
	}
	return 0
}

func compute(w io.Writer, e *engine.Engine, cfg config.Config) error {
	var gender *model.Gender
	if cfg.Gender != "" {
		g, err := model.ParseGender(cfg.Gender)
		if err != nil {
			return err
		}
		gender = &g
	}
	var nationName *string
	if cfg.Nation != "" {
		nationName = &cfg.Nation
	}

	resp, err := e.Process(&model.ProgressRequest{Birthday: cfg.Birthday, Gender: gender, Nation: nationName})
	if err != nil {
		return err
	}
	for _, m := range resp.CalculationResult.Messages {
		fmt.Fprintf(w, "%s: %s\n", m.Level, m.Message)
	}
	fmt.Fprintln(w, sentence(resp.CalculationResult.Progress))
	return nil
}

func sentence(p model.ProgressInfo) string {
	return fmt.Sprintf("You spent %d days, completed %s%% of life progress, still have %d days left. enjoy!",
		p.Spent, strconv.FormatFloat(p.Progress, 'f', 2, 64), p.Rest)
}

func search(w io.Writer, e *engine.Engine, query string) error {
	matches, err := e.SearchNation(query)
	if err != nil {
		return err
	}
	if len(matches) == 0 {
		fmt.Fprintf(w, "no nation matches %q\n", query)
		return nil
	}
	for _, m := range matches {
		fmt.Fprintf(w, "%5d  %s%s\n", m.Score, highlight(m.Nation, m.MatchedIndices), codeSuffix(m.Code))
	}
	return nil
}

func view(w io.Writer, e *engine.Engine, name string) error {
	rec, ok, err := e.ViewNation(name)
	if err != nil {
		return err
	}
	if !ok {
		fmt.Fprintf(w, "unknown nation %q\n", name)
		return nil
	}
	fmt.Fprintf(w, "%s%s: all %.1f, female %.1f, male %.1f years\n",
		name, codeSuffix(nation.Code(name)), rec.All, rec.Female, rec.Male)
	return nil
}

// highlight brackets the characters of name at the given positions.
func highlight(name string, indices []int) string {
	marked := make(map[int]bool, len(indices))
	for _, i := range indices {
		marked[i] = true
	}
	var b strings.Builder
	for i, r := range []rune(name) {
		if marked[i] {
			b.WriteByte('[')
			b.WriteRune(r)
			b.WriteByte(']')
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

func codeSuffix(code string) string {
	if code == "" {
		return ""
	}
	return " (" + code + ")"
}

func exitCode(err error) int {
	switch {
	case errors.Is(err, birthday.ErrInvalidFormat),
		errors.Is(err, engine.ErrFutureBirthday),
		errors.Is(err, model.ErrInvalidGender):
		return 2
	default:
		return 1
	}
}
