package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	formcalc "github.com/goliatone/go-formcalc"
	"github.com/goliatone/go-formcalc/internal/config"
	"github.com/goliatone/go-formcalc/internal/httpserver"
	"github.com/goliatone/go-formcalc/pkg/batch"
	"github.com/goliatone/go-formcalc/pkg/formula"
	"github.com/goliatone/go-formcalc/pkg/locales"
	"github.com/goliatone/go-formcalc/pkg/model"
	"github.com/goliatone/go-formcalc/pkg/orchestrator"
	"github.com/goliatone/go-formcalc/pkg/render"
	"github.com/goliatone/go-formcalc/pkg/renderers/tui"
	"github.com/goliatone/go-formcalc/pkg/themes"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	mode := flag.String("mode", "tui", "tui, serve, render or batch")
	locale := flag.String("locale", cfg.Locale, "locale for labels and results")
	addr := flag.String("addr", cfg.Addr, "listen address for serve mode")
	themeName := flag.String("theme", cfg.Theme, "theme name")
	variant := flag.String("variant", cfg.ThemeVariant, "theme variant")
	localesDir := flag.String("locales", cfg.LocalesDir, "directory with catalog overrides")
	formulaID := flag.String("formula", "quadratic", "formula to render")
	values := flag.String("values", "", "comma separated slot values, e.g. a=1,b=-3,c=2")
	renderer := flag.String("renderer", "html", "renderer to use in render mode (html, tui, pdf)")
	output := flag.String("output", "", "output file (stdout if empty)")
	input := flag.String("input", "", "xlsx workbook to evaluate in batch mode")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	catalog, err := formcalc.LoadCatalog(*localesDir)
	if err != nil {
		log.Fatalf("Failed to load catalogs: %v", err)
	}

	switch *mode {
	case "tui":
		err = runTUI(ctx, catalog, *locale)
	case "serve":
		err = runServer(ctx, catalog, cfg, *addr, *locale, *themeName, *variant)
	case "render":
		err = runRender(ctx, catalog, *locale, *themeName, *variant, *formulaID, *values, *renderer, *output)
	case "batch":
		err = runBatch(ctx, catalog, *locale, *input, *output)
	default:
		err = fmt.Errorf("unknown mode %q", *mode)
	}
	if err != nil && !errors.Is(err, tui.ErrAborted) {
		log.Fatalf("formcalc: %v", err)
	}
}

func runTUI(ctx context.Context, catalog *locales.Catalog, locale string) error {
	renderer, err := tui.New()
	if err != nil {
		return err
	}
	engine := formula.New(formula.WithTranslator(catalog), formula.WithLocale(locale))
	_, err = renderer.Run(ctx, engine, render.RenderOptions{Locale: locale, Translator: catalog})
	return err
}

func runServer(ctx context.Context, catalog *locales.Catalog, cfg config.Config, addr, locale, themeName, variant string) error {
	selector, err := themes.NewSelector(themes.WithDefaults(themeName, variant))
	if err != nil {
		return err
	}
	server, err := httpserver.New(ctx,
		httpserver.WithCatalog(catalog),
		httpserver.WithDefaultLocale(locale),
		httpserver.WithThemeSelector(selector),
		httpserver.WithTheme(themeName, variant),
		httpserver.WithRateLimit(cfg.RateLimit, cfg.RateBurst),
	)
	if err != nil {
		return err
	}
	log.Printf("formcalc listening on %s", addr)
	return server.ListenAndServe(ctx, addr)
}

func runRender(ctx context.Context, catalog *locales.Catalog, locale, themeName, variant, formulaID, rawValues, rendererName, output string) error {
	kind, err := model.ParseKind(formulaID)
	if err != nil {
		return err
	}
	values, err := parseValues(rawValues)
	if err != nil {
		return err
	}

	selector, err := themes.NewSelector()
	if err != nil {
		return err
	}
	gen := orchestrator.New(
		orchestrator.WithTranslator(catalog),
		orchestrator.WithLocale(locale),
		orchestrator.WithThemeSelector(selector),
		orchestrator.WithTheme(themeName, variant),
	)

	result, err := gen.Generate(ctx, orchestrator.Request{
		Formula:  kind,
		Values:   values,
		Submit:   len(values) > 0,
		Renderer: rendererName,
	})
	if err != nil {
		return err
	}

	if output != "" {
		if err := os.WriteFile(output, result.Output, 0o644); err != nil {
			return fmt.Errorf("write output: %w", err)
		}
		fmt.Printf("Calculator written to %s\n", output)
		return nil
	}
	fmt.Println(string(result.Output))
	return nil
}

func runBatch(ctx context.Context, catalog *locales.Catalog, locale, input, output string) error {
	if strings.TrimSpace(input) == "" {
		return errors.New("batch mode requires -input")
	}
	in, err := os.Open(input)
	if err != nil {
		return err
	}
	defer in.Close()

	engine := formula.New(formula.WithTranslator(catalog), formula.WithLocale(locale))
	report, err := batch.Evaluate(ctx, engine, in)
	if err != nil {
		return err
	}

	if output == "" {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	}
	out, err := os.Create(output)
	if err != nil {
		return err
	}
	if err := batch.Write(out, report); err != nil {
		out.Close()
		return err
	}
	if err := out.Close(); err != nil {
		return err
	}
	fmt.Printf("%d of %d rows valid, written to %s\n", report.Valid, report.Count, output)
	return nil
}

func parseValues(raw string) (map[model.Slot]string, error) {
	values := make(map[model.Slot]string)
	for _, pair := range strings.Split(raw, ",") {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}
		name, value, ok := strings.Cut(pair, "=")
		if !ok {
			return nil, fmt.Errorf("invalid value %q, expected slot=value", pair)
		}
		slot, err := model.ParseSlot(name)
		if err != nil {
			return nil, err
		}
		values[slot] = strings.TrimSpace(value)
	}
	return values, nil
}
