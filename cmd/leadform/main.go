package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"

	"github.com/yosssi/gohtml"

	"github.com/goliatone/go-leadform/pkg/config"
	"github.com/goliatone/go-leadform/pkg/form"
	"github.com/goliatone/go-leadform/pkg/notify"
	"github.com/goliatone/go-leadform/pkg/orchestrator"
	"github.com/goliatone/go-leadform/pkg/prompt"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if errors.Is(err, prompt.ErrAborted) || errors.Is(err, prompt.ErrCancelled) {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(130)
		}
		fmt.Fprintf(os.Stderr, "leadform: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	flags := flag.NewFlagSet("leadform", flag.ContinueOnError)
	flags.SetOutput(stderr)
	formID := flags.String("form", "quote", "form to fill: quote, contact or pricing")
	plan := flags.String("plan", "", "pricing plan id or title (implies -form pricing)")
	configPath := flags.String("config", "", "config file (yaml, json or toml)")
	openapiPath := flags.String("openapi", "", "OpenAPI document adding forms to the catalog")
	renderer := flags.String("render", "", "print the blank form with this renderer (html or text) instead of prompting")
	themeName := flags.String("theme", "", "theme name override")
	variant := flags.String("variant", "", "theme variant override")
	output := flags.String("output", "", "output file for -render (stdout if empty)")
	pretty := flags.Bool("pretty", false, "indent html output")
	confirm := flags.Bool("confirm", true, "ask before sending")
	if err := flags.Parse(args); err != nil {
		return err
	}

	var cfgOpts []config.Option
	if *configPath != "" {
		cfgOpts = append(cfgOpts, config.WithConfigFile(*configPath))
	}
	if *themeName != "" {
		cfgOpts = append(cfgOpts, config.WithOverride("theme.name", *themeName))
	}
	if *variant != "" {
		cfgOpts = append(cfgOpts, config.WithOverride("theme.variant", *variant))
	}
	cfg, err := config.Load(cfgOpts...)
	if err != nil {
		return err
	}
	level, err := cfg.Level()
	if err != nil {
		return err
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	orchOpts := []orchestrator.Option{
		orchestrator.WithConfig(cfg),
		orchestrator.WithLogger(logger),
		orchestrator.WithEmitter(notify.LogEmitter{Logger: logger}),
	}
	if *openapiPath != "" {
		raw, err := os.ReadFile(*openapiPath)
		if err != nil {
			return fmt.Errorf("read openapi document: %w", err)
		}
		orchOpts = append(orchOpts, orchestrator.WithOpenAPI(raw))
	}
	orch := orchestrator.New(orchOpts...)
	if err := orch.Err(); err != nil {
		return err
	}

	var f *form.Form
	if *plan != "" {
		f, err = orch.PricingInquiry(*plan)
	} else {
		f, err = orch.Form(*formID)
	}
	if err != nil {
		return err
	}

	if *renderer != "" {
		out, err := orch.Render(ctx, orchestrator.Request{Form: f, Renderer: *renderer})
		if err != nil {
			return err
		}
		if *pretty && *renderer == "html" {
			out = gohtml.FormatBytes(out)
		}
		if *output != "" {
			if err := os.WriteFile(*output, out, 0o644); err != nil {
				return fmt.Errorf("write output: %w", err)
			}
			fmt.Fprintf(stdout, "Form written to %s\n", *output)
			return nil
		}
		_, err = fmt.Fprintln(stdout, string(out))
		return err
	}

	session := prompt.NewSession(prompt.NewSurveyDriver(stdout),
		prompt.WithConfirm(*confirm),
		prompt.WithLogger(logger),
	)
	report, err := session.Run(ctx, f)
	if err != nil {
		return err
	}
	if report.Outcome == form.OutcomeSubmitted && !report.Result.OK() {
		return fmt.Errorf("%s not sent: %w", f.Schema().ID, report.Result.Err)
	}
	return nil
}
