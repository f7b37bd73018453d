package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"inspector/internal/agent"
	"inspector/internal/config"
	"inspector/internal/httpclient"
	"inspector/internal/llm"
	"inspector/internal/logging"
	"inspector/internal/output"
	"inspector/internal/platform"
	reviewcontext "inspector/internal/review/context"
	"inspector/internal/uithub"
)

func newRootCommand() *cobra.Command {
	var (
		inputPath string
		actorName string
		pedantic  bool
		modelName string
		debug     bool
		plain     bool
	)

	cmd := &cobra.Command{
		Use:   "inspector",
		Short: "Automated quality review of a published Apify Actor",
		Long: "inspector evaluates a published Apify Actor on four axes (code quality,\n" +
			"documentation, uniqueness, pricing) using role-scoped evaluator agents and\n" +
			"compiles the findings into a single graded report.",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			input, err := resolveInput(cmd, inputPath, actorName, pedantic, modelName, debug)
			if err != nil {
				return err
			}
			return run(cmd.Context(), input, plain)
		},
	}

	cmd.Flags().StringVar(&inputPath, "input", "", "path to a JSON file with the invocation payload")
	cmd.Flags().StringVar(&actorName, "actor-name", "", "actor to inspect, as user-name/actor-name")
	cmd.Flags().BoolVar(&pedantic, "pedantic", true, "grade strictly, preferring the lower grade when torn")
	cmd.Flags().StringVar(&modelName, "model", config.DefaultModel, "LLM model name")
	cmd.Flags().BoolVar(&debug, "debug", true, "enable debug logging")
	cmd.Flags().BoolVar(&plain, "plain", false, "print the report as raw markdown")

	return cmd
}

// resolveInput merges the JSON input file, when given, with the flags.
// Explicitly set flags win over file values.
func resolveInput(cmd *cobra.Command, inputPath, actorName string, pedantic bool, modelName string, debug bool) (*config.Input, error) {
	input := &config.Input{}
	if inputPath != "" {
		raw, err := os.ReadFile(inputPath)
		if err != nil {
			return nil, fmt.Errorf("read input file: %w", err)
		}
		if err := json.Unmarshal(raw, input); err != nil {
			return nil, fmt.Errorf("parse input file: %w", err)
		}
	}
	if actorName != "" {
		input.ActorName = actorName
	}
	if cmd.Flags().Changed("pedantic") || input.Pedantic == nil {
		input.Pedantic = &pedantic
	}
	if cmd.Flags().Changed("debug") || input.Debug == nil {
		input.Debug = &debug
	}
	if cmd.Flags().Changed("model") || input.ModelName == "" {
		input.ModelName = modelName
	}
	if err := input.Normalize(); err != nil {
		return nil, err
	}
	return input, nil
}

func run(ctx context.Context, input *config.Input, plain bool) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if *input.Debug {
		cfg.LogLevel = logging.LevelDebug
	}

	logger := logging.New(os.Stderr, cfg.LogLevel, "inspector")
	logger.Info("inspecting actor %s with model %s", input.ActorName, input.ModelName)

	api := platform.NewClient(cfg, logging.New(os.Stderr, cfg.LogLevel, "platform"))
	renderer := uithub.NewClient(cfg, logging.New(os.Stderr, cfg.LogLevel, "uithub"))
	probe := httpclient.New(cfg.Timeout, logger)

	source := reviewcontext.NewSourceAdapter(api, renderer, probe, reviewcontext.DefaultMaxCodeTokens,
		logging.New(os.Stderr, cfg.LogLevel, "source"))
	pricing := reviewcontext.NewPricingAdapter(api, time.Now)
	search := reviewcontext.NewSearchAdapter(api, time.Now,
		logging.New(os.Stderr, cfg.LogLevel, "search"))

	llmClient := llm.NewOpenAIClient(input.ModelName, llm.Config{
		BaseURL: cfg.LLMBaseURL,
		APIKey:  cfg.LLMAPIKey,
		Timeout: cfg.Timeout,
	}, logging.New(os.Stderr, cfg.LogLevel, "llm"))

	charger := output.NewCharger(api, cfg.RunID, logger)
	if err := charger.Charge(ctx, "actor-start-gb", startGigabytes(cfg.MemoryMbytes)); err != nil {
		return err
	}

	pipeline := agent.NewPipeline(llmClient, api, source, pricing, search, logger)
	result, err := pipeline.Run(ctx, input.ActorName, *input.Pedantic)
	if err != nil {
		return err
	}

	sink := output.NewSink(api, cfg.DatasetID, os.Stdout, logger)
	if err := sink.Write(ctx, output.Record{ActorID: result.ActorName, Response: result.Report}); err != nil {
		return err
	}
	if err := charger.Charge(ctx, "task-completed", 1); err != nil {
		return err
	}

	return printReport(result.Report, plain)
}

func printReport(report string, plain bool) error {
	if plain {
		fmt.Println(report)
		return nil
	}
	renderer, err := newMarkdownRenderer()
	if err != nil {
		fmt.Println(report)
		return nil
	}
	rendered, err := renderer.Render(report)
	if err != nil {
		fmt.Println(report)
		return nil
	}
	fmt.Print(rendered)
	return nil
}

// startGigabytes sizes the actor-start charge from the run's memory, rounding
// up with a minimum of one.
func startGigabytes(memoryMbytes int) int {
	if memoryMbytes <= 1024 {
		return 1
	}
	return (memoryMbytes + 1023) / 1024
}
