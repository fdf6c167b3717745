package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/bytedance/sonic"
	"github.com/spf13/cobra"

	"github.com/GriffinCanCode/numclass/internal/domain/classify"
	"github.com/GriffinCanCode/numclass/internal/infrastructure/config"
	"github.com/GriffinCanCode/numclass/internal/providers/funfact"
)

var offline bool

// classifyCmd classifies a single number without starting the server
var classifyCmd = &cobra.Command{
	Use:   "classify <number>",
	Short: "Classify one number and print the JSON result",
	Long: `Runs the same classification as the HTTP endpoint and prints the
response body. With --offline the fun fact is the built-in fallback text.`,
	Args:         cobra.ExactArgs(1),
	SilenceUsage: true,
	RunE:         runClassify,
}

func init() {
	classifyCmd.Flags().BoolVar(&offline, "offline", false, "Skip the external fun fact lookup")
}

func runClassify(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	classifier := classify.New(newEnricher(cfg, offline), nil, nil)

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	result, err := classifier.Classify(ctx, args[0])
	if errors.Is(err, classify.ErrInvalidNumber) {
		return fmt.Errorf("%q is not a valid number", args[0])
	}
	if err != nil {
		return err
	}

	out, err := sonic.ConfigStd.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("encode result: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(out))
	return nil
}

func newEnricher(cfg *config.Config, offline bool) classify.Enricher {
	if offline || !cfg.FunFact.Enabled {
		return funfact.Fallback{}
	}
	return funfact.New(funfact.Config{
		URL:             cfg.FunFact.URL,
		Timeout:         cfg.FunFact.Timeout,
		Retries:         cfg.FunFact.Retries,
		AllowNegative:   cfg.FunFact.AllowNegative,
		BreakerFailures: cfg.FunFact.BreakerFailures,
		BreakerCooldown: cfg.FunFact.BreakerCooldown,
		PropagateTrace:  cfg.FunFact.PropagateTrace,
	})
}
