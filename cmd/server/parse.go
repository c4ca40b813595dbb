package main

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"cemetery/internal/model"
	"cemetery/internal/repository"
	"cemetery/internal/service"

	"github.com/spf13/cobra"
)

var (
	useModel       bool
	cemeteryFilter string
)

var parseCmd = &cobra.Command{
	Use:   "parse <query>",
	Short: "Print the search intent extracted from a query",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		intent, err := extractIntent(cmd.Context(), strings.Join(args, " "))
		if err != nil {
			return err
		}
		out, err := json.MarshalIndent(intent, "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(out))
		return nil
	},
}

var buildQueryCmd = &cobra.Command{
	Use:   "build-query <query>",
	Short: "Print the SQL and arguments a query would run",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		intent, err := extractIntent(cmd.Context(), strings.Join(args, " "))
		if err != nil {
			return err
		}
		q := repository.BuildSearchQuery(intent, cemeteryFilter)

		w := cmd.OutOrStdout()
		fmt.Fprintln(w, q.Text)
		for i, arg := range q.Args {
			fmt.Fprintf(w, "$%d = %#v\n", i+1, arg)
		}
		return nil
	},
}

func init() {
	for _, cmd := range []*cobra.Command{parseCmd, buildQueryCmd} {
		cmd.Flags().BoolVar(&useModel, "llm", false, "extract with the configured language model instead of the rule-based parser")
	}
	buildQueryCmd.Flags().StringVar(&cemeteryFilter, "cemetery", "", "restrict results to a cemetery id")
}

// extractIntent runs the rule-based parser, or the full IntentParser when
// --llm is set. The LLM path still falls back on failure.
func extractIntent(ctx context.Context, query string) (*model.SearchIntent, error) {
	if !useModel {
		return service.ParseFallback(query), nil
	}

	cfg, log, err := bootstrap()
	if err != nil {
		return nil, err
	}
	defer log.Sync()

	if ctx == nil {
		ctx = context.Background()
	}
	ctx, cancel := context.WithTimeout(ctx, time.Minute)
	defer cancel()

	parser := service.NewIntentParser(service.NewOpenAIClient(&cfg.OpenAI, log), nil, log)
	return parser.Parse(ctx, query), nil
}
