package commands

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"storekeys/internal/app"
	"storekeys/internal/domain"
	"storekeys/internal/fetch"
	"storekeys/internal/report"
)

// Exit codes per the CLI contract.
const (
	ExitOK            = 0
	ExitLookupsFailed = 1
	ExitUsage         = 2
)

var validPlatforms = map[string]bool{"IOS": true, "MAC_OS": true, "TV_OS": true}

// lookupsFailedError marks a run in which some (app, locale) pairs failed;
// the pairs themselves were already logged.
type lookupsFailedError struct {
	failed int
}

func (e *lookupsFailedError) Error() string {
	return fmt.Sprintf("%d lookup(s) failed", e.failed)
}

type options struct {
	locales    []string
	platform   string
	preferLive bool
	country    string
	noColor    bool
	verbose    bool
	envFile    string
}

// Execute runs the CLI and returns the process exit code.
func Execute(ctx context.Context) int {
	opts := &options{}

	root := &cobra.Command{
		Use:           "storekeys <app-id>...",
		Short:         "Fetch App Store keywords for apps and locales",
		Long:          "Fetch App Store keywords for one or more apps and locales,\nusing the management API when credentials are configured and the\npublic catalog API otherwise.",
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), opts, args)
		},
	}

	root.Flags().StringSliceVarP(&opts.locales, "locale", "l", nil, "locale tag (repeatable), e.g. en-US de-DE")
	root.Flags().StringVar(&opts.platform, "platform", "IOS", "platform for version selection (IOS, MAC_OS, TV_OS; authenticated mode)")
	root.Flags().BoolVar(&opts.preferLive, "prefer-live", false, "prefer the READY_FOR_SALE version (authenticated mode)")
	root.Flags().StringVar(&opts.country, "country", "", "explicit storefront country override, e.g. us")
	root.Flags().BoolVar(&opts.noColor, "no-color", false, "disable colored output")
	root.Flags().BoolVarP(&opts.verbose, "verbose", "v", false, "debug logging")
	root.Flags().StringVar(&opts.envFile, "env-file", "", "load environment from this file instead of ./.env")
	_ = root.MarkFlagRequired("locale")

	if err := root.ExecuteContext(ctx); err != nil {
		var lf *lookupsFailedError
		if errors.As(err, &lf) {
			fmt.Fprintln(os.Stderr, "Error:", err)
			return ExitLookupsFailed
		}
		fmt.Fprintln(os.Stderr, "Error:", err)
		return ExitUsage
	}
	return ExitOK
}

func run(ctx context.Context, opts *options, args []string) error {
	// Optional .env: a missing file is fine, credentials may come from
	// the real environment.
	if opts.envFile != "" {
		if err := godotenv.Load(opts.envFile); err != nil {
			return fmt.Errorf("env file %s: %w", opts.envFile, err)
		}
	} else {
		_ = godotenv.Load()
	}

	cfg, err := app.FromEnv()
	if err != nil {
		return err
	}
	if !validPlatforms[strings.ToUpper(opts.platform)] {
		return fmt.Errorf("invalid platform %q (want IOS, MAC_OS, or TV_OS)", opts.platform)
	}

	log := app.NewLogger(opts.verbose)
	defer func() { _ = log.Sync() }()

	wire, err := app.NewWire(cfg, strings.ToUpper(opts.platform), log)
	if err != nil {
		return err
	}

	// Classify and validate everything up front: argument problems are
	// fatal before the first network call.
	ids := make([]domain.AppIdentifier, 0, len(args))
	for _, raw := range args {
		id, err := domain.ClassifyIdentifier(raw, wire.Authenticated)
		if err != nil {
			return err
		}
		ids = append(ids, id)
	}
	locales := make([]domain.Locale, 0, len(opts.locales))
	for _, tag := range opts.locales {
		loc, err := domain.ParseLocale(tag)
		if err != nil {
			return err
		}
		locales = append(locales, loc)
	}

	svc := &fetch.Service{
		Provider:       wire.Provider,
		Printer:        report.NewPrinter(os.Stdout, opts.noColor),
		Log:            log,
		DefaultCountry: cfg.DefaultCountry,
		CharLimit:      cfg.CharLimit,
	}
	failed := svc.Run(ctx, fetch.Request{
		Apps:            ids,
		Locales:         locales,
		CountryOverride: opts.country,
		PreferLive:      opts.preferLive,
	})
	if failed > 0 {
		return &lookupsFailedError{failed: failed}
	}
	return nil
}
