package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/kelseyhightower/envconfig"
	"github.com/m-zajac/contribreport/internal/adapter/github"
	"github.com/m-zajac/contribreport/internal/app"
	"github.com/m-zajac/contribreport/internal/limiter"
	"github.com/m-zajac/contribreport/internal/report"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

const (
	flagOrganization = "organization"
	flagAuthKey      = "auth-key"
	flagFilePath     = "file-path"
)

type flags struct {
	organization string
	authKey      string
	filePath     string
}

func main() {
	l := logrus.New()
	l.Level = logrus.InfoLevel

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd(l).ExecuteContext(ctx); err != nil {
		stop()
		l.Fatalf("couldn't generate report: %v", err)
	}
}

func newRootCmd(l *logrus.Logger) *cobra.Command {
	var f flags

	cmd := &cobra.Command{
		Use:   "contribreport",
		Short: "Writes csv report of github organization contributors",
		Long: `Lists all repositories of github organization, collects their contributors and languages
and writes one csv row per contributor into report_<date>.csv in given directory.

Environment variables configure logging, api access, parallelism and caching.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			var conf Config
			if err := envconfig.Process("", &conf); err != nil {
				return fmt.Errorf("parsing config: %w", err)
			}
			return run(cmd.Context(), conf, f, l, cmd.OutOrStdout())
		},
	}

	cmd.Flags().StringVar(&f.organization, flagOrganization, "", "github organization login")
	cmd.Flags().StringVar(&f.authKey, flagAuthKey, "", "github api token")
	cmd.Flags().StringVar(&f.filePath, flagFilePath, "/tmp/", "directory for the report file")
	_ = cmd.MarkFlagRequired(flagOrganization)
	_ = cmd.MarkFlagRequired(flagAuthKey)

	return cmd
}

func run(ctx context.Context, conf Config, f flags, l *logrus.Logger, out io.Writer) error {
	level, err := logrus.ParseLevel(conf.LogLevel)
	if err != nil {
		return fmt.Errorf("invalid log level: %w", err)
	}
	l.SetLevel(level)

	if !conf.LanguagePolicy.Valid() {
		return fmt.Errorf("invalid language policy %q", conf.LanguagePolicy)
	}
	if f.authKey == "" {
		return errors.New("auth key cannot be empty")
	}

	if conf.GithubTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, conf.GithubTimeout)
		defer cancel()
	}

	store, closer, err := newCache(ctx, conf)
	if err != nil {
		return err
	}
	defer closer.Close()

	githubClient, err := github.NewClient(
		limiter.NewTransport(http.DefaultTransport, conf.GithubAPIRateLimit),
		conf.GithubAPIAddress,
		f.authKey,
	)
	if err != nil {
		return fmt.Errorf("creating github client: %w", err)
	}

	service := app.NewService(
		githubClient,
		store,
		report.NewWriter(),
		app.Options{
			Workers:         conf.Workers,
			LanguagePolicy:  conf.LanguagePolicy,
			IsolateFailures: conf.IsolateFailures,
		},
		l.WithField("component", "service"),
	)

	l.WithFields(logrus.Fields{
		"organization": f.organization,
		"cache":        conf.CacheBackend,
	}).Info("generating report")

	path, err := service.GenerateReport(ctx, f.organization, f.filePath)
	if err != nil {
		return err
	}
	fmt.Fprintln(out, path)

	return nil
}
