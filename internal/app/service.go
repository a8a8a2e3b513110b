package app

import (
	"context"
	"fmt"
	"runtime"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// GithubClient gives access to github organizations, repositories and users.
//go:generate mockgen -destination mock/githubcli.go -package mock github.com/m-zajac/contribreport/internal/app GithubClient
type GithubClient interface {
	RateLimit(ctx context.Context) (Quota, error)
	Organization(ctx context.Context, name string) (RawOrganization, error)
	Contributors(ctx context.Context, repo Repository) ([]RawContributor, error)
	Languages(ctx context.Context, repo Repository) (LanguageBreakdown, error)
	User(ctx context.Context, login string) (RawContributor, error)
}

// RepositoryPages returns single page of organization repositories.
// next is 0 when there are no more pages.
type RepositoryPages func(ctx context.Context, page int) (repos []Repository, next int, err error)

// RawOrganization is an organization as returned by github, with repositories not listed yet.
type RawOrganization struct {
	Name         string
	Repositories RepositoryPages
}

// RawContributor is a contributor as returned by github.
// Name and Email are only set when Detailed is true.
type RawContributor struct {
	ID       int64
	Login    string
	Name     *string
	Email    *string
	Detailed bool
}

func (c RawContributor) complete() bool {
	return c.Detailed
}

// ReportWriter stores finished report.
type ReportWriter interface {
	Write(r *Report, dir string) (string, error)
}

// LanguagePolicy decides which languages are reported for contributor present in many repositories.
type LanguagePolicy string

const (
	// LanguagesFirst keeps languages of the first repository that listed the contributor.
	LanguagesFirst LanguagePolicy = "first"
	// LanguagesLast keeps languages of the last processed repository that listed the contributor.
	LanguagesLast LanguagePolicy = "last"
	// LanguagesUnion collects languages of all contributor's repositories, in order of appearance.
	LanguagesUnion LanguagePolicy = "union"
)

// Valid tells if p is a known policy.
func (p LanguagePolicy) Valid() bool {
	switch p {
	case LanguagesFirst, LanguagesLast, LanguagesUnion:
		return true
	}
	return false
}

// Options configures Service.
type Options struct {
	// Workers is the number of repositories processed in parallel. Defaults to runtime.NumCPU().
	Workers int
	// LanguagePolicy defaults to LanguagesFirst.
	LanguagePolicy LanguagePolicy
	// IsolateFailures skips repositories that failed instead of aborting the run.
	// Exhausted api quota always aborts.
	IsolateFailures bool
}

// Service is main apps entry point. Provides all app functionality
type Service struct {
	githubClient GithubClient
	cache        Cache
	writer       ReportWriter
	guard        *Guard
	opts         Options
	l            logrus.FieldLogger
}

// NewService creates new Service instance
func NewService(
	githubClient GithubClient,
	cache Cache,
	writer ReportWriter,
	opts Options,
	l logrus.FieldLogger,
) *Service {
	if opts.Workers <= 0 {
		opts.Workers = runtime.NumCPU()
	}
	if opts.LanguagePolicy == "" {
		opts.LanguagePolicy = LanguagesFirst
	}

	return &Service{
		githubClient: githubClient,
		cache:        cache,
		writer:       writer,
		guard:        NewGuard(githubClient, l.WithField("component", "guard")),
		opts:         opts,
		l:            l,
	}
}

// GenerateReport aggregates organization contributors and writes the report into dir.
// Returns path of the written file. Nothing is written if aggregation fails.
func (s *Service) GenerateReport(ctx context.Context, organization string, dir string) (string, error) {
	report, err := s.Run(ctx, organization)
	if err != nil {
		return "", err
	}

	path, err := s.writer.Write(report, dir)
	if err != nil {
		return "", fmt.Errorf("writing report: %w", err)
	}
	s.l.WithField("path", path).Infof("report with %d contributors written", report.Len())

	return path, nil
}

// Run aggregates contributors of all organization's repositories.
func (s *Service) Run(ctx context.Context, organization string) (*Report, error) {
	if organization == "" {
		return nil, InvalidRequestError("organization name cannot be empty")
	}

	org, err := s.organization(ctx, organization)
	if err != nil {
		return nil, err
	}
	s.l.Infof("organization %s has %d repositories", org.Name, len(org.Repositories))

	results, err := s.collect(ctx, org.Repositories)
	if err != nil {
		return nil, err
	}

	report := s.fold(organization, results)
	for _, f := range report.Failures {
		s.l.WithField("repo", f.Repository).Errorf("repository skipped: %v", f.Err)
	}

	return report, nil
}

func (s *Service) organization(ctx context.Context, name string) (*Organization, error) {
	raw, err := NewOrganizationFetcher(s.githubClient, s.guard, name).Request(ctx)
	if err != nil {
		return nil, err
	}

	return NewOrganizationParser(raw).Parse(ctx)
}

// repositoryResult is the outcome of a single repository task.
type repositoryResult struct {
	repo         string
	contributors []Contributor
	languages    LanguageSet
	err          error
}

// collect runs one task per repository on a bounded pool.
// Results keep the order of repos.
func (s *Service) collect(ctx context.Context, repos []Repository) ([]repositoryResult, error) {
	results := make([]repositoryResult, len(repos))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.opts.Workers)
	for i, repo := range repos {
		i, repo := i, repo
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			res, err := s.repository(gctx, repo)
			if err != nil {
				if !s.opts.IsolateFailures || IsRateLimitExceeded(err) {
					return fmt.Errorf("repository %s: %w", repo.Name, err)
				}
				res = repositoryResult{repo: repo.Name, err: err}
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return results, nil
}

func (s *Service) repository(ctx context.Context, repo Repository) (repositoryResult, error) {
	l := s.l.WithField("repo", repo.Name)
	l.Info("getting contributors and languages")

	breakdown, err := NewLanguageFetcher(s.githubClient, s.guard, s.cache, repo).Request(ctx)
	if err != nil {
		return repositoryResult{}, err
	}
	languages := NewLanguageParser(breakdown).Parse()

	contributorFetcher := NewContributorFetcher(s.githubClient, s.guard, repo)
	raw, err := contributorFetcher.Request(ctx)
	if err != nil {
		return repositoryResult{}, err
	}
	contributors, err := NewContributorParser(raw, contributorFetcher, s.cache, l).Parse(ctx)
	if err != nil {
		return repositoryResult{}, err
	}

	return repositoryResult{
		repo:         repo.Name,
		contributors: contributors,
		languages:    languages,
	}, nil
}

// fold merges repository results into report, single threaded, in results order.
func (s *Service) fold(organization string, results []repositoryResult) *Report {
	report := NewReport(organization)
	for _, res := range results {
		if res.err != nil {
			report.Failures = append(report.Failures, RepositoryFailure{
				Repository: res.repo,
				Err:        res.err,
			})
			continue
		}

		for _, user := range res.contributors {
			report.Merge(user, res.repo, res.languages, s.opts.LanguagePolicy)
		}
	}

	return report
}
