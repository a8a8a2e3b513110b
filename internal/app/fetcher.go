package app

import (
	"context"
	"strconv"
)

// guardedCall runs call only if api quota allows it.
// Failures of call are translated by wrap.
func guardedCall(ctx context.Context, g *Guard, call func() error, wrap func(RemoteError) error) error {
	exceeded, q, err := g.CheckQuota(ctx)
	if err != nil {
		return wrap(remoteErrorFrom(err))
	}
	if exceeded {
		return newRateLimitExceededError(q)
	}

	if err := call(); err != nil {
		return wrap(remoteErrorFrom(err))
	}

	return nil
}

func wrapOrganizationError(re RemoteError) error {
	return &OrganizationFetchError{RemoteError: re}
}

func wrapContributorError(re RemoteError) error {
	return &ContributorFetchError{RemoteError: re}
}

func wrapLanguageError(re RemoteError) error {
	return &LanguageFetchError{RemoteError: re}
}

// OrganizationFetcher retrieves organization by name.
type OrganizationFetcher struct {
	client GithubClient
	guard  *Guard
	name   string
}

// NewOrganizationFetcher creates new OrganizationFetcher instance.
func NewOrganizationFetcher(client GithubClient, guard *Guard, name string) *OrganizationFetcher {
	return &OrganizationFetcher{
		client: client,
		guard:  guard,
		name:   name,
	}
}

// Request returns raw organization with lazily listed repositories.
func (f *OrganizationFetcher) Request(ctx context.Context) (RawOrganization, error) {
	var org RawOrganization
	err := guardedCall(ctx, f.guard, func() error {
		var err error
		org, err = f.client.Organization(ctx, f.name)
		return err
	}, wrapOrganizationError)

	return org, err
}

// ContributorFetcher retrieves contributors of a single repository.
type ContributorFetcher struct {
	client GithubClient
	guard  *Guard
	repo   Repository
}

// NewContributorFetcher creates new ContributorFetcher instance.
func NewContributorFetcher(client GithubClient, guard *Guard, repo Repository) *ContributorFetcher {
	return &ContributorFetcher{
		client: client,
		guard:  guard,
		repo:   repo,
	}
}

// Request returns repository contributors as listed by github.
func (f *ContributorFetcher) Request(ctx context.Context) ([]RawContributor, error) {
	var contributors []RawContributor
	err := guardedCall(ctx, f.guard, func() error {
		var err error
		contributors, err = f.client.Contributors(ctx, f.repo)
		return err
	}, wrapContributorError)

	return contributors, err
}

// Details returns full user profile for given login.
func (f *ContributorFetcher) Details(ctx context.Context, login string) (RawContributor, error) {
	var user RawContributor
	err := guardedCall(ctx, f.guard, func() error {
		var err error
		user, err = f.client.User(ctx, login)
		return err
	}, wrapContributorError)

	return user, err
}

// LanguageFetcher retrieves languages of a single repository.
// Results are cached under LanguagesCacheKey.
type LanguageFetcher struct {
	client GithubClient
	guard  *Guard
	cache  Cache
	repo   Repository
}

// NewLanguageFetcher creates new LanguageFetcher instance.
func NewLanguageFetcher(client GithubClient, guard *Guard, cache Cache, repo Repository) *LanguageFetcher {
	return &LanguageFetcher{
		client: client,
		guard:  guard,
		cache:  cache,
		repo:   repo,
	}
}

// Request returns repository languages from cache, or from github if they're not cached.
// Empty breakdowns are never cached.
func (f *LanguageFetcher) Request(ctx context.Context) (LanguageBreakdown, error) {
	var languages LanguageBreakdown
	err := guardedCall(ctx, f.guard, func() error {
		key := LanguagesCacheKey(f.repo.ID)
		h, ok, err := f.cache.Get(ctx, key)
		if err != nil {
			return err
		}
		if ok {
			languages = breakdownFromHash(h)
			return nil
		}

		languages, err = f.client.Languages(ctx, f.repo)
		if err != nil {
			return err
		}
		if len(languages) == 0 {
			return nil
		}

		return f.cache.Set(ctx, key, breakdownToHash(languages))
	}, wrapLanguageError)

	return languages, err
}

func breakdownToHash(b LanguageBreakdown) Hash {
	h := make(Hash, 0, len(b))
	for _, l := range b {
		h = append(h, Field{Key: l.Name, Value: strconv.Itoa(l.Bytes)})
	}

	return h
}

func breakdownFromHash(h Hash) LanguageBreakdown {
	b := make(LanguageBreakdown, 0, len(h))
	for _, f := range h {
		// Byte counts are informative only, malformed values are kept as zero.
		n, _ := strconv.Atoi(f.Value)
		b = append(b, LanguageBytes{Name: f.Key, Bytes: n})
	}

	return b
}
