package app

import (
	"context"
	"fmt"
	"strconv"

	"github.com/sirupsen/logrus"
)

// OrganizationParser turns raw organization into Organization.
type OrganizationParser struct {
	org RawOrganization
}

// NewOrganizationParser creates new OrganizationParser instance.
func NewOrganizationParser(org RawOrganization) *OrganizationParser {
	return &OrganizationParser{org: org}
}

// Parse lists all repository pages and returns organization with complete repository list.
func (p *OrganizationParser) Parse(ctx context.Context) (*Organization, error) {
	org := Organization{Name: p.org.Name}
	if p.org.Repositories == nil {
		return &org, nil
	}

	page := 1
	for page != 0 {
		repos, next, err := p.org.Repositories(ctx, page)
		if err != nil {
			return nil, wrapOrganizationError(remoteErrorFrom(err))
		}
		org.Repositories = append(org.Repositories, repos...)
		page = next
	}

	return &org, nil
}

// ContributorParser turns raw contributors into Contributor records.
// Records are read from cache if possible, and stored in cache otherwise.
type ContributorParser struct {
	contributors []RawContributor
	fetcher      *ContributorFetcher
	cache        Cache
	l            logrus.FieldLogger
}

// NewContributorParser creates new ContributorParser instance.
// fetcher is used to complete user profiles missing in cache.
func NewContributorParser(
	contributors []RawContributor,
	fetcher *ContributorFetcher,
	cache Cache,
	l logrus.FieldLogger,
) *ContributorParser {
	return &ContributorParser{
		contributors: contributors,
		fetcher:      fetcher,
		cache:        cache,
		l:            l,
	}
}

// Parse returns contributor records in listing order.
func (p *ContributorParser) Parse(ctx context.Context) ([]Contributor, error) {
	result := make([]Contributor, 0, len(p.contributors))
	for _, raw := range p.contributors {
		c, err := p.contributor(ctx, raw)
		if err != nil {
			return nil, err
		}
		result = append(result, c)
	}

	return result, nil
}

func (p *ContributorParser) contributor(ctx context.Context, raw RawContributor) (Contributor, error) {
	key := ContributorCacheKey(raw.ID)
	h, ok, err := p.cache.Get(ctx, key)
	if err != nil {
		return Contributor{}, fmt.Errorf("reading %s from cache: %w", key, err)
	}
	if ok {
		p.l.Debugf("got %s from cache", key)
		c, err := contributorFromHash(h)
		if err != nil {
			return Contributor{}, fmt.Errorf("decoding cached %s: %w", key, err)
		}
		return c, nil
	}

	if !raw.complete() {
		details, err := p.fetcher.Details(ctx, raw.Login)
		if err != nil {
			return Contributor{}, err
		}
		raw.Name = details.Name
		raw.Email = details.Email
	}

	c := Contributor{
		ID:    raw.ID,
		Login: raw.Login,
		Name:  stringOrEmpty(raw.Name),
		Email: stringOrEmpty(raw.Email),
	}
	if err := p.cache.Set(ctx, key, contributorToHash(c)); err != nil {
		return Contributor{}, fmt.Errorf("storing %s in cache: %w", key, err)
	}
	p.l.Debugf("stored %s in cache", key)

	return c, nil
}

// LanguageParser turns language breakdown into language names.
type LanguageParser struct {
	languages LanguageBreakdown
}

// NewLanguageParser creates new LanguageParser instance.
func NewLanguageParser(languages LanguageBreakdown) *LanguageParser {
	return &LanguageParser{languages: languages}
}

// Parse returns language names, byte counts are dropped.
func (p *LanguageParser) Parse() LanguageSet {
	names := make(LanguageSet, 0, len(p.languages))
	for _, l := range p.languages {
		names = append(names, l.Name)
	}

	return names
}

func contributorToHash(c Contributor) Hash {
	return Hash{
		{Key: "id", Value: strconv.FormatInt(c.ID, 10)},
		{Key: "login", Value: c.Login},
		{Key: "name", Value: c.Name},
		{Key: "email", Value: c.Email},
	}
}

func contributorFromHash(h Hash) (Contributor, error) {
	idStr, _ := h.Value("id")
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		return Contributor{}, fmt.Errorf("invalid id %q: %w", idStr, err)
	}

	login, _ := h.Value("login")
	name, _ := h.Value("name")
	email, _ := h.Value("email")

	return Contributor{
		ID:    id,
		Login: login,
		Name:  name,
		Email: email,
	}, nil
}

func stringOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
