package app

import "time"

// Organization entity
type Organization struct {
	Name         string
	Repositories []Repository
}

// Repository entity. Identified by ID.
type Repository struct {
	ID    int64
	Name  string
	Owner string
}

// Contributor entity
type Contributor struct {
	ID    int64
	Login string
	Name  string
	Email string
}

// LanguageBytes is a single entry of repository's language breakdown.
type LanguageBytes struct {
	Name  string
	Bytes int
}

// LanguageBreakdown lists repository languages in the order returned by github.
type LanguageBreakdown []LanguageBytes

// LanguageSet is an ordered list of language names.
type LanguageSet []string

// AggregatedContributor groups all repositories of a single contributor.
type AggregatedContributor struct {
	User      Contributor
	Repos     []string
	Languages LanguageSet
}

// RepositoryFailure describes repository skipped during aggregation.
type RepositoryFailure struct {
	Repository string
	Err        error
}

// Quota is the github api rate limit state.
type Quota struct {
	Limit     int
	Used      int
	Remaining int
	Reset     time.Time
}

// Report is a contributor id keyed collection of aggregated contributors.
// Contributors are kept in the order they were first seen.
type Report struct {
	Organization string
	Failures     []RepositoryFailure

	order []int64
	byID  map[int64]*AggregatedContributor
}

// NewReport creates empty report for given organization.
func NewReport(organization string) *Report {
	return &Report{
		Organization: organization,
		byID:         make(map[int64]*AggregatedContributor),
	}
}

// Get returns aggregated contributor by id.
func (r *Report) Get(id int64) (*AggregatedContributor, bool) {
	c, ok := r.byID[id]
	return c, ok
}

// Len returns number of unique contributors.
func (r *Report) Len() int {
	return len(r.order)
}

// Contributors returns all contributors in insertion order.
func (r *Report) Contributors() []AggregatedContributor {
	cs := make([]AggregatedContributor, 0, len(r.order))
	for _, id := range r.order {
		cs = append(cs, *r.byID[id])
	}

	return cs
}

// Merge adds repository with its languages to the contributor's entry.
// New contributors are inserted with repository languages, existing ones get repo appended
// and languages updated according to policy.
func (r *Report) Merge(user Contributor, repo string, languages LanguageSet, policy LanguagePolicy) {
	el, ok := r.byID[user.ID]
	if !ok {
		r.order = append(r.order, user.ID)
		r.byID[user.ID] = &AggregatedContributor{
			User:      user,
			Repos:     []string{repo},
			Languages: append(LanguageSet(nil), languages...),
		}
		return
	}

	el.Repos = append(el.Repos, repo)
	switch policy {
	case LanguagesLast:
		el.Languages = append(LanguageSet(nil), languages...)
	case LanguagesUnion:
		el.Languages = unionLanguages(el.Languages, languages)
	}
}

func unionLanguages(have LanguageSet, add LanguageSet) LanguageSet {
	seen := make(map[string]bool, len(have))
	for _, l := range have {
		seen[l] = true
	}
	for _, l := range add {
		if !seen[l] {
			seen[l] = true
			have = append(have, l)
		}
	}

	return have
}
