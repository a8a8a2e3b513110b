package app_test

import (
	"context"
	"errors"
	"net/http"
	"os"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/m-zajac/contribreport/internal/app"
	"github.com/m-zajac/contribreport/internal/app/mock"
	"github.com/m-zajac/contribreport/internal/report"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func singlePage(repos ...app.Repository) app.RepositoryPages {
	return func(ctx context.Context, page int) ([]app.Repository, int, error) {
		return repos, 0, nil
	}
}

func detailed(id int64, login string) app.RawContributor {
	return app.RawContributor{
		ID:       id,
		Login:    login,
		Name:     strPtr("Name of " + login),
		Detailed: true,
	}
}

func TestServiceGenerateReport(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := app.Repository{ID: 1, Name: "reponame", Owner: "org"}

	client := mock.NewMockGithubClient(ctrl)
	client.EXPECT().RateLimit(gomock.Any()).Return(availableQuota, nil).AnyTimes()
	client.EXPECT().
		Organization(gomock.Any(), "org").
		Return(app.RawOrganization{Name: "org", Repositories: singlePage(repo)}, nil)
	client.EXPECT().
		Languages(gomock.Any(), repo).
		Return(app.LanguageBreakdown{
			{Name: "Python", Bytes: 120697},
			{Name: "HTML", Bytes: 19396},
			{Name: "Shell", Bytes: 8786},
			{Name: "CSS", Bytes: 1420},
			{Name: "Makefile", Bytes: 1234},
			{Name: "Dockerfile", Bytes: 832},
			{Name: "JavaScript", Bytes: 817},
		}, nil)
	client.EXPECT().
		Contributors(gomock.Any(), repo).
		Return([]app.RawContributor{{ID: 123456789, Login: "testuser"}}, nil)
	client.EXPECT().
		User(gomock.Any(), "testuser").
		Return(app.RawContributor{
			ID:       123456789,
			Login:    "testuser",
			Name:     strPtr("Test User"),
			Email:    strPtr("test@test.com"),
			Detailed: true,
		}, nil)

	cache := mock.NewCache(nil)
	s := app.NewService(client, cache, report.NewWriter(), app.Options{Workers: 2}, newTestLogger())

	dir := t.TempDir() + "/reports"
	path, err := s.GenerateReport(context.Background(), "org", dir)
	require.NoError(t, err)

	rows, err := report.Read(path)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "testuser", rows[0].Login)
	assert.Equal(t, "Test User", rows[0].Name)
	assert.Equal(t, "test@test.com", rows[0].Email)
	assert.Equal(t, []string{"reponame"}, rows[0].Repositories)
	assert.Equal(t,
		[]string{"Python", "HTML", "Shell", "CSS", "Makefile", "Dockerfile", "JavaScript"},
		rows[0].Languages,
	)

	assert.True(t, cache.Has(app.ContributorCacheKey(123456789)))
	assert.True(t, cache.Has(app.LanguagesCacheKey(1)))
}

func TestServiceRunAggregation(t *testing.T) {
	t.Parallel()

	repos := []app.Repository{
		{ID: 1, Name: "alpha", Owner: "org"},
		{ID: 2, Name: "beta", Owner: "org"},
		{ID: 3, Name: "gamma", Owner: "org"},
	}
	languages := map[int64]app.LanguageBreakdown{
		1: {{Name: "Go", Bytes: 10}, {Name: "Shell", Bytes: 1}},
		2: {{Name: "Python", Bytes: 10}},
		3: {{Name: "Go", Bytes: 5}, {Name: "Python", Bytes: 3}},
	}
	contributors := map[int64][]app.RawContributor{
		1: {detailed(1, "alice"), detailed(2, "bob")},
		2: {detailed(2, "bob")},
		3: {detailed(1, "alice"), detailed(2, "bob"), detailed(3, "carol")},
	}

	tests := []struct {
		name   string
		policy app.LanguagePolicy
		want   []app.AggregatedContributor
	}{
		{
			name:   "first repository languages",
			policy: app.LanguagesFirst,
			want: []app.AggregatedContributor{
				{User: app.Contributor{ID: 1, Login: "alice", Name: "Name of alice"}, Repos: []string{"alpha", "gamma"}, Languages: app.LanguageSet{"Go", "Shell"}},
				{User: app.Contributor{ID: 2, Login: "bob", Name: "Name of bob"}, Repos: []string{"alpha", "beta", "gamma"}, Languages: app.LanguageSet{"Go", "Shell"}},
				{User: app.Contributor{ID: 3, Login: "carol", Name: "Name of carol"}, Repos: []string{"gamma"}, Languages: app.LanguageSet{"Go", "Python"}},
			},
		},
		{
			name:   "last repository languages",
			policy: app.LanguagesLast,
			want: []app.AggregatedContributor{
				{User: app.Contributor{ID: 1, Login: "alice", Name: "Name of alice"}, Repos: []string{"alpha", "gamma"}, Languages: app.LanguageSet{"Go", "Python"}},
				{User: app.Contributor{ID: 2, Login: "bob", Name: "Name of bob"}, Repos: []string{"alpha", "beta", "gamma"}, Languages: app.LanguageSet{"Go", "Python"}},
				{User: app.Contributor{ID: 3, Login: "carol", Name: "Name of carol"}, Repos: []string{"gamma"}, Languages: app.LanguageSet{"Go", "Python"}},
			},
		},
		{
			name:   "union of languages",
			policy: app.LanguagesUnion,
			want: []app.AggregatedContributor{
				{User: app.Contributor{ID: 1, Login: "alice", Name: "Name of alice"}, Repos: []string{"alpha", "gamma"}, Languages: app.LanguageSet{"Go", "Shell", "Python"}},
				{User: app.Contributor{ID: 2, Login: "bob", Name: "Name of bob"}, Repos: []string{"alpha", "beta", "gamma"}, Languages: app.LanguageSet{"Go", "Shell", "Python"}},
				{User: app.Contributor{ID: 3, Login: "carol", Name: "Name of carol"}, Repos: []string{"gamma"}, Languages: app.LanguageSet{"Go", "Python"}},
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			client := mock.NewMockGithubClient(ctrl)
			client.EXPECT().RateLimit(gomock.Any()).Return(availableQuota, nil).AnyTimes()
			client.EXPECT().
				Organization(gomock.Any(), "org").
				Return(app.RawOrganization{Name: "org", Repositories: singlePage(repos...)}, nil)
			for _, r := range repos {
				client.EXPECT().Languages(gomock.Any(), r).Return(languages[r.ID], nil)
				client.EXPECT().Contributors(gomock.Any(), r).Return(contributors[r.ID], nil)
			}

			cache := mock.NewCache(nil)
			s := app.NewService(client, cache, report.NewWriter(), app.Options{
				Workers:        3,
				LanguagePolicy: tt.policy,
			}, newTestLogger())

			got, err := s.Run(context.Background(), "org")
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.Contributors())
			assert.Empty(t, got.Failures)

			bob, ok := got.Get(2)
			require.True(t, ok)
			assert.Len(t, bob.Repos, 3)

			for id := int64(1); id <= 3; id++ {
				assert.True(t, cache.Has(app.ContributorCacheKey(id)))
			}
		})
	}
}

func TestServiceRunWithCachedContributors(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := app.Repository{ID: 1, Name: "reponame", Owner: "org"}

	// User is not expected, cached contributor skips detail lookup.
	client := mock.NewMockGithubClient(ctrl)
	client.EXPECT().RateLimit(gomock.Any()).Return(availableQuota, nil).Times(3)
	client.EXPECT().
		Organization(gomock.Any(), "org").
		Return(app.RawOrganization{Name: "org", Repositories: singlePage(repo)}, nil)
	client.EXPECT().Languages(gomock.Any(), repo).Return(app.LanguageBreakdown{}, nil)
	client.EXPECT().
		Contributors(gomock.Any(), repo).
		Return([]app.RawContributor{{ID: 5, Login: "cached"}}, nil)

	cache := mock.NewCache(map[string]app.Hash{
		app.ContributorCacheKey(5): {
			{Key: "id", Value: "5"},
			{Key: "login", Value: "cached"},
			{Key: "name", Value: "Cached User"},
			{Key: "email", Value: "cached@example.com"},
		},
	})
	s := app.NewService(client, cache, report.NewWriter(), app.Options{}, newTestLogger())

	got, err := s.Run(context.Background(), "org")
	require.NoError(t, err)
	require.Equal(t, 1, got.Len())

	c := got.Contributors()[0]
	assert.Equal(t, "Cached User", c.User.Name)
	assert.Empty(t, c.Languages)
	assert.Equal(t, 0, cache.Updates())
	assert.False(t, cache.Has(app.LanguagesCacheKey(1)))
}

func TestServiceRunFailures(t *testing.T) {
	t.Parallel()

	repos := []app.Repository{
		{ID: 1, Name: "alpha", Owner: "org"},
		{ID: 2, Name: "broken", Owner: "org"},
	}
	notFound := &app.RemoteError{Message: "Not Found", StatusCode: http.StatusNotFound}

	tests := []struct {
		name          string
		isolate       bool
		quotaExceeded bool
		wantErr       bool
		wantRateLimit bool
		wantLen       int
		wantFailures  []string
	}{
		{
			name:    "fail fast",
			isolate: false,
			wantErr: true,
		},
		{
			name:         "isolated failures",
			isolate:      true,
			wantErr:      false,
			wantLen:      1,
			wantFailures: []string{"broken"},
		},
		{
			name:          "exceeded quota aborts isolated run",
			isolate:       true,
			quotaExceeded: true,
			wantErr:       true,
			wantRateLimit: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			// Quota is consumed in order: organization, alpha languages, alpha contributors, broken languages.
			quotas := []app.Quota{availableQuota, availableQuota, availableQuota, availableQuota}
			if tt.quotaExceeded {
				quotas[3] = exhaustedQuota
			}
			var quotaCalls int

			client := mock.NewMockGithubClient(ctrl)
			client.EXPECT().
				RateLimit(gomock.Any()).
				DoAndReturn(func(ctx context.Context) (app.Quota, error) {
					q := availableQuota
					if quotaCalls < len(quotas) {
						q = quotas[quotaCalls]
					}
					quotaCalls++
					return q, nil
				}).
				AnyTimes()
			client.EXPECT().
				Organization(gomock.Any(), "org").
				Return(app.RawOrganization{Name: "org", Repositories: singlePage(repos...)}, nil)
			client.EXPECT().Languages(gomock.Any(), repos[0]).Return(app.LanguageBreakdown{{Name: "Go", Bytes: 1}}, nil)
			client.EXPECT().Contributors(gomock.Any(), repos[0]).Return([]app.RawContributor{detailed(1, "alice")}, nil)
			client.EXPECT().Languages(gomock.Any(), repos[1]).Return(nil, notFound).AnyTimes()

			writer := report.NewWriter()
			s := app.NewService(client, mock.NewCache(nil), writer, app.Options{
				Workers:         1,
				IsolateFailures: tt.isolate,
			}, newTestLogger())

			dir := t.TempDir()
			if tt.wantErr {
				_, err := s.GenerateReport(context.Background(), "org", dir)
				require.Error(t, err)
				assert.Equal(t, tt.wantRateLimit, app.IsRateLimitExceeded(err))
				if !tt.wantRateLimit {
					var fetchErr *app.LanguageFetchError
					require.True(t, errors.As(err, &fetchErr))
					assert.Equal(t, http.StatusNotFound, fetchErr.StatusCode)
				}

				entries, err := os.ReadDir(dir)
				require.NoError(t, err)
				assert.Empty(t, entries, "no report expected after failed run")
				return
			}

			got, err := s.Run(context.Background(), "org")
			require.NoError(t, err)
			var failed []string
			for _, f := range got.Failures {
				failed = append(failed, f.Repository)
			}
			assert.Equal(t, tt.wantFailures, failed)

			path, err := writer.Write(got, dir)
			require.NoError(t, err)
			rows, err := report.Read(path)
			require.NoError(t, err)
			assert.Len(t, rows, tt.wantLen)
		})
	}
}

func TestServiceRunInvalidOrganization(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	s := app.NewService(mock.NewMockGithubClient(ctrl), mock.NewCache(nil), report.NewWriter(), app.Options{}, newTestLogger())
	_, err := s.Run(context.Background(), "")
	assert.True(t, app.IsInvalidRequestError(err))
}

func TestServiceRunOrganizationNotFound(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	client := mock.NewMockGithubClient(ctrl)
	client.EXPECT().RateLimit(gomock.Any()).Return(availableQuota, nil)
	client.EXPECT().
		Organization(gomock.Any(), "missing").
		Return(app.RawOrganization{}, &app.RemoteError{Message: "Not Found", StatusCode: http.StatusNotFound})

	s := app.NewService(client, mock.NewCache(nil), report.NewWriter(), app.Options{}, newTestLogger())
	_, err := s.Run(context.Background(), "missing")

	var fetchErr *app.OrganizationFetchError
	require.True(t, errors.As(err, &fetchErr))
	assert.Equal(t, "Not Found", fetchErr.Message)
}
