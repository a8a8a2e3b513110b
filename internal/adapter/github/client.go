package github

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/google/go-github/v62/github"
	"github.com/m-zajac/contribreport/internal/app"
	"golang.org/x/oauth2"
)

const perPage = 100

// Client returns details about github organizations, repositories and users.
// This struct is an adapter for app.GithubClient.
type Client struct {
	gh *github.Client
}

var _ app.GithubClient = &Client{}

// NewClient creates new github client.
// Requests are sent through base transport, authenticated with authToken when it is set.
// Empty address means public github api.
func NewClient(base http.RoundTripper, address string, authToken string) (*Client, error) {
	if base == nil {
		base = http.DefaultTransport
	}
	transport := base
	if authToken != "" {
		transport = &oauth2.Transport{
			Source: oauth2.StaticTokenSource(&oauth2.Token{AccessToken: authToken}),
			Base:   base,
		}
	}

	gh := github.NewClient(&http.Client{Transport: transport})
	if address != "" {
		u, err := url.Parse(strings.TrimSuffix(address, "/") + "/")
		if err != nil {
			return nil, fmt.Errorf("invalid api address: %w", err)
		}
		gh.BaseURL = u
	}

	return &Client{gh: gh}, nil
}

// RateLimit returns current core api quota.
func (c *Client) RateLimit(ctx context.Context) (app.Quota, error) {
	req, err := c.gh.NewRequest(http.MethodGet, "rate_limit", nil)
	if err != nil {
		return app.Quota{}, fmt.Errorf("creating http request: %w", err)
	}

	var resp rateLimitResponse
	if _, err := c.gh.Do(ctx, req, &resp); err != nil {
		// Client refuses to call api until known reset time, quota is exhausted then.
		var rlErr *github.RateLimitError
		if errors.As(err, &rlErr) {
			return app.Quota{
				Limit: rlErr.Rate.Limit,
				Used:  rlErr.Rate.Limit,
				Reset: rlErr.Rate.Reset.Time,
			}, nil
		}
		return app.Quota{}, remoteError(err)
	}

	return resp.ToQuota(), nil
}

// Organization returns organization with lazily listed repositories.
func (c *Client) Organization(ctx context.Context, name string) (app.RawOrganization, error) {
	if name == "" {
		return app.RawOrganization{}, app.InvalidRequestError("organization name cannot be empty")
	}

	org, _, err := c.gh.Organizations.Get(ctx, name)
	if err != nil {
		return app.RawOrganization{}, remoteError(err)
	}

	orgName := org.GetName()
	if orgName == "" {
		orgName = org.GetLogin()
	}

	return app.RawOrganization{
		Name:         orgName,
		Repositories: c.repositoryPages(org.GetLogin()),
	}, nil
}

func (c *Client) repositoryPages(login string) app.RepositoryPages {
	return func(ctx context.Context, page int) ([]app.Repository, int, error) {
		opts := &github.RepositoryListByOrgOptions{
			ListOptions: github.ListOptions{Page: page, PerPage: perPage},
		}
		repos, resp, err := c.gh.Repositories.ListByOrg(ctx, login, opts)
		if err != nil {
			return nil, 0, remoteError(err)
		}

		result := make([]app.Repository, 0, len(repos))
		for _, r := range repos {
			owner := r.GetOwner().GetLogin()
			if owner == "" {
				owner = login
			}
			result = append(result, app.Repository{
				ID:    r.GetID(),
				Name:  r.GetName(),
				Owner: owner,
			})
		}

		return result, resp.NextPage, nil
	}
}

// Contributors returns all contributors of given repository.
func (c *Client) Contributors(ctx context.Context, repo app.Repository) ([]app.RawContributor, error) {
	opts := &github.ListContributorsOptions{
		ListOptions: github.ListOptions{PerPage: perPage},
	}

	var result []app.RawContributor
	for {
		contributors, resp, err := c.gh.Repositories.ListContributors(ctx, repo.Owner, repo.Name, opts)
		if err != nil {
			return nil, remoteError(err)
		}
		for _, ctb := range contributors {
			result = append(result, app.RawContributor{
				ID:    ctb.GetID(),
				Login: ctb.GetLogin(),
				Name:  ctb.Name,
				Email: ctb.Email,
			})
		}
		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}

	return result, nil
}

// Languages returns repository languages, ordered as reported by github.
func (c *Client) Languages(ctx context.Context, repo app.Repository) (app.LanguageBreakdown, error) {
	u := fmt.Sprintf("repos/%s/%s/languages", url.PathEscape(repo.Owner), url.PathEscape(repo.Name))
	req, err := c.gh.NewRequest(http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("creating http request: %w", err)
	}

	var resp languagesResponse
	if _, err := c.gh.Do(ctx, req, &resp); err != nil {
		return nil, remoteError(err)
	}

	return resp.ToBreakdown(), nil
}

// User returns user's profile.
func (c *Client) User(ctx context.Context, login string) (app.RawContributor, error) {
	if login == "" {
		return app.RawContributor{}, app.InvalidRequestError("user login cannot be empty")
	}

	u, _, err := c.gh.Users.Get(ctx, login)
	if err != nil {
		return app.RawContributor{}, remoteError(err)
	}

	return app.RawContributor{
		ID:       u.GetID(),
		Login:    u.GetLogin(),
		Name:     u.Name,
		Email:    u.Email,
		Detailed: true,
	}, nil
}

// remoteError converts go-github errors to app.RemoteError, keeping response status.
func remoteError(err error) error {
	var (
		errResp  *github.ErrorResponse
		rlErr    *github.RateLimitError
		abuseErr *github.AbuseRateLimitError
	)
	switch {
	case errors.As(err, &errResp):
		return &app.RemoteError{Message: errResp.Message, StatusCode: statusOf(errResp.Response)}
	case errors.As(err, &rlErr):
		return &app.RemoteError{Message: rlErr.Message, StatusCode: statusOf(rlErr.Response)}
	case errors.As(err, &abuseErr):
		return &app.RemoteError{Message: abuseErr.Message, StatusCode: statusOf(abuseErr.Response)}
	}

	return &app.RemoteError{Message: err.Error()}
}

func statusOf(resp *http.Response) int {
	if resp == nil {
		return 0
	}
	return resp.StatusCode
}
