package app

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
)

const resetTimeLayout = "01-02-2006 15:04:05"

// Guard checks github api quota before privileged calls.
type Guard struct {
	client GithubClient
	l      logrus.FieldLogger
}

// NewGuard creates new Guard instance.
func NewGuard(client GithubClient, l logrus.FieldLogger) *Guard {
	return &Guard{
		client: client,
		l:      l,
	}
}

// CheckQuota fetches current quota and tells if it is exhausted.
func (g *Guard) CheckQuota(ctx context.Context) (bool, Quota, error) {
	q, err := g.client.RateLimit(ctx)
	if err != nil {
		return false, Quota{}, err
	}

	l := g.l.WithFields(logrus.Fields{
		"limit":     q.Limit,
		"used":      q.Used,
		"remaining": q.Remaining,
		"reset":     formatReset(q.Reset),
	})
	if q.Remaining > 0 {
		l.Debug("api quota available")
		return false, q, nil
	}

	l.Warnf("api rate limit of %d exceeded, try again after %s", q.Limit, formatReset(q.Reset))
	return true, q, nil
}

func formatReset(t time.Time) string {
	return t.Local().Format(resetTimeLayout)
}
