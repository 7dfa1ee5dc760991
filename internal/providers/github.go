package providers

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"github.com/contributorsambhav/portfolio/internal/activity"
)

// GitHub reads the public contributions calendar of one user.
type GitHub struct {
	base   string
	user   string
	client *http.Client
}

// NewGitHub returns a GitHub adapter against the contributions API at base.
func NewGitHub(base, user string, client *http.Client) *GitHub {
	return &GitHub{base: strings.TrimRight(base, "/"), user: user, client: client}
}

func (g *GitHub) Provider() activity.Provider { return activity.GitHub }

type githubResponse struct {
	Contributions []struct {
		Date  string `json:"date"`
		Count int    `json:"count"`
	} `json:"contributions"`
}

// Fetch returns the last year of contributions. Upstream levels are dropped.
func (g *GitHub) Fetch(ctx context.Context) ([]activity.Record, error) {
	endpoint := g.base + "/v4/" + url.PathEscape(g.user) + "?y=last"
	req, err := http.NewRequest(http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}

	var body githubResponse
	if err := doJSON(ctx, g.client, activity.GitHub, req, &body); err != nil {
		return nil, err
	}

	out := make([]activity.Record, 0, len(body.Contributions))
	for _, c := range body.Contributions {
		out = append(out, activity.Record{Date: c.Date, Count: c.Count})
	}
	return out, nil
}
