package providers

import (
	"context"
	"errors"
	"maps"
	"net/http"
	"net/url"
	"slices"
	"strings"

	"github.com/contributorsambhav/portfolio/internal/activity"
	apperrors "github.com/contributorsambhav/portfolio/internal/errors"
)

// Codeforces counts a handle's submissions per UTC day.
type Codeforces struct {
	base   string
	handle string
	client *http.Client
}

// NewCodeforces returns a Codeforces adapter against the API at base.
func NewCodeforces(base, handle string, client *http.Client) *Codeforces {
	return &Codeforces{base: strings.TrimRight(base, "/"), handle: handle, client: client}
}

func (c *Codeforces) Provider() activity.Provider { return activity.Codeforces }

type codeforcesResponse struct {
	Status  string `json:"status"`
	Comment string `json:"comment"`
	Result  []struct {
		CreationTimeSeconds int64 `json:"creationTimeSeconds"`
	} `json:"result"`
}

func (c *Codeforces) Fetch(ctx context.Context) ([]activity.Record, error) {
	endpoint := c.base + "/api/user.status?handle=" + url.QueryEscape(c.handle)
	req, err := http.NewRequest(http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}

	var body codeforcesResponse
	if err := doJSON(ctx, c.client, activity.Codeforces, req, &body); err != nil {
		return nil, err
	}
	if body.Status != "OK" {
		msg := body.Comment
		if msg == "" {
			msg = "status " + body.Status
		}
		return nil, apperrors.NewUpstream(string(activity.Codeforces), errors.New(msg))
	}

	byDay := make(map[string]int)
	for _, s := range body.Result {
		if s.CreationTimeSeconds <= 0 {
			continue
		}
		byDay[unixDay(s.CreationTimeSeconds)]++
	}
	return countsToRecords(byDay), nil
}

func countsToRecords(byDay map[string]int) []activity.Record {
	out := make([]activity.Record, 0, len(byDay))
	for _, d := range slices.Sorted(maps.Keys(byDay)) {
		out = append(out, activity.Record{Date: d, Count: byDay[d]})
	}
	return out
}
