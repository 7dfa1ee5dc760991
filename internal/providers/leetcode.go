package providers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/contributorsambhav/portfolio/internal/activity"
	apperrors "github.com/contributorsambhav/portfolio/internal/errors"
)

const leetcodeCalendarQuery = `query userProfileCalendar($username: String!) {
  matchedUser(username: $username) {
    userCalendar {
      submissionCalendar
    }
  }
}`

// LeetCode reads a user's submission calendar over GraphQL.
type LeetCode struct {
	base   string
	user   string
	client *http.Client
}

// NewLeetCode returns a LeetCode adapter against the site at base.
func NewLeetCode(base, user string, client *http.Client) *LeetCode {
	return &LeetCode{base: strings.TrimRight(base, "/"), user: user, client: client}
}

func (l *LeetCode) Provider() activity.Provider { return activity.LeetCode }

type leetcodeResponse struct {
	Data struct {
		MatchedUser *struct {
			UserCalendar struct {
				SubmissionCalendar string `json:"submissionCalendar"`
			} `json:"userCalendar"`
		} `json:"matchedUser"`
	} `json:"data"`
	Errors []struct {
		Message string `json:"message"`
	} `json:"errors"`
}

// Fetch returns one record per UTC day with submissions.
func (l *LeetCode) Fetch(ctx context.Context) ([]activity.Record, error) {
	payload, err := json.Marshal(map[string]any{
		"query":     leetcodeCalendarQuery,
		"variables": map[string]string{"username": l.user},
	})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequest(http.MethodPost, l.base+"/graphql", bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	var body leetcodeResponse
	if err := doJSON(ctx, l.client, activity.LeetCode, req, &body); err != nil {
		return nil, err
	}
	if len(body.Errors) > 0 {
		return nil, apperrors.NewUpstream(string(activity.LeetCode), errors.New(body.Errors[0].Message))
	}
	if body.Data.MatchedUser == nil {
		return nil, apperrors.NewUpstream(string(activity.LeetCode), fmt.Errorf("unknown user %q", l.user))
	}

	return parseSubmissionCalendar(body.Data.MatchedUser.UserCalendar.SubmissionCalendar)
}

// parseSubmissionCalendar decodes the JSON-in-a-string map of unix seconds
// to submission counts. Timestamps on the same UTC day are summed.
func parseSubmissionCalendar(raw string) ([]activity.Record, error) {
	if strings.TrimSpace(raw) == "" {
		return []activity.Record{}, nil
	}

	var cal map[string]int
	if err := json.Unmarshal([]byte(raw), &cal); err != nil {
		return nil, apperrors.NewUpstream(string(activity.LeetCode), fmt.Errorf("decode submission calendar: %w", err))
	}

	byDay := make(map[string]int, len(cal))
	for ts, n := range cal {
		sec, err := strconv.ParseInt(ts, 10, 64)
		if err != nil {
			continue
		}
		byDay[unixDay(sec)] += n
	}
	return countsToRecords(byDay), nil
}
