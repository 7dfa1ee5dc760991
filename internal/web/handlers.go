package web

import (
	"database/sql"
	"net/http"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/contributorsambhav/portfolio/internal/activity"
	"github.com/contributorsambhav/portfolio/internal/catalog"
	"github.com/contributorsambhav/portfolio/internal/config"
	"github.com/contributorsambhav/portfolio/internal/errors"
	"github.com/contributorsambhav/portfolio/internal/ops"
)

// heatmapDays is how many days the activity page shows, ending today.
const heatmapDays = 365

// Handlers contains HTTP route handlers for the site and its JSON API.
type Handlers struct {
	cat      *catalog.Catalog
	db       *sql.DB
	src      ops.Source
	cfg      *config.Config
	logger   *zap.Logger
	renderer *Renderer
}

func (h *Handlers) page(title, nav string) PageData {
	return PageData{
		Title:   title,
		Version: h.renderer.version,
		Nav:     nav,
		Owner:   h.cat.Profile.Name,
	}
}

// HandleHome handles GET /: profile, featured projects and highlights.
func (h *Handlers) HandleHome(w http.ResponseWriter, r *http.Request) {
	featured := ops.Projects(h.cat, ops.ProjectsInput{Category: catalog.TabFeatured})

	h.renderer.renderPage(w, r, "home", HomePageData{
		PageData:     h.page(h.cat.Profile.Name, "home"),
		Profile:      h.cat.Profile,
		Featured:     featured.Items,
		Achievements: h.cat.Achievements,
		TechStack:    ops.TechStack(h.cat),
		Web3Stats:    catalog.Stats(h.cat.Web3),
	})
}

// HandleProjects handles GET /projects: category tabs, technology and text filters.
func (h *Handlers) HandleProjects(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	tech := q.Get("tech")
	result := ops.Projects(h.cat, ops.ProjectsInput{
		Category:     q.Get("category"),
		Search:       q.Get("search"),
		Technologies: ops.ParseTechParam(tech),
	})

	data := ProjectsPageData{
		PageData:     h.page("Projects", "projects"),
		Tabs:         ops.Tabs(),
		Items:        result.Items,
		Total:        result.Total,
		Category:     result.Criteria.Category,
		Search:       result.Criteria.Search,
		Tech:         tech,
		Technologies: result.Criteria.Technologies,
		Filtered:     result.Criteria.Search != "" || len(result.Criteria.Technologies) > 0,
	}

	// If the request targets #results, render only the results fragment
	if r.Header.Get("HX-Target") == "results" {
		h.renderer.renderBlock(w, http.StatusOK, "projects", "project-results", data)
		return
	}
	h.renderer.renderPage(w, r, "projects", data)
}

// HandleProject handles GET /projects/{id}: project detail.
func (h *Handlers) HandleProject(w http.ResponseWriter, r *http.Request) {
	p, err := ops.Project(h.cat, r.PathValue("id"))
	if err != nil {
		h.renderer.renderError(w, r, err)
		return
	}

	h.renderer.renderPage(w, r, "project", ProjectPageData{
		PageData:     h.page(p.Title, "projects"),
		Project:      p,
		RenderedHTML: renderMarkdown(p.LongDescription),
	})
}

// HandleActivity handles GET /activity: contribution heatmap for one series.
func (h *Handlers) HandleActivity(w http.ResponseWriter, r *http.Request) {
	provider, err := parseProvider(r)
	if err != nil {
		h.renderer.renderError(w, r, err)
		return
	}

	out, err := h.activity(r, false)
	if err != nil {
		h.renderer.renderError(w, r, err)
		return
	}

	to := time.Now().UTC()
	from := to.AddDate(0, 0, -(heatmapDays - 1))
	days := activity.Fill(out.Series(provider), from, to)

	h.renderer.renderPage(w, r, "activity", ActivityPageData{
		PageData:  h.page("Activity", "activity"),
		Providers: append(append([]activity.Provider{}, activity.Combined), activity.Providers...),
		Provider:  provider,
		Weeks:     activity.Weeks(days),
		Total:     activity.Total(days),
		Totals:    out.Totals,
		FetchedAt: latestFetch(out.FetchedAt),
		From:      from.Format(activity.DateLayout),
		To:        to.Format(activity.DateLayout),
	})
}

// HandleWeb3 handles GET /web3: Web3 projects and grants.
func (h *Handlers) HandleWeb3(w http.ResponseWriter, r *http.Request) {
	out := ops.Web3(h.cat, r.URL.Query().Get("filter"))

	h.renderer.renderPage(w, r, "web3", Web3PageData{
		PageData: h.page("Web3", "web3"),
		Filters:  append(append([]string{}, catalog.Web3Filters...), catalog.Web3StatusRejected),
		Filter:   out.Filter,
		Items:    out.Items,
		Stats:    out.Stats,
	})
}

// HandleWork handles GET /work: work experience.
func (h *Handlers) HandleWork(w http.ResponseWriter, r *http.Request) {
	h.renderer.renderPage(w, r, "work", WorkPageData{
		PageData:   h.page("Work", "work"),
		Experience: h.cat.Experience,
	})
}

// HandleAPIProfile handles GET /api/profile.
func (h *Handlers) HandleAPIProfile(w http.ResponseWriter, r *http.Request) {
	renderJSON(w, http.StatusOK, map[string]any{
		"profile":      h.cat.Profile,
		"experience":   h.cat.Experience,
		"achievements": h.cat.Achievements,
	})
}

// HandleAPIProjects handles GET /api/projects.
func (h *Handlers) HandleAPIProjects(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	renderJSON(w, http.StatusOK, ops.Projects(h.cat, ops.ProjectsInput{
		Category:     q.Get("category"),
		Search:       q.Get("search"),
		Technologies: ops.ParseTechParam(q.Get("tech")),
	}))
}

// HandleAPIProject handles GET /api/projects/{id}.
func (h *Handlers) HandleAPIProject(w http.ResponseWriter, r *http.Request) {
	p, err := ops.Project(h.cat, r.PathValue("id"))
	if err != nil {
		h.renderer.renderError(w, r, err)
		return
	}
	renderJSON(w, http.StatusOK, p)
}

// HandleAPIActivity handles GET /api/activity.
// ?provider= narrows the response to one series; ?refresh=true syncs first.
func (h *Handlers) HandleAPIActivity(w http.ResponseWriter, r *http.Request) {
	provider, err := parseProvider(r)
	if err != nil {
		h.renderer.renderError(w, r, err)
		return
	}

	out, err := h.activity(r, parseBoolParam(r, "refresh"))
	if err != nil {
		h.renderer.renderError(w, r, err)
		return
	}

	if r.URL.Query().Get("provider") == "" {
		renderJSON(w, http.StatusOK, out)
		return
	}
	renderJSON(w, http.StatusOK, map[string]any{
		"provider":   provider,
		"days":       out.Series(provider),
		"total":      out.Totals[provider],
		"fetched_at": out.FetchedAt[provider],
	})
}

// HandleAPITechs handles GET /api/techs.
func (h *Handlers) HandleAPITechs(w http.ResponseWriter, r *http.Request) {
	renderJSON(w, http.StatusOK, ops.TechStack(h.cat))
}

// HandleAPIWeb3 handles GET /api/web3.
func (h *Handlers) HandleAPIWeb3(w http.ResponseWriter, r *http.Request) {
	renderJSON(w, http.StatusOK, ops.Web3(h.cat, r.URL.Query().Get("filter")))
}

func (h *Handlers) activity(r *http.Request, refresh bool) (*ops.ActivityOutput, error) {
	out, err := ops.Activity(r.Context(), h.db, h.src, ops.ActivityInput{
		Refresh:  refresh,
		AutoSync: true,
		TTL:      h.cfg.CacheTTL(),
		Keep:     h.cfg.SnapshotKeep,
	})
	if err != nil {
		h.logger.Error("activity failed", zap.Error(err))
	}
	return out, err
}

// parseProvider reads ?provider=, defaulting to the combined series.
func parseProvider(r *http.Request) (activity.Provider, error) {
	raw := strings.ToLower(strings.TrimSpace(r.URL.Query().Get("provider")))
	if raw == "" {
		return activity.Combined, nil
	}
	p := activity.Provider(raw)
	if !p.Valid() {
		return "", errors.NewInvalidRequest("provider must be one of: github, leetcode, codeforces, combined")
	}
	return p, nil
}

// parseBoolParam reads a boolean query parameter, defaulting to false.
func parseBoolParam(r *http.Request, name string) bool {
	b, _ := strconv.ParseBool(r.URL.Query().Get(name))
	return b
}

func latestFetch(m map[activity.Provider]int64) int64 {
	var newest int64
	for _, t := range m {
		newest = max(newest, t)
	}
	return newest
}
