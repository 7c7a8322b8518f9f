// Vitalis - Lifestyle Recommendation and Scoring Engine
// Copyright 2026 Vitalis Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/vitalis-app/vitalis

// Package tracker fetches activity time series from a Fitbit-compatible
// wearable API. Fetches cover a rolling one-week window and merge the
// steps, sleep, calories, and resting heart rate series into dated samples
// for the lifestyle scorer. All calls go through a circuit breaker so a flapping upstream
// cannot stall recommendation requests.
package tracker

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strconv"
	"time"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"
	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/vitalis-app/vitalis/internal/lifestyle"
)

const (
	seriesSteps    = "activities/steps"
	seriesCalories = "activities/calories"

	dateLayout = "2006-01-02"
)

// Config holds the upstream connection settings.
type Config struct {
	// BaseURL is the API root, e.g. https://api.fitbit.com/1/user/-.
	BaseURL string `koanf:"base_url"`

	// AccessToken is the OAuth2 bearer token for the account.
	AccessToken string `koanf:"access_token"`

	// Timeout bounds each HTTP request.
	Timeout time.Duration `koanf:"timeout"`
}

// Client talks to the wearable API.
type Client struct {
	cfg    Config
	http   *http.Client
	cb     *gobreaker.CircuitBreaker[[]lifestyle.FitnessSample]
	logger zerolog.Logger
	now    func() time.Time
}

// NewClient creates a tracker client. The circuit opens after a 60%
// failure rate across at least 5 requests and probes again after 2 minutes.
func NewClient(cfg Config, logger zerolog.Logger) *Client {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	log := logger.With().Str("component", "tracker").Logger()

	cb := gobreaker.NewCircuitBreaker[[]lifestyle.FitnessSample](gobreaker.Settings{
		Name:        "tracker-api",
		MaxRequests: 3,
		Interval:    time.Minute,
		Timeout:     2 * time.Minute,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < 5 {
				return false
			}
			return float64(counts.TotalFailures)/float64(counts.Requests) >= 0.6
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Warn().
				Str("breaker", name).
				Str("from", from.String()).
				Str("to", to.String()).
				Msg("Tracker circuit state changed")
		},
	})

	return &Client{
		cfg:    cfg,
		http:   &http.Client{Timeout: cfg.Timeout},
		cb:     cb,
		logger: log,
		now:    time.Now,
	}
}

// FetchWeek retrieves the last seven days of steps, sleep, calories, and
// resting heart rate and merges them into per-day samples ordered by date.
func (c *Client) FetchWeek(ctx context.Context) ([]lifestyle.FitnessSample, error) {
	return c.cb.Execute(func() ([]lifestyle.FitnessSample, error) {
		return c.fetchWeek(ctx)
	})
}

func (c *Client) fetchWeek(ctx context.Context) ([]lifestyle.FitnessSample, error) {
	end := c.now().UTC()
	start := end.AddDate(0, 0, -7)

	steps, err := c.fetchActivitySeries(ctx, seriesSteps, start, end)
	if err != nil {
		return nil, fmt.Errorf("fetching steps: %w", err)
	}
	calories, err := c.fetchActivitySeries(ctx, seriesCalories, start, end)
	if err != nil {
		return nil, fmt.Errorf("fetching calories: %w", err)
	}
	sleep, err := c.fetchSleepSeries(ctx, start, end)
	if err != nil {
		return nil, fmt.Errorf("fetching sleep: %w", err)
	}
	heart, err := c.fetchHeartSeries(ctx, start, end)
	if err != nil {
		return nil, fmt.Errorf("fetching heart rate: %w", err)
	}

	samples := mergeSeries(steps, calories, sleep, heart)
	c.logger.Debug().
		Int("days", len(samples)).
		Time("start", start).
		Time("end", end).
		Msg("Fetched tracker week")
	return samples, nil
}

// seriesPoint is one dated value in a time-series payload. The wrapping
// key varies by resource ("activities-steps", "activities-calories"), so
// responses decode into a map keyed by that name.
type seriesPoint struct {
	DateTime string `json:"dateTime"`
	Value    string `json:"value"`
}

func (c *Client) fetchActivitySeries(ctx context.Context, resource string, start, end time.Time) (map[string]float64, error) {
	url := fmt.Sprintf("%s/%s/date/%s/%s.json",
		c.cfg.BaseURL, resource, start.Format(dateLayout), end.Format(dateLayout))

	body, err := c.get(ctx, url)
	if err != nil {
		return nil, err
	}

	var payload map[string][]seriesPoint
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("decoding %s: %w", resource, err)
	}

	out := make(map[string]float64)
	for _, points := range payload {
		for _, p := range points {
			v, err := strconv.ParseFloat(p.Value, 64)
			if err != nil {
				return nil, fmt.Errorf("parsing %s value %q: %w", resource, p.Value, err)
			}
			out[p.DateTime] = v
		}
	}
	return out, nil
}

type sleepResponse struct {
	Sleep []struct {
		DateOfSleep   string `json:"dateOfSleep"`
		MinutesAsleep int    `json:"minutesAsleep"`
	} `json:"sleep"`
}

func (c *Client) fetchSleepSeries(ctx context.Context, start, end time.Time) (map[string]float64, error) {
	url := fmt.Sprintf("%s/sleep/date/%s/%s.json",
		c.cfg.BaseURL, start.Format(dateLayout), end.Format(dateLayout))

	body, err := c.get(ctx, url)
	if err != nil {
		return nil, err
	}

	var payload sleepResponse
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("decoding sleep: %w", err)
	}

	out := make(map[string]float64)
	for _, s := range payload.Sleep {
		// Minutes asleep to hours.
		out[s.DateOfSleep] += float64(s.MinutesAsleep) / 60
	}
	return out, nil
}

type heartResponse struct {
	ActivitiesHeart []struct {
		DateTime string `json:"dateTime"`
		Value    struct {
			RestingHeartRate float64 `json:"restingHeartRate"`
		} `json:"value"`
	} `json:"activities-heart"`
}

func (c *Client) fetchHeartSeries(ctx context.Context, start, end time.Time) (map[string]float64, error) {
	url := fmt.Sprintf("%s/activities/heart/date/%s/%s.json",
		c.cfg.BaseURL, start.Format(dateLayout), end.Format(dateLayout))

	body, err := c.get(ctx, url)
	if err != nil {
		return nil, err
	}

	var payload heartResponse
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("decoding heart rate: %w", err)
	}

	out := make(map[string]float64)
	for _, h := range payload.ActivitiesHeart {
		// Days without enough wear time have no resting rate.
		if h.Value.RestingHeartRate > 0 {
			out[h.DateTime] = h.Value.RestingHeartRate
		}
	}
	return out, nil
}

func (c *Client) get(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	if c.cfg.AccessToken != "" {
		req.Header.Set("Authorization", "Bearer "+c.cfg.AccessToken)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d from %s", resp.StatusCode, url)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}
	return body, nil
}

// mergeSeries joins the per-resource maps on date. Days present in any
// series produce a sample; missing resources default to zero.
func mergeSeries(steps, calories, sleep, heart map[string]float64) []lifestyle.FitnessSample {
	dates := make(map[string]struct{})
	for _, series := range []map[string]float64{steps, calories, sleep, heart} {
		for d := range series {
			dates[d] = struct{}{}
		}
	}

	samples := make([]lifestyle.FitnessSample, 0, len(dates))
	for d := range dates {
		t, err := time.Parse(dateLayout, d)
		if err != nil {
			continue
		}
		samples = append(samples, lifestyle.FitnessSample{
			Date:             t,
			Steps:            steps[d],
			CaloriesBurned:   calories[d],
			SleepHours:       sleep[d],
			RestingHeartRate: heart[d],
		})
	}
	sort.Slice(samples, func(i, j int) bool { return samples[i].Date.Before(samples[j].Date) })
	return samples
}
