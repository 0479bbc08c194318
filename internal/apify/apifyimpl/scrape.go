package apifyimpl

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/thegab/tiktok-scraper/internal/apify"
	"github.com/thegab/tiktok-scraper/internal/domain"
	"github.com/thegab/tiktok-scraper/pkg/errors"
)

type runInput struct {
	Hashtag string     `json:"hashtag"`
	Videos  int        `json:"videos"`
	Proxy   proxyInput `json:"proxy"`
}

type proxyInput struct {
	UseApifyProxy    bool     `json:"useApifyProxy"`
	ApifyProxyGroups []string `json:"apifyProxyGroups"`
}

type runData struct {
	Data struct {
		ID     string `json:"id"`
		Status string `json:"status"`
	} `json:"data"`
}

// ScrapeHashtag runs the submit → poll → fetch state machine for one
// hashtag. Transport and decode errors anywhere in the protocol fold into a
// FAILED verdict local to this hashtag; individual HTTP calls are never
// retried, the polling loop re-checking status is the only retry behavior.
func (a *ApifyImpl) ScrapeHashtag(ctx context.Context, hashtag string, maxResults int) ([]domain.RawVideo, domain.JobStatus, error) {
	if a.token == "" {
		return nil, domain.JobStatusFailed, apify.ErrMissingToken
	}

	job := domain.ScrapeJob{
		Hashtag:   hashtag,
		Status:    domain.JobStatusSubmitted,
		StartedAt: time.Now(),
	}

	runID, err := a.submitRun(ctx, hashtag, maxResults)
	if err != nil {
		job.Status = domain.JobStatusFailed
		return nil, job.Status, errors.WrapWithCode(err, "APIFY_SUBMIT", "failed to start actor run")
	}
	job.RunID = runID
	job.Status = domain.JobStatusRunning
	a.logger.Info("Actor run started", "hashtag", hashtag, "run_id", runID)

	for {
		if time.Since(job.StartedAt) >= a.maxWait {
			job.Status = domain.JobStatusTimedOut
			a.logger.Warn("Actor run timed out", "hashtag", hashtag, "run_id", job.RunID, "budget", a.maxWait.String())
			return nil, job.Status, apify.ErrRunTimedOut
		}

		status, err := a.runStatus(ctx, job.RunID)
		if err != nil {
			job.Status = domain.JobStatusFailed
			return nil, job.Status, errors.WrapWithCode(err, "APIFY_POLL", "failed to check run status")
		}

		switch status {
		case domain.JobStatusSucceeded:
			job.Status = domain.JobStatusSucceeded
			items, err := a.fetchDataset(ctx, job.RunID)
			if err != nil {
				job.Status = domain.JobStatusFailed
				return nil, job.Status, errors.WrapWithCode(err, "APIFY_FETCH", "failed to fetch dataset items")
			}
			a.logger.Info("Actor run succeeded", "hashtag", hashtag, "run_id", job.RunID, "items", len(items))
			return items, job.Status, nil
		case domain.JobStatusFailed:
			job.Status = domain.JobStatusFailed
			a.logger.Warn("Actor run failed remotely", "hashtag", hashtag, "run_id", job.RunID)
			return nil, job.Status, apify.ErrRunFailed
		}

		a.logger.Debug("Actor run in progress", "hashtag", hashtag, "run_id", job.RunID, "status", string(status))

		select {
		case <-ctx.Done():
			job.Status = domain.JobStatusFailed
			return nil, job.Status, ctx.Err()
		case <-time.After(a.pollInterval):
		}
	}
}

func (a *ApifyImpl) submitRun(ctx context.Context, hashtag string, maxResults int) (string, error) {
	input := runInput{
		Hashtag: hashtag,
		Videos:  maxResults,
		Proxy: proxyInput{
			UseApifyProxy:    true,
			ApifyProxyGroups: []string{"RESIDENTIAL"},
		},
	}

	body, err := json.Marshal(input)
	if err != nil {
		return "", fmt.Errorf("failed to encode run input: %w", err)
	}

	url := fmt.Sprintf("%s/acts/%s/runs", a.baseURL, a.actorID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+a.token)

	var run runData
	if err := a.doJSON(req, &run); err != nil {
		return "", err
	}
	if run.Data.ID == "" {
		return "", fmt.Errorf("run id missing in response")
	}
	return run.Data.ID, nil
}

func (a *ApifyImpl) runStatus(ctx context.Context, runID string) (domain.JobStatus, error) {
	url := fmt.Sprintf("%s/acts/%s/runs/%s", a.baseURL, a.actorID, runID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Bearer "+a.token)

	var run runData
	if err := a.doJSON(req, &run); err != nil {
		return "", err
	}
	return domain.JobStatus(run.Data.Status), nil
}

func (a *ApifyImpl) fetchDataset(ctx context.Context, runID string) ([]domain.RawVideo, error) {
	url := fmt.Sprintf("%s/acts/%s/runs/%s/dataset/items", a.baseURL, a.actorID, runID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+a.token)

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode/100 != 2 {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	items, err := domain.DecodeRawVideos(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to decode dataset items: %w", err)
	}
	return items, nil
}

func (a *ApifyImpl) doJSON(req *http.Request, out any) error {
	resp, err := a.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode/100 != 2 {
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
