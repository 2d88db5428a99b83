package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/alimgiray/contribution-analyzer/internal/models"
	"github.com/alimgiray/contribution-analyzer/pkg/logger"
	"github.com/google/go-github/v57/github"
	"github.com/sirupsen/logrus"
	"golang.org/x/oauth2"
	"golang.org/x/time/rate"
)

// CommitPageSize is the largest page the commit list endpoint returns
const CommitPageSize = 100

// CommitSource is the upstream the scoring pipeline reads commits from
type CommitSource interface {
	ListCommits(ctx context.Context, owner, repo string, since time.Time, page, perPage int) ([]*models.RawCommit, error)
	GetCommitDetail(ctx context.Context, owner, repo, sha string) (*models.CommitDetail, error)
}

// GitHubService talks to the GitHub REST API through go-github
type GitHubService struct {
	client      *github.Client
	rateLimiter *rate.Limiter
}

// NewGitHubClient creates a go-github client, authenticated when a token is given;
// apiURL overrides the default https://api.github.com/ endpoint
func NewGitHubClient(token, apiURL string) (*github.Client, error) {
	var httpClient *http.Client
	if token != "" {
		ts := oauth2.StaticTokenSource(
			&oauth2.Token{AccessToken: token},
		)
		httpClient = oauth2.NewClient(context.Background(), ts)
	}

	client := github.NewClient(httpClient)
	client.UserAgent = "contribution-analyzer"

	if apiURL != "" {
		if !strings.HasSuffix(apiURL, "/") {
			apiURL += "/"
		}
		baseURL, err := url.Parse(apiURL)
		if err != nil {
			return nil, fmt.Errorf("invalid GitHub API URL %q: %w", apiURL, err)
		}
		client.BaseURL = baseURL
	}

	return client, nil
}

// NewGitHubService wraps a client with a request rate limiter;
// a non-positive requestsPerSecond disables limiting
func NewGitHubService(client *github.Client, requestsPerSecond float64) *GitHubService {
	limit := rate.Inf
	if requestsPerSecond > 0 {
		limit = rate.Limit(requestsPerSecond)
	}

	return &GitHubService{
		client:      client,
		rateLimiter: rate.NewLimiter(limit, 1),
	}
}

// ListCommits fetches one page of commits authored since the cutoff, newest first
func (s *GitHubService) ListCommits(ctx context.Context, owner, repo string, since time.Time, page, perPage int) ([]*models.RawCommit, error) {
	if err := s.rateLimiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter: %w", err)
	}

	opts := &github.CommitsListOptions{
		Since: since,
		ListOptions: github.ListOptions{
			Page:    page,
			PerPage: perPage,
		},
	}

	commits, resp, err := s.client.Repositories.ListCommits(ctx, owner, repo, opts)
	if err != nil {
		return nil, translateGitHubError("list commits", err)
	}
	s.logRateLimit(resp)

	rawCommits := make([]*models.RawCommit, 0, len(commits))
	for _, commit := range commits {
		rawCommits = append(rawCommits, &models.RawCommit{
			SHA:     commit.GetSHA(),
			Message: commit.GetCommit().GetMessage(),
			Author: models.CommitAuthor{
				Login:     commit.GetAuthor().GetLogin(),
				Name:      commit.GetCommit().GetAuthor().GetName(),
				AvatarURL: commit.GetAuthor().GetAvatarURL(),
			},
			ParentCount: len(commit.Parents),
		})
	}

	return rawCommits, nil
}

// GetCommitDetail fetches diff stats, changed files and author of a single commit
func (s *GitHubService) GetCommitDetail(ctx context.Context, owner, repo, sha string) (*models.CommitDetail, error) {
	if err := s.rateLimiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter: %w", err)
	}

	commit, resp, err := s.client.Repositories.GetCommit(ctx, owner, repo, sha, nil)
	if err != nil {
		return nil, translateGitHubError(fmt.Sprintf("get commit %s", sha), err)
	}
	s.logRateLimit(resp)

	files := make([]string, 0, len(commit.Files))
	for _, file := range commit.Files {
		files = append(files, file.GetFilename())
	}

	return &models.CommitDetail{
		Additions:       commit.GetStats().GetAdditions(),
		Deletions:       commit.GetStats().GetDeletions(),
		Files:           files,
		AuthorLogin:     commit.GetAuthor().GetLogin(),
		AuthorAvatarURL: commit.GetAuthor().GetAvatarURL(),
	}, nil
}

// ListContributors returns the repository contributors as reported by GitHub
func (s *GitHubService) ListContributors(ctx context.Context, owner, repo string) ([]*github.Contributor, error) {
	if err := s.rateLimiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter: %w", err)
	}

	contributors, resp, err := s.client.Repositories.ListContributors(ctx, owner, repo, &github.ListContributorsOptions{})
	if err != nil {
		return nil, translateGitHubError("list contributors", err)
	}
	s.logRateLimit(resp)

	return contributors, nil
}

// ListRecentCommits returns the first page of raw commits without any filtering
func (s *GitHubService) ListRecentCommits(ctx context.Context, owner, repo string) ([]*github.RepositoryCommit, error) {
	if err := s.rateLimiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter: %w", err)
	}

	opts := &github.CommitsListOptions{
		ListOptions: github.ListOptions{PerPage: CommitPageSize},
	}
	commits, resp, err := s.client.Repositories.ListCommits(ctx, owner, repo, opts)
	if err != nil {
		return nil, translateGitHubError("list commits", err)
	}
	s.logRateLimit(resp)

	return commits, nil
}

// logRateLimit warns when the remaining request budget runs low
func (s *GitHubService) logRateLimit(resp *github.Response) {
	if resp == nil || resp.Rate.Limit == 0 {
		return
	}

	if resp.Rate.Remaining < 100 {
		logger.WithFields(logrus.Fields{
			"remaining": resp.Rate.Remaining,
			"limit":     resp.Rate.Limit,
			"reset":     resp.Rate.Reset.Time,
		}).Warn("GitHub rate limit low")
	}
}

// translateGitHubError maps go-github failures onto UpstreamError so handlers can
// surface the upstream status code
func translateGitHubError(op string, err error) error {
	var rateErr *github.RateLimitError
	if errors.As(err, &rateErr) {
		return &models.UpstreamError{
			Kind:       models.UpstreamRejected,
			StatusCode: responseStatus(rateErr.Response, http.StatusForbidden),
			Message:    fmt.Sprintf("%s: %s", op, rateErr.Message),
			Cause:      err,
		}
	}

	var abuseErr *github.AbuseRateLimitError
	if errors.As(err, &abuseErr) {
		return &models.UpstreamError{
			Kind:       models.UpstreamRejected,
			StatusCode: responseStatus(abuseErr.Response, http.StatusForbidden),
			Message:    fmt.Sprintf("%s: %s", op, abuseErr.Message),
			Cause:      err,
		}
	}

	var respErr *github.ErrorResponse
	if errors.As(err, &respErr) && respErr.Response != nil {
		return &models.UpstreamError{
			Kind:       models.UpstreamRejected,
			StatusCode: respErr.Response.StatusCode,
			Message:    fmt.Sprintf("%s: %s", op, respErr.Message),
			Cause:      err,
		}
	}

	return &models.UpstreamError{
		Kind:    models.UpstreamUnavailable,
		Message: fmt.Sprintf("%s: %v", op, err),
		Cause:   err,
	}
}

func responseStatus(resp *http.Response, fallback int) int {
	if resp == nil {
		return fallback
	}
	return resp.StatusCode
}
