package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/alimgiray/contribution-analyzer/internal/models"
)

// fakeCommitSource serves canned commits and records every call
type fakeCommitSource struct {
	mu          sync.Mutex
	commits     []*models.RawCommit
	details     map[string]*models.CommitDetail
	listErr     error
	detailErrs  map[string]error
	listCalls   []int
	detailCalls []string
	sinces      []time.Time
}

func newFakeCommitSource(commits ...*models.RawCommit) *fakeCommitSource {
	return &fakeCommitSource{
		commits:    commits,
		details:    make(map[string]*models.CommitDetail),
		detailErrs: make(map[string]error),
	}
}

func (f *fakeCommitSource) ListCommits(ctx context.Context, owner, repo string, since time.Time, page, perPage int) ([]*models.RawCommit, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.listCalls = append(f.listCalls, page)
	f.sinces = append(f.sinces, since)
	if f.listErr != nil {
		return nil, f.listErr
	}

	start := (page - 1) * perPage
	if start >= len(f.commits) {
		return []*models.RawCommit{}, nil
	}
	end := start + perPage
	if end > len(f.commits) {
		end = len(f.commits)
	}

	// Hand out copies so each computation starts without details
	items := make([]*models.RawCommit, 0, end-start)
	for _, c := range f.commits[start:end] {
		copied := *c
		copied.Detail = nil
		items = append(items, &copied)
	}
	return items, nil
}

func (f *fakeCommitSource) GetCommitDetail(ctx context.Context, owner, repo, sha string) (*models.CommitDetail, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.detailCalls = append(f.detailCalls, sha)
	if err, exists := f.detailErrs[sha]; exists {
		return nil, err
	}
	if detail, exists := f.details[sha]; exists {
		return detail, nil
	}
	return &models.CommitDetail{}, nil
}

func (f *fakeCommitSource) totalCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.listCalls) + len(f.detailCalls)
}

func generateCommits(n int, login string) []*models.RawCommit {
	commits := make([]*models.RawCommit, n)
	for i := range commits {
		commits[i] = &models.RawCommit{
			SHA:         fmt.Sprintf("%s-%03d", login, i),
			Message:     "wip",
			Author:      models.CommitAuthor{Login: login},
			ParentCount: 1,
		}
	}
	return commits
}
