package services

import (
	"context"
	"fmt"

	"github.com/alimgiray/contribution-analyzer/internal/models"
	"golang.org/x/sync/errgroup"
)

// DetailFetcher fills in the Detail payload of each commit
type DetailFetcher interface {
	FetchDetails(ctx context.Context, source CommitSource, owner, repo string, commits []*models.RawCommit) error
}

// NewDetailFetcher returns the sequential fetcher for a limit of 1 or less,
// otherwise a bounded concurrent one
func NewDetailFetcher(concurrency int) DetailFetcher {
	if concurrency <= 1 {
		return &SequentialDetailFetcher{}
	}
	return &BoundedDetailFetcher{Limit: concurrency}
}

// SequentialDetailFetcher requests details one commit at a time, keeping at most
// one outbound request in flight
type SequentialDetailFetcher struct{}

func (f *SequentialDetailFetcher) FetchDetails(ctx context.Context, source CommitSource, owner, repo string, commits []*models.RawCommit) error {
	for _, commit := range commits {
		detail, err := source.GetCommitDetail(ctx, owner, repo, commit.SHA)
		if err != nil {
			return fmt.Errorf("failed to fetch commit detail %s: %w", commit.SHA, err)
		}
		commit.Detail = detail
	}
	return nil
}

// BoundedDetailFetcher requests up to Limit details concurrently and stops at the first error
type BoundedDetailFetcher struct {
	Limit int
}

func (f *BoundedDetailFetcher) FetchDetails(ctx context.Context, source CommitSource, owner, repo string, commits []*models.RawCommit) error {
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(f.Limit)

	for _, commit := range commits {
		commit := commit
		g.Go(func() error {
			detail, err := source.GetCommitDetail(ctx, owner, repo, commit.SHA)
			if err != nil {
				return fmt.Errorf("failed to fetch commit detail %s: %w", commit.SHA, err)
			}
			commit.Detail = detail
			return nil
		})
	}

	return g.Wait()
}
