package services

import (
	"context"

	"github.com/alanpramil7/underdog/internal/yt"
)

// Source is the upstream capability the pipeline depends on. *yt.Client
// implements it; tests substitute fakes.
type Source interface {
	SearchPage(ctx context.Context, req yt.SearchRequest) (*yt.SearchPage, error)
	VideoViews(ctx context.Context, ids []string) (yt.StatsMap, error)
	ChannelSubscribers(ctx context.Context, ids []string) (yt.StatsMap, error)
}

var _ Source = (*yt.Client)(nil)
