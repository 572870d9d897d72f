package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"printfolio/internal/api/dto"
	"printfolio/internal/repository"
)

func TestPortfolioService(t *testing.T) {
	repo, err := repository.NewDefaultPortfolioRepo()
	require.NoError(t, err)
	svc := NewPortfolioService(repo)
	ctx := context.Background()

	all, err := svc.List(ctx, dto.ListPortfolioRequest{})
	require.NoError(t, err)
	assert.Equal(t, 12, all.Total)
	assert.Len(t, all.Categories, 6)

	toys, err := svc.List(ctx, dto.ListPortfolioRequest{Category: "Toys"})
	require.NoError(t, err)
	assert.Equal(t, 2, toys.Total)

	item, err := svc.Get(ctx, "6")
	require.NoError(t, err)
	assert.Equal(t, "Benchy Boat", item.Title)

	_, err = svc.Get(ctx, "nope")
	assert.ErrorIs(t, err, repository.ErrPortfolioItemNotFound)
}
