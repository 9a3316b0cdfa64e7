package scrape

import (
	"context"

	"github.com/fortuna/gridiron/internal/boxscore"
	"github.com/fortuna/gridiron/internal/store"
	"github.com/fortuna/gridiron/internal/store/repository"
)

// RepositoryStore adapts the repository bundle to the runner's Store
// contract.
type RepositoryStore struct {
	repos *repository.Store
}

// NewRepositoryStore wraps the repositories.
func NewRepositoryStore(repos *repository.Store) *RepositoryStore {
	return &RepositoryStore{repos: repos}
}

func (s *RepositoryStore) GetGame(ctx context.Context, gameID string) (*store.Game, error) {
	return s.repos.Games.Get(ctx, gameID)
}

func (s *RepositoryStore) GetGameByDate(ctx context.Context, date, sourcePrefix string) (*store.Game, error) {
	return s.repos.Games.GetByDate(ctx, date, sourcePrefix)
}

func (s *RepositoryStore) UpsertGame(ctx context.Context, g *store.Game) error {
	return s.repos.Games.Upsert(ctx, g)
}

func (s *RepositoryStore) UpsertPlayer(ctx context.Context, p *store.Player) error {
	return s.repos.Players.Upsert(ctx, p)
}

func (s *RepositoryStore) InsertStatRow(ctx context.Context, row *boxscore.StatRow) error {
	return s.repos.Stats.InsertStatRow(ctx, row)
}

func (s *RepositoryStore) InsertScoringPlay(ctx context.Context, gameID string, play boxscore.ScoringPlay) error {
	return s.repos.Stats.InsertScoringPlay(ctx, gameID, play)
}

func (s *RepositoryStore) ClearGameStats(ctx context.Context, gameID string) error {
	return s.repos.Stats.ClearGameStats(ctx, gameID)
}

func (s *RepositoryStore) GameExists(ctx context.Context, gameID string) (bool, error) {
	return s.repos.Stats.GameExists(ctx, gameID)
}

func (s *RepositoryStore) ComputeTeamTotals(ctx context.Context, gameID string) error {
	return s.repos.Stats.ComputeTeamTotals(ctx, gameID)
}
