package repository

import "github.com/fortuna/gridiron/internal/store"

// Store bundles the repositories over one database handle.
type Store struct {
	Games   *GameRepository
	Players *PlayerRepository
	Stats   *StatRepository
}

// NewStore creates the repository bundle.
func NewStore(db *store.Database) *Store {
	conn := db.DB()
	return &Store{
		Games:   NewGameRepository(conn),
		Players: NewPlayerRepository(conn),
		Stats:   NewStatRepository(conn),
	}
}
