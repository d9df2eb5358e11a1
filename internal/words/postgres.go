package words

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Store reads the word corpus from a Postgres table. The engine only loads
// the corpus once at startup; the table is the system of record shared
// between deployments.
type Store struct {
	pool *pgxpool.Pool
}

func NewStore(ctx context.Context, connString string) (*Store, error) {
	pool, err := pgxpool.New(ctx, connString)
	if err != nil {
		return nil, fmt.Errorf("connect to word store: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping word store: %w", err)
	}
	return &Store{pool: pool}, nil
}

// EnsureSchema creates the words table when missing.
func (s *Store) EnsureSchema(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, `CREATE TABLE IF NOT EXISTS words (word TEXT PRIMARY KEY)`)
	if err != nil {
		return fmt.Errorf("ensure words schema: %w", err)
	}
	return nil
}

// Insert adds words to the corpus, ignoring duplicates.
func (s *Store) Insert(ctx context.Context, ws ...string) error {
	for _, w := range ws {
		_, err := s.pool.Exec(ctx,
			`INSERT INTO words (word) VALUES ($1) ON CONFLICT (word) DO NOTHING`, w)
		if err != nil {
			return fmt.Errorf("insert word %q: %w", w, err)
		}
	}
	return nil
}

// Words returns the full corpus in stable order.
func (s *Store) Words(ctx context.Context) ([]string, error) {
	rows, err := s.pool.Query(ctx, `SELECT word FROM words ORDER BY word`)
	if err != nil {
		return nil, fmt.Errorf("load word corpus: %w", err)
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var w string
		if err := rows.Scan(&w); err != nil {
			return nil, fmt.Errorf("scan word row: %w", err)
		}
		out = append(out, w)
	}
	if err := rows.Err(); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrEmptyCorpus
		}
		return nil, fmt.Errorf("read word corpus: %w", err)
	}
	return out, nil
}

func (s *Store) Close() {
	s.pool.Close()
}
