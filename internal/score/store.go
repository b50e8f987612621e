package score

import (
	"crypto/sha256"
	"database/sql"
	"encoding/base64"
	"fmt"
	"log"

	"git.lost.host/meutraa/neon/internal/game"
	_ "github.com/mattn/go-sqlite3"
)

// Store persists per-chart session results. Nothing in here is fatal
// to the frame loop; a broken database just loses history.
type Store struct {
	db *sql.DB
}

func NewStore(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("unable to open score database: %w", err)
	}

	initStatement := `
	create table if not exists results
	  (
		  id integer not null primary key,
		  sum text,
		  score integer,
		  max_combo integer,
		  hits integer,
		  misses integer,
		  played_at timestamp default current_timestamp
	  );
	`
	if _, err := db.Exec(initStatement); err != nil {
		db.Close()
		return nil, fmt.Errorf("unable to create results table: %w", err)
	}

	return &Store{db: db}, nil
}

func (s *Store) Close() {
	if s.db != nil {
		s.db.Close()
	}
}

// HashChart identifies a chart by its note times and lanes, so results
// survive renames of the song file.
func HashChart(c *game.Chart) string {
	h := sha256.New()
	for _, n := range c.Notes {
		fmt.Fprintf(h, "%.4f:%d;", n.Time, n.Lane)
	}
	return base64.StdEncoding.EncodeToString(h.Sum(nil))
}

func (s *Store) Save(sum string, session *game.Session) {
	_, err := s.db.Exec(
		"insert into results(sum, score, max_combo, hits, misses) values(?, ?, ?, ?, ?)",
		sum, session.Score, session.MaxCombo, session.Hits, session.Misses,
	)
	if err != nil {
		log.Println("unable to save result:", err)
	}
}

// Best returns the highest stored score for a chart, 0 when none.
func (s *Store) Best(sum string) int {
	var best sql.NullInt64
	err := s.db.QueryRow("select max(score) from results where sum = ?", sum).Scan(&best)
	if err != nil && err != sql.ErrNoRows {
		log.Println("unable to load best result:", err)
		return 0
	}
	if !best.Valid {
		return 0
	}
	return int(best.Int64)
}
