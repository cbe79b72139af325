package paperstore

import (
	"fmt"
	"os"
	"path/filepath"

	"crawshaw.io/sqlite"

	"github.com/arxivtools/paperembed/internal/errortypes"
)

// IndexFilename is the database file inside a cache directory.
const IndexFilename = "index.db"

const createEmbeddingsSQL = `
CREATE TABLE IF NOT EXISTS embeddings (
	paper_id TEXT PRIMARY KEY,
	model TEXT,
	vector BLOB,
	created TIMESTAMP DEFAULT CURRENT_TIMESTAMP
);`

// SQLiteStore is the Store implementation over the on-disk cache database.
type SQLiteStore struct {
	conn   *sqlite.Conn
	dbPath string
}

// ResolvePath maps a cache location to its database file. A directory
// argument resolves to <dir>/index.db; a file argument is used directly.
// A store-not-found error is returned when the database does not exist:
// the cache is owned by the ingestion process and is never created here.
func ResolvePath(path string) (string, error) {
	info, err := os.Stat(path)
	if err == nil && info.IsDir() {
		path = filepath.Join(path, IndexFilename)
		info, err = os.Stat(path)
	}
	if err != nil || info.IsDir() {
		return "", errortypes.StoreNotFound(err, fmt.Sprintf("database not found at %s", path))
	}
	return path, nil
}

// Open opens the cache database at path (a cache directory or the database
// file itself).
func Open(path string) (*SQLiteStore, error) {
	dbPath, err := ResolvePath(path)
	if err != nil {
		return nil, err
	}

	conn, err := sqlite.OpenConn(dbPath, sqlite.SQLITE_OPEN_READWRITE)
	if err != nil {
		return nil, errortypes.Database(err, "failed to open database")
	}

	return &SQLiteStore{conn: conn, dbPath: dbPath}, nil
}

// Path returns the resolved database file path.
func (s *SQLiteStore) Path() string {
	return s.dbPath
}

// Close closes the underlying connection.
func (s *SQLiteStore) Close() error {
	if s.conn != nil {
		return s.conn.Close()
	}
	return nil
}

// exec runs a statement that returns no rows.
func (s *SQLiteStore) exec(query string, bind func(stmt *sqlite.Stmt)) error {
	stmt, err := s.conn.Prepare(query)
	if err != nil {
		return err
	}
	defer stmt.Reset()

	if bind != nil {
		bind(stmt)
	}
	_, err = stmt.Step()
	return err
}

// EnsureEmbeddingsTable creates the embeddings table if it does not exist.
func (s *SQLiteStore) EnsureEmbeddingsTable() error {
	if err := s.exec(createEmbeddingsSQL, nil); err != nil {
		return errortypes.Database(err, "failed to create embeddings table")
	}
	return nil
}

// SelectPending returns papers with non-empty title and abstract that have
// no embeddings row yet.
func (s *SQLiteStore) SelectPending(limit int) ([]Paper, error) {
	query := `
	SELECT id, title, abstract FROM papers
	WHERE title != '' AND abstract != ''
	AND id NOT IN (SELECT paper_id FROM embeddings)`
	if limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", limit)
	}

	stmt, err := s.conn.Prepare(query)
	if err != nil {
		return nil, errortypes.Database(err, "failed to prepare pending query")
	}
	defer stmt.Reset()

	var papers []Paper
	for {
		hasRow, err := stmt.Step()
		if err != nil {
			return nil, errortypes.Database(err, "failed to scan pending papers")
		}
		if !hasRow {
			break
		}
		papers = append(papers, Paper{
			ID:       stmt.ColumnText(0),
			Title:    stmt.ColumnText(1),
			Abstract: stmt.ColumnText(2),
		})
	}
	return papers, nil
}

// GetPaper fetches one paper by identifier.
func (s *SQLiteStore) GetPaper(id string) (Paper, error) {
	stmt, err := s.conn.Prepare(`SELECT id, title, abstract FROM papers WHERE id = ?;`)
	if err != nil {
		return Paper{}, errortypes.Database(err, "failed to prepare paper query")
	}
	defer stmt.Reset()

	stmt.BindText(1, id)

	hasRow, err := stmt.Step()
	if err != nil {
		return Paper{}, errortypes.Database(err, "failed to fetch paper")
	}
	if !hasRow {
		return Paper{}, errortypes.RecordNotFound(nil, fmt.Sprintf("paper %s not found", id))
	}

	return Paper{
		ID:       stmt.ColumnText(0),
		Title:    stmt.ColumnText(1),
		Abstract: stmt.ColumnText(2),
	}, nil
}

// PutEmbedding upserts one vector blob keyed by paper identifier.
func (s *SQLiteStore) PutEmbedding(id, model string, blob []byte) error {
	insertSQL := `
	INSERT OR REPLACE INTO embeddings (paper_id, model, vector, created)
	VALUES (?, ?, ?, datetime('now'));`

	err := s.exec(insertSQL, func(stmt *sqlite.Stmt) {
		stmt.BindText(1, id)
		stmt.BindText(2, model)
		stmt.BindBytes(3, blob)
	})
	if err != nil {
		return errortypes.Database(err, fmt.Sprintf("failed to store embedding for %s", id))
	}
	return nil
}

// GetEmbedding fetches the stored model name and vector blob for a paper.
func (s *SQLiteStore) GetEmbedding(id string) (string, []byte, error) {
	stmt, err := s.conn.Prepare(`SELECT model, vector FROM embeddings WHERE paper_id = ?;`)
	if err != nil {
		return "", nil, errortypes.Database(err, "failed to prepare embedding query")
	}
	defer stmt.Reset()

	stmt.BindText(1, id)

	hasRow, err := stmt.Step()
	if err != nil {
		return "", nil, errortypes.Database(err, "failed to fetch embedding")
	}
	if !hasRow {
		return "", nil, errortypes.RecordNotFound(nil, fmt.Sprintf("no embedding for paper %s", id))
	}

	model := stmt.ColumnText(0)
	blob := make([]byte, stmt.ColumnLen(1))
	stmt.ColumnBytes(1, blob)
	return model, blob, nil
}

// CountEmbeddings reports how many embeddings rows exist.
func (s *SQLiteStore) CountEmbeddings() (int, error) {
	stmt, err := s.conn.Prepare(`SELECT COUNT(*) FROM embeddings;`)
	if err != nil {
		return 0, errortypes.Database(err, "failed to prepare count query")
	}
	defer stmt.Reset()

	hasRow, err := stmt.Step()
	if err != nil || !hasRow {
		return 0, errortypes.Database(err, "failed to count embeddings")
	}
	return stmt.ColumnInt(0), nil
}

// Begin starts an explicit transaction.
func (s *SQLiteStore) Begin() error {
	if err := s.exec("BEGIN;", nil); err != nil {
		return errortypes.Database(err, "failed to begin transaction")
	}
	return nil
}

// Commit commits the current transaction.
func (s *SQLiteStore) Commit() error {
	if err := s.exec("COMMIT;", nil); err != nil {
		return errortypes.Database(err, "failed to commit transaction")
	}
	return nil
}
