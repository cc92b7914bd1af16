// Package store persists extracted code files and their review diagnostics
// as package revisions in a SQL database.
package store

import (
	"bytes"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/Masterminds/semver/v3"
	_ "github.com/go-sql-driver/mysql"
	"github.com/google/uuid"
	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"

	"github.com/julianshen/apiview/internal/codefile"
	"github.com/julianshen/apiview/internal/render"
)

// Supported driver names.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
	DriverMySQL    = "mysql"
)

// ErrNotFound is returned when a revision does not exist.
var ErrNotFound = errors.New("revision not found")

// Revision describes one stored code file of a package version.
type Revision struct {
	ID             string
	PackageName    string
	PackageVersion string
	Language       string
	CreatedAt      time.Time
}

// Store wraps a SQL database holding revisions and diagnostics.
type Store struct {
	db     *sql.DB
	driver string
	now    func() time.Time
}

// Open connects to the database named by driver and dsn and ensures all
// required tables exist. An empty driver means sqlite; use ":memory:" as the
// sqlite dsn for an in-memory database.
func Open(driver, dsn string) (*Store, error) {
	if driver == "" {
		driver = DriverSQLite
	}
	sqlDriver, err := driverName(driver)
	if err != nil {
		return nil, err
	}
	db, err := sql.Open(sqlDriver, dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if driver == DriverSQLite {
		// Each sqlite connection to ":memory:" is a separate database.
		db.SetMaxOpenConns(1)
	}

	if err := createTables(db, driver); err != nil {
		db.Close()
		return nil, fmt.Errorf("create tables: %w", err)
	}

	return &Store{db: db, driver: driver, now: time.Now}, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func driverName(driver string) (string, error) {
	switch driver {
	case DriverSQLite:
		return "sqlite", nil
	case DriverPostgres:
		return "pgx", nil
	case DriverMySQL:
		return "mysql", nil
	}
	return "", fmt.Errorf("unsupported store driver %q", driver)
}

func createTables(db *sql.DB, driver string) error {
	content := "TEXT"
	if driver == DriverMySQL {
		content = "LONGTEXT"
	}
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS revisions (
			id              VARCHAR(36) PRIMARY KEY,
			package_name    VARCHAR(255) NOT NULL,
			package_version VARCHAR(64) NOT NULL,
			language        VARCHAR(32) NOT NULL,
			created_at      BIGINT NOT NULL,
			content         ` + content + ` NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS diagnostics (
			revision_id   VARCHAR(36) NOT NULL,
			seq           INTEGER NOT NULL,
			diagnostic_id VARCHAR(64) NOT NULL,
			target_id     TEXT NOT NULL,
			text          TEXT NOT NULL,
			help_link     TEXT NOT NULL,
			level         INTEGER NOT NULL,
			PRIMARY KEY (revision_id, seq)
		)`,
	}
	for _, stmt := range stmts {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("exec %q: %w", stmt[:40], err)
		}
	}
	return nil
}

// rebind rewrites ? placeholders into the $n form postgres expects.
func (s *Store) rebind(query string) string {
	if s.driver != DriverPostgres {
		return query
	}
	var b strings.Builder
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteString("$" + strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// SaveRevision stores cf as a new revision of its package, together with
// diags, and returns the revision record. Nothing is stored on failure.
func (s *Store) SaveRevision(cf *codefile.CodeFile, diags []render.Diagnostic) (*Revision, error) {
	if cf.PackageName == "" {
		return nil, fmt.Errorf("save revision: code file has no package name")
	}
	if cf.PackageVersion != "" {
		if _, err := semver.NewVersion(cf.PackageVersion); err != nil {
			log.Printf("warning: package %s version %q is not semver; it will sort last", cf.PackageName, cf.PackageVersion)
		}
	}

	var buf bytes.Buffer
	if err := cf.Write(&buf); err != nil {
		return nil, fmt.Errorf("save revision: %w", err)
	}

	rev := &Revision{
		ID:             uuid.New().String(),
		PackageName:    cf.PackageName,
		PackageVersion: cf.PackageVersion,
		Language:       cf.Language,
		CreatedAt:      s.now().UTC().Truncate(time.Millisecond),
	}
	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(s.rebind(
		`INSERT INTO revisions (id, package_name, package_version, language, created_at, content)
		 VALUES (?, ?, ?, ?, ?, ?)`),
		rev.ID, rev.PackageName, rev.PackageVersion, rev.Language, rev.CreatedAt.UnixMilli(), buf.String(),
	)
	if err != nil {
		return nil, fmt.Errorf("save revision: %w", err)
	}
	if err := s.insertDiagnostics(tx, rev.ID, diags); err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit: %w", err)
	}
	return rev, nil
}

// GetRevision returns the revision with the given id together with its
// decoded code file. It returns ErrNotFound when no such revision exists.
func (s *Store) GetRevision(id string) (*Revision, *codefile.CodeFile, error) {
	var (
		rev     Revision
		created int64
		content string
	)
	err := s.db.QueryRow(s.rebind(
		`SELECT id, package_name, package_version, language, created_at, content
		 FROM revisions WHERE id = ?`), id,
	).Scan(&rev.ID, &rev.PackageName, &rev.PackageVersion, &rev.Language, &created, &content)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err != nil {
		return nil, nil, fmt.Errorf("get revision: %w", err)
	}
	rev.CreatedAt = time.UnixMilli(created).UTC()

	cf, err := codefile.Unmarshal([]byte(content))
	if err != nil {
		return nil, nil, fmt.Errorf("get revision %s: %w", id, err)
	}
	return &rev, cf, nil
}

// ListRevisions returns the revisions of a package, highest version first.
// Revisions of the same version are ordered newest first, and versions that
// are not valid semver sort after all others.
func (s *Store) ListRevisions(packageName string) ([]Revision, error) {
	rows, err := s.db.Query(s.rebind(
		`SELECT id, package_name, package_version, language, created_at
		 FROM revisions WHERE package_name = ?`), packageName,
	)
	if err != nil {
		return nil, fmt.Errorf("list revisions: %w", err)
	}
	defer rows.Close()

	var revs []Revision
	for rows.Next() {
		var (
			r       Revision
			created int64
		)
		if err := rows.Scan(&r.ID, &r.PackageName, &r.PackageVersion, &r.Language, &created); err != nil {
			return nil, fmt.Errorf("scan revision: %w", err)
		}
		r.CreatedAt = time.UnixMilli(created).UTC()
		revs = append(revs, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list revisions: %w", err)
	}

	sortRevisions(revs)
	return revs, nil
}

// LatestRevision returns the first revision ListRevisions would report for
// the package.
func (s *Store) LatestRevision(packageName string) (*Revision, error) {
	revs, err := s.ListRevisions(packageName)
	if err != nil {
		return nil, err
	}
	if len(revs) == 0 {
		return nil, fmt.Errorf("%w: no revisions of %s", ErrNotFound, packageName)
	}
	return &revs[0], nil
}

func sortRevisions(revs []Revision) {
	versions := make(map[string]*semver.Version, len(revs))
	for _, r := range revs {
		if _, ok := versions[r.PackageVersion]; ok {
			continue
		}
		v, err := semver.NewVersion(r.PackageVersion)
		if err != nil {
			v = nil
		}
		versions[r.PackageVersion] = v
	}

	sort.SliceStable(revs, func(i, j int) bool {
		vi, vj := versions[revs[i].PackageVersion], versions[revs[j].PackageVersion]
		switch {
		case vi != nil && vj != nil && !vi.Equal(vj):
			return vi.GreaterThan(vj)
		case vi != nil && vj == nil:
			return true
		case vi == nil && vj != nil:
			return false
		case vi == nil && vj == nil && revs[i].PackageVersion != revs[j].PackageVersion:
			return revs[i].PackageVersion < revs[j].PackageVersion
		}
		return revs[i].CreatedAt.After(revs[j].CreatedAt)
	})
}

// DeleteRevision removes a revision and its diagnostics.
func (s *Store) DeleteRevision(id string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.Exec(s.rebind(`DELETE FROM revisions WHERE id = ?`), id)
	if err != nil {
		return fmt.Errorf("delete revision: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if _, err := tx.Exec(s.rebind(`DELETE FROM diagnostics WHERE revision_id = ?`), id); err != nil {
		return fmt.Errorf("delete diagnostics: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

// SetDiagnostics replaces the diagnostics attached to a revision.
func (s *Store) SetDiagnostics(revisionID string, diags []render.Diagnostic) error {
	var exists int
	err := s.db.QueryRow(s.rebind(`SELECT COUNT(*) FROM revisions WHERE id = ?`), revisionID).Scan(&exists)
	if err != nil {
		return fmt.Errorf("set diagnostics: %w", err)
	}
	if exists == 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, revisionID)
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(s.rebind(`DELETE FROM diagnostics WHERE revision_id = ?`), revisionID); err != nil {
		return fmt.Errorf("clear diagnostics: %w", err)
	}
	if err := s.insertDiagnostics(tx, revisionID, diags); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

func (s *Store) insertDiagnostics(tx *sql.Tx, revisionID string, diags []render.Diagnostic) error {
	insert := s.rebind(
		`INSERT INTO diagnostics (revision_id, seq, diagnostic_id, target_id, text, help_link, level)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`)
	for i, d := range diags {
		if _, err := tx.Exec(insert, revisionID, i, d.DiagnosticID, d.TargetID, d.Text, d.HelpLinkURI, int(d.Level)); err != nil {
			return fmt.Errorf("insert diagnostic %d: %w", i, err)
		}
	}
	return nil
}

// Diagnostics returns the diagnostics of a revision in the order they were
// stored.
func (s *Store) Diagnostics(revisionID string) ([]render.Diagnostic, error) {
	rows, err := s.db.Query(s.rebind(
		`SELECT diagnostic_id, target_id, text, help_link, level
		 FROM diagnostics WHERE revision_id = ? ORDER BY seq`), revisionID,
	)
	if err != nil {
		return nil, fmt.Errorf("list diagnostics: %w", err)
	}
	defer rows.Close()

	var diags []render.Diagnostic
	for rows.Next() {
		var (
			d     render.Diagnostic
			level int
		)
		if err := rows.Scan(&d.DiagnosticID, &d.TargetID, &d.Text, &d.HelpLinkURI, &level); err != nil {
			return nil, fmt.Errorf("scan diagnostic: %w", err)
		}
		d.Level = render.Level(level)
		diags = append(diags, d)
	}
	return diags, rows.Err()
}
