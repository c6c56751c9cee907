package store

import (
	"database/sql"
	"os"
	"path/filepath"
	"testing"
)

func TestOpen_CreatesNewDatabase(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.db")

	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer s.Close()

	// Verify file was created
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Error("database file was not created")
	}
}

func TestOpen_Idempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.db")

	for i := 0; i < 3; i++ {
		s, err := Open(path)
		if err != nil {
			t.Fatalf("Open() iteration %d failed: %v", i, err)
		}
		s.Close()
	}

	s, err := Open(path)
	if err != nil {
		t.Fatalf("final Open() failed: %v", err)
	}
	defer s.Close()

	for _, table := range []string{"habits", "completions"} {
		var name string
		err := s.db.QueryRow(
			"SELECT name FROM sqlite_master WHERE type='table' AND name=?",
			table,
		).Scan(&name)
		if err != nil {
			t.Errorf("table %q not found after idempotent opens: %v", table, err)
		}
	}
}

func TestOpen_InvalidPath(t *testing.T) {
	_, err := Open("/nonexistent/dir/test.db")
	if err == nil {
		t.Error("expected error for invalid path, got nil")
	}
}

func TestClose_NilDB(t *testing.T) {
	s := &Store{db: nil}
	if err := s.Close(); err != nil {
		t.Errorf("Close() on nil db should not error: %v", err)
	}
}

func TestDB_ReturnsUnderlyingConnection(t *testing.T) {
	s := createTestStore(t)

	db := s.DB()
	if db == nil {
		t.Fatal("DB() returned nil")
	}
	if err := db.Ping(); err != nil {
		t.Errorf("DB() connection not usable: %v", err)
	}
}

func TestPragmas(t *testing.T) {
	s := createTestStore(t)

	tests := []struct{ name, want string }{
		{"journal_mode", "wal"},
		{"synchronous", "1"}, // NORMAL
		{"busy_timeout", "5000"},
		{"foreign_keys", "1"},
	}
	for _, tt := range tests {
		if err := s.verifyPragma(tt.name, tt.want); err != nil {
			t.Error(err)
		}
	}
}

func TestSchema_Columns(t *testing.T) {
	s := createTestStore(t)

	expected := map[string][]string{
		"habits":      {"id", "name", "frequency", "start_date"},
		"completions": {"habit_id", "completion_date"},
	}
	for table, cols := range expected {
		columns := getTableColumns(t, s.db, table)
		for _, col := range cols {
			if !contains(columns, col) {
				t.Errorf("%s table missing column %q", table, col)
			}
		}
	}
}

func TestSchema_FrequencyCheck(t *testing.T) {
	s := createTestStore(t)

	_, err := s.db.Exec(`INSERT INTO habits (id, name, frequency, start_date) VALUES ('x', 'Nap', 'hourly', '2024-01-01')`)
	if err == nil {
		t.Error("expected CHECK constraint violation for frequency 'hourly'")
	}
}

func TestSchema_CompletionRequiresHabit(t *testing.T) {
	s := createTestStore(t)

	_, err := s.db.Exec(`INSERT INTO completions (habit_id, completion_date) VALUES ('missing', '2024-01-01')`)
	if err == nil {
		t.Error("expected foreign key violation for unknown habit_id")
	}
}

func TestMigration_SchemaVersion(t *testing.T) {
	s := createTestStore(t)

	var version int
	if err := s.db.QueryRow("PRAGMA user_version").Scan(&version); err != nil {
		t.Fatalf("failed to get user_version: %v", err)
	}
	if version != currentSchemaVersion {
		t.Errorf("user_version = %d, want %d", version, currentSchemaVersion)
	}

	indexes := getTableIndexes(t, s.db, "completions")
	if !contains(indexes, "idx_completions_habit_date") {
		t.Errorf("completions table missing idx_completions_habit_date, indexes: %v", indexes)
	}
}

func TestMigration_UpgradeFromV0(t *testing.T) {
	// A version 0 database: completions without the UNIQUE constraint and
	// with a duplicated row.
	path := filepath.Join(t.TempDir(), "test.db")

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	legacy := `
		CREATE TABLE habits (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL UNIQUE,
			frequency TEXT NOT NULL,
			start_date TEXT NOT NULL
		);
		CREATE TABLE completions (
			habit_id TEXT NOT NULL REFERENCES habits(id) ON DELETE CASCADE,
			completion_date TEXT NOT NULL
		);
		INSERT INTO habits VALUES ('h1', 'Read', 'daily', '2024-01-01');
		INSERT INTO completions VALUES ('h1', '2024-01-02');
		INSERT INTO completions VALUES ('h1', '2024-01-02');
		INSERT INTO completions VALUES ('h1', '2024-01-03');
		PRAGMA user_version = 0;
	`
	if _, err := db.Exec(legacy); err != nil {
		t.Fatalf("failed to create legacy schema: %v", err)
	}
	db.Close()

	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer s.Close()

	var version int
	if err := s.db.QueryRow("PRAGMA user_version").Scan(&version); err != nil {
		t.Fatalf("failed to get user_version: %v", err)
	}
	if version != currentSchemaVersion {
		t.Errorf("user_version = %d, want %d after migration", version, currentSchemaVersion)
	}

	var count int
	if err := s.db.QueryRow("SELECT COUNT(*) FROM completions").Scan(&count); err != nil {
		t.Fatalf("count completions: %v", err)
	}
	if count != 2 {
		t.Errorf("completions after migration = %d, want 2 (duplicate removed)", count)
	}

	if !contains(getTableIndexes(t, s.db, "completions"), "idx_completions_habit_date") {
		t.Error("expected idx_completions_habit_date after migration")
	}
}

// Helper functions

func getTableColumns(t *testing.T, db *sql.DB, table string) []string {
	t.Helper()

	rows, err := db.Query("PRAGMA table_info(" + table + ")")
	if err != nil {
		t.Fatalf("failed to get table info for %q: %v", table, err)
	}
	defer rows.Close()

	var columns []string
	for rows.Next() {
		var cid int
		var name, ctype string
		var notnull, pk int
		var dfltValue interface{}
		if err := rows.Scan(&cid, &name, &ctype, &notnull, &dfltValue, &pk); err != nil {
			t.Fatalf("failed to scan column info: %v", err)
		}
		columns = append(columns, name)
	}
	return columns
}

func getTableIndexes(t *testing.T, db *sql.DB, table string) []string {
	t.Helper()

	rows, err := db.Query("SELECT name FROM sqlite_master WHERE type='index' AND tbl_name=?", table)
	if err != nil {
		t.Fatalf("failed to get indexes for %q: %v", table, err)
	}
	defer rows.Close()

	var indexes []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			t.Fatalf("failed to scan index name: %v", err)
		}
		indexes = append(indexes, name)
	}
	return indexes
}

func contains(slice []string, item string) bool {
	for _, s := range slice {
		if s == item {
			return true
		}
	}
	return false
}
