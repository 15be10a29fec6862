package cli_test

import (
	"context"
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/raceops/trackdesk/pkg/cli"
)

func TestRun_MigrateCommand(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "trackdesk.db")

	err := cli.Run(context.Background(), []string{"trackdesk", "migrate", "--db", dbPath}, "test")
	gt.NoError(t, err).Required()

	info, err := os.Stat(dbPath)
	gt.NoError(t, err).Required()
	gt.Bool(t, info.Size() > 0).True()

	// Running again against the same file must be a no-op.
	err = cli.Run(context.Background(), []string{"trackdesk", "migrate", "--db", dbPath}, "test")
	gt.NoError(t, err)
}

func TestRun_MigrateCommand_RejectsGarbage(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "notes.txt")
	gt.NoError(t, os.WriteFile(dbPath, []byte("shift handover notes"), 0600)).Required()

	err := cli.Run(context.Background(), []string{"trackdesk", "migrate", "--db", dbPath}, "test")
	gt.Error(t, err)
}

func TestRun_ExportCommand(t *testing.T) {
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "trackdesk.db")
	outPath := filepath.Join(dir, "board.csv")

	err := cli.Run(context.Background(), []string{
		"trackdesk", "export",
		"--repository-backend", "sqlite",
		"--db", dbPath,
		"--format", "csv",
		"--out", outPath,
	}, "test")
	gt.NoError(t, err).Required()

	f, err := os.Open(outPath)
	gt.NoError(t, err).Required()
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	gt.NoError(t, err).Required()
	gt.Array(t, records).Length(1) // empty store exports a header-only document
}

func TestRun_ExportCommand_UnknownFormat(t *testing.T) {
	dir := t.TempDir()

	err := cli.Run(context.Background(), []string{
		"trackdesk", "export",
		"--repository-backend", "memory",
		"--format", "docx",
		"--out", filepath.Join(dir, "board.docx"),
	}, "test")
	gt.Error(t, err)
}

func TestRun_ListCommand(t *testing.T) {
	err := cli.Run(context.Background(), []string{
		"trackdesk", "list",
		"--repository-backend", "memory",
	}, "test")
	gt.NoError(t, err)
}
