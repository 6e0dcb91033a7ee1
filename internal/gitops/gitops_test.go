package gitops

import (
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func requireGit(t *testing.T) {
	t.Helper()
	if !Available() {
		t.Skip("git not available, skipping")
	}
}

func TestInit(t *testing.T) {
	requireGit(t)
	dir := t.TempDir()
	require.NoError(t, Init(dir))

	_, err := os.Stat(filepath.Join(dir, ".git"))
	require.NoError(t, err, ".git directory should exist")
}

func TestIsRepo(t *testing.T) {
	requireGit(t)
	dir := t.TempDir()
	assert.False(t, IsRepo(dir), "empty dir should not be a repo")

	require.NoError(t, Init(dir))
	assert.True(t, IsRepo(dir), "initialized dir should be a repo")

	sub := filepath.Join(dir, "sub")
	require.NoError(t, os.Mkdir(sub, 0o755))
	assert.True(t, IsRepo(sub), "subdirectory should be inside the repo")
}

func TestCommitFile(t *testing.T) {
	requireGit(t)
	dir := t.TempDir()
	require.NoError(t, Init(dir))

	ledger := filepath.Join(dir, "budget.json")
	other := filepath.Join(dir, "notes.txt")
	require.NoError(t, os.WriteFile(ledger, []byte(`{"initial_budget": 1, "expenses": []}`), 0o644))
	require.NoError(t, os.WriteFile(other, []byte("not committed"), 0o644))

	hash, err := CommitFile(ledger, "budget: save", "Test Author", "test@example.com")
	require.NoError(t, err)
	assert.NotEmpty(t, hash)

	log := exec.Command("git", "log", "--format=%s|%an <%ae>", "-1")
	log.Dir = dir
	out, err := log.Output()
	require.NoError(t, err)
	assert.Contains(t, string(out), "budget: save|Test Author <test@example.com>")

	// Only the ledger file is committed.
	files := exec.Command("git", "ls-files")
	files.Dir = dir
	out, err = files.Output()
	require.NoError(t, err)
	assert.Equal(t, "budget.json\n", string(out))
}

func TestCommitFile_NoChanges(t *testing.T) {
	requireGit(t)
	dir := t.TempDir()
	require.NoError(t, Init(dir))

	ledger := filepath.Join(dir, "budget.json")
	require.NoError(t, os.WriteFile(ledger, []byte("{}"), 0o644))

	_, err := CommitFile(ledger, "first", "A", "a@example.com")
	require.NoError(t, err)

	hash, err := CommitFile(ledger, "second", "A", "a@example.com")
	require.NoError(t, err)
	assert.Empty(t, hash)
}

func TestCommitFile_LeavesOtherStagedFiles(t *testing.T) {
	requireGit(t)
	dir := t.TempDir()
	require.NoError(t, Init(dir))

	ledger := filepath.Join(dir, "budget.json")
	require.NoError(t, os.WriteFile(ledger, []byte(`{"initial_budget": 1, "expenses": []}`), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("staged by the user"), 0o644))

	add := exec.Command("git", "add", "notes.txt")
	add.Dir = dir
	out, err := add.CombinedOutput()
	require.NoError(t, err, string(out))

	hash, err := CommitFile(ledger, "budget: save", "Test Author", "test@example.com")
	require.NoError(t, err)
	require.NotEmpty(t, hash)

	show := exec.Command("git", "show", "--name-only", "--format=", "HEAD")
	show.Dir = dir
	out, err = show.Output()
	require.NoError(t, err)
	assert.Equal(t, "budget.json", strings.TrimSpace(string(out)))

	// notes.txt stays staged for the user's own commit.
	staged := exec.Command("git", "diff", "--cached", "--name-only")
	staged.Dir = dir
	out, err = staged.Output()
	require.NoError(t, err)
	assert.Equal(t, "notes.txt", strings.TrimSpace(string(out)))
}
