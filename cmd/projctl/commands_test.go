package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GoSim-25-26J-441/project-tracker/internal/apitest"
	"github.com/GoSim-25-26J-441/project-tracker/internal/projects/domain"
)

type harness struct {
	t       *testing.T
	srv     *apitest.Server
	cfgPath string
	session string
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	srv := apitest.NewServer(t)
	dir := t.TempDir()
	session := filepath.Join(dir, "session.json")
	cfgPath := filepath.Join(dir, "config.yaml")
	content := fmt.Sprintf("server_url: %s\nsession_file: %s\ntimeout: 5s\n", srv.URL, session)
	require.NoError(t, os.WriteFile(cfgPath, []byte(content), 0o600))
	return &harness{t: t, srv: srv, cfgPath: cfgPath, session: session}
}

func (h *harness) run(stdin string, args ...string) (string, error) {
	h.t.Helper()
	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetIn(strings.NewReader(stdin))
	root.SetArgs(append(args, "--config", h.cfgPath))
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func (h *harness) login() {
	h.t.Helper()
	_, err := h.run("", "login", "--email", apitest.Email, "--password", apitest.Password)
	require.NoError(h.t, err)
}

func TestLoginAndWhoami(t *testing.T) {
	h := newHarness(t)

	out, err := h.run("", "login", "--email", apitest.Email, "--password", apitest.Password)
	require.NoError(t, err)
	assert.Contains(t, out, "Logged in as Ada Lovelace <ada@example.com>")
	assert.FileExists(t, h.session)

	out, err = h.run("", "whoami")
	require.NoError(t, err)
	assert.Contains(t, out, "Ada Lovelace <ada@example.com>")
}

func TestLoginPrompts(t *testing.T) {
	h := newHarness(t)

	out, err := h.run(apitest.Email+"\n"+apitest.Password+"\n", "login")
	require.NoError(t, err)
	assert.Contains(t, out, "Email: ")
	assert.Contains(t, out, "Password: ")
	assert.Contains(t, out, "Logged in as")
}

func TestLoginRejected(t *testing.T) {
	h := newHarness(t)

	_, err := h.run("", "login", "--email", apitest.Email, "--password", "nope")
	assert.EqualError(t, err, "Invalid credentials")
	assert.NoFileExists(t, h.session)
}

func TestCommandsRequireLogin(t *testing.T) {
	h := newHarness(t)

	for _, args := range [][]string{{"list"}, {"whoami"}, {"show", "1"}, {"create", "--title", "x"}, {"delete", "1", "--yes"}} {
		_, err := h.run("", args...)
		assert.ErrorIs(t, err, errNotLoggedIn, args)
	}
}

func TestLogout(t *testing.T) {
	h := newHarness(t)
	h.login()

	out, err := h.run("", "logout")
	require.NoError(t, err)
	assert.Contains(t, out, "Logged out")
	assert.NoFileExists(t, h.session)

	out, err = h.run("", "logout")
	require.NoError(t, err)
	assert.Contains(t, out, "Not logged in")
}

func TestProjectCommands(t *testing.T) {
	h := newHarness(t)
	h.login()

	out, err := h.run("", "create", "--title", "Write spec")
	require.NoError(t, err)
	assert.Contains(t, out, "Created project 1")

	_, err = h.run("", "create", "--title", "Ship", "--due", "2024-01-01", "--status", "completed", "--description", "release")
	require.NoError(t, err)

	out, err = h.run("", "list", "--sort", "due_date-asc")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 3)
	assert.Contains(t, lines[0], "TITLE")
	assert.Contains(t, lines[1], "Ship")
	assert.Contains(t, lines[2], "Write spec")

	out, err = h.run("", "list", "--status", "completed", "--json")
	require.NoError(t, err)
	var items []domain.Project
	require.NoError(t, json.Unmarshal([]byte(out), &items))
	require.Len(t, items, 1)
	assert.Equal(t, "Ship", items[0].Title)

	_, err = h.run("", "update", "1", "--status", "completed")
	require.NoError(t, err)
	out, err = h.run("", "show", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "Status:      completed")
	assert.Contains(t, out, "Title:       Write spec")

	out, err = h.run("n\n", "delete", "1")
	require.NoError(t, err)
	assert.Contains(t, out, `Delete project 1 "Write spec"? [y/N]`)
	assert.Contains(t, out, "Cancelled")

	out, err = h.run("y\n", "delete", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "Deleted project 1")

	_, err = h.run("", "delete", "2", "--yes")
	require.NoError(t, err)

	out, err = h.run("", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "No projects")
}

func TestProjectCommandErrors(t *testing.T) {
	h := newHarness(t)
	h.login()

	_, err := h.run("", "create", "--title", "")
	assert.EqualError(t, err, "The title field is required.")

	_, err = h.run("", "create", "--title", "x", "--status", "archived")
	assert.ErrorContains(t, err, "unknown status")

	_, err = h.run("", "create", "--title", "x", "--due", "soon")
	assert.ErrorContains(t, err, "due date")

	_, err = h.run("", "update", "1")
	assert.ErrorContains(t, err, "nothing to update")

	_, err = h.run("", "show", "abc")
	assert.ErrorContains(t, err, "invalid project id")

	_, err = h.run("", "show", "99")
	assert.EqualError(t, err, "Project not found")

	_, err = h.run("", "list", "--sort", "id-asc")
	assert.ErrorContains(t, err, "unknown sort")
}
