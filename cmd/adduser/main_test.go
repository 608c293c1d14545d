package main

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunSuccess(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")

	stdout := new(bytes.Buffer)
	stderr := new(bytes.Buffer)
	stdin := new(bytes.Buffer)

	err := run([]string{"-user", "mario", "-password", "secret", "-db", dbPath}, stdin, stdout, stderr)
	require.NoError(t, err)
	assert.Contains(t, stdout.String(), "User mario created successfully")
}

func TestRunDuplicateUser(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")
	stdout := new(bytes.Buffer)
	stderr := new(bytes.Buffer)
	stdin := new(bytes.Buffer)

	args := []string{"-user", "mario", "-password", "secret", "-db", dbPath}
	require.NoError(t, run(args, stdin, stdout, stderr))

	err := run(args, stdin, stdout, stderr)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")
}

func TestRunMissingUserFlag(t *testing.T) {
	stdout := new(bytes.Buffer)
	stderr := new(bytes.Buffer)
	stdin := new(bytes.Buffer)

	err := run([]string{"-password", "secret"}, stdin, stdout, stderr)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing required flags: user")
	assert.Contains(t, stdout.String(), "Usage:")
}

func TestRunPromptsForPassword(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")
	stdout := new(bytes.Buffer)
	stderr := new(bytes.Buffer)
	stdin := bytes.NewBufferString("typed_secret\n")

	err := run([]string{"-user", "mario", "-db", dbPath}, stdin, stdout, stderr)
	require.NoError(t, err)
	assert.Contains(t, stdout.String(), "Password: ")
}

func TestRunRejectsEmptyPassword(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")
	stdout := new(bytes.Buffer)
	stderr := new(bytes.Buffer)
	stdin := bytes.NewBufferString("   \n")

	err := run([]string{"-user", "mario", "-db", dbPath}, stdin, stdout, stderr)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "password cannot be empty")
}
