package main

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestRootCommand_HasSubcommands verifies root command structure
func TestRootCommand_HasSubcommands(t *testing.T) {
	cmd := getRootCmd()
	require.NotNil(t, cmd)

	names := make(map[string]bool)
	for _, c := range cmd.Commands() {
		names[c.Name()] = true
	}

	assert.True(t, names["create"], "create subcommand should exist")
	assert.True(t, names["populate"], "populate subcommand should exist")
	assert.True(t, names["query"], "query subcommand should exist")
}

// TestRootCommand_ConfigFlag verifies --config flag exists
func TestRootCommand_ConfigFlag(t *testing.T) {
	cmd := getRootCmd()

	configFlag := cmd.PersistentFlags().Lookup("config")
	require.NotNil(t, configFlag, "--config flag should exist")
	assert.Equal(t, "string", configFlag.Value.Type())
}

// TestRootCommand_Help verifies help text includes usage
func TestRootCommand_Help(t *testing.T) {
	cmd := getRootCmd()

	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"--help"})
	err := cmd.Execute()
	require.NoError(t, err)

	helpText := buf.String()
	assert.Contains(t, helpText, "gntree")
	assert.Contains(t, helpText, "lineage")
	assert.Contains(t, helpText, "Available Commands")
}

// TestRootCommand_VersionFlag verifies --version flag
func TestRootCommand_VersionFlag(t *testing.T) {
	cmd := getRootCmd()
	cmd.Version = "test-version"

	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"--version"})
	err := cmd.Execute()
	require.NoError(t, err)

	assert.Contains(t, buf.String(), "test-version")
}

// TestQueryCommand_HasSubcommands verifies the query surface
func TestQueryCommand_HasSubcommands(t *testing.T) {
	cmd := getRootCmd()

	var subNames map[string]bool
	for _, c := range cmd.Commands() {
		if c.Name() == "query" {
			subNames = make(map[string]bool)
			for _, sub := range c.Commands() {
				subNames[sub.Name()] = true
			}
		}
	}
	require.NotNil(t, subNames, "query subcommand should exist")

	for _, name := range []string{
		"name2id", "id2name", "rank", "parent", "lineage",
		"ancestor", "children", "siblings", "relatives", "nca",
	} {
		assert.True(t, subNames[name], "query %s should exist", name)
	}
}

// TestCreateCommand_ForceFlag verifies the --force flag
func TestCreateCommand_ForceFlag(t *testing.T) {
	cmd := getCreateCmd()
	flag := cmd.Flags().Lookup("force")
	require.NotNil(t, flag)
	assert.Equal(t, "bool", flag.Value.Type())
}

// TestCreateCommand_ConfirmBeforeDrop verifies the confirmation gate
func TestCreateCommand_ConfirmBeforeDrop(t *testing.T) {
	tests := []struct {
		name  string
		count int
		err   error
		force bool
		want  bool
	}{
		{"empty store", 0, nil, false, false},
		{"populated store", 5, nil, false, true},
		{"populated store with force", 5, nil, true, false},
		{"no previous store", 0, errors.New("no such table"), false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want,
				confirmBeforeDrop(tt.count, tt.err, tt.force))
		})
	}
}

// TestPopulateCommand_Flags verifies populate flags
func TestPopulateCommand_Flags(t *testing.T) {
	cmd := getPopulateCmd()

	for _, name := range []string{"source", "jobs", "batch"} {
		assert.NotNil(t, cmd.Flags().Lookup(name), "--%s should exist", name)
	}
}
