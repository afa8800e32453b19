package main

import (
	"errors"
	"fmt"

	"github.com/jaxxstorm/gitver"
	"github.com/spf13/viper"
)

// Settings is the fully resolved configuration handed to the engine.
// Precedence is applied exactly once, here: CLI flag, then config file,
// then default. The engine never sees where a value came from.
type Settings struct {
	Workflow        gitver.Workflow
	Format          gitver.OutputFormat
	ForcedIncrement *gitver.Increment
	NextVersion     string
	Strict          bool
}

func resolveSettings(cli *CLI, repoPath string) (*Settings, error) {
	v := viper.New()
	v.SetConfigName(".gitver")
	v.AddConfigPath(repoPath)
	if cli.Config != "" {
		v.SetConfigFile(cli.Config)
	}

	v.SetDefault("workflow", string(gitver.WorkflowGitFlow))
	v.SetDefault("format", string(gitver.FormatText))
	v.SetDefault("next-version", "")
	v.SetDefault("strict", false)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cli.Config != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// No config file found during search; defaults apply.
	}

	workflowName := v.GetString("workflow")
	if cli.Workflow != "" {
		workflowName = cli.Workflow
	}
	workflow, err := gitver.ParseWorkflow(workflowName)
	if err != nil {
		return nil, err
	}

	formatName := v.GetString("format")
	if cli.Format != "" {
		formatName = cli.Format
	}
	format, err := gitver.ParseOutputFormat(formatName)
	if err != nil {
		return nil, err
	}

	nextVersion := v.GetString("next-version")
	if cli.NextVersion != "" {
		nextVersion = cli.NextVersion
	}

	strict := v.GetBool("strict")
	if cli.Strict {
		strict = true
	}

	return &Settings{
		Workflow:        workflow,
		Format:          format,
		ForcedIncrement: forcedIncrement(cli),
		NextVersion:     nextVersion,
		Strict:          strict,
	}, nil
}

// forcedIncrement maps the mutually exclusive --major/--minor/--patch
// flags to an increment override; nil means detect from commit messages
func forcedIncrement(cli *CLI) *gitver.Increment {
	var inc gitver.Increment
	switch {
	case cli.Major:
		inc = gitver.IncrementMajor
	case cli.Minor:
		inc = gitver.IncrementMinor
	case cli.Patch:
		inc = gitver.IncrementPatch
	default:
		return nil
	}
	return &inc
}
