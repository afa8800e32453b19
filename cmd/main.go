package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"
	"github.com/jaxxstorm/gitver"
	"github.com/lmittmann/tint"
)

// Version will be set by build process
var Version = "dev"

type CLI struct {
	Repo        string `short:"r" help:"Repository path (default: current directory)"`
	Workflow    string `short:"w" help:"Branching workflow: gitflow, githubflow or trunk"`
	Format      string `short:"f" help:"Output format: text, json, assemblysemver or assemblysemfilever"`
	Major       bool   `help:"Force a major increment" xor:"increment"`
	Minor       bool   `help:"Force a minor increment" xor:"increment"`
	Patch       bool   `help:"Force a patch increment" xor:"increment"`
	NextVersion string `help:"Override the next version number (e.g. '3.0.0')"`
	Strict      bool   `help:"Fail when the nearest tag is not a valid semantic version"`
	Config      string `short:"c" help:"Config file path (default: .gitver.yaml in the repository)" type:"path"`
	Verbose     bool   `short:"v" help:"Enable debug logging"`
	ShowVersion bool   `help:"Show version information" name:"version"`
}

func main() {
	var cli CLI

	kong.Parse(&cli,
		kong.Name("gitver"),
		kong.Description("Calculate branch-aware semantic versions from Git repository state"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
		kong.Vars{
			"version": Version,
		},
	)

	setupLogging(cli.Verbose)

	err := cli.Run()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func setupLogging(verbose bool) {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(tint.NewHandler(os.Stderr, &tint.Options{
		Level: level,
	})))
}

func (c *CLI) Run() error {
	if c.ShowVersion {
		fmt.Printf("gitver version %s\n", Version)
		return nil
	}

	repoPath := c.Repo
	if repoPath == "" {
		var err error
		repoPath, err = os.Getwd()
		if err != nil {
			return fmt.Errorf("getting current directory: %w", err)
		}
	}

	settings, err := resolveSettings(c, repoPath)
	if err != nil {
		return err
	}
	slog.Debug("resolved settings",
		"repo", repoPath,
		"workflow", settings.Workflow,
		"format", settings.Format,
		"strict", settings.Strict,
	)

	repo, err := gitver.OpenRepository(repoPath)
	if err != nil {
		return fmt.Errorf("opening repository at %q: %w", repoPath, err)
	}

	ctx, err := gitver.Resolve(gitver.Options{
		Repository:      repo,
		Workflow:        settings.Workflow,
		ForcedIncrement: settings.ForcedIncrement,
		NextVersion:     settings.NextVersion,
		Strict:          settings.Strict,
	})
	if err != nil {
		return err
	}
	slog.Debug("resolved version",
		"branch", ctx.BranchName,
		"branchType", ctx.BranchType.String(),
		"increment", ctx.Increment.String(),
		"commitsSinceTag", ctx.CommitsSinceTag,
	)

	output, err := gitver.Render(ctx, settings.Format)
	if err != nil {
		return err
	}
	fmt.Println(output)

	return nil
}
