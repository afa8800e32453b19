package gitver

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestClassifyBranch(t *testing.T) {
	tests := []struct {
		workflow Workflow
		branch   string
		expected BranchType
	}{
		{WorkflowGitFlow, "main", BranchMain},
		{WorkflowGitFlow, "master", BranchMain},
		{WorkflowGitFlow, "develop", BranchDevelop},
		{WorkflowGitFlow, "feature/login-fix", BranchFeature},
		{WorkflowGitFlow, "release/2.0.0", BranchRelease},
		{WorkflowGitFlow, "hotfix/urgent", BranchHotfix},
		{WorkflowGitFlow, "support/1.x", BranchSupport},
		{WorkflowGitFlow, "experiment", BranchUnknown},
		{WorkflowGitFlow, "bugfix/typo", BranchUnknown},
		{WorkflowGitFlow, "Feature/login-fix", BranchUnknown}, // case-sensitive
		{WorkflowGitFlow, "Main", BranchUnknown},
		{WorkflowGitFlow, "featurette/x", BranchUnknown}, // prefix must end at "/"

		{WorkflowGitHubFlow, "main", BranchMain},
		{WorkflowGitHubFlow, "master", BranchMain},
		{WorkflowGitHubFlow, "develop", BranchFeature},
		{WorkflowGitHubFlow, "anything/else", BranchFeature},

		{WorkflowTrunk, "main", BranchMain},
		{WorkflowTrunk, "feature/x", BranchMain},
		{WorkflowTrunk, "whatever", BranchMain},
	}

	for _, test := range tests {
		t.Run(string(test.workflow)+"/"+test.branch, func(t *testing.T) {
			require.Equal(t, test.expected, ClassifyBranch(test.workflow, test.branch))
		})
	}
}

func TestSlug(t *testing.T) {
	require.Equal(t, "feature-login-fix", Slug("feature/login-fix"))
	require.Equal(t, "release-2-0-0", Slug("release/2.0.0"))
	require.Equal(t, "no-change", Slug("no-change"))
	require.Equal(t, "a-b-c", Slug("a b_c"))
	require.Equal(t, "", Slug(""))
}

func TestBranchSlug(t *testing.T) {
	t.Run("Feature branches use the last segment", func(t *testing.T) {
		require.Equal(t, "login-fix", branchSlug(BranchFeature, "feature/login-fix"))
		require.Equal(t, "deep", branchSlug(BranchFeature, "feature/nested/deep"))
	})

	t.Run("Other branches use the full name", func(t *testing.T) {
		require.Equal(t, "support-1-x", branchSlug(BranchSupport, "support/1.x"))
		require.Equal(t, "wild-idea", branchSlug(BranchUnknown, "wild/idea"))
	})
}

func TestParseWorkflow(t *testing.T) {
	for _, name := range []string{"gitflow", "githubflow", "trunk"} {
		workflow, err := ParseWorkflow(name)
		require.NoError(t, err)
		require.Equal(t, Workflow(name), workflow)
	}

	_, err := ParseWorkflow("flow")
	require.Error(t, err)
	_, err = ParseWorkflow("")
	require.Error(t, err)
}
