package gitver

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/blang/semver"
)

// OutputFormat selects the rendering of a resolved version
type OutputFormat string

const (
	FormatText               OutputFormat = "text"
	FormatJSON               OutputFormat = "json"
	FormatAssemblySemVer     OutputFormat = "assemblysemver"
	FormatAssemblySemFileVer OutputFormat = "assemblysemfilever"
)

// ParseOutputFormat maps a format name to an OutputFormat value
func ParseOutputFormat(name string) (OutputFormat, error) {
	switch OutputFormat(strings.ToLower(name)) {
	case FormatText, FormatJSON, FormatAssemblySemVer, FormatAssemblySemFileVer:
		return OutputFormat(strings.ToLower(name)), nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownOutputFormat, name)
}

// StructuredVersion is the JSON-shaped record rendered by FormatJSON.
// The field set and names are fixed; consumers key on them.
type StructuredVersion struct {
	Major                     uint64 `json:"Major"`
	Minor                     uint64 `json:"Minor"`
	Patch                     uint64 `json:"Patch"`
	PreReleaseTag             string `json:"PreReleaseTag"`
	PreReleaseTagWithDash     string `json:"PreReleaseTagWithDash"`
	BuildMetaData             string `json:"BuildMetaData"`
	BuildMetaDataPadded       string `json:"BuildMetaDataPadded"`
	FullBuildMetaData         string `json:"FullBuildMetaData"`
	MajorMinorPatch           string `json:"MajorMinorPatch"`
	SemVer                    string `json:"SemVer"`
	AssemblySemVer            string `json:"AssemblySemVer"`
	AssemblySemFileVer        string `json:"AssemblySemFileVer"`
	FullSemVer                string `json:"FullSemVer"`
	InformationalVersion      string `json:"InformationalVersion"`
	BranchName                string `json:"BranchName"`
	EscapedBranchName         string `json:"EscapedBranchName"`
	Sha                       string `json:"Sha"`
	ShortSha                  string `json:"ShortSha"`
	NuGetVersionV2            string `json:"NuGetVersionV2"`
	NuGetVersion              string `json:"NuGetVersion"`
	VersionSourceSha          string `json:"VersionSourceSha"`
	CommitsSinceVersionSource int    `json:"CommitsSinceVersionSource"`
	CommitDate                string `json:"CommitDate"`
}

// MajorMinorPatch renders the bare numeric triple
func (c *VersionContext) MajorMinorPatch() string {
	return fmt.Sprintf("%d.%d.%d", c.Version.Major, c.Version.Minor, c.Version.Patch)
}

// SemVer renders the version without build metadata
func (c *VersionContext) SemVer() string {
	if c.PreRelease == "" {
		return c.MajorMinorPatch()
	}
	return c.MajorMinorPatch() + "-" + c.PreRelease
}

// BuildMetadata renders the build segment, always <count>+<shortSha>
func (c *VersionContext) BuildMetadata() string {
	return fmt.Sprintf("%d+%s", c.CommitsSinceTag, c.ShortSha)
}

// FullSemVer renders the canonical version string,
// MAJOR.MINOR.PATCH[-PRERELEASE]+BUILD
func (c *VersionContext) FullSemVer() string {
	return c.SemVer() + "+" + c.BuildMetadata()
}

// AssemblySemVer renders the four-component assembly form with a fixed
// fourth component of 0, re-parsing the composed triple as a defensive
// check against a malformed composition.
func (c *VersionContext) AssemblySemVer() (string, error) {
	triple := c.MajorMinorPatch()
	if _, err := semver.Parse(triple); err != nil {
		return "", fmt.Errorf("re-parsing composed version %q: %w", triple, err)
	}
	return triple + ".0", nil
}

// Structured expands the context into the full structured record
func (c *VersionContext) Structured() *StructuredVersion {
	preReleaseWithDash := ""
	if c.PreRelease != "" {
		preReleaseWithDash = "-" + c.PreRelease
	}

	buildMetaData := strconv.Itoa(c.CommitsSinceTag)
	escapedBranch := Slug(c.BranchName)
	assembly := c.MajorMinorPatch() + ".0"

	commitDate := ""
	if !c.CommitDate.IsZero() {
		commitDate = c.CommitDate.Format("2006-01-02")
	}

	nuget := strings.ToLower(c.MajorMinorPatch() + nugetPreRelease(c.PreRelease))

	return &StructuredVersion{
		Major:                     c.Version.Major,
		Minor:                     c.Version.Minor,
		Patch:                     c.Version.Patch,
		PreReleaseTag:             c.PreRelease,
		PreReleaseTagWithDash:     preReleaseWithDash,
		BuildMetaData:             buildMetaData,
		BuildMetaDataPadded:       "+" + buildMetaData,
		FullBuildMetaData:         c.BuildMetadata(),
		MajorMinorPatch:           c.MajorMinorPatch(),
		SemVer:                    c.SemVer(),
		AssemblySemVer:            assembly,
		AssemblySemFileVer:        assembly,
		FullSemVer:                c.FullSemVer(),
		InformationalVersion:      c.FullSemVer(),
		BranchName:                c.BranchName,
		EscapedBranchName:         escapedBranch,
		Sha:                       c.Sha,
		ShortSha:                  c.ShortSha,
		NuGetVersionV2:            nuget,
		NuGetVersion:              nuget,
		VersionSourceSha:          c.VersionSourceSha,
		CommitsSinceVersionSource: c.CommitsSinceTag,
		CommitDate:                commitDate,
	}
}

// nugetPreRelease converts a pre-release label to the NuGet form: the
// trailing dotted number is zero-padded to four digits and the dot is
// dropped, e.g. alpha.3 becomes -alpha0003
func nugetPreRelease(pre string) string {
	if pre == "" {
		return ""
	}
	i := strings.LastIndex(pre, ".")
	if i < 0 {
		return "-" + pre
	}
	n, err := strconv.Atoi(pre[i+1:])
	if err != nil {
		return "-" + pre
	}
	return fmt.Sprintf("-%s%04d", pre[:i], n)
}

// Render produces exactly one representation of the resolved version
func Render(c *VersionContext, format OutputFormat) (string, error) {
	switch format {
	case FormatText:
		return c.FullSemVer(), nil
	case FormatAssemblySemVer, FormatAssemblySemFileVer:
		return c.AssemblySemVer()
	case FormatJSON:
		encoded, err := json.MarshalIndent(c.Structured(), "", "  ")
		if err != nil {
			return "", fmt.Errorf("encoding structured version: %w", err)
		}
		return string(encoded), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownOutputFormat, format)
	}
}
