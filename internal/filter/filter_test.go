package filter

import (
	"testing"

	"github.com/atomicstack/deploy-checklist/internal/content"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixtureTree() content.Tree {
	return content.Tree{
		{
			ID:    "server-setup",
			Title: "Server Setup",
			Steps: []content.Step{
				{
					ID:          "update-packages",
					Title:       "Update packages",
					Description: "Start from a patched system.",
					Blocks: []content.Block{
						content.Command{Platform: "Ubuntu", Commands: []string{"sudo apt update", "sudo apt upgrade -y"}},
					},
				},
				{
					ID:    "deploy-user",
					Title: "Create a deploy user",
					Blocks: []content.Block{
						content.Pitfall{Title: "Locked out", Content: "Root login disabled too early.", Fix: "Test sudo first."},
					},
				},
			},
		},
		{
			ID:          "nginx",
			Title:       "Nginx Reverse Proxy",
			Description: "Forward traffic to the app.",
			Steps: []content.Step{
				{
					ID:    "install-nginx",
					Title: "Install the web server",
					Blocks: []content.Block{
						content.Command{Platform: "Ubuntu", Language: "bash", Description: "uses apt", Commands: []string{"sudo apt install -y nginx"}},
					},
				},
				{
					ID:    "proxy-config",
					Title: "Proxy configuration",
					Blocks: []content.Block{
						content.Text{Content: "Proxy to port 3000."},
					},
				},
			},
		},
		{
			ID:    "security-polish",
			Title: "Security & Polish",
			Steps: []content.Step{
				{ID: "firewall", Title: "Enable the firewall", Blocks: []content.Block{content.Command{Commands: []string{"sudo ufw enable"}}}},
				{ID: "fail2ban", Title: "Ban brute-force attempts"},
			},
		},
	}
}

func sectionIDs(tree content.Tree) []string {
	return tree.SectionIDs()
}

func stepIDs(section content.Section) []string {
	ids := make([]string, 0, len(section.Steps))
	for _, s := range section.Steps {
		ids = append(ids, s.ID)
	}
	return ids
}

func TestEmptyQueryReturnsIdenticalTree(t *testing.T) {
	tree := fixtureTree()
	got := Filter(tree, "")
	assert.Equal(t, tree, got)

	got[0].Steps[0].Title = "mutated"
	assert.Equal(t, "Update packages", tree[0].Steps[0].Title, "result must not alias input steps")
}

func TestTitleOnlySectionMatchKeepsEmptySteps(t *testing.T) {
	got := Filter(fixtureTree(), "Security")
	require.Len(t, got, 1)
	assert.Equal(t, "security-polish", got[0].ID)
	assert.NotNil(t, got[0].Steps)
	assert.Empty(t, got[0].Steps)
}

func TestStepsAreFilteredIndependentlyOfSectionMatch(t *testing.T) {
	got := Filter(fixtureTree(), "proxy")
	require.Equal(t, []string{"nginx"}, sectionIDs(got))
	assert.Equal(t, []string{"proxy-config"}, stepIDs(got[0]))
}

func TestCaseInsensitiveMatching(t *testing.T) {
	tree := fixtureTree()
	upper := Filter(tree, "NGINX")
	lower := Filter(tree, "nginx")
	assert.Equal(t, lower, upper)
	require.Equal(t, []string{"nginx"}, sectionIDs(lower))
	assert.Equal(t, []string{"install-nginx"}, stepIDs(lower[0]))
}

func TestBlockVariantsMatch(t *testing.T) {
	cases := []struct {
		name  string
		query string
		want  map[string][]string
	}{
		{name: "command line", query: "apt upgrade", want: map[string][]string{"server-setup": {"update-packages"}}},
		{name: "pitfall content", query: "too early", want: map[string][]string{"server-setup": {"deploy-user"}}},
		{name: "pitfall fix", query: "test sudo", want: map[string][]string{"server-setup": {"deploy-user"}}},
		{name: "text content", query: "port 3000", want: map[string][]string{"nginx": {"proxy-config"}}},
		{name: "step description", query: "patched", want: map[string][]string{"server-setup": {"update-packages"}}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Filter(fixtureTree(), tc.query)
			require.Len(t, got, len(tc.want))
			for _, section := range got {
				assert.Equal(t, tc.want[section.ID], stepIDs(section))
			}
		})
	}
}

func TestCommandMetadataDoesNotMatch(t *testing.T) {
	assert.False(t, BlockMatches(content.Command{Platform: "Ubuntu", Language: "bash", Description: "uses apt", Commands: []string{"ls"}}, "ubuntu"))
	assert.False(t, BlockMatches(content.Command{Description: "uses apt", Commands: []string{"ls"}}, "uses"))
	assert.Empty(t, Filter(fixtureTree(), "Forward traffic"), "section description is not searched")
}

func TestSectionInclusionProperty(t *testing.T) {
	tree := fixtureTree()
	for _, q := range []string{"", "a", "sudo", "Security", "nginx", "zzz", "ENABLE"} {
		got := Filter(tree, q)
		for _, section := range got {
			original, ok := tree.Section(section.ID)
			require.True(t, ok)
			anyStep := false
			for _, step := range original.Steps {
				anyStep = anyStep || StepMatches(step, q)
			}
			assert.True(t, Matches(original.Title, q) || anyStep, "query %q section %s", q, section.ID)
			for _, step := range section.Steps {
				assert.True(t, StepMatches(step, q), "query %q step %s", q, step.ID)
			}
		}
		for _, section := range tree {
			assert.Equal(t, SectionIncluded(section, q), got.IndexOf(section.ID) >= 0, "query %q section %s", q, section.ID)
		}
	}
}

func TestOrderIsPreserved(t *testing.T) {
	got := Filter(fixtureTree(), "e")
	assert.Equal(t, []string{"server-setup", "nginx", "security-polish"}, sectionIDs(got))
}

func TestFilterIsIdempotent(t *testing.T) {
	tree := fixtureTree()
	first := Filter(tree, "sudo")
	second := Filter(tree, "sudo")
	assert.Equal(t, first, second)
	assert.Equal(t, first, Scan{}.Filter(tree, "sudo"))
}

func TestNoMatchesYieldsEmptyResult(t *testing.T) {
	got := Filter(fixtureTree(), "kubernetes")
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestMatchesFoldsUnicode(t *testing.T) {
	assert.True(t, Matches("Straße einrichten", "STRASSE"))
	assert.True(t, Matches("anything", ""))
	assert.False(t, Matches("", "x"))
}

func TestMatchingStepsKeepsNilForStepless(t *testing.T) {
	section := content.Section{ID: "empty", Title: "Empty"}
	assert.Nil(t, MatchingSteps(section, "x"))
}
