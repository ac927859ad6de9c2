package markdown_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"liftlog/internal/platform/markdown"
)

type meta struct {
	ID    string `yaml:"id"`
	Title string `yaml:"title"`
}

func TestFrontmatterRoundTrip(t *testing.T) {
	t.Parallel()
	rendered, err := markdown.RenderFrontmatter(meta{ID: "a1", Title: "Day 1"}, "# body\n")
	require.NoError(t, err)
	assert.Equal(t, "---\nid: a1\ntitle: Day 1\n---\n\n# body\n", rendered)

	var decoded meta
	body, found, err := markdown.DecodeFrontmatter(rendered, &decoded)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, meta{ID: "a1", Title: "Day 1"}, decoded)
	assert.Equal(t, "\n# body\n", body)

	loose := map[string]any{}
	_, _, err = markdown.DecodeFrontmatter(rendered, &loose)
	require.NoError(t, err)
	assert.Equal(t, "Day 1", loose["title"])
}

func TestDecodeFrontmatterWithoutHeader(t *testing.T) {
	t.Parallel()
	decoded := meta{ID: "untouched"}
	body, found, err := markdown.DecodeFrontmatter("plain", &decoded)
	require.NoError(t, err)
	assert.False(t, found)
	assert.Equal(t, "untouched", decoded.ID)
	assert.Equal(t, "plain", body)

	_, _, err = markdown.DecodeFrontmatter("---\nid: x\n", &decoded)
	require.Error(t, err)
}

func TestReplaceManagedBlock(t *testing.T) {
	t.Parallel()
	const start, end = "<!-- s -->", "<!-- e -->"

	assert.Equal(t, start+"\nA\n"+end+"\n", markdown.ReplaceManagedBlock("", start, end, "A"))

	body := "intro\n\n" + start + "\nold\n" + end + "\noutro\n"
	assert.Equal(t, "intro\n\n"+start+"\nnew\n"+end+"\noutro\n", markdown.ReplaceManagedBlock(body, start, end, "new"))

	assert.Equal(t, "intro\n\n"+start+"\nA\n"+end+"\n", markdown.ReplaceManagedBlock("intro", start, end, "A"))
}
