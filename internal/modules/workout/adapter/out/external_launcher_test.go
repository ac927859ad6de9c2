package out

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenerCommand(t *testing.T) {
	t.Parallel()
	const link = "https://www.youtube.com/watch?v=Dy28eq2PjcM"

	name, args, err := openerCommand("linux", link)
	require.NoError(t, err)
	assert.Equal(t, "xdg-open", name)
	assert.Equal(t, []string{link}, args)

	name, _, err = openerCommand("darwin", link)
	require.NoError(t, err)
	assert.Equal(t, "open", name)

	_, args, err = openerCommand("windows", link)
	require.NoError(t, err)
	assert.Equal(t, link, args[len(args)-1])

	_, _, err = openerCommand("plan9", link)
	assert.Error(t, err)
}
