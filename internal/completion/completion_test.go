package completion

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/codalab/lazyworksheets/internal/theme"
)

func TestGetFlagsAreUnique(t *testing.T) {
	seen := map[string]bool{}
	shorts := map[string]bool{}
	for _, f := range GetFlags() {
		assert.False(t, seen[f.Name], "duplicate flag %s", f.Name)
		seen[f.Name] = true
		if f.Short != "" {
			assert.False(t, shorts[f.Short], "duplicate short flag %s", f.Short)
			shorts[f.Short] = true
		}
		if len(f.Values) > 0 {
			assert.True(t, f.HasValue, "%s lists values but takes none", f.Name)
		}
	}
	assert.True(t, seen["server"])
	assert.True(t, seen["theme"])
}

func TestConfigKeyCompletions(t *testing.T) {
	all := ConfigKeyCompletions("")
	assert.Contains(t, all, "lw.server_url=")
	for _, s := range all {
		assert.True(t, strings.HasPrefix(s, "lw."), s)
		assert.True(t, strings.HasSuffix(s, "="), s)
	}

	some := ConfigKeyCompletions("scroll")
	require.NotEmpty(t, some)
	for _, s := range some {
		assert.True(t, strings.HasPrefix(s, "lw.scroll"), s)
	}
	assert.Empty(t, ConfigKeyCompletions("nope"))
}

func TestScripts(t *testing.T) {
	for _, shell := range Shells() {
		t.Run(shell, func(t *testing.T) {
			script, err := Script(shell, "lazyworksheets")
			require.NoError(t, err)
			for _, c := range GetCommands() {
				assert.Contains(t, script, c.Name)
			}
			assert.Contains(t, script, "server")
			assert.Contains(t, script, theme.AvailableThemes()[0])
		})
	}
}

func TestBashScriptRegistersFunction(t *testing.T) {
	script, err := Script("bash", "lazyworksheets")
	require.NoError(t, err)
	assert.Contains(t, script, "complete -F _lazyworksheets lazyworksheets")
	assert.Contains(t, script, "--theme|-t)")
}

func TestZshScriptHeader(t *testing.T) {
	script, err := Script("zsh", "lazyworksheets")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(script, "#compdef lazyworksheets\n"))
	assert.Contains(t, script, "{-t,--theme}")
}

func TestScriptUnsupportedShell(t *testing.T) {
	_, err := Script("tcsh", "lazyworksheets")
	assert.ErrorContains(t, err, "unsupported shell: tcsh")
}
