package procmock

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultMocker_SharedRegistry(t *testing.T) {
	assert.Same(t, Default(), DefaultMocker().Registry())
}

func TestPackageLevelFacade(t *testing.T) {
	t.Cleanup(Clear)

	RegisterSuccess("shared-cmd", "shared\n")

	out, err := ExecSync("shared-cmd")
	require.NoError(t, err)
	assert.Equal(t, "shared\n", string(out))

	p := Spawn("shared-cmd")
	p.Wait()
	assert.Equal(t, "shared\n", p.Stdout.String())
	require.Len(t, Spawned(), 1)

	require.Len(t, Calls(MethodExecSync), 1)
	require.Len(t, AllCalls(), 2)

	ClearCalls()
	assert.Empty(t, AllCalls())

	// Patterns survive ClearCalls and are visible to a second facade over
	// the same default registry.
	out, err = New().ExecSync("shared-cmd")
	require.NoError(t, err)
	assert.Equal(t, "shared\n", string(out))
}
