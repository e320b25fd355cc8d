package procmock

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExecFile_Success(t *testing.T) {
	m := newTestMocker(t)
	m.RegisterSuccess("scripts/build.sh --release", "built\n")

	ch := make(chan execResult, 1)
	m.ExecFile("scripts/build.sh", []string{"--release"}, func(err error, stdout, stderr string) {
		ch <- execResult{err: err, stdout: stdout, stderr: stderr}
	})

	select {
	case res := <-ch:
		require.NoError(t, res.err)
		assert.Equal(t, "built\n", res.stdout)
	case <-time.After(2 * time.Second):
		t.Fatal("callback not invoked")
	}

	calls := m.Calls(MethodExecFile)
	require.Len(t, calls, 1)
	assert.Equal(t, "scripts/build.sh --release", calls[0].Command)
	assert.Equal(t, []string{"--release"}, calls[0].Args)
}

func TestExecFile_NilArgsAndCallback(t *testing.T) {
	m := newTestMocker(t)
	m.RegisterSuccess("scripts/build.sh", "built\n")

	p := m.ExecFile("scripts/build.sh", nil, nil)
	exit, err := p.Wait()
	require.NoError(t, err)
	assert.Equal(t, 0, exit.Code)

	calls := m.Calls(MethodExecFile)
	require.Len(t, calls, 1)
	assert.Equal(t, "scripts/build.sh", calls[0].Command)
	assert.Nil(t, calls[0].Args)
}

func TestExecFile_Failure(t *testing.T) {
	m := newTestMocker(t)
	m.RegisterFailure("scripts/deploy.sh", "no credentials\n", 2)

	ch := make(chan execResult, 1)
	m.ExecFile("scripts/deploy.sh", nil, func(err error, stdout, stderr string) {
		ch <- execResult{err: err, stdout: stdout, stderr: stderr}
	})

	select {
	case res := <-ch:
		var ee *ExitError
		require.ErrorAs(t, res.err, &ee)
		assert.Equal(t, 2, ee.Code)
		assert.Equal(t, "no credentials\n", res.stderr)
	case <-time.After(2 * time.Second):
		t.Fatal("callback not invoked")
	}
}

func TestExecFileSync_Success(t *testing.T) {
	m := newTestMocker(t)
	m.RegisterSuccess("scripts/version.sh", "1.2.3\n")

	out, err := m.ExecFileSync("scripts/version.sh", nil)
	require.NoError(t, err)
	assert.Equal(t, "1.2.3\n", string(out))
}

func TestExecFileSync_Failure(t *testing.T) {
	m := newTestMocker(t)
	m.RegisterFailure("scripts/check.sh --strict", "lint errors\n", 3)

	out, err := m.ExecFileSync("scripts/check.sh", []string{"--strict"})
	assert.Nil(t, out)

	var ee *ExitError
	require.ErrorAs(t, err, &ee)
	assert.Equal(t, 3, ee.Code)
	assert.Equal(t, "scripts/check.sh --strict", ee.Cmd)
}
