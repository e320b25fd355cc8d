package procmock

import (
	"fmt"
	"strings"
)

// Method identifies one of the six emulated process-spawning entry points.
type Method string

const (
	// MethodSpawn is the handle-returning asynchronous entry point.
	MethodSpawn Method = "spawn"
	// MethodExec is the callback-based asynchronous entry point with
	// buffered output.
	MethodExec Method = "exec"
	// MethodExecSync is the synchronous, return-or-error entry point.
	MethodExecSync Method = "execSync"
	// MethodFork is the module-path variant of MethodSpawn.
	MethodFork Method = "fork"
	// MethodExecFile is the file-executing variant of MethodExec.
	MethodExecFile Method = "execFile"
	// MethodExecFileSync is the file-executing variant of MethodExecSync.
	MethodExecFileSync Method = "execFileSync"
)

// AllMethods returns the six methods in their canonical order. The order is
// also the cross-method fallback lookup order.
func AllMethods() []Method {
	return []Method{
		MethodSpawn,
		MethodExec,
		MethodExecSync,
		MethodFork,
		MethodExecFile,
		MethodExecFileSync,
	}
}

// ParseMethod converts a string (as found in fixture files) to a Method.
// Matching is case-insensitive and tolerates snake/kebab separators.
func ParseMethod(s string) (Method, error) {
	key := strings.ToLower(strings.NewReplacer("_", "", "-", "").Replace(s))
	switch key {
	case "spawn":
		return MethodSpawn, nil
	case "exec":
		return MethodExec, nil
	case "execsync":
		return MethodExecSync, nil
	case "fork":
		return MethodFork, nil
	case "execfile":
		return MethodExecFile, nil
	case "execfilesync":
		return MethodExecFileSync, nil
	}
	return "", fmt.Errorf("unknown method %q", s)
}
