package procmock

// ExecFile emulates the file-executing asynchronous entry point. It behaves
// like Exec but resolves against the file plus its argument list rather than
// a single command string. Both args and cb may be nil: a nil callback still
// records the call and drives the fake process to completion.
func (m *Mocker) ExecFile(file string, args []string, cb ExecCallback) *FakeProcess {
	raw := rawJoin(file, args)
	cfg := m.dispatch(MethodExecFile, raw, args)
	p := startFakeProcess(cfg, m.reg)

	go func() {
		exit, _ := p.Wait()
		if cb == nil {
			return
		}
		if err := exitError(raw, cfg, exit); err != nil {
			cb(err, cfg.Stdout, cfg.Stderr)
			return
		}
		cb(nil, cfg.Stdout, cfg.Stderr)
	}()

	return p
}

// ExecFileSync emulates the file-executing synchronous entry point. args may
// be nil.
func (m *Mocker) ExecFileSync(file string, args []string) ([]byte, error) {
	raw := rawJoin(file, args)
	cfg := m.dispatch(MethodExecFileSync, raw, args)
	syncDelay(cfg)

	if err := exitError(raw, cfg, syncExit(cfg)); err != nil {
		return nil, err
	}
	return []byte(cfg.Stdout), nil
}
