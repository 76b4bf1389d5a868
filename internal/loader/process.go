// Package loader drives the four mod-loader install paths (vanilla,
// fabric, forge, optifine) as explicit discover -> fetch installer ->
// spawn -> await -> cleanup pipelines. Grounded in the original's
// fabric.rs/forge.rs/optifine.rs/client.rs, generalized from their
// per-loader copy-pasted tokio::process::Command calls into one shared
// subprocess runner.
package loader

import (
	"bufio"
	"context"
	"io"
	"os"
	"os/exec"

	"github.com/quasar/mc-installer/internal/events"
	"github.com/quasar/mc-installer/internal/launcherr"
	"github.com/quasar/mc-installer/internal/model"
	"github.com/quasar/mc-installer/internal/runtimejvm"
)

// resolveJava mirrors every loader's identical java-path fallback: an
// explicit override wins, otherwise the bundled java-runtime-beta tree is
// probed, otherwise "java" is left to resolve off PATH.
func resolveJava(javaPath, mcDir string) (string, error) {
	if javaPath != "" {
		return javaPath, nil
	}
	exe, err := runtimejvm.ExecutablePath(model.RuntimeJavaBeta, mcDir)
	if err != nil {
		return "", err
	}
	if exe != "" {
		return exe, nil
	}
	return "java", nil
}

// runInstaller spawns java with args, streaming stdout/stderr lines as
// Status events while it runs, and waits for completion. A non-zero exit
// status is reported as a Status event, not returned as an error.
// Mirrors each loader's Command::new(exec).args(args).output().
func runInstaller(ctx context.Context, javaPath string, args []string, sink events.Sink) error {
	cmd := exec.CommandContext(ctx, javaPath, args...)

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return launcherr.OS("attaching installer stdout", err)
	}
	stderr, err := cmd.StderrPipe()
	if err != nil {
		return launcherr.OS("attaching installer stderr", err)
	}

	if err := cmd.Start(); err != nil {
		return launcherr.OS("running installer command", err)
	}

	done := make(chan struct{}, 2)
	go streamLines(stdout, sink, done)
	go streamLines(stderr, sink, done)
	<-done
	<-done

	if err := cmd.Wait(); err != nil {
		if ctx.Err() != nil {
			return launcherr.OS("installer interrupted", ctx.Err())
		}
		if _, ok := err.(*exec.ExitError); ok {
			sink.Emit(events.Status("Installer exited with " + err.Error()))
			return nil
		}
		return launcherr.OS("installer exited with error", err)
	}
	return nil
}

func streamLines(r io.Reader, sink events.Sink, done chan<- struct{}) {
	defer func() { done <- struct{}{} }()
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		sink.Emit(events.Status(scanner.Text()))
	}
}

// removeIfNotCached deletes path unless cache is true, mirroring every
// loader's "if !cache_headless/cache_installer { remove_file(..) }" cleanup.
func removeIfNotCached(path string, cache bool) error {
	if cache {
		return nil
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return launcherr.OS("removing "+path, err)
	}
	return nil
}
