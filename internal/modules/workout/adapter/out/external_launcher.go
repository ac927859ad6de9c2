package out

import (
	"context"
	"fmt"
	"os/exec"
	"runtime"

	workoutout "liftlog/internal/modules/workout/port/out"
)

// OSVideoLauncher hands a link to the desktop's default opener without
// waiting for it.
type OSVideoLauncher struct {
	goos string
}

func NewOSVideoLauncher() workoutout.VideoLauncher {
	return &OSVideoLauncher{goos: runtime.GOOS}
}

func (l *OSVideoLauncher) Open(ctx context.Context, target string) error {
	name, args, err := openerCommand(l.goos, target)
	if err != nil {
		return err
	}
	cmd := exec.CommandContext(ctx, name, args...)
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("open %s: %w", target, err)
	}
	go func() { _ = cmd.Wait() }()
	return nil
}

func openerCommand(goos, target string) (string, []string, error) {
	switch goos {
	case "darwin":
		return "open", []string{target}, nil
	case "linux", "freebsd", "openbsd", "netbsd":
		return "xdg-open", []string{target}, nil
	case "windows":
		return "rundll32", []string{"url.dll,FileProtocolHandler", target}, nil
	default:
		return "", nil, fmt.Errorf("opening links is not supported on %s", goos)
	}
}
