package notify

import (
	"context"
	"os/exec"
	"runtime"
	"time"
)

// URLOpener shows a URL to the user.
type URLOpener func(url string) error

// OpenURL hands url to the platform's default browser.
func OpenURL(url string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	return browserCmd(ctx, runtime.GOOS, url).Run()
}

func browserCmd(ctx context.Context, goos, url string) *exec.Cmd {
	switch goos {
	case "darwin":
		return exec.CommandContext(ctx, "open", url)
	case "windows":
		return exec.CommandContext(ctx, "rundll32", "url.dll,FileProtocolHandler", url)
	default:
		return exec.CommandContext(ctx, "xdg-open", url)
	}
}
