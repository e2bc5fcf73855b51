//go:build linux

package notify

import (
	"fmt"
	"os/exec"
)

type linuxNotifier struct{}

func newPlatformNotifier() Notifier {
	return linuxNotifier{}
}

func (linuxNotifier) Send(title, body string) error {
	cmd := exec.Command("notify-send", "--app-name=daytrack", title, body)
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("notify: notify-send: %w", err)
	}
	return nil
}

func (linuxNotifier) IsSupported() bool {
	_, err := exec.LookPath("notify-send")
	return err == nil
}
