package keystroke

import (
	"time"

	"github.com/go-vgo/robotgo"
	"github.com/rxtech-lab/replay-miner/pkg/errors"
)

// Desktop is the slice of OS input and window control the driver uses.
type Desktop interface {
	FindProcess(name string) (int, error)
	Activate(pid int) error
	ActiveTitle() string
	ClickAt(x, y int)
	ReplaceText(text string) error
	KeyTap(key string) error
	PixelColor(x, y int) string
	MousePosition() (int, int)
	Sleep(d time.Duration)
}

// RobotDesktop drives the real desktop through robotgo.
type RobotDesktop struct{}

var _ Desktop = RobotDesktop{}

// FindProcess returns the first pid whose process name matches name.
func (RobotDesktop) FindProcess(name string) (int, error) {
	ids, err := robotgo.FindIds(name)
	if err != nil {
		return 0, errors.Wrapf(errors.ErrCodeAutomationFailed, err, "failed to list %s processes", name)
	}

	if len(ids) == 0 {
		return 0, errors.Newf(errors.ErrCodeWindowNotFound, "no running %s process", name)
	}

	return ids[0], nil
}

func (RobotDesktop) Activate(pid int) error {
	if err := robotgo.ActivePid(pid); err != nil {
		return errors.Wrapf(errors.ErrCodeWindowNotFound, err, "failed to activate process %d", pid)
	}

	return nil
}

func (RobotDesktop) ActiveTitle() string {
	return robotgo.GetTitle()
}

func (RobotDesktop) ClickAt(x, y int) {
	robotgo.MoveMouse(x, y)
	robotgo.MilliSleep(50)
	robotgo.MouseClick("left", false)
}

// ReplaceText selects the focused field's content and types text over it.
func (RobotDesktop) ReplaceText(text string) error {
	if err := robotgo.KeyTap("a", "ctrl"); err != nil {
		return errors.Wrap(errors.ErrCodeAutomationFailed, "failed to select field text", err)
	}

	robotgo.TypeStr(text)

	return nil
}

func (RobotDesktop) KeyTap(key string) error {
	if err := robotgo.KeyTap(key); err != nil {
		return errors.Wrapf(errors.ErrCodeAutomationFailed, err, "failed to press %s", key)
	}

	return nil
}

func (RobotDesktop) PixelColor(x, y int) string {
	return robotgo.GetPixelColor(x, y)
}

func (RobotDesktop) MousePosition() (int, int) {
	return robotgo.Location()
}

func (RobotDesktop) Sleep(d time.Duration) {
	robotgo.MilliSleep(int(d / time.Millisecond))
}
