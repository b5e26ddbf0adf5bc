package capture

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/kbukum/babelink/errors"
	"github.com/kbukum/babelink/logger"
	"github.com/kbukum/babelink/process"
)

// Backend names.
const (
	BackendScreencapture = "screencapture"
	BackendGnome         = "gnome-screenshot"
	BackendPowerShell    = "powershell"

	scrotBinary = "scrot"
)

// Screencapture captures with the macOS screencapture tool.
type Screencapture struct {
	exec    process.Executor
	binary  string
	timeout time.Duration
}

// NewScreencapture creates the macOS capturer.
func NewScreencapture(exec process.Executor, cfg Config) *Screencapture {
	cfg.ApplyDefaults()
	binary := cfg.Binary
	if binary == "" {
		binary = BackendScreencapture
	}
	return &Screencapture{exec: exec, binary: binary, timeout: cfg.Timeout}
}

func (c *Screencapture) Name() string                       { return BackendScreencapture }
func (c *Screencapture) IsAvailable(_ context.Context) bool { return process.LookPath(c.binary) }

// CaptureTo runs screencapture -R "x,y,w,h" -t png path.
func (c *Screencapture) CaptureTo(ctx context.Context, region Region, path string) error {
	_, err := c.exec.Run(ctx, process.Command{
		Tool:    BackendScreencapture,
		Binary:  c.binary,
		Args:    screencaptureArgs(region, path),
		Timeout: c.timeout,
	})
	return err
}

func screencaptureArgs(r Region, path string) []string {
	rect := strings.Join([]string{formatNum(r.X), formatNum(r.Y), formatNum(r.Width), formatNum(r.Height)}, ",")
	return []string{"-R", rect, "-t", "png", path}
}

// GnomeScreenshot captures with gnome-screenshot and falls back to scrot
// when gnome-screenshot cannot be started. A gnome-screenshot run that
// fails is reported as is.
type GnomeScreenshot struct {
	exec     process.Executor
	binary   string
	fallback string
	timeout  time.Duration
	log      *logger.Logger
}

// NewGnomeScreenshot creates the Linux capturer.
func NewGnomeScreenshot(exec process.Executor, cfg Config) *GnomeScreenshot {
	cfg.ApplyDefaults()
	c := &GnomeScreenshot{
		exec:     exec,
		binary:   cfg.Binary,
		fallback: cfg.FallbackBinary,
		timeout:  cfg.Timeout,
		log:      logger.WithComponent("capture"),
	}
	if c.binary == "" {
		c.binary = BackendGnome
	}
	if c.fallback == "" {
		c.fallback = scrotBinary
	}
	return c
}

func (c *GnomeScreenshot) Name() string { return BackendGnome }

// IsAvailable reports whether either gnome-screenshot or scrot is installed.
func (c *GnomeScreenshot) IsAvailable(_ context.Context) bool {
	return process.LookPath(c.binary) || process.LookPath(c.fallback)
}

// CaptureTo runs gnome-screenshot --area "WxH+X+Y" --file=path, or
// scrot -a "x,y,w,h" path if gnome-screenshot is missing.
func (c *GnomeScreenshot) CaptureTo(ctx context.Context, region Region, path string) error {
	_, err := c.exec.Run(ctx, process.Command{
		Tool:    BackendGnome,
		Binary:  c.binary,
		Args:    gnomeArgs(region, path),
		Timeout: c.timeout,
	})
	if errors.CodeOf(err) != errors.ErrCodeProcessSpawnFailed {
		return err
	}

	c.log.Debug("gnome-screenshot unavailable, trying scrot", logger.Fields(logger.FieldError, err.Error()))
	_, err = c.exec.Run(ctx, process.Command{
		Tool:    scrotBinary,
		Binary:  c.fallback,
		Args:    scrotArgs(region, path),
		Timeout: c.timeout,
	})
	return err
}

func gnomeArgs(r Region, path string) []string {
	area := fmt.Sprintf("%sx%s+%s+%s", formatNum(r.Width), formatNum(r.Height), formatNum(r.X), formatNum(r.Y))
	return []string{"--area", area, "--file=" + path}
}

func scrotArgs(r Region, path string) []string {
	rect := strings.Join([]string{formatNum(r.X), formatNum(r.Y), formatNum(r.Width), formatNum(r.Height)}, ",")
	return []string{"-a", rect, path}
}

// PowerShell captures with System.Drawing through powershell -Command.
type PowerShell struct {
	exec    process.Executor
	binary  string
	timeout time.Duration
}

// NewPowerShell creates the Windows capturer.
func NewPowerShell(exec process.Executor, cfg Config) *PowerShell {
	cfg.ApplyDefaults()
	binary := cfg.Binary
	if binary == "" {
		binary = BackendPowerShell
	}
	return &PowerShell{exec: exec, binary: binary, timeout: cfg.Timeout}
}

func (c *PowerShell) Name() string                       { return BackendPowerShell }
func (c *PowerShell) IsAvailable(_ context.Context) bool { return process.LookPath(c.binary) }

// CaptureTo copies the screen rectangle into a bitmap saved as PNG at path.
func (c *PowerShell) CaptureTo(ctx context.Context, region Region, path string) error {
	_, err := c.exec.Run(ctx, process.Command{
		Tool:    "PowerShell",
		Binary:  c.binary,
		Args:    []string{"-Command", powerShellScript(region, path)},
		Timeout: c.timeout,
	})
	return err
}

const captureScript = `
Add-Type -AssemblyName System.Windows.Forms
Add-Type -AssemblyName System.Drawing

$bounds = [System.Drawing.Rectangle]::new(%d, %d, %d, %d)
$bmp = [System.Drawing.Bitmap]::new($bounds.width, $bounds.height)
$graphics = [System.Drawing.Graphics]::FromImage($bmp)
$graphics.CopyFromScreen($bounds.X, $bounds.Y, 0, 0, $bounds.size)

$bmp.Save('%s', [System.Drawing.Imaging.ImageFormat]::Png)
$graphics.Dispose()
$bmp.Dispose()
`

// powerShellScript builds the capture script. Rectangle values are rounded
// to integers and the path is quoted as a PowerShell single-quoted string.
func powerShellScript(r Region, path string) string {
	return fmt.Sprintf(captureScript,
		int(math.Round(r.X)), int(math.Round(r.Y)),
		int(math.Round(r.Width)), int(math.Round(r.Height)),
		strings.ReplaceAll(path, "'", "''"))
}
