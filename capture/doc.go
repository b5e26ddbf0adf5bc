// Package capture grabs a rectangular region of the screen as a PNG.
//
// Each platform has one Capturer backed by an external tool:
//
//   - macOS: screencapture
//   - Linux: gnome-screenshot, falling back to scrot when gnome-screenshot
//     cannot be started
//   - Windows: PowerShell with System.Drawing
//
// Service.Capture runs the capturer against a scratch file and returns the
// image as standard base64.
package capture
