// Package speech reads text aloud with the platform's synthesizer: say on
// macOS, espeak on Linux and SAPI through PowerShell on Windows.
//
// Speak blocks until the utterance has finished playing.
package speech
