// Package terminal provides direct ANSI terminal control for the frame engine.
//
// Features:
//   - Independent capability gates: alternate screen, raw mode, mouse capture, cursor visibility
//   - Guard with ordered enable and reverse-order release
//   - Raw stdin input decoding with escape sequence, mouse and UTF-8 handling
//   - SIGWINCH resize detection
//   - Cursor position query for inline rendering
//   - Emergency terminal restoration on crash
//
// This package bypasses terminfo/termcap entirely, emitting direct ANSI sequences.
// Target environments: Linux, macOS, BSDs with xterm-compatible terminals.
package terminal
