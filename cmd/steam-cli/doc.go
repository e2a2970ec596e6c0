// Package main provides the entry point for steam-cli.
//
// steam-cli is the command-line client of the BDU STEAM tutoring center.
// It gives parents and students access to:
//
//   - Courses, course modules and classes
//   - Student registration and profile
//   - Lessons, photo galleries and teacher evaluations
//   - Attendance and the time table
//   - Facilities and center news
//
// Usage:
//
//	steam-cli [global flags] command [command flags]
//	steam-cli --token $TOKEN course list
//	steam-cli -o json gallery list --class 5
//	steam-cli shell
//
// The CLI supports both single-command mode and an interactive shell that
// keeps one backend session across commands.
package main
