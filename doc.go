// Package workflow provides specification-driven state machine machinery.
//
// The core code is in package 'core', and some command-line tools are in `cmd`.
//
// See https://github.com/statepath/workflow/blob/master/README.md for more.
package workflow
