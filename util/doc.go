// Package util holds small parsing and display helpers shared by the
// gateway's configuration and logging code.
package util
