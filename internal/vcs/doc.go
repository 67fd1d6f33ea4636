// Package vcs queries the source revision a build is produced from.
//
// Git runs the git CLI against a specific working tree via "git -C <dir>"
// and returns the abbreviated commit hash embedded in the artifact.
package vcs
