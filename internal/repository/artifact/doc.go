// Package artifact persists the rendered artifact.
//
// FileRepository writes the whole artifact in one step through a temporary
// file and a rename, so readers never observe a half-written file and a
// failed run leaves the previous artifact untouched. StreamRepository sends
// the artifact to an io.Writer such as stdout.
package artifact
