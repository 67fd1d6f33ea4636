// Package release contains the data model of one versioned build.
//
// VersionNumber is the version-of-record (four numeric components, the VCS
// hash, an optional pre-release suffix and the build timestamp). Identity
// holds the display strings embedded next to it in the generated artifact.
package release
