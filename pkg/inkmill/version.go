// Package inkmill holds module-wide metadata.
package inkmill

// Version is the current release version of the quill CLI and the inkmill
// stores.
const Version = "0.2.0"
