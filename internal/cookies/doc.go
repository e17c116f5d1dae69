// Package cookies lifts the Study Buddy web session cookie out of a local
// browser profile so `remind login --from-browser` can reuse it as the API
// token. It reads Firefox-family (moz_cookies) and unencrypted
// Chromium-family SQLite stores; a locked store is snapshotted to a temp
// directory before it is opened.
//
// Cookie values are credentials. They are returned to the caller and nothing
// else: never logged, never written back to disk, never part of an error.
package cookies
