// Package transcache keeps completed transcripts in a local SQLite database
// so re-running the fixup for the same media skips upload and transcription.
//
// Entries are keyed by a digest of the media fingerprint (absolute path, size,
// and modification time for local files; the URL for remote media) and the
// settings that shape the transcript: boost words, boost_param, and caption
// width. Only service output is cached. Operator decisions are never stored.
package transcache
