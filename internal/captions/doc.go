// Package captions handles the caption documents a run reads and writes:
// splitting SRT text into lines and joining it back, naming the original and
// fixed artifacts, writing them atomically, and holding the per-media run
// lock.
package captions
