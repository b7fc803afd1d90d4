// Package assemblyai wraps the AssemblyAI transcription REST API.
//
// Client covers the four calls a caption run needs: upload local media,
// submit a transcript job, read its status, and export the finished
// transcript as SRT. Poll drives a submitted job to a terminal state with a
// caller-supplied PollPolicy, and Transcriber strings the calls together for
// a single media reference.
package assemblyai
