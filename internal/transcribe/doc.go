// Package transcribe orchestrates one transcription run: validate
// options, plan the input (URL, local audio, or local video plus
// extraction), submit the job, wait for completion, and render the
// requested output format.
package transcribe
