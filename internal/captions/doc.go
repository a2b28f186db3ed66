// Package captions synthesizes plain-text, SRT, and VTT documents from
// diarized transcript utterances.
//
// The pipeline is: merge raw service utterances into validated
// DiarizedUtterance values, wrap each utterance's text into
// width-bounded segments, allocate a proportional time window to each
// segment, and render the result with speaker prefixes and format
// timestamps. All functions are pure; callers own every value passed
// in and out.
package captions
