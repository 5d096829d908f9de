package services

import "errors"

// Pipeline fault taxonomy. Sentinels are wrapped with context at the call
// site and inspected with errors.Is at the worker's decision points.
var (
	// ErrExtraction: the document could not be fetched or parsed. Recovered
	// locally as a system-error rejection; no attempt charged.
	ErrExtraction = errors.New("resume extraction failed")

	// ErrEmptyContent: extracted text below the minimum length. Recovered
	// locally as a rejection that charges an attempt.
	ErrEmptyContent = errors.New("insufficient text content")

	// ErrClassifier: the inference endpoint was unreachable or returned
	// malformed output. Propagated so the queue can redeliver the job.
	ErrClassifier = errors.New("classifier failed")

	// ErrRecordStore: a verdict write-back failed. Propagated for redelivery.
	ErrRecordStore = errors.New("record store write failed")
)
