// Package constants defines shared tunables for disklink.
package constants

import (
	"time"
)

// Transfer settings
const (
	// TransferChunkSize - buffer size for streaming uploads and downloads (32 KB)
	//
	// The Disk API issues one short-lived transfer URL per file and the whole
	// body moves over a single connection, so the chunk size only controls
	// progress granularity and memory per transfer, not request count.
	TransferChunkSize = 32 * 1024

	// DownloadsDirName - local mirror root for downloaded remote content.
	// Remote paths are recreated underneath it.
	DownloadsDirName = "downloads"

	// PhotosFolderName - remote folder that receives photo imports.
	// Album folders are created inside it (photos/<album>).
	PhotosFolderName = "photos"
)

// Catalogue settings
const (
	// RootPath - default walk root for the remote catalogue.
	RootPath = "/"

	// TopEntries - number of entries shown by the top-size report.
	TopEntries = 10
)

// Delete confirmation polling
//
// After a delete is accepted the service removes the object asynchronously.
// The session polls the metadata endpoint until it returns 404 so callers
// observe a consistent catalogue. The poll is bounded: exponential backoff
// with full jitter, capped attempts, explicit timeout error on exhaustion.
const (
	DeletePollMaxAttempts  = 10
	DeletePollInitialDelay = 200 * time.Millisecond
	DeletePollMaxDelay     = 15 * time.Second
)

// HTTP settings
const (
	HTTPIdleConnTimeout       = 90 * time.Second
	HTTPTLSHandshakeTimeout   = 30 * time.Second
	HTTPExpectContinueTimeout = 5 * time.Second
)
