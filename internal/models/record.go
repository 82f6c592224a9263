package models

import "time"

// DownloadRecord is the persisted history entry for one processed coub
type DownloadRecord struct {
	ID        uint64 `boltholdKey:"ID"`
	Permalink string `boltholdIndex:"Permalink"`

	Title      string
	Outcome    Outcome `boltholdIndex:"Outcome"`
	OutputPath string

	// Set only when Outcome is failed
	FailureReason string

	CreatedAt time.Time
	UpdatedAt time.Time
}
