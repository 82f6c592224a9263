package models

import (
	"os"
)

// DownloadJob tracks the processing of one coub: its pipeline state, the
// final output path and every temporary file created along the way. The job
// owns its temp files until Cleanup runs; Cleanup must be called on every
// exit path and is safe to call more than once.
type DownloadJob struct {
	Permalink  string
	OutputPath string
	Status     Status

	tempPaths []string
}

// NewDownloadJob creates a job for one coub in the pending state
func NewDownloadJob(permalink, outputPath string) *DownloadJob {
	return &DownloadJob{
		Permalink:  permalink,
		OutputPath: outputPath,
		Status:     StatusPending,
	}
}

// RegisterTemp records a temporary path owned by this job and returns it
func (j *DownloadJob) RegisterTemp(path string) string {
	j.tempPaths = append(j.tempPaths, path)
	return path
}

// TempPaths returns every temporary path registered so far
func (j *DownloadJob) TempPaths() []string {
	paths := make([]string, len(j.tempPaths))
	copy(paths, j.tempPaths)
	return paths
}

// Cleanup removes every registered temporary file that still exists. Paths
// already gone (never created, or renamed into place) are not an error.
func (j *DownloadJob) Cleanup() error {
	var lastErr error
	for _, path := range j.tempPaths {
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			lastErr = err
		}
	}
	return lastErr
}
