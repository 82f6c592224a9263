package models

// MediaKind represents the kind of media asset attached to a coub
type MediaKind string

const (
	MediaKindVideo MediaKind = "video"
	MediaKindAudio MediaKind = "audio"
)

// Quality represents a named quality tier of a media variant
type Quality string

const (
	QualityHigher Quality = "higher"
	QualityHigh   Quality = "high"
	QualityMed    Quality = "med"
)

// VideoQualities lists the allowed video qualities, most preferred first.
// Quality fallback only ever walks this list toward lower ranks.
var VideoQualities = []Quality{QualityHigher, QualityHigh, QualityMed}

// AudioQualities lists the allowed audio qualities, most preferred first
var AudioQualities = []Quality{QualityHigh, QualityMed}

// QualityAllowed reports whether q is a member of the given rank list
func QualityAllowed(q Quality, ranked []Quality) bool {
	for _, candidate := range ranked {
		if candidate == q {
			return true
		}
	}
	return false
}

// Status represents the current pipeline state of a coub being processed
type Status string

const (
	StatusPending     Status = "pending"
	StatusResolving   Status = "resolving"
	StatusFetching    Status = "fetching"
	StatusNormalizing Status = "normalizing"
	StatusLooping     Status = "looping"
	StatusMuxing      Status = "muxing"
	StatusDone        Status = "done"
	StatusFailed      Status = "failed"
)

// Outcome represents the final result of processing one coub
type Outcome string

const (
	OutcomeDownloaded  Outcome = "downloaded"   // full pipeline ran, output written
	OutcomeSkipped     Outcome = "skipped"      // output already existed, nothing fetched
	OutcomeAudioAbsent Outcome = "audio_absent" // video-only coub, stored without muxing
	OutcomeBlacklisted Outcome = "blacklisted"  // matched a blacklist term
	OutcomeFailed      Outcome = "failed"       // contained per-item failure
)

// BatchSummary aggregates per-outcome counts for one download run
type BatchSummary struct {
	Downloaded  int
	Skipped     int
	AudioAbsent int
	Blacklisted int
	Failed      int
}

// Add increments the counter matching the given outcome
func (s *BatchSummary) Add(outcome Outcome) {
	switch outcome {
	case OutcomeDownloaded:
		s.Downloaded++
	case OutcomeSkipped:
		s.Skipped++
	case OutcomeAudioAbsent:
		s.AudioAbsent++
	case OutcomeBlacklisted:
		s.Blacklisted++
	case OutcomeFailed:
		s.Failed++
	}
}

// Total returns the number of coubs accounted for in the summary
func (s *BatchSummary) Total() int {
	return s.Downloaded + s.Skipped + s.AudioAbsent + s.Blacklisted + s.Failed
}
