package utils

import (
	"path/filepath"
)

// OutputFilename derives the output file stem for a coub. The slugified
// title is suffixed with the permalink so two coubs sharing a title never
// collide; a title that slugifies to nothing falls back to the bare
// permalink.
func OutputFilename(title, permalink string) string {
	slug := Slugify(title)
	if slug == "" {
		return permalink
	}
	return slug + "-" + permalink
}

// OutputPath derives the final on-disk location for a coub:
// <baseDir>/<YYYY>/<MM>/<stem>.mp4, with year and month taken positionally
// from the liked-at timestamp string. Pure: the same inputs always yield the
// same path.
func OutputPath(baseDir, likedAt, title, permalink string) string {
	year, month := "0000", "00"
	if len(likedAt) >= 7 {
		year = likedAt[:4]
		month = likedAt[5:7]
	}
	return filepath.Join(baseDir, year, month, OutputFilename(title, permalink)+".mp4")
}
