package models

import (
	"fmt"
	"strings"
)

// MediaVariant is one downloadable encoding of a coub asset
type MediaVariant struct {
	URL string `json:"url"`
}

// HTML5 maps each media kind to its available quality variants
type HTML5 struct {
	Video map[Quality]MediaVariant `json:"video"`
	Audio map[Quality]MediaVariant `json:"audio"`
}

// FileVersions holds the per-kind media variants of a coub
type FileVersions struct {
	HTML5 HTML5 `json:"html5"`
}

// Channel identifies the author of a coub
type Channel struct {
	Title     string `json:"title"`
	Permalink string `json:"permalink"`
}

// Tag is a single descriptive tag attached to a coub
type Tag struct {
	Title string `json:"title"`
}

// ExternalVideo points at the source video a coub was cut from, if known
type ExternalVideo struct {
	URL string `json:"url"`
}

// MediaBlocks carries optional linked media attached to a coub
type MediaBlocks struct {
	ExternalVideo *ExternalVideo `json:"external_video,omitempty"`
}

// Coub is one liked item from the timeline likes API. It is decoded once
// by the pagination client and treated as read-only afterwards.
type Coub struct {
	Permalink    string       `json:"permalink"`
	Title        string       `json:"title"`
	LikedAt      string       `json:"updated_at"`
	Channel      Channel      `json:"channel"`
	Tags         []Tag        `json:"tags"`
	FileVersions FileVersions `json:"file_versions"`
	MediaBlocks  MediaBlocks  `json:"media_blocks"`
}

// TagTitles returns the tag titles in their original order
func (c *Coub) TagTitles() []string {
	titles := make([]string, 0, len(c.Tags))
	for _, tag := range c.Tags {
		titles = append(titles, tag.Title)
	}
	return titles
}

// ViewLink returns the canonical link to the coub itself
func (c *Coub) ViewLink() string {
	return fmt.Sprintf("https://coub.com/view/%s", c.Permalink)
}

// ChannelLink returns the canonical link to the author's channel
func (c *Coub) ChannelLink() string {
	return fmt.Sprintf("https://coub.com/%s", c.Channel.Permalink)
}

// MetadataComment composes the comment block embedded into the muxed output:
// author, channel link, original coub link, semicolon-joined tags and, when
// present, the external source video link.
func (c *Coub) MetadataComment() string {
	comment := fmt.Sprintf("Author: %s\nLink: %s\nOriginal video: %s\nTags: %s",
		c.Channel.Title,
		c.ChannelLink(),
		c.ViewLink(),
		strings.Join(c.TagTitles(), ";"))

	if c.MediaBlocks.ExternalVideo != nil {
		comment += fmt.Sprintf("\nExternal video: %s", c.MediaBlocks.ExternalVideo.URL)
	}

	return comment
}

// LikesPage is one page of the paginated likes listing
type LikesPage struct {
	Page       int    `json:"page"`
	PerPage    int    `json:"per_page"`
	TotalPages int    `json:"total_pages"`
	Coubs      []Coub `json:"coubs"`
}
