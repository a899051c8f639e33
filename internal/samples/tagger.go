package samples

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/bogem/id3v2"
)

// TagEditAction defines how to handle individual ID3 tags.
//
// Each tag field can be configured independently to determine whether
// it should be modified, cleared, or left unchanged.
type TagEditAction int

const (
	// TagEmpty clears the frame.
	TagEmpty TagEditAction = iota

	// TagModify writes the value from Tags. Empty values leave the frame
	// unchanged.
	TagModify

	// TagDoNotModify leaves the existing frame unchanged.
	TagDoNotModify
)

// Frame ids read and written by this package.
const (
	frameBPM = "TBPM"
	frameKey = "TKEY"
)

// Tags is the subset of ID3 metadata a sample library cares about.
type Tags struct {
	Title  string
	Artist string
	Genre  string
	// BPM is kept as text; TBPM allows fractional values in practice.
	BPM string
	Key string
}

// BPMValue parses BPM. It returns 0 when the frame is empty or not a
// positive number.
func (t Tags) BPMValue() float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(t.BPM), 64)
	if err != nil || v <= 0 {
		return 0
	}
	return v
}

// TagConfig holds the edit action for each writable frame.
//
// Example:
//
//	cfg := &TagConfig{
//	    BPM:   TagModify,      // write TBPM
//	    Key:   TagModify,      // write TKEY
//	    Genre: TagEmpty,       // clear TCON
//	    Title: TagDoNotModify, // keep TIT2
//	}
type TagConfig struct {
	// BPM controls the TBPM (Beats per minute) frame.
	BPM TagEditAction

	// Key controls the TKEY (Initial key) frame.
	Key TagEditAction

	// Genre controls the TCON (Content type) frame.
	Genre TagEditAction

	// Title controls the TIT2 (Title) frame.
	Title TagEditAction

	// Artist controls the TPE1 (Lead artist) frame.
	Artist TagEditAction
}

// DefaultTagConfig modifies every frame.
func DefaultTagConfig() *TagConfig {
	return &TagConfig{
		BPM:    TagModify,
		Key:    TagModify,
		Genre:  TagModify,
		Title:  TagModify,
		Artist: TagModify,
	}
}

// Tagger reads and writes sample metadata in ID3v2 tags.
//
// Example:
//
//	tagger := NewTagger(nil)
//	tags, artwork, err := tagger.ReadTags("/samples/kick.mp3")
type Tagger struct {
	config *TagConfig
}

// NewTagger creates a new Tagger with the given configuration.
//
// If config is nil, DefaultTagConfig() is used.
func NewTagger(config *TagConfig) *Tagger {
	if config == nil {
		config = DefaultTagConfig()
	}
	return &Tagger{config: config}
}

// ReadTags returns the metadata of the file at path and the first embedded
// picture, if any. A file without an ID3 tag yields zero Tags.
func (t *Tagger) ReadTags(path string) (Tags, []byte, error) {
	tag, err := id3v2.Open(path, id3v2.Options{Parse: true})
	if err != nil {
		return Tags{}, nil, err
	}
	defer tag.Close()

	tags := Tags{
		Title:  tag.Title(),
		Artist: tag.Artist(),
		Genre:  tag.Genre(),
		BPM:    tag.GetTextFrame(frameBPM).Text,
		Key:    tag.GetTextFrame(frameKey).Text,
	}

	var artwork []byte
	for _, f := range tag.GetFrames(tag.CommonID("Attached picture")) {
		if pic, ok := f.(id3v2.PictureFrame); ok && len(pic.Picture) > 0 {
			artwork = pic.Picture
			break
		}
	}
	return tags, artwork, nil
}

// SaveTags writes tags to the MP3 file at path according to the config.
// The file must exist. artwork, when non-nil, replaces embedded pictures.
func (t *Tagger) SaveTags(path string, tags Tags, artwork []byte) error {
	if _, err := os.Stat(path); err != nil {
		return err
	}

	tag, err := id3v2.Open(path, id3v2.Options{Parse: true})
	if err != nil {
		return err
	}
	defer tag.Close()

	t.applyText(tag, frameBPM, t.config.BPM, tags.BPM)
	t.applyText(tag, frameKey, t.config.Key, tags.Key)
	t.applyText(tag, tag.CommonID("Content type"), t.config.Genre, tags.Genre)
	t.applyText(tag, tag.CommonID("Title"), t.config.Title, tags.Title)
	t.applyText(tag, tag.CommonID("Artist"), t.config.Artist, tags.Artist)

	if artwork != nil {
		tag.DeleteFrames(tag.CommonID("Attached picture"))
		tag.AddAttachedPicture(id3v2.PictureFrame{
			Encoding:    id3v2.EncodingUTF8,
			MimeType:    "image/jpeg",
			PictureType: id3v2.PTFrontCover,
			Description: "Cover",
			Picture:     artwork,
		})
	}

	if err := tag.Save(); err != nil {
		return fmt.Errorf("save tags: %w", err)
	}
	return nil
}

func (t *Tagger) applyText(tag *id3v2.Tag, id string, action TagEditAction, value string) {
	switch action {
	case TagEmpty:
		tag.DeleteFrames(id)
	case TagModify:
		if value != "" {
			tag.AddTextFrame(id, id3v2.EncodingUTF8, value)
		}
	}
}
