package samples

import (
	"fmt"
	"path/filepath"
	"strings"

	ioutils "github.com/handiism/flstudio-hub/internal/io"
)

// PlaylistFormat represents supported playlist file formats.
//
// Each format has different features and compatibility:
//   - M3U: Simple text format, widely supported
//   - PLS: INI-style format, used by Winamp
//   - WPL: XML format, Windows Media Player
type PlaylistFormat int

const (
	// FormatM3U creates .m3u files (most compatible).
	FormatM3U PlaylistFormat = iota

	// FormatPLS creates .pls files (Winamp/SHOUTcast format).
	FormatPLS

	// FormatWPL creates .wpl files (Windows Media Player).
	FormatWPL
)

// FormatForPath picks the format from the file extension. Unknown
// extensions fall back to M3U.
func FormatForPath(path string) PlaylistFormat {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".pls":
		return FormatPLS
	case ".wpl":
		return FormatWPL
	}
	return FormatM3U
}

// PlaylistCreator renders a scanned library as an audition playlist, so
// samples can be previewed in any player.
//
// Example:
//
//	creator := NewPlaylistCreator(FormatM3U, true)
//	content := creator.CreatePlaylist(lib, "/samples")
//
//	// Result:
//	// #EXTM3U
//	// #EXTINF:-1,Kick [128 BPM, A Minor]
//	// drums/kick.mp3
type PlaylistCreator struct {
	format   PlaylistFormat
	extended bool // For M3U: include EXTINF lines with the title
}

// NewPlaylistCreator creates a new PlaylistCreator. extended only affects
// M3U output.
func NewPlaylistCreator(format PlaylistFormat, extended bool) *PlaylistCreator {
	return &PlaylistCreator{
		format:   format,
		extended: extended,
	}
}

// CreatePlaylist generates playlist content for lib. Sample paths are made
// relative to baseDir when possible.
func (p *PlaylistCreator) CreatePlaylist(lib *Library, baseDir string) string {
	switch p.format {
	case FormatPLS:
		return p.createPLS(lib, baseDir)
	case FormatWPL:
		return p.createWPL(lib, baseDir)
	default:
		return p.createM3U(lib, baseDir)
	}
}

// WritePlaylist writes lib to path in the format its extension names,
// with entries relative to the playlist's directory.
func WritePlaylist(lib *Library, path string) error {
	dir := filepath.Dir(path)
	if err := ioutils.EnsureDir(dir); err != nil {
		return err
	}
	content := NewPlaylistCreator(FormatForPath(path), true).CreatePlaylist(lib, dir)
	return ioutils.WriteFileAtomic(path, []byte(content))
}

func (p *PlaylistCreator) createM3U(lib *Library, baseDir string) string {
	var sb strings.Builder

	if p.extended {
		sb.WriteString("#EXTM3U\n")
	}

	for _, s := range lib.Samples {
		if p.extended {
			sb.WriteString(fmt.Sprintf("#EXTINF:-1,%s\n", entryTitle(s)))
		}
		sb.WriteString(entryPath(s.Path, baseDir) + "\n")
	}

	return sb.String()
}

// createPLS generates an INI-style playlist. Length -1 means unknown.
func (p *PlaylistCreator) createPLS(lib *Library, baseDir string) string {
	var sb strings.Builder

	sb.WriteString("[playlist]\n")

	for i, s := range lib.Samples {
		idx := i + 1
		sb.WriteString(fmt.Sprintf("File%d=%s\n", idx, entryPath(s.Path, baseDir)))
		sb.WriteString(fmt.Sprintf("Title%d=%s\n", idx, entryTitle(s)))
		sb.WriteString(fmt.Sprintf("Length%d=-1\n", idx))
	}

	sb.WriteString(fmt.Sprintf("NumberOfEntries=%d\n", len(lib.Samples)))
	sb.WriteString("Version=2\n")

	return sb.String()
}

func (p *PlaylistCreator) createWPL(lib *Library, baseDir string) string {
	var sb strings.Builder

	sb.WriteString("<?wpl version=\"1.0\"?>\n")
	sb.WriteString("<smil>\n")
	sb.WriteString("  <head>\n")
	sb.WriteString(fmt.Sprintf("    <title>%s</title>\n", escapeXML(filepath.Base(lib.Root))))
	sb.WriteString("  </head>\n")
	sb.WriteString("  <body>\n")
	sb.WriteString("    <seq>\n")

	for _, s := range lib.Samples {
		sb.WriteString(fmt.Sprintf("      <media src=\"%s\"/>\n", escapeXML(entryPath(s.Path, baseDir))))
	}

	sb.WriteString("    </seq>\n")
	sb.WriteString("  </body>\n")
	sb.WriteString("</smil>\n")

	return sb.String()
}

// entryTitle is the sample name followed by its tempo and key, if tagged.
func entryTitle(s Sample) string {
	var info []string
	if s.BPM != "" {
		info = append(info, s.BPM+" BPM")
	}
	if s.Key != "" {
		info = append(info, s.Key)
	}
	if len(info) == 0 {
		return s.Name()
	}
	return fmt.Sprintf("%s [%s]", s.Name(), strings.Join(info, ", "))
}

// entryPath uses forward slashes so playlists travel between systems.
func entryPath(path, baseDir string) string {
	if baseDir != "" {
		if rel, err := filepath.Rel(baseDir, path); err == nil {
			path = rel
		}
	}
	return filepath.ToSlash(path)
}

var xmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	"\"", "&quot;",
	"'", "&apos;",
)

func escapeXML(s string) string {
	return xmlEscaper.Replace(s)
}
