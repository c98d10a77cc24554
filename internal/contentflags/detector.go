package contentflags

import (
	"log/slog"
	"strings"

	"vnrename/internal/logging"
	"vnrename/internal/textutil"
)

// Name markers.
const (
	MarkerFandiscConfirmed = "★"
	MarkerFandiscExpected  = "☆"
	MarkerOST              = "♫"
)

var (
	ostKeywords     = []string{"ost", "soundtrack", "オリジナルサウンドトラック"}
	fandiscKeywords = []string{"fandisc", "fan disc", "ファンディスク"}
)

// Flags is the detected content state of one folder. FandiscConfirmed and
// FandiscExpected are never both true.
type Flags struct {
	FandiscConfirmed bool
	FandiscExpected  bool
	OSTIncluded      bool
}

// Markers returns the marker glyphs for the set flags.
func (f Flags) Markers() []string {
	var out []string
	switch {
	case f.FandiscConfirmed:
		out = append(out, MarkerFandiscConfirmed)
	case f.FandiscExpected:
		out = append(out, MarkerFandiscExpected)
	}
	if f.OSTIncluded {
		out = append(out, MarkerOST)
	}
	return out
}

// EntryLister lists the names inside a directory.
type EntryLister interface {
	ListEntries(dir string) ([]string, error)
}

// Detector inspects folders for content flags.
type Detector struct {
	fs     EntryLister
	logger *slog.Logger
}

// NewDetector builds a Detector reading folder contents through fs.
func NewDetector(fs EntryLister, logger *slog.Logger) *Detector {
	return &Detector{fs: fs, logger: logging.NewComponentLogger(logger, "contentflags")}
}

// Detect combines catalog and physical evidence for the folder at
// folderPath. releaseTitle may be empty when no release was resolved.
func (d *Detector) Detect(folderPath, folderName, releaseTitle string) Flags {
	entries := d.entries(folderPath)
	catalog := FandiscFromCatalog(releaseTitle, folderName)
	physical := anyContains(entries, fandiscKeywords)
	flags := Flags{
		FandiscConfirmed: catalog && physical,
		FandiscExpected:  catalog && !physical,
		OSTIncluded:      ostFromNames(folderName, releaseTitle) || anyContains(entries, ostKeywords),
	}
	d.logger.Debug("content flags detected",
		logging.String(logging.FieldFolder, folderName),
		logging.Bool("fandisc_catalog", catalog),
		logging.Bool("fandisc_physical", physical),
		logging.Bool("ost", flags.OSTIncluded))
	return flags
}

// DetectOST reports soundtrack evidence in the folder name, release title,
// or any file name inside the folder.
func (d *Detector) DetectOST(folderPath, folderName, releaseTitle string) bool {
	if ostFromNames(folderName, releaseTitle) {
		return true
	}
	return anyContains(d.entries(folderPath), ostKeywords)
}

// FandiscPhysical reports fandisc keywords in file names inside the folder.
func (d *Detector) FandiscPhysical(folderPath string) bool {
	return anyContains(d.entries(folderPath), fandiscKeywords)
}

// FandiscFromCatalog reports fandisc keywords in the release title or folder name.
func FandiscFromCatalog(releaseTitle, folderName string) bool {
	return textutil.ContainsAnyFold(releaseTitle, fandiscKeywords) ||
		textutil.ContainsAnyFold(folderName, fandiscKeywords)
}

func ostFromNames(folderName, releaseTitle string) bool {
	if strings.Contains(folderName, MarkerOST) {
		return true
	}
	return textutil.ContainsAnyFold(folderName, ostKeywords) ||
		textutil.ContainsAnyFold(releaseTitle, ostKeywords)
}

func (d *Detector) entries(folderPath string) []string {
	if d.fs == nil || folderPath == "" {
		return nil
	}
	names, err := d.fs.ListEntries(folderPath)
	if err != nil {
		d.logger.Debug("folder contents unavailable; treating as no evidence",
			logging.String("path", folderPath),
			logging.Error(err))
		return nil
	}
	return names
}

func anyContains(names []string, keywords []string) bool {
	for _, name := range names {
		if textutil.ContainsAnyFold(name, keywords) {
			return true
		}
	}
	return false
}

// MergeFlags appends markers to a comma separated user flag string, skipping
// markers the user already typed.
func MergeFlags(user string, markers ...string) string {
	merged := strings.TrimSpace(user)
	for _, marker := range markers {
		if marker == "" || strings.Contains(merged, marker) {
			continue
		}
		if merged == "" {
			merged = marker
		} else {
			merged += ", " + marker
		}
	}
	return merged
}
