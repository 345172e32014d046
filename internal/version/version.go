package version

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	goversion "github.com/hashicorp/go-version"
)

// InstallPrefix is the prefix Discord uses for versioned install directories
const InstallPrefix = "app-"

var installDirPattern = regexp.MustCompile(`^app-(\d+)\.(\d+)\.(\d+)`)

// Version is the (major, minor, build) triple encoded in an install directory name
type Version struct {
	Major int
	Minor int
	Build int

	// raw holds the digit strings with leading zeros trimmed; set when a
	// segment does not fit an int
	raw [3]string
	v   *goversion.Version
}

// String returns the version as major.minor.build
func (v Version) String() string {
	return strings.Join(v.digits(), ".")
}

func (v Version) digits() []string {
	if v.raw[0] != "" {
		return v.raw[:]
	}
	return []string{strconv.Itoa(v.Major), strconv.Itoa(v.Minor), strconv.Itoa(v.Build)}
}

// Compare returns -1, 0 or 1 depending on whether v is lower than, equal to,
// or greater than other.
func (v Version) Compare(other Version) int {
	if v.v != nil && other.v != nil {
		return v.v.Compare(other.v)
	}

	a, b := v.digits(), other.digits()
	for i := range a {
		if c := compareDigits(a[i], b[i]); c != 0 {
			return c
		}
	}
	return 0
}

// compareDigits orders unsigned decimal strings of any length
func compareDigits(a, b string) int {
	a, b = trimZeros(a), trimZeros(b)
	switch {
	case len(a) != len(b):
		if len(a) < len(b) {
			return -1
		}
		return 1
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

func trimZeros(s string) string {
	s = strings.TrimLeft(s, "0")
	if s == "" {
		return "0"
	}
	return s
}

// GreaterThan reports whether v sorts strictly after other
func (v Version) GreaterThan(other Version) bool {
	return v.Compare(other) > 0
}

// IsInstallDir reports whether name looks like a versioned install directory
func IsInstallDir(name string) bool {
	return strings.HasPrefix(name, InstallPrefix)
}

// ParseInstallDir extracts the version from a directory name such as
// "app-1.0.9224". Only the leading triple is considered, so suffixes are
// ignored. Names that do not parse return the zero version and false.
func ParseInstallDir(name string) (Version, bool) {
	match := installDirPattern.FindStringSubmatch(name)
	if match == nil {
		return Version{}, false
	}

	parsed, err := goversion.NewVersion(strings.Join(match[1:], "."))
	if err == nil && len(parsed.Segments()) >= 3 {
		segments := parsed.Segments()
		return Version{
			Major: segments[0],
			Minor: segments[1],
			Build: segments[2],
			v:     parsed,
		}, true
	}

	// Segments too large for go-version still order by their digits
	raw := [3]string{trimZeros(match[1]), trimZeros(match[2]), trimZeros(match[3])}
	return Version{
		Major: clampInt(raw[0]),
		Minor: clampInt(raw[1]),
		Build: clampInt(raw[2]),
		raw:   raw,
	}, true
}

func clampInt(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return math.MaxInt
	}
	return n
}
