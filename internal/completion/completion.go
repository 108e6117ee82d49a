package completion

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/afero"
)

// Result is recomputed from scratch for every input. Ghost is the untyped
// remainder of the top suggestion's last segment, empty when there is none.
type Result struct {
	Suggestions []string
	Ghost       string
}

type Completer struct {
	Fs   afero.Fs
	Home func() (string, error)
	Cwd  func() (string, error)
}

func New() *Completer {
	return &Completer{
		Fs:   afero.NewOsFs(),
		Home: os.UserHomeDir,
		Cwd:  os.Getwd,
	}
}

type entry struct {
	display string
	dir     bool
}

// Complete ranks directory entries matching the partial path: directories
// first, then case-insensitively by display path. Read failures degrade to
// an empty result.
func (c *Completer) Complete(partial string) Result {
	partial = strings.TrimSpace(partial)
	if partial == "" {
		return c.completeIn(".", "", false)
	}

	expanded, tilde := c.expand(partial)
	if strings.HasSuffix(partial, "/") {
		if !c.isDir(expanded) {
			return Result{}
		}
		return c.completeIn(expanded, "", tilde)
	}

	dir, prefix := filepath.Dir(expanded), filepath.Base(expanded)
	if !c.isDir(dir) {
		return Result{}
	}
	return c.completeIn(dir, prefix, tilde)
}

func (c *Completer) completeIn(dir, prefix string, tilde bool) Result {
	infos, err := afero.ReadDir(c.Fs, c.resolve(dir))
	if err != nil {
		return Result{}
	}

	lowerPrefix := strings.ToLower(prefix)
	home := c.home()
	var matches []entry
	for _, info := range infos {
		name := info.Name()
		if prefix != "" && !strings.HasPrefix(strings.ToLower(name), lowerPrefix) {
			continue
		}
		if strings.HasPrefix(name, ".") && !strings.HasPrefix(prefix, ".") {
			continue
		}
		full := filepath.Join(dir, name)
		isDir := info.IsDir()
		if st, err := c.Fs.Stat(c.resolve(full)); err == nil {
			isDir = st.IsDir()
		}
		matches = append(matches, entry{display: displayPath(full, tilde, home, isDir), dir: isDir})
	}

	sort.SliceStable(matches, func(i, j int) bool {
		if matches[i].dir != matches[j].dir {
			return matches[i].dir
		}
		return strings.ToLower(matches[i].display) < strings.ToLower(matches[j].display)
	})

	res := Result{Suggestions: make([]string, 0, len(matches))}
	for _, m := range matches {
		res.Suggestions = append(res.Suggestions, m.display)
	}
	res.Ghost = Ghost(prefix, res.Suggestions)
	return res
}

// Ghost returns what the top suggestion adds beyond prefix within its last
// path segment. A trailing "/" belongs to the segment.
func Ghost(prefix string, suggestions []string) string {
	if len(suggestions) == 0 {
		return ""
	}
	top := suggestions[0]
	seg := top[strings.LastIndex(strings.TrimSuffix(top, "/"), "/")+1:]
	if len(seg) < len(prefix) || !strings.EqualFold(seg[:len(prefix)], prefix) {
		return ""
	}
	return seg[len(prefix):]
}

func (c *Completer) expand(path string) (string, bool) {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path, strings.HasPrefix(path, "~")
	}
	home := c.home()
	if home == "" {
		return path, true
	}
	if path == "~" {
		return home, true
	}
	return home + "/" + path[2:], true
}

func (c *Completer) home() string {
	if c.Home == nil {
		return ""
	}
	h, err := c.Home()
	if err != nil {
		return ""
	}
	return h
}

// resolve anchors relative paths at the working directory for filesystem
// access; display paths stay relative.
func (c *Completer) resolve(path string) string {
	if filepath.IsAbs(path) || c.Cwd == nil {
		return path
	}
	cwd, err := c.Cwd()
	if err != nil {
		return path
	}
	return filepath.Join(cwd, path)
}

func (c *Completer) isDir(path string) bool {
	ok, err := afero.IsDir(c.Fs, c.resolve(path))
	return err == nil && ok
}

func displayPath(path string, tilde bool, home string, isDir bool) string {
	display := path
	if tilde && home != "" {
		if rel, err := filepath.Rel(home, path); err == nil && rel != ".." && !strings.HasPrefix(rel, "../") {
			if rel == "." {
				display = "~"
			} else {
				display = "~/" + rel
			}
		}
	}
	if isDir && !strings.HasSuffix(display, "/") {
		display += "/"
	}
	return display
}
