package recipe

import (
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
)

// StepImages maps section and step indices to image paths. Storage is
// zero-based with section 0 reserved for linear recipes; the public accessor
// and the flattened entries speak the one-based file-naming convention.
type StepImages struct {
	sections map[int]map[int]string
}

// StepImage is one flattened step-image entry with public (one-based)
// section and step numbers. Section 0 means a linear recipe.
type StepImage struct {
	Section int    `json:"section"`
	Step    int    `json:"step"`
	Path    string `json:"path"`
}

func newStepImages() *StepImages {
	return &StepImages{sections: make(map[int]map[int]string)}
}

// insert records an image for a zero-based (section, step) slot. The first
// write wins; discovery order enforces extension priority.
func (s *StepImages) insert(section, step int, path string) {
	steps, ok := s.sections[section]
	if !ok {
		steps = make(map[int]string)
		s.sections[section] = steps
	}
	if _, occupied := steps[step]; occupied {
		return
	}
	steps[step] = path
}

// Get returns the image for a one-based (section, step) pair. Section 0
// addresses the linear bucket; step must be at least 1.
func (s *StepImages) Get(section, step int) (string, bool) {
	if step < 1 || section < 0 {
		return "", false
	}
	internal := 0
	if section >= 1 {
		internal = section - 1
	}
	path, ok := s.sections[internal][step-1]
	return path, ok
}

// Len returns the total number of images in the collection.
func (s *StepImages) Len() int {
	n := 0
	for _, steps := range s.sections {
		n += len(steps)
	}
	return n
}

// All returns every image as flattened entries sorted by section then step,
// with indices converted to the public one-based form.
func (s *StepImages) All() []StepImage {
	var out []StepImage
	for section, steps := range s.sections {
		public := section
		if section > 0 {
			public = section + 1
		}
		for step, path := range steps {
			out = append(out, StepImage{Section: public, Step: step + 1, Path: path})
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Section != out[j].Section {
			return out[i].Section < out[j].Section
		}
		return out[i].Step < out[j].Step
	})
	return out
}

// findStepImages scans the directory containing path for files matching the
// step-image naming convention of its stem. Extensions form the outer loop
// so that the priority order decides ties via first write.
func findStepImages(path string) *StepImages {
	imgs := newStepImages()
	entries, err := os.ReadDir(filepath.Dir(path))
	if err != nil {
		return imgs
	}
	dir := filepath.Dir(path)
	fileStem := stem(path)
	for _, ext := range imageExtensions {
		for _, de := range entries {
			if de.IsDir() {
				continue
			}
			section, step, ok := parseStepImageName(de.Name(), fileStem, ext)
			if !ok {
				continue
			}
			imgs.insert(section, step, filepath.Join(dir, de.Name()))
		}
	}
	return imgs
}

// parseStepImageName matches name against <stem>.<N>.<ext> and
// <stem>.<S>.<N>.<ext> and returns the zero-based (section, step) slot.
// Any other dot pattern, non-numeric group, or group below 1 is rejected.
func parseStepImageName(name, fileStem, ext string) (section, step int, ok bool) {
	prefix := fileStem + "."
	suffix := "." + ext
	if len(name) <= len(prefix)+len(suffix) ||
		!strings.HasPrefix(name, prefix) || !strings.HasSuffix(name, suffix) {
		return 0, 0, false
	}
	middle := name[len(prefix) : len(name)-len(suffix)]
	groups := strings.Split(middle, ".")
	nums := make([]int, len(groups))
	for i, g := range groups {
		n, valid := parseStepNumber(g)
		if !valid {
			return 0, 0, false
		}
		nums[i] = n
	}
	switch len(nums) {
	case 1:
		return 0, nums[0] - 1, true
	case 2:
		return nums[0] - 1, nums[1] - 1, true
	default:
		return 0, 0, false
	}
}

// parseStepNumber parses a bare decimal group with value >= 1.
func parseStepNumber(s string) (int, bool) {
	if s == "" {
		return 0, false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return 0, false
		}
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 {
		return 0, false
	}
	return n, true
}
