package timeline

import "github.com/ivlev/deck2video/internal/slide"

// KeyBuilds returns the ascending, duplicate-free build indices of slide that are
// significant for export.
func KeyBuilds(s *slide.Slide) []int {
	total := len(s.Builds)

	if s.IsAllKey {
		all := make([]int, total+1)
		for i := range all {
			all[i] = i
		}
		return all
	}

	var keys []int
	if s.IsStartKey {
		keys = append(keys, 0)
	}

	for i, build := range s.Builds {
		if build.IsKey() {
			keys = append(keys, i+1)
		}
	}

	if s.IsEndKey && (len(keys) == 0 || keys[len(keys)-1] != total) {
		keys = append(keys, total)
	}

	return keys
}
