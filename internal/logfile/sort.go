package logfile

import "sort"

// CompareByCreationTimeDescending orders the most recently created file
// first. Ties compare equal; the sort below keeps them stable.
func CompareByCreationTimeDescending(a, b *Info) int {
	at, bt := a.CreationTime(), b.CreationTime()
	switch {
	case at.After(bt):
		return -1
	case bt.After(at):
		return 1
	default:
		return 0
	}
}

// SortByCreationTimeDescending sorts infos newest first, in place.
func SortByCreationTimeDescending(infos []*Info) {
	sort.SliceStable(infos, func(i, j int) bool {
		return CompareByCreationTimeDescending(infos[i], infos[j]) < 0
	})
}
