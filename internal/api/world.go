package api

import "melite/internal/galaxy"

var _ GameAPI = (*Wrapper)(nil)

// Systems returns display data for one of the standard system lists
func (w *Wrapper) Systems(list SystemList) []SystemInfo {
	switch list {
	case Reachable:
		var out []SystemInfo
		for _, n := range w.game.LocalSystems() {
			if w.game.IsReachable(n) {
				out = append(out, w.mustInfo(n))
			}
		}
		return out
	case MaximalReachable:
		return w.infos(w.game.LocalSystems())
	case AllSystems:
		all := make([]int, galaxy.Size)
		for i := range all {
			all[i] = i
		}
		return w.infos(all)
	case NearSystems:
		return w.infos(w.nearSystems())
	}
	return nil
}

// nearSystems covers the box around every system within a full tank
func (w *Wrapper) nearSystems() []int {
	local := w.game.LocalSystems()
	if len(local) == 0 {
		return nil
	}
	first := w.mustInfo(local[0])
	minX, maxX, minY, maxY := first.X, first.X, first.Y, first.Y
	for _, n := range local[1:] {
		s := w.mustInfo(n)
		minX = min(minX, s.X)
		maxX = max(maxX, s.X)
		minY = min(minY, s.Y)
		maxY = max(maxY, s.Y)
	}
	return w.SystemsInRectangle(int(minX), int(maxX), int(minY), int(maxY))
}

func (w *Wrapper) infos(numbers []int) []SystemInfo {
	out := make([]SystemInfo, 0, len(numbers))
	for _, n := range numbers {
		out = append(out, w.mustInfo(n))
	}
	return out
}

// mustInfo is only called with numbers the galaxy itself produced
func (w *Wrapper) mustInfo(n int) SystemInfo {
	info, err := w.SystemInfo(n)
	if err != nil {
		panic(err)
	}
	return info
}

// EconomyName returns the display string of an economy
func EconomyName(e galaxy.Economy) string {
	return e.String()
}

// GovernmentName returns the display string of a government
func GovernmentName(g galaxy.Government) string {
	return g.String()
}
