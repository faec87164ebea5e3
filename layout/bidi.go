package layout

// BidiReorder returns the visual order of a sequence of runs given their
// embedding levels: order[v] is the logical index of the run displayed at
// visual position v, counting from the left.
//
// From the highest level down to the lowest odd level, every maximal
// sequence of runs at that level or above is reversed (rule L2 of UAX #9).
// Runs at even levels below the lowest odd level keep their order.
func BidiReorder(levels []uint8) []int {
	order := make([]int, len(levels))
	for i := range order {
		order[i] = i
	}
	if len(levels) == 0 {
		return order
	}

	high, low := levels[0], levels[0]
	for _, lv := range levels[1:] {
		high = max(high, lv)
		low = min(low, lv)
	}
	if low%2 == 0 {
		low++
	}

	for ; high >= low && high > 0; high-- {
		for i := 0; i < len(levels); {
			if levels[order[i]] < high {
				i++
				continue
			}
			j := i
			for j < len(levels) && levels[order[j]] >= high {
				j++
			}
			reverse(order[i:j])
			i = j
		}
	}
	return order
}

func reverse(s []int) {
	for i, j := 0, len(s)-1; i < j; i, j = i+1, j-1 {
		s[i], s[j] = s[j], s[i]
	}
}
