package vt

const MAX_EXPECTED_PARAMS = 16

// parameters accumulates the numeric arguments of a CSI sequence.
type parameters struct {
	num   int
	items []int
}

func newParams() *parameters {
	return &parameters{items: make([]int, 0, MAX_EXPECTED_PARAMS)}
}

func paramsFromInts(items []int) *parameters {
	p := newParams()
	for _, i := range items {
		p.addItem(i)
	}
	return p
}

func (p *parameters) addItem(item int) {
	p.items = append(p.items, item)
	p.num += 1
}

func (p *parameters) alterItem(val int) {
	p.items[p.num-1] = val
}

func (p *parameters) reset() {
	p.items = p.items[:0]
	p.num = 0
}

func (p *parameters) numItems() int {
	return p.num
}

func (p *parameters) getItem(item, def int) (int, bool) {
	if p.num == 0 || p.num <= item {
		return def, false
	}
	return p.items[item], true
}

// addDigit folds one parameter byte into the accumulator: ';' opens
// the next slot, a digit extends the current one.
func (p *parameters) addDigit(b byte) {
	if b == ';' {
		if p.numItems() == 0 {
			p.addItem(0)
		}
		p.addItem(0)
		return
	}

	switch p.numItems() {
	case 0:
		p.addItem(int(b - '0'))
	default:
		p.alterItem(p.items[p.num-1]*10 + int(b-'0'))
	}
}
