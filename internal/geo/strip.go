package geo

// Strip returns a copy of c in which every position keeps only its first two
// ordinates. Inner levels keep their order and cardinality. The walk uses an
// explicit stack, so the tree may be arbitrarily deep.
func Strip(c Coordinates) Coordinates {
	if c.IsLeaf() {
		return Coordinates{Position: truncate(c.Position)}
	}

	type frame struct {
		src []Coordinates
		out []Coordinates
	}
	newFrame := func(src []Coordinates) *frame {
		f := &frame{src: src}
		if src != nil {
			f.out = make([]Coordinates, 0, len(src))
		}
		return f
	}

	stack := []*frame{newFrame(c.Children)}
	for {
		top := stack[len(stack)-1]

		if len(top.out) == len(top.src) {
			stack = stack[:len(stack)-1]
			done := Coordinates{Children: top.out}
			if len(stack) == 0 {
				return done
			}
			parent := stack[len(stack)-1]
			parent.out = append(parent.out, done)
			continue
		}

		next := top.src[len(top.out)]
		if next.IsLeaf() {
			top.out = append(top.out, Coordinates{Position: truncate(next.Position)})
			continue
		}
		stack = append(stack, newFrame(next.Children))
	}
}

func truncate(pos []float64) []float64 {
	n := len(pos)
	if n > 2 {
		n = 2
	}
	out := make([]float64, n)
	copy(out, pos)
	return out
}
