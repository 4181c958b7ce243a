package isla

import "strconv"

// Walk visits v and every Value nested beneath it, depth-first,
// pre-order. path holds the chain of keys/indices (as strings) from the
// root to val; the root is visited with an empty path.
func (v TextValue) Walk(fn func(path []string, val TextValue)) {
	walkText(nil, v, fn)
}

func walkText(path []string, v TextValue, fn func(path []string, val TextValue)) {
	fn(path, v)
	switch v.kind {
	case KindList:
		for i, e := range v.list {
			walkText(append(path[:len(path):len(path)], strconv.Itoa(i)), e, fn)
		}
	case KindMap:
		for _, e := range v.entries {
			walkText(append(path[:len(path):len(path)], e.Key), e.Value, fn)
		}
	}
}

// Walk visits v and every Value nested beneath it, depth-first, pre-order.
func (v BinValue) Walk(fn func(path []string, val BinValue)) {
	walkBin(nil, v, fn)
}

func walkBin(path []string, v BinValue, fn func(path []string, val BinValue)) {
	fn(path, v)
	switch v.kind {
	case KindList:
		for i, e := range v.list {
			walkBin(append(path[:len(path):len(path)], strconv.Itoa(i)), e, fn)
		}
	case KindMap:
		for _, e := range v.entries {
			walkBin(append(path[:len(path):len(path)], string(e.Key)), e.Value, fn)
		}
	}
}
