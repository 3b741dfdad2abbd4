package dfa

import (
	"sort"

	"github.com/coregx/rex/internal/conv"
	"github.com/coregx/rex/internal/sparse"
)

// closureResult is the outcome of following every epsilon edge (split,
// jmp, and conditionally assert-start/assert-end) from a set of Thompson
// program entry points: the byte/class instructions reachable (the DFA
// state's "NFA item set"), plus whether a Match instruction is reachable
// unconditionally or only via a trailing `$`.
type closureResult struct {
	items      []int
	isMatch    bool
	matchIfEnd bool
}

// closure computes the epsilon-closure of starts. atStart gates whether
// assert-start (`^`) edges may be followed; it is true only for the
// initial state, since every other state is reached after consuming at
// least one byte and can never be at haystack offset 0 again.
//
// assert-end (`$`) is handled differently: whether we're at the end of
// the haystack depends on the haystack length, not on the state, so it
// can't be resolved at build time. Instead the closure is computed twice
// — once blocking assert-end edges (giving the state's unconditional
// match status) and once allowing them (giving matchIfEnd) — and the
// search loop checks matchIfEnd against the actual haystack length at
// run time.
func closure(prog []inst, starts []int, atStart bool) closureResult {
	cap32 := conv.IntToUint32(len(prog))

	// seen tracks instructions already visited by walk, keyed by program
	// index — exactly the bounded-universe "have I added this thread
	// already this step" membership test sparse.Set is built for.
	seen := sparse.New(cap32)
	var items []int
	isMatch := false

	var walk func(i int)
	walk = func(i int) {
		if !seen.Insert(conv.IntToUint32(i)) {
			return
		}
		in := prog[i]
		switch in.op {
		case opSplit:
			walk(in.x)
			walk(in.y)
		case opJmp:
			walk(in.x)
		case opAssertStart:
			if atStart {
				walk(in.x)
			}
		case opAssertEnd:
			// blocked here; see matchIfEnd below.
		case opMatch:
			isMatch = true
		case opByte, opClass:
			items = append(items, i)
		}
	}
	for _, s := range starts {
		walk(s)
	}
	sort.Ints(items)

	matchIfEnd := false
	seen2 := sparse.New(cap32)
	var walk2 func(i int)
	walk2 = func(i int) {
		if !seen2.Insert(conv.IntToUint32(i)) {
			return
		}
		in := prog[i]
		switch in.op {
		case opSplit:
			walk2(in.x)
			walk2(in.y)
		case opJmp:
			walk2(in.x)
		case opAssertStart:
			if atStart {
				walk2(in.x)
			}
		case opAssertEnd:
			walk2(in.x)
		case opMatch:
			matchIfEnd = true
		}
	}
	for _, s := range starts {
		walk2(s)
	}

	return closureResult{items: items, isMatch: isMatch, matchIfEnd: matchIfEnd}
}

// itemSetKey must distinguish two closures with the same pending
// byte/class instructions but different match-reachability: e.g. for
// `a*a`, the closure right after consuming one 'a' has the same
// items=[byte'a', byte'a'] as the start closure but is additionally a
// match state (zero more 'a's needed), so isMatch/matchIfEnd are folded
// into the key alongside the item indices rather than discarded.
func itemSetKey(cr closureResult) string {
	buf := make([]byte, len(cr.items)*4+2)
	for i, it := range cr.items {
		buf[i*4] = byte(it)
		buf[i*4+1] = byte(it >> 8)
		buf[i*4+2] = byte(it >> 16)
		buf[i*4+3] = byte(it >> 24)
	}
	tail := len(cr.items) * 4
	if cr.isMatch {
		buf[tail] = 1
	}
	if cr.matchIfEnd {
		buf[tail+1] = 1
	}
	return string(buf)
}

// determinize runs eager subset construction over prog starting from
// start, producing a fully dense DFA up front (every state's all 256
// transitions computed immediately, not lazily on first visit). Bails
// out with a StateLimitExceeded *BuildError once the state count would
// exceed maxStates.
func determinize(prog []inst, start int, maxStates int) (*DFA, error) {
	var states []State
	var itemSets [][]int
	index := make(map[string]StateID)

	addState := func(cr closureResult) (StateID, error) {
		if len(cr.items) == 0 && !cr.isMatch && !cr.matchIfEnd {
			return DeadState, nil
		}
		key := itemSetKey(cr)
		if id, ok := index[key]; ok {
			return id, nil
		}
		if len(states) >= maxStates {
			return InvalidState, &BuildError{Kind: StateLimitExceeded, Message: "dfa state limit exceeded during determinization"}
		}
		id := StateID(conv.IntToUint32(len(states)))
		states = append(states, State{isMatch: cr.isMatch, matchIfEnd: cr.matchIfEnd})
		itemSets = append(itemSets, cr.items)
		index[key] = id
		return id, nil
	}

	// Two distinct entry points into the same automaton: startID is only
	// valid when the match attempt genuinely begins at haystack offset 0
	// (so a leading `^` may fire), startNoAnchorID is used for every other
	// start offset, where `^` can never succeed.
	startID, err := addState(closure(prog, []int{start}, true))
	if err != nil {
		return nil, err
	}
	startNoAnchorID, err := addState(closure(prog, []int{start}, false))
	if err != nil {
		return nil, err
	}

	for i := 0; i < len(itemSets); i++ {
		items := itemSets[i]
		for b := 0; b < 256; b++ {
			var nextEntries []int
			for _, it := range items {
				in := prog[it]
				matches := false
				switch in.op {
				case opByte:
					matches = in.b == byte(b)
				case opClass:
					matches = in.set.Contains(byte(b)) != in.negated
				}
				if matches {
					nextEntries = append(nextEntries, in.x)
				}
			}
			if len(nextEntries) == 0 {
				states[i].transitions[b] = DeadState
				continue
			}
			cr := closure(prog, nextEntries, false)
			target, err := addState(cr)
			if err != nil {
				return nil, err
			}
			states[i].transitions[b] = target
		}
	}

	deadState := func() StateID {
		states = append(states, State{})
		id := StateID(len(states) - 1)
		for b := 0; b < 256; b++ {
			states[id].transitions[b] = DeadState
		}
		return id
	}
	if startID == DeadState {
		startID = deadState()
	}
	if startNoAnchorID == DeadState {
		startNoAnchorID = deadState()
	}

	return &DFA{states: states, start: startID, startNoAnchor: startNoAnchorID}, nil
}
