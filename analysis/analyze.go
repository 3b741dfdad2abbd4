package analysis

import "github.com/coregx/rex/internal/ast"

// nodeInfo is what the post-order walk accumulates per subtree: enough to
// let the parent decide its own classification without re-walking.
type nodeInfo struct {
	class        Classification
	alternations int // number of KindAlternation nodes in this subtree
	groups       int // number of KindGroup nodes (capturing or not) in this subtree
	states       int // approximate automaton state count
}

// Analyze walks tree once, post-order, and returns its PatternProperties.
func Analyze(tree *ast.Tree) PatternProperties {
	root := tree.At(tree.Root())
	info := classify(tree, tree.Root(), 0)

	props := PatternProperties{
		Classification:     info.class,
		HasAlternation:     info.alternations > 0,
		HasGroup:           info.groups > 0,
		ByteClassNodeCount: countClasses(tree, tree.Root()),
		ApproxStateCount:   info.states,
		DFAEligible:        info.class != Complex,
	}
	props.StartAnchored, props.EndAnchored = anchorBounds(tree, root.Children)
	props.ExactLiteral = extractExactLiteral(tree, root.Children)
	if props.ExactLiteral == nil {
		props.LiteralPrefix = extractLiteralPrefix(tree, root.Children)
		props.RequiredLiteral = extractRequiredLiteral(tree, root.Children)
		props.LeadingClass, props.LeadingClassNegated, props.HasLeadingClass = extractLeadingClass(tree, root.Children)
	}
	return props
}

// classify recursively determines a subtree's Classification and tallies
// the counts its ancestors need. depth is the alternation-branch nesting
// depth (used against MaxAlternationDepth); it only increases when
// descending into an alternation branch.
func classify(tree *ast.Tree, idx int, depth int) nodeInfo {
	n := tree.At(idx)

	switch n.Kind {
	case ast.KindElement, ast.KindWildcard, ast.KindAnchor:
		return withQuantifier(n, nodeInfo{class: Simple, states: 1})

	case ast.KindClass:
		return withQuantifier(n, nodeInfo{class: Simple, states: 1})

	case ast.KindAlternation:
		info := nodeInfo{class: Medium, alternations: 1, states: 1}
		if len(n.Children) > MaxAlternationBranches || depth+1 > MaxAlternationDepth {
			info.class = Complex
		}
		// A longest-match DFA and the ordered-choice interpreter only
		// agree when at most one branch can match at a given position, so
		// alternations whose branches aren't distinguishable by their
		// first byte (`a|ab`, `foo|f.*`) stay on the interpreter.
		if !branchesDistinguishable(tree, n.Children) {
			info.class = Complex
		}
		for _, branchIdx := range n.Children {
			branch := classifyGroupChildren(tree, tree.At(branchIdx).Children, depth+1)
			info = merge(info, branch)
			if branch.class == Complex {
				info.class = Complex
			}
		}
		return info

	case ast.KindGroup:
		childInfo := classifyGroupChildren(tree, n.Children, depth)
		info := nodeInfo{
			class:        childInfo.class,
			alternations: childInfo.alternations,
			groups:       childInfo.groups + 1,
			states:       childInfo.states,
		}
		if n.Capturing {
			info.class = Complex
		} else if info.class == Simple {
			info.class = Medium
		}
		// A quantified group containing another quantified group is
		// always Complex; the DFA's unrolling would multiply out.
		if n.IsQuantified() && containsQuantifiedGroup(tree, n.Children) {
			info.class = Complex
		}
		return withQuantifier(n, info)

	case ast.KindRoot:
		return classifyGroupChildren(tree, n.Children, depth)

	default:
		return nodeInfo{class: Complex}
	}
}

// classifyGroupChildren classifies a concatenation (the Children of a Root
// or KindGroup node) by folding classify over each child.
func classifyGroupChildren(tree *ast.Tree, children []int, depth int) nodeInfo {
	info := nodeInfo{class: Simple}
	for _, c := range children {
		child := classify(tree, c, depth)
		info = merge(info, child)
		if child.class > info.class {
			info.class = child.class
		}
	}
	return info
}

func merge(a, b nodeInfo) nodeInfo {
	return nodeInfo{
		class:        a.class,
		alternations: a.alternations + b.alternations,
		groups:       a.groups + b.groups,
		states:       a.states + b.states,
	}
}

// withQuantifier folds a node's own (min,max) into its classification and
// approximate state count: a quantifier exceeding MaxQuantifierCap without
// being unbounded demotes the node (and therefore its containing pattern)
// to Complex, matching the DFA builder's own unroll limit.
func withQuantifier(n *ast.Node, info nodeInfo) nodeInfo {
	if !n.IsQuantified() {
		return info
	}
	if n.Max != ast.Unbounded && n.Max > MaxQuantifierCap {
		info.class = Complex
	}
	switch {
	case n.Max == ast.Unbounded:
		info.states = info.states*n.Min + info.states + 1 // mandatory copies + one loop state
	default:
		info.states = info.states * n.Max
	}
	return info
}

// branchesDistinguishable reports whether an alternation's branches are
// pairwise distinguishable by their first byte: every branch always
// consumes at least one byte, its possible first bytes are computable,
// and no two branches share a first byte. Each branch then owns its
// match outright wherever it fires, which is the precondition for
// running the alternation on the longest-match DFA without changing the
// ordered-choice semantics the interpreter implements.
func branchesDistinguishable(tree *ast.Tree, branches []int) bool {
	sets := make([]ast.ByteSet, len(branches))
	for i, br := range branches {
		set, consumes, ok := seqFirstBytes(tree, tree.At(br).Children)
		if !ok || !consumes {
			return false
		}
		sets[i] = set
	}
	for i := range sets {
		for j := i + 1; j < len(sets); j++ {
			if sets[i].Intersects(sets[j]) {
				return false
			}
		}
	}
	return true
}

// seqFirstBytes computes the set of bytes a concatenation's match can
// begin with. consumes reports whether the sequence always consumes at
// least one byte; ok is false when the set cannot be pinned down (an end
// anchor or an unsupported shape reached before any mandatory consumer),
// in which case callers must assume overlap.
func seqFirstBytes(tree *ast.Tree, children []int) (set ast.ByteSet, consumes, ok bool) {
	for _, idx := range children {
		n := tree.At(idx)
		switch n.Kind {
		case ast.KindAnchor:
			if n.AnchorKind == ast.AnchorStart {
				continue
			}
			return set, false, false
		case ast.KindElement, ast.KindWildcard, ast.KindClass:
			set = set.Union(consumingFirstSet(n))
			if n.Min >= 1 {
				return set, true, true
			}
			// Optional atom: the next child also contributes first bytes.
		case ast.KindGroup, ast.KindAlternation:
			sub, subConsumes, subOK := containerFirstBytes(tree, n)
			if !subOK {
				return set, false, false
			}
			set = set.Union(sub)
			if n.Min >= 1 && subConsumes {
				return set, true, true
			}
		default:
			return set, false, false
		}
	}
	// Ran out of children without a mandatory consumer: the sequence can
	// match the empty string.
	return set, false, true
}

// containerFirstBytes is seqFirstBytes lifted over a group's body or an
// alternation's branches.
func containerFirstBytes(tree *ast.Tree, n *ast.Node) (ast.ByteSet, bool, bool) {
	if n.Kind == ast.KindGroup {
		return seqFirstBytes(tree, n.Children)
	}
	var set ast.ByteSet
	consumes := true
	for _, br := range n.Children {
		sub, subConsumes, ok := seqFirstBytes(tree, tree.At(br).Children)
		if !ok {
			return set, false, false
		}
		set = set.Union(sub)
		consumes = consumes && subConsumes
	}
	return set, consumes, true
}

// consumingFirstSet returns the byte set a single consuming node
// (element, wildcard, or class) can begin with.
func consumingFirstSet(n *ast.Node) ast.ByteSet {
	switch n.Kind {
	case ast.KindElement:
		var s ast.ByteSet
		s.AddByte(n.Byte)
		return s
	case ast.KindWildcard:
		return ast.NewlineExcluded()
	default: // KindClass
		if n.Negated {
			return n.Class.Negated()
		}
		return n.Class
	}
}

// containsQuantifiedGroup reports whether any of children (recursively
// through non-group wrapper kinds) is itself a quantified KindGroup.
func containsQuantifiedGroup(tree *ast.Tree, children []int) bool {
	for _, idx := range children {
		n := tree.At(idx)
		if n.Kind == ast.KindGroup && n.IsQuantified() {
			return true
		}
		if containsQuantifiedGroup(tree, n.Children) {
			return true
		}
	}
	return false
}

// countClasses counts KindClass nodes reachable from idx.
func countClasses(tree *ast.Tree, idx int) int {
	n := tree.At(idx)
	count := 0
	if n.Kind == ast.KindClass {
		count++
	}
	for _, c := range n.Children {
		count += countClasses(tree, c)
	}
	return count
}

// anchorBounds reports whether the pattern's top-level concatenation opens
// with '^' and/or closes with '$'. Alternation roots (a single
// KindAlternation child) are reported unanchored here; per-branch anchoring
// isn't surfaced as a single PatternProperties bit.
func anchorBounds(tree *ast.Tree, children []int) (start, end bool) {
	if len(children) == 0 {
		return false, false
	}
	first := tree.At(children[0])
	if first.Kind == ast.KindAnchor && first.AnchorKind == ast.AnchorStart {
		start = true
	}
	last := tree.At(children[len(children)-1])
	if last.Kind == ast.KindAnchor && last.AnchorKind == ast.AnchorEnd {
		end = true
	}
	return start, end
}

// extractExactLiteral returns the fixed byte string the whole pattern
// reduces to, or nil if any child isn't a single, unquantified,
// exactly-once literal byte (this also excludes anchors, classes,
// wildcards, groups, and alternation, since the literal searcher that
// consumes ExactLiteral has no anchor/class logic of its own).
func extractExactLiteral(tree *ast.Tree, children []int) []byte {
	if len(children) == 0 {
		return nil
	}
	out := make([]byte, 0, len(children))
	for _, idx := range children {
		n := tree.At(idx)
		if n.Kind != ast.KindElement || n.IsQuantified() {
			return nil
		}
		out = append(out, n.Byte)
	}
	return out
}

// extractLiteralPrefix returns the longest run of fixed literal bytes at
// the start of children, skipping a single leading '^' anchor (which
// doesn't consume a byte but doesn't break the prefix either).
func extractLiteralPrefix(tree *ast.Tree, children []int) []byte {
	var out []byte
	for _, idx := range children {
		n := tree.At(idx)
		if n.Kind == ast.KindAnchor && n.AnchorKind == ast.AnchorStart && len(out) == 0 {
			continue
		}
		if n.Kind != ast.KindElement || n.IsQuantified() {
			break
		}
		out = append(out, n.Byte)
	}
	return out
}

// extractLeadingClass returns the byte class the pattern's first consuming
// node restricts a match's first byte to: the first non-anchor child must
// be a KindClass with Min >= 1 (a leading `^` doesn't consume a byte and
// doesn't change which byte comes first). Generalizes the digit-lead case
// (`[0-9]{3}-...`) to any class-lead pattern.
func extractLeadingClass(tree *ast.Tree, children []int) (ast.ByteSet, bool, bool) {
	for _, idx := range children {
		n := tree.At(idx)
		if n.Kind == ast.KindAnchor && n.AnchorKind == ast.AnchorStart {
			continue
		}
		if n.Kind == ast.KindClass && n.Min >= 1 {
			return n.Class, n.Negated, true
		}
		break
	}
	return ast.ByteSet{}, false, false
}

// extractRequiredLiteral finds the longest consecutive run of fixed
// literal bytes anywhere in children (not necessarily at the start),
// usable as a required-substring prefilter even when it's not a prefix.
func extractRequiredLiteral(tree *ast.Tree, children []int) []byte {
	var best, cur []byte
	flush := func() {
		if len(cur) > len(best) {
			best = cur
		}
		cur = nil
	}
	for _, idx := range children {
		n := tree.At(idx)
		if n.Kind == ast.KindElement && !n.IsQuantified() {
			cur = append(cur, n.Byte)
			continue
		}
		flush()
	}
	flush()
	return best
}
