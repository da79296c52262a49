// Package canon assigns canonical identities and depth weights to the
// vertices of an ordered single-root DAG.
//
// # Overview
//
// [Canonicalize] walks a DAG ordered by [dag.Order] so that every vertex is
// visited after all of its children. A leaf is identified by its label. An
// internal vertex is identified by its label followed by the identities of its
// children in canonical order:
//
//	a(d,b(c))
//
// Two vertices, in the same graph or in different graphs, receive the same
// identity exactly when the subtrees below them are isomorphic as ordered
// labeled trees. Package bigdag uses identities to collapse isomorphic subtrees
// into one shared node.
//
// The depth weight of a vertex is the number of edges in its unfolded subtree:
// zero for a leaf and the sum of one plus the child weight over all children
// otherwise.
//
// # Identity Strategies
//
// [StringIdentity] builds the nested string shown above. It is the reference
// form and the default. Identities grow with subtree size, so for deep DAGs
// [HashedIdentity] replaces every identity by a 64-bit xxhash digest of the
// label and the child digests. Both strategies partition vertices the same way
// unless two distinct subtrees collide in 64 bits.
//
// Labels containing "(", ")", "," or a backslash are written with each of
// those characters preceded by a backslash, so an identity always parses back
// into exactly one tree. Labels without them appear verbatim:
//
//	a(c\,b)   a with one child labeled "c,b"
//	a(c,b)    a with children c and b
package canon
