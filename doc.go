// Package ordtree provides self-balancing ordered-key sets.
//
// Two independent implementations share one contract, Set:
//
//   - avl.Tree keeps every node's subtrees within one level of height of each
//     other, which bounds the depth to O(log n) deterministically.
//   - treap.Treap gives every node a random priority and keeps the tree in
//     max-heap order by priority, which bounds the depth to O(log n) in
//     expectation.
//
// Both store nodes in a slice owned by the tree and walk it iteratively, so no
// operation recurses proportionally to the tree height. Neither is safe for
// concurrent mutation.
//
// The bench package times the two against each other.
package ordtree
