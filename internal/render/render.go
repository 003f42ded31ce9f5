// Package render draws index-linked binary trees as text.
package render

import (
	"fmt"
	"strings"
)

// Empty is what an empty tree renders as.
const Empty = "────┤ empty"

// Accessors describe how to walk a tree whose nodes are addressed by index.
type Accessors struct {
	Left  func(n int32) int32
	Right func(n int32) int32
	Label func(n int32) string
}

// Tree renders the tree rooted at root sideways: the right subtree is printed
// above its parent and the left subtree below. null marks an absent child.
func Tree(root, null int32, acc Accessors) string {
	if root == null {
		return Empty
	}
	var sb strings.Builder
	write(&sb, root, null, acc, "", false, true)
	return sb.String()
}

// Label formats a node as "(key, extra)".
func Label(key any, format string, args ...any) string {
	return fmt.Sprintf("(%v, %s)", key, fmt.Sprintf(format, args...))
}

func write(sb *strings.Builder, n, null int32, acc Accessors, prefix string, tail, isRoot bool) {
	if r := acc.Right(n); r != null {
		write(sb, r, null, acc, rightNodePrefix(prefix, tail), false, false)
	}
	fmt.Fprintf(sb, "%s─┤ %s\n", branch(prefix, isRoot, tail), acc.Label(n))
	if l := acc.Left(n); l != null {
		write(sb, l, null, acc, leftNodePrefix(prefix, tail, isRoot), true, false)
	}
}

func branch(prefix string, isRoot bool, tail bool) string {
	if isRoot {
		return prefix + "───"
	} else if tail {
		return prefix + "└──"
	}
	return prefix + "┌──"
}

func rightNodePrefix(prefix string, tail bool) string {
	if tail {
		return prefix + "│\t"
	}
	return prefix + "\t"
}

func leftNodePrefix(prefix string, tail bool, isRoot bool) string {
	if tail || isRoot {
		return prefix + "\t"
	}
	return prefix + "│\t"
}
