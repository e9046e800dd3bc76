package treap

import (
	"fmt"
	"io"
	"strings"
)

// WriteDot outputs the internal structure of sequence h in Graphviz DOT
// format (for debugging purposes). Pending tags are shown as they are, i.e.
// children of a node tagged for reversal are drawn in un-reversed order.
func (t *Treap[T]) WriteDot(h Handle, w io.Writer) error {
	if err := t.validate(h); err != nil {
		return err
	}
	var nodelist, edgelist strings.Builder
	nilid := len(t.nodes) + 1
	stack := []Handle{}
	if h != Nil {
		stack = append(stack, h)
	}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		n := &t.nodes[cur]
		fmt.Fprintf(&nodelist, "\"%d\" [label=\"%v\\nΣ%v #%d\\n%s\"%s];\n",
			cur, n.value, n.sum, n.size, tagLabel(n), nodeDotStyles(n))
		for _, child := range [2]Handle{n.left, n.right} {
			if child == Nil {
				if n.left != Nil || n.right != Nil {
					fmt.Fprintf(&nodelist, "\"%d\" %s;\n", nilid, emptyNode())
					fmt.Fprintf(&edgelist, "\"%d\" -> \"%d\";\n", cur, nilid)
					nilid++
				}
				continue
			}
			fmt.Fprintf(&edgelist, "\"%d\" -> \"%d\";\n", cur, child)
			stack = append(stack, child)
		}
	}
	var err error
	write := func(s string) {
		if err == nil {
			_, err = io.WriteString(w, s)
		}
	}
	write("strict digraph {\n")
	write("\tnode [fontname=Arial,fontsize=12];\n")
	write(nodelist.String())
	write(edgelist.String())
	write("}\n")
	return err
}

func tagLabel[T Scalar](n *node[T]) string {
	var tags []string
	if n.assigned {
		tags = append(tags, fmt.Sprintf("=%v", n.assignTo))
	}
	if n.add != 0 {
		tags = append(tags, fmt.Sprintf("+%v", n.add))
	}
	if n.rev {
		tags = append(tags, "rev")
	}
	return strings.Join(tags, " ")
}

func emptyNode() string {
	return "[label=\"\",color=black,shape=circle,fixedsize=true,width=.2]"
}

func nodeDotStyles[T Scalar](n *node[T]) string {
	s := ",style=filled,shape=box"
	if n.tagged() {
		s += ",fillcolor=\"#FFCCAA\""
	} else {
		s += ",fillcolor=\"#a3d7e4\""
	}
	return s
}
