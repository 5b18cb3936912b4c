package main

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/joshuapare/avikit/pkg/ast"
)

var treeDepth int

func init() {
	cmd := newTreeCmd()
	cmd.Flags().IntVar(&treeDepth, "depth", 0, "Maximum depth (0 for all)")
	rootCmd.AddCommand(cmd)
}

func newTreeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tree <file>",
		Short: "Display the list/chunk structure",
		Long: `The tree command prints every list and chunk with its declared size,
pad byte and decoded record layout.

Example:
  avictl tree clip.avi
  avictl tree clip.avi --depth 2
  avictl tree clip.avi --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTree(args)
		},
	}
	return cmd
}

type treeNode struct {
	Path    string `json:"path"`
	Depth   int    `json:"depth"`
	ID      string `json:"id"`
	Type    string `json:"type,omitempty"`
	Size    uint32 `json:"size"`
	Padding int    `json:"padding"`
	Record  string `json:"record,omitempty"`
	Offset  int    `json:"offset"`
}

func runTree(args []string) error {
	f, err := openParsed(args[0])
	if err != nil {
		return err
	}
	defer f.Close()

	tree, err := f.Tree()
	if err != nil {
		return err
	}

	var nodes []treeNode
	err = tree.Walk(func(n ast.Node, depth int, path string) error {
		if treeDepth > 0 && depth > treeDepth {
			return nil
		}
		tn := treeNode{Path: path, Depth: depth, ID: n.Tag().String(), Size: n.DeclaredSize()}
		switch v := n.(type) {
		case *ast.List:
			tn.Type = v.Type.String()
			tn.Padding = int(v.Size & 1)
			tn.Offset = v.Offset
		case *ast.Chunk:
			tn.Padding = v.Padding
			tn.Record = v.Payload.Kind().String()
			tn.Offset = v.Offset
		}
		nodes = append(nodes, tn)
		return nil
	})
	if err != nil {
		return err
	}

	if jsonOut {
		return printJSON(nodes)
	}

	for _, n := range nodes {
		indent := strings.Repeat("  ", n.Depth)
		if n.Type != "" {
			printInfo("%s%s '%s' size=%d\n", indent, n.ID, n.Type, n.Size)
			continue
		}
		line := indent + n.ID + " (" + n.Record + ")"
		printInfo("%s size=%d", line, n.Size)
		if n.Padding > 0 {
			printInfo(" +pad")
		}
		printInfo("\n")
	}
	return nil
}
