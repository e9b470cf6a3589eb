package cli

import (
	"strconv"

	"github.com/spf13/cobra"

	"github.com/akademus/akademus-api/internal/client"
)

var nodeHeader = []string{"ID", "COURSE", "TYPE", "FLASHCARD", "QUIZ", "CONTENT"}

func nodeRows(nodes ...client.Node) [][]string {
	rows := make([][]string, 0, len(nodes))
	for _, n := range nodes {
		rows = append(rows, []string{
			n.ID.String(),
			n.CourseID.String(),
			n.Type,
			strconv.FormatBool(n.IsFlashcard),
			strconv.FormatBool(n.IsQuizItem),
			preview(n.Content, 48),
		})
	}
	return rows
}

func preview(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}

func (a *app) nodesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "nodes",
		Short: "Manage course nodes",
	}

	list := &cobra.Command{
		Use:   "list <courseId>",
		Short: "List the nodes of a course",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			courseID, err := parseID(args[0])
			if err != nil {
				return err
			}
			nodes, err := a.client.ListNodes(cmd.Context(), courseID)
			if err != nil {
				return err
			}
			return a.printTable(nodes, nodeHeader, nodeRows(nodes...))
		},
	}

	get := &cobra.Command{
		Use:   "get <id>",
		Short: "Show one node",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			node, err := a.client.GetNode(cmd.Context(), id)
			if err != nil {
				return err
			}
			return a.printTable(node, nodeHeader, nodeRows(*node))
		},
	}

	var (
		courseRaw string
		in        client.CreateNodeInput
	)
	create := &cobra.Command{
		Use:   "create",
		Short: "Add a node to a course you own",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			courseID, err := parseID(courseRaw)
			if err != nil {
				return err
			}
			in.CourseID = courseID
			node, err := a.client.CreateNode(cmd.Context(), in)
			if err != nil {
				return err
			}
			return a.printTable(node, nodeHeader, nodeRows(*node))
		},
	}
	create.Flags().StringVar(&courseRaw, "course", "", "course id")
	create.Flags().StringVar(&in.Type, "type", "TEXT", "TEXT, IMAGE, VIDEO or AUDIO")
	create.Flags().StringVar(&in.Content, "content", "", "node content")
	create.Flags().BoolVar(&in.IsFlashcard, "flashcard", false, "mark as flashcard")
	create.Flags().BoolVar(&in.IsQuizItem, "quiz", false, "mark as quiz item")
	_ = create.MarkFlagRequired("course")
	_ = create.MarkFlagRequired("content")

	var (
		typ, content    string
		flashcard, quiz bool
	)
	update := &cobra.Command{
		Use:   "update <id>",
		Short: "Change a node; only the flags given are sent",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			var patch client.UpdateNodeInput
			flags := cmd.Flags()
			if flags.Changed("type") {
				patch.Type = &typ
			}
			if flags.Changed("content") {
				patch.Content = &content
			}
			if flags.Changed("flashcard") {
				patch.IsFlashcard = &flashcard
			}
			if flags.Changed("quiz") {
				patch.IsQuizItem = &quiz
			}
			node, err := a.client.UpdateNode(cmd.Context(), id, patch)
			if err != nil {
				return err
			}
			return a.printTable(node, nodeHeader, nodeRows(*node))
		},
	}
	update.Flags().StringVar(&typ, "type", "", "TEXT, IMAGE, VIDEO or AUDIO")
	update.Flags().StringVar(&content, "content", "", "node content")
	update.Flags().BoolVar(&flashcard, "flashcard", false, "mark as flashcard")
	update.Flags().BoolVar(&quiz, "quiz", false, "mark as quiz item")

	del := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a node",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			if err := a.client.DeleteNode(cmd.Context(), id); err != nil {
				return err
			}
			a.printf("Deleted node %s\n", id)
			return nil
		},
	}

	cmd.AddCommand(list, get, create, update, del)
	return cmd
}
