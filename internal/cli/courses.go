package cli

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/akademus/akademus-api/internal/client"
)

func parseID(raw string) (uuid.UUID, error) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid id %q", raw)
	}
	return id, nil
}

func courseRows(courses ...client.Course) [][]string {
	rows := make([][]string, 0, len(courses))
	for _, c := range courses {
		rows = append(rows, []string{c.ID.String(), c.Title, c.CreatedAt.Format("2006-01-02 15:04")})
	}
	return rows
}

var courseHeader = []string{"ID", "TITLE", "CREATED"}

func (a *app) coursesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "courses",
		Short: "Manage your courses",
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List your courses",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			courses, err := a.client.ListCourses(cmd.Context())
			if err != nil {
				return err
			}
			return a.printTable(courses, courseHeader, courseRows(courses...))
		},
	}

	get := &cobra.Command{
		Use:   "get <id>",
		Short: "Show one course",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			course, err := a.client.GetCourse(cmd.Context(), id)
			if err != nil {
				return err
			}
			return a.printTable(course, courseHeader, courseRows(*course))
		},
	}

	var title string
	create := &cobra.Command{
		Use:   "create",
		Short: "Create a course",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			course, err := a.client.CreateCourse(cmd.Context(), client.CreateCourseInput{Title: title})
			if err != nil {
				return err
			}
			return a.printTable(course, courseHeader, courseRows(*course))
		},
	}
	create.Flags().StringVar(&title, "title", "", "course title")
	_ = create.MarkFlagRequired("title")

	var newTitle string
	update := &cobra.Command{
		Use:   "update <id>",
		Short: "Rename a course",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			var in client.UpdateCourseInput
			if cmd.Flags().Changed("title") {
				in.Title = &newTitle
			}
			course, err := a.client.UpdateCourse(cmd.Context(), id, in)
			if err != nil {
				return err
			}
			return a.printTable(course, courseHeader, courseRows(*course))
		},
	}
	update.Flags().StringVar(&newTitle, "title", "", "new title")

	del := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a course",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			if err := a.client.DeleteCourse(cmd.Context(), id); err != nil {
				return err
			}
			a.printf("Deleted course %s\n", id)
			return nil
		},
	}

	cmd.AddCommand(list, get, create, update, del)
	return cmd
}
