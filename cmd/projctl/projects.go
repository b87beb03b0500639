package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/GoSim-25-26J-441/project-tracker/internal/board"
	"github.com/GoSim-25-26J-441/project-tracker/internal/client"
	"github.com/GoSim-25-26J-441/project-tracker/internal/projects/domain"
)

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid project id %q", s)
	}
	return id, nil
}

func parseStatus(s string) (domain.Status, error) {
	st := domain.Status(s)
	if !st.Valid() {
		return "", fmt.Errorf("unknown status %q (want in_progress or completed)", s)
	}
	return st, nil
}

func newListCmd(a *app) *cobra.Command {
	var status, sort string
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List your projects",
		Long: `List projects, optionally filtered by status and sorted.

Examples:
  projctl list
  projctl list --status completed
  projctl list --sort due_date-asc`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.requireLogin(); err != nil {
				return err
			}
			filter, err := board.ParseFilter(status)
			if err != nil {
				return err
			}
			option, err := board.ParseSort(sort)
			if err != nil {
				return err
			}
			field, order := option.Split()

			items, err := a.client.ListProjects(cmd.Context(), client.ListOptions{
				Status: string(filter),
				Sort:   field,
				Order:  order,
			})
			if err != nil {
				return err
			}
			if asJSON {
				return writeJSON(cmd.OutOrStdout(), items)
			}
			return writeTable(cmd.OutOrStdout(), items)
		},
	}
	cmd.Flags().StringVar(&status, "status", "all", "filter: all, in_progress or completed")
	cmd.Flags().StringVar(&sort, "sort", string(board.SortTitleAsc), "title-asc, title-desc, due_date-asc or due_date-desc")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON")
	return cmd
}

func newShowCmd(a *app) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "show ID",
		Short: "Show one project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.requireLogin(); err != nil {
				return err
			}
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			p, err := a.client.GetProject(cmd.Context(), id)
			if err != nil {
				return err
			}
			if asJSON {
				return writeJSON(cmd.OutOrStdout(), p)
			}
			writeDetail(cmd.OutOrStdout(), *p)
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON")
	return cmd
}

func newCreateCmd(a *app) *cobra.Command {
	form := board.NewForm()
	var status string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a project",
		Long: `Create a project. Only the title is required; status defaults to in_progress.

Examples:
  projctl create --title "Write spec" --due 2024-03-01`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.requireLogin(); err != nil {
				return err
			}
			st, err := parseStatus(status)
			if err != nil {
				return err
			}
			form.Status = st

			in, err := form.NewProject()
			if err != nil {
				return err
			}
			p, err := a.client.CreateProject(cmd.Context(), in)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created project %d\n", p.ID)
			return nil
		},
	}
	cmd.Flags().StringVar(&form.Title, "title", "", "project title")
	cmd.Flags().StringVar(&form.Description, "description", "", "project description")
	cmd.Flags().StringVar(&form.DueDate, "due", "", "due date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&status, "status", string(domain.DefaultStatus), "in_progress or completed")
	return cmd
}

func newUpdateCmd(a *app) *cobra.Command {
	var title, description, due, status string

	cmd := &cobra.Command{
		Use:   "update ID",
		Short: "Update fields of a project",
		Long: `Update only the fields given as flags. An empty --description or --due
clears the stored value.

Examples:
  projctl update 4 --status completed
  projctl update 4 --due ""`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.requireLogin(); err != nil {
				return err
			}
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			flags := cmd.Flags()
			var patch client.ProjectPatch
			if flags.Changed("title") {
				patch.Title = &title
			}
			if flags.Changed("description") {
				patch.Description = &description
			}
			if flags.Changed("due") {
				patch.DueDate = &due
			}
			if flags.Changed("status") {
				st := domain.Status(status)
				patch.Status = &st
			}
			if patch == (client.ProjectPatch{}) {
				return fmt.Errorf("nothing to update, pass at least one of --title, --description, --due, --status")
			}

			p, err := a.client.UpdateProject(cmd.Context(), id, patch)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated project %d\n", p.ID)
			return nil
		},
	}
	cmd.Flags().StringVar(&title, "title", "", "new title")
	cmd.Flags().StringVar(&description, "description", "", "new description")
	cmd.Flags().StringVar(&due, "due", "", "new due date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&status, "status", "", "in_progress or completed")
	return cmd
}

func newDeleteCmd(a *app) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "delete ID",
		Short: "Permanently delete a project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.requireLogin(); err != nil {
				return err
			}
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			if !yes {
				p, err := a.client.GetProject(cmd.Context(), id)
				if err != nil {
					return err
				}
				answer, err := prompt(cmd.OutOrStdout(), bufio.NewReader(cmd.InOrStdin()),
					fmt.Sprintf("Delete project %d %q? [y/N]: ", p.ID, p.Title))
				if err != nil {
					return err
				}
				if !strings.EqualFold(answer, "y") && !strings.EqualFold(answer, "yes") {
					fmt.Fprintln(cmd.OutOrStdout(), "Cancelled")
					return nil
				}
			}

			if err := a.client.DeleteProject(cmd.Context(), id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted project %d\n", id)
			return nil
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip the confirmation prompt")
	return cmd
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func dueString(p domain.Project) string {
	if p.DueDate == nil {
		return "-"
	}
	return p.DueDate.String()
}

func writeTable(w io.Writer, items []domain.Project) error {
	if len(items) == 0 {
		_, err := fmt.Fprintln(w, "No projects")
		return err
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tSTATUS\tDUE\tTITLE")
	for _, p := range items {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n", p.ID, p.Status, dueString(p), p.Title)
	}
	return tw.Flush()
}

func writeDetail(w io.Writer, p domain.Project) {
	desc := "-"
	if p.Description != nil {
		desc = *p.Description
	}
	fmt.Fprintf(w, "ID:          %d\n", p.ID)
	fmt.Fprintf(w, "Title:       %s\n", p.Title)
	fmt.Fprintf(w, "Status:      %s\n", p.Status)
	fmt.Fprintf(w, "Due:         %s\n", dueString(p))
	fmt.Fprintf(w, "Description: %s\n", desc)
	fmt.Fprintf(w, "Created:     %s\n", p.CreatedAt.Format("2006-01-02 15:04"))
	fmt.Fprintf(w, "Updated:     %s\n", p.UpdatedAt.Format("2006-01-02 15:04"))
}
