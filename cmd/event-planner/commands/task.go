package commands

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

func taskCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "task",
		Short: "Manage the to-do list",
	}
	cmd.AddCommand(taskAddCmd(), taskDoneCmd(), taskRenameCmd(), taskDeleteCmd(), taskListCmd())
	return cmd
}

func taskAddCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "add <title> <description>",
		Short: "Add a task",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := appCtx.tasks.AddTask(cmd.Context(), args[0], args[1])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "added task %d\n", t.ID)
			return nil
		},
	}
}

// task done <id> [--undo]: set the completion flag.
func taskDoneCmd() *cobra.Command {
	var undo bool
	cmd := &cobra.Command{
		Use:   "done <id>",
		Short: "Mark a task completed",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			_, err = appCtx.tasks.ToggleCompletion(cmd.Context(), id, !undo)
			return err
		},
	}
	cmd.Flags().BoolVar(&undo, "undo", false, "mark the task open again")
	return cmd
}

func taskRenameCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rename <id> <title>",
		Short: "Change a task's title",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			_, err = appCtx.tasks.RenameTask(cmd.Context(), id, args[1])
			return err
		},
	}
}

func taskDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return appCtx.tasks.DeleteTask(cmd.Context(), id)
		},
	}
}

func taskListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List tasks",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			tasks, err := appCtx.tasks.ListTasks(cmd.Context())
			if err != nil {
				return err
			}
			return table(cmd.OutOrStdout(), "ID\tDONE\tTITLE\tDESCRIPTION", func(w io.Writer) {
				for _, t := range tasks {
					done := " "
					if t.IsCompleted {
						done = "x"
					}
					fmt.Fprintf(w, "%d\t[%s]\t%s\t%s\n", t.ID, done, t.Title, t.Description)
				}
			})
		},
	}
}
