package commands

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"event-planner/internal/models"
	"event-planner/internal/service"
)

func eventCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "event",
		Short: "Manage events",
	}
	cmd.AddCommand(eventAddCmd(), eventUpdateCmd(), eventDeleteCmd(), eventListCmd(), eventShowCmd())
	return cmd
}

func eventFlags(cmd *cobra.Command, f *service.EventFields) {
	cmd.Flags().StringVar(&f.Name, "name", "", "event name")
	cmd.Flags().StringVar(&f.Date, "date", "", "event date")
	cmd.Flags().StringVar(&f.Location, "location", "", "venue")
	cmd.Flags().StringVar(&f.Theme, "theme", "", "theme")
	cmd.Flags().StringVar(&f.Timeline, "timeline", "", "timeline notes")
}

// event add --name <name> --date <date>: create an event.
func eventAddCmd() *cobra.Command {
	var f service.EventFields
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create an event",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := appCtx.events.AddEvent(cmd.Context(), f)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "added event %d\n", e.ID)
			return nil
		},
	}
	eventFlags(cmd, &f)
	return cmd
}

// event update <id>: replace all fields of an event.
func eventUpdateCmd() *cobra.Command {
	var f service.EventFields
	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Replace an event's details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			if _, err := appCtx.events.UpdateEvent(cmd.Context(), id, f); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "updated event %d\n", id)
			return nil
		},
	}
	eventFlags(cmd, &f)
	return cmd
}

func eventDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete an event",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return appCtx.events.DeleteEvent(cmd.Context(), id)
		},
	}
}

func eventListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List events",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			events, err := appCtx.events.ListEvents(cmd.Context())
			if err != nil {
				return err
			}
			return table(cmd.OutOrStdout(), "ID\tNAME\tDATE\tLOCATION\tTHEME", func(w io.Writer) {
				for _, e := range events {
					fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n", e.ID, e.Name, e.Date, e.Location, e.Theme)
				}
			})
		},
	}
}

func eventShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show one event with its timeline",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			e, err := appCtx.events.GetEvent(cmd.Context(), id)
			if err != nil {
				return err
			}
			printEvent(cmd.OutOrStdout(), e)
			return nil
		},
	}
}

func printEvent(out io.Writer, e models.Event) {
	fmt.Fprintf(out, "Name:     %s\n", e.Name)
	fmt.Fprintf(out, "Date:     %s\n", e.Date)
	fmt.Fprintf(out, "Location: %s\n", e.Location)
	fmt.Fprintf(out, "Theme:    %s\n", e.Theme)
	if e.Timeline != "" {
		fmt.Fprintf(out, "Timeline:\n%s\n", e.Timeline)
	}
}
