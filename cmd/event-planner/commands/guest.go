package commands

import (
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"event-planner/internal/models"
)

func guestCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "guest",
		Short: "Manage the guest list",
	}
	cmd.AddCommand(
		guestAddCmd(),
		guestImportCmd(),
		guestRsvpCmd(),
		guestInvitedCmd(),
		guestRemoveCmd(),
		guestListCmd(),
		guestSummaryCmd(),
		guestInviteCmd(),
	)
	return cmd
}

func guestAddCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "add <name> <phone>",
		Short: "Add a guest by name and phone number",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := appCtx.guests.ImportGuest(cmd.Context(), args[0], args[1])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "added guest %d\n", g.ID)
			return nil
		},
	}
}

// guest import <ref>: add a guest from the address book.
func guestImportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import <ref>",
		Short: "Add a guest from the address book (vCard UID, position, or WhatsApp number)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := appCtx.guests.ImportContact(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "imported %s (%s) as guest %d\n", g.Name, g.PhoneNumber, g.ID)
			return nil
		},
	}
}

func guestRsvpCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rsvp <id> <attending|not-attending|no-response>",
		Short: "Record a guest's RSVP",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			status, err := models.ParseRSVPStatus(args[1])
			if err != nil {
				return err
			}
			g, err := appCtx.guests.SetRsvpStatus(cmd.Context(), id, status)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", g.Name, g.RSVPStatus.Label())
			return nil
		},
	}
}

func guestInvitedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "invited <id> <true|false>",
		Short: "Mark a guest as invited or not",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			invited, err := strconv.ParseBool(args[1])
			if err != nil {
				return fmt.Errorf("invalid flag value %q", args[1])
			}
			_, err = appCtx.guests.SetInvited(cmd.Context(), id, invited)
			return err
		},
	}
}

func guestRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remove <id>",
		Short: "Remove a guest",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return appCtx.guests.RemoveGuest(cmd.Context(), id)
		},
	}
}

func guestListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List guests",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			guests, err := appCtx.guests.ListGuests(cmd.Context())
			if err != nil {
				return err
			}
			return table(cmd.OutOrStdout(), "ID\tNAME\tPHONE\tINVITED\tRSVP", func(w io.Writer) {
				for _, g := range guests {
					fmt.Fprintf(w, "%d\t%s\t%s\t%t\t%s\n", g.ID, g.Name, g.PhoneNumber, g.IsInvited, g.RSVPStatus.Label())
				}
			})
		},
	}
}

func guestSummaryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "summary",
		Short: "Count guests per RSVP status",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := appCtx.guests.RsvpSummary(cmd.Context())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Attending:     %d\n", s.Attending)
			fmt.Fprintf(out, "Not attending: %d\n", s.NotAttending)
			fmt.Fprintf(out, "No response:   %d\n", s.NoResponse)
			return nil
		},
	}
}

// guest invite <id>...: message the selected guests and mark them invited.
func guestInviteCmd() *cobra.Command {
	var message string
	cmd := &cobra.Command{
		Use:   "invite <id>...",
		Short: "Send the invitation to the selected guests",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ids := make([]int64, 0, len(args))
			for _, arg := range args {
				id, err := parseID(arg)
				if err != nil {
					return err
				}
				ids = append(ids, id)
			}
			if err := appCtx.connectWhatsApp(cmd.Context()); err != nil {
				return err
			}
			report, err := appCtx.rsvp.SendInvitations(cmd.Context(), ids, message)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, o := range report.Outcomes {
				if o.Err != nil {
					fmt.Fprintf(out, "failed  %s: %v\n", o.PhoneNumber, o.Err)
					continue
				}
				fmt.Fprintf(out, "sent    %s\n", o.PhoneNumber)
			}
			if !report.OK() {
				return fmt.Errorf("%d of %d invitations failed", len(report.Failed()), len(report.Outcomes))
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&message, "message", "m", "", "invitation text (default $INVITE_MESSAGE)")
	return cmd
}
