package commands

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

func contactsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "contacts",
		Short: "Browse the address book",
	}
	cmd.AddCommand(contactsListCmd())
	return cmd
}

// contacts list: show the vCard entries that guest import can reference.
func contactsListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List contacts in the vCard file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if appCtx.vcard == nil {
				return errors.New("no vCard file configured, set VCARD_PATH")
			}
			entries, err := appCtx.vcard.List(cmd.Context())
			if err != nil {
				return err
			}
			return table(cmd.OutOrStdout(), "REF\tNAME\tPHONE", func(w io.Writer) {
				for _, e := range entries {
					fmt.Fprintf(w, "%s\t%s\t%s\n", e.Ref, e.Contact.DisplayName, e.Contact.PhoneNumber)
				}
			})
		},
	}
}
