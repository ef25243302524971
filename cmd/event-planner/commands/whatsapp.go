package commands

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

func whatsappCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "whatsapp",
		Short: "Manage the WhatsApp link",
	}
	cmd.AddCommand(whatsappPairCmd())
	return cmd
}

// whatsapp pair: show the QR code and wait until the device is linked.
func whatsappPairCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "pair",
		Short: "Link this planner as a WhatsApp device",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if appCtx.whatsapp == nil {
				return errors.New("WhatsApp is disabled, set WHATSAPP_ENABLED=true")
			}
			if err := appCtx.connectWhatsApp(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "✅ Connected to WhatsApp!")
			return nil
		},
	}
}
