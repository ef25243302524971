// Package commands defines the event-planner CLI and wires dependencies for
// subcommands.
//
// Commands
//
//   - event      Create, update, delete and list events
//   - guest      Manage the guest list, RSVPs and invitations
//   - task       Manage the to-do list
//   - budget     Manage budget lines and show the total
//   - contacts   List the configured vCard address book
//   - auth       Sign up, sign in and sign out
//   - serve      Run the HTTP API and the WhatsApp RSVP listener
//   - whatsapp   Link this planner to a WhatsApp account
//
// # Implementation
//
// The root command loads configuration, opens the planner database and builds
// the services before any subcommand runs. The WhatsApp client is created
// only when WHATSAPP_ENABLED is set; otherwise messages go to the log.
package commands
