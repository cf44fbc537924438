package cli

import (
	"github.com/spf13/cobra"

	"github.com/aanand-mishra/timezone-buddy/internal/buddies"
	"github.com/aanand-mishra/timezone-buddy/internal/notify"
)

// inputFlags binds the buddy form fields to a command's flags.
func inputFlags(cmd *cobra.Command, in *buddies.Input) {
	cmd.Flags().StringVarP(&in.Name, "name", "n", "", "display name")
	cmd.Flags().StringVar(&in.TwitterHandle, "twitter", "", "Twitter handle, used for the avatar")
	cmd.Flags().StringVar(&in.TZ, "tz", "", "IANA timezone, e.g. Europe/London (see the zones command)")
}

func newAddCmd(a *app) *cobra.Command {
	var in buddies.Input

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a buddy",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			toast := notify.Show(cmd.OutOrStdout(), "Adding buddy...")

			svc, err := a.service()
			if err == nil {
				_, _, err = svc.Create(cmd.Context(), in)
			}
			if err != nil {
				toast.Fail("Failed to add buddy", err)
				return errReported{err}
			}

			toast.Succeed("Buddy added")
			return nil
		},
	}

	inputFlags(cmd, &in)
	return cmd
}

func newEditCmd(a *app) *cobra.Command {
	var in buddies.Input

	cmd := &cobra.Command{
		Use:   "edit <position>",
		Short: "Edit the buddy at a list position",
		Long:  "Edit the buddy at a list position. Fields without a flag keep their current value.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			index, err := position(args[0])
			if err != nil {
				return err
			}

			toast := notify.Show(cmd.OutOrStdout(), "Updating buddy...")

			err = func() error {
				svc, err := a.service()
				if err != nil {
					return err
				}
				current, err := svc.Get(cmd.Context(), index)
				if err != nil {
					return err
				}

				flags := cmd.Flags()
				if !flags.Changed("name") {
					in.Name = current.Name
				}
				if !flags.Changed("twitter") {
					in.TwitterHandle = current.TwitterHandle
				}
				if !flags.Changed("tz") {
					in.TZ = current.TZ
				}

				_, err = svc.Update(cmd.Context(), index, in)
				return err
			}()
			if err != nil {
				toast.Fail("Failed to update buddy", err)
				return errReported{err}
			}

			toast.Succeed("Buddy updated")
			return nil
		},
	}

	inputFlags(cmd, &in)
	return cmd
}

func newDeleteCmd(a *app) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:     "delete <position>",
		Aliases: []string{"rm"},
		Short:   "Delete the buddy at a list position",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			index, err := position(args[0])
			if err != nil {
				return err
			}

			if !yes && !notify.Confirm(cmd.InOrStdin(), cmd.OutOrStdout(),
				"Delete this buddy?", "This action cannot be undone.", "Delete") {
				return nil
			}

			toast := notify.Show(cmd.OutOrStdout(), "Deleting buddy...")

			svc, err := a.service()
			if err == nil {
				_, err = svc.Delete(cmd.Context(), index)
			}
			if err != nil {
				toast.Fail("Failed to delete buddy", err)
				return errReported{err}
			}

			toast.Succeed("Buddy deleted")
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip the confirmation prompt")
	return cmd
}

func newResetCmd(a *app) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Remove every buddy",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !yes && !notify.Confirm(cmd.InOrStdin(), cmd.OutOrStdout(),
				"Remove all buddies?", "This action cannot be undone.", "Remove") {
				return nil
			}

			toast := notify.Show(cmd.OutOrStdout(), "Removing buddies...")

			svc, err := a.service()
			if err == nil {
				err = svc.Clear(cmd.Context())
			}
			if err != nil {
				toast.Fail("Failed to remove buddies", err)
				return errReported{err}
			}

			toast.Succeed("Buddies removed")
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip the confirmation prompt")
	return cmd
}
