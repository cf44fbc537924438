package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aanand-mishra/timezone-buddy/internal/notify"
	"github.com/aanand-mishra/timezone-buddy/internal/transfer"
)

func newExportCmd(a *app) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the buddy list to stdout as YAML or JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			f, err := transfer.ParseFormat(format)
			if err != nil {
				return err
			}

			svc, err := a.service()
			if err != nil {
				return err
			}
			list, err := svc.List(cmd.Context())
			if err != nil {
				return err
			}
			return transfer.Export(cmd.OutOrStdout(), list, f)
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", string(transfer.YAML), "yaml or json")
	return cmd
}

func newImportCmd(a *app) *cobra.Command {
	var replace bool

	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Add buddies from a YAML or JSON export",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			toast := notify.Show(cmd.OutOrStdout(), "Importing buddies...")

			n, err := func() (int, error) {
				fh, err := a.fs.Open(path)
				if err != nil {
					return 0, err
				}
				defer fh.Close()

				inputs, err := transfer.Import(fh, transfer.FormatForPath(path))
				if err != nil {
					return 0, err
				}

				svc, err := a.service()
				if err != nil {
					return 0, err
				}
				if _, err := svc.Replace(cmd.Context(), inputs, !replace); err != nil {
					return 0, err
				}
				return len(inputs), nil
			}()
			if err != nil {
				toast.Fail("Failed to import buddies", err)
				return errReported{err}
			}

			toast.Succeed(fmt.Sprintf("Imported %d buddies", n))
			return nil
		},
	}

	cmd.Flags().BoolVar(&replace, "replace", false, "replace the current list instead of appending")
	return cmd
}
