package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func DelCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "del <key>",
		Short:   "Delete a stored file",
		Example: "  stashctl del docs/report.pdf",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			runtime, log, err := newRuntime(cmd)
			if err != nil {
				return err
			}
			defer log.Close()

			file, err := runtime.Delete(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			fmt.Println(file.Key)
			return nil
		},
	}
}
