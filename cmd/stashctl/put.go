package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

const FlagKey = "key"

func PutCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "put <path>...",
		Short: "Upload local files to storage",
		Long: `Upload one or more local files. A single file can be stored under an
explicit --key; otherwise every file is keyed by its base name.`,
		Example: `  stashctl put ./report.pdf
  stashctl put --key docs/report.pdf ./report.pdf
  stashctl put ./exports/*.csv`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			key, err := cmd.Flags().GetString(FlagKey)
			if err != nil {
				return err
			}
			if key != "" && len(args) > 1 {
				return fmt.Errorf("--key only applies to a single file upload")
			}

			runtime, log, err := newRuntime(cmd)
			if err != nil {
				return err
			}
			defer log.Close()

			if len(args) == 1 && key != "" {
				file, err := runtime.Put(cmd.Context(), key, args[0])
				if err != nil {
					return err
				}
				fmt.Println(file.Key)
				return nil
			}

			files, err := runtime.PutMany(cmd.Context(), args)
			for _, f := range files {
				fmt.Println(f.Key)
			}
			return err
		},
	}

	cmd.Flags().String(FlagKey, "", "storage key for a single file (default: the file's base name)")

	return cmd
}
