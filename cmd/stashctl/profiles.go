package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/stashbox-hq/stashbox-transfer/pkg/profiles"
)

func ProfilesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "profiles",
		Short: "List configured storage profiles",
		RunE: func(_ *cobra.Command, _ []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			reg, err := profiles.Load(cfg.ProfilesFile)
			if err != nil {
				return err
			}

			def, _ := reg.Default()
			for _, p := range reg.All() {
				marker := " "
				if p.ID == def.ID {
					marker = "*"
				}
				fmt.Printf("%s %-16s %s\n", marker, p.ID, p.BaseURL)
			}
			return nil
		},
	}
}
