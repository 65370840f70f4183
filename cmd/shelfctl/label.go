package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var labelCmd = &cobra.Command{
	Use:   "label <enclosure-id> <label>",
	Short: "Assign a display label to an enclosure",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		svc, closer, err := newService()
		if err != nil {
			fatal(err)
		}
		defer closer()

		enc, err := svc.UpdateLabel(args[0], args[1])
		if err != nil {
			fatal(err)
		}

		fmt.Printf("enclosure %s labeled %q\n", enc.ID, enc.DisplayName())
	},
}
