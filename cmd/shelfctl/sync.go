package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var syncCmd = &cobra.Command{
	Use:   "sync <disk-identifier>",
	Short: "Sync a disk's persisted enclosure/slot pointer",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		retry, _ := cmd.Flags().GetBool("retry")

		svc, closer, err := newService()
		if err != nil {
			fatal(err)
		}
		defer closer()

		if err := svc.SyncDisk(args[0], retry); err != nil {
			fatal(err)
		}

		fmt.Printf("synced %s\n", args[0])
	},
}

func init() {
	syncCmd.Flags().Bool("retry", false, "Re-check once after 60s if the disk's slot is not found")
}
