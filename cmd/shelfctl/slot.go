package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
)

var slotCmd = &cobra.Command{
	Use:   "slot <enclosure-id> <slot> <clear|fault|identify>",
	Short: "Set a drive slot's indicator state",
	Long: `Set a drive slot's identify/fault indicator.

IDENTIFY and FAULT raise the corresponding indicator; CLEAR lowers both.
The command is routed to the backend that owns the hardware: the generic
SES control page, the sysfs toggle on H series, or the dedicated NVMe
backplane controls.`,
	Args: cobra.ExactArgs(3),
	Run: func(cmd *cobra.Command, args []string) {
		slot, err := strconv.Atoi(args[1])
		if err != nil {
			fatal(fmt.Errorf("invalid slot number %q", args[1]))
		}
		status := strings.ToUpper(args[2])

		svc, closer, err := newService()
		if err != nil {
			fatal(err)
		}
		defer closer()

		if err := svc.SetSlotStatus(args[0], slot, status); err != nil {
			fatal(err)
		}

		fmt.Printf("%s slot %d on %s\n", status, slot, args[0])
	},
}
