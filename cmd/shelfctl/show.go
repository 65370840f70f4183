package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

var showCmd = &cobra.Command{
	Use:   "show <enclosure-id>",
	Short: "Show one enclosure's element groups",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		withEvents, _ := cmd.Flags().GetBool("events")

		svc, closer, err := newService()
		if err != nil {
			fatal(err)
		}
		defer closer()

		enc, err := svc.GetByID(args[0])
		if err != nil {
			fatal(err)
		}

		fmt.Printf("%s (%s)\n", enc.DisplayName(), enc.ID)
		fmt.Printf("  model: %s  controller: %v  bsg: %s\n\n", enc.Model, enc.Controller, enc.Bsg)

		for _, group := range enc.Groups() {
			fmt.Println(group.Name)
			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			for _, el := range group.Elements {
				device := el.DeviceName
				if device == "" {
					device = "-"
				}
				fmt.Fprintf(w, "  %d\t%s\t%s\t%s\n", el.Slot, el.Status(), el.ValueString(), device)
			}
			w.Flush()
			fmt.Println()
		}

		if withEvents {
			events, err := svc.SlotEvents(enc.ID, 20)
			if err != nil {
				fatal(err)
			}
			fmt.Println("Recent slot commands")
			for _, ev := range events {
				fmt.Printf("  %s slot %d %s (%s)\n", ev.Status, ev.Slot, ev.ID, humanize.Time(ev.CreatedAt))
			}
		}
	},
}

func init() {
	showCmd.Flags().Bool("events", false, "Include recent slot-control commands")
}
