package main

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List detected enclosures",
	Run: func(cmd *cobra.Command, args []string) {
		jsonOut, _ := cmd.Flags().GetBool("json")

		svc, closer, err := newService()
		if err != nil {
			fatal(err)
		}
		defer closer()

		col, err := svc.Query()
		if err != nil {
			fatal(err)
		}

		if jsonOut {
			type row struct {
				Number     int    `json:"number"`
				ID         string `json:"id"`
				Name       string `json:"name"`
				Label      string `json:"label"`
				Model      string `json:"model"`
				Controller bool   `json:"controller"`
				Bsg        string `json:"bsg"`
				Slots      int    `json:"slots"`
			}
			var rows []row
			for _, enc := range col.All() {
				rows = append(rows, row{
					Number:     enc.Number,
					ID:         enc.ID,
					Name:       enc.Name,
					Label:      enc.DisplayName(),
					Model:      enc.Model,
					Controller: enc.Controller,
					Bsg:        enc.Bsg,
					Slots:      len(enc.Slots()),
				})
			}
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			if err := enc.Encode(rows); err != nil {
				fatal(err)
			}
			return
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "#\tID\tLABEL\tMODEL\tCTRL\tSLOTS\tBSG")
		for _, enc := range col.All() {
			ctrl := ""
			if enc.Controller {
				ctrl = "yes"
			}
			fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%d\t%s\n",
				enc.Number, enc.ID, enc.DisplayName(), enc.Model, ctrl, len(enc.Slots()), enc.Bsg)
		}
		w.Flush()
	},
}

func init() {
	listCmd.Flags().Bool("json", false, "Output as JSON")
}
