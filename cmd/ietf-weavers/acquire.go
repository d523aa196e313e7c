// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/JacckNew/ietf-weavers/internal/acquire"
	"github.com/JacckNew/ietf-weavers/pkg/types"
)

const defaultDownloadDelay = 1 * time.Second

var acquireCmd = &cobra.Command{
	Use:   "acquire",
	Short: "Fetch mailing list archives from the IETF mail archive API",
	Long: `Acquire pages through the mail archive API for each requested mailing
list, merges the results with message-id deduplication, and writes a JSON
dump that the analyze command consumes.`,
	RunE: runAcquire,
}

func init() {
	acquireCmd.Flags().StringSlice("lists", nil, "mailing lists to fetch (required)")
	acquireCmd.Flags().String("output", "data/emails.json", "output file for the merged dump")
	acquireCmd.Flags().String("start-date", "", "earliest message date (YYYY-MM-DD)")
	acquireCmd.Flags().String("end-date", "", "latest message date (YYYY-MM-DD)")
	acquireCmd.Flags().Int("max-messages", 0, "cap messages per list (0 = unlimited)")
	acquireCmd.Flags().String("base-url", "", "mail archive API root")
	acquireCmd.Flags().Duration("delay", 0, "delay between consecutive page requests (default 1s)")

	viper.BindPFlag("acquisition.base_url", acquireCmd.Flags().Lookup("base-url"))
	viper.BindPFlag("acquisition.max_messages", acquireCmd.Flags().Lookup("max-messages"))

	rootCmd.AddCommand(acquireCmd)
}

func runAcquire(cmd *cobra.Command, args []string) error {
	lists, _ := cmd.Flags().GetStringSlice("lists")
	if len(lists) == 0 {
		return fmt.Errorf("provide at least one mailing list with --lists")
	}

	output, _ := cmd.Flags().GetString("output")
	startDate, _ := cmd.Flags().GetString("start-date")
	endDate, _ := cmd.Flags().GetString("end-date")
	delay, _ := cmd.Flags().GetDuration("delay")
	if delay == 0 {
		delay = defaultDownloadDelay
	}

	cfg := types.AcquisitionConfig{
		BaseURL:       viper.GetString("acquisition.base_url"),
		MaxMessages:   viper.GetInt("acquisition.max_messages"),
		DownloadDelay: delay,
	}

	client := acquire.NewClient(cfg, logger)
	emails, err := client.FetchAll(cmd.Context(), acquire.Request{
		Lists:     lists,
		StartDate: startDate,
		EndDate:   endDate,
	})
	if err != nil {
		return err
	}

	if err := acquire.Save(output, emails); err != nil {
		return err
	}
	fmt.Printf("fetched %d messages from %d list(s) into %s\n", len(emails), len(lists), output)
	return nil
}
