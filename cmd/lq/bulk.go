package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/alfredjeanlab/labelq/internal/model"
	"github.com/alfredjeanlab/labelq/internal/workflow"
	"github.com/spf13/cobra"
)

var bulkCmd = &cobra.Command{
	Use:     "bulk",
	Short:   "Apply a reference record's answers to many records",
	GroupID: "workflows",
}

var bulkSubmitCmd = &cobra.Command{
	Use:   "submit <record-id>...",
	Short: "Submit many records with the reference record's answers",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runBulk(cmd, args, model.StatusSubmitted)
	},
}

var bulkDiscardCmd = &cobra.Command{
	Use:   "discard <record-id>...",
	Short: "Discard many records",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runBulk(cmd, args, model.StatusDiscarded)
	},
}

func runBulk(cmd *cobra.Command, recordIDs []string, status model.RecordStatus) error {
	referenceID, _ := cmd.Flags().GetString("reference")
	sequential, _ := cmd.Flags().GetBool("sequential")
	if referenceID == "" {
		return fmt.Errorf("a reference record is required (--reference)")
	}
	if sequential && status != model.StatusSubmitted {
		return fmt.Errorf("--sequential only applies to bulk submit")
	}

	ctx := context.Background()
	reference, err := fetchRecord(ctx, referenceID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	records := make([]*model.Record, 0, len(recordIDs))
	for _, id := range recordIDs {
		record, err := fetchRecord(ctx, id)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		records = append(records, record)
	}

	publisher, err := newPublisher()
	if err != nil {
		return err
	}
	defer publisher.Close()
	service := workflow.New(recordsClient, publisher, nil)

	switch {
	case sequential:
		err = service.SubmitBulkSequential(ctx, records, reference)
	case status == model.StatusDiscarded:
		err = service.DiscardBulk(ctx, records, reference)
	default:
		err = service.SubmitBulk(ctx, records, reference)
	}

	var bulkErr *workflow.BulkError
	if errors.As(err, &bulkErr) {
		for _, f := range bulkErr.Failures {
			fmt.Fprintf(os.Stderr, "failed %s: %s\n", f.RecordID, f.Detail)
		}
		fmt.Printf("%d of %d records %s\n", len(records)-len(bulkErr.Failures), len(records), status)
		os.Exit(1)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("%d records %s\n", len(records), status)
	return nil
}

func init() {
	for _, c := range []*cobra.Command{bulkSubmitCmd, bulkDiscardCmd} {
		c.Flags().StringP("reference", "r", "", "record whose answers are applied to the batch")
	}
	bulkSubmitCmd.Flags().Bool("sequential", false, "submit one record at a time instead of batching")

	bulkCmd.AddCommand(bulkSubmitCmd)
	bulkCmd.AddCommand(bulkDiscardCmd)
}
