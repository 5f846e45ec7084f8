package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/alfredjeanlab/labelq/internal/client"
	"github.com/alfredjeanlab/labelq/internal/model"
	"github.com/alfredjeanlab/labelq/internal/workflow"
	"github.com/spf13/cobra"
)

var submitCmd = &cobra.Command{
	Use:     "submit <record-id>",
	Short:   "Submit answers for a record",
	GroupID: "workflows",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runRespond(cmd, args[0], model.StatusSubmitted)
	},
}

var discardCmd = &cobra.Command{
	Use:     "discard <record-id>",
	Short:   "Discard a record",
	GroupID: "workflows",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runRespond(cmd, args[0], model.StatusDiscarded)
	},
}

var draftCmd = &cobra.Command{
	Use:     "draft <record-id>",
	Short:   "Save a draft answer for a record",
	GroupID: "workflows",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runRespond(cmd, args[0], model.StatusDraft)
	},
}

func runRespond(cmd *cobra.Command, recordID string, status model.RecordStatus) error {
	values, _ := cmd.Flags().GetStringArray("value")

	ctx := context.Background()
	record, err := fetchRecord(ctx, recordID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if err := applyValues(record, values); err != nil {
		return err
	}

	publisher, err := newPublisher()
	if err != nil {
		return err
	}
	defer publisher.Close()
	service := workflow.New(recordsClient, publisher, nil)

	switch status {
	case model.StatusSubmitted:
		err = service.Submit(ctx, record)
	case model.StatusDiscarded:
		err = service.Discard(ctx, record)
	default:
		err = service.SaveDraft(ctx, record)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("record %s %s\n", record.ID, record.Status)
	return nil
}

// fetchRecord pulls one record by id and hydrates it into queue shape.
func fetchRecord(ctx context.Context, recordID string) (*model.Record, error) {
	data, err := recordsClient.GetRecord(ctx, recordID)
	if err != nil {
		return nil, err
	}
	return workflow.Hydrate([]*client.RecordData{data}, 1)[0], nil
}

// applyValues sets question answers from "name=value" flags. Values that
// parse as JSON are taken as-is, anything else is a plain string.
func applyValues(record *model.Record, values []string) error {
	for _, v := range values {
		name, raw, ok := strings.Cut(v, "=")
		if !ok || name == "" {
			return fmt.Errorf("invalid value %q (want name=value)", v)
		}
		answer := &model.QuestionAnswer{Value: parseValue(raw), Valid: true}
		if q := questionByName(record, name); q != nil {
			q.Answer = answer
			continue
		}
		record.Questions = append(record.Questions, &model.Question{Name: name, Answer: answer})
	}
	return nil
}

func questionByName(record *model.Record, name string) *model.Question {
	for _, q := range record.Questions {
		if q.Name == name {
			return q
		}
	}
	return nil
}

func parseValue(raw string) any {
	var parsed any
	if err := json.Unmarshal([]byte(raw), &parsed); err == nil {
		return parsed
	}
	return raw
}

func init() {
	for _, c := range []*cobra.Command{submitCmd, discardCmd, draftCmd} {
		c.Flags().StringArrayP("value", "v", nil, "question answer as name=value (repeatable)")
	}
}
