package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/alfredjeanlab/labelq/internal/model"
	"github.com/alfredjeanlab/labelq/internal/queue"
	"github.com/alfredjeanlab/labelq/internal/workflow"
	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:     "list",
	Short:   "List records in the annotation queue",
	GroupID: "records",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireDataset(); err != nil {
			return err
		}
		page, _ := cmd.Flags().GetInt("page")
		status, _ := cmd.Flags().GetString("status")
		searchText, _ := cmd.Flags().GetString("search")
		metadataFlags, _ := cmd.Flags().GetStringSlice("metadata")
		sortFlags, _ := cmd.Flags().GetStringSlice("sort")
		similar, _ := cmd.Flags().GetString("similar")

		if !model.RecordStatus(status).IsValid() {
			return fmt.Errorf("invalid status %q", status)
		}
		metadata, err := parseMetadataFlags(metadataFlags)
		if err != nil {
			return err
		}
		sortBy, err := parseSortFlags(sortFlags)
		if err != nil {
			return err
		}
		similarityJSON, err := parseSimilarFlag(similar)
		if err != nil {
			return err
		}

		criteria := model.NewCriteria(datasetID, page, model.RecordStatus(status), searchText,
			metadata, sortBy, model.ResponseFilter{}, model.SuggestionFilter{}, similarityJSON)

		q := queue.New(nil, 0)
		if err := workflow.NewLoader(recordsClient).Load(context.Background(), criteria, q); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		if jsonOutput {
			printQueueJSON(q.Records())
		} else {
			printQueueTable(q.Records(), q.Total())
		}
		return nil
	},
}

// parseMetadataFlags parses repeated "prop=lo..hi" (range) or "prop=a,b"
// (terms) filter expressions.
func parseMetadataFlags(flags []string) ([]model.MetadataFilter, error) {
	var filters []model.MetadataFilter
	for _, f := range flags {
		name, expr, ok := strings.Cut(f, "=")
		if !ok || name == "" {
			return nil, fmt.Errorf("invalid metadata filter %q (want prop=lo..hi or prop=a,b)", f)
		}
		value, err := parseFilterValue(expr)
		if err != nil {
			return nil, fmt.Errorf("invalid metadata filter %q: %w", f, err)
		}
		filters = append(filters, model.MetadataFilter{Name: name, Value: value})
	}
	return filters, nil
}

func parseFilterValue(expr string) (model.FilterValue, error) {
	if lo, hi, ok := strings.Cut(expr, ".."); ok {
		ge, err := strconv.ParseFloat(lo, 64)
		if err != nil {
			return model.FilterValue{}, fmt.Errorf("lower bound %q: %w", lo, err)
		}
		le, err := strconv.ParseFloat(hi, 64)
		if err != nil {
			return model.FilterValue{}, fmt.Errorf("upper bound %q: %w", hi, err)
		}
		return model.FilterValue{Range: &model.Range{GE: ge, LE: le}}, nil
	}
	terms := strings.Split(expr, ",")
	if len(terms) == 1 && terms[0] == "" {
		return model.FilterValue{}, fmt.Errorf("empty value")
	}
	return model.FilterValue{Terms: terms}, nil
}

// parseSortFlags parses repeated "entity:name[:property][:asc|desc]" sort
// expressions.
func parseSortFlags(flags []string) ([]model.Sort, error) {
	var sorts []model.Sort
	for _, f := range flags {
		parts := strings.Split(f, ":")
		if len(parts) < 2 || len(parts) > 4 {
			return nil, fmt.Errorf("invalid sort %q (want entity:name[:property][:asc|desc])", f)
		}
		s := model.Sort{
			Entity: model.SortEntity(parts[0]),
			Name:   parts[1],
			Order:  "asc",
		}
		switch s.Entity {
		case model.SortRecord, model.SortMetadata, model.SortResponse, model.SortSuggestion:
		default:
			return nil, fmt.Errorf("invalid sort entity %q", parts[0])
		}
		rest := parts[2:]
		if len(rest) > 0 && (rest[len(rest)-1] == "asc" || rest[len(rest)-1] == "desc") {
			s.Order = rest[len(rest)-1]
			rest = rest[:len(rest)-1]
		}
		if len(rest) == 1 {
			s.Property = rest[0]
		} else if len(rest) > 1 {
			return nil, fmt.Errorf("invalid sort %q", f)
		}
		sorts = append(sorts, s)
	}
	return sorts, nil
}

// parseSimilarFlag turns "recordID:vector[:limit][:most|least]" into the
// serialized similarity payload the criteria parses.
func parseSimilarFlag(flag string) (string, error) {
	if flag == "" {
		return "", nil
	}
	parts := strings.Split(flag, ":")
	if len(parts) < 2 || len(parts) > 4 {
		return "", fmt.Errorf("invalid similarity %q (want recordID:vector[:limit][:most|least])", flag)
	}
	criteria := model.SimilarityCriteria{
		RecordID:   parts[0],
		VectorName: parts[1],
	}
	for _, p := range parts[2:] {
		switch p {
		case "most", "least":
			criteria.Order = model.SimilarityOrder(p)
		default:
			limit, err := strconv.Atoi(p)
			if err != nil {
				return "", fmt.Errorf("invalid similarity %q: %q is neither a limit nor an order", flag, p)
			}
			criteria.Limit = limit
		}
	}
	data, err := json.Marshal(criteria)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func init() {
	listCmd.Flags().IntP("page", "p", 1, "1-based page to start the queue at")
	listCmd.Flags().StringP("status", "s", "pending", "queue status (pending, draft, submitted, discarded)")
	listCmd.Flags().StringP("search", "q", "", "full-text search query")
	listCmd.Flags().StringSliceP("metadata", "m", nil, "metadata filter, prop=lo..hi or prop=a,b (repeatable)")
	listCmd.Flags().StringSlice("sort", nil, "sort entry, entity:name[:property][:asc|desc] (repeatable)")
	listCmd.Flags().String("similar", "", "similarity search, recordID:vector[:limit][:most|least]")
}
