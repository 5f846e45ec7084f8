package main

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/alfredjeanlab/labelq/internal/client"
	"github.com/alfredjeanlab/labelq/internal/model"
	"github.com/alfredjeanlab/labelq/internal/ui"
)

func printRecordJSON(record *client.RecordData) {
	data, err := json.MarshalIndent(record, "", "  ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error marshaling JSON: %v\n", err)
		return
	}
	fmt.Println(string(data))
}

func printRecordTable(record *client.RecordData) {
	fmt.Printf("ID:      %s\n", record.ID)
	fmt.Printf("Status:  %s\n", ui.RenderStatus(record.Status))
	if record.QueryScore != nil {
		fmt.Printf("Score:   %.4f\n", *record.QueryScore)
	}
	if len(record.Fields) > 0 {
		fmt.Println("Fields:")
		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		for name, value := range record.Fields {
			fmt.Fprintf(w, "  %s\t%v\n", ui.RenderMuted(name), value)
		}
		w.Flush()
	}
	if len(record.Responses) > 0 {
		answer := record.Responses[0]
		fmt.Printf("Answer:  %s (%s)\n", answer.ID, ui.RenderStatus(answer.Status))
		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		for name, value := range answer.Values {
			fmt.Fprintf(w, "  %s\t%v\n", ui.RenderMuted(name), value.Value)
		}
		w.Flush()
	}
	if len(record.Suggestions) > 0 {
		fmt.Println("Suggestions:")
		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		for _, s := range record.Suggestions {
			score := ""
			if s.Score != nil {
				score = fmt.Sprintf("%.4f", *s.Score)
			}
			fmt.Fprintf(w, "  %s\t%v\t%s\t%s\n", s.QuestionID, s.Value, score, ui.RenderMuted(s.Agent))
		}
		w.Flush()
	}
}

func printQueueJSON(records []*model.Record) {
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error marshaling JSON: %v\n", err)
		return
	}
	fmt.Println(string(data))
}

func printQueueTable(records []*model.Record, total int) {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "PAGE\tID\tSTATUS\tANSWERS\tSCORE")
	for _, r := range records {
		answers := ""
		if r.Answer != nil {
			answers = fmt.Sprintf("%d", len(r.Answer.Values))
		}
		score := ""
		if r.QueryScore != nil {
			score = fmt.Sprintf("%.4f", *r.QueryScore)
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n",
			r.Page,
			r.ID,
			ui.RenderStatus(r.Status),
			answers,
			score,
		)
	}
	w.Flush()
	fmt.Printf("\n%d records (%d total)\n", len(records), total)
}
