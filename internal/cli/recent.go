package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/terraincognita07/lctracker/internal/models"
	"github.com/terraincognita07/lctracker/internal/records"
	"github.com/terraincognita07/lctracker/internal/services"
)

// ParseRecentLimit reads the optional count argument of the recent command.
func ParseRecentLimit(args []string, fallback int) (int, error) {
	if len(args) == 0 || strings.TrimSpace(args[0]) == "" {
		return fallback, nil
	}
	limit, err := strconv.Atoi(strings.TrimSpace(args[0]))
	if err != nil || limit < 1 {
		return 0, fmt.Errorf("invalid entry count %q", args[0])
	}
	return limit, nil
}

// RunRecentCommand prints the newest entries of the collection as a table.
func RunRecentCommand(ctx context.Context, client records.DataClient, collection string, limit int, out io.Writer) error {
	if client == nil {
		return errors.New("data client is required")
	}

	result, err := client.GetList(ctx, collection, 1, limit, records.ListOptions{Sort: services.RecentSort})
	if err != nil {
		return fmt.Errorf("load recent entries: %w", err)
	}
	if len(result.Items) == 0 {
		fmt.Fprintln(out, "No entries yet")
		return nil
	}

	writer := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(writer, "CREATED\tDAY\tPERIOD\tSTUDENT\tCLASS/STUDY\tPLANNER\tZONE\tACTION\tNOTES")
	for _, entry := range result.Items {
		fmt.Fprintf(writer, "%s\t%s\t%d\t%s\t%s\t%s\t%s\t%s\t%s\n",
			entry.Created.String(),
			entry.Day,
			entry.Period,
			entry.StudentName,
			entry.ClassOrStudy,
			entry.StudyPlanner,
			zoneLabel(entry),
			entry.Action,
			strings.TrimSpace(entry.Notes),
		)
	}
	if err := writer.Flush(); err != nil {
		return err
	}
	fmt.Fprintf(out, "%d of %d entries\n", len(result.Items), result.TotalItems)
	return nil
}

func zoneLabel(entry models.Entry) string {
	if entry.IsFocus() && entry.FocusZone != "" {
		return entry.Zone + "/" + entry.FocusZone
	}
	return entry.Zone
}
