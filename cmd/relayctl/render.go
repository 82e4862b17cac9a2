package main

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"text/tabwriter"

	"telegram-relay-bot/internal/relay"
)

func renderJSON(w io.Writer, stats relay.Stats) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(stats)
}

// renderTable выводит счетчики в виде выровненной таблицы.
// Виды ошибок сортируются по имени.
func renderTable(w io.Writer, stats relay.Stats) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "--- Relay Stats ---")
	fmt.Fprintf(tw, "Mappings:\t%d\n", stats.Mappings)
	fmt.Fprintf(tw, "Forwarded:\t%d\n", stats.Forwarded)
	fmt.Fprintf(tw, "Replied:\t%d\n", stats.Replied)

	if len(stats.Failures) == 0 {
		fmt.Fprintln(tw, "Failures:\tnone")
		return tw.Flush()
	}
	kinds := make([]string, 0, len(stats.Failures))
	for k := range stats.Failures {
		kinds = append(kinds, k)
	}
	sort.Strings(kinds)
	fmt.Fprintln(tw, "Failures:")
	for _, k := range kinds {
		fmt.Fprintf(tw, "  %s\t%d\n", k, stats.Failures[k])
	}
	return tw.Flush()
}
