package render

import (
	"io"
	"strconv"

	"github.com/olekukonko/tablewriter"
)

// WriteTranscript prints rows as a table, oldest first.
func WriteTranscript(w io.Writer, rows []Row) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"#", "Time", "Sender", "Message"})
	table.SetAutoWrapText(false)
	for i, row := range rows {
		table.Append([]string{strconv.Itoa(i + 1), row.Time, row.Label, row.Content})
	}
	table.Render()
}
