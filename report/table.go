package report

import (
	"fmt"
	"io"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/renderer"
	"github.com/olekukonko/tablewriter/tw"
)

func (r *Reporter) writeTable(d Device) error {
	if _, err := fmt.Fprintf(r.out, "%d: %s\n", d.Index, d.Name); err != nil {
		return err
	}

	table := tablewriter.NewTable(r.out,
		tablewriter.WithRenderer(renderer.NewBlueprint(tw.Rendition{
			Settings: tw.Settings{Separators: tw.Separators{BetweenRows: tw.Off}},
		})),
		tablewriter.WithAlignment(tw.Alignment{tw.AlignLeft, tw.AlignRight}),
	)
	table.Header([]string{"Field", "Value"})
	for _, f := range d.Fields() {
		if err := table.Append([]string{f.Label, Group(f.Value, Separator) + r.suffix(f)}); err != nil {
			return err
		}
	}
	if err := table.Render(); err != nil {
		return err
	}
	_, err := io.WriteString(r.out, "\n")
	return err
}
