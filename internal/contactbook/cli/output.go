package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/aradsms/contactbook/internal/contactbook/domain"
)

func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func newTable(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
}

func (o *rootOptions) printContact(cmd *cobra.Command, ct *domain.Contact) error {
	return o.printContacts(cmd, []domain.Contact{*ct}, false)
}

func (o *rootOptions) printContacts(cmd *cobra.Command, contacts []domain.Contact, tuple bool) error {
	out := cmd.OutOrStdout()
	if o.jsonOut {
		if tuple {
			return writeJSON(out, domain.Tuples(contacts))
		}
		if contacts == nil {
			contacts = []domain.Contact{}
		}
		return writeJSON(out, contacts)
	}

	if len(contacts) == 0 {
		_, _ = fmt.Fprintln(out, "No contacts found.")
		return nil
	}

	tw := newTable(out)
	if !tuple {
		_, _ = fmt.Fprintln(tw, "ID\tNAME\tPATERNAL\tMATERNAL\tPHONE\tGROUP")
	}
	for _, row := range domain.Tuples(contacts) {
		for i, col := range row {
			if i > 0 {
				_, _ = fmt.Fprint(tw, "\t")
			}
			_, _ = fmt.Fprint(tw, col)
		}
		_, _ = fmt.Fprintln(tw)
	}
	return tw.Flush()
}

// printWrite reports an update or delete. A write that matched nothing is
// returned as ErrNotFound so the process exits non-zero.
func (o *rootOptions) printWrite(cmd *cobra.Command, verb string, id int64, res domain.WriteResult) error {
	if !res.Matched() {
		return fmt.Errorf("no contact with id %d: %w", id, domain.ErrNotFound)
	}
	out := cmd.OutOrStdout()
	if o.jsonOut {
		return writeJSON(out, struct {
			ID int64 `json:"id"`
			domain.WriteResult
		}{ID: id, WriteResult: res})
	}
	_, _ = fmt.Fprintf(out, "%s contact %d.\n", verb, id)
	return nil
}

func (o *rootOptions) printCount(cmd *cobra.Command, n int64, groupID *int64) error {
	out := cmd.OutOrStdout()
	if o.jsonOut {
		return writeJSON(out, struct {
			Count   int64  `json:"count"`
			GroupID *int64 `json:"group_id,omitempty"`
		}{Count: n, GroupID: groupID})
	}
	_, _ = fmt.Fprintln(out, n)
	return nil
}

func (o *rootOptions) printGroups(cmd *cobra.Command, groups []domain.Group) error {
	out := cmd.OutOrStdout()
	if o.jsonOut {
		if groups == nil {
			groups = []domain.Group{}
		}
		return writeJSON(out, groups)
	}
	if len(groups) == 0 {
		_, _ = fmt.Fprintln(out, "No groups found.")
		return nil
	}
	tw := newTable(out)
	_, _ = fmt.Fprintln(tw, "ID\tNAME")
	for _, g := range groups {
		_, _ = fmt.Fprintf(tw, "%d\t%s\n", g.ID, g.Name)
	}
	return tw.Flush()
}

func (o *rootOptions) printGroupSummary(cmd *cobra.Command, s *domain.GroupSummary) error {
	out := cmd.OutOrStdout()
	if o.jsonOut {
		return writeJSON(out, s)
	}
	_, _ = fmt.Fprintf(out, "%s (group %d): %d contacts\n", s.Name, s.ID, s.ContactCount)
	return nil
}
