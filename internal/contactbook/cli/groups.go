package cli

import (
	"context"

	"github.com/spf13/cobra"
)

func newGroupCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:     "group [id]",
		Aliases: []string{"groups"},
		Short:   "List groups, or summarize one",
		Long: `Without an ID, list every group. With an ID, print the group's name
and how many contacts belong to it.

Examples:
  contactbook group
  contactbook group 1`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return opts.run(cmd, func(ctx context.Context, svc Service) error {
					groups, err := svc.ListGroups(ctx)
					if err != nil {
						return err
					}
					return opts.printGroups(cmd, groups)
				})
			}

			id, err := parseIDArg(args[0])
			if err != nil {
				return err
			}
			return opts.run(cmd, func(ctx context.Context, svc Service) error {
				summary, err := svc.GroupSummary(ctx, id)
				if err != nil {
					return err
				}
				return opts.printGroupSummary(cmd, summary)
			})
		},
	}
}
