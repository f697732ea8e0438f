package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/aradsms/contactbook/internal/contactbook/domain"
)

type contactFlags struct {
	name     string
	paternal string
	maternal string
	phone    string
	group    int64
}

func (f *contactFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.name, "name", "", "Given name (required)")
	cmd.Flags().StringVar(&f.paternal, "paternal", "", "Paternal surname")
	cmd.Flags().StringVar(&f.maternal, "maternal", "", "Maternal surname")
	cmd.Flags().StringVar(&f.phone, "phone", "", "Phone number (required)")
	cmd.Flags().Int64Var(&f.group, "group", 0, "Group ID (required)")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("phone")
	_ = cmd.MarkFlagRequired("group")
}

func newAddCmd(opts *rootOptions) *cobra.Command {
	var f contactFlags
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a contact",
		Long: `Add a contact and print it with the ID the store assigned.

The group must already exist; the store rejects unknown groups.

Examples:
  contactbook add --name Ana --paternal Lopez --maternal Diaz --phone 555-1111 --group 1`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return opts.run(cmd, func(ctx context.Context, svc Service) error {
				ct, err := svc.CreateContact(ctx, f.name, f.paternal, f.maternal, f.phone, f.group)
				if err != nil {
					return err
				}
				return opts.printContact(cmd, ct)
			})
		},
	}
	f.register(cmd)
	return cmd
}

func newUpdateCmd(opts *rootOptions) *cobra.Command {
	var f contactFlags
	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Replace every field of a contact",
		Long: `Replace every field of the contact with the given ID.

Fields not passed are written as empty, matching the store's full-row update.

Examples:
  contactbook update 7 --name Ana --paternal Lopez --phone 555-9999 --group 2`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseIDArg(args[0])
			if err != nil {
				return err
			}
			return opts.run(cmd, func(ctx context.Context, svc Service) error {
				res, err := svc.UpdateContact(ctx, &domain.Contact{
					ID:              id,
					Name:            f.name,
					PaternalSurname: f.paternal,
					MaternalSurname: f.maternal,
					Phone:           f.phone,
					GroupID:         f.group,
				})
				if err != nil {
					return err
				}
				return opts.printWrite(cmd, "Updated", id, res)
			})
		},
	}
	f.register(cmd)
	return cmd
}

func newDeleteCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:     "delete <id>",
		Aliases: []string{"rm"},
		Short:   "Delete a contact",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseIDArg(args[0])
			if err != nil {
				return err
			}
			return opts.run(cmd, func(ctx context.Context, svc Service) error {
				res, err := svc.DeleteContact(ctx, id)
				if err != nil {
					return err
				}
				return opts.printWrite(cmd, "Deleted", id, res)
			})
		},
	}
}

func newGetCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Show one contact",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseIDArg(args[0])
			if err != nil {
				return err
			}
			return opts.run(cmd, func(ctx context.Context, svc Service) error {
				ct, err := svc.GetContact(ctx, id)
				if err != nil {
					return err
				}
				return opts.printContact(cmd, ct)
			})
		},
	}
}

func newSearchCmd(opts *rootOptions) *cobra.Command {
	var tuple bool
	cmd := &cobra.Command{
		Use:   "search <fragment>",
		Short: "Find contacts whose name contains a fragment",
		Long: `Find contacts whose given name contains the fragment.

% and _ in the fragment match literally. Case sensitivity follows the store:
PostgreSQL compares exactly, SQLite folds ASCII letters.

Examples:
  contactbook search ana
  contactbook search ana --tuple --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.run(cmd, func(ctx context.Context, svc Service) error {
				contacts, err := svc.SearchContacts(ctx, args[0])
				if err != nil {
					return err
				}
				return opts.printContacts(cmd, contacts, tuple)
			})
		},
	}
	cmd.Flags().BoolVar(&tuple, "tuple", false, "Emit positional rows instead of named fields")
	return cmd
}

func newListCmd(opts *rootOptions) *cobra.Command {
	var (
		group int64
		tuple bool
	)
	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List contacts",
		Long: `List every contact, or only those in one group.

Order is whatever the store returns.

Examples:
  contactbook list
  contactbook list --group 2 --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return opts.run(cmd, func(ctx context.Context, svc Service) error {
				var (
					contacts []domain.Contact
					err      error
				)
				if cmd.Flags().Changed("group") {
					contacts, err = svc.ListContactsInGroup(ctx, group)
				} else {
					contacts, err = svc.ListContacts(ctx)
				}
				if err != nil {
					return err
				}
				return opts.printContacts(cmd, contacts, tuple)
			})
		},
	}
	cmd.Flags().Int64Var(&group, "group", 0, "Only contacts in this group")
	cmd.Flags().BoolVar(&tuple, "tuple", false, "Emit positional rows instead of named fields")
	return cmd
}

func newCountCmd(opts *rootOptions) *cobra.Command {
	var group int64
	cmd := &cobra.Command{
		Use:   "count",
		Short: "Count contacts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return opts.run(cmd, func(ctx context.Context, svc Service) error {
				if cmd.Flags().Changed("group") {
					n, err := svc.CountContactsInGroup(ctx, group)
					if err != nil {
						return err
					}
					return opts.printCount(cmd, n, &group)
				}
				n, err := svc.CountContacts(ctx)
				if err != nil {
					return err
				}
				return opts.printCount(cmd, n, nil)
			})
		},
	}
	cmd.Flags().Int64Var(&group, "group", 0, "Only count contacts in this group")
	return cmd
}

func parseIDArg(raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id %q: must be a positive integer", raw)
	}
	return id, nil
}
