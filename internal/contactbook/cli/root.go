package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aradsms/contactbook/internal/contactbook/app"
	"github.com/aradsms/contactbook/internal/contactbook/domain"
)

const AppName = "contactbook"

// Service is what the commands need from the application layer.
// *app.Application satisfies it.
type Service interface {
	CreateContact(ctx context.Context, name, paternalSurname, maternalSurname, phone string, groupID int64) (*domain.Contact, error)
	UpdateContact(ctx context.Context, ct *domain.Contact) (domain.WriteResult, error)
	DeleteContact(ctx context.Context, id int64) (domain.WriteResult, error)
	GetContact(ctx context.Context, id int64) (*domain.Contact, error)
	SearchContacts(ctx context.Context, fragment string) ([]domain.Contact, error)
	ListContactsInGroup(ctx context.Context, groupID int64) ([]domain.Contact, error)
	ListContacts(ctx context.Context) ([]domain.Contact, error)
	CountContacts(ctx context.Context) (int64, error)
	CountContactsInGroup(ctx context.Context, groupID int64) (int64, error)
	ListGroups(ctx context.Context) ([]domain.Group, error)
	GroupSummary(ctx context.Context, groupID int64) (*domain.GroupSummary, error)
}

var _ Service = (*app.Application)(nil)

// OpenFunc builds a Service for one command invocation. The returned release
// func is called once the command finishes.
type OpenFunc func(ctx context.Context) (Service, func(), error)

type rootOptions struct {
	open    OpenFunc
	jsonOut bool
}

// NewRootCmd assembles the command tree. Nothing touches the store until a
// subcommand runs, so --help works without configuration.
func NewRootCmd(open OpenFunc) *cobra.Command {
	opts := &rootOptions{open: open}

	rootCmd := &cobra.Command{
		Use:   AppName,
		Short: "Manage the contact book",
		Long: `contactbook reads and writes contacts and their groups in the configured store.

Store settings come from configs/config.defaults.yaml, a .env file, or
APP_* environment variables (for example APP_STORE_DRIVER=sqlite).`,
		SilenceUsage: true,
	}
	rootCmd.PersistentFlags().BoolVar(&opts.jsonOut, "json", false, "Output as JSON")

	rootCmd.AddCommand(
		newAddCmd(opts),
		newUpdateCmd(opts),
		newDeleteCmd(opts),
		newGetCmd(opts),
		newSearchCmd(opts),
		newListCmd(opts),
		newCountCmd(opts),
		newGroupCmd(opts),
	)
	return rootCmd
}

// run opens the service, hands it to fn and releases it on every path.
func (o *rootOptions) run(cmd *cobra.Command, fn func(ctx context.Context, svc Service) error) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	svc, release, err := o.open(ctx)
	if err != nil {
		return fmt.Errorf("opening store: %w", err)
	}
	defer release()
	return fn(ctx, svc)
}
