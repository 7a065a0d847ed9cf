package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/storefront/account-api/internal/core/domain"
	"github.com/storefront/account-api/internal/core/service"
	mongostore "github.com/storefront/account-api/internal/infrastructure/db/mongo"
	"github.com/storefront/account-api/internal/pkg/config"
	"github.com/storefront/account-api/internal/pkg/validation"
)

const generatedPasswordLength = 8

// adminCreator stores a new admin account.
type adminCreator interface {
	Create(ctx context.Context, email, password string) (*domain.Account, error)
}

func newAdminCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "admin",
		Short: "Manage admin accounts",
	}

	cmd.AddCommand(newAdminCreateCmd())

	return cmd
}

// ---------- admin create ----------

func newAdminCreateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "create <email> [password]",
		Short: "Create a new admin account",
		Example: `  accountctl admin create admin@example.com Secret123
  accountctl admin create admin@example.com  # generates a password`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			password := ""
			if len(args) == 2 {
				password = args[1]
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
			defer cancel()

			cfg := config.Load()
			client, db, err := mongostore.Connect(ctx, mongostore.Config{
				URI:      cfg.Mongo.URI,
				Database: cfg.Mongo.Database,
			})
			if err != nil {
				return err
			}
			defer func() { _ = client.Disconnect(context.Background()) }()

			admins := mongostore.NewAccountRepository(db, mongostore.CollectionAdmins)
			if err := admins.EnsureIndexes(ctx); err != nil {
				return err
			}

			return runAdminCreate(ctx, cmd.OutOrStdout(), cmd.ErrOrStderr(), service.NewAdminService(admins), args[0], password)
		},
	}
}

func runAdminCreate(ctx context.Context, out, errOut io.Writer, admins adminCreator, email, password string) error {
	v := validation.New()
	problems := validation.NewErrors()

	var ve *validation.Errors
	if err := v.Var("email", email, "required,max=255,email"); errors.As(err, &ve) {
		for _, msg := range ve.Fields["email"] {
			problems.Add("email", msg)
		}
	}

	generated := password == ""
	if generated {
		var err error
		if password, err = service.RandomPassword(generatedPasswordLength); err != nil {
			return err
		}
	} else {
		for _, msg := range validation.PasswordProblems(password) {
			problems.Add("password", msg)
		}
	}

	if !problems.Empty() {
		return report(errOut, problems.Messages())
	}

	if _, err := admins.Create(ctx, email, password); err != nil {
		if errors.Is(err, domain.ErrEmailTaken) {
			return report(errOut, validation.EmailTaken().Messages())
		}
		return fmt.Errorf("create admin: %w", err)
	}

	if generated {
		fmt.Fprintf(out, "Generated password: %s\n", password)
	}
	fmt.Fprintln(out, "Finished")
	return nil
}

func report(w io.Writer, messages []string) error {
	for _, msg := range messages {
		fmt.Fprintln(w, msg)
	}
	return errReported
}
