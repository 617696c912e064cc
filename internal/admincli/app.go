// Package admincli implements blogadmin, the operator tool that creates
// accounts directly in the database. It is how the first Admin comes to
// exist without going through the public register endpoint.
package admincli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/dmitrijs2005/gophblog/internal/common"
	"github.com/dmitrijs2005/gophblog/internal/logging"
	"github.com/dmitrijs2005/gophblog/internal/server/config"
	"github.com/dmitrijs2005/gophblog/internal/server/models"
	"github.com/dmitrijs2005/gophblog/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/gophblog/internal/server/services"
	"github.com/spf13/pflag"
)

const (
	CommandCreateUser  = "create-user"
	CommandUploadMedia = "upload-media"
)

// ErrUsage is returned for a missing or unknown command.
var ErrUsage = errors.New(`usage:
  blogadmin create-user [--username u] [--email e] [--role Admin|Editor|User] [-c config.json] [--env-file .env] [-d dsn]
  blogadmin upload-media --url <presigned PUT url> --file <path> [--content-type type]`)

// openRepos is a test seam for repomanager.New.
var openRepos = repomanager.New

type Registrar interface {
	Register(ctx context.Context, in services.RegisterInput) (*models.User, error)
}

type options struct {
	username   string
	email      string
	role       string
	configFile string
	envFile    string
	dsn        string
}

func parseOptions(args []string) (*options, error) {
	o := &options{}
	fs := pflag.NewFlagSet(CommandCreateUser, pflag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&o.username, "username", "", "username of the new account")
	fs.StringVar(&o.email, "email", "", "email of the new account")
	fs.StringVar(&o.role, "role", string(models.RoleAdmin), "role of the new account")
	fs.StringVarP(&o.configFile, "config", "c", "", "path to JSON config file")
	fs.StringVar(&o.envFile, "env-file", ".env", "path to dotenv file")
	fs.StringVarP(&o.dsn, "database-dsn", "d", "", "database DSN")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUsage, err)
	}
	return o, nil
}

// configArgs forwards the storage-related options to the server config
// loader so both binaries resolve settings the same way.
func (o *options) configArgs() []string {
	args := []string{"--env-file", o.envFile}
	if o.configFile != "" {
		args = append(args, "--config", o.configFile)
	}
	if o.dsn != "" {
		args = append(args, "--database-dsn", o.dsn)
	}
	return args
}

// Run executes the command in args (os.Args[1:]). Prompts go to out and
// answers are read from in; passwords are read from the terminal.
func Run(ctx context.Context, args []string, in io.Reader, out io.Writer) error {
	if len(args) == 0 {
		return ErrUsage
	}

	switch args[0] {
	case CommandCreateUser:
		return runCreateUser(ctx, args[1:], in, out)
	case CommandUploadMedia:
		return runUploadMedia(ctx, args[1:], out)
	default:
		return ErrUsage
	}
}

func runCreateUser(ctx context.Context, args []string, in io.Reader, out io.Writer) error {
	opts, err := parseOptions(args)
	if err != nil {
		return err
	}

	cfg, err := config.LoadConfig(opts.configArgs())
	if err != nil {
		return err
	}
	if cfg.StorageBackend == config.BackendMemory {
		return errors.New("the memory backend does not persist users; configure postgres")
	}

	rm, err := openRepos(ctx, cfg.StorageBackend, cfg.DatabaseDSN)
	if err != nil {
		return fmt.Errorf("db init error: %w", err)
	}
	defer rm.Close()

	if err := rm.RunMigrations(ctx); err != nil {
		return fmt.Errorf("migrations error: %w", err)
	}

	users := services.NewUserService(rm, cfg, logging.Nop{})

	user, err := CreateUser(ctx, users, opts, bufio.NewReader(in), out)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "Created %s %s (%s)\n", user.Role, user.Username, user.ID)
	return nil
}

// CreateUser prompts for whatever opts leaves empty, asks for the password
// twice and registers the account through reg.
func CreateUser(ctx context.Context, reg Registrar, opts *options, r *bufio.Reader, w io.Writer) (*models.User, error) {
	var err error

	if opts.username == "" {
		if opts.username, err = GetSimpleText(r, "Username", w); err != nil {
			return nil, err
		}
	}
	if opts.email == "" {
		if opts.email, err = GetSimpleText(r, "Email", w); err != nil {
			return nil, err
		}
	}

	password, err := GetPassword("Enter password", w)
	if err != nil {
		return nil, err
	}
	confirm, err := GetPassword("Repeat password", w)
	if err != nil {
		return nil, err
	}
	if string(password) != string(confirm) {
		return nil, fmt.Errorf("%w: passwords do not match", common.ErrValidation)
	}

	return reg.Register(ctx, services.RegisterInput{
		Username: opts.username,
		Email:    opts.email,
		Password: string(password),
		Role:     models.Role(opts.role),
	})
}
