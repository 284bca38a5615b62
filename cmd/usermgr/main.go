package main

import (
	"errors"
	"fmt"
	"log"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/pflag"
	"golang.org/x/term"

	"github.com/jask/usermgr/internal/config"
	"github.com/jask/usermgr/internal/logging"
	"github.com/jask/usermgr/internal/service"
	"github.com/jask/usermgr/internal/testdata"
	"github.com/jask/usermgr/internal/tui"
	"github.com/jask/usermgr/internal/users"
)

var errNoTerminal = errors.New("usermgr needs an interactive terminal")

// isTerminal is a test seam for term.IsTerminal.
var isTerminal = term.IsTerminal

func main() {
	if err := run(os.Args[1:]); err != nil {
		log.Fatal(err)
	}
}

// run owns every deferred cleanup; main only exits after it returns.
func run(args []string) error {
	fs := pflag.NewFlagSet("usermgr", pflag.ExitOnError)
	config.RegisterFlags(fs)
	contact := fs.Bool("contact", false, "open the standalone contact form")
	demo := fs.Int("demo", 0, "start with `n` generated sample users")
	_ = fs.Parse(args)

	cfg, err := config.Load(fs)
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}

	if !isTerminal(int(os.Stdin.Fd())) || !isTerminal(int(os.Stdout.Fd())) {
		return errNoTerminal
	}

	logger, closer, err := logging.New(cfg.Log)
	if err != nil {
		return fmt.Errorf("logging: %w", err)
	}
	defer closer.Close()

	var model tea.Model
	if *contact {
		model = tui.NewContactForm()
	} else {
		hasher := users.BcryptHasher{Cost: cfg.Security.BcryptCost}
		seed, err := testdata.Users(time.Now().UnixNano(), *demo, hasher)
		if err != nil {
			return fmt.Errorf("sample users: %w", err)
		}
		screen := service.NewUserScreen(service.Deps{
			Hasher:             hasher,
			Log:                logger,
			Initial:            users.NewStore(seed...),
			SimilarityDistance: cfg.UI.SimilarityDistance,
		})
		model = tui.New(screen, logger)
	}

	var opts []tea.ProgramOption
	if cfg.UI.AltScreen {
		opts = append(opts, tea.WithAltScreen())
	}
	logger.WithField("contact", *contact).Info("starting")
	if _, err := tea.NewProgram(model, opts...).Run(); err != nil {
		logger.WithError(err).Error("program exited")
		return fmt.Errorf("run: %w", err)
	}
	logger.Info("stopped")
	return nil
}
