package app

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/blackwell-systems/filmshelf/internal/config"
	"github.com/blackwell-systems/filmshelf/internal/readme"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

func newInitCmd() *cobra.Command {
	var (
		driver     string
		dataPath   string
		remote     string
		remotePath string
		tokenEnv   string
		createRepo bool
		private    bool
		force      bool
	)

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a config file and optionally set up a GitHub backup",
		Long: `Write a filmshelf config file.

Films are stored locally under storage.path, either as YAML files
(--driver file) or in a single bbolt database (--driver bolt).

With --remote owner/repo the catalog is also backed up to a GitHub
repository. The token is read from the environment variable named by
--token-env and is never written to the config file.`,
		Example: `  # Local library only
  filmshelf init

  # Local library in a bbolt database, backed up to GitHub
  filmshelf init --driver bolt --remote alice/films --create-repo`,
		Annotations: map[string]string{noLibrary: "true"},
		Args:        cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := flagConfig
			if path == "" {
				path = config.Path()
			}
			if _, err := os.Stat(path); err == nil && !force {
				return fmt.Errorf("config already exists at %s (use --force to overwrite)", path)
			}

			if cmd.Flags().Changed("driver") {
				cfg.Storage.Driver = driver
			}
			if cmd.Flags().Changed("path") {
				cfg.Storage.Path = config.ExpandHome(dataPath)
			}
			if cmd.Flags().Changed("token-env") {
				cfg.Remote.TokenEnv = tokenEnv
				cfg.Remote.Token = os.Getenv(tokenEnv)
			}
			if remote != "" {
				owner, repo, found := strings.Cut(remote, "/")
				if !found || owner == "" || repo == "" {
					return fmt.Errorf("--remote %q: want owner/repo", remote)
				}
				cfg.Remote.Enabled = true
				cfg.Remote.Owner = owner
				cfg.Remote.Repo = repo
				if remotePath != "" {
					cfg.Remote.Path = remotePath
				}
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			if createRepo {
				if err := ensureRemoteRepo(private); err != nil {
					return err
				}
			}

			if err := config.Save(cfg, path); err != nil {
				return fmt.Errorf("writing config: %w", err)
			}
			ok("Wrote %s", path)
			displayInitSummary()
			return nil
		},
	}

	cmd.Flags().StringVar(&driver, "driver", config.DriverFile, "Local storage driver: file or bolt")
	cmd.Flags().StringVar(&dataPath, "path", "", "Data directory (default: ~/.local/share/filmshelf)")
	cmd.Flags().StringVar(&remote, "remote", "", "GitHub backup repo as owner/repo")
	cmd.Flags().StringVar(&remotePath, "remote-path", "", "Catalog path inside the backup repo (default: films.yml)")
	cmd.Flags().StringVar(&tokenEnv, "token-env", "GITHUB_TOKEN", "Environment variable holding the GitHub token")
	cmd.Flags().BoolVar(&createRepo, "create-repo", false, "Create the backup repo via the GitHub API if missing")
	cmd.Flags().BoolVar(&private, "private", true, "Make the backup repo private (with --create-repo)")
	cmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing config file")

	return cmd
}

// ensureRemoteRepo creates the configured backup repo unless it exists.
func ensureRemoteRepo(private bool) error {
	if !cfg.Remote.Enabled {
		return errors.New("--create-repo needs --remote owner/repo")
	}
	if gh == nil || cfg.Remote.Token == "" {
		return fmt.Errorf("--create-repo needs a GitHub token in $%s", cfg.Remote.TokenEnv)
	}

	owner, repo := cfg.Remote.Owner, cfg.Remote.Repo
	header("Checking repo %s/%s …", owner, repo)
	exists, err := gh.RepoExists(owner, repo)
	if err != nil {
		return fmt.Errorf("checking repo: %w", err)
	}
	if exists {
		warn("Repository %s/%s already exists, skipping creation", owner, repo)
		return nil
	}

	r, err := gh.CreateRepo(repo, private)
	if err != nil {
		return err
	}
	ok("Created %s", r.HTMLURL)

	if _, err := readme.NewUpdater(gh, owner, repo).Update(nil); err != nil {
		warn("README not written: %v", err)
	}
	return nil
}

func displayInitSummary() {
	fmt.Println()
	fmt.Printf("  Storage: %s (%s)\n", color.WhiteString(cfg.Storage.Path), cfg.Storage.Driver)
	if cfg.Remote.Enabled {
		fmt.Printf("  Backup:  %s/%s:%s\n", cfg.Remote.Owner, cfg.Remote.Repo, cfg.Remote.EffectiveRemotePath())
		if cfg.Remote.Token == "" {
			warn("$%s is not set; backups stay off until it is", cfg.Remote.TokenEnv)
		}
	}
	fmt.Println()
	fmt.Println("Next steps:")
	fmt.Println("  filmshelf add --title \"Heat\" --id-number 17")
	fmt.Println("  filmshelf import films.csv")
}
