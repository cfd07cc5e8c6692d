// Copyright 2025 SirSeer, LLC
//
// Licensed under the Business Source License 1.1 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     https://mariadb.com/bsl11
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"errors"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/sirseerhq/backlog-seeder/internal/config"
	seedererrors "github.com/sirseerhq/backlog-seeder/internal/errors"
	"github.com/sirseerhq/backlog-seeder/pkg/version"
)

// newRootCommand builds the backlog-seeder command tree. Persistent flags
// are bound through viper so BACKLOG_SEEDER_* environment variables can
// stand in for any of them.
func newRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "backlog-seeder",
		Short: "Post issue templates to Backlog projects",
		Long: `Backlog Seeder reads a TOML template describing issues with optional
child issues, resolves {KEY} placeholders and relative due dates, and posts
the issues to a Backlog project in declaration order, parents before their
children.

Authentication uses an API key stored per space domain:
  - Run 'backlog-seeder managekey <domain>' to store a key
  - Or use the --api-key flag / BACKLOG_API_KEY environment variable`,
		Version:       version.Version,
		SilenceUsage:  true, // Don't show usage on error
		SilenceErrors: true, // We'll handle error printing ourselves
	}

	viper.SetEnvPrefix("BACKLOG_SEEDER")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	rootCmd.PersistentFlags().String("config", "", "path to a config file (default: .backlog-seeder.yaml)")
	rootCmd.PersistentFlags().String("keyring", "", "credential store backend: auto, system, or file")
	rootCmd.PersistentFlags().String("api-key", "", "Backlog API key (overrides the stored credential)")
	_ = viper.BindPFlag("config", rootCmd.PersistentFlags().Lookup("config"))
	_ = viper.BindPFlag("keyring", rootCmd.PersistentFlags().Lookup("keyring"))
	_ = viper.BindPFlag("api-key", rootCmd.PersistentFlags().Lookup("api-key"))

	rootCmd.AddCommand(newPostCommand())
	rootCmd.AddCommand(newManageKeyCommand())
	rootCmd.AddCommand(newDoctorCommand())

	return rootCmd
}

// loadToolConfig loads the tool configuration and applies the --keyring
// override before validating.
func loadToolConfig(path, keyringOverride string) (*config.Config, error) {
	cfg, err := config.LoadConfig(path)
	if err != nil {
		return nil, err
	}
	if keyringOverride != "" {
		cfg.Keyring.Backend = keyringOverride
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// mapErrorToExitCode maps internal errors to appropriate exit codes
func mapErrorToExitCode(err error) int {
	if err == nil {
		return 0
	}

	// Check for specific error types
	if errors.Is(err, seedererrors.ErrInvalidAPIKey) ||
		errors.Is(err, seedererrors.ErrCredentialNotFound) ||
		errors.Is(err, seedererrors.ErrProjectNotFound) ||
		errors.Is(err, seedererrors.ErrRateLimit) {
		return 2 // Authentication/authorization errors
	}

	if errors.Is(err, seedererrors.ErrNetworkFailure) {
		return 3 // Network errors
	}

	return 1 // General error
}
