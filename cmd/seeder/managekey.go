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
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/term"

	"github.com/sirseerhq/backlog-seeder/internal/keystore"
)

// manageKeyCmd represents the managekey command
func newManageKeyCommand() *cobra.Command {
	var deleteKey bool

	cmd := &cobra.Command{
		Use:   "managekey <domain>",
		Short: "Store or remove the API key for a Backlog space domain",
		Long: `Store the API key for a Backlog space domain (for example
yourspace.backlog.com) in the credential store, or remove it with --delete.

The key is read from the terminal without echo. When stdin is not a
terminal the key is read as a single line, which lets scripts pipe it in.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := defaultManageKeyOptions()
			opts.domain = args[0]
			opts.deleteKey = deleteKey

			return runManageKey(opts)
		},
	}

	cmd.Flags().BoolVar(&deleteKey, "delete", false, "remove the stored key for the domain")

	return cmd
}

// manageKeyOptions carries the flag values and swappable dependencies of a
// managekey run.
type manageKeyOptions struct {
	domain    string
	deleteKey bool

	configPath string
	keyring    string

	openStore    func(backend, file string) (keystore.Store, error)
	readPassword func() ([]byte, error)
	stdin        io.Reader
	stdinTTY     bool
	stdout       io.Writer
	stderr       io.Writer
}

func defaultManageKeyOptions() *manageKeyOptions {
	return &manageKeyOptions{
		configPath: viper.GetString("config"),
		keyring:    viper.GetString("keyring"),
		openStore:  keystore.Open,
		readPassword: func() ([]byte, error) {
			return term.ReadPassword(int(os.Stdin.Fd()))
		},
		stdin:    os.Stdin,
		stdinTTY: term.IsTerminal(int(os.Stdin.Fd())),
		stdout:   os.Stdout,
		stderr:   os.Stderr,
	}
}

// runManageKey executes the managekey command
func runManageKey(opts *manageKeyOptions) error {
	cfg, err := loadToolConfig(opts.configPath, opts.keyring)
	if err != nil {
		return err
	}

	store, err := opts.openStore(cfg.Keyring.Backend, cfg.Keyring.File)
	if err != nil {
		return err
	}

	if opts.deleteKey {
		if err := store.Delete(opts.domain); err != nil {
			return err
		}
		fmt.Fprintf(opts.stdout, "Removed credential for %s.\n", opts.domain)
		return nil
	}

	key, err := readKey(opts)
	if err != nil {
		return err
	}
	if key == "" {
		return errors.New("API key cannot be empty")
	}

	if err := store.Save(opts.domain, key); err != nil {
		return err
	}
	fmt.Fprintf(opts.stdout, "Stored credential for %s.\n", opts.domain)
	return nil
}

// readKey prompts for and reads the API key. On a terminal the key is read
// without echo; otherwise a single line is read from stdin.
func readKey(opts *manageKeyOptions) (string, error) {
	fmt.Fprintf(opts.stderr, "Enter API key for %s: ", opts.domain)

	if opts.stdinTTY {
		raw, err := opts.readPassword()
		fmt.Fprintln(opts.stderr)
		if err != nil {
			return "", fmt.Errorf("failed to read API key: %w", err)
		}
		return strings.TrimSpace(string(raw)), nil
	}

	line, err := bufio.NewReader(opts.stdin).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("failed to read API key: %w", err)
	}
	return strings.TrimSpace(line), nil
}
