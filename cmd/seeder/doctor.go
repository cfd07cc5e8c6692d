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
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/sirseerhq/backlog-seeder/internal/backlog"
	seedererrors "github.com/sirseerhq/backlog-seeder/internal/errors"
	"github.com/sirseerhq/backlog-seeder/internal/keystore"
	"github.com/sirseerhq/backlog-seeder/internal/report"
)

// doctorCmd represents the doctor command
func newDoctorCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "doctor <domain>",
		Short: "Verify the stored credential and API connectivity for a domain",
		Long: `Check that an API key is available for the given Backlog space domain,
that the API endpoint is reachable, and that the key authenticates. Pass
--api-key to probe a candidate key before storing it.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := defaultDoctorOptions()
			opts.domain = args[0]

			return runDoctor(cmd.Context(), opts)
		},
	}

	return cmd
}

// doctorOptions carries the flag values and swappable dependencies of a
// doctor run.
type doctorOptions struct {
	domain string

	configPath string
	keyring    string
	apiKey     string

	newClient func(baseURL, apiKey string, timeout time.Duration) backlog.Client
	openStore func(backend, file string) (keystore.Store, error)
	stdout    io.Writer
}

func defaultDoctorOptions() *doctorOptions {
	return &doctorOptions{
		configPath: viper.GetString("config"),
		keyring:    viper.GetString("keyring"),
		apiKey:     viper.GetString("api-key"),
		newClient: func(baseURL, apiKey string, timeout time.Duration) backlog.Client {
			return backlog.NewRESTClient(baseURL, apiKey, timeout)
		},
		openStore: keystore.Open,
		stdout:    os.Stdout,
	}
}

// runDoctor executes the doctor command. All checks run and render even
// when an early one fails; the first failure decides the exit code.
func runDoctor(ctx context.Context, opts *doctorOptions) error {
	cfg, err := loadToolConfig(opts.configPath, opts.keyring)
	if err != nil {
		return err
	}

	var checks []report.Check
	var firstErr error

	key := opts.apiKey
	if key != "" {
		checks = append(checks, report.Check{
			Name:   "credential",
			Passed: true,
			Detail: "using the --api-key flag",
		})
	} else {
		store, err := opts.openStore(cfg.Keyring.Backend, cfg.Keyring.File)
		if err != nil {
			return err
		}
		key, err = store.Load(opts.domain)
		if err != nil {
			checks = append(checks, report.Check{Name: "credential", Passed: false, Detail: err.Error()})
			firstErr = err
		} else {
			checks = append(checks, report.Check{
				Name:   "credential",
				Passed: true,
				Detail: fmt.Sprintf("stored key found for %s", opts.domain),
			})
		}
	}

	if key == "" {
		checks = append(checks,
			report.Check{Name: "connectivity", Passed: false, Detail: "not checked"},
			report.Check{Name: "authentication", Passed: false, Detail: "not checked"},
		)
	} else {
		baseURL := cfg.API.BaseURL
		if baseURL == "" {
			baseURL = backlog.SpaceURL(opts.domain)
		}
		client := opts.newClient(baseURL, key, cfg.Timeout())

		user, err := client.Myself(ctx)
		switch {
		case err == nil:
			checks = append(checks,
				report.Check{Name: "connectivity", Passed: true, Detail: baseURL},
				report.Check{Name: "authentication", Passed: true, Detail: fmt.Sprintf("authenticated as %s", user.Name)},
			)
		case errors.Is(err, seedererrors.ErrNetworkFailure):
			checks = append(checks,
				report.Check{Name: "connectivity", Passed: false, Detail: err.Error()},
				report.Check{Name: "authentication", Passed: false, Detail: "not checked"},
			)
			if firstErr == nil {
				firstErr = err
			}
		default:
			checks = append(checks,
				report.Check{Name: "connectivity", Passed: true, Detail: baseURL},
				report.Check{Name: "authentication", Passed: false, Detail: err.Error()},
			)
			if firstErr == nil {
				firstErr = err
			}
		}
	}

	report.RenderChecks(opts.stdout, checks)
	return firstErr
}
