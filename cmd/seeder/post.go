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
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/term"

	"github.com/sirseerhq/backlog-seeder/internal/backlog"
	"github.com/sirseerhq/backlog-seeder/internal/config"
	seedererrors "github.com/sirseerhq/backlog-seeder/internal/errors"
	"github.com/sirseerhq/backlog-seeder/internal/keystore"
	"github.com/sirseerhq/backlog-seeder/internal/output"
	"github.com/sirseerhq/backlog-seeder/internal/report"
	"github.com/sirseerhq/backlog-seeder/internal/template"
)

// postCmd represents the post command
func newPostCommand() *cobra.Command {
	var (
		resultsPath string
		yes         bool
		dryRun      bool
	)

	cmd := &cobra.Command{
		Use:   "post <template.toml>",
		Short: "Post a template's issues to its Backlog project",
		Long: `Post the issues described by a TOML template to the Backlog project it
names. Top-level issues are created in declaration order, each followed by
its children linked through parentIssueId. A failing issue is reported and
the run continues with the next top-level issue.

The API key is resolved in order: --api-key flag, the key environment
variable (BACKLOG_API_KEY by default), then the credential store entry for
the template's space domain.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := defaultPostOptions()
			opts.templatePath = args[0]
			opts.resultsPath = resultsPath
			opts.yes = yes
			opts.dryRun = dryRun

			return runPost(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVar(&resultsPath, "results", "", `write NDJSON results to this file ("-" for stdout)`)
	cmd.Flags().BoolVar(&yes, "yes", false, "skip the replacement confirmation prompt")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "resolve and validate the template without posting")

	return cmd
}

// postOptions carries the flag values and swappable dependencies of a
// posting run. Commands wire the real implementations; tests substitute
// mocks.
type postOptions struct {
	templatePath string
	resultsPath  string
	yes          bool
	dryRun       bool

	configPath string
	keyring    string
	apiKey     string

	newClient func(baseURL, apiKey string, timeout time.Duration) backlog.Client
	openStore func(backend, file string) (keystore.Store, error)
	stdin     io.Reader
	stdinTTY  bool
	stdout    io.Writer
	stderr    io.Writer
}

func defaultPostOptions() *postOptions {
	return &postOptions{
		configPath: viper.GetString("config"),
		keyring:    viper.GetString("keyring"),
		apiKey:     viper.GetString("api-key"),
		newClient: func(baseURL, apiKey string, timeout time.Duration) backlog.Client {
			return backlog.NewRESTClient(baseURL, apiKey, timeout)
		},
		openStore: keystore.Open,
		stdin:     os.Stdin,
		stdinTTY:  term.IsTerminal(int(os.Stdin.Fd())),
		stdout:    os.Stdout,
		stderr:    os.Stderr,
	}
}

// runPost executes the post command
func runPost(ctx context.Context, opts *postOptions) error {
	cfg, err := loadToolConfig(opts.configPath, opts.keyring)
	if err != nil {
		return err
	}

	tmpl, err := template.ParseFile(opts.templatePath)
	if err != nil {
		return err
	}
	entries := template.Build(tmpl)

	// The replacement mapping rewrites every string field, so show it and
	// ask before posting unless the user opted out.
	if !opts.dryRun && !opts.yes && len(tmpl.Config.Repl) > 0 && opts.stdinTTY {
		ok, err := confirmReplacements(tmpl.Config.Repl, opts.stdin, opts.stderr)
		if err != nil {
			return err
		}
		if !ok {
			fmt.Fprintln(opts.stderr, "Terminated by user input.")
			return nil
		}
	}

	if opts.dryRun {
		return runDryRun(entries, opts.stdout)
	}

	apiKey, err := resolveAPIKey(opts, cfg, tmpl.Target.SpaceDomain)
	if err != nil {
		return err
	}

	baseURL := cfg.API.BaseURL
	if baseURL == "" {
		baseURL = backlog.SpaceURL(tmpl.Target.SpaceDomain)
	}
	client := opts.newClient(baseURL, apiKey, cfg.Timeout())

	var results output.ResultsWriter
	if opts.resultsPath != "" {
		w, wErr := output.Open(opts.resultsPath)
		if wErr != nil {
			return wErr
		}
		defer w.Close()
		results = w
	}

	run := &postRun{
		client:   client,
		recorder: report.New(),
		results:  results,
		stderr:   opts.stderr,
	}

	fmt.Fprintf(opts.stderr, "Fetching project data from %s (project %s)...\n",
		tmpl.Target.SpaceDomain, tmpl.Target.ProjectKey)
	catalog, err := client.ProjectCatalog(ctx, tmpl.Target.ProjectKey)
	run.recorder.IncrementAPICall()
	if err != nil {
		return err
	}

	for _, entry := range entries {
		if err := run.postEntry(ctx, catalog, entry); err != nil {
			return err
		}
	}

	run.recorder.RenderTable(opts.stderr)

	summary := run.recorder.Summary()
	if failed := summary.Failed + summary.Skipped; failed > 0 {
		return fmt.Errorf("%d of %d issues were not created: %w", failed, summary.Total, seedererrors.ErrIssuesFailed)
	}
	return nil
}

// postRun holds the state shared by one posting run.
type postRun struct {
	client   backlog.Client
	recorder *report.Recorder
	results  output.ResultsWriter
	stderr   io.Writer
}

// record reports one outcome to the recorder and, when requested, the
// results stream. Results-stream errors are the only thing that aborts a
// run mid-flight.
func (p *postRun) record(rec output.Record) error {
	p.recorder.Record(rec)
	if p.results != nil {
		if err := p.results.Write(rec); err != nil {
			return err
		}
	}
	return nil
}

// postEntry posts one top-level issue and then its children. Failures are
// recorded and confined to this entry so the run continues with the next
// top-level issue.
func (p *postRun) postEntry(ctx context.Context, catalog *backlog.Catalog, entry template.Entry) error {
	if entry.Err != nil {
		if err := p.record(failedRecord(entry.Path, entry.Summary, entry.Err)); err != nil {
			return err
		}
		return p.skipChildren(entry.Children)
	}

	req, err := catalog.Resolve(issueInput(entry.Issue, 0))
	if err != nil {
		if recErr := p.record(failedRecord(entry.Path, entry.Summary, err)); recErr != nil {
			return recErr
		}
		return p.skipChildren(entry.Children)
	}

	parent, err := p.client.CreateIssue(ctx, req)
	p.recorder.IncrementAPICall()
	if err != nil {
		if recErr := p.record(failedRecord(entry.Path, entry.Summary, err)); recErr != nil {
			return recErr
		}
		return p.skipChildren(entry.Children)
	}

	fmt.Fprintf(p.stderr, "Posted an issue -> %s %q\n", parent.IssueKey, parent.Summary)
	if err := p.record(output.Record{
		Index:    entry.Path,
		Summary:  parent.Summary,
		IssueKey: parent.IssueKey,
		ID:       parent.ID,
		Status:   output.StatusCreated,
	}); err != nil {
		return err
	}

	for _, child := range entry.Children {
		if err := p.postChild(ctx, catalog, parent, child); err != nil {
			return err
		}
	}
	return nil
}

// postChild posts one child issue linked to its created parent. A failure
// is confined to this child; later siblings are still attempted.
func (p *postRun) postChild(ctx context.Context, catalog *backlog.Catalog, parent *backlog.Issue, child template.ChildEntry) error {
	if child.Err != nil {
		return p.record(failedRecord(child.Path, child.Summary, child.Err))
	}
	if child.Issue == nil {
		return p.record(skippedRecord(child.Path, child.Summary))
	}

	req, err := catalog.Resolve(issueInput(child.Issue, parent.ID))
	if err != nil {
		return p.record(failedRecord(child.Path, child.Summary, err))
	}

	created, err := p.client.CreateIssue(ctx, req)
	p.recorder.IncrementAPICall()
	if err != nil {
		return p.record(failedRecord(child.Path, child.Summary, err))
	}

	fmt.Fprintf(p.stderr, "Posted a child issue of %s -> %s %q\n", parent.IssueKey, created.IssueKey, created.Summary)
	return p.record(output.Record{
		Index:          child.Path,
		Summary:        created.Summary,
		IssueKey:       created.IssueKey,
		ID:             created.ID,
		ParentIssueKey: parent.IssueKey,
		Status:         output.StatusCreated,
	})
}

// skipChildren records the children of a failed parent as skipped.
func (p *postRun) skipChildren(children []template.ChildEntry) error {
	for _, child := range children {
		if err := p.record(skippedRecord(child.Path, child.Summary)); err != nil {
			return err
		}
	}
	return nil
}

func failedRecord(path, summary string, err error) output.Record {
	return output.Record{
		Index:   path,
		Summary: summary,
		Status:  output.StatusFailed,
		Error:   err.Error(),
	}
}

func skippedRecord(path, summary string) output.Record {
	return output.Record{
		Index:   path,
		Summary: summary,
		Status:  output.StatusSkipped,
		Error:   "parent issue was not created",
	}
}

// issueInput maps a resolved template issue to the client's input shape.
func issueInput(issue *template.ResolvedIssue, parentID int) backlog.IssueInput {
	return backlog.IssueInput{
		Summary:     issue.Summary,
		IssueType:   issue.IssueType,
		Priority:    issue.Priority,
		Description: issue.Description,
		Milestone:   issue.Milestone,
		Version:     issue.Version,
		Assignee:    issue.Assignee,
		DueDate:     issue.DueDate,
		ParentID:    parentID,
	}
}

// confirmReplacements prints the replacement mapping and asks the user to
// confirm before anything is posted. Only an explicit "y" proceeds.
func confirmReplacements(repl map[string]string, stdin io.Reader, stderr io.Writer) (bool, error) {
	fmt.Fprintln(stderr, "Variables in the template will be replaced as shown below.")
	keys := make([]string, 0, len(repl))
	for k := range repl {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(stderr, "  {%s} = %q\n", k, repl[k])
	}
	fmt.Fprint(stderr, "Do you want to proceed? (y/N): ")

	line, err := bufio.NewReader(stdin).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return false, fmt.Errorf("failed to read confirmation: %w", err)
	}
	return strings.EqualFold(strings.TrimSpace(line), "y"), nil
}

// runDryRun prints what the run would post without touching the network.
// The catalog is not fetched, so name lookups (issue type, priority,
// assignee) are not verified here.
func runDryRun(entries []template.Entry, stdout io.Writer) error {
	failed := 0
	describe := func(path, summary string, issue *template.ResolvedIssue, err error) {
		switch {
		case err != nil:
			failed++
			fmt.Fprintf(stdout, "invalid %s: %v\n", path, err)
		case issue == nil:
			fmt.Fprintf(stdout, "skip    %s: %s (parent failed validation)\n", path, summary)
		default:
			line := fmt.Sprintf("create  %s: %s [%s/%s]", path, issue.Summary, issue.IssueType, issue.Priority)
			if issue.DueDate != "" {
				line += " due " + issue.DueDate
			}
			fmt.Fprintln(stdout, line)
		}
	}

	for _, entry := range entries {
		describe(entry.Path, entry.Summary, entry.Issue, entry.Err)
		for _, child := range entry.Children {
			describe(child.Path, child.Summary, child.Issue, child.Err)
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d template entries failed validation: %w", failed, seedererrors.ErrIssuesFailed)
	}
	return nil
}

// resolveAPIKey returns the API key for the run: the --api-key flag wins,
// then the key environment variable, then the credential store.
func resolveAPIKey(opts *postOptions, cfg *config.Config, domain string) (string, error) {
	if opts.apiKey != "" {
		return opts.apiKey, nil
	}
	if key := os.Getenv(cfg.API.KeyEnv); key != "" {
		return key, nil
	}

	store, err := opts.openStore(cfg.Keyring.Backend, cfg.Keyring.File)
	if err != nil {
		return "", err
	}
	key, err := store.Load(domain)
	if err != nil {
		if errors.Is(err, seedererrors.ErrCredentialNotFound) {
			return "", fmt.Errorf("no API key stored for %s. Run 'backlog-seeder managekey %s' or set %s: %w",
				domain, domain, cfg.API.KeyEnv, seedererrors.ErrCredentialNotFound)
		}
		return "", err
	}
	return key, nil
}
