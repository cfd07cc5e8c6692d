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

package integration

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/sirseerhq/backlog-seeder/test/testutil"
)

// doctorEnv builds an environment with the file keyring backend rooted in a
// fresh temp directory, pointed at the given space URL.
func doctorEnv(t *testing.T, spaceURL string) map[string]string {
	t.Helper()
	testDir := testutil.CreateTempDir(t, "doctor-flow-test")
	return map[string]string{
		"HOME":                    testutil.CreateTempDir(t, "seeder-home"),
		"BACKLOG_API_KEY":         "",
		"BACKLOG_API_BASE":        spaceURL,
		"BACKLOG_KEYRING_BACKEND": "file",
		"BACKLOG_KEYRING_FILE":    filepath.Join(testDir, "credentials.json"),
	}
}

// storeKey seeds the credential store through the real managekey command.
func storeKey(t *testing.T, env map[string]string, key string) {
	t.Helper()
	result := testutil.RunCLIInput(t, []string{"managekey", "demo.backlog.com"}, env, key+"\n")
	testutil.AssertCLISuccess(t, result)
}

func TestDoctorAllChecksPass(t *testing.T) {
	if os.Getenv("INTEGRATION_TEST") != "true" {
		t.Skip("Skipping integration test. Set INTEGRATION_TEST=true to run.")
	}

	space := testutil.NewMockSpace(t)
	env := doctorEnv(t, space.URL)
	storeKey(t, env, testutil.TestAPIKey)

	result := testutil.RunCLI(t, []string{"doctor", "demo.backlog.com"}, env)
	testutil.AssertCLISuccess(t, result)
	testutil.AssertContainsString(t, result.Stdout, "stored key found for demo.backlog.com")
	testutil.AssertContainsString(t, result.Stdout, "authenticated as Admin")
	testutil.AssertNotContainsString(t, result.Stdout, "FAIL")
}

func TestDoctorAuthFailure(t *testing.T) {
	if os.Getenv("INTEGRATION_TEST") != "true" {
		t.Skip("Skipping integration test. Set INTEGRATION_TEST=true to run.")
	}

	space := testutil.NewMockSpace(t)
	env := doctorEnv(t, space.URL)
	storeKey(t, env, "wrong-key")

	result := testutil.RunCLI(t, []string{"doctor", "demo.backlog.com"}, env)
	testutil.AssertExitCode(t, result, 2)
	testutil.AssertContainsString(t, result.Stdout, "FAIL")
}

func TestDoctorMissingCredential(t *testing.T) {
	if os.Getenv("INTEGRATION_TEST") != "true" {
		t.Skip("Skipping integration test. Set INTEGRATION_TEST=true to run.")
	}

	space := testutil.NewMockSpace(t)
	env := doctorEnv(t, space.URL)

	result := testutil.RunCLI(t, []string{"doctor", "demo.backlog.com"}, env)
	testutil.AssertExitCode(t, result, 2)
	testutil.AssertContainsString(t, result.Stdout, "not checked")
	if space.Requests() != 0 {
		t.Errorf("Expected no API requests without a credential, got %d", space.Requests())
	}
}

func TestDoctorNetworkFailure(t *testing.T) {
	if os.Getenv("INTEGRATION_TEST") != "true" {
		t.Skip("Skipping integration test. Set INTEGRATION_TEST=true to run.")
	}

	env := doctorEnv(t, "http://127.0.0.1:1")
	storeKey(t, env, testutil.TestAPIKey)

	result := testutil.RunCLI(t, []string{"doctor", "demo.backlog.com"}, env)
	testutil.AssertExitCode(t, result, 3)
	testutil.AssertContainsString(t, result.Stdout, "FAIL")
}

func TestDoctorWithFlagKey(t *testing.T) {
	if os.Getenv("INTEGRATION_TEST") != "true" {
		t.Skip("Skipping integration test. Set INTEGRATION_TEST=true to run.")
	}

	space := testutil.NewMockSpace(t)
	env := doctorEnv(t, space.URL)

	result := testutil.RunCLI(t, []string{"doctor", "demo.backlog.com", "--api-key", testutil.TestAPIKey}, env)
	testutil.AssertCLISuccess(t, result)
	testutil.AssertContainsString(t, result.Stdout, "using the --api-key flag")
	testutil.AssertContainsString(t, result.Stdout, "authenticated as Admin")
}
