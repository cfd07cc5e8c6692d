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

// Package template parses TOML issue templates and resolves them into
// concrete issues ready to be posted.
//
// A template names a target space and project, an optional base date,
// a replacement map for {KEY} placeholders, and a list of issues. Each
// issue may carry one level of child issues. Parsing rejects unknown
// keys, a missing [target] section, and children nested more than one
// level deep. Building resolves placeholders and due dates per issue,
// so one bad entry never blocks its siblings.
package template
