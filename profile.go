// Copyright 2025 keil2sdcc Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Profile describes one vendor header family. The zero value is not usable;
// start from defaultProfile or loadProfile.
type Profile struct {
	// Primary is the header filename backup mode operates on.
	Primary string `yaml:"primary"`
	// BackupSuffix is appended to Primary to form the pristine backup name.
	BackupSuffix string `yaml:"backup_suffix"`
	// AnchorPrefix marks the line after which the SDCC compatibility block
	// is inserted, typically the include guard opening the type definitions.
	AnchorPrefix string        `yaml:"anchor_prefix"`
	Compat       CompatOptions `yaml:"compat"`
}

// CompatOptions enables rewrites beyond the four declaration forms. Both are
// off by default so that unrecognized lines pass through byte-identical.
type CompatOptions struct {
	// BitKeyword rewrites the standalone Keil 'bit' keyword to '__bit'
	// outside comments.
	BitKeyword bool `yaml:"bit_keyword"`
	// StripTypedefSpaces removes memory-class keywords from typedef lines,
	// collapsing the surrounding whitespace.
	StripTypedefSpaces bool `yaml:"strip_typedef_spaces"`
}

// defaultProfile returns the built-in WCH CH559 profile.
func defaultProfile() Profile {
	return Profile{
		Primary:      "CH559.H",
		BackupSuffix: ".ORIGINAL",
		AnchorPrefix: "#ifndef",
	}
}

// loadProfile reads a YAML profile and fills unset fields from the CH559
// defaults, so a profile may override just the primary filename.
func loadProfile(path string) (Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Profile{}, fmt.Errorf("reading profile %s: %w", path, err)
	}
	var prof Profile
	if err := yaml.Unmarshal(data, &prof); err != nil {
		return Profile{}, fmt.Errorf("parsing profile %s: %w", path, err)
	}
	applyProfileDefaults(&prof)
	return prof, nil
}

func applyProfileDefaults(prof *Profile) {
	def := defaultProfile()
	if prof.Primary == "" {
		prof.Primary = def.Primary
	}
	if prof.BackupSuffix == "" {
		prof.BackupSuffix = def.BackupSuffix
	}
	if prof.AnchorPrefix == "" {
		prof.AnchorPrefix = def.AnchorPrefix
	}
}

// Backup returns the pristine backup filename for the primary header.
func (p Profile) Backup() string {
	return p.Primary + p.BackupSuffix
}
