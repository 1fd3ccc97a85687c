// Copyright (c) 2021-2026 Rustam Gilyazov and Contributors.
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

// Package policy defines the channel cleanup policy: which channels are
// exempt from archival, what counts as "inactive", and how the archival
// loop is paced.  The defaults match the ITOps cleanup runbook; individual
// values can be overridden with a TOML file (see Load).
package policy

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	entrans "github.com/go-playground/validator/v10/translations/en"
)

// Policy is the set of values that control channel eligibility and the
// archival run.
type Policy struct {
	// MaxMembers is the largest member count that is still considered for
	// cleanup.  Channels with more members are left alone.
	MaxMembers int `toml:"max_members" validate:"gte=0"`
	// Cutoff is the activity watershed.  Channels with activity on or after
	// this instant are excluded (strictly-before is eligible).
	Cutoff time.Time `toml:"cutoff" validate:"required"`
	// Protected is the list of channel names that are never archived,
	// matched case-insensitively.
	Protected []string `toml:"protected" validate:"dive,required"`
	// Channel is the name of the channel that receives the cleanup notice.
	Channel string `toml:"channel" validate:"required"`
	// Delay is the pause between archive API calls.
	Delay Duration `toml:"delay" validate:"gte=0"`
}

// Default returns the runbook policy.
func Default() Policy {
	return Policy{
		MaxMembers: 4,
		Cutoff:     time.Date(2025, 7, 2, 0, 0, 0, 0, time.UTC),
		Protected: []string{
			"general", "random", "announcements", "compliance", "team-tech",
			"fetch", "collective-leads", "team-marketing", "team-devops",
		},
		Channel: "team-tech",
		Delay:   Duration(500 * time.Millisecond),
	}
}

var (
	validate = validator.New()

	// ErrTranslations is the english translator for the validation errors.
	ErrTranslations ut.Translator
)

func init() {
	english := en.New()
	uni := ut.New(english, english)
	var ok bool
	ErrTranslations, ok = uni.GetTranslator("en")
	if !ok {
		panic("internal error: failed to init translations")
	}
	if err := entrans.RegisterDefaultTranslations(validate, ErrTranslations); err != nil {
		panic(err)
	}
}

// ErrPolicyInvalid is returned by Load and Validate if the policy values
// fail validation.
var ErrPolicyInvalid = errors.New("policy validation failed")

// Validate checks the policy values.
func (p *Policy) Validate() error {
	if err := validate.Struct(p); err != nil {
		var vErr validator.ValidationErrors
		if errors.As(err, &vErr) {
			return fmt.Errorf("%w: %s", ErrPolicyInvalid, vErr.Translate(ErrTranslations))
		}
		return err
	}
	return nil
}

// Load reads the TOML file with policy overrides, applies it on top of the
// defaults and validates the result.  Keys that are not recognised are an
// error, so that a typo in the file does not silently archive the wrong
// channels.
func Load(filename string) (Policy, error) {
	p := Default()
	f, err := os.Open(filename)
	if err != nil {
		return p, err
	}
	defer f.Close()

	md, err := toml.NewDecoder(f).Decode(&p)
	if err != nil {
		return p, fmt.Errorf("error in %s: %w", filename, err)
	}
	if und := md.Undecoded(); len(und) > 0 {
		return p, fmt.Errorf("unknown keys in %s: %v", filename, und)
	}
	if err := p.Validate(); err != nil {
		return p, err
	}
	return p, nil
}

// IsProtected reports whether the channel name is on the protect-list.
func (p *Policy) IsProtected(name string) bool {
	for _, pn := range p.Protected {
		if strings.EqualFold(pn, name) {
			return true
		}
	}
	return false
}

// Duration is a time.Duration that unmarshals from a TOML string, i.e.
// delay = "500ms".
type Duration time.Duration

func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	*d = Duration(v)
	return nil
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(d).String()), nil
}

func (d Duration) String() string {
	return time.Duration(d).String()
}
