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
package ui

import (
	"github.com/charmbracelet/huh"
)

// Confirm asks a yes/no question.
func Confirm(msg string, _ bool, opt ...Option) (bool, error) {
	var b bool
	if err := huh.NewForm(huh.NewGroup(FieldConfirm(&b, msg, false, opt...))).
		WithTheme(HuhTheme).
		Run(); err != nil {
		return false, err
	}
	return b, nil
}

func FieldConfirm(b *bool, msg string, _ bool, opt ...Option) huh.Field {
	opts := defaultOpts().apply(opt...)
	return huh.NewConfirm().Title(msg).Description(opts.help).Value(b)
}

// ConfirmPhrase requires the user to type the exact phrase to proceed.  A
// mismatch is not an error: it returns false, and the caller should treat
// it as "no".
func ConfirmPhrase(msg, phrase string) (bool, error) {
	typed, err := Input(msg, "Anything else cancels the operation.", NoValidation)
	if err != nil {
		return false, err
	}
	return typed == phrase, nil
}
